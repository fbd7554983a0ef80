package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gianmaria/reddit-image-downloader/internal/domain"
	"github.com/gianmaria/reddit-image-downloader/internal/fetch"
	"github.com/gianmaria/reddit-image-downloader/internal/media"
	"github.com/gianmaria/reddit-image-downloader/internal/reddit"
)

const gfycatBaseURL = "https://api.gfycat.com"

// gfycatResolver looks a gfycat slug up through the public API. Slugs append
// descriptive words after the canonical id, separated by hyphens; only the
// part before the first hyphen identifies the gfycat.
//
// https://developers.gfycat.com/api/?curl#getting-info-for-a-single-gfycat
type gfycatResolver struct {
	client  *fetch.Client
	baseURL string
}

type gfycatInfo struct {
	GfyItem *struct {
		URL    string `json:"url"`
		Mp4URL string `json:"mp4Url"`
	} `json:"gfyItem"`
	ErrorMessage json.RawMessage `json:"errorMessage"`
}

func newGfycatResolver(client *fetch.Client, baseURL string) *gfycatResolver {
	if baseURL == "" {
		baseURL = gfycatBaseURL
	}
	return &gfycatResolver{client: client, baseURL: baseURL}
}

func (r *gfycatResolver) Resolve(ctx context.Context, post *reddit.Post) ([]domain.Asset, error) {
	id := media.LastPathSegment(post.URL)
	if cut, _, found := strings.Cut(id, "-"); found {
		id = cut
	}

	endpoint := fmt.Sprintf("%s/v1/gfycats/%s", r.baseURL, id)
	resp, err := r.client.Get(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, fmt.Errorf("gfycat request returned status %d", resp.StatusCode)
	}

	var info gfycatInfo
	if err := json.Unmarshal(resp.Body, &info); err != nil {
		return nil, fmt.Errorf("error while parsing gfycat response json: %w", err)
	}
	if info.GfyItem == nil || len(info.ErrorMessage) > 0 {
		return nil, fmt.Errorf("gfycat has no item for id %q: %w", id, domain.ErrMissingField)
	}

	assetURL := info.GfyItem.URL
	if assetURL == "" {
		assetURL = info.GfyItem.Mp4URL
	}
	if assetURL == "" {
		return nil, fmt.Errorf("gfycat item for id %q has no url: %w", id, domain.ErrMissingField)
	}

	asset := domain.Asset{URL: assetURL}
	if media.ExtensionFromURL(assetURL) == "" {
		// No dotted suffix to go on; probe the headers for a content type.
		if head, err := r.client.Head(ctx, assetURL, nil); err == nil && head.OK() {
			asset.Extension = media.ExtensionFromContentType(head.ContentType)
		}
	}
	return []domain.Asset{asset}, nil
}
