package resolver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gianmaria/reddit-image-downloader/internal/domain"
	"github.com/gianmaria/reddit-image-downloader/internal/fetch"
	"github.com/gianmaria/reddit-image-downloader/internal/media"
	"github.com/gianmaria/reddit-image-downloader/internal/reddit"
)

const imgurBaseURL = "https://api.imgur.com"

// imgurResolver expands imgur.com posts through the gallery API. A gallery
// yields one asset per image; a single image yields one.
//
// https://apidocs.imgur.com/#10456589-7167-4b5c-acd3-a1e4eb6a95ed
type imgurResolver struct {
	client   *fetch.Client
	clientID string
	baseURL  string
}

type imgurGallery struct {
	Success bool `json:"success"`
	Status  int  `json:"status"`
	Data    struct {
		Link   string `json:"link"`
		Images []struct {
			Link string `json:"link"`
		} `json:"images"`
	} `json:"data"`
}

func newImgurResolver(client *fetch.Client, clientID, baseURL string) *imgurResolver {
	if baseURL == "" {
		baseURL = imgurBaseURL
	}
	return &imgurResolver{client: client, clientID: clientID, baseURL: baseURL}
}

func (r *imgurResolver) Resolve(ctx context.Context, post *reddit.Post) ([]domain.Asset, error) {
	if r.clientID == "" {
		return nil, domain.ErrMissingClientID
	}

	imageID := media.LastPathSegment(post.URL)
	endpoint := fmt.Sprintf("%s/3/gallery/r/%s/%s", r.baseURL, post.Subreddit, imageID)

	resp, err := r.client.Get(ctx, endpoint, map[string]string{
		"Authorization": "Client-ID " + r.clientID,
	})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, fmt.Errorf("imgur gallery request returned status %d", resp.StatusCode)
	}

	var gallery imgurGallery
	if err := json.Unmarshal(resp.Body, &gallery); err != nil {
		return nil, fmt.Errorf("malformed json response from imgur.com: %w", err)
	}
	if !gallery.Success {
		return nil, fmt.Errorf("imgur.com reported an error, status: %d", gallery.Status)
	}

	if len(gallery.Data.Images) > 0 {
		assets := make([]domain.Asset, 0, len(gallery.Data.Images))
		for _, img := range gallery.Data.Images {
			assets = append(assets, domain.Asset{URL: img.Link})
		}
		return assets, nil
	}
	return []domain.Asset{{URL: gallery.Data.Link}}, nil
}
