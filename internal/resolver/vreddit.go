package resolver

import (
	"context"
	"fmt"

	"github.com/gianmaria/reddit-image-downloader/internal/domain"
	"github.com/gianmaria/reddit-image-downloader/internal/reddit"
)

// vredditResolver serves reddit-hosted video posts. The listing already
// carries the direct mp4 fallback URL, so no extra request is made. The
// fallback URL has no dotted suffix, hence the fixed extension.
type vredditResolver struct{}

func (vredditResolver) Resolve(_ context.Context, post *reddit.Post) ([]domain.Asset, error) {
	fallback := post.FallbackVideoURL()
	if fallback == "" {
		return nil, fmt.Errorf("post %s has no reddit_video fallback_url: %w",
			post.ID, domain.ErrMissingField)
	}
	return []domain.Asset{{URL: fallback, Extension: "mp4"}}, nil
}

var _ Resolver = vredditResolver{}
