package resolver

import (
	"context"

	"github.com/gianmaria/reddit-image-downloader/internal/domain"
	"github.com/gianmaria/reddit-image-downloader/internal/media"
	"github.com/gianmaria/reddit-image-downloader/internal/reddit"
)

// directResolver handles posts whose URL already carries a file extension:
// the post URL is itself the single asset.
type directResolver struct{}

func (directResolver) Resolve(_ context.Context, post *reddit.Post) ([]domain.Asset, error) {
	return []domain.Asset{{
		URL:       post.URL,
		Extension: media.ExtensionFromURL(post.URL),
	}}, nil
}

var _ Resolver = directResolver{}
