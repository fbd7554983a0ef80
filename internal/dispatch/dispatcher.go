// Package dispatch drives one post through resolution and download, turning
// every failure mode into a reportable per-post result.
package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/gianmaria/reddit-image-downloader/internal/domain"
	"github.com/gianmaria/reddit-image-downloader/internal/download"
	"github.com/gianmaria/reddit-image-downloader/internal/media"
	"github.com/gianmaria/reddit-image-downloader/internal/reddit"
	"github.com/gianmaria/reddit-image-downloader/internal/resolver"
)

// Dispatcher produces exactly one Result per post, never an error: a bad post
// must not abort its page.
type Dispatcher struct {
	registry   *resolver.Registry
	engine     *download.Engine
	logger     *slog.Logger
	minUpvotes int

	clientIDWarn sync.Once
}

// New creates a dispatcher. Posts with fewer than minUpvotes upvotes are
// gated out and report Skipped.
func New(registry *resolver.Registry, engine *download.Engine, logger *slog.Logger, minUpvotes int) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		registry:   registry,
		engine:     engine,
		logger:     logger,
		minUpvotes: minUpvotes,
	}
}

// Process handles one post end to end. The sanitized title is computed once
// and reused for both the skip check and the final write.
func (d *Dispatcher) Process(ctx context.Context, seq int64, post *reddit.Post, destDir string) domain.Result {
	title := media.TruncateRunes(media.SanitizeTitle(post.Title), media.TitleMaxRunes)

	result := domain.Result{
		Seq:   seq,
		Title: title,
		URL:   post.URL,
	}

	if post.Title == "" || post.URL == "" {
		d.logger.Warn("post record misses title or url", "id", post.ID, "url", post.URL)
		result.Outcomes = []domain.Outcome{domain.OutcomeFailed}
		return result
	}

	if post.Ups < d.minUpvotes {
		result.Outcomes = []domain.Outcome{domain.OutcomeSkipped}
		return result
	}

	res := d.registry.Lookup(post)
	if res == nil {
		result.Outcomes = []domain.Outcome{domain.OutcomeUnable}
		return result
	}

	assets, err := res.Resolve(ctx, post)
	if err != nil {
		if errors.Is(err, domain.ErrMissingClientID) {
			d.clientIDWarn.Do(func() {
				d.logger.Warn(domain.ErrMissingClientID.Error())
			})
		} else {
			d.logger.Warn("resolver failed", "domain", post.Domain, "url", post.URL, "error", err)
		}
		result.Outcomes = []domain.Outcome{domain.OutcomeFailed}
		return result
	}
	if len(assets) == 0 {
		result.Outcomes = []domain.Outcome{domain.OutcomeFailed}
		return result
	}

	// Assets download sequentially, in resolver order; the pool already
	// provides the parallelism across posts.
	for _, asset := range assets {
		result.Outcomes = append(result.Outcomes, d.engine.Download(ctx, asset, destDir, title))
	}
	return result
}
