// Package scraper walks a subreddit's top listing page by page, fanning each
// page out to a bounded worker pool and checkpointing pagination progress.
package scraper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gianmaria/reddit-image-downloader/internal/checkpoint"
	"github.com/gianmaria/reddit-image-downloader/internal/dispatch"
	"github.com/gianmaria/reddit-image-downloader/internal/download"
	"github.com/gianmaria/reddit-image-downloader/internal/fetch"
	"github.com/gianmaria/reddit-image-downloader/internal/ledger"
	"github.com/gianmaria/reddit-image-downloader/internal/reddit"
	"github.com/gianmaria/reddit-image-downloader/internal/resolver"
)

// Config holds one run's settings.
type Config struct {
	Subreddit string
	// When is the listing time window: hour, day, week, month, year or all.
	When    string
	DestDir string

	Concurrency   int
	RateLimitMs   int
	UserAgent     string
	MinUpvotes    int
	ImgurClientID string

	// Out receives the per-post result lines; defaults to stdout.
	Out io.Writer

	// Base URL overrides for tests.
	RedditBaseURL string
	ImgurBaseURL  string
	GfycatBaseURL string
}

// Scraper runs the pagination state machine. One coordinating goroutine
// fetches pages; each page is drained by a batch of workers before the
// cursor advances.
type Scraper struct {
	cfg        Config
	listing    *reddit.Client
	dispatcher *dispatch.Dispatcher
	store      *checkpoint.Store
	logger     *slog.Logger

	// seq numbers every processed post across the whole run, starting at 1.
	seq int64
}

// New wires a scraper from config.
func New(cfg Config, logger *slog.Logger) *Scraper {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 10
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if logger == nil {
		logger = slog.Default()
	}

	client := fetch.NewClient(cfg.RateLimitMs, cfg.UserAgent)

	listing := reddit.NewClient(client)
	if cfg.RedditBaseURL != "" {
		listing = reddit.NewClientWithBaseURL(client, cfg.RedditBaseURL)
	}

	registry := resolver.NewRegistry(client, resolver.RegistryConfig{
		ImgurClientID: cfg.ImgurClientID,
		ImgurBaseURL:  cfg.ImgurBaseURL,
		GfycatBaseURL: cfg.GfycatBaseURL,
	})
	engine := download.NewEngine(client, logger)

	return &Scraper{
		cfg:        cfg,
		listing:    listing,
		dispatcher: dispatch.New(registry, engine, logger, cfg.MinUpvotes),
		store:      checkpoint.NewStore(cfg.DestDir),
		logger:     logger,
	}
}

// Run drains the listing until reddit reports no further pages. Only two
// failure classes abort the run: destination directory setup and page-level
// fetch/parse errors; everything else is reported per post.
func (s *Scraper) Run(ctx context.Context) error {
	if err := os.MkdirAll(s.cfg.DestDir, 0755); err != nil {
		return fmt.Errorf("cannot create folder %q: %w", s.cfg.DestDir, err)
	}

	after, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("read checkpoint: %w", err)
	}
	if after != "" {
		s.logger.Info("resuming from checkpoint", "after", after)
	}

	led, err := ledger.Open(s.cfg.DestDir)
	if err != nil {
		// The ledger is bookkeeping, not the product; run without it.
		s.logger.Warn("ledger unavailable", "error", err)
		led = nil
	} else {
		defer led.Close()
	}

	for {
		page, err := s.listing.TopListing(ctx, s.cfg.Subreddit, s.cfg.When, after)
		if err != nil {
			return fmt.Errorf("cannot download json from subreddit %s: %w", s.cfg.Subreddit, err)
		}

		s.processPage(ctx, page.Data.Children, led)

		if page.Data.After == nil {
			// Fully drained; a future run starts fresh.
			if err := s.store.Clear(); err != nil {
				s.logger.Warn("cannot remove checkpoint file", "error", err)
			}
			fmt.Fprintln(s.cfg.Out, "All done!")
			return nil
		}

		after = *page.Data.After
		if err := s.store.Save(after); err != nil {
			return fmt.Errorf("save checkpoint: %w", err)
		}
	}
}
