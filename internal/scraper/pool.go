package scraper

import (
	"context"
	"fmt"
	"sync"

	"github.com/gianmaria/reddit-image-downloader/internal/domain"
	"github.com/gianmaria/reddit-image-downloader/internal/ledger"
	"github.com/gianmaria/reddit-image-downloader/internal/reddit"
)

// printMaxLen bounds the title column of the per-post result lines.
const printMaxLen = 50

// processPage drains one page of posts from the end backward, in batches of
// at most Concurrency workers. Each batch is a full barrier: results are
// printed in submission order once every worker in the batch finishes, and
// no cross-batch overlap happens. The page's cursor is only checkpointed
// after the whole page has been processed.
func (s *Scraper) processPage(ctx context.Context, children []reddit.Child, led *ledger.Ledger) {
	remaining := len(children)

	for remaining > 0 {
		batch := s.cfg.Concurrency
		if batch > remaining {
			batch = remaining
		}

		results := make([]domain.Result, batch)
		postIDs := make([]string, batch)

		var wg sync.WaitGroup
		for slot := 0; slot < batch; slot++ {
			remaining--
			s.seq++

			post := &children[remaining].Data
			postIDs[slot] = post.ID

			wg.Add(1)
			go func(slot int, seq int64, post *reddit.Post) {
				defer wg.Done()
				results[slot] = s.dispatcher.Process(ctx, seq, post, s.cfg.DestDir)
			}(slot, s.seq, post)
		}
		wg.Wait()

		for slot, res := range results {
			s.report(res)
			if led != nil {
				if err := led.Record(s.cfg.Subreddit, postIDs[slot], res); err != nil {
					s.logger.Warn("cannot record result in ledger", "error", err)
				}
			}
		}
	}
}

// report prints one result line; failures and unresolvable posts echo the
// original URL for triage.
func (s *Scraper) report(res domain.Result) {
	outcome := res.Outcome()
	switch outcome {
	case domain.OutcomeDownloaded, domain.OutcomeSkipped:
		fmt.Fprintf(s.cfg.Out, "[%04d] %-*.*s -> %s\n",
			res.Seq, printMaxLen, printMaxLen, res.Title, outcome)
	default:
		fmt.Fprintf(s.cfg.Out, "[%04d] %-*.*s -> %s url: '%s'\n",
			res.Seq, printMaxLen, printMaxLen, res.Title, outcome, res.URL)
	}
}
