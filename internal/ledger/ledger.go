// Package ledger records every processed post in a sqlite database next to
// the downloads, so past runs stay inspectable.
package ledger

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/gianmaria/reddit-image-downloader/internal/domain"
)

const dbFileName = "downloads.db"

const schema = `
CREATE TABLE IF NOT EXISTS downloads (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    seq         INTEGER NOT NULL,
    subreddit   TEXT    NOT NULL,
    post_id     TEXT    NOT NULL,
    post_title  TEXT    NOT NULL,
    post_url    TEXT    NOT NULL,
    outcome     TEXT    NOT NULL,
    asset_count INTEGER NOT NULL,
    recorded_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_downloads_outcome ON downloads(outcome);
`

// Ledger is the append-only run history under one destination directory.
type Ledger struct {
	db *sql.DB
}

// Open opens (and if needed creates) the ledger database in destDir.
func Open(destDir string) (*Ledger, error) {
	db, err := sql.Open("sqlite3", filepath.Join(destDir, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("open ledger database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create ledger schema: %w", err)
	}
	return &Ledger{db: db}, nil
}

// Close releases the underlying database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Record appends one per-post result.
func (l *Ledger) Record(subreddit, postID string, res domain.Result) error {
	_, err := l.db.Exec(`
		INSERT INTO downloads (seq, subreddit, post_id, post_title, post_url, outcome, asset_count, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		res.Seq, subreddit, postID, res.Title, res.URL,
		res.Outcome().String(), len(res.Outcomes), time.Now().UTC(),
	)
	return err
}

// Summary aggregates the recorded posts by outcome.
type Summary struct {
	Total    int
	ByResult map[string]int
}

// Summary reads outcome counts for the whole ledger.
func (l *Ledger) Summary() (*Summary, error) {
	rows, err := l.db.Query(`SELECT outcome, COUNT(*) FROM downloads GROUP BY outcome`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sum := &Summary{ByResult: make(map[string]int)}
	for rows.Next() {
		var outcome string
		var count int
		if err := rows.Scan(&outcome, &count); err != nil {
			return nil, err
		}
		sum.ByResult[outcome] = count
		sum.Total += count
	}
	return sum, rows.Err()
}
