// Package download writes resolved assets to disk with skip-if-present
// semantics.
package download

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gianmaria/reddit-image-downloader/internal/domain"
	"github.com/gianmaria/reddit-image-downloader/internal/fetch"
	"github.com/gianmaria/reddit-image-downloader/internal/media"
)

// Engine downloads one asset at a time. It never resolves URLs; assets arrive
// fully resolved and are consumed exactly once.
type Engine struct {
	client *fetch.Client
	logger *slog.Logger
	locks  *pathLocks
}

// NewEngine creates a download engine over the shared HTTP client.
func NewEngine(client *fetch.Client, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		client: client,
		logger: logger,
		locks:  newPathLocks(),
	}
}

// Download fetches asset into destDir under title. The destination path is
// fixed before the existence check so the skip check and the write target the
// same file. A pre-existing destination is Skipped without any network call.
func (e *Engine) Download(ctx context.Context, asset domain.Asset, destDir, title string) domain.Outcome {
	ext := asset.Extension
	if ext == "" {
		ext = media.ExtensionFromURL(asset.URL)
	}
	destPath := filepath.Join(destDir, title+"."+ext)

	unlock := e.locks.lock(destPath)
	defer unlock()

	if _, err := os.Stat(destPath); err == nil {
		return domain.OutcomeSkipped
	}

	resp, err := e.client.Get(ctx, asset.URL, nil)
	if err != nil {
		e.logger.Warn("download request failed", "url", asset.URL, "error", err)
		return domain.OutcomeFailed
	}
	if !resp.OK() {
		e.logger.Warn("download request rejected", "url", asset.URL, "status", resp.StatusCode)
		return domain.OutcomeFailed
	}

	if err := writeFileAtomic(destPath, resp.Body); err != nil {
		e.logger.Warn("cannot write file", "path", destPath, "error", err)
		return domain.OutcomeFailed
	}
	return domain.OutcomeDownloaded
}

// writeFileAtomic writes data to a same-directory temp file and renames it
// into place, so an interrupted run never leaves a half-written destination
// to be skipped later.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".rid-*")
	if err != nil {
		return err
	}

	_, err = tmp.Write(data)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return err
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}
