// Package checkpoint persists the listing cursor so an interrupted run
// resumes from the page it last completed.
package checkpoint

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const cursorFileName = "after.txt"

// Store keeps the pagination cursor in a plain-text file directly under the
// destination directory.
type Store struct {
	path string
}

// NewStore creates a store rooted at destDir.
func NewStore(destDir string) *Store {
	return &Store{path: filepath.Join(destDir, cursorFileName)}
}

// Load returns the persisted cursor, or "" when none has been saved yet.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Save overwrites the cursor file with cursor.
func (s *Store) Save(cursor string) error {
	return os.WriteFile(s.path, []byte(cursor), 0644)
}

// Clear removes the cursor file; the next run starts from the first page.
// Clearing an absent file is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
