package state

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// FileStore keeps the state as a JSON document on local disk.
type FileStore struct {
	FilePath string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{FilePath: path}
}

func (f *FileStore) Load(_ context.Context) (State, error) {
	data, err := os.ReadFile(f.FilePath)
	if errors.Is(err, fs.ErrNotExist) {
		return State{}, ErrNotFound
	}
	if err != nil {
		return State{}, fmt.Errorf("%w: failed to read state file %s: %v", ErrUnreadable, f.FilePath, err)
	}
	return Decode(data)
}

// Save writes through a temp file in the same directory and renames it over
// the old state, so a crash never leaves a half-written document.
func (f *FileStore) Save(_ context.Context, s State) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.FilePath)
	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp state file in %s: %w", dir, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp state file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp state file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to chmod temp state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.FilePath); err != nil {
		return fmt.Errorf("failed to replace state file %s: %w", f.FilePath, err)
	}

	log.Printf("Saved state to %s: lastTournamentDayNum=%d", f.FilePath, s.LastTournamentDayNum)
	return nil
}

func (f *FileStore) Close() error { return nil }
