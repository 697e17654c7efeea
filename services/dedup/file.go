package dedup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore implements Store backed by a flat JSON file mapping keys to
// true. The file is loaded wholesale at startup and rewritten wholesale
// on flush.
type FileStore struct {
	path string
	mu   sync.Mutex
	seen map[string]bool
}

// NewFileStore loads the key set from path. A missing file means
// nothing has been seen yet; an unreadable or corrupt file is an error,
// since running without a reliable store risks mass duplicate
// notifications.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path: path,
		seen: make(map[string]bool),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to load seen file %s: %w", path, err)
	}

	if len(data) == 0 {
		return s, nil
	}

	if err := json.Unmarshal(data, &s.seen); err != nil {
		return nil, fmt.Errorf("failed to parse seen file %s: %w", path, err)
	}

	return s, nil
}

// Seen reports whether the key has already been notified
func (s *FileStore) Seen(key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seen[key], nil
}

// Record marks a key as notified
func (s *FileStore) Record(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[key] = true
	return nil
}

// Flush rewrites the seen file. The write goes through a temp file and
// a rename so a crash mid-write cannot corrupt the existing set.
func (s *FileStore) Flush() error {
	s.mu.Lock()
	data, err := json.MarshalIndent(s.seen, "", "  ")
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to marshal seen set: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".seen-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp seen file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write seen file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close seen file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace seen file: %w", err)
	}

	return nil
}

// Close flushes and releases the store
func (s *FileStore) Close() error {
	return s.Flush()
}
