package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Store is the backing store of an extension registry: a single text
// document of extension definitions.
type Store interface {
	// Load returns the store's content. A store that does not exist yet is
	// empty.
	Load() ([]byte, error)
	// Save replaces the store's content.
	Save([]byte) error
}

// MemStore is a Store held in memory.
type MemStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemStore creates a MemStore with the given initial content.
func NewMemStore(content string) *MemStore {
	return &MemStore{data: []byte(content)}
}

// Load returns a copy of the content.
func (s *MemStore) Load() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.data...), nil
}

// Save replaces the content with a copy of b.
func (s *MemStore) Save(b []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append(s.data[:0:0], b...)
	return nil
}

// String returns the content.
func (s *MemStore) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.data)
}

// FileStore is a Store in a file. Saves replace the file atomically while
// holding an advisory lock on a sibling lock file, so that concurrent
// interpreters sharing a store do not interleave writes.
type FileStore struct {
	Path string
}

// Load reads the file. A missing file is empty.
func (s FileStore) Load() ([]byte, error) {
	b, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return b, err
}

// Save writes b to a temporary file beside the store and renames it over the
// store. The store's directory is created if needed.
func (s FileStore) Save(b []byte) (err error) {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return err
	}
	lf, err := os.OpenFile(s.Path+".lock", os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("could not open lock for %s: %w", s.Path, err)
	}
	defer lf.Close()
	if err := lockFile(lf); err != nil {
		return fmt.Errorf("could not lock %s: %w", s.Path, err)
	}
	defer unlockFile(lf)

	tmp, err := os.CreateTemp(filepath.Dir(s.Path), filepath.Base(s.Path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(b); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.Path)
}
