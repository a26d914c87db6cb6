package results

import (
	"os"
	"sync"
	"time"
)

// Store gives the viewer a cached read on the results file, reloading only
// when the file changes on disk.
type Store struct {
	path string

	mu      sync.RWMutex
	doc     *Document
	modTime time.Time
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Document returns the current results document, reloading it if the file
// has been rewritten since the last read.
func (s *Store) Document() (*Document, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	if s.doc != nil && info.ModTime().Equal(s.modTime) {
		doc := s.doc
		s.mu.RUnlock()
		return doc, nil
	}
	s.mu.RUnlock()

	doc, err := Load(s.path)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.doc = doc
	s.modTime = info.ModTime()
	s.mu.Unlock()

	return doc, nil
}
