package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ph46m/ttknew/pkg/logger"
)

// FileStore keeps one pretty-printed JSON document per collection under
// dir. Reads that fail for any reason degrade to an empty collection;
// write failures propagate to the caller.
type FileStore struct {
	dir    string
	logger *logger.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewFileStore(dir string, logger *logger.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return &FileStore{
		dir:    dir,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}, nil
}

func (s *FileStore) lock(collection string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		s.locks[collection] = l
	}
	return l
}

func (s *FileStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

func (s *FileStore) Load(ctx context.Context, collection string, dest interface{}) error {
	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()
	s.loadLocked(collection, dest)
	return ctx.Err()
}

func (s *FileStore) Update(ctx context.Context, collection string, dest interface{}, mutate func() (bool, error)) error {
	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	s.loadLocked(collection, dest)

	dirty, err := mutate()
	if err != nil {
		return err
	}
	if !dirty {
		return nil
	}
	return s.saveLocked(collection, dest)
}

// loadLocked fills dest from disk, leaving it untouched when the file is
// absent, empty or unreadable. Availability over correctness: a corrupt
// document shows up as an empty collection, not as a request failure.
func (s *FileStore) loadLocked(collection string, dest interface{}) {
	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.WithError(err).WithField("collection", collection).Warn("Failed to read collection, treating as empty")
		}
		return
	}
	if len(data) == 0 {
		return
	}
	if err := json.Unmarshal(data, dest); err != nil {
		s.logger.WithError(err).WithField("collection", collection).Warn("Failed to decode collection, treating as empty")
	}
}

// saveLocked rewrites the whole document through a temp file and rename so
// readers never observe a partial write.
func (s *FileStore) saveLocked(collection string, data interface{}) error {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", collection, err)
	}

	tmp, err := os.CreateTemp(s.dir, collection+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", collection, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write collection %s: %w", collection, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to flush collection %s: %w", collection, err)
	}
	if err := os.Rename(tmpName, s.path(collection)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace collection %s: %w", collection, err)
	}
	return nil
}
