package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore keeps collections as serialized documents in memory. It
// mirrors FileStore semantics exactly (including the marshal round trip,
// which isolates callers from each other) and backs the "memory" storage
// driver and the test suites.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (s *MemoryStore) Load(ctx context.Context, collection string, dest interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(collection, dest)
	return ctx.Err()
}

func (s *MemoryStore) Update(ctx context.Context, collection string, dest interface{}, mutate func() (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

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

	encoded, err := json.Marshal(dest)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", collection, err)
	}
	s.docs[collection] = encoded
	return nil
}

func (s *MemoryStore) loadLocked(collection string, dest interface{}) {
	data, ok := s.docs[collection]
	if !ok || len(data) == 0 {
		return
	}
	// Documents only ever hold what Update marshaled, so this cannot fail
	// with well-formed model types.
	_ = json.Unmarshal(data, dest)
}
