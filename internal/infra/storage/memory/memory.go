// Package memory provides a process-local BlobStorage, used for ephemeral runs
// and tests.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/gabapcia/localhistory/internal/localhistory"
)

// Store keeps blobs in a map guarded by a mutex.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]byte),
	}
}

// GetBlob returns a copy of the blob stored for entity.
func (s *Store) GetBlob(_ context.Context, entity string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[entity]
	if !ok {
		return nil, localhistory.ErrBlobNotFound
	}
	return slices.Clone(data), nil
}

// SetBlob stores a copy of data for entity.
func (s *Store) SetBlob(_ context.Context, entity string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[entity] = slices.Clone(data)
	return nil
}

// Close satisfies the closer used by the storage bootstrap. Nothing to release.
func (s *Store) Close() error {
	return nil
}

var _ localhistory.BlobStorage = (*Store)(nil)
