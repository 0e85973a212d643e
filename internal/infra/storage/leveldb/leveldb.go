// Package leveldb persists the local history document in an embedded LevelDB
// database, for single-process deployments without a Redis instance.
package leveldb

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabapcia/localhistory/internal/localhistory"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// blobKeyPrefix namespaces blob keys inside the database.
const blobKeyPrefix = "blob:"

// Store is a LevelDB-backed localhistory.BlobStorage.
type Store struct {
	db *leveldb.DB
}

// Open opens (or creates) the database at path.
func Open(path string) (*Store, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, errors.New("leveldb path required")
	}

	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return nil, fmt.Errorf("resolve leveldb path: %w", err)
	}

	db, err := leveldb.OpenFile(abs, nil)
	if err != nil {
		return nil, fmt.Errorf("open leveldb store: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying LevelDB resources.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func blobKey(entity string) []byte {
	return []byte(blobKeyPrefix + entity)
}

// GetBlob returns the blob stored for entity or localhistory.ErrBlobNotFound.
func (s *Store) GetBlob(ctx context.Context, entity string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := s.db.Get(blobKey(entity), nil)
	switch {
	case errors.Is(err, leveldb.ErrNotFound):
		return nil, localhistory.ErrBlobNotFound
	case err != nil:
		return nil, fmt.Errorf("load blob: %w", err)
	}

	return data, nil
}

// SetBlob replaces the blob stored for entity. The write is synced to disk
// before returning.
func (s *Store) SetBlob(ctx context.Context, entity string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.db.Put(blobKey(entity), data, &opt.WriteOptions{Sync: true}); err != nil {
		return fmt.Errorf("store blob: %w", err)
	}
	return nil
}

var _ localhistory.BlobStorage = (*Store)(nil)
