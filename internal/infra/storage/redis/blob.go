package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/gabapcia/localhistory/internal/localhistory"

	"github.com/redis/go-redis/v9"
)

// blobKeyPrefix is the namespace prefix for every local history blob.
const blobKeyPrefix = "localhistory"

// blobKey builds the Redis key holding the blob of an entity:
//
//	"localhistory:blob:<entity>"
func blobKey(entity string) string {
	return fmt.Sprintf("%s:blob:%s", blobKeyPrefix, entity)
}

// GetBlob loads the raw blob stored for entity.
//
// It returns localhistory.ErrBlobNotFound when the key does not exist.
func (c *client) GetBlob(ctx context.Context, entity string) ([]byte, error) {
	data, err := c.conn.Get(ctx, blobKey(entity)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, localhistory.ErrBlobNotFound
		}
		return nil, err
	}

	return data, nil
}

// SetBlob replaces the blob stored for entity. A single SET is atomic, so
// readers never observe a partially written document. The key never expires.
func (c *client) SetBlob(ctx context.Context, entity string, data []byte) error {
	return c.conn.Set(ctx, blobKey(entity), data, 0).Err()
}

// Compile-time assertion to ensure *client satisfies localhistory.BlobStorage
var _ localhistory.BlobStorage = new(client)
