package main

import (
	"context"
	"fmt"

	"github.com/gabapcia/localhistory/internal/config"
	"github.com/gabapcia/localhistory/internal/infra/storage/leveldb"
	"github.com/gabapcia/localhistory/internal/infra/storage/memory"
	"github.com/gabapcia/localhistory/internal/infra/storage/redis"
	"github.com/gabapcia/localhistory/internal/localhistory"
	"github.com/gabapcia/localhistory/internal/pkg/logger"
	"github.com/gabapcia/localhistory/internal/pkg/resilience/retry"
)

// blobStore is a BlobStorage holding resources that must be released.
type blobStore interface {
	localhistory.BlobStorage
	Close() error
}

// openStorage opens the configured backend, retrying transient failures such
// as an unreachable Redis or a LevelDB lock still held by a previous run.
func openStorage(ctx context.Context, cfg config.Config) (blobStore, error) {
	r := retry.New(
		retry.WithName("open_storage"),
		retry.WithAttempts(cfg.Retry.Attempts),
		retry.WithDelay(cfg.Retry.Delay),
	)

	var store blobStore
	err := r.Execute(ctx, func() error {
		switch cfg.StorageBackend {
		case config.BackendRedis:
			c, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Username, cfg.Redis.Password, cfg.Redis.DB)
			if err != nil {
				return err
			}
			store = c
		case config.BackendLevelDB:
			s, err := leveldb.Open(cfg.LevelDB.Path)
			if err != nil {
				return err
			}
			store = s
		case config.BackendMemory:
			store = memory.NewStore()
		default:
			return fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.StorageBackend, err)
	}

	logger.Info(ctx, "storage opened", "storage.backend", cfg.StorageBackend)
	return store, nil
}
