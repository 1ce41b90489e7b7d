// Package storage selects and builds the dataset repository backend from
// configuration. The dataset is always one whole document; the backends only
// differ in where that document lives.
package storage

import (
	"context"
	"fmt"

	portsrepo "github.com/demostra/feria_budget_app/internal/core/ports/repositories"
	"github.com/demostra/feria_budget_app/internal/platform/config"
	"github.com/demostra/feria_budget_app/internal/repositories/storage/file"
	"github.com/demostra/feria_budget_app/internal/repositories/storage/pgsql"
	"github.com/demostra/feria_budget_app/internal/repositories/storage/redis"
	"github.com/demostra/feria_budget_app/pkg/database"
	goredis "github.com/redis/go-redis/v9"
)

// Backend bundles the chosen repository with the resources it owns. The
// owned connection (pgx pool or redis client) stays private; Close releases
// it on shutdown.
type Backend struct {
	Repo portsrepo.DatasetRepository

	closeFn func() error
}

// Close releases backend resources, if any.
func (b *Backend) Close() error {
	if b.closeFn == nil {
		return nil
	}
	return b.closeFn()
}

// New builds the dataset storage backend named by the configuration.
func New(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.StorageBackend {
	case config.BackendPgsql:
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("pgsql backend: %w", err)
		}
		return &Backend{
			Repo:    pgsql.NewPgxDatasetRepository(pool, cfg.DatasetKey),
			closeFn: func() error { database.ClosePgxPool(pool); return nil },
		}, nil

	case config.BackendRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis backend: %w", err)
		}
		return &Backend{
			Repo:    redis.NewRedisDatasetRepository(client, cfg.DatasetKey),
			closeFn: client.Close,
		}, nil

	case config.BackendFile:
		return &Backend{Repo: file.NewFileDatasetRepository(cfg.FileDBPath)}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
