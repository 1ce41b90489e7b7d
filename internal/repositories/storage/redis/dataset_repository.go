package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/demostra/feria_budget_app/internal/apperrors"
	"github.com/demostra/feria_budget_app/internal/core/domain"
	portsrepo "github.com/demostra/feria_budget_app/internal/core/ports/repositories"
	goredis "github.com/redis/go-redis/v9"
)

// RedisDatasetRepository keeps the dataset as one JSON value under a single
// key, the same shape the hosted KV deployment uses.
type RedisDatasetRepository struct {
	client *goredis.Client
	key    string
}

// NewRedisDatasetRepository creates a dataset repository on a redis client.
func NewRedisDatasetRepository(client *goredis.Client, key string) portsrepo.DatasetRepository {
	return &RedisDatasetRepository{client: client, key: key}
}

// Ensure RedisDatasetRepository implements portsrepo.DatasetRepository
var _ portsrepo.DatasetRepository = (*RedisDatasetRepository)(nil)

func (r *RedisDatasetRepository) Load(ctx context.Context) (*domain.Dataset, error) {
	raw, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		// Never written yet.
		return &domain.Dataset{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading dataset %s: %v: %w", r.key, err, apperrors.ErrPersistence)
	}

	var ds domain.Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("decoding dataset %s: %v: %w", r.key, err, apperrors.ErrPersistence)
	}
	return &ds, nil
}

func (r *RedisDatasetRepository) Save(ctx context.Context, dataset *domain.Dataset) error {
	raw, err := json.Marshal(dataset)
	if err != nil {
		return fmt.Errorf("encoding dataset %s: %v: %w", r.key, err, apperrors.ErrPersistence)
	}

	// No TTL: the dataset is the system of record, not a cache entry.
	if err := r.client.Set(ctx, r.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("saving dataset %s: %v: %w", r.key, err, apperrors.ErrPersistence)
	}
	return nil
}
