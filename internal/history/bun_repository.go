package history

import (
	"context"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/uptrace/bun"
)

// BunRecordRepository wraps the generic repository with optional caching for
// read-heavy lookups (the CLI checks the ledger before every publish).
type BunRecordRepository struct {
	repo repository.Repository[*Record]
}

// NewBunRecordRepository constructs an uncached record repository.
func NewBunRecordRepository(db *bun.DB) *BunRecordRepository {
	return NewBunRecordRepositoryWithCache(db, nil, nil)
}

// NewCacheServices builds the cache service and key serializer backing the
// cached repository for the given TTL. A zero or negative TTL disables
// caching and returns nil services, which the repository constructor treats
// as "uncached".
func NewCacheServices(ttl time.Duration) (cache.CacheService, cache.KeySerializer, error) {
	if ttl <= 0 {
		return nil, nil, nil
	}
	cfg := cache.DefaultConfig()
	cfg.TTL = ttl
	service, err := cache.NewCacheService(cfg)
	if err != nil {
		return nil, nil, err
	}
	return service, cache.NewDefaultKeySerializer(), nil
}

// NewBunRecordRepositoryWithCache constructs a record repository with an
// optional read cache.
func NewBunRecordRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRecordRepository {
	base := NewRecordRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunRecordRepository{repo: wrapped}
}

// Upsert stores or replaces the record for its source path.
func (r *BunRecordRepository) Upsert(ctx context.Context, record *Record) (*Record, error) {
	existing, err := r.repo.GetByIdentifier(ctx, record.SourcePath)
	if err == nil && existing != nil {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
		return r.repo.Update(ctx, record)
	}
	return r.repo.Create(ctx, record)
}

// GetBySourcePath fetches the record for a source document, if any.
func (r *BunRecordRepository) GetBySourcePath(ctx context.Context, sourcePath string) (*Record, error) {
	return r.repo.GetByIdentifier(ctx, sourcePath)
}

// List returns every ledger record.
func (r *BunRecordRepository) List(ctx context.Context) ([]*Record, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
