package media

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-wikitext/internal/identity"
)

// NewAssetRepository creates the go-repository-bun repository for assets.
func NewAssetRepository(db *bun.DB) repository.Repository[*Asset] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Asset]{
		NewRecord: func() *Asset { return &Asset{} },
		GetID: func(asset *Asset) uuid.UUID {
			return asset.ID
		},
		SetID: func(asset *Asset, id uuid.UUID) {
			asset.ID = id
		},
		GetIdentifier: func() string {
			return "url"
		},
		GetIdentifierValue: func(asset *Asset) string {
			return asset.URL
		},
	})
}

// BunRepository implements Repository on bun with optional caching.
type BunRepository struct {
	repo repository.Repository[*Asset]
}

var _ Repository = (*BunRepository)(nil)

// NewBunRepository creates an asset repository without caching.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache creates an asset repository with caching support.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunRepository {
	base := NewAssetRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunRepository{repo: base}
}

func (r *BunRepository) Create(ctx context.Context, asset *Asset) (*Asset, error) {
	return r.repo.Create(ctx, asset)
}

func (r *BunRepository) Update(ctx context.Context, asset *Asset) (*Asset, error) {
	updated, err := r.repo.Update(ctx, asset,
		repository.UpdateByID(asset.ID.String()),
		repository.UpdateColumns("title", "locale", "url", "mime_type", "width", "height", "updated_at"),
	)
	if err != nil {
		return nil, mapRepositoryError(err, asset.ID.String())
	}
	return updated, nil
}

// Get looks up the asset stored under exactly (title, locale).
func (r *BunRepository) Get(ctx context.Context, title, locale string) (*Asset, error) {
	record, err := r.repo.GetByID(ctx, identity.AssetUUID(title, locale).String())
	if err != nil {
		return nil, mapRepositoryError(err, locale+":"+title)
	}
	return record, nil
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Asset, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunRepository) List(ctx context.Context, locale string) ([]*Asset, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		if locale != "" {
			q = q.Where("?TableAlias.locale = ?", locale)
		}
		return q.Order("locale ASC", "title ASC")
	}))
	return records, err
}

func (r *BunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.repo.Delete(ctx, &Asset{ID: id})
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) || errors.Is(err, sql.ErrNoRows) {
		return &NotFoundError{Key: key}
	}
	return fmt.Errorf("media repository error: %w", err)
}
