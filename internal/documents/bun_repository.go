package documents

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

// NewDocumentRepository creates the go-repository-bun repository for documents.
func NewDocumentRepository(db *bun.DB) repository.Repository[*Document] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Document]{
		NewRecord: func() *Document { return &Document{} },
		GetID: func(doc *Document) uuid.UUID {
			return doc.ID
		},
		SetID: func(doc *Document, id uuid.UUID) {
			doc.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(doc *Document) string {
			return doc.Slug
		},
	})
}

// BunRepository implements Repository on bun with optional caching. Lookups
// by (title, locale) go through the deterministic document ID so cached
// entries are keyed by the exact pair that was asked for.
type BunRepository struct {
	repo repository.Repository[*Document]
}

var _ Repository = (*BunRepository)(nil)

// NewBunRepository creates a document repository without caching.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache creates a document repository with caching support.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunRepository {
	base := NewDocumentRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunRepository{repo: base}
}

func (r *BunRepository) Create(ctx context.Context, doc *Document) (*Document, error) {
	return r.repo.Create(ctx, doc)
}

func (r *BunRepository) Update(ctx context.Context, doc *Document) (*Document, error) {
	updated, err := r.repo.Update(ctx, doc,
		repository.UpdateByID(doc.ID.String()),
		repository.UpdateColumns("title", "locale", "slug", "syntax", "body", "updated_at"),
	)
	if err != nil {
		return nil, mapRepositoryError(err, doc.ID.String())
	}
	return updated, nil
}

func (r *BunRepository) Get(ctx context.Context, title, locale string) (*Document, error) {
	record, err := r.repo.GetByID(ctx, identity.DocumentUUID(title, locale).String())
	if err != nil {
		return nil, mapRepositoryError(err, documentKey(title, locale))
	}
	return record, nil
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Document, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunRepository) List(ctx context.Context, locale string) ([]*Document, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		if locale != "" {
			q = q.Where("?TableAlias.locale = ?", locale)
		}
		return q.Order("locale ASC", "title ASC")
	}))
	return records, err
}

func (r *BunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.repo.Delete(ctx, &Document{ID: id})
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) || errors.Is(err, sql.ErrNoRows) {
		return &NotFoundError{Resource: "document", Key: key}
	}
	return fmt.Errorf("document repository error: %w", err)
}
