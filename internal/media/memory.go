package media

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-wikitext/internal/identity"
)

type memoryRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*Asset
}

// NewMemoryRepository constructs an in-memory asset repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{byID: make(map[uuid.UUID]*Asset)}
}

func (m *memoryRepository) Create(_ context.Context, asset *Asset) (*Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneAsset(asset)
	m.byID[cloned.ID] = cloned
	return cloneAsset(cloned), nil
}

func (m *memoryRepository) Update(_ context.Context, asset *Asset) (*Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[asset.ID]; !ok {
		return nil, &NotFoundError{Key: asset.ID.String()}
	}
	cloned := cloneAsset(asset)
	m.byID[cloned.ID] = cloned
	return cloneAsset(cloned), nil
}

func (m *memoryRepository) Get(ctx context.Context, title, locale string) (*Asset, error) {
	asset, err := m.GetByID(ctx, identity.AssetUUID(title, locale))
	if err != nil {
		return nil, &NotFoundError{Key: locale + ":" + title}
	}
	return asset, nil
}

func (m *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Key: id.String()}
	}
	return cloneAsset(record), nil
}

func (m *memoryRepository) List(_ context.Context, locale string) ([]*Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Asset, 0, len(m.byID))
	for _, asset := range m.byID {
		if locale == "" || asset.Locale == locale {
			out = append(out, cloneAsset(asset))
		}
	}
	slices.SortFunc(out, func(a, b *Asset) int {
		return cmp.Or(cmp.Compare(a.Locale, b.Locale), cmp.Compare(a.Title, b.Title))
	})
	return out, nil
}

func (m *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return &NotFoundError{Key: id.String()}
	}
	delete(m.byID, id)
	return nil
}
