package documents

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
	byID map[uuid.UUID]*Document
}

// NewMemoryRepository constructs an in-memory document repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{byID: make(map[uuid.UUID]*Document)}
}

func (m *memoryRepository) Create(_ context.Context, doc *Document) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneDocument(doc)
	m.byID[cloned.ID] = cloned
	return cloneDocument(cloned), nil
}

func (m *memoryRepository) Update(_ context.Context, doc *Document) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[doc.ID]; !ok {
		return nil, &NotFoundError{Resource: "document", Key: doc.ID.String()}
	}
	cloned := cloneDocument(doc)
	m.byID[cloned.ID] = cloned
	return cloneDocument(cloned), nil
}

func (m *memoryRepository) Get(ctx context.Context, title, locale string) (*Document, error) {
	doc, err := m.GetByID(ctx, identity.DocumentUUID(title, locale))
	if err != nil {
		return nil, &NotFoundError{Resource: "document", Key: documentKey(title, locale)}
	}
	return doc, nil
}

func (m *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "document", Key: id.String()}
	}
	return cloneDocument(record), nil
}

func (m *memoryRepository) List(_ context.Context, locale string) ([]*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Document, 0, len(m.byID))
	for _, doc := range m.byID {
		if locale != "" && doc.Locale != locale {
			continue
		}
		out = append(out, cloneDocument(doc))
	}
	slices.SortFunc(out, func(a, b *Document) int {
		return cmp.Or(cmp.Compare(a.Locale, b.Locale), cmp.Compare(a.Title, b.Title))
	})
	return out, nil
}

func (m *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return &NotFoundError{Resource: "document", Key: id.String()}
	}
	delete(m.byID, id)
	return nil
}
