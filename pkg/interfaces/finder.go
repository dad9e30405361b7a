package interfaces

import "context"

// Finder looks up a single entity by title within one locale. A missing entity
// is reported through the boolean, never through the error; errors are
// reserved for infrastructure failures.
type Finder[H any] interface {
	Find(ctx context.Context, title, locale string) (H, bool, error)
}

// FinderFunc adapts a plain function into a Finder.
type FinderFunc[H any] func(ctx context.Context, title, locale string) (H, bool, error)

// Find calls f.
func (f FinderFunc[H]) Find(ctx context.Context, title, locale string) (H, bool, error) {
	return f(ctx, title, locale)
}

// DocumentHandle is what the renderer needs to know about a stored document.
type DocumentHandle struct {
	Title  string
	Slug   string
	Locale string
}

// AssetHandle is what the renderer needs to know about a stored image.
type AssetHandle struct {
	Title  string
	URL    string
	Locale string
}

// DocumentFinder resolves knowledge-base documents.
type DocumentFinder = Finder[DocumentHandle]

// AssetFinder resolves media assets.
type AssetFinder = Finder[AssetHandle]
