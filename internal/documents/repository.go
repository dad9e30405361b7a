package documents

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrTitleRequired  = errors.New("documents: title is required")
	ErrLocaleRequired = errors.New("documents: locale is required")
	ErrSlugInvalid    = errors.New("documents: slug is invalid")
)

// Repository persists documents keyed by (title, locale).
type Repository interface {
	Create(ctx context.Context, doc *Document) (*Document, error)
	Update(ctx context.Context, doc *Document) (*Document, error)
	Get(ctx context.Context, title, locale string) (*Document, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Document, error)
	// List returns documents in locale, or every document when locale is empty.
	List(ctx context.Context, locale string) ([]*Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotFoundError is returned when a document cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

func documentKey(title, locale string) string {
	return locale + ":" + title
}
