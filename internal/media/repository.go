package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrTitleRequired  = errors.New("media: title is required")
	ErrLocaleRequired = errors.New("media: locale is required")
	ErrURLRequired    = errors.New("media: url is required")
)

// Repository persists assets keyed strictly by (title, locale).
type Repository interface {
	Create(ctx context.Context, asset *Asset) (*Asset, error)
	Update(ctx context.Context, asset *Asset) (*Asset, error)
	Get(ctx context.Context, title, locale string) (*Asset, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Asset, error)
	List(ctx context.Context, locale string) ([]*Asset, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotFoundError is returned when an asset cannot be located.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("media asset %q not found", e.Key)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
