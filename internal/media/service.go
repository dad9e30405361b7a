package media

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-wikitext/internal/identity"
	"github.com/goliatone/go-wikitext/internal/logging"
	"github.com/goliatone/go-wikitext/pkg/interfaces"
)

// RegisterInput describes an asset to create or replace.
type RegisterInput struct {
	Title    string
	Locale   string
	URL      string
	MimeType string
	Width    int
	Height   int
}

// Service manages registered assets.
type Service struct {
	repo   Repository
	now    func() time.Time
	logger interfaces.Logger
}

// ServiceOption customises the media service behaviour.
type ServiceOption func(*Service)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService wires a Service over repo.
func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{repo: repo, now: time.Now, logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Register creates the asset or replaces the one stored under the same
// (title, locale).
func (s *Service) Register(ctx context.Context, input RegisterInput) (*Asset, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	locale := strings.TrimSpace(input.Locale)
	if locale == "" {
		return nil, ErrLocaleRequired
	}
	url := strings.TrimSpace(input.URL)
	if url == "" {
		return nil, ErrURLRequired
	}

	now := s.now().UTC()
	asset := &Asset{
		ID:        identity.AssetUUID(title, locale),
		Title:     title,
		Locale:    locale,
		URL:       url,
		MimeType:  strings.TrimSpace(input.MimeType),
		Width:     input.Width,
		Height:    input.Height,
		CreatedAt: now,
		UpdatedAt: now,
	}

	logger := logging.WithLookupContext(s.logger, "image", title, locale)
	existing, err := s.repo.GetByID(ctx, asset.ID)
	switch {
	case err == nil:
		asset.CreatedAt = existing.CreatedAt
		updated, err := s.repo.Update(ctx, asset)
		if err != nil {
			return nil, err
		}
		logger.Debug("wikitext.media.updated", "url", url)
		return updated, nil
	case IsNotFound(err):
		created, err := s.repo.Create(ctx, asset)
		if err != nil {
			return nil, err
		}
		logger.Debug("wikitext.media.registered", "url", url)
		return created, nil
	default:
		return nil, err
	}
}

// Get returns the asset stored under exactly (title, locale).
func (s *Service) Get(ctx context.Context, title, locale string) (*Asset, error) {
	return s.repo.Get(ctx, strings.TrimSpace(title), strings.TrimSpace(locale))
}

// List returns registered assets, optionally restricted to one locale.
func (s *Service) List(ctx context.Context, locale string) ([]*Asset, error) {
	return s.repo.List(ctx, strings.TrimSpace(locale))
}

// Delete removes the asset stored under (title, locale).
func (s *Service) Delete(ctx context.Context, title, locale string) error {
	return s.repo.Delete(ctx, identity.AssetUUID(strings.TrimSpace(title), strings.TrimSpace(locale)))
}

// Finder exposes the service as a renderer lookup.
func (s *Service) Finder() interfaces.AssetFinder {
	return NewFinder(s.repo)
}

type finder struct {
	repo Repository
}

// NewFinder adapts a Repository to interfaces.AssetFinder. The lookup uses
// the requested locale as the storage key and nothing else.
func NewFinder(repo Repository) interfaces.AssetFinder {
	return finder{repo: repo}
}

func (f finder) Find(ctx context.Context, title, locale string) (interfaces.AssetHandle, bool, error) {
	if f.repo == nil {
		return interfaces.AssetHandle{}, false, nil
	}
	asset, err := f.repo.Get(ctx, title, locale)
	if err != nil {
		if IsNotFound(err) {
			return interfaces.AssetHandle{}, false, nil
		}
		return interfaces.AssetHandle{}, false, err
	}
	return asset.Handle(), true, nil
}
