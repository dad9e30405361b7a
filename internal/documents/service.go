package documents

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-wikitext/internal/identity"
	"github.com/goliatone/go-wikitext/internal/logging"
	"github.com/goliatone/go-wikitext/pkg/interfaces"
)

// SaveInput describes a document to create or replace.
type SaveInput struct {
	Title  string
	Locale string
	// Slug is derived from Title when blank.
	Slug   string
	Syntax string
	Body   string
}

// Service manages stored documents and exposes them to the renderer.
type Service struct {
	repo   Repository
	now    func() time.Time
	logger interfaces.Logger
}

// ServiceOption customises a Service.
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

// Save creates the document or replaces the one stored under the same
// (title, locale).
func (s *Service) Save(ctx context.Context, input SaveInput) (*Document, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	locale := strings.TrimSpace(input.Locale)
	if locale == "" {
		return nil, ErrLocaleRequired
	}
	slug := strings.TrimSpace(input.Slug)
	if slug != "" && !IsValidSlug(slug) {
		return nil, ErrSlugInvalid
	}
	if slug == "" {
		slug = Slugify(title)
	}

	now := s.now().UTC()
	doc := &Document{
		ID:        identity.DocumentUUID(title, locale),
		Title:     title,
		Locale:    locale,
		Slug:      slug,
		Syntax:    strings.TrimSpace(input.Syntax),
		Body:      input.Body,
		CreatedAt: now,
		UpdatedAt: now,
	}

	logger := logging.WithLookupContext(s.logger, "document", title, locale)
	existing, err := s.repo.GetByID(ctx, doc.ID)
	switch {
	case err == nil:
		doc.CreatedAt = existing.CreatedAt
		updated, err := s.repo.Update(ctx, doc)
		if err != nil {
			return nil, err
		}
		logger.Debug("wikitext.documents.updated", "slug", slug)
		return updated, nil
	case IsNotFound(err):
		created, err := s.repo.Create(ctx, doc)
		if err != nil {
			return nil, err
		}
		logger.Debug("wikitext.documents.created", "slug", slug)
		return created, nil
	default:
		return nil, err
	}
}

// Get returns the document stored under exactly (title, locale).
func (s *Service) Get(ctx context.Context, title, locale string) (*Document, error) {
	return s.repo.Get(ctx, strings.TrimSpace(title), strings.TrimSpace(locale))
}

// List returns stored documents, optionally restricted to one locale.
func (s *Service) List(ctx context.Context, locale string) ([]*Document, error) {
	return s.repo.List(ctx, strings.TrimSpace(locale))
}

// Delete removes the document stored under (title, locale).
func (s *Service) Delete(ctx context.Context, title, locale string) error {
	return s.repo.Delete(ctx, identity.DocumentUUID(strings.TrimSpace(title), strings.TrimSpace(locale)))
}

// Finder exposes the service as a renderer lookup.
func (s *Service) Finder() interfaces.DocumentFinder {
	return NewFinder(s.repo)
}

type finder struct {
	repo Repository
}

// NewFinder adapts a Repository to interfaces.DocumentFinder. Not-found
// errors become misses; anything else is returned.
func NewFinder(repo Repository) interfaces.DocumentFinder {
	return finder{repo: repo}
}

func (f finder) Find(ctx context.Context, title, locale string) (interfaces.DocumentHandle, bool, error) {
	if f.repo == nil {
		return interfaces.DocumentHandle{}, false, nil
	}
	doc, err := f.repo.Get(ctx, title, locale)
	if err != nil {
		if IsNotFound(err) {
			return interfaces.DocumentHandle{}, false, nil
		}
		return interfaces.DocumentHandle{}, false, err
	}
	return doc.Handle(), true, nil
}
