// Package fallback resolves locale-partitioned entities, trying the requested
// locale first and the configured default locale second.
package fallback

import (
	"context"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-wikitext/internal/logging"
	"github.com/goliatone/go-wikitext/pkg/interfaces"
)

// Reference is the outcome of a lookup. Found is false when neither locale
// matched; Title then carries the title that was asked for.
type Reference[H any] struct {
	Handle H
	Locale string
	Title  string
	Found  bool
}

// Resolver runs the fallback algorithm over a single finder.
type Resolver[H any] struct {
	finder        interfaces.Finder[H]
	defaultLocale string
	kind          string
	textCode      string
	logger        interfaces.Logger
}

// Option customises a Resolver.
type Option[H any] func(*Resolver[H])

// WithLogger sets the logger used for lookup diagnostics.
func WithLogger[H any](logger interfaces.Logger) Option[H] {
	return func(r *Resolver[H]) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithKind labels lookups and wrapped errors, e.g. "document" or "asset".
func WithKind[H any](kind, textCode string) Option[H] {
	return func(r *Resolver[H]) {
		if trimmed := strings.TrimSpace(kind); trimmed != "" {
			r.kind = trimmed
		}
		if trimmed := strings.TrimSpace(textCode); trimmed != "" {
			r.textCode = trimmed
		}
	}
}

// New builds a resolver. The default locale is the single locale consulted
// when the requested one has no match.
func New[H any](finder interfaces.Finder[H], defaultLocale string, opts ...Option[H]) *Resolver[H] {
	r := &Resolver[H]{
		finder:        finder,
		defaultLocale: strings.TrimSpace(defaultLocale),
		kind:          "entity",
		textCode:      "LOOKUP_FAILED",
		logger:        logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// DefaultLocale reports the fallback locale.
func (r *Resolver[H]) DefaultLocale() string {
	return r.defaultLocale
}

// Lookup finds title in locale, then in the default locale. Absence is not an
// error; only finder failures are returned.
func (r *Resolver[H]) Lookup(ctx context.Context, title, locale string) (Reference[H], error) {
	ref := Reference[H]{Title: title}
	if r == nil || r.finder == nil {
		return ref, nil
	}

	for _, candidate := range r.candidates(locale) {
		handle, ok, err := r.finder.Find(ctx, title, candidate)
		if err != nil {
			return ref, r.wrap(err, title, candidate)
		}
		if ok {
			logging.WithLookupContext(r.logger, r.kind, title, candidate).Trace("wikitext.fallback.hit", "requested_locale", locale)
			return Reference[H]{Handle: handle, Locale: candidate, Title: title, Found: true}, nil
		}
	}

	logging.WithLookupContext(r.logger, r.kind, title, locale).Debug("wikitext.fallback.miss")
	return ref, nil
}

// Resolve returns the matching handle or def unchanged.
func (r *Resolver[H]) Resolve(ctx context.Context, title, locale string, def H) (H, error) {
	ref, err := r.Lookup(ctx, title, locale)
	if err != nil {
		return def, err
	}
	if !ref.Found {
		return def, nil
	}
	return ref.Handle, nil
}

func (r *Resolver[H]) candidates(locale string) []string {
	if locale == r.defaultLocale || r.defaultLocale == "" {
		return []string{locale}
	}
	return []string{locale, r.defaultLocale}
}

func (r *Resolver[H]) wrap(err error, title, locale string) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryExternal, r.kind+" lookup failed").
		WithTextCode(r.textCode).
		WithMetadata(map[string]any{
			"kind":   r.kind,
			"title":  title,
			"locale": locale,
		})
}
