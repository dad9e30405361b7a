package wikitext

import (
	"context"
	"strings"
	"unicode"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-wikitext/internal/documents"
	"github.com/goliatone/go-wikitext/internal/fallback"
	"github.com/goliatone/go-wikitext/internal/logging"
	"github.com/goliatone/go-wikitext/internal/routes"
	"github.com/goliatone/go-wikitext/internal/wikitext/scanner"
	"github.com/goliatone/go-wikitext/pkg/interfaces"
)

// DefaultLinkRel is added to every internal link.
const DefaultLinkRel = "nofollow"

// DocumentResolver resolves document titles with locale fallback.
type DocumentResolver = fallback.Resolver[interfaces.DocumentHandle]

// NewDocumentResolver wraps finder in the fallback algorithm.
func NewDocumentResolver(finder interfaces.DocumentFinder, defaultLocale string, logger interfaces.Logger) *DocumentResolver {
	return fallback.New(finder, defaultLocale,
		fallback.WithKind[interfaces.DocumentHandle]("document", "DOCUMENT_LOOKUP_FAILED"),
		fallback.WithLogger[interfaces.DocumentHandle](logger),
	)
}

// LinkResolver turns link directives into anchors.
type LinkResolver struct {
	documents *DocumentResolver
	routes    routes.Builder
	rel       string
	logger    interfaces.Logger
	onMissing func(kind string)
}

// LinkOption customises a LinkResolver.
type LinkOption func(*LinkResolver)

// WithRoutes replaces the default /<locale>/kb/<slug> layout.
func WithRoutes(builder routes.Builder) LinkOption {
	return func(l *LinkResolver) {
		if builder != nil {
			l.routes = builder
		}
	}
}

// WithLinkRel overrides the rel attribute. An empty value omits it.
func WithLinkRel(rel string) LinkOption {
	return func(l *LinkResolver) {
		l.rel = strings.TrimSpace(rel)
	}
}

// WithLinkLogger sets the resolver logger.
func WithLinkLogger(logger interfaces.Logger) LinkOption {
	return func(l *LinkResolver) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLinkResolver builds a LinkResolver over documents.
func NewLinkResolver(documents *DocumentResolver, opts ...LinkOption) *LinkResolver {
	l := &LinkResolver{
		documents: documents,
		routes:    routes.NewPathRoutes("", ""),
		rel:       DefaultLinkRel,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Build returns the URL for title#hash as seen from locale. An empty title
// yields just the fragment. Existing documents link to the locale they were
// found in; unknown titles link to the page-creation flow.
func (l *LinkResolver) Build(ctx context.Context, title, hash, locale string) (string, error) {
	fragment := ""
	if normalized := NormalizeHash(hash); normalized != "" {
		fragment = "#" + normalized
	}

	title = strings.TrimSpace(title)
	if title == "" {
		if fragment == "" {
			return "#", nil
		}
		return fragment, nil
	}

	ref, err := l.documents.Lookup(ctx, title, locale)
	if err != nil {
		return "", err
	}

	var url string
	if ref.Found {
		slug := ref.Handle.Slug
		if slug == "" {
			slug = documents.Slugify(ref.Handle.Title)
		}
		if slug == "" {
			slug = documents.Slugify(title)
		}
		url, err = l.routes.DocumentURL(ref.Locale, slug)
	} else {
		logging.WithLookupContext(l.logger, "link", title, locale).Debug("wikitext.links.missing_document")
		if l.onMissing != nil {
			l.onMissing("link")
		}
		url, err = l.routes.NewDocumentURL(title)
	}
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "link url could not be built").
			WithTextCode("LINK_ROUTE_FAILED")
	}
	return url + fragment, nil
}

// Render produces the anchor for a parsed link directive.
func (l *LinkResolver) Render(ctx context.Context, tag scanner.Tag, locale string) (string, error) {
	href, err := l.Build(ctx, tag.Title, tag.Hash, locale)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(`<a href="`)
	b.WriteString(EscapeAttr(href))
	b.WriteByte('"')
	if l.rel != "" {
		b.WriteString(` rel="`)
		b.WriteString(EscapeAttr(l.rel))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	b.WriteString(EscapeText(DisplayText(tag)))
	b.WriteString("</a>")
	return b.String(), nil
}

// NormalizeHash trims the hash and replaces every inner whitespace rune with
// an underscore.
func NormalizeHash(hash string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(hash))
}

// DisplayText is the explicit name when one was given, otherwise the target
// exactly as authored.
func DisplayText(tag scanner.Tag) string {
	if tag.HasName && strings.TrimSpace(tag.Name) != "" {
		return tag.Name
	}
	return tag.Target
}
