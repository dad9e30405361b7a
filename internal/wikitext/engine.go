// Package wikitext renders knowledge-base markup: [[Title#hash|name]] links,
// [[Image:title|params]] figures and escaped literal text, resolving titles
// against locale-partitioned documents and media with default-locale fallback.
package wikitext

import (
	"context"
	"time"

	"github.com/goliatone/go-wikitext/internal/logging"
	"github.com/goliatone/go-wikitext/internal/routes"
	"github.com/goliatone/go-wikitext/internal/wikitext/scanner"
	"github.com/goliatone/go-wikitext/pkg/interfaces"
)

// Engine wires the resolvers, expanders and transformer for one default locale.
type Engine struct {
	defaultLocale string
	links         *LinkResolver
	params        *ParamParser
	images        *ImageExpander
	transformer   *Transformer
	markup        interfaces.MarkupParser
	metrics       interfaces.RenderMetrics
	logger        interfaces.Logger
	now           func() time.Time
}

// MarkupFactory builds an alternative source parser that renders directives
// through the supplied function.
type MarkupFactory func(directive func(ctx context.Context, body, locale string) (string, error)) interfaces.MarkupParser

type engineConfig struct {
	routes         routes.Builder
	rel            string
	relSet         bool
	imagePrefix    string
	legacyAlt      bool
	translator     interfaces.Translator
	metrics        interfaces.RenderMetrics
	loggerProvider interfaces.LoggerProvider
	markup         MarkupFactory
	now            func() time.Time
}

// Option customises an Engine.
type Option func(*engineConfig)

// WithRouteBuilder replaces the default path layout for document URLs.
func WithRouteBuilder(builder routes.Builder) Option {
	return func(c *engineConfig) {
		c.routes = builder
	}
}

// WithRel overrides the rel attribute on internal links.
func WithRel(rel string) Option {
	return func(c *engineConfig) {
		c.rel = rel
		c.relSet = true
	}
}

// WithImagePrefix changes the directive prefix that marks an image.
func WithImagePrefix(prefix string) Option {
	return func(c *engineConfig) {
		c.imagePrefix = prefix
	}
}

// WithLegacyAlt toggles double-escaping of explicit alt= values.
func WithLegacyAlt(enabled bool) Option {
	return func(c *engineConfig) {
		c.legacyAlt = enabled
	}
}

// WithTranslator localises the missing-image placeholder.
func WithTranslator(translator interfaces.Translator) Option {
	return func(c *engineConfig) {
		c.translator = translator
	}
}

// WithMetrics records render timings and directive counts.
func WithMetrics(metrics interfaces.RenderMetrics) Option {
	return func(c *engineConfig) {
		c.metrics = metrics
	}
}

// WithLoggerProvider supplies module loggers.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *engineConfig) {
		c.loggerProvider = provider
	}
}

// WithMarkup replaces the wikitext paragraph transformer with another source
// syntax. Directives keep resolving through the engine.
func WithMarkup(factory MarkupFactory) Option {
	return func(c *engineConfig) {
		c.markup = factory
	}
}

// WithClock overrides the clock used for render timings.
func WithClock(now func() time.Time) Option {
	return func(c *engineConfig) {
		c.now = now
	}
}

// NewEngine builds an Engine. Either finder may be nil, in which case every
// lookup of that kind misses.
func NewEngine(defaultLocale string, docs interfaces.DocumentFinder, assets interfaces.AssetFinder, opts ...Option) *Engine {
	cfg := engineConfig{legacyAlt: true, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.metrics == nil {
		cfg.metrics = NoOpMetrics()
	}
	if cfg.now == nil {
		cfg.now = time.Now
	}

	linksLogger := logging.LinksLogger(cfg.loggerProvider)
	imagesLogger := logging.ImagesLogger(cfg.loggerProvider)

	linkOpts := []LinkOption{WithRoutes(cfg.routes), WithLinkLogger(linksLogger)}
	if cfg.relSet {
		linkOpts = append(linkOpts, WithLinkRel(cfg.rel))
	}
	links := NewLinkResolver(NewDocumentResolver(docs, defaultLocale, linksLogger), linkOpts...)
	params := NewParamParser(links)
	images := NewImageExpander(NewAssetResolver(assets, defaultLocale, imagesLogger), params,
		WithMessages(NewMessages(cfg.translator)),
		WithLegacyAltEscaping(cfg.legacyAlt),
		WithImageLogger(imagesLogger),
	)

	transformer := NewTransformer(links, images, cfg.imagePrefix)
	metrics := cfg.metrics
	transformer.onDirective = func(kind scanner.Kind) {
		metrics.IncrementDirective(kind.String())
	}
	links.onMissing = metrics.IncrementMissing
	images.onMissing = metrics.IncrementMissing

	engine := &Engine{
		defaultLocale: defaultLocale,
		links:         links,
		params:        params,
		images:        images,
		transformer:   transformer,
		metrics:       metrics,
		logger:        logging.RenderLogger(cfg.loggerProvider),
		now:           cfg.now,
	}
	if cfg.markup != nil {
		engine.markup = cfg.markup(engine.Directive)
	}
	return engine
}

// Render converts text to HTML for locale. An empty locale means the default
// locale. Only repository failures are returned as errors.
func (e *Engine) Render(ctx context.Context, text, locale string) (string, error) {
	if locale == "" {
		locale = e.defaultLocale
	}
	logger := e.logger.WithContext(ctx)
	start := e.now()

	html, err := e.convert(ctx, text, locale)
	elapsed := e.now().Sub(start)
	if err != nil {
		e.metrics.IncrementError("render")
		logger.Error("wikitext.render.failed", "locale", locale, "error", err)
		return "", err
	}

	e.metrics.ObserveRender(elapsed, locale)
	logger.Debug("wikitext.render.completed", "locale", locale, "bytes", len(html), "duration", elapsed)
	return html, nil
}

func (e *Engine) convert(ctx context.Context, text, locale string) (string, error) {
	if e.markup == nil {
		return e.transformer.Transform(ctx, text, locale)
	}
	out, err := e.markup.Parse(ctx, []byte(text), locale)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Directive renders a single directive body to HTML.
func (e *Engine) Directive(ctx context.Context, body, locale string) (string, error) {
	if locale == "" {
		locale = e.defaultLocale
	}
	fragment, err := e.transformer.Directive(ctx, body, locale)
	if err != nil {
		return "", err
	}
	return fragment.HTML, nil
}

// DefaultLocale reports the fallback locale.
func (e *Engine) DefaultLocale() string { return e.defaultLocale }

// Links exposes the link resolver.
func (e *Engine) Links() *LinkResolver { return e.links }

// Params exposes the image parameter parser.
func (e *Engine) Params() *ParamParser { return e.params }

// Images exposes the image expander.
func (e *Engine) Images() *ImageExpander { return e.images }

// Transformer exposes the markup transformer.
func (e *Engine) Transformer() *Transformer { return e.transformer }
