package wikitext

import (
	"context"
	"strings"

	"github.com/goliatone/go-wikitext/internal/commands"
	"github.com/goliatone/go-wikitext/internal/di"
	"github.com/goliatone/go-wikitext/internal/documents"
	"github.com/goliatone/go-wikitext/internal/media"
	wt "github.com/goliatone/go-wikitext/internal/wikitext"
)

// Engine exports the render pipeline.
type Engine = wt.Engine

// LinkResolver exports the wiki link resolver.
type LinkResolver = wt.LinkResolver

// ImageExpander exports the image tag expander.
type ImageExpander = wt.ImageExpander

// DocumentService exports the document store.
type DocumentService = documents.Service

// SaveDocumentInput describes a document to store.
type SaveDocumentInput = documents.SaveInput

// MediaService exports the asset store.
type MediaService = media.Service

// RegisterAssetInput describes an image to store.
type RegisterAssetInput = media.RegisterInput

// CommandHandlers exports the go-command handlers for corpus workflows.
type CommandHandlers = commands.HandlerSet

type (
	LoadCorpusCommand     = commands.LoadCorpusCommand
	RenderDocumentCommand = commands.RenderDocumentCommand
	ExportCorpusCommand   = commands.ExportCorpusCommand
	RenderedDocument      = commands.RenderedDocument
	Sink                  = commands.Sink
	MemorySink            = commands.MemorySink
	WriterSink            = commands.WriterSink
	DirectorySink         = commands.DirectorySink
)

// Option customises the module wiring.
type Option = di.Option

var (
	WithBunDB           = di.WithBunDB
	WithCache           = di.WithCache
	WithLoggerProvider  = di.WithLoggerProvider
	WithDocumentFinder  = di.WithDocumentFinder
	WithAssetFinder     = di.WithAssetFinder
	WithMediaProvider   = di.WithMediaProvider
	WithRouteManager    = di.WithRouteManager
	WithTranslator      = di.WithTranslator
	WithMetrics         = di.WithMetrics
	WithCommandRegistry = di.WithCommandRegistry
	WithCommandSink     = di.WithCommandSink
)

// Module represents the top level renderer façade.
type Module struct {
	container *di.Container
}

// New constructs a renderer using the provided configuration and optional overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Render converts text in the configured default syntax. An empty locale
// renders in the default locale.
func (m *Module) Render(ctx context.Context, text, locale string) (string, error) {
	return m.container.Engine().Render(ctx, text, locale)
}

// RenderSyntax converts text written in syntax. Markdown requires the
// markdown feature; anything else renders as wikitext.
func (m *Module) RenderSyntax(ctx context.Context, text, locale, syntax string) (string, error) {
	if strings.EqualFold(strings.TrimSpace(syntax), SyntaxMarkdown) {
		if engine := m.container.MarkdownEngine(); engine != nil {
			return engine.Render(ctx, text, locale)
		}
		return "", ErrMarkdownFeatureRequired
	}
	return m.container.WikitextEngine().Render(ctx, text, locale)
}

// Engine returns the engine for the configured default syntax.
func (m *Module) Engine() *Engine {
	return m.container.Engine()
}

// Links returns the wiki link resolver.
func (m *Module) Links() *LinkResolver {
	return m.container.Engine().Links()
}

// Images returns the image tag expander.
func (m *Module) Images() *ImageExpander {
	return m.container.Engine().Images()
}

// Documents returns the document store backing links.
func (m *Module) Documents() *DocumentService {
	return m.container.DocumentService()
}

// Media returns the asset store backing images.
func (m *Module) Media() *MediaService {
	return m.container.MediaService()
}

// Commands returns nil when the commands feature is disabled.
func (m *Module) Commands() *CommandHandlers {
	return m.container.Commands()
}

// Close releases resources the module opened itself.
func (m *Module) Close() error {
	return m.container.Close()
}
