package commands

import (
	"context"
	"errors"
	"os"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-wikitext/internal/corpus"
	"github.com/goliatone/go-wikitext/internal/documents"
	"github.com/goliatone/go-wikitext/internal/fallback"
	"github.com/goliatone/go-wikitext/internal/logging"
	"github.com/goliatone/go-wikitext/internal/media"
	"github.com/goliatone/go-wikitext/pkg/interfaces"
)

const (
	loadOperation   = "corpus.load"
	renderOperation = "documents.render"
	exportOperation = "corpus.export"
)

var (
	_ command.Commander[LoadCorpusCommand]     = (*Handler[LoadCorpusCommand])(nil)
	_ command.Commander[RenderDocumentCommand] = (*Handler[RenderDocumentCommand])(nil)
	_ command.Commander[ExportCorpusCommand]   = (*Handler[ExportCorpusCommand])(nil)
)

// Renderer converts document source to HTML for a locale.
type Renderer interface {
	Render(ctx context.Context, text, locale string) (string, error)
}

// Renderers picks a Renderer by document syntax.
type Renderers struct {
	Default  Renderer
	BySyntax map[string]Renderer
}

// For returns the renderer registered for syntax, or Default.
func (r Renderers) For(syntax string) Renderer {
	if renderer, ok := r.BySyntax[strings.TrimSpace(syntax)]; ok && renderer != nil {
		return renderer
	}
	return r.Default
}

// NewLoadCorpusHandler imports corpus directories into docs and assets.
func NewLoadCorpusHandler(docs *documents.Service, assets *media.Service, logger interfaces.Logger, opts ...HandlerOption[LoadCorpusCommand]) *Handler[LoadCorpusCommand] {
	logger = ensureLogger(logger)
	exec := func(ctx context.Context, msg LoadCorpusCommand) error {
		info, err := os.Stat(msg.Directory)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return errors.New("commands: corpus path is not a directory")
		}
		loader := corpus.NewLoader(os.DirFS(msg.Directory), docs, assets,
			corpus.WithLocales(msg.Locales...),
			corpus.WithLogger(logger),
		)
		result, err := loader.Load(ctx)
		if err != nil {
			return err
		}
		logger.Info("wikitext.command.corpus_loaded",
			"locales", len(result.Locales),
			"documents", result.Documents,
			"assets", result.Assets,
		)
		return nil
	}

	base := []HandlerOption[LoadCorpusCommand]{
		WithLogger[LoadCorpusCommand](logger),
		WithOperation[LoadCorpusCommand](loadOperation),
		WithMessageFields(func(msg LoadCorpusCommand) map[string]any {
			return map[string]any{"directory": msg.Directory}
		}),
		WithTelemetry(DefaultTelemetry[LoadCorpusCommand](logger)),
	}
	return NewHandler(exec, append(base, opts...)...)
}

// NewRenderDocumentHandler renders a stored document to sink, falling back to
// the default locale copy when the requested locale has none.
func NewRenderDocumentHandler(docs *documents.Service, renderers Renderers, sink Sink, defaultLocale string, logger interfaces.Logger, opts ...HandlerOption[RenderDocumentCommand]) *Handler[RenderDocumentCommand] {
	logger = ensureLogger(logger)
	lookup := documentLookup(docs, defaultLocale, logger)

	exec := func(ctx context.Context, msg RenderDocumentCommand) error {
		title, locale := strings.TrimSpace(msg.Title), strings.TrimSpace(msg.Locale)
		ref, err := lookup.Lookup(ctx, title, locale)
		if err != nil {
			return err
		}
		if !ref.Found {
			return ErrDocumentNotFound
		}
		rendered, err := render(ctx, renderers, ref.Handle, locale)
		if err != nil {
			return err
		}
		return sink.Write(ctx, rendered)
	}

	base := []HandlerOption[RenderDocumentCommand]{
		WithLogger[RenderDocumentCommand](logger),
		WithOperation[RenderDocumentCommand](renderOperation),
		WithMessageFields(func(msg RenderDocumentCommand) map[string]any {
			return map[string]any{"title": msg.Title, "locale": msg.Locale}
		}),
		WithTelemetry(DefaultTelemetry[RenderDocumentCommand](logger)),
	}
	return NewHandler(exec, append(base, opts...)...)
}

// NewExportCorpusHandler renders every stored document in its own locale.
func NewExportCorpusHandler(docs *documents.Service, renderers Renderers, sink Sink, logger interfaces.Logger, opts ...HandlerOption[ExportCorpusCommand]) *Handler[ExportCorpusCommand] {
	logger = ensureLogger(logger)
	exec := func(ctx context.Context, msg ExportCorpusCommand) error {
		stored, err := docs.List(ctx, msg.Locale)
		if err != nil {
			return err
		}
		for _, doc := range stored {
			if err := ctx.Err(); err != nil {
				return err
			}
			rendered, err := render(ctx, renderers, doc, doc.Locale)
			if err != nil {
				return err
			}
			if err := sink.Write(ctx, rendered); err != nil {
				return err
			}
		}
		logger.Info("wikitext.command.corpus_exported", "documents", len(stored))
		return nil
	}

	base := []HandlerOption[ExportCorpusCommand]{
		WithLogger[ExportCorpusCommand](logger),
		WithOperation[ExportCorpusCommand](exportOperation),
		WithMessageFields(func(msg ExportCorpusCommand) map[string]any {
			if msg.Locale == "" {
				return nil
			}
			return map[string]any{"locale": msg.Locale}
		}),
		WithTelemetry(DefaultTelemetry[ExportCorpusCommand](logger)),
	}
	return NewHandler(exec, append(base, opts...)...)
}

func render(ctx context.Context, renderers Renderers, doc *documents.Document, locale string) (RenderedDocument, error) {
	renderer := renderers.For(doc.Syntax)
	if renderer == nil {
		return RenderedDocument{}, errors.New("commands: no renderer for syntax " + doc.Syntax)
	}
	html, err := renderer.Render(ctx, doc.Body, locale)
	if err != nil {
		return RenderedDocument{}, err
	}
	return RenderedDocument{
		Title:        doc.Title,
		Slug:         doc.Slug,
		Locale:       locale,
		SourceLocale: doc.Locale,
		HTML:         html,
	}, nil
}

func documentLookup(docs *documents.Service, defaultLocale string, logger interfaces.Logger) *fallback.Resolver[*documents.Document] {
	finder := interfaces.FinderFunc[*documents.Document](func(ctx context.Context, title, locale string) (*documents.Document, bool, error) {
		doc, err := docs.Get(ctx, title, locale)
		if documents.IsNotFound(err) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, err
		}
		return doc, true, nil
	})
	return fallback.New(finder, defaultLocale,
		fallback.WithKind[*documents.Document]("document", "DOCUMENT_LOOKUP_FAILED"),
		fallback.WithLogger[*documents.Document](logger),
	)
}

func ensureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return logging.NoOp()
	}
	return logger
}
