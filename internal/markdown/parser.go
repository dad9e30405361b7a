package markdown

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-wikitext/pkg/interfaces"
)

// GoldmarkParser implements interfaces.MarkupParser. Raw HTML in the source
// is never emitted; it renders as escaped text.
type GoldmarkParser struct {
	directives DirectiveFunc
	defaults   interfaces.ParseOptions
}

// DirectiveFunc renders a directive body to HTML.
type DirectiveFunc func(ctx context.Context, body, locale string) (string, error)

var _ interfaces.MarkupParser = (*GoldmarkParser)(nil)

// NewGoldmarkParser builds a parser that delegates directives to render. A nil
// render leaves [[...]] spans to goldmark's own link handling.
func NewGoldmarkParser(render DirectiveFunc, defaults interfaces.ParseOptions) *GoldmarkParser {
	return &GoldmarkParser{directives: render, defaults: defaults}
}

// Parse renders source with the parser defaults.
func (p *GoldmarkParser) Parse(ctx context.Context, source []byte, locale string) ([]byte, error) {
	return p.ParseWithOptions(ctx, source, locale, p.defaults)
}

// ParseWithOptions renders source using opts. The engine is built per call
// because the wikilink renderer is bound to ctx and locale.
func (p *GoldmarkParser) ParseWithOptions(ctx context.Context, source []byte, locale string, opts interfaces.ParseOptions) ([]byte, error) {
	engine := p.newEngine(ctx, locale, opts)
	var buf bytes.Buffer
	if err := engine.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("markdown parse: %w", err)
	}
	return buf.Bytes(), nil
}

func (p *GoldmarkParser) newEngine(ctx context.Context, locale string, opts interfaces.ParseOptions) goldmark.Markdown {
	exts := append(collectExtensions(opts.Extensions), literalHTML{})
	if p.directives != nil {
		exts = append(exts, &wikilinks{ctx: ctx, locale: locale, render: p.directives})
	}

	rendererOptions := []renderer.Option{}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithExtensions(exts...),
	}
	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}
	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
	"typographer":   extension.Typographer,
}

// KnownExtension reports whether name maps to a goldmark extension.
func KnownExtension(name string) bool {
	_, ok := extensionRegistry[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, ok := seen[key]; ok || key == "" {
			continue
		}
		if ext, ok := extensionRegistry[key]; ok {
			extenders = append(extenders, ext)
			seen[key] = struct{}{}
		}
	}
	return extenders
}

// Factory adapts NewGoldmarkParser to the engine's markup hook.
func Factory(defaults interfaces.ParseOptions) func(directive func(ctx context.Context, body, locale string) (string, error)) interfaces.MarkupParser {
	return func(directive func(ctx context.Context, body, locale string) (string, error)) interfaces.MarkupParser {
		return NewGoldmarkParser(directive, defaults)
	}
}
