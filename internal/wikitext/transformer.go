package wikitext

import (
	"context"
	"strings"

	"github.com/goliatone/go-wikitext/internal/wikitext/scanner"
)

// Transformer converts wikitext into an HTML fragment. It holds no per-call
// state and is safe for concurrent use when its finders are.
type Transformer struct {
	links       *LinkResolver
	images      *ImageExpander
	imagePrefix string
	onDirective func(kind scanner.Kind)
}

// NewTransformer dispatches link directives to links and image directives,
// recognised by imagePrefix, to images.
func NewTransformer(links *LinkResolver, images *ImageExpander, imagePrefix string) *Transformer {
	if imagePrefix == "" {
		imagePrefix = scanner.DefaultImagePrefix
	}
	return &Transformer{links: links, images: images, imagePrefix: imagePrefix}
}

// Transform renders text for locale. Blank lines separate paragraphs; each
// paragraph becomes <p>...\n</p> except image figures, which are emitted
// between paragraphs. Everything outside directives is escaped.
func (t *Transformer) Transform(ctx context.Context, text, locale string) (string, error) {
	var blocks []string
	for _, para := range paragraphs(text) {
		rendered, err := t.paragraph(ctx, para, locale)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, rendered...)
	}
	return strings.Join(blocks, "\n"), nil
}

func (t *Transformer) paragraph(ctx context.Context, text, locale string) ([]string, error) {
	var (
		pieces  []Fragment
		inline  strings.Builder
		figures bool
	)

	for _, span := range scanner.Scan(text) {
		if span.Kind == scanner.SpanText {
			inline.WriteString(EscapeText(span.Text))
			continue
		}
		fragment, err := t.Directive(ctx, span.Text, locale)
		if err != nil {
			return nil, err
		}
		if !fragment.Block {
			inline.WriteString(fragment.HTML)
			continue
		}
		figures = true
		pieces = append(pieces, Fragment{HTML: inline.String()}, fragment)
		inline.Reset()
	}
	pieces = append(pieces, Fragment{HTML: inline.String()})

	out := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		if piece.Block {
			out = append(out, piece.HTML)
			continue
		}
		content := piece.HTML
		if figures {
			content = strings.TrimSpace(content)
		}
		if strings.TrimSpace(content) == "" {
			continue
		}
		out = append(out, "<p>"+content+"\n</p>")
	}
	return out, nil
}

// Directive renders a single [[...]] body. Other markup front ends use it to
// share link and image handling with Transform.
func (t *Transformer) Directive(ctx context.Context, body, locale string) (Fragment, error) {
	tag := scanner.ParseWithPrefix(body, t.imagePrefix)
	if t.onDirective != nil {
		t.onDirective(tag.Kind)
	}
	if tag.Kind == scanner.KindImage {
		return t.images.Expand(ctx, tag.Title, tag.Params, locale)
	}
	html, err := t.links.Render(ctx, tag, locale)
	if err != nil {
		return Fragment{}, err
	}
	return Fragment{HTML: html}, nil
}

// paragraphs splits on blank lines and normalises line endings. Lines inside
// a paragraph keep their original text.
func paragraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var (
		out     []string
		current []string
	)
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				out = append(out, strings.Join(current, "\n"))
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		out = append(out, strings.Join(current, "\n"))
	}
	return out
}
