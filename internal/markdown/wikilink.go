package markdown

import (
	"bytes"
	"context"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/goliatone/go-wikitext/internal/wikitext/scanner"
)

// KindDirective is the ast kind of a [[...]] span.
var KindDirective = ast.NewNodeKind("WikiDirective")

// Directive is an inline [[...]] span. Body excludes the brackets.
type Directive struct {
	ast.BaseInline
	Body string
}

func (n *Directive) Kind() ast.NodeKind { return KindDirective }

func (n *Directive) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Body": n.Body}, nil)
}

// wikilinks registers the directive parser ahead of goldmark's link parser,
// which shares the [ trigger.
type wikilinks struct {
	ctx    context.Context
	locale string
	render DirectiveFunc
}

const directivePriority = 199

func (w *wikilinks) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(directiveParser{}, directivePriority),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&directiveRenderer{ctx: w.ctx, locale: w.locale, render: w.render}, directivePriority),
	))
}

type directiveParser struct{}

func (directiveParser) Trigger() []byte { return []byte{'['} }

// linePairsKey caches the bracket pairs of the line being parsed so every [
// trigger on that line is answered without rescanning it.
var linePairsKey = parser.NewContextKey()

type linePairs struct {
	start int
	stop  int
	opens map[int]int
}

// Parse claims [[...]] only when it is an outermost pair closing on the same
// line with a non-blank body. Anything else falls through to the link parser.
func (directiveParser) Parse(_ ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, segment := block.PeekLine()
	if len(line) < 2 || line[0] != '[' || line[1] != '[' {
		return nil
	}

	cached, _ := pc.Get(linePairsKey).(*linePairs)
	if cached == nil || cached.stop != segment.Stop || segment.Start < cached.start {
		cached = &linePairs{start: segment.Start, stop: segment.Stop, opens: map[int]int{}}
		for _, pair := range scanner.Pairs(string(line)) {
			cached.opens[segment.Start+pair.Open] = segment.Start + pair.Close
		}
		pc.Set(linePairsKey, cached)
	}

	closeAt, ok := cached.opens[segment.Start]
	if !ok {
		return nil
	}
	end := closeAt - segment.Start
	body := line[2:end]
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	block.Advance(end + 2)
	return &Directive{Body: string(body)}
}

type directiveRenderer struct {
	ctx    context.Context
	locale string
	render DirectiveFunc
}

func (r *directiveRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindDirective, r.renderDirective)
}

func (r *directiveRenderer) renderDirective(w util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	node := n.(*Directive)
	html, err := r.render(r.ctx, node.Body, r.locale)
	if err != nil {
		return ast.WalkStop, err
	}
	_, _ = w.WriteString(html)
	return ast.WalkSkipChildren, nil
}
