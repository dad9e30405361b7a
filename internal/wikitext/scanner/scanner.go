// Package scanner tokenizes wikitext in two levels: Scan finds [[...]]
// directive spans in a line-oriented pass and Parse splits a directive body
// into title, hash, name and parameters using first-occurrence splits.
package scanner

import "strings"

const (
	openDelim  = "[["
	closeDelim = "]]"
)

// SpanKind distinguishes literal text from directive bodies.
type SpanKind int

const (
	SpanText SpanKind = iota
	SpanDirective
)

// Span is a slice of the input. For directives Text holds the body without
// the surrounding brackets; Raw always holds the original bytes.
type Span struct {
	Kind SpanKind
	Text string
	Raw  string
}

// Pair locates a matched directive: Open is the offset of its [[ and Close
// the offset of its ]].
type Pair struct {
	Open  int
	Close int
}

// Body returns the text between the brackets of p.
func (p Pair) Body(line string) string {
	return line[p.Open+len(openDelim) : p.Close]
}

// End is the offset just past the closing ]].
func (p Pair) End() int {
	return p.Close + len(closeDelim)
}

// Pairs returns the outermost matched [[ ]] pairs of the first line of text,
// in order. Brackets are matched with a stack in a single pass, so an open
// that never closes stays literal while pairs nested inside it still count.
func Pairs(text string) []Pair {
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[:nl]
	}

	var opens []int
	var pairs []Pair
	for i := 0; i < len(text); {
		switch {
		case strings.HasPrefix(text[i:], openDelim):
			opens = append(opens, i)
			i += len(openDelim)
		case strings.HasPrefix(text[i:], closeDelim) && len(opens) > 0:
			open := opens[len(opens)-1]
			opens = opens[:len(opens)-1]
			for len(pairs) > 0 && pairs[len(pairs)-1].Open > open {
				pairs = pairs[:len(pairs)-1]
			}
			pairs = append(pairs, Pair{Open: open, Close: i})
			i += len(closeDelim)
		default:
			i++
		}
	}
	return pairs
}

// Scan splits text into literal and directive spans. Nested [[ ]] pairs are
// matched so a directive ends at its balancing ]]. A directive never crosses
// a line break; unterminated or blank directives stay literal.
func Scan(text string) []Span {
	var spans []Span
	var literal strings.Builder

	flush := func() {
		if literal.Len() > 0 {
			spans = append(spans, Span{Kind: SpanText, Text: literal.String(), Raw: literal.String()})
			literal.Reset()
		}
	}

	for start := 0; start < len(text); {
		end := len(text)
		if nl := strings.IndexByte(text[start:], '\n'); nl >= 0 {
			end = start + nl + 1
		}
		line := text[start:end]

		cursor := 0
		for _, pair := range Pairs(line) {
			body := pair.Body(line)
			if strings.TrimSpace(body) == "" {
				continue
			}
			literal.WriteString(line[cursor:pair.Open])
			flush()
			spans = append(spans, Span{Kind: SpanDirective, Text: body, Raw: line[pair.Open:pair.End()]})
			cursor = pair.End()
		}
		literal.WriteString(line[cursor:])
		start = end
	}
	flush()
	return spans
}
