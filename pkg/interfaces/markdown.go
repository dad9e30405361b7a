package interfaces

import "context"

// MarkupParser converts author source into an HTML fragment for a locale.
type MarkupParser interface {
	Parse(ctx context.Context, source []byte, locale string) ([]byte, error)
}

// ParseOptions customises Markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	HardWraps  bool
}
