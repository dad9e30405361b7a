package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// RenderedDocument is the output of a render or export command.
type RenderedDocument struct {
	Title string
	Slug  string
	// Locale is the locale the document was rendered for.
	Locale string
	// SourceLocale is the locale the stored body came from.
	SourceLocale string
	HTML         string
}

// Sink receives rendered documents.
type Sink interface {
	Write(ctx context.Context, doc RenderedDocument) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, doc RenderedDocument) error

func (f SinkFunc) Write(ctx context.Context, doc RenderedDocument) error { return f(ctx, doc) }

// MemorySink keeps rendered documents in write order.
type MemorySink struct {
	mu   sync.Mutex
	docs []RenderedDocument
}

func (s *MemorySink) Write(_ context.Context, doc RenderedDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, doc)
	return nil
}

// Documents returns a copy of everything written so far.
func (s *MemorySink) Documents() []RenderedDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RenderedDocument(nil), s.docs...)
}

// WriterSink streams the HTML of each document to W.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Write(_ context.Context, doc RenderedDocument) error {
	_, err := io.WriteString(s.W, doc.HTML+"\n")
	return err
}

// DirectorySink writes <Root>/<locale>/<slug>.html files.
type DirectorySink struct {
	Root string
}

func (s DirectorySink) Write(_ context.Context, doc RenderedDocument) error {
	if doc.Slug == "" {
		return fmt.Errorf("commands: document %q has no slug", doc.Title)
	}
	dir := filepath.Join(s.Root, doc.Locale)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("commands: create %s: %w", dir, err)
	}
	return os.WriteFile(filepath.Join(dir, doc.Slug+".html"), []byte(doc.HTML), 0o644)
}
