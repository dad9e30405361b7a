package commands

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-wikitext/internal/documents"
	"github.com/goliatone/go-wikitext/internal/media"
	"github.com/goliatone/go-wikitext/internal/wikitext"
	"github.com/goliatone/go-wikitext/pkg/testsupport"
)

type upperRenderer struct{}

func (upperRenderer) Render(_ context.Context, text, locale string) (string, error) {
	return locale + ":" + strings.ToUpper(text), nil
}

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

func newServices() (*documents.Service, *media.Service) {
	return documents.NewService(documents.NewMemoryRepository()), media.NewService(media.NewMemoryRepository())
}

func seed(t *testing.T, docs *documents.Service, input documents.SaveInput) {
	t.Helper()
	if _, err := docs.Save(context.Background(), input); err != nil {
		t.Fatalf("seed %s: %v", input.Title, err)
	}
}

func TestLoadRenderExportFlow(t *testing.T) {
	root := testsupport.WriteTree(t, map[string]string{
		"en-US/Installing_Firefox.wiki": "See [[Clear cache]].\n\n[[Image:logo.png|Logo]]",
		"en-US/Clear_cache.wiki":        "Clear it.",
		"en-US/media.yaml":              "assets:\n  - title: logo.png\n    url: /media/logo.png\n",
		"fr/Clear_cache.wiki":           "Videz-le.",
	})
	docs, assets := newServices()
	engine := wikitext.NewEngine("en-US", docs.Finder(), assets.Finder())
	sink := &MemorySink{}
	reg := &recordingRegistry{}

	set, err := Register(reg, Dependencies{
		Documents:     docs,
		Media:         assets,
		Renderers:     Renderers{Default: engine},
		Sink:          sink,
		DefaultLocale: "en-US",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if len(reg.handlers) != 3 {
		t.Fatalf("expected three registered handlers, got %d", len(reg.handlers))
	}

	ctx := context.Background()
	if err := set.Load.Execute(ctx, LoadCorpusCommand{Directory: root}); err != nil {
		t.Fatalf("load: %v", err)
	}

	if err := set.Render.Execute(ctx, RenderDocumentCommand{Title: "Installing Firefox", Locale: "fr"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	rendered := sink.Documents()
	if len(rendered) != 1 {
		t.Fatalf("expected one rendered document, got %d", len(rendered))
	}
	doc := rendered[0]
	if doc.Locale != "fr" || doc.SourceLocale != "en-US" || doc.Slug != "installing-firefox" {
		t.Fatalf("unexpected rendered metadata %+v", doc)
	}
	if !strings.Contains(doc.HTML, `<a href="/fr/kb/clear-cache" rel="nofollow">Clear cache</a>`) {
		t.Fatalf("expected french link target, got %s", doc.HTML)
	}
	if !strings.Contains(doc.HTML, `<img alt="Logo" src="/media/logo.png">`) {
		t.Fatalf("expected default locale image, got %s", doc.HTML)
	}

	if err := set.Export.Execute(ctx, ExportCorpusCommand{}); err != nil {
		t.Fatalf("export: %v", err)
	}
	if got := len(sink.Documents()); got != 4 {
		t.Fatalf("expected 1 rendered + 3 exported documents, got %d", got)
	}
}

func TestRenderDocumentMissing(t *testing.T) {
	docs, _ := newServices()
	h := NewRenderDocumentHandler(docs, Renderers{Default: upperRenderer{}}, &MemorySink{}, "en-US", nil)

	err := h.Execute(context.Background(), RenderDocumentCommand{Title: "Nope", Locale: "fr"})
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		t.Fatalf("expected not found category, got %v", err)
	}
}

func TestRenderersBySyntax(t *testing.T) {
	docs, _ := newServices()
	seed(t, docs, documents.SaveInput{Title: "Plain", Locale: "en-US", Body: "a", Syntax: "wikitext"})
	seed(t, docs, documents.SaveInput{Title: "Loud", Locale: "en-US", Body: "b", Syntax: "shout"})
	sink := &MemorySink{}

	renderers := Renderers{
		Default:  wikitext.NewEngine("en-US", nil, nil),
		BySyntax: map[string]Renderer{"shout": upperRenderer{}},
	}
	h := NewExportCorpusHandler(docs, renderers, sink, nil)
	if err := h.Execute(context.Background(), ExportCorpusCommand{Locale: "en-US"}); err != nil {
		t.Fatalf("export: %v", err)
	}

	got := map[string]string{}
	for _, doc := range sink.Documents() {
		got[doc.Title] = doc.HTML
	}
	if got["Plain"] != "<p>a\n</p>" || got["Loud"] != "en-US:B" {
		t.Fatalf("unexpected renders %v", got)
	}
}

func TestLoadCorpusRejectsFiles(t *testing.T) {
	docs, assets := newServices()
	file := filepath.Join(t.TempDir(), "corpus.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	err := NewLoadCorpusHandler(docs, assets, nil).Execute(context.Background(), LoadCorpusCommand{Directory: file})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command failure, got %v", err)
	}
}

func TestDirectorySink(t *testing.T) {
	root := t.TempDir()
	sink := DirectorySink{Root: root}

	err := sink.Write(context.Background(), RenderedDocument{Title: "Home", Slug: "home", Locale: "fr", HTML: "<p>x\n</p>"})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(root, "fr", "home.html"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "<p>x\n</p>" {
		t.Fatalf("unexpected file contents %q", data)
	}

	if err := sink.Write(context.Background(), RenderedDocument{Title: "No slug"}); err == nil {
		t.Fatal("expected missing slug error")
	}
}

func TestRegisterRequiresDocuments(t *testing.T) {
	if _, err := Register(nil, Dependencies{}); !errors.Is(err, ErrDocumentsRequired) {
		t.Fatalf("expected ErrDocumentsRequired, got %v", err)
	}
}
