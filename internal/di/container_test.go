package di_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-wikitext/internal/commands"
	"github.com/goliatone/go-wikitext/internal/database"
	"github.com/goliatone/go-wikitext/internal/di"
	"github.com/goliatone/go-wikitext/internal/documents"
	"github.com/goliatone/go-wikitext/internal/media"
	"github.com/goliatone/go-wikitext/internal/runtimeconfig"
	"github.com/goliatone/go-wikitext/pkg/interfaces"
	"github.com/goliatone/go-wikitext/pkg/testsupport"
)

func seedFirefox(t *testing.T, container *di.Container) {
	t.Helper()
	ctx := context.Background()
	if _, err := container.DocumentService().Save(ctx, documents.SaveInput{
		Title:  "Installing Firefox",
		Locale: "en-US",
		Body:   "Download it.",
	}); err != nil {
		t.Fatalf("save document: %v", err)
	}
	if _, err := container.MediaService().Register(ctx, media.RegisterInput{
		Title:  "test.jpg",
		Locale: "en-US",
		URL:    "/media/uploads/test.jpg",
	}); err != nil {
		t.Fatalf("register asset: %v", err)
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.DefaultLocale = " "

	if _, err := di.NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrDefaultLocaleRequired) {
		t.Fatalf("expected ErrDefaultLocaleRequired, got %v", err)
	}
}

func TestContainerMemoryStorageFallsBackToDefaultLocale(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.BunDB() != nil {
		t.Fatal("expected memory storage")
	}
	seedFirefox(t, container)

	got, err := container.Engine().Render(context.Background(), "[[Installing Firefox]]", "de")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	want := "<p><a href=\"/en-US/kb/installing-firefox\" rel=\"nofollow\">Installing Firefox</a>\n</p>"
	if got != want {
		t.Fatalf("unexpected html\nwant: %s\n got: %s", want, got)
	}
}

func TestContainerBunStorage(t *testing.T) {
	db := testsupport.NewBunDB(t, database.Models()...)

	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = runtimeconfig.StorageBun
	container, err := di.NewContainer(cfg, di.WithBunDB(db))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.BunDB() != db {
		t.Fatal("expected injected bun db")
	}
	seedFirefox(t, container)

	got, err := container.Engine().Render(context.Background(), "[[Image:test.jpg|frameless]]", "en-US")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(got, `src="/media/uploads/test.jpg"`) {
		t.Fatalf("expected stored asset url, got %s", got)
	}

	// injected databases stay open
	if err := container.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("expected injected db to stay open: %v", err)
	}
}

func TestContainerOpensConfiguredSQLite(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = runtimeconfig.StorageBun
	cfg.Storage.Driver = runtimeconfig.DriverSQLite
	cfg.Storage.DSN = "file:di_container_test?mode=memory&cache=shared"

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	t.Cleanup(func() { _ = container.Close() })

	if container.BunDB() == nil {
		t.Fatal("expected container to open a database")
	}
	seedFirefox(t, container)

	doc, err := container.DocumentService().Get(context.Background(), "Installing Firefox", "en-US")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if doc.Slug != "installing-firefox" {
		t.Fatalf("unexpected slug %q", doc.Slug)
	}
}

func TestContainerCacheEnabled(t *testing.T) {
	db := testsupport.NewBunDB(t, database.Models()...)

	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = runtimeconfig.StorageBun
	cfg.Cache.Enabled = true

	container, err := di.NewContainer(cfg, di.WithBunDB(db))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.CacheService() == nil {
		t.Fatal("expected cache service to be configured")
	}
	seedFirefox(t, container)

	for range 2 {
		got, err := container.Engine().Render(context.Background(), "[[Installing Firefox]]", "en-US")
		if err != nil {
			t.Fatalf("Render returned error: %v", err)
		}
		if !strings.Contains(got, `href="/en-US/kb/installing-firefox"`) {
			t.Fatalf("unexpected html %s", got)
		}
	}
}

func TestContainerCacheIgnoredForMemoryStorage(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Cache.Enabled = true

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.CacheService() != nil {
		t.Fatal("expected no cache for memory storage")
	}
}

func TestContainerURLKitRoutes(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Routes.URLKit = runtimeconfig.URLKitConfig{
		Enabled: true,
		Group:   "support",
		RouteConfig: &urlkit.Config{
			Groups: []urlkit.GroupConfig{
				{
					Name:    "support",
					BaseURL: "https://support.example.com",
					Paths: map[string]string{
						"document": "/:locale/kb/:slug",
						"new":      "/kb/new",
					},
				},
			},
		},
	}

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.RouteManager() == nil {
		t.Fatal("expected route manager")
	}
	seedFirefox(t, container)

	got, err := container.Engine().Render(context.Background(), "[[Installing Firefox]]", "en-US")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(got, `href="https://support.example.com/en-US/kb/installing-firefox"`) {
		t.Fatalf("unexpected html %s", got)
	}
}

func TestContainerInjectedFinders(t *testing.T) {
	docs := interfaces.FinderFunc[interfaces.DocumentHandle](func(_ context.Context, title, locale string) (interfaces.DocumentHandle, bool, error) {
		if title == "Remote" && locale == "en-US" {
			return interfaces.DocumentHandle{Slug: "remote", Locale: locale}, true, nil
		}
		return interfaces.DocumentHandle{}, false, nil
	})

	container, err := di.NewContainer(runtimeconfig.DefaultConfig(), di.WithDocumentFinder(docs))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	got, err := container.Engine().Render(context.Background(), "[[Remote]]", "en-US")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(got, `href="/en-US/kb/remote"`) {
		t.Fatalf("unexpected html %s", got)
	}
}

type stubMediaProvider struct {
	requests []interfaces.MediaResolveRequest
}

func (s *stubMediaProvider) Resolve(_ context.Context, req interfaces.MediaResolveRequest) (*interfaces.MediaAsset, error) {
	s.requests = append(s.requests, req)
	if req.Reference.Path != "cdn.png" {
		return nil, nil
	}
	return &interfaces.MediaAsset{
		Reference: req.Reference,
		Source:    &interfaces.MediaResource{URL: "https://cdn.example.com/cdn.png"},
	}, nil
}

func TestContainerMediaProvider(t *testing.T) {
	provider := &stubMediaProvider{}
	container, err := di.NewContainer(runtimeconfig.DefaultConfig(), di.WithMediaProvider(provider))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	got, err := container.Engine().Render(context.Background(), "[[Image:cdn.png]]", "en-US")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(got, `src="https://cdn.example.com/cdn.png"`) {
		t.Fatalf("unexpected html %s", got)
	}
	if len(provider.requests) == 0 {
		t.Fatal("expected provider to be consulted")
	}
}

func TestContainerMarkdownSyntax(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Markdown = true
	cfg.Markup.Syntax = runtimeconfig.SyntaxMarkdown

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.MarkdownEngine() == nil || container.Engine() != container.MarkdownEngine() {
		t.Fatal("expected markdown engine to be the default")
	}
	seedFirefox(t, container)

	got, err := container.Engine().Render(context.Background(), "**Read** [[Installing Firefox]]", "en-US")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(got, "<strong>Read</strong>") {
		t.Fatalf("expected markdown emphasis, got %s", got)
	}
	if !strings.Contains(got, `<a href="/en-US/kb/installing-firefox" rel="nofollow">Installing Firefox</a>`) {
		t.Fatalf("expected wiki link, got %s", got)
	}
}

func TestContainerMarkdownDisabled(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.MarkdownEngine() != nil {
		t.Fatal("expected no markdown engine")
	}
	if container.Engine() != container.WikitextEngine() {
		t.Fatal("expected wikitext engine by default")
	}
}

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

func TestContainerCommandsRenderBySyntax(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Markdown = true
	sink := &commands.MemorySink{}
	reg := &recordingRegistry{}

	container, err := di.NewContainer(cfg, di.WithCommandSink(sink), di.WithCommandRegistry(reg))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if len(reg.handlers) != 3 {
		t.Fatalf("expected 3 registered handlers, got %d", len(reg.handlers))
	}
	seedFirefox(t, container)
	if _, err := container.DocumentService().Save(context.Background(), documents.SaveInput{
		Title:  "Release notes",
		Locale: "en-US",
		Syntax: runtimeconfig.SyntaxMarkdown,
		Body:   "# Notes\n\nSee [[Installing Firefox]].",
	}); err != nil {
		t.Fatalf("save document: %v", err)
	}

	set := container.Commands()
	if set == nil {
		t.Fatal("expected command handlers")
	}
	if err := set.Render.Execute(context.Background(), commands.RenderDocumentCommand{Title: "Release notes", Locale: "de"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	rendered := sink.Documents()
	if len(rendered) != 1 {
		t.Fatalf("expected one rendered document, got %d", len(rendered))
	}
	doc := rendered[0]
	if doc.SourceLocale != "en-US" || doc.Locale != "de" {
		t.Fatalf("unexpected locales %+v", doc)
	}
	if !strings.Contains(doc.HTML, "<h1") || !strings.Contains(doc.HTML, `href="/en-US/kb/installing-firefox"`) {
		t.Fatalf("unexpected html %s", doc.HTML)
	}
}

func TestContainerCommandsDisabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Commands = false

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.Commands() != nil {
		t.Fatal("expected no command handlers")
	}
}
