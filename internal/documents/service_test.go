package documents_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-wikitext/internal/documents"
	"github.com/goliatone/go-wikitext/internal/identity"
	"github.com/goliatone/go-wikitext/pkg/interfaces"
	"github.com/goliatone/go-wikitext/pkg/testsupport"
)

func fixedClock() time.Time {
	return time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)
}

func repositories(t *testing.T) map[string]documents.Repository {
	t.Helper()
	db := testsupport.NewBunDB(t, (*documents.Document)(nil))
	return map[string]documents.Repository{
		"memory": documents.NewMemoryRepository(),
		"bun":    documents.NewBunRepository(db),
	}
}

func TestServiceSaveAndGet(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			svc := documents.NewService(repo, documents.WithClock(fixedClock))

			saved, err := svc.Save(ctx, documents.SaveInput{
				Title:  "Installing Firefox",
				Locale: "en-US",
				Slug:   "installing-firefox",
				Body:   "Test content",
			})
			if err != nil {
				t.Fatalf("Save: %v", err)
			}
			if saved.ID != identity.DocumentUUID("Installing Firefox", "en-US") {
				t.Fatalf("expected deterministic id, got %s", saved.ID)
			}

			got, err := svc.Get(ctx, "Installing Firefox", "en-US")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.Slug != "installing-firefox" || got.Body != "Test content" {
				t.Fatalf("unexpected document %+v", got)
			}

			if _, err := svc.Get(ctx, "Installing Firefox", "fr"); !documents.IsNotFound(err) {
				t.Fatalf("expected not found for other locale, got %v", err)
			}
		})
	}
}

func TestServiceSaveReplacesExisting(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			svc := documents.NewService(repo, documents.WithClock(fixedClock))

			if _, err := svc.Save(ctx, documents.SaveInput{Title: "A doc", Locale: "fr", Slug: "a-doc", Body: "v1"}); err != nil {
				t.Fatalf("Save v1: %v", err)
			}
			if _, err := svc.Save(ctx, documents.SaveInput{Title: "A doc", Locale: "fr", Slug: "a-doc", Body: "v2"}); err != nil {
				t.Fatalf("Save v2: %v", err)
			}

			list, err := svc.List(ctx, "fr")
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(list) != 1 || list[0].Body != "v2" {
				t.Fatalf("expected single updated document, got %+v", list)
			}
		})
	}
}

func TestServiceListAndDelete(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			svc := documents.NewService(repo, documents.WithClock(fixedClock))

			for _, in := range []documents.SaveInput{
				{Title: "B doc", Locale: "en-US", Slug: "b-doc"},
				{Title: "A doc", Locale: "en-US", Slug: "a-doc"},
				{Title: "A doc", Locale: "de", Slug: "a-doc"},
			} {
				if _, err := svc.Save(ctx, in); err != nil {
					t.Fatalf("Save %s: %v", in.Title, err)
				}
			}

			all, _ := svc.List(ctx, "")
			if len(all) != 3 {
				t.Fatalf("expected 3 documents, got %d", len(all))
			}
			english, _ := svc.List(ctx, "en-US")
			if len(english) != 2 || english[0].Title != "A doc" {
				t.Fatalf("expected sorted english documents, got %+v", english)
			}

			if err := svc.Delete(ctx, "A doc", "de"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := svc.Get(ctx, "A doc", "de"); !documents.IsNotFound(err) {
				t.Fatalf("expected deleted document to be gone, got %v", err)
			}
		})
	}
}

func TestServiceSaveValidation(t *testing.T) {
	svc := documents.NewService(documents.NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.Save(ctx, documents.SaveInput{Locale: "en-US"}); !errors.Is(err, documents.ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
	if _, err := svc.Save(ctx, documents.SaveInput{Title: "x"}); !errors.Is(err, documents.ErrLocaleRequired) {
		t.Fatalf("expected ErrLocaleRequired, got %v", err)
	}
	if _, err := svc.Save(ctx, documents.SaveInput{Title: "x", Locale: "en-US", Slug: "Not A Slug!"}); !errors.Is(err, documents.ErrSlugInvalid) {
		t.Fatalf("expected ErrSlugInvalid, got %v", err)
	}
}

func TestServiceDerivesSlug(t *testing.T) {
	svc := documents.NewService(documents.NewMemoryRepository())
	doc, err := svc.Save(context.Background(), documents.SaveInput{Title: "Installing Firefox", Locale: "en-US"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if doc.Slug != "installing-firefox" {
		t.Fatalf("expected derived slug installing-firefox, got %q", doc.Slug)
	}
}

func TestFinder(t *testing.T) {
	ctx := context.Background()
	repo := documents.NewMemoryRepository()
	svc := documents.NewService(repo)
	if _, err := svc.Save(ctx, documents.SaveInput{Title: "Installing Firefox", Locale: "en-US", Slug: "installing-firefox"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var finder interfaces.DocumentFinder = svc.Finder()
	handle, ok, err := finder.Find(ctx, "Installing Firefox", "en-US")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	want := interfaces.DocumentHandle{Title: "Installing Firefox", Slug: "installing-firefox", Locale: "en-US"}
	if handle != want {
		t.Fatalf("expected %+v, got %+v", want, handle)
	}

	if _, ok, err := finder.Find(ctx, "Installing Firefox", "ja"); ok || err != nil {
		t.Fatalf("expected quiet miss, got ok=%v err=%v", ok, err)
	}
}

type failingRepository struct {
	documents.Repository
}

func (failingRepository) Get(context.Context, string, string) (*documents.Document, error) {
	return nil, errors.New("connection reset")
}

func TestFinderPropagatesInfrastructureErrors(t *testing.T) {
	finder := documents.NewFinder(failingRepository{})
	if _, _, err := finder.Find(context.Background(), "x", "en-US"); err == nil {
		t.Fatal("expected error to propagate")
	}
}
