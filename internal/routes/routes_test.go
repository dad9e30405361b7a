package routes

import (
	"errors"
	"strings"
	"testing"

	urlkit "github.com/goliatone/go-urlkit"
)

func TestPathRoutesDocumentURL(t *testing.T) {
	r := NewPathRoutes("", "")
	got, err := r.DocumentURL("en-US", "installing-firefox")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/en-US/kb/installing-firefox" {
		t.Fatalf("unexpected url %q", got)
	}

	if _, err := r.DocumentURL("en-US", " "); !errors.Is(err, ErrSlugRequired) {
		t.Fatalf("expected ErrSlugRequired, got %v", err)
	}
}

func TestPathRoutesNewDocumentURL(t *testing.T) {
	r := NewPathRoutes("/kb/", "new")
	got, _ := r.NewDocumentURL("A new page")
	if got != "/kb/new?title=A+new+page" {
		t.Fatalf("unexpected url %q", got)
	}

	got, _ = r.NewDocumentURL("Q&A / tips")
	if got != "/kb/new?title=Q%26A+%2F+tips" {
		t.Fatalf("expected query escaping, got %q", got)
	}
}

func TestPathRoutesCustomPrefix(t *testing.T) {
	r := NewPathRoutes("docs", "create")
	doc, _ := r.DocumentURL("fr", "accueil")
	if doc != "/fr/docs/accueil" {
		t.Fatalf("unexpected url %q", doc)
	}
	created, _ := r.NewDocumentURL("Accueil")
	if created != "/docs/create?title=Accueil" {
		t.Fatalf("unexpected url %q", created)
	}
}

func newTestManager() *urlkit.RouteManager {
	return urlkit.NewRouteManager(&urlkit.Config{
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
	})
}

func TestURLKitRoutes(t *testing.T) {
	r := NewURLKitRoutes(URLKitOptions{Manager: newTestManager(), Group: "support"})

	doc, err := r.DocumentURL("en-US", "installing-firefox")
	if err != nil {
		t.Fatalf("DocumentURL: %v", err)
	}
	if doc != "https://support.example.com/en-US/kb/installing-firefox" {
		t.Fatalf("unexpected url %q", doc)
	}

	created, err := r.NewDocumentURL("A new page")
	if err != nil {
		t.Fatalf("NewDocumentURL: %v", err)
	}
	if !strings.HasPrefix(created, "https://support.example.com/kb/new?") || !strings.Contains(created, "title=A") {
		t.Fatalf("unexpected url %q", created)
	}
}

func TestURLKitRoutesUnknownGroup(t *testing.T) {
	r := NewURLKitRoutes(URLKitOptions{Manager: newTestManager(), Group: "missing"})
	if _, err := r.DocumentURL("en-US", "x"); err == nil {
		t.Fatal("expected error for unknown group")
	}
	if _, err := NewURLKitRoutes(URLKitOptions{}).NewDocumentURL("x"); err == nil {
		t.Fatal("expected error without manager")
	}
}
