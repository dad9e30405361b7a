package wikitext

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-wikitext/internal/routes"
	"github.com/goliatone/go-wikitext/internal/wikitext/scanner"
)

func TestLinkResolverBuild(t *testing.T) {
	f := newFixture()
	f.addDoc("Accueil", "fr", "accueil")
	links := f.engine().Links()

	tests := []struct {
		name   string
		title  string
		hash   string
		locale string
		want   string
	}{
		{"existing", "Installing Firefox", "", "en-US", "/en-US/kb/installing-firefox"},
		{"hash", "Installing Firefox", "section name", "en-US", "/en-US/kb/installing-firefox#section_name"},
		{"fallback locale is reported", "Installing Firefox", "", "ja", "/en-US/kb/installing-firefox"},
		{"requested locale wins", "Accueil", "", "fr", "/fr/kb/accueil"},
		{"missing", "A new page", "", "en-US", "/kb/new?title=A+new+page"},
		{"missing is locale independent", "A new page", "", "de", "/kb/new?title=A+new+page"},
		{"missing with hash", "A new page", "section 3", "en-US", "/kb/new?title=A+new+page#section_3"},
		{"anchor only", "", "section 3", "en-US", "#section_3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := links.Build(context.Background(), tt.title, tt.hash, tt.locale)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Build(%q, %q, %q) = %q, want %q", tt.title, tt.hash, tt.locale, got, tt.want)
			}
		})
	}
}

func TestLinkResolverRender(t *testing.T) {
	links := newFixture().engine().Links()

	tests := []struct {
		body string
		want string
	}{
		{"Installing Firefox", `<a href="/en-US/kb/installing-firefox" rel="nofollow">Installing Firefox</a>`},
		{"Installing Firefox#section name", `<a href="/en-US/kb/installing-firefox#section_name" rel="nofollow">Installing Firefox#section name</a>`},
		{"#section 3", `<a href="#section_3" rel="nofollow">#section 3</a>`},
		{"Installing Firefox|this name", `<a href="/en-US/kb/installing-firefox" rel="nofollow">this name</a>`},
		{"Installing Firefox|with|pipe", `<a href="/en-US/kb/installing-firefox" rel="nofollow">with|pipe</a>`},
		{"#section 3|this name", `<a href="#section_3" rel="nofollow">this name</a>`},
		{"Installing Firefox#section 3|this name", `<a href="/en-US/kb/installing-firefox#section_3" rel="nofollow">this name</a>`},
		{"A new page", `<a href="/kb/new?title=A+new+page" rel="nofollow">A new page</a>`},
		{"A new page#section 3|this name", `<a href="/kb/new?title=A+new+page#section_3" rel="nofollow">this name</a>`},
		{"Fish & <Chips>", `<a href="/kb/new?title=Fish+%26+%3CChips%3E" rel="nofollow">Fish &amp; &lt;Chips&gt;</a>`},
	}

	for _, tt := range tests {
		got, err := links.Render(context.Background(), scanner.Parse(tt.body), "en-US")
		if err != nil {
			t.Fatalf("Render(%q): %v", tt.body, err)
		}
		if got != tt.want {
			t.Fatalf("Render(%q)\nwant: %s\ngot:  %s", tt.body, tt.want, got)
		}
	}
}

func TestLinkResolverCustomRelAndRoutes(t *testing.T) {
	engine := newFixture().engine(
		WithRel(""),
		WithRouteBuilder(routes.NewPathRoutes("docs", "create")),
	)

	got, err := engine.Links().Render(context.Background(), scanner.Parse("Installing Firefox"), "en-US")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != `<a href="/en-US/docs/installing-firefox">Installing Firefox</a>` {
		t.Fatalf("unexpected anchor %s", got)
	}
}

func TestLinkResolverDerivesMissingSlug(t *testing.T) {
	f := newFixture()
	f.addDoc("Clear Cache", "en-US", "")

	got, err := f.engine().Links().Build(context.Background(), "Clear Cache", "", "en-US")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got != "/en-US/kb/clear-cache" {
		t.Fatalf("expected slug derived from title, got %q", got)
	}
}

func TestLinkResolverPropagatesLookupErrors(t *testing.T) {
	f := newFixture()
	f.fail = errStorageDown

	_, err := f.engine().Links().Build(context.Background(), "Installing Firefox", "", "fr")
	if err == nil {
		t.Fatal("expected error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryExternal) {
		t.Fatalf("expected external category, got %v", err)
	}

	if _, err := f.engine().Links().Build(context.Background(), "", "anchor", "fr"); err != nil {
		t.Fatalf("anchor-only links must not consult storage, got %v", err)
	}
}

func TestNormalizeHash(t *testing.T) {
	cases := map[string]string{
		"section name":   "section_name",
		"a  b":           "a__b",
		"tab\tand\nline": "tab_and_line",
		" padded ":       "padded",
		"":               "",
	}
	for in, want := range cases {
		if got := NormalizeHash(in); got != want {
			t.Fatalf("NormalizeHash(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDisplayText(t *testing.T) {
	cases := map[string]string{
		"Installing Firefox":              "Installing Firefox",
		"Installing Firefox#section name": "Installing Firefox#section name",
		"#section 3":                      "#section 3",
		"Installing Firefox|with|pipe":    "with|pipe",
		"Installing Firefox|":             "Installing Firefox",
	}
	for body, want := range cases {
		if got := DisplayText(scanner.Parse(body)); got != want {
			t.Fatalf("DisplayText(%q) = %q, want %q", body, got, want)
		}
	}
}
