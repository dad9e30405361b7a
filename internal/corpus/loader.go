// Package corpus loads a directory of localized knowledge-base sources into
// the document and media stores.
//
// The layout is one directory per locale:
//
//	content/
//	  en-US/
//	    Installing_Firefox.wiki
//	    Clear_cache.md
//	    media.yaml
//	  fr/
//	    ...
package corpus

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/goliatone/go-wikitext/internal/documents"
	"github.com/goliatone/go-wikitext/internal/logging"
	"github.com/goliatone/go-wikitext/internal/media"
	"github.com/goliatone/go-wikitext/pkg/interfaces"
)

// Syntax names stored alongside each document.
const (
	SyntaxWikitext = "wikitext"
	SyntaxMarkdown = "markdown"
)

var extensionSyntax = map[string]string{
	".wiki": SyntaxWikitext,
	".md":   SyntaxMarkdown,
}

// Result summarises a load.
type Result struct {
	Locales   []string
	Documents int
	Assets    int
}

// Loader reads a corpus tree from a filesystem.
type Loader struct {
	fs        fs.FS
	documents *documents.Service
	media     *media.Service
	locales   []string
	logger    interfaces.Logger
}

// Option customises a Loader.
type Option func(*Loader)

// WithLocales restricts loading to the named locale directories.
func WithLocales(locales ...string) Option {
	return func(l *Loader) {
		l.locales = append([]string(nil), locales...)
	}
}

// WithLogger sets the loader logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader reads from filesystem into docs and assets. Either store may be
// nil to skip that kind of content.
func NewLoader(filesystem fs.FS, docs *documents.Service, assets *media.Service, opts ...Option) *Loader {
	l := &Loader{fs: filesystem, documents: docs, media: assets, logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Load walks every locale directory. The first failing file aborts the load.
func (l *Loader) Load(ctx context.Context) (Result, error) {
	var result Result

	entries, err := fs.ReadDir(l.fs, ".")
	if err != nil {
		return result, fmt.Errorf("corpus: read root: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		locale := entry.Name()
		if len(l.locales) > 0 && !slices.Contains(l.locales, locale) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		docs, assets, err := l.loadLocale(ctx, locale)
		if err != nil {
			return result, err
		}
		result.Locales = append(result.Locales, locale)
		result.Documents += docs
		result.Assets += assets
		l.logger.Info("wikitext.corpus.locale_loaded", "locale", locale, "documents", docs, "assets", assets)
	}
	return result, nil
}

func (l *Loader) loadLocale(ctx context.Context, locale string) (int, int, error) {
	entries, err := fs.ReadDir(l.fs, locale)
	if err != nil {
		return 0, 0, fmt.Errorf("corpus: read %s: %w", locale, err)
	}

	var docs, assets int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		file := path.Join(locale, name)

		if name == ManifestName {
			if l.media == nil {
				continue
			}
			n, err := l.loadManifest(ctx, locale, file)
			if err != nil {
				return docs, assets, err
			}
			assets += n
			continue
		}

		syntax, ok := extensionSyntax[strings.ToLower(path.Ext(name))]
		if !ok || l.documents == nil {
			continue
		}
		if err := l.loadDocument(ctx, locale, file, syntax); err != nil {
			return docs, assets, err
		}
		docs++
	}
	return docs, assets, nil
}

func (l *Loader) loadDocument(ctx context.Context, locale, file, syntax string) error {
	data, err := fs.ReadFile(l.fs, file)
	if err != nil {
		return fmt.Errorf("corpus: read %s: %w", file, err)
	}
	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		return fmt.Errorf("corpus: %s: %w", file, err)
	}

	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = TitleFromFilename(path.Base(file))
	}
	if s := strings.TrimSpace(meta.Syntax); s != "" {
		syntax = s
	}

	_, err = l.documents.Save(ctx, documents.SaveInput{
		Title:  title,
		Locale: locale,
		Slug:   meta.Slug,
		Syntax: syntax,
		Body:   string(body),
	})
	if err != nil {
		return fmt.Errorf("corpus: save %s: %w", file, err)
	}
	logging.WithLookupContext(l.logger, "document", title, locale).Debug("wikitext.corpus.document_loaded", "file", file)
	return nil
}

func (l *Loader) loadManifest(ctx context.Context, locale, file string) (int, error) {
	data, err := fs.ReadFile(l.fs, file)
	if err != nil {
		return 0, fmt.Errorf("corpus: read %s: %w", file, err)
	}
	manifest, err := ParseManifest(data)
	if err != nil {
		return 0, fmt.Errorf("corpus: %s: %w", file, err)
	}
	for i, asset := range manifest.Assets {
		_, err := l.media.Register(ctx, media.RegisterInput{
			Title:    asset.Title,
			Locale:   locale,
			URL:      asset.URL,
			MimeType: asset.MimeType,
			Width:    asset.Width,
			Height:   asset.Height,
		})
		if err != nil {
			return i, fmt.Errorf("corpus: %s asset %d: %w", file, i, err)
		}
	}
	return len(manifest.Assets), nil
}

// TitleFromFilename turns Installing_Firefox.wiki into "Installing Firefox".
func TitleFromFilename(name string) string {
	name = strings.TrimSuffix(name, path.Ext(name))
	return strings.TrimSpace(strings.ReplaceAll(name, "_", " "))
}
