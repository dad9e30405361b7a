// Command wikitext renders knowledge-base markup to HTML.
//
// Without -title or -out it reads markup from stdin and writes HTML to
// stdout. With -content-dir it first loads a locale-partitioned corpus so
// links and images resolve against it:
//
//	wikitext -content-dir ./kb -title "Installing Firefox" -locale de
//	wikitext -content-dir ./kb -out ./public
//	echo "[[Installing Firefox]]" | wikitext -content-dir ./kb -locale fr
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-command/dispatcher"

	"github.com/goliatone/go-wikitext"
	"github.com/goliatone/go-wikitext/internal/commands"
	"github.com/goliatone/go-wikitext/internal/i18n"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatalf("wikitext: %v", err)
	}
}

type options struct {
	contentDir    string
	locale        string
	defaultLocale string
	title         string
	out           string
	syntax        string
	logLevel      string
	db            string
	translations  string
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("wikitext", flag.ContinueOnError)
	fs.StringVar(&opts.contentDir, "content-dir", "", "Corpus root holding one directory per locale")
	fs.StringVar(&opts.locale, "locale", "", "Locale to render in (defaults to -default-locale)")
	fs.StringVar(&opts.defaultLocale, "default-locale", "en-US", "Fallback locale for links and images")
	fs.StringVar(&opts.title, "title", "", "Render the stored document with this title")
	fs.StringVar(&opts.out, "out", "", "Export every stored document as HTML into this directory")
	fs.StringVar(&opts.syntax, "syntax", wikitext.SyntaxWikitext, "Markup syntax for stdin and documents without one (wikitext or markdown)")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log to stderr at this level (trace, debug, info, warn, error)")
	fs.StringVar(&opts.db, "db", "", "SQLite DSN to store the corpus in instead of memory")
	fs.StringVar(&opts.translations, "translations", "", "YAML or JSON message catalog (defaults to the built-in messages)")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.title != "" && opts.out != "" {
		return options{}, errors.New("-title and -out are mutually exclusive")
	}
	return opts, nil
}

func (o options) config() wikitext.Config {
	cfg := wikitext.DefaultConfig()
	cfg.DefaultLocale = strings.TrimSpace(o.defaultLocale)
	cfg.Markup.Syntax = strings.ToLower(strings.TrimSpace(o.syntax))
	cfg.Features.Markdown = true
	if level := strings.TrimSpace(o.logLevel); level != "" {
		cfg.Features.Logger = true
		cfg.Logging.Provider = "console"
		cfg.Logging.Level = level
	}
	if dsn := strings.TrimSpace(o.db); dsn != "" {
		cfg.Storage.Provider = wikitext.StorageBun
		cfg.Storage.Driver = wikitext.DriverSQLite
		cfg.Storage.DSN = dsn
	}
	return cfg
}

func (o options) renderLocale() string {
	if locale := strings.TrimSpace(o.locale); locale != "" {
		return locale
	}
	return strings.TrimSpace(o.defaultLocale)
}

func (o options) sink(stdout io.Writer) commands.Sink {
	if o.out != "" {
		return commands.DirectorySink{Root: o.out}
	}
	return commands.WriterSink{W: stdout}
}

func (o options) catalog(ctx context.Context) (*i18n.Catalog, error) {
	if path := strings.TrimSpace(o.translations); path != "" {
		return i18n.NewLoader(path).LoadCatalog(ctx)
	}
	return i18n.DefaultCatalog()
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	catalog, err := opts.catalog(ctx)
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}

	registry := &commands.DispatcherRegistry{}
	defer registry.Close()

	module, err := wikitext.New(opts.config(),
		wikitext.WithTranslator(catalog),
		wikitext.WithCommandRegistry(registry),
		wikitext.WithCommandSink(opts.sink(stdout)),
	)
	if err != nil {
		return fmt.Errorf("configure: %w", err)
	}
	defer module.Close()

	if dir := strings.TrimSpace(opts.contentDir); dir != "" {
		if err := dispatcher.Dispatch(ctx, commands.LoadCorpusCommand{Directory: dir}); err != nil {
			return fmt.Errorf("load corpus: %w", err)
		}
	}

	switch {
	case opts.title != "":
		return dispatcher.Dispatch(ctx, commands.RenderDocumentCommand{
			Title:  opts.title,
			Locale: opts.renderLocale(),
		})
	case opts.out != "":
		return dispatcher.Dispatch(ctx, commands.ExportCorpusCommand{Locale: strings.TrimSpace(opts.locale)})
	}

	source, err := io.ReadAll(stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	html, err := module.Render(ctx, string(source), opts.renderLocale())
	if err != nil {
		return err
	}
	_, err = io.WriteString(stdout, html+"\n")
	return err
}
