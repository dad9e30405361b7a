package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-wikitext/pkg/interfaces"
)

const (
	rootModule      = "wikitext"
	renderModule    = "wikitext.render"
	linksModule     = "wikitext.links"
	imagesModule    = "wikitext.images"
	documentsModule = "wikitext.documents"
	mediaModule     = "wikitext.media"
	commandsModule  = "wikitext.commands"
	corpusModule    = "wikitext.corpus"
)

const (
	fieldLocale = "locale"
	fieldTitle  = "title"
	fieldKind   = "directive"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// RenderLogger returns the logger namespace reserved for the markup transformer.
func RenderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, renderModule)
}

// LinksLogger returns the logger namespace reserved for link resolution.
func LinksLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, linksModule)
}

// ImagesLogger returns the logger namespace reserved for image expansion.
func ImagesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, imagesModule)
}

// DocumentsLogger returns the logger namespace reserved for document storage.
func DocumentsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, documentsModule)
}

// MediaLogger returns the logger namespace reserved for media storage.
func MediaLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, mediaModule)
}

// CommandsLogger returns the logger namespace reserved for command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// CorpusLogger returns the logger namespace reserved for corpus loading.
func CorpusLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, corpusModule)
}

// WithLookupContext enriches the logger with the directive kind, title and
// locale of a repository lookup. Empty values are ignored.
func WithLookupContext(logger interfaces.Logger, kind, title, locale string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(kind); trimmed != "" {
		fields[fieldKind] = trimmed
	}
	if trimmed := strings.TrimSpace(title); trimmed != "" {
		fields[fieldTitle] = trimmed
	}
	if trimmed := strings.TrimSpace(locale); trimmed != "" {
		fields[fieldLocale] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
