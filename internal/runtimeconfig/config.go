package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

var (
	ErrDefaultLocaleRequired    = errors.New("wikitext config: default locale is required")
	ErrSyntaxUnknown            = errors.New("wikitext config: markup syntax is invalid")
	ErrMarkdownFeatureRequired  = errors.New("wikitext config: markdown feature must be enabled to use markdown syntax")
	ErrImagePrefixInvalid       = errors.New("wikitext config: image prefix must be non-blank and contain no brackets or pipes")
	ErrStorageProviderUnknown   = errors.New("wikitext config: storage provider is invalid")
	ErrStorageDriverUnknown     = errors.New("wikitext config: storage driver is invalid")
	ErrStorageDSNRequired       = errors.New("wikitext config: storage dsn is required for postgres")
	ErrCacheTTLInvalid          = errors.New("wikitext config: cache ttl must be zero or positive")
	ErrURLKitRouteConfigMissing = errors.New("wikitext config: urlkit routes require a route config")
	ErrLoggingProviderRequired  = errors.New("wikitext config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown   = errors.New("wikitext config: logging provider is invalid")
	ErrLoggingLevelInvalid      = errors.New("wikitext config: logging level is invalid")
	ErrLoggingFormatInvalid     = errors.New("wikitext config: logging format is invalid")
)

// Markup syntaxes.
const (
	SyntaxWikitext = "wikitext"
	SyntaxMarkdown = "markdown"
)

// Storage providers and drivers.
const (
	StorageMemory   = "memory"
	StorageBun      = "bun"
	DriverSQLite    = "sqlite"
	DriverPostgres  = "postgres"
	DefaultSQLiteDB = "file:wikitext?mode=memory&cache=shared"
)

// Config aggregates renderer behaviour and adapter bindings.
type Config struct {
	DefaultLocale string
	Markup        MarkupConfig
	Routes        RoutesConfig
	Storage       StorageConfig
	Cache         CacheConfig
	Logging       LoggingConfig
	Features      Features
}

// MarkupConfig controls how source text is interpreted.
type MarkupConfig struct {
	// Syntax is the default syntax for ad-hoc renders and documents that
	// do not declare one.
	Syntax      string
	ImagePrefix string
	// LinkRel is placed on every internal link. Empty omits the attribute.
	LinkRel string
	// LegacyAltEscaping double-escapes explicit alt= values.
	LegacyAltEscaping  bool
	MarkdownExtensions []string
	MarkdownHardWraps  bool
}

// RoutesConfig shapes document URLs.
type RoutesConfig struct {
	Prefix      string
	NewPagePath string
	URLKit      URLKitConfig
}

// URLKitConfig switches URL building to a go-urlkit route manager.
type URLKitConfig struct {
	Enabled       bool
	RouteConfig   *urlkit.Config
	Group         string
	DocumentRoute string
	NewRoute      string
}

// StorageConfig selects where documents and media live.
type StorageConfig struct {
	Provider string
	Driver   string
	DSN      string
}

// CacheConfig wraps bun repositories in go-repository-cache.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Features toggles optional modules.
type Features struct {
	Logger   bool
	Markdown bool
	Commands bool
}

// DefaultConfig returns the stock knowledge-base setup.
func DefaultConfig() Config {
	return Config{
		DefaultLocale: "en-US",
		Markup: MarkupConfig{
			Syntax:            SyntaxWikitext,
			ImagePrefix:       "Image:",
			LinkRel:           "nofollow",
			LegacyAltEscaping: true,
		},
		Routes: RoutesConfig{
			Prefix:      "kb",
			NewPagePath: "new",
		},
		Storage: StorageConfig{
			Provider: StorageMemory,
			Driver:   DriverSQLite,
		},
		Cache: CacheConfig{
			Enabled:    false,
			DefaultTTL: time.Minute,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Features: Features{
			Commands: true,
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.DefaultLocale) == "" {
		return ErrDefaultLocaleRequired
	}

	switch syntax := normalize(cfg.Markup.Syntax); syntax {
	case "", SyntaxWikitext:
	case SyntaxMarkdown:
		if !cfg.Features.Markdown {
			return ErrMarkdownFeatureRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrSyntaxUnknown, syntax)
	}

	if prefix := cfg.Markup.ImagePrefix; prefix != "" {
		if strings.TrimSpace(prefix) == "" || strings.ContainsAny(prefix, "[]|") {
			return fmt.Errorf("%w: %q", ErrImagePrefixInvalid, prefix)
		}
	}

	switch provider := normalize(cfg.Storage.Provider); provider {
	case "", StorageMemory:
	case StorageBun:
		switch driver := normalize(cfg.Storage.Driver); driver {
		case "", DriverSQLite:
		case DriverPostgres:
			if strings.TrimSpace(cfg.Storage.DSN) == "" {
				return ErrStorageDSNRequired
			}
		default:
			return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, driver)
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}

	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}

	if cfg.Routes.URLKit.Enabled && cfg.Routes.URLKit.RouteConfig == nil {
		return ErrURLKitRouteConfigMissing
	}

	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
