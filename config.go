package wikitext

import "github.com/goliatone/go-wikitext/internal/runtimeconfig"

var (
	ErrDefaultLocaleRequired    = runtimeconfig.ErrDefaultLocaleRequired
	ErrSyntaxUnknown            = runtimeconfig.ErrSyntaxUnknown
	ErrMarkdownFeatureRequired  = runtimeconfig.ErrMarkdownFeatureRequired
	ErrImagePrefixInvalid       = runtimeconfig.ErrImagePrefixInvalid
	ErrStorageProviderUnknown   = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDriverUnknown     = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired       = runtimeconfig.ErrStorageDSNRequired
	ErrCacheTTLInvalid          = runtimeconfig.ErrCacheTTLInvalid
	ErrURLKitRouteConfigMissing = runtimeconfig.ErrURLKitRouteConfigMissing
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	MarkupConfig  = runtimeconfig.MarkupConfig
	RoutesConfig  = runtimeconfig.RoutesConfig
	URLKitConfig  = runtimeconfig.URLKitConfig
	StorageConfig = runtimeconfig.StorageConfig
	CacheConfig   = runtimeconfig.CacheConfig
	LoggingConfig = runtimeconfig.LoggingConfig
	Features      = runtimeconfig.Features
)

const (
	SyntaxWikitext = runtimeconfig.SyntaxWikitext
	SyntaxMarkdown = runtimeconfig.SyntaxMarkdown
	StorageMemory  = runtimeconfig.StorageMemory
	StorageBun     = runtimeconfig.StorageBun
	DriverSQLite   = runtimeconfig.DriverSQLite
	DriverPostgres = runtimeconfig.DriverPostgres
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
