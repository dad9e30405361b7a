package di

import (
	"context"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-wikitext/internal/commands"
	"github.com/goliatone/go-wikitext/internal/database"
	"github.com/goliatone/go-wikitext/internal/documents"
	"github.com/goliatone/go-wikitext/internal/logging"
	"github.com/goliatone/go-wikitext/internal/logging/console"
	"github.com/goliatone/go-wikitext/internal/logging/gologger"
	"github.com/goliatone/go-wikitext/internal/markdown"
	"github.com/goliatone/go-wikitext/internal/media"
	"github.com/goliatone/go-wikitext/internal/routes"
	"github.com/goliatone/go-wikitext/internal/runtimeconfig"
	"github.com/goliatone/go-wikitext/internal/wikitext"
	"github.com/goliatone/go-wikitext/pkg/interfaces"
)

const containerModule = "wikitext.di"

// Container wires storage, routing and the render engines from a Config.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	bunDB         *bun.DB
	ownsDB        bool
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	documentRepo documents.Repository
	mediaRepo    media.Repository
	documentSvc  *documents.Service
	mediaSvc     *media.Service

	documentFinder interfaces.DocumentFinder
	assetFinder    interfaces.AssetFinder
	mediaProvider  interfaces.MediaProvider

	routeManager *urlkit.RouteManager
	routes       routes.Builder

	translator interfaces.Translator
	metrics    interfaces.RenderMetrics

	wikitextEngine *wikitext.Engine
	markdownEngine *wikitext.Engine

	commandRegistry commands.CommandRegistry
	commandSink     commands.Sink
	commandHandlers *commands.HandlerSet
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB stores documents and media in db. The caller keeps ownership.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the go-repository-cache service used by bun repositories.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the provider built from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithDocumentFinder replaces the document service as the link lookup.
func WithDocumentFinder(finder interfaces.DocumentFinder) Option {
	return func(c *Container) {
		c.documentFinder = finder
	}
}

// WithAssetFinder replaces the media service as the image lookup.
func WithAssetFinder(finder interfaces.AssetFinder) Option {
	return func(c *Container) {
		c.assetFinder = finder
	}
}

// WithMediaProvider resolves images through an external provider unless an
// asset finder was injected as well.
func WithMediaProvider(provider interfaces.MediaProvider) Option {
	return func(c *Container) {
		c.mediaProvider = provider
	}
}

// WithRouteManager builds document URLs through manager instead of the
// configured route table.
func WithRouteManager(manager *urlkit.RouteManager) Option {
	return func(c *Container) {
		c.routeManager = manager
	}
}

// WithTranslator localises the missing-image placeholder.
func WithTranslator(translator interfaces.Translator) Option {
	return func(c *Container) {
		c.translator = translator
	}
}

// WithMetrics records render counters.
func WithMetrics(metrics interfaces.RenderMetrics) Option {
	return func(c *Container) {
		c.metrics = metrics
	}
}

// WithCommandRegistry registers the command handlers with reg.
func WithCommandRegistry(reg commands.CommandRegistry) Option {
	return func(c *Container) {
		c.commandRegistry = reg
	}
}

// WithCommandSink receives documents rendered by the command handlers.
func WithCommandSink(sink commands.Sink) Option {
	return func(c *Container) {
		c.commandSink = sink
	}
}

// NewContainer validates cfg and wires every module it enables.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cfg.Cache.DefaultTTL,
	}
	if c.cacheTTL <= 0 {
		c.cacheTTL = time.Minute
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureFinders()
	c.configureRoutes()
	c.configureEngines()
	if err := c.configureCommands(); err != nil {
		_ = c.Close()
		return nil, err
	}

	logging.ModuleLogger(c.loggerProvider, containerModule).Debug("wikitext.container.configured",
		"syntax", c.syntax(),
		"storage", c.storageName(),
		"cache", c.cacheService != nil,
		"markdown", c.markdownEngine != nil,
		"commands", c.commandHandlers != nil,
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		opts := console.Options{}
		if level, ok := console.ParseLevel(logCfg.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
	}
	return nil
}

func (c *Container) configureStorage() error {
	if c.bunDB != nil || !strings.EqualFold(strings.TrimSpace(c.Config.Storage.Provider), runtimeconfig.StorageBun) {
		return nil
	}

	dsn := strings.TrimSpace(c.Config.Storage.DSN)
	if dsn == "" {
		dsn = runtimeconfig.DefaultSQLiteDB
	}
	db, err := database.Open(c.Config.Storage.Driver, dsn)
	if err != nil {
		return err
	}
	if err := database.Migrate(context.Background(), db); err != nil {
		_ = db.Close()
		return err
	}
	c.bunDB = db
	c.ownsDB = true
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled || c.bunDB == nil {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		} else {
			logging.ModuleLogger(c.loggerProvider, containerModule).Warn("wikitext.cache.disabled", "error", err)
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB != nil {
		c.documentRepo = documents.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.mediaRepo = media.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	} else {
		c.documentRepo = documents.NewMemoryRepository()
		c.mediaRepo = media.NewMemoryRepository()
	}

	c.documentSvc = documents.NewService(c.documentRepo,
		documents.WithLogger(logging.DocumentsLogger(c.loggerProvider)))
	c.mediaSvc = media.NewService(c.mediaRepo,
		media.WithLogger(logging.MediaLogger(c.loggerProvider)))
}

func (c *Container) configureFinders() {
	if c.documentFinder == nil {
		c.documentFinder = c.documentSvc.Finder()
	}
	if c.assetFinder != nil {
		return
	}
	if c.mediaProvider != nil {
		c.assetFinder = media.NewProviderFinder(c.mediaProvider, "")
		return
	}
	c.assetFinder = c.mediaSvc.Finder()
}

func (c *Container) configureRoutes() {
	routeCfg := c.Config.Routes
	if c.routeManager == nil && routeCfg.URLKit.Enabled && routeCfg.URLKit.RouteConfig != nil {
		c.routeManager = urlkit.NewRouteManager(routeCfg.URLKit.RouteConfig)
	}

	if c.routeManager == nil {
		c.routes = routes.NewPathRoutes(routeCfg.Prefix, routeCfg.NewPagePath)
		return
	}

	c.routes = routes.NewURLKitRoutes(routes.URLKitOptions{
		Manager:       c.routeManager,
		Group:         strings.TrimSpace(routeCfg.URLKit.Group),
		DocumentRoute: strings.TrimSpace(routeCfg.URLKit.DocumentRoute),
		NewRoute:      strings.TrimSpace(routeCfg.URLKit.NewRoute),
	})
}

func (c *Container) engineOptions() []wikitext.Option {
	markup := c.Config.Markup
	opts := []wikitext.Option{
		wikitext.WithRouteBuilder(c.routes),
		wikitext.WithRel(markup.LinkRel),
		wikitext.WithLegacyAlt(markup.LegacyAltEscaping),
		wikitext.WithLoggerProvider(c.loggerProvider),
	}
	if prefix := markup.ImagePrefix; prefix != "" {
		opts = append(opts, wikitext.WithImagePrefix(prefix))
	}
	if c.translator != nil {
		opts = append(opts, wikitext.WithTranslator(c.translator))
	}
	if c.metrics != nil {
		opts = append(opts, wikitext.WithMetrics(c.metrics))
	}
	return opts
}

func (c *Container) configureEngines() {
	locale := strings.TrimSpace(c.Config.DefaultLocale)
	c.wikitextEngine = wikitext.NewEngine(locale, c.documentFinder, c.assetFinder, c.engineOptions()...)

	if !c.Config.Features.Markdown {
		return
	}
	factory := markdown.Factory(interfaces.ParseOptions{
		Extensions: c.Config.Markup.MarkdownExtensions,
		HardWraps:  c.Config.Markup.MarkdownHardWraps,
	})
	opts := append(c.engineOptions(), wikitext.WithMarkup(factory))
	c.markdownEngine = wikitext.NewEngine(locale, c.documentFinder, c.assetFinder, opts...)
}

func (c *Container) configureCommands() error {
	if !c.Config.Features.Commands {
		return nil
	}

	bySyntax := map[string]commands.Renderer{
		runtimeconfig.SyntaxWikitext: c.wikitextEngine,
	}
	if c.markdownEngine != nil {
		bySyntax[runtimeconfig.SyntaxMarkdown] = c.markdownEngine
	}

	set, err := commands.Register(c.commandRegistry, commands.Dependencies{
		Documents: c.documentSvc,
		Media:     c.mediaSvc,
		Renderers: commands.Renderers{
			Default:  c.Engine(),
			BySyntax: bySyntax,
		},
		Sink:          c.commandSink,
		DefaultLocale: strings.TrimSpace(c.Config.DefaultLocale),
		Logger:        c.loggerProvider,
	})
	if err != nil {
		return err
	}
	c.commandHandlers = set
	return nil
}

func (c *Container) syntax() string {
	if strings.EqualFold(strings.TrimSpace(c.Config.Markup.Syntax), runtimeconfig.SyntaxMarkdown) {
		return runtimeconfig.SyntaxMarkdown
	}
	return runtimeconfig.SyntaxWikitext
}

func (c *Container) storageName() string {
	if c.bunDB == nil {
		return runtimeconfig.StorageMemory
	}
	return runtimeconfig.StorageBun + "/" + c.bunDB.Dialect().Name().String()
}

// Engine returns the engine for the configured default syntax.
func (c *Container) Engine() *wikitext.Engine {
	if c.syntax() == runtimeconfig.SyntaxMarkdown && c.markdownEngine != nil {
		return c.markdownEngine
	}
	return c.wikitextEngine
}

// WikitextEngine always renders wikitext markup.
func (c *Container) WikitextEngine() *wikitext.Engine {
	return c.wikitextEngine
}

// MarkdownEngine is nil unless the markdown feature is enabled.
func (c *Container) MarkdownEngine() *wikitext.Engine {
	return c.markdownEngine
}

// DocumentService returns the document store backing link resolution.
func (c *Container) DocumentService() *documents.Service {
	return c.documentSvc
}

// MediaService returns the asset store backing image resolution.
func (c *Container) MediaService() *media.Service {
	return c.mediaSvc
}

// Routes returns the URL builder shared by the engines.
func (c *Container) Routes() routes.Builder {
	return c.routes
}

// RouteManager is nil when document URLs are built from path templates.
func (c *Container) RouteManager() *urlkit.RouteManager {
	return c.routeManager
}

// LoggerProvider may be nil when logging is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// BunDB is nil for in-memory storage.
func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

// CacheService is nil unless caching is enabled for bun storage.
func (c *Container) CacheService() repocache.CacheService {
	return c.cacheService
}

// Commands is nil when the commands feature is disabled.
func (c *Container) Commands() *commands.HandlerSet {
	return c.commandHandlers
}

// Close releases the database connection when the container opened it.
func (c *Container) Close() error {
	if c == nil || c.bunDB == nil || !c.ownsDB {
		return nil
	}
	err := c.bunDB.Close()
	c.bunDB = nil
	c.ownsDB = false
	return err
}
