package di

import (
	"context"
	"fmt"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-landing/internal/commands"
	fixturescmd "github.com/goliatone/go-landing/internal/commands/fixtures"
	startcmd "github.com/goliatone/go-landing/internal/commands/start"
	"github.com/goliatone/go-landing/internal/database"
	landinghttp "github.com/goliatone/go-landing/internal/http"
	"github.com/goliatone/go-landing/internal/i18n"
	"github.com/goliatone/go-landing/internal/links"
	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/internal/logging/gologger"
	"github.com/goliatone/go-landing/internal/markdown"
	"github.com/goliatone/go-landing/internal/resolution"
	"github.com/goliatone/go-landing/internal/runtimeconfig"
	internalsegments "github.com/goliatone/go-landing/internal/segments"
	"github.com/goliatone/go-landing/internal/variants"
	"github.com/goliatone/go-landing/pkg/interfaces"
	"github.com/goliatone/go-landing/segments"
)

// Container wires module dependencies from a runtime configuration. Nothing
// it holds is mutated after NewContainer returns.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	localeConfig i18n.Config
	resolver     *i18n.Resolver
	negotiator   *i18n.Negotiator
	selector     *variants.Selector

	bunDB         *bun.DB
	ownsDB        bool
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	store   internalsegments.Store
	fetcher segments.Fetcher

	registry       *prometheus.Registry
	metrics        interfaces.ResolutionMetrics
	resolutionSvc  *resolution.Service
	links          *links.Builder
	viewerProvider interfaces.ViewerProvider

	startHandler  *startcmd.Handler
	importHandler *fixturescmd.ImportDirectoryHandler
	lastImport    markdown.ImportResult
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBunDB supplies an open database instead of opening Config.Storage.DSN.
// The caller keeps ownership of db.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default repository cache.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithFetcher replaces the configured store as the resolution content source.
// Fixture imports still target the store.
func WithFetcher(fetcher segments.Fetcher) Option {
	return func(c *Container) {
		c.fetcher = fetcher
	}
}

// WithViewerProvider sets how HTTP requests identify the signed-in viewer.
func WithViewerProvider(provider interfaces.ViewerProvider) Option {
	return func(c *Container) {
		c.viewerProvider = provider
	}
}

// WithRegistry registers resolution metrics on reg instead of a private
// registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(c *Container) {
		c.registry = reg
	}
}

// NewContainer validates cfg and builds every component. ctx bounds the
// storage bootstrap: opening the database, creating tables and importing
// fixtures.
func NewContainer(ctx context.Context, cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureLocales(ctx); err != nil {
		return nil, err
	}
	if err := c.Config.Validate(); err != nil {
		return nil, err
	}
	if err := c.configureStorage(ctx); err != nil {
		return nil, err
	}
	c.configureCommands()
	if err := c.importFixtures(ctx); err != nil {
		c.Close()
		return nil, err
	}
	c.configureMetrics()
	if err := c.configureLinks(); err != nil {
		c.Close()
		return nil, err
	}
	c.configureResolution()
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}
	provider := strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider))
	if provider != "gologger" {
		return fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingProviderUnknown, provider)
	}
	logProvider, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    c.Config.Logging.Format,
		AddSource: c.Config.Logging.AddSource,
		Focus:     c.Config.Logging.Focus,
	})
	if err != nil {
		return err
	}
	c.loggerProvider = logProvider
	return nil
}

// configureLocales applies the optional locale fixture over the configured
// locales and variants, then builds the resolver, negotiator and selector.
func (c *Container) configureLocales(ctx context.Context) error {
	logger := logging.I18NLogger(c.loggerProvider)

	if path := strings.TrimSpace(c.Config.I18N.FixturePath); path != "" {
		fixture, err := i18n.NewLoader(path).Load(ctx)
		if err != nil {
			logger.Error("i18n.fixture.load_failed", "path", path, "error", err)
			return err
		}
		c.Config.DefaultLocale = fixture.DefaultLocale
		c.Config.I18N.Locales = append([]string(nil), fixture.Locales...)
		c.Config.Variants = runtimeconfig.VariantConfig{
			Default:   fixture.Variants.Default,
			Overrides: fixture.Variants.Overrides,
		}
		logger.Info("i18n.fixture.loaded", "path", path, "locales", len(fixture.Locales))
	}

	c.localeConfig = i18n.FromModuleConfig(c.Config.DefaultLocale, c.Config.I18N.Locales)
	c.resolver = i18n.NewResolver(c.localeConfig)
	if c.Config.I18N.NegotiateAcceptLanguage {
		c.negotiator = i18n.NewNegotiator(c.localeConfig)
	}

	selector, err := variants.NewSelector(variants.Table{
		Default:   c.Config.Variants.Default,
		Overrides: c.Config.Variants.Overrides,
	}, c.localeConfig.Locales)
	if err != nil {
		return err
	}
	c.selector = selector
	return nil
}

func (c *Container) configureStorage(ctx context.Context) error {
	logger := logging.SegmentsLogger(c.loggerProvider)
	provider := strings.ToLower(strings.TrimSpace(c.Config.Storage.Provider))

	if provider == runtimeconfig.StorageMemory && c.bunDB == nil {
		c.store = internalsegments.NewMemoryStore(internalsegments.WithLogger(logger))
		logger.Debug("segments.store.configured", "provider", provider)
		return nil
	}

	if c.bunDB == nil {
		db, err := database.Open(ctx, c.Config.Storage, logging.ModuleLogger(c.loggerProvider, "landing.database"))
		if err != nil {
			return err
		}
		c.bunDB = db
		c.ownsDB = true
	}

	var store *internalsegments.BunStore
	if c.Config.Cache.Enabled {
		if err := c.configureCacheDefaults(); err != nil {
			c.Close()
			return err
		}
		store = internalsegments.NewBunStoreWithCache(c.bunDB, c.cacheService, c.keySerializer, internalsegments.WithLogger(logger))
	} else {
		store = internalsegments.NewBunStore(c.bunDB, internalsegments.WithLogger(logger))
	}
	if err := store.CreateTables(ctx); err != nil {
		c.Close()
		return err
	}
	c.store = store
	logger.Debug("segments.store.configured", "provider", provider, "cache", c.Config.Cache.Enabled)
	return nil
}

func (c *Container) configureCacheDefaults() error {
	if c.cacheService != nil && c.keySerializer != nil {
		return nil
	}
	cacheCfg := repocache.DefaultConfig()
	if ttl := c.Config.Cache.DefaultTTL; ttl > 0 {
		cacheCfg.TTL = ttl
	} else {
		cacheCfg.TTL = time.Minute
	}
	if c.cacheService == nil {
		service, err := repocache.NewCacheService(cacheCfg)
		if err != nil {
			return fmt.Errorf("di: build repository cache: %w", err)
		}
		c.cacheService = service
	}
	if c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
	return nil
}

func (c *Container) configureCommands() {
	timeout := c.Config.Commands.Timeout
	if timeout <= 0 {
		timeout = commands.DefaultTimeout
	}

	c.startHandler = startcmd.NewHandler(
		commands.CommandLogger(c.loggerProvider, "start"),
		commands.WithTimeout[startcmd.StartCommand, startcmd.StartResult](timeout),
	)

	importer := markdown.NewImporter(c.store, markdown.WithLogger(logging.MarkdownLogger(c.loggerProvider)))
	c.importHandler = fixturescmd.NewImportDirectoryHandler(
		importer,
		commands.CommandLogger(c.loggerProvider, "fixtures"),
		nil,
		commands.WithTimeout[fixturescmd.ImportDirectoryCommand, markdown.ImportResult](timeout),
	)
}

func (c *Container) importFixtures(ctx context.Context) error {
	dir := strings.TrimSpace(c.Config.Storage.FixturesDir)
	if dir == "" {
		return nil
	}
	result, err := c.importHandler.Import(ctx, fixturescmd.ImportDirectoryCommand{Directory: dir})
	if err != nil {
		return err
	}
	c.lastImport = result
	return nil
}

func (c *Container) configureMetrics() {
	if !c.Config.Features.Metrics {
		c.metrics = resolution.NoOpMetrics()
		return
	}
	if c.registry == nil {
		c.registry = prometheus.NewRegistry()
	}
	c.metrics = resolution.NewPrometheusMetrics(c.registry)
}

func (c *Container) configureLinks() error {
	if !c.Config.Features.Links {
		return nil
	}
	builder, err := links.NewBuilder(links.Config{
		BaseURL: c.Config.Links.BaseURL,
		Path:    c.Config.Links.Path,
	}, c.localeConfig.Locales)
	if err != nil {
		return err
	}
	c.links = builder
	return nil
}

func (c *Container) configureResolution() {
	fetcher := c.fetcher
	if fetcher == nil {
		fetcher = c.store
	}
	c.resolutionSvc = resolution.NewService(
		c.resolver,
		c.selector,
		fetcher,
		resolution.WithLogger(logging.ResolutionLogger(c.loggerProvider)),
		resolution.WithMetrics(c.metrics),
	)
}

// ResolutionService returns the hero resolution flow.
func (c *Container) ResolutionService() *resolution.Service {
	return c.resolutionSvc
}

// Store returns the configured content store.
func (c *Container) Store() internalsegments.Store {
	return c.store
}

// LocaleConfig returns the effective locale configuration.
func (c *Container) LocaleConfig() i18n.Config {
	return c.localeConfig
}

func (c *Container) VariantSelector() *variants.Selector {
	return c.selector
}

func (c *Container) StartHandler() *startcmd.Handler {
	return c.startHandler
}

func (c *Container) ImportHandler() *fixturescmd.ImportDirectoryHandler {
	return c.importHandler
}

// ImportedFixtures reports what the startup import loaded.
func (c *Container) ImportedFixtures() markdown.ImportResult {
	return c.lastImport
}

func (c *Container) Links() *links.Builder {
	return c.links
}

// MetricsRegistry returns the registry holding resolution metrics, or nil when
// metrics are disabled.
func (c *Container) MetricsRegistry() *prometheus.Registry {
	return c.registry
}

func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// PublicAPI builds the HTTP surface over the container's services.
func (c *Container) PublicAPI() *landinghttp.PublicAPI {
	opts := []landinghttp.PublicOption{
		landinghttp.WithBasePath(c.Config.HTTP.BasePath),
		landinghttp.WithResolver(c.resolutionSvc),
		landinghttp.WithStarter(c.startHandler),
		landinghttp.WithHintExtractor(landinghttp.NewHintExtractor(c.Config.I18N.LocaleCookie, c.negotiator)),
		landinghttp.WithFetchTimeout(c.Config.HTTP.FetchTimeout),
		landinghttp.WithLogger(logging.HTTPLogger(c.loggerProvider)),
	}
	if c.viewerProvider != nil {
		opts = append(opts, landinghttp.WithViewerProvider(c.viewerProvider))
	}
	if c.links != nil {
		opts = append(opts, landinghttp.WithLinks(c.links))
	}
	if c.registry != nil {
		opts = append(opts, landinghttp.WithMetricsHandler(promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})))
	}
	return landinghttp.NewPublicAPI(opts...)
}

// Close releases the database when the container opened it.
func (c *Container) Close() error {
	if c == nil || c.bunDB == nil || !c.ownsDB {
		return nil
	}
	err := c.bunDB.Close()
	c.bunDB = nil
	return err
}
