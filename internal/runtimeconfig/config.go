package runtimeconfig

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
)

var (
	ErrDefaultLocaleRequired    = errors.New("landing config: default locale is required")
	ErrDefaultLocaleUnsupported = errors.New("landing config: default locale must be one of the supported locales")
	ErrLocalesRequired          = errors.New("landing config: at least one supported locale is required")
	ErrLocaleDuplicate          = errors.New("landing config: duplicate supported locale")
	ErrLocaleEmpty              = errors.New("landing config: supported locale cannot be empty")
	ErrDefaultVariantRequired   = errors.New("landing config: default variant key is required")
	ErrVariantKeyInvalid        = errors.New("landing config: variant key must be a valid slug")
	ErrVariantLocaleUnsupported = errors.New("landing config: variant override references an unsupported locale")
	ErrStorageProviderUnknown   = errors.New("landing config: storage provider is invalid")
	ErrStorageDSNRequired       = errors.New("landing config: storage dsn is required for sql providers")
	ErrCacheTTLInvalid          = errors.New("landing config: cache ttl must be positive when cache is enabled")
	ErrLinksBaseURLRequired     = errors.New("landing config: links base url is required when links are enabled")
	ErrLoggingProviderRequired  = errors.New("landing config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown   = errors.New("landing config: logging provider is invalid")
	ErrLoggingLevelInvalid      = errors.New("landing config: logging level is invalid")
	ErrLoggingFormatInvalid     = errors.New("landing config: logging format is invalid")
)

// Storage providers understood by the container.
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Config aggregates everything the landing runtime reads at startup. It is
// never mutated once a container has been built from it.
type Config struct {
	DefaultLocale string
	I18N          I18NConfig
	Variants      VariantConfig
	Storage       StorageConfig
	Cache         CacheConfig
	Links         LinksConfig
	HTTP          HTTPConfig
	Commands      CommandsConfig
	Features      Features
	Logging       LoggingConfig
}

// I18NConfig lists the supported locales and how requests carry a hint.
type I18NConfig struct {
	Locales                 []string
	LocaleCookie            string
	NegotiateAcceptLanguage bool
	// FixturePath optionally points to a JSON locale fixture that replaces
	// DefaultLocale, Locales and Variants.
	FixturePath string
}

// VariantConfig maps locales to authored page variants. Default serves every
// locale without an override.
type VariantConfig struct {
	Default   string
	Overrides map[string]string
}

// StorageConfig selects the content fetcher backend.
type StorageConfig struct {
	Provider    string
	DSN         string
	FixturesDir string
	Debug       bool
}

// CacheConfig toggles the repository read cache for SQL providers.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// LinksConfig configures locale alternate links.
type LinksConfig struct {
	BaseURL string
	Path    string
}

// HTTPConfig configures the public HTTP surface.
type HTTPConfig struct {
	Address      string
	BasePath     string
	FetchTimeout time.Duration
}

// CommandsConfig configures command handlers.
type CommandsConfig struct {
	Timeout time.Duration
}

// Features toggles optional behaviour.
type Features struct {
	Logger  bool
	Metrics bool
	Links   bool
}

// LoggingConfig captures go-logger options.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig mirrors the production deployment: Japanese is the default
// locale and is served by the primary "evame" variant, English visitors get
// the "evame-ja" mirror.
func DefaultConfig() Config {
	return Config{
		DefaultLocale: "ja",
		I18N: I18NConfig{
			Locales:      []string{"ja", "en"},
			LocaleCookie: "NEXT_LOCALE",
		},
		Variants: VariantConfig{
			Default: "evame",
			Overrides: map[string]string{
				"en": "evame-ja",
			},
		},
		Storage: StorageConfig{
			Provider: StorageMemory,
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Links: LinksConfig{
			Path: "/:locale",
		},
		HTTP: HTTPConfig{
			Address:      ":8080",
			FetchTimeout: 5 * time.Second,
		},
		Commands: CommandsConfig{
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "json",
		},
	}
}

// Validate performs consistency checks across sections.
func (cfg Config) Validate() error {
	if err := cfg.validateLocales(); err != nil {
		return err
	}
	if err := cfg.validateVariants(); err != nil {
		return err
	}

	switch provider := normalize(cfg.Storage.Provider); provider {
	case StorageMemory:
	case StorageSQLite, StoragePostgres:
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return fmt.Errorf("%w: %s", ErrStorageDSNRequired, provider)
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}

	if cfg.Cache.Enabled && cfg.Cache.DefaultTTL <= 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.Features.Links && strings.TrimSpace(cfg.Links.BaseURL) == "" {
		return ErrLinksBaseURLRequired
	}

	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if provider != "gologger" {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func (cfg Config) validateLocales() error {
	if len(cfg.I18N.Locales) == 0 {
		return ErrLocalesRequired
	}
	seen := make(map[string]struct{}, len(cfg.I18N.Locales))
	for _, locale := range cfg.I18N.Locales {
		if strings.TrimSpace(locale) == "" {
			return ErrLocaleEmpty
		}
		if _, ok := seen[locale]; ok {
			return fmt.Errorf("%w: %s", ErrLocaleDuplicate, locale)
		}
		seen[locale] = struct{}{}
	}

	if strings.TrimSpace(cfg.DefaultLocale) == "" {
		return ErrDefaultLocaleRequired
	}
	if _, ok := seen[cfg.DefaultLocale]; !ok {
		return fmt.Errorf("%w: %s", ErrDefaultLocaleUnsupported, cfg.DefaultLocale)
	}
	return nil
}

func (cfg Config) validateVariants() error {
	if strings.TrimSpace(cfg.Variants.Default) == "" {
		return ErrDefaultVariantRequired
	}
	if !slug.IsValid(cfg.Variants.Default) {
		return fmt.Errorf("%w: %s", ErrVariantKeyInvalid, cfg.Variants.Default)
	}
	for locale, key := range cfg.Variants.Overrides {
		if !slices.Contains(cfg.I18N.Locales, locale) {
			return fmt.Errorf("%w: %s", ErrVariantLocaleUnsupported, locale)
		}
		if !slug.IsValid(key) {
			return fmt.Errorf("%w: %s", ErrVariantKeyInvalid, key)
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
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
