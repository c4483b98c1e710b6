package landing

import (
	"github.com/goliatone/go-landing/internal/resolution"
	"github.com/goliatone/go-landing/internal/runtimeconfig"
)

var (
	ErrDefaultLocaleRequired    = runtimeconfig.ErrDefaultLocaleRequired
	ErrDefaultLocaleUnsupported = runtimeconfig.ErrDefaultLocaleUnsupported
	ErrLocalesRequired          = runtimeconfig.ErrLocalesRequired
	ErrDefaultVariantRequired   = runtimeconfig.ErrDefaultVariantRequired
	ErrVariantKeyInvalid        = runtimeconfig.ErrVariantKeyInvalid
	ErrVariantLocaleUnsupported = runtimeconfig.ErrVariantLocaleUnsupported
	ErrStorageProviderUnknown   = runtimeconfig.ErrStorageProviderUnknown
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown

	// ErrContentUnavailable is wrapped by every resolution failure.
	ErrContentUnavailable = resolution.ErrContentUnavailable
)

type (
	Config         = runtimeconfig.Config
	I18NConfig     = runtimeconfig.I18NConfig
	VariantConfig  = runtimeconfig.VariantConfig
	StorageConfig  = runtimeconfig.StorageConfig
	CacheConfig    = runtimeconfig.CacheConfig
	LinksConfig    = runtimeconfig.LinksConfig
	HTTPConfig     = runtimeconfig.HTTPConfig
	CommandsConfig = runtimeconfig.CommandsConfig
	Features       = runtimeconfig.Features
	LoggingConfig  = runtimeconfig.LoggingConfig
)

// DefaultConfig returns the production locale and variant layout.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a TOML configuration file over the defaults.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.LoadFile(path)
}
