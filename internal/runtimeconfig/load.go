package runtimeconfig

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// fileConfig is the TOML shape of Config. Unset keys keep their defaults.
type fileConfig struct {
	DefaultLocale string `toml:"default_locale"`
	I18N          struct {
		Locales                 []string `toml:"locales"`
		LocaleCookie            string   `toml:"locale_cookie"`
		NegotiateAcceptLanguage *bool    `toml:"negotiate_accept_language"`
		FixturePath             string   `toml:"fixture_path"`
	} `toml:"i18n"`
	Variants struct {
		Default   string            `toml:"default"`
		Overrides map[string]string `toml:"overrides"`
	} `toml:"variants"`
	Storage struct {
		Provider    string `toml:"provider"`
		DSN         string `toml:"dsn"`
		FixturesDir string `toml:"fixtures_dir"`
		Debug       *bool  `toml:"debug"`
	} `toml:"storage"`
	Cache struct {
		Enabled    *bool  `toml:"enabled"`
		DefaultTTL string `toml:"default_ttl"`
	} `toml:"cache"`
	Links struct {
		BaseURL string `toml:"base_url"`
		Path    string `toml:"path"`
	} `toml:"links"`
	HTTP struct {
		Address      string `toml:"address"`
		BasePath     string `toml:"base_path"`
		FetchTimeout string `toml:"fetch_timeout"`
	} `toml:"http"`
	Commands struct {
		Timeout string `toml:"timeout"`
	} `toml:"commands"`
	Features struct {
		Logger  *bool `toml:"logger"`
		Metrics *bool `toml:"metrics"`
		Links   *bool `toml:"links"`
	} `toml:"features"`
	Logging struct {
		Provider  string   `toml:"provider"`
		Level     string   `toml:"level"`
		Format    string   `toml:"format"`
		AddSource *bool    `toml:"add_source"`
		Focus     []string `toml:"focus"`
	} `toml:"logging"`
}

// LoadFile reads a TOML file over DefaultConfig and validates the result.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("landing config: read %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes TOML over DefaultConfig and validates the result.
func Parse(data []byte) (Config, error) {
	var raw fileConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("landing config: decode toml: %w", err)
	}

	cfg := DefaultConfig()
	if err := raw.apply(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (f fileConfig) apply(cfg *Config) error {
	setString(&cfg.DefaultLocale, f.DefaultLocale)

	if len(f.I18N.Locales) > 0 {
		cfg.I18N.Locales = append([]string(nil), f.I18N.Locales...)
	}
	setString(&cfg.I18N.LocaleCookie, f.I18N.LocaleCookie)
	setBool(&cfg.I18N.NegotiateAcceptLanguage, f.I18N.NegotiateAcceptLanguage)
	setString(&cfg.I18N.FixturePath, f.I18N.FixturePath)

	setString(&cfg.Variants.Default, f.Variants.Default)
	if f.Variants.Overrides != nil {
		cfg.Variants.Overrides = make(map[string]string, len(f.Variants.Overrides))
		for locale, key := range f.Variants.Overrides {
			cfg.Variants.Overrides[locale] = key
		}
	}

	setString(&cfg.Storage.Provider, f.Storage.Provider)
	setString(&cfg.Storage.DSN, f.Storage.DSN)
	setString(&cfg.Storage.FixturesDir, f.Storage.FixturesDir)
	setBool(&cfg.Storage.Debug, f.Storage.Debug)

	setBool(&cfg.Cache.Enabled, f.Cache.Enabled)
	if err := setDuration(&cfg.Cache.DefaultTTL, f.Cache.DefaultTTL, "cache.default_ttl"); err != nil {
		return err
	}

	setString(&cfg.Links.BaseURL, f.Links.BaseURL)
	setString(&cfg.Links.Path, f.Links.Path)

	setString(&cfg.HTTP.Address, f.HTTP.Address)
	setString(&cfg.HTTP.BasePath, f.HTTP.BasePath)
	if err := setDuration(&cfg.HTTP.FetchTimeout, f.HTTP.FetchTimeout, "http.fetch_timeout"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Commands.Timeout, f.Commands.Timeout, "commands.timeout"); err != nil {
		return err
	}

	setBool(&cfg.Features.Logger, f.Features.Logger)
	setBool(&cfg.Features.Metrics, f.Features.Metrics)
	setBool(&cfg.Features.Links, f.Features.Links)

	setString(&cfg.Logging.Provider, f.Logging.Provider)
	setString(&cfg.Logging.Level, f.Logging.Level)
	setString(&cfg.Logging.Format, f.Logging.Format)
	setBool(&cfg.Logging.AddSource, f.Logging.AddSource)
	if len(f.Logging.Focus) > 0 {
		cfg.Logging.Focus = append([]string(nil), f.Logging.Focus...)
	}
	return nil
}

func setString(target *string, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		*target = trimmed
	}
}

func setBool(target *bool, value *bool) {
	if value != nil {
		*target = *value
	}
}

func setDuration(target *time.Duration, value, key string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("landing config: %s: %w", key, err)
	}
	*target = parsed
	return nil
}
