package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-landing/internal/runtimeconfig"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if cfg.DefaultLocale != "ja" {
		t.Fatalf("expected default locale ja, got %q", cfg.DefaultLocale)
	}
	if cfg.Variants.Default != "evame" || cfg.Variants.Overrides["en"] != "evame-ja" {
		t.Fatalf("unexpected variant mapping %+v", cfg.Variants)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{
			name:   "default locale must be supported",
			mutate: func(cfg *runtimeconfig.Config) { cfg.DefaultLocale = "fr" },
			want:   runtimeconfig.ErrDefaultLocaleUnsupported,
		},
		{
			name:   "default locale required",
			mutate: func(cfg *runtimeconfig.Config) { cfg.DefaultLocale = " " },
			want:   runtimeconfig.ErrDefaultLocaleRequired,
		},
		{
			name:   "locales required",
			mutate: func(cfg *runtimeconfig.Config) { cfg.I18N.Locales = nil },
			want:   runtimeconfig.ErrLocalesRequired,
		},
		{
			name:   "duplicate locale",
			mutate: func(cfg *runtimeconfig.Config) { cfg.I18N.Locales = []string{"ja", "en", "ja"} },
			want:   runtimeconfig.ErrLocaleDuplicate,
		},
		{
			name:   "empty locale",
			mutate: func(cfg *runtimeconfig.Config) { cfg.I18N.Locales = []string{"ja", ""} },
			want:   runtimeconfig.ErrLocaleEmpty,
		},
		{
			name:   "default variant required",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Variants.Default = "" },
			want:   runtimeconfig.ErrDefaultVariantRequired,
		},
		{
			name:   "variant keys are slugs",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Variants.Overrides["en"] = "Evame JA" },
			want:   runtimeconfig.ErrVariantKeyInvalid,
		},
		{
			name:   "override locale must be supported",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Variants.Overrides["fr"] = "evame-fr" },
			want:   runtimeconfig.ErrVariantLocaleUnsupported,
		},
		{
			name:   "unknown storage provider",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Storage.Provider = "mongo" },
			want:   runtimeconfig.ErrStorageProviderUnknown,
		},
		{
			name: "sql providers need a dsn",
			mutate: func(cfg *runtimeconfig.Config) {
				cfg.Storage.Provider = runtimeconfig.StorageSQLite
				cfg.Storage.DSN = ""
			},
			want: runtimeconfig.ErrStorageDSNRequired,
		},
		{
			name:   "cache ttl positive",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Cache.DefaultTTL = 0 },
			want:   runtimeconfig.ErrCacheTTLInvalid,
		},
		{
			name:   "links need a base url",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Features.Links = true },
			want:   runtimeconfig.ErrLinksBaseURLRequired,
		},
		{
			name: "logging provider required",
			mutate: func(cfg *runtimeconfig.Config) {
				cfg.Features.Logger = true
				cfg.Logging.Provider = ""
			},
			want: runtimeconfig.ErrLoggingProviderRequired,
		},
		{
			name: "logging provider unknown",
			mutate: func(cfg *runtimeconfig.Config) {
				cfg.Features.Logger = true
				cfg.Logging.Provider = "syslog"
			},
			want: runtimeconfig.ErrLoggingProviderUnknown,
		},
		{
			name: "logging level invalid",
			mutate: func(cfg *runtimeconfig.Config) {
				cfg.Features.Logger = true
				cfg.Logging.Level = "verbose"
			},
			want: runtimeconfig.ErrLoggingLevelInvalid,
		},
		{
			name: "logging format invalid",
			mutate: func(cfg *runtimeconfig.Config) {
				cfg.Features.Logger = true
				cfg.Logging.Format = "xml"
			},
			want: runtimeconfig.ErrLoggingFormatInvalid,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := runtimeconfig.Parse([]byte(`
default_locale = "en"

[i18n]
locales = ["en", "ja", "zh"]
negotiate_accept_language = true

[variants]
default = "evame-ja"

[variants.overrides]
ja = "evame"

[cache]
default_ttl = "90s"

[http]
fetch_timeout = "2s"

[features]
metrics = true
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.DefaultLocale != "en" {
		t.Fatalf("expected default locale en, got %q", cfg.DefaultLocale)
	}
	if len(cfg.I18N.Locales) != 3 || !cfg.I18N.NegotiateAcceptLanguage {
		t.Fatalf("unexpected i18n config %+v", cfg.I18N)
	}
	if cfg.I18N.LocaleCookie != "NEXT_LOCALE" {
		t.Fatalf("expected cookie default to be kept, got %q", cfg.I18N.LocaleCookie)
	}
	if cfg.Variants.Default != "evame-ja" || cfg.Variants.Overrides["ja"] != "evame" {
		t.Fatalf("unexpected variants %+v", cfg.Variants)
	}
	if _, ok := cfg.Variants.Overrides["en"]; ok {
		t.Fatalf("expected overrides table to replace defaults, got %+v", cfg.Variants.Overrides)
	}
	if cfg.Cache.DefaultTTL != 90*time.Second || cfg.HTTP.FetchTimeout != 2*time.Second {
		t.Fatalf("unexpected durations ttl=%s fetch=%s", cfg.Cache.DefaultTTL, cfg.HTTP.FetchTimeout)
	}
	if !cfg.Features.Metrics {
		t.Fatal("expected metrics feature enabled")
	}
}

func TestParseRejectsInvalidDuration(t *testing.T) {
	_, err := runtimeconfig.Parse([]byte(`
[cache]
default_ttl = "soon"
`))
	if err == nil {
		t.Fatal("expected duration error")
	}
}

func TestParseValidatesResult(t *testing.T) {
	_, err := runtimeconfig.Parse([]byte(`default_locale = "fr"`))
	if !errors.Is(err, runtimeconfig.ErrDefaultLocaleUnsupported) {
		t.Fatalf("expected ErrDefaultLocaleUnsupported, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "landing.toml")
	if err := os.WriteFile(path, []byte("[storage]\nprovider = \"sqlite\"\ndsn = \"file::memory:\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := runtimeconfig.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Storage.Provider != runtimeconfig.StorageSQLite || cfg.Storage.DSN != "file::memory:" {
		t.Fatalf("unexpected storage config %+v", cfg.Storage)
	}

	if _, err := runtimeconfig.LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
