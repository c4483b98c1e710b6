package i18n

import (
	"slices"
	"strings"
)

// Config is the read-only locale configuration: the supported set and the
// locale used when a request carries no hint.
type Config struct {
	DefaultLocale string
	Locales       []string
}

// FromModuleConfig copies the runtime locale settings.
func FromModuleConfig(defaultLocale string, locales []string) Config {
	return Config{
		DefaultLocale: strings.TrimSpace(defaultLocale),
		Locales:       slices.Clone(locales),
	}
}

// Supports reports whether locale is a member of the supported set. Matching
// is exact.
func (c Config) Supports(locale string) bool {
	return slices.Contains(c.Locales, locale)
}
