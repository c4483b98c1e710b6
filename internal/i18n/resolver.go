package i18n

import (
	"errors"
	"fmt"
)

// ErrUnsupportedLocale reports a locale hint outside the supported set.
var ErrUnsupportedLocale = errors.New("i18n: unsupported locale")

// UnsupportedLocaleError carries the rejected hint.
type UnsupportedLocaleError struct {
	Hint string
}

func (e *UnsupportedLocaleError) Error() string {
	if e == nil {
		return ErrUnsupportedLocale.Error()
	}
	return fmt.Sprintf("%s: %q", ErrUnsupportedLocale.Error(), e.Hint)
}

func (e *UnsupportedLocaleError) Unwrap() error {
	return ErrUnsupportedLocale
}

// Resolver picks the effective locale for a request.
type Resolver struct {
	cfg Config
}

// NewResolver builds a resolver over cfg. The configuration is copied.
func NewResolver(cfg Config) *Resolver {
	return &Resolver{cfg: FromModuleConfig(cfg.DefaultLocale, cfg.Locales)}
}

// Resolve returns hint unchanged when it is supported and the default locale
// when hint is empty. Any other hint is rejected; it is never replaced by the
// default.
func (r *Resolver) Resolve(hint string) (string, error) {
	if hint == "" {
		return r.cfg.DefaultLocale, nil
	}
	if r.cfg.Supports(hint) {
		return hint, nil
	}
	return "", &UnsupportedLocaleError{Hint: hint}
}

// DefaultLocale returns the configured default.
func (r *Resolver) DefaultLocale() string {
	return r.cfg.DefaultLocale
}

// Locales returns a copy of the supported set.
func (r *Resolver) Locales() []string {
	return FromModuleConfig("", r.cfg.Locales).Locales
}
