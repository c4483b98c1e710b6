package variants

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/goliatone/go-slug"
)

var (
	ErrDefaultKeyRequired = errors.New("variants: default variant key is required")
	ErrInvalidKey         = errors.New("variants: variant key must be a valid slug")
	ErrUnknownLocale      = errors.New("variants: override references an unsupported locale")
)

// Table is the locale to variant mapping. Default serves every locale that
// has no override.
type Table struct {
	Default   string
	Overrides map[string]string
}

// Selector maps a resolved locale to the variant key to fetch. It is
// immutable after construction and safe for concurrent use.
type Selector struct {
	table Table
}

// NewSelector validates table against the supported locales and returns a
// selector over a private copy of it.
func NewSelector(table Table, locales []string) (*Selector, error) {
	def := strings.TrimSpace(table.Default)
	if def == "" {
		return nil, ErrDefaultKeyRequired
	}
	if !slug.IsValid(def) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKey, def)
	}

	supported := make(map[string]struct{}, len(locales))
	for _, locale := range locales {
		supported[locale] = struct{}{}
	}

	overrides := make(map[string]string, len(table.Overrides))
	for locale, key := range table.Overrides {
		if _, ok := supported[locale]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
		}
		key = strings.TrimSpace(key)
		if !slug.IsValid(key) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
		overrides[locale] = key
	}

	return &Selector{table: Table{Default: def, Overrides: overrides}}, nil
}

// Select returns the variant key for locale. It never fails: locales without
// an override get the default variant.
func (s *Selector) Select(locale string) string {
	if key, ok := s.table.Overrides[locale]; ok {
		return key
	}
	return s.table.Default
}

// Table returns a copy of the mapping.
func (s *Selector) Table() Table {
	return Table{Default: s.table.Default, Overrides: maps.Clone(s.table.Overrides)}
}

// Keys returns every distinct variant key the selector can produce.
func (s *Selector) Keys() []string {
	keys := []string{s.table.Default}
	seen := map[string]struct{}{s.table.Default: {}}
	for _, key := range s.table.Overrides {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}
