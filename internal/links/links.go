package links

import (
	"errors"
	"fmt"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"
)

const (
	groupName   = "landing"
	localeRoute = "localized"
	rootRoute   = "root"
	localeParam = "locale"

	// XDefault tags the alternate used for visitors without a locale match.
	XDefault = "x-default"
)

var (
	ErrBaseURLRequired = errors.New("links: base url is required")
	ErrLocaleParam     = errors.New("links: path must contain the :locale parameter")
)

// Config describes where the landing page is served.
type Config struct {
	BaseURL string
	// Path is the localized route, for example "/:locale".
	Path string
}

// Alternate is one hreflang link of the landing page.
type Alternate struct {
	Locale string `json:"hreflang"`
	URL    string `json:"href"`
}

// Builder renders canonical and alternate links. It is read-only after
// construction and safe for concurrent use.
type Builder struct {
	group   *urlkit.Group
	locales []string
}

// NewBuilder registers the landing routes with a go-urlkit route manager.
func NewBuilder(cfg Config, locales []string) (*Builder, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, ErrBaseURLRequired
	}
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		path = "/:" + localeParam
	}
	if !strings.Contains(path, ":"+localeParam) {
		return nil, fmt.Errorf("%w: %q", ErrLocaleParam, path)
	}

	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    groupName,
				BaseURL: base,
				Paths: map[string]string{
					localeRoute: path,
					rootRoute:   "/",
				},
			},
		},
	})
	group, err := lookupGroup(manager, groupName)
	if err != nil {
		return nil, err
	}
	return &Builder{
		group:   group,
		locales: append([]string(nil), locales...),
	}, nil
}

// Canonical returns the localized URL of the landing page for locale.
func (b *Builder) Canonical(locale string) (string, error) {
	return b.build(localeRoute, map[string]any{localeParam: locale})
}

// Alternates lists one link per supported locale followed by the x-default
// link to the unprefixed root.
func (b *Builder) Alternates() ([]Alternate, error) {
	out := make([]Alternate, 0, len(b.locales)+1)
	for _, locale := range b.locales {
		url, err := b.Canonical(locale)
		if err != nil {
			return nil, err
		}
		out = append(out, Alternate{Locale: locale, URL: url})
	}
	root, err := b.build(rootRoute, nil)
	if err != nil {
		return nil, err
	}
	return append(out, Alternate{Locale: XDefault, URL: root}), nil
}

func (b *Builder) build(route string, params map[string]any) (url string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("links: urlkit builder panic: %v", rec)
		}
	}()
	builder := b.group.Builder(route)
	for key, value := range params {
		builder.WithParam(key, value)
	}
	return builder.Build()
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			group, err = nil, fmt.Errorf("links: route group %q not found", name)
		}
	}()
	return manager.Group(name), nil
}
