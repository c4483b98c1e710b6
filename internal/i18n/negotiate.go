package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Negotiator maps an Accept-Language header onto the supported set.
type Negotiator struct {
	locales []string
	matcher language.Matcher
}

// NewNegotiator builds a matcher over the supported locales. Locales that are
// not valid BCP 47 tags are skipped.
func NewNegotiator(cfg Config) *Negotiator {
	tags := make([]language.Tag, 0, len(cfg.Locales))
	locales := make([]string, 0, len(cfg.Locales))
	for _, locale := range cfg.Locales {
		tag, err := language.Parse(locale)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		locales = append(locales, locale)
	}
	n := &Negotiator{locales: locales}
	if len(tags) > 0 {
		n.matcher = language.NewMatcher(tags)
	}
	return n
}

// Negotiate returns the supported locale that best matches header, or "" when
// nothing matches. The returned value is always a configured locale string.
func (n *Negotiator) Negotiate(header string) string {
	if n == nil || n.matcher == nil {
		return ""
	}
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	preferred, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(preferred) == 0 {
		return ""
	}
	_, index, confidence := n.matcher.Match(preferred...)
	if confidence == language.No || index < 0 || index >= len(n.locales) {
		return ""
	}
	return n.locales[index]
}
