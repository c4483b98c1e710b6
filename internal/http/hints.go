package http

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-landing/internal/i18n"
)

const localePathValue = "locale"

// HintExtractor reads the raw locale hint of a request. It never validates the
// hint; that is the resolver's job.
type HintExtractor struct {
	cookie     string
	negotiator *i18n.Negotiator
}

// NewHintExtractor reads hints from cookie and, when negotiator is not nil,
// from the Accept-Language header.
func NewHintExtractor(cookie string, negotiator *i18n.Negotiator) *HintExtractor {
	return &HintExtractor{
		cookie:     strings.TrimSpace(cookie),
		negotiator: negotiator,
	}
}

// Extract returns the first hint found: the {locale} path value, the locale
// cookie, then the negotiated Accept-Language match. It returns "" when the
// request expresses no preference.
func (h *HintExtractor) Extract(r *http.Request) string {
	if r == nil {
		return ""
	}
	if value := strings.TrimSpace(r.PathValue(localePathValue)); value != "" {
		return value
	}
	if h == nil {
		return ""
	}
	if h.cookie != "" {
		if cookie, err := r.Cookie(h.cookie); err == nil {
			if value := strings.TrimSpace(cookie.Value); value != "" {
				return value
			}
		}
	}
	return h.negotiator.Negotiate(r.Header.Get("Accept-Language"))
}
