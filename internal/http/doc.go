// Package http exposes the landing page over net/http.
//
// Routes mount under the configured base path:
//   - GET /          hero content for the visitor's cookie or Accept-Language hint
//   - GET /{locale}  hero content for an explicit locale
//   - POST /start    call-to-action submission for anonymous visitors
//   - GET /metrics   Prometheus metrics, when enabled
//
// Host applications register the handlers on their own mux.
package http
