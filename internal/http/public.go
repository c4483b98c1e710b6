package http

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"

	startcmd "github.com/goliatone/go-landing/internal/commands/start"
	"github.com/goliatone/go-landing/internal/links"
	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/internal/resolution"
	"github.com/goliatone/go-landing/pkg/interfaces"
	"github.com/goliatone/go-landing/segments"
)

// Resolver resolves hero content for one request.
type Resolver interface {
	ResolvePage(ctx context.Context, req resolution.Request) (resolution.Result, error)
}

// Starter handles call-to-action submissions.
type Starter interface {
	Submit(ctx context.Context, msg startcmd.StartCommand) (startcmd.StartResult, error)
}

// PublicAPI serves the landing page endpoints.
type PublicAPI struct {
	basePath     string
	resolver     Resolver
	starter      Starter
	viewers      interfaces.ViewerProvider
	hints        *HintExtractor
	links        *links.Builder
	metrics      http.Handler
	fetchTimeout time.Duration
	logger       interfaces.Logger
}

// PublicOption mutates the PublicAPI configuration.
type PublicOption func(*PublicAPI)

// NewPublicAPI constructs a PublicAPI. A resolver is required before Register.
func NewPublicAPI(opts ...PublicOption) *PublicAPI {
	api := &PublicAPI{
		hints:  NewHintExtractor("", nil),
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath mounts every route under path.
func WithBasePath(path string) PublicOption {
	return func(api *PublicAPI) {
		api.basePath = strings.TrimSpace(path)
	}
}

func WithResolver(resolver Resolver) PublicOption {
	return func(api *PublicAPI) {
		api.resolver = resolver
	}
}

func WithStarter(starter Starter) PublicOption {
	return func(api *PublicAPI) {
		api.starter = starter
	}
}

// WithViewerProvider sets how the signed-in viewer is identified. Without one
// every request is anonymous.
func WithViewerProvider(provider interfaces.ViewerProvider) PublicOption {
	return func(api *PublicAPI) {
		api.viewers = provider
	}
}

func WithHintExtractor(hints *HintExtractor) PublicOption {
	return func(api *PublicAPI) {
		if hints != nil {
			api.hints = hints
		}
	}
}

// WithLinks adds alternate locale links to hero responses.
func WithLinks(builder *links.Builder) PublicOption {
	return func(api *PublicAPI) {
		api.links = builder
	}
}

// WithMetricsHandler exposes handler at /metrics.
func WithMetricsHandler(handler http.Handler) PublicOption {
	return func(api *PublicAPI) {
		api.metrics = handler
	}
}

// WithFetchTimeout bounds each resolution. Zero leaves the request context
// untouched.
func WithFetchTimeout(timeout time.Duration) PublicOption {
	return func(api *PublicAPI) {
		api.fetchTimeout = timeout
	}
}

func WithLogger(logger interfaces.Logger) PublicOption {
	return func(api *PublicAPI) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// Register attaches the endpoints to mux.
func (api *PublicAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api.resolver == nil {
		return fmt.Errorf("http: resolver is required")
	}
	prefix := strings.TrimSuffix(joinPath(api.basePath, ""), "/")

	mux.HandleFunc("GET "+prefix+"/{$}", api.handleHero)
	mux.HandleFunc("GET "+prefix+"/{"+localePathValue+"}", api.handleHero)
	if api.starter != nil {
		mux.HandleFunc("POST "+prefix+"/start", api.handleStart)
	}
	if api.metrics != nil {
		mux.Handle("GET "+prefix+"/metrics", api.metrics)
	}
	return nil
}

type heroResponse struct {
	Lang            string            `json:"lang"`
	Variant         string            `json:"variant"`
	SourceLocale    string            `json:"source_locale,omitempty"`
	Title           segments.Segment  `json:"title"`
	Body            segments.Segment  `json:"body"`
	Viewer          *segments.Viewer  `json:"viewer,omitempty"`
	ShowStart       bool              `json:"show_start"`
	ShowOriginal    bool              `json:"show_original"`
	ShowTranslation bool              `json:"show_translation"`
	Alternates      []links.Alternate `json:"alternates,omitempty"`
	Canonical       string            `json:"canonical,omitempty"`
}

func (api *PublicAPI) handleHero(w http.ResponseWriter, r *http.Request) {
	ctx := logging.ContextWithFields(r.Context(), map[string]any{
		"method": r.Method,
		"path":   r.URL.Path,
	})
	logger := logging.FromContext(ctx, api.logger)

	viewer := api.currentViewer(r, logger)
	hint := api.hints.Extract(r)

	resolveCtx := ctx
	if api.fetchTimeout > 0 {
		var cancel context.CancelFunc
		resolveCtx, cancel = context.WithTimeout(ctx, api.fetchTimeout)
		defer cancel()
	}

	result, err := api.resolver.ResolvePage(resolveCtx, resolution.Request{Hint: hint, Viewer: viewer})
	if err != nil {
		writeError(w, err)
		return
	}

	payload := heroResponse{
		Lang:            result.Locale,
		Variant:         result.Variant,
		SourceLocale:    result.SourceLocale,
		Title:           result.Hero.Title,
		Body:            result.Hero.Body,
		Viewer:          result.Viewer,
		ShowStart:       result.ShowStart,
		ShowOriginal:    true,
		ShowTranslation: true,
	}
	if api.links != nil {
		if alternates, err := api.links.Alternates(); err == nil {
			payload.Alternates = alternates
		} else {
			logger.Warn("http.links.failed", "error", err)
		}
		if canonical, err := api.links.Canonical(result.Locale); err == nil {
			payload.Canonical = canonical
		}
	}
	w.Header().Set("Content-Language", result.Locale)
	writeJSON(w, http.StatusOK, payload)
}

type startPayload struct {
	InputName string `json:"inputName"`
}

func (api *PublicAPI) handleStart(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), api.logger)
	if viewer := api.currentViewer(r, logger); viewer != nil {
		writeError(w, ErrViewerSignedIn)
		return
	}

	var payload startPayload
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := decodeJSON(r, &payload); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid json payload"})
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid form payload"})
			return
		}
		payload.InputName = r.PostForm.Get("inputName")
	}

	result, err := api.starter.Submit(r.Context(), startcmd.StartCommand{InputName: payload.InputName})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// currentViewer treats provider errors as anonymous.
func (api *PublicAPI) currentViewer(r *http.Request, logger interfaces.Logger) *segments.Viewer {
	if api.viewers == nil {
		return nil
	}
	viewer, err := api.viewers.CurrentViewer(r)
	if err != nil {
		logger.Warn("http.viewer.lookup_failed", "error", err)
		return nil
	}
	return viewer
}
