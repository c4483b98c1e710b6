package resolution

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/goliatone/go-landing/internal/hero"
	"github.com/goliatone/go-landing/internal/i18n"
	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/internal/variants"
	"github.com/goliatone/go-landing/pkg/interfaces"
	"github.com/goliatone/go-landing/segments"
)

// Request carries the raw inputs of one resolution. An empty Hint means the
// request has no locale preference; a nil Viewer means anonymous.
type Request struct {
	Hint   string
	Viewer *segments.Viewer
}

// Result is the presentation tuple of a successful resolution.
type Result struct {
	Locale       string           `json:"locale"`
	Variant      string           `json:"variant"`
	SourceLocale string           `json:"source_locale,omitempty"`
	Hero         segments.HeroSet `json:"hero"`
	Viewer       *segments.Viewer `json:"viewer,omitempty"`
	// ShowStart is set for anonymous viewers, who get the call-to-action.
	ShowStart bool `json:"show_start"`
}

// Service runs the locale -> variant -> fetch -> hero pipeline. It holds no
// mutable state and is safe for concurrent use.
type Service struct {
	resolver *i18n.Resolver
	selector *variants.Selector
	fetcher  segments.Fetcher
	metrics  interfaces.ResolutionMetrics
	logger   interfaces.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for cause diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(metrics interfaces.ResolutionMetrics) Option {
	return func(s *Service) {
		if metrics != nil {
			s.metrics = metrics
		}
	}
}

// WithClock overrides the clock used for fetch latency.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the pipeline components.
func NewService(resolver *i18n.Resolver, selector *variants.Selector, fetcher segments.Fetcher, opts ...Option) *Service {
	s := &Service{
		resolver: resolver,
		selector: selector,
		fetcher:  fetcher,
		metrics:  NoOpMetrics(),
		logger:   logging.NoOp(),
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// ResolvePage resolves the hero content for one request. It performs at most
// one fetch and never retries. Every failure is a NotFound whose error wraps
// ErrContentUnavailable and a *NotFoundError naming the cause.
func (s *Service) ResolvePage(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.WithResolutionContext(logging.FromContext(ctx, s.logger), req.Hint, "", "")

	locale, err := s.resolver.Resolve(req.Hint)
	if err != nil {
		return Result{}, s.fail(logger, &NotFoundError{Cause: CauseInvalidLocale, Hint: req.Hint, Err: err})
	}

	variant := s.selector.Select(locale)
	logger = logging.WithResolutionContext(logger, "", locale, variant)

	started := s.now()
	page, err := s.fetcher.Fetch(ctx, segments.FetchRequest{
		Variant:  variant,
		ViewerID: req.Viewer.IDPtr(),
		Locale:   locale,
	})
	s.metrics.ObserveFetch(variant, err == nil && page != nil, s.now().Sub(started))
	if err != nil {
		return Result{}, s.fail(logger, &NotFoundError{Cause: CauseFetchFailed, Hint: req.Hint, Locale: locale, Variant: variant, Err: err})
	}
	if page == nil {
		return Result{}, s.fail(logger, &NotFoundError{Cause: CauseVariantAbsent, Hint: req.Hint, Locale: locale, Variant: variant})
	}

	set, err := hero.Select(slices.Values(page.Segments))
	if err != nil {
		return Result{}, s.fail(logger, &NotFoundError{Cause: CauseIncompleteHeroSet, Hint: req.Hint, Locale: locale, Variant: variant, Err: err})
	}

	s.metrics.ObserveResolution(locale, OutcomeOK)
	logger.Debug("resolution.resolved")

	return Result{
		Locale:       locale,
		Variant:      variant,
		SourceLocale: page.SourceLocale,
		Hero:         set,
		Viewer:       req.Viewer,
		ShowStart:    req.Viewer == nil,
	}, nil
}

func (s *Service) fail(logger interfaces.Logger, nf *NotFoundError) error {
	s.metrics.ObserveResolution(nf.Locale, string(nf.Cause))
	args := []any{"cause", string(nf.Cause)}
	if nf.Err != nil {
		args = append(args, "error", nf.Err)
	}
	if nf.Cause == CauseFetchFailed && !errors.Is(nf.Err, context.Canceled) {
		logger.Error("resolution.not_found", args...)
	} else {
		logger.Warn("resolution.not_found", args...)
	}
	return notFound(nf)
}
