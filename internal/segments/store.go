package segments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-landing/internal/identity"
	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/pkg/interfaces"
	landingsegments "github.com/goliatone/go-landing/segments"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"
)

var (
	ErrPageRequired       = errors.New("segments: page is required")
	ErrVariantKeyInvalid  = errors.New("segments: variant key must be a valid slug")
	ErrDatabaseRequired   = errors.New("segments: bun store requires a database")
	ErrCandidateSegmentID = errors.New("segments: candidate belongs to another segment")
)

// Store is a content fetcher that can also be seeded with page snapshots.
type Store interface {
	landingsegments.Fetcher
	Save(ctx context.Context, page *Page) error
}

// Option configures a store.
type Option func(*storeOptions)

type storeOptions struct {
	logger interfaces.Logger
}

// WithLogger sets the logger used for fetch diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(o *storeOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func applyOptions(opts []Option) storeOptions {
	out := storeOptions{logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(&out)
		}
	}
	return out
}

// normalizePage validates a snapshot for storage and fills deterministic ids
// for the page, its segments and their candidates. The input is not mutated.
func normalizePage(page *Page) (uuid.UUID, *Page, error) {
	if page == nil {
		return uuid.Nil, nil, ErrPageRequired
	}
	variant := strings.TrimSpace(page.VariantKey)
	if variant == "" {
		return uuid.Nil, nil, landingsegments.ErrVariantRequired
	}
	if !slug.IsValid(variant) {
		return uuid.Nil, nil, fmt.Errorf("%w: %q", ErrVariantKeyInvalid, variant)
	}
	if err := landingsegments.ValidatePage(page); err != nil {
		return uuid.Nil, nil, err
	}

	pageID := identity.PageUUID(variant)
	out := &Page{
		VariantKey:   variant,
		SourceLocale: strings.TrimSpace(page.SourceLocale),
		Segments:     make([]Segment, 0, len(page.Segments)),
	}
	for _, seg := range page.Segments {
		segID := seg.ID
		if segID == uuid.Nil {
			segID = identity.SegmentUUID(pageID, seg.Ordinal)
		}
		cloned := Segment{
			ID:         segID,
			VariantKey: variant,
			Ordinal:    seg.Ordinal,
			Elements:   append([]Element(nil), seg.Elements...),
			Candidates: make([]TranslationCandidate, 0, len(seg.Candidates)),
		}
		perLocale := map[string]int{}
		for _, candidate := range seg.Candidates {
			if candidate.SegmentID != uuid.Nil && candidate.SegmentID != segID {
				return uuid.Nil, nil, fmt.Errorf("%w: ordinal=%d", ErrCandidateSegmentID, seg.Ordinal)
			}
			locale := strings.TrimSpace(candidate.Locale)
			if locale == "" {
				return uuid.Nil, nil, landingsegments.ErrLocaleRequired
			}
			candidate.Locale = locale
			candidate.SegmentID = segID
			if candidate.ID == uuid.Nil {
				candidate.ID = identity.TranslationUUID(segID, locale, perLocale[locale])
			}
			perLocale[locale]++
			cloned.Candidates = append(cloned.Candidates, candidate)
		}
		out.Segments = append(out.Segments, cloned)
	}
	return pageID, out, nil
}

func logFetch(logger interfaces.Logger, req FetchRequest, page *Page) {
	args := []any{"variant", req.Variant, "locale", req.Locale, "found", page != nil}
	if req.ViewerID != nil {
		args = append(args, "viewer_id", *req.ViewerID)
	}
	logger.Debug("segments.fetch", args...)
}
