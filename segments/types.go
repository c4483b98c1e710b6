package segments

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Element kinds produced for segment bodies.
const (
	ElementText     = "text"
	ElementEmphasis = "emphasis"
	ElementStrong   = "strong"
	ElementLink     = "link"
	ElementCode     = "code"
	ElementBreak    = "break"
)

// Element is a single text or markup node of a segment body. The hero
// pipeline never interprets elements; presentation does.
type Element struct {
	Kind string `json:"kind"`
	Text string `json:"text,omitempty"`
	Href string `json:"href,omitempty"`
}

// TranslationCandidate is one proposed translation of a segment for a locale.
type TranslationCandidate struct {
	ID         uuid.UUID `json:"id"`
	SegmentID  uuid.UUID `json:"segment_id"`
	Locale     string    `json:"locale"`
	Text       string    `json:"text"`
	AuthorID   int64     `json:"author_id,omitempty"`
	AuthorName string    `json:"author_name,omitempty"`
	Points     int       `json:"points"`
	CreatedAt  time.Time `json:"created_at"`
}

// Segment is an independently addressable unit of page content. Ordinal is
// unique within a variant and defines document order.
type Segment struct {
	ID         uuid.UUID              `json:"id"`
	VariantKey string                 `json:"variant"`
	Ordinal    int                    `json:"ordinal"`
	Elements   []Element              `json:"elements"`
	Candidates []TranslationCandidate `json:"candidates,omitempty"`
	// Selected is the candidate chosen by the content engine, if any. Its
	// selection policy is owned by the fetcher.
	Selected *TranslationCandidate `json:"selected,omitempty"`
}

// Page is the snapshot returned by a fetch: every segment of one variant
// with the candidates for one locale. Segment order is not significant.
type Page struct {
	VariantKey   string    `json:"variant"`
	SourceLocale string    `json:"source_locale,omitempty"`
	Locale       string    `json:"locale"`
	Segments     []Segment `json:"segments"`
}

// Viewer identifies a signed-in visitor. A nil *Viewer means anonymous.
type Viewer struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
}

// IDPtr returns the viewer id for fetch attribution, or nil when anonymous.
func (v *Viewer) IDPtr() *int64 {
	if v == nil {
		return nil
	}
	id := v.ID
	return &id
}

// HeroSet holds the two lead segments of a page. Title.Ordinal is always
// lower than Body.Ordinal.
type HeroSet struct {
	Title Segment `json:"title"`
	Body  Segment `json:"body"`
}

// FetchRequest addresses one variant for one viewer and locale.
type FetchRequest struct {
	Variant  string
	ViewerID *int64
	Locale   string
}

// Fetcher retrieves a variant snapshot. A nil page with a nil error reports
// that the variant does not exist or has no content.
type Fetcher interface {
	Fetch(ctx context.Context, req FetchRequest) (*Page, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, req FetchRequest) (*Page, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, req FetchRequest) (*Page, error) {
	return f(ctx, req)
}
