package segments

import (
	"time"

	landingsegments "github.com/goliatone/go-landing/segments"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type (
	Page                 = landingsegments.Page
	Segment              = landingsegments.Segment
	Element              = landingsegments.Element
	TranslationCandidate = landingsegments.TranslationCandidate
	FetchRequest         = landingsegments.FetchRequest
)

// PageRecord is the stored page behind one content variant. Slug holds the
// variant key.
type PageRecord struct {
	bun.BaseModel `bun:"table:pages,alias:p"`

	ID           uuid.UUID `bun:",pk,type:uuid"          json:"id"`
	Slug         string    `bun:"slug,notnull,unique"    json:"slug"`
	SourceLocale string    `bun:"source_locale,notnull"  json:"source_locale"`
	CreatedAt    time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// SegmentRecord stores one ordered segment of a page.
type SegmentRecord struct {
	bun.BaseModel `bun:"table:page_segments,alias:ps"`

	ID        uuid.UUID `bun:",pk,type:uuid"             json:"id"`
	PageID    uuid.UUID `bun:"page_id,notnull,type:uuid" json:"page_id"`
	Number    int       `bun:"number,notnull"            json:"number"`
	Elements  []Element `bun:"elements,type:jsonb"       json:"elements"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// TranslationRecord stores one translation candidate of a segment.
type TranslationRecord struct {
	bun.BaseModel `bun:"table:page_segment_translations,alias:pst"`

	ID        uuid.UUID `bun:",pk,type:uuid"                json:"id"`
	SegmentID uuid.UUID `bun:"segment_id,notnull,type:uuid" json:"segment_id"`
	Locale    string    `bun:"locale,notnull"               json:"locale"`
	Text      string    `bun:"text,notnull"                 json:"text"`
	UserID    int64     `bun:"user_id,notnull"              json:"user_id"`
	UserName  string    `bun:"user_name"                    json:"user_name"`
	Point     int       `bun:"point,notnull,default:0"      json:"point"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// Models lists the tables the bun store needs, in creation order.
func Models() []any {
	return []any{
		(*PageRecord)(nil),
		(*SegmentRecord)(nil),
		(*TranslationRecord)(nil),
	}
}

func (r *TranslationRecord) candidate() TranslationCandidate {
	return TranslationCandidate{
		ID:         r.ID,
		SegmentID:  r.SegmentID,
		Locale:     r.Locale,
		Text:       r.Text,
		AuthorID:   r.UserID,
		AuthorName: r.UserName,
		Points:     r.Point,
		CreatedAt:  r.CreatedAt,
	}
}
