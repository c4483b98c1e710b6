package segments

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewPageRecordRepository(db *bun.DB) repository.Repository[*PageRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*PageRecord]{
		NewRecord: func() *PageRecord { return &PageRecord{} },
		GetID: func(p *PageRecord) uuid.UUID {
			return p.ID
		},
		SetID: func(p *PageRecord, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(p *PageRecord) string {
			return p.Slug
		},
	})
}

func NewSegmentRecordRepository(db *bun.DB) repository.Repository[*SegmentRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*SegmentRecord]{
		NewRecord: func() *SegmentRecord { return &SegmentRecord{} },
		GetID: func(s *SegmentRecord) uuid.UUID {
			return s.ID
		},
		SetID: func(s *SegmentRecord, id uuid.UUID) {
			s.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(s *SegmentRecord) string {
			return s.ID.String()
		},
	})
}

func NewTranslationRecordRepository(db *bun.DB) repository.Repository[*TranslationRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*TranslationRecord]{
		NewRecord: func() *TranslationRecord { return &TranslationRecord{} },
		GetID: func(t *TranslationRecord) uuid.UUID {
			return t.ID
		},
		SetID: func(t *TranslationRecord, id uuid.UUID) {
			t.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(t *TranslationRecord) string {
			return t.ID.String()
		},
	})
}
