package segments

import (
	"context"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunStore reads and writes page snapshots through bun repositories.
type BunStore struct {
	db           *bun.DB
	pages        repository.Repository[*PageRecord]
	segments     repository.Repository[*SegmentRecord]
	translations repository.Repository[*TranslationRecord]
	cache        cache.CacheService
	keys         cache.KeySerializer
	opts         storeOptions
}

var _ Store = (*BunStore)(nil)

const fetchCacheMethod = "segments.Fetch"

func NewBunStore(db *bun.DB, opts ...Option) *BunStore {
	return NewBunStoreWithCache(db, nil, nil, opts...)
}

// NewBunStoreWithCache constructs a BunStore that caches whole Fetch results
// keyed by variant and locale. Save drops the cached entries of the variant
// it replaces.
func NewBunStoreWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer, opts ...Option) *BunStore {
	store := &BunStore{db: db, opts: applyOptions(opts)}
	if db != nil {
		store.pages = NewPageRecordRepository(db)
		store.segments = NewSegmentRecordRepository(db)
		store.translations = NewTranslationRecordRepository(db)
	}
	if cacheService != nil {
		if keySerializer == nil {
			keySerializer = cache.NewDefaultKeySerializer()
		}
		store.cache = cacheService
		store.keys = keySerializer
	}
	return store
}

// CreateTables creates the store tables when missing.
func (s *BunStore) CreateTables(ctx context.Context) error {
	if s.db == nil {
		return ErrDatabaseRequired
	}
	for _, model := range Models() {
		if _, err := s.db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table %T: %w", model, err)
		}
	}
	return nil
}

// Fetch loads the variant page, its segments and the translation candidates
// for req.Locale. A missing page, or a page without segments, is absent.
func (s *BunStore) Fetch(ctx context.Context, req FetchRequest) (*Page, error) {
	variant := strings.TrimSpace(req.Variant)
	if s.cache == nil {
		page, err := s.load(ctx, variant, req.Locale)
		if err != nil {
			return nil, err
		}
		logFetch(s.opts.logger, req, page)
		return page, nil
	}

	cached, err := cache.GetOrFetch[cachedPage](ctx, s.cache, s.fetchKey(variant, req.Locale), func(ctx context.Context) (cachedPage, error) {
		page, err := s.load(ctx, variant, req.Locale)
		return cachedPage{Page: page}, err
	})
	if err != nil {
		return nil, err
	}
	page := clonePage(cached.Page)
	logFetch(s.opts.logger, req, page)
	return page, nil
}

// cachedPage keeps absent pages cacheable as a non-nil value.
type cachedPage struct {
	Page *Page
}

func (s *BunStore) fetchKey(variant, locale string) string {
	return s.keys.SerializeKey(fetchCacheMethod, variant, locale)
}

func (s *BunStore) invalidate(ctx context.Context, variant string) error {
	if s.cache == nil {
		return nil
	}
	prefix := s.keys.SerializeKey(fetchCacheMethod, variant) + cache.KeySeparator
	if err := s.cache.DeleteByPrefix(ctx, prefix); err != nil {
		return fmt.Errorf("invalidate cached variant %s: %w", variant, err)
	}
	return nil
}

func (s *BunStore) load(ctx context.Context, variant, locale string) (*Page, error) {
	if s.db == nil {
		return nil, ErrDatabaseRequired
	}
	record, err := s.pageBySlug(ctx, variant)
	if err != nil || record == nil {
		return nil, err
	}

	segRecords, _, err := s.segments.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.page_id = ?", record.ID).OrderExpr("?TableAlias.number ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "segment", variant)
	}
	if len(segRecords) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, len(segRecords))
	for i, seg := range segRecords {
		ids[i] = seg.ID
	}
	trRecords, _, err := s.translations.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.segment_id IN (?)", bun.In(ids)).
				Where("?TableAlias.locale = ?", locale)
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "translation", variant)
	}
	bySegment := make(map[uuid.UUID][]TranslationCandidate, len(segRecords))
	for _, tr := range trRecords {
		bySegment[tr.SegmentID] = append(bySegment[tr.SegmentID], tr.candidate())
	}

	page := &Page{
		VariantKey:   record.Slug,
		SourceLocale: record.SourceLocale,
		Locale:       locale,
		Segments:     make([]Segment, 0, len(segRecords)),
	}
	for _, rec := range segRecords {
		seg := Segment{
			ID:         rec.ID,
			VariantKey: record.Slug,
			Ordinal:    rec.Number,
			Elements:   rec.Elements,
			Candidates: bySegment[rec.ID],
		}
		applySelection(&seg)
		page.Segments = append(page.Segments, seg)
	}
	return page, nil
}

func clonePage(page *Page) *Page {
	if page == nil {
		return nil
	}
	out := *page
	out.Segments = make([]Segment, len(page.Segments))
	for i, seg := range page.Segments {
		seg.Elements = append([]Element(nil), seg.Elements...)
		seg.Candidates = append([]TranslationCandidate(nil), seg.Candidates...)
		if seg.Selected != nil {
			selected := *seg.Selected
			seg.Selected = &selected
		}
		out.Segments[i] = seg
	}
	return &out
}

func (s *BunStore) pageBySlug(ctx context.Context, slug string) (*PageRecord, error) {
	records, _, err := s.pages.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.slug = ?", slug)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, nil
		}
		return nil, mapRepositoryError(err, "page", slug)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// Save replaces the stored snapshot of page.VariantKey in one transaction.
func (s *BunStore) Save(ctx context.Context, page *Page) error {
	if s.db == nil {
		return ErrDatabaseRequired
	}
	pageID, normalized, err := normalizePage(page)
	if err != nil {
		return err
	}

	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*TranslationRecord)(nil)).
			Where("?TableAlias.segment_id IN (SELECT id FROM page_segments WHERE page_id = ?)", pageID).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete segment translations: %w", err)
		}
		if _, err := tx.NewDelete().
			Model((*SegmentRecord)(nil)).
			Where("?TableAlias.page_id = ?", pageID).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete page segments: %w", err)
		}
		if _, err := tx.NewDelete().
			Model((*PageRecord)(nil)).
			Where("?TableAlias.id = ?", pageID).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete page: %w", err)
		}

		if _, err := tx.NewInsert().Model(&PageRecord{
			ID:           pageID,
			Slug:         normalized.VariantKey,
			SourceLocale: normalized.SourceLocale,
		}).Exec(ctx); err != nil {
			return fmt.Errorf("insert page: %w", err)
		}

		for _, seg := range normalized.Segments {
			elements := seg.Elements
			if elements == nil {
				elements = []Element{}
			}
			if _, err := tx.NewInsert().Model(&SegmentRecord{
				ID:       seg.ID,
				PageID:   pageID,
				Number:   seg.Ordinal,
				Elements: elements,
			}).Exec(ctx); err != nil {
				return fmt.Errorf("insert segment %d: %w", seg.Ordinal, err)
			}
			for _, candidate := range seg.Candidates {
				record := &TranslationRecord{
					ID:        candidate.ID,
					SegmentID: seg.ID,
					Locale:    candidate.Locale,
					Text:      candidate.Text,
					UserID:    candidate.AuthorID,
					UserName:  candidate.AuthorName,
					Point:     candidate.Points,
					CreatedAt: candidate.CreatedAt,
				}
				if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
					return fmt.Errorf("insert translation: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return s.invalidate(ctx, normalized.VariantKey)
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s repository error (%s): %w", resource, key, err)
}
