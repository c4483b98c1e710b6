package segments

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
)

// MemoryStore keeps page snapshots in memory. It is safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	pages map[string]*Page
	opts  storeOptions
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(opts ...Option) *MemoryStore {
	return &MemoryStore{
		pages: make(map[string]*Page),
		opts:  applyOptions(opts),
	}
}

// Save stores page under its variant key, replacing any previous snapshot.
func (m *MemoryStore) Save(ctx context.Context, page *Page) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, normalized, err := normalizePage(page)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.pages[normalized.VariantKey] = normalized
	m.mu.Unlock()
	return nil
}

// Fetch returns the variant snapshot with the candidates for req.Locale. A
// missing variant, or one with no segments, is reported as absent.
func (m *MemoryStore) Fetch(ctx context.Context, req FetchRequest) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	stored, ok := m.pages[strings.TrimSpace(req.Variant)]
	m.mu.RUnlock()
	if !ok || len(stored.Segments) == 0 {
		logFetch(m.opts.logger, req, nil)
		return nil, nil
	}

	out := &Page{
		VariantKey:   stored.VariantKey,
		SourceLocale: stored.SourceLocale,
		Locale:       req.Locale,
		Segments:     make([]Segment, 0, len(stored.Segments)),
	}
	for _, seg := range stored.Segments {
		cloned := Segment{
			ID:         seg.ID,
			VariantKey: seg.VariantKey,
			Ordinal:    seg.Ordinal,
			Elements:   append([]Element(nil), seg.Elements...),
		}
		for _, candidate := range seg.Candidates {
			if candidate.Locale == req.Locale {
				cloned.Candidates = append(cloned.Candidates, candidate)
			}
		}
		applySelection(&cloned)
		out.Segments = append(out.Segments, cloned)
	}
	logFetch(m.opts.logger, req, out)
	return out, nil
}

// Variants lists the stored variant keys in order.
func (m *MemoryStore) Variants() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.pages))
}
