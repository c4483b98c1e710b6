package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-landing/internal/logging"
	internalsegments "github.com/goliatone/go-landing/internal/segments"
	"github.com/goliatone/go-landing/pkg/interfaces"
	"github.com/goliatone/go-landing/segments"
)

var (
	ErrStoreRequired       = errors.New("markdown: importer requires a store")
	ErrLocaleMissing       = errors.New("markdown: frontmatter locale is required")
	ErrVariantMissing      = errors.New("markdown: variant could not be derived")
	ErrTranslationOverflow = errors.New("markdown: more translations than segments")
	ErrDuplicateVariant    = errors.New("markdown: variant defined by more than one document")
)

// Importer loads fixture documents into a segment store.
type Importer struct {
	store     internalsegments.Store
	segmenter *Segmenter
	logger    interfaces.Logger
	now       func() time.Time
}

// ImporterOption configures an Importer.
type ImporterOption func(*Importer)

func WithLogger(logger interfaces.Logger) ImporterOption {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithClock sets the creation time stamped on imported translations.
func WithClock(now func() time.Time) ImporterOption {
	return func(i *Importer) {
		if now != nil {
			i.now = now
		}
	}
}

func NewImporter(store internalsegments.Store, opts ...ImporterOption) *Importer {
	imp := &Importer{
		store:     store,
		segmenter: NewSegmenter(),
		logger:    logging.NoOp(),
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(imp)
		}
	}
	return imp
}

// ImportResult summarises a directory import.
type ImportResult struct {
	Variants []string
	Segments int
}

// BuildPage converts one fixture document into a page snapshot. name is used
// to derive the variant when the frontmatter omits it.
func (i *Importer) BuildPage(name string, source []byte) (*segments.Page, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if meta.Locale == "" {
		return nil, fmt.Errorf("%s: %w", name, ErrLocaleMissing)
	}
	variant := meta.Variant
	if variant == "" {
		if normalized, err := slug.Normalize(strings.TrimSuffix(path.Base(name), path.Ext(name))); err == nil {
			variant = normalized
		}
	}
	if variant == "" {
		return nil, fmt.Errorf("%s: %w", name, ErrVariantMissing)
	}

	blocks := i.segmenter.Split(body)
	page := &segments.Page{
		VariantKey:   variant,
		SourceLocale: meta.Locale,
		Segments:     make([]segments.Segment, len(blocks)),
	}
	for ordinal, elements := range blocks {
		page.Segments[ordinal] = segments.Segment{
			VariantKey: variant,
			Ordinal:    ordinal,
			Elements:   elements,
		}
	}

	created := i.now().UTC()
	for _, locale := range slices.Sorted(maps.Keys(meta.Translations)) {
		texts := meta.Translations[locale]
		if len(texts) > len(blocks) {
			return nil, fmt.Errorf("%s: %w: locale=%s translations=%d segments=%d", name, ErrTranslationOverflow, locale, len(texts), len(blocks))
		}
		points := meta.Points[locale]
		for ordinal, value := range texts {
			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}
			candidate := segments.TranslationCandidate{
				Locale:     strings.TrimSpace(locale),
				Text:       value,
				AuthorName: meta.Author,
				CreatedAt:  created,
			}
			if ordinal < len(points) {
				candidate.Points = points[ordinal]
			}
			page.Segments[ordinal].Candidates = append(page.Segments[ordinal].Candidates, candidate)
		}
	}
	return page, nil
}

// ImportDocument builds and stores one document.
func (i *Importer) ImportDocument(ctx context.Context, name string, source []byte) (*segments.Page, error) {
	if i.store == nil {
		return nil, ErrStoreRequired
	}
	page, err := i.BuildPage(name, source)
	if err != nil {
		return nil, err
	}
	if err := i.store.Save(ctx, page); err != nil {
		return nil, fmt.Errorf("%s: save %s: %w", name, page.VariantKey, err)
	}
	i.logger.Info("markdown.import.document", "file", name, "variant", page.VariantKey, "segments", len(page.Segments))
	return page, nil
}

// ImportDir imports every *.md file below dir in lexical order. Two documents
// resolving to the same variant fail the import.
func (i *Importer) ImportDir(ctx context.Context, fsys fs.FS, dir string) (ImportResult, error) {
	if i.store == nil {
		return ImportResult{}, ErrStoreRequired
	}
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}

	var files []string
	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !d.IsDir() && strings.EqualFold(path.Ext(p), ".md") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, fmt.Errorf("markdown: walk %s: %w", dir, err)
	}
	slices.Sort(files)

	result := ImportResult{}
	seen := map[string]string{}
	for _, file := range files {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return result, fmt.Errorf("markdown: read %s: %w", file, err)
		}
		page, err := i.BuildPage(file, data)
		if err != nil {
			return result, err
		}
		if prev, ok := seen[page.VariantKey]; ok {
			return result, fmt.Errorf("%w: %s in %s and %s", ErrDuplicateVariant, page.VariantKey, prev, file)
		}
		seen[page.VariantKey] = file
		if err := i.store.Save(ctx, page); err != nil {
			return result, fmt.Errorf("%s: save %s: %w", file, page.VariantKey, err)
		}
		result.Variants = append(result.Variants, page.VariantKey)
		result.Segments += len(page.Segments)
	}
	i.logger.Info("markdown.import.complete", "dir", dir, "documents", len(files), "segments", result.Segments)
	return result, nil
}
