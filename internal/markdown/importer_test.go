package markdown

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	internalsegments "github.com/goliatone/go-landing/internal/segments"
	"github.com/goliatone/go-landing/segments"
)

var fixedClock = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }

func TestImportDirLoadsFixtures(t *testing.T) {
	ctx := context.Background()
	store := internalsegments.NewMemoryStore()
	importer := NewImporter(store, WithClock(fixedClock))

	result, err := importer.ImportDir(ctx, os.DirFS("testdata"), "fixtures")
	if err != nil {
		t.Fatalf("ImportDir: %v", err)
	}
	if len(result.Variants) != 2 || result.Variants[0] != "evame-ja" || result.Variants[1] != "evame" {
		t.Fatalf("unexpected variants %v", result.Variants)
	}
	if result.Segments != 5 {
		t.Fatalf("expected 5 segments, got %d", result.Segments)
	}

	page, err := store.Fetch(ctx, segments.FetchRequest{Variant: "evame", Locale: "en"})
	if err != nil || page == nil {
		t.Fatalf("Fetch: %+v %v", page, err)
	}
	if page.SourceLocale != "ja" {
		t.Fatalf("expected source locale ja, got %q", page.SourceLocale)
	}
	title := page.Segments[0]
	if title.Ordinal != 0 || title.Elements[0].Text != "言語の壁を越えて" {
		t.Fatalf("unexpected title %+v", title)
	}
	if title.Selected == nil || title.Selected.Text != "Breaking language barriers" || title.Selected.Points != 3 {
		t.Fatalf("unexpected title translation %+v", title.Selected)
	}
	if title.Selected.AuthorName != "evame" || !title.Selected.CreatedAt.Equal(fixedClock()) {
		t.Fatalf("expected author and clock to be applied, got %+v", title.Selected)
	}
	if page.Segments[2].Selected != nil {
		t.Fatalf("expected list segment to be untranslated, got %+v", page.Segments[2].Selected)
	}

	zh, _ := store.Fetch(ctx, segments.FetchRequest{Variant: "evame", Locale: "zh"})
	if zh.Segments[0].Selected == nil || zh.Segments[1].Selected != nil {
		t.Fatalf("expected only the zh title translation, got %+v", zh.Segments[:2])
	}

	mirror, _ := store.Fetch(ctx, segments.FetchRequest{Variant: "evame-ja", Locale: "ja"})
	body := mirror.Segments[1]
	if len(body.Elements) != 3 || body.Elements[1].Kind != segments.ElementLink || body.Elements[1].Href != "https://example.com/guide" {
		t.Fatalf("unexpected body elements %+v", body.Elements)
	}
}

func TestBuildPageDerivesVariantFromFileName(t *testing.T) {
	importer := NewImporter(internalsegments.NewMemoryStore())

	page, err := importer.BuildPage("docs/Launch Page.md", []byte("---\nlocale: en\n---\n# Hi\n\nThere\n"))
	if err != nil {
		t.Fatalf("BuildPage: %v", err)
	}
	if page.VariantKey != "launch-page" {
		t.Fatalf("expected slug from file name, got %q", page.VariantKey)
	}
	if len(page.Segments) != 2 || page.Segments[1].Ordinal != 1 {
		t.Fatalf("unexpected segments %+v", page.Segments)
	}
}

func TestBuildPageErrors(t *testing.T) {
	importer := NewImporter(internalsegments.NewMemoryStore())

	cases := []struct {
		name   string
		source string
		want   error
	}{
		{name: "missing locale", source: "---\nvariant: evame\n---\n# Hi\n", want: ErrLocaleMissing},
		{
			name:   "too many translations",
			source: "---\nvariant: evame\nlocale: ja\ntranslations:\n  en: [a, b]\n---\n# Only one\n",
			want:   ErrTranslationOverflow,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := importer.BuildPage("doc.md", []byte(tc.source)); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestImportDirRejectsDuplicateVariants(t *testing.T) {
	fsys := fstest.MapFS{
		"a.md": {Data: []byte("---\nvariant: evame\nlocale: ja\n---\n# A\n")},
		"b.md": {Data: []byte("---\nvariant: evame\nlocale: ja\n---\n# B\n")},
	}
	importer := NewImporter(internalsegments.NewMemoryStore())

	if _, err := importer.ImportDir(context.Background(), fsys, "."); !errors.Is(err, ErrDuplicateVariant) {
		t.Fatalf("expected duplicate variant error, got %v", err)
	}
}

func TestImportDocumentRequiresStore(t *testing.T) {
	importer := NewImporter(nil)
	if _, err := importer.ImportDocument(context.Background(), "a.md", []byte("# A")); !errors.Is(err, ErrStoreRequired) {
		t.Fatalf("expected ErrStoreRequired, got %v", err)
	}
}

func TestParseFrontMatter(t *testing.T) {
	meta, body, err := ParseFrontMatter([]byte("---\nvariant: ' evame '\nlocale: ja\npoints:\n  en: [2]\n---\nBody\n"))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if meta.Variant != "evame" || meta.Locale != "ja" || meta.Points["en"][0] != 2 {
		t.Fatalf("unexpected metadata %+v", meta)
	}
	if strings.TrimSpace(string(body)) != "Body" {
		t.Fatalf("unexpected body %q", body)
	}
}
