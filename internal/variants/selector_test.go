package variants

import (
	"errors"
	"testing"
)

var supported = []string{"ja", "en"}

func defaultSelector(t *testing.T) *Selector {
	t.Helper()
	selector, err := NewSelector(Table{
		Default:   "evame",
		Overrides: map[string]string{"en": "evame-ja"},
	}, supported)
	if err != nil {
		t.Fatalf("NewSelector: %v", err)
	}
	return selector
}

func TestSelectorMapsLocales(t *testing.T) {
	selector := defaultSelector(t)

	if got := selector.Select("ja"); got != "evame" {
		t.Fatalf("Select(ja) = %q, want primary variant", got)
	}
	if got := selector.Select("en"); got != "evame-ja" {
		t.Fatalf("Select(en) = %q, want mirror variant", got)
	}
	if selector.Select("en") == selector.Select("ja") {
		t.Fatal("expected en and ja to map to distinct variants")
	}
}

func TestSelectorIsTotalAndDeterministic(t *testing.T) {
	selector := defaultSelector(t)
	for _, locale := range supported {
		first := selector.Select(locale)
		if first == "" {
			t.Fatalf("Select(%q) returned empty key", locale)
		}
		for i := 0; i < 5; i++ {
			if again := selector.Select(locale); again != first {
				t.Fatalf("Select(%q) changed from %q to %q", locale, first, again)
			}
		}
	}
}

func TestSelectorIsolatedFromCallerMutation(t *testing.T) {
	overrides := map[string]string{"en": "evame-ja"}
	selector, err := NewSelector(Table{Default: "evame", Overrides: overrides}, supported)
	if err != nil {
		t.Fatalf("NewSelector: %v", err)
	}
	overrides["en"] = "other"
	if got := selector.Select("en"); got != "evame-ja" {
		t.Fatalf("expected selector copy, got %q", got)
	}

	table := selector.Table()
	table.Overrides["ja"] = "other"
	if got := selector.Select("ja"); got != "evame" {
		t.Fatalf("expected Table to return a copy, got %q", got)
	}
}

func TestSelectorKeys(t *testing.T) {
	selector, err := NewSelector(Table{
		Default:   "evame",
		Overrides: map[string]string{"en": "evame-ja", "zh": "evame-ja"},
	}, []string{"ja", "en", "zh"})
	if err != nil {
		t.Fatalf("NewSelector: %v", err)
	}
	keys := selector.Keys()
	if len(keys) != 2 || keys[0] != "evame" || keys[1] != "evame-ja" {
		t.Fatalf("unexpected keys %v", keys)
	}
}

func TestNewSelectorValidation(t *testing.T) {
	cases := []struct {
		name  string
		table Table
		want  error
	}{
		{name: "default required", table: Table{}, want: ErrDefaultKeyRequired},
		{name: "default slug", table: Table{Default: "Evame Top"}, want: ErrInvalidKey},
		{
			name:  "override slug",
			table: Table{Default: "evame", Overrides: map[string]string{"en": "evame ja"}},
			want:  ErrInvalidKey,
		},
		{
			name:  "override locale",
			table: Table{Default: "evame", Overrides: map[string]string{"fr": "evame-fr"}},
			want:  ErrUnknownLocale,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewSelector(tc.table, supported); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
