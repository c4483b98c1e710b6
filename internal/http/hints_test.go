package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-landing/internal/i18n"
)

func TestHintExtractorOrder(t *testing.T) {
	extractor := NewHintExtractor("NEXT_LOCALE", i18n.NewNegotiator(i18n.Config{DefaultLocale: "ja", Locales: []string{"ja", "en"}}))

	cases := []struct {
		name     string
		path     string
		cookie   string
		language string
		want     string
	}{
		{name: "path value", path: "en", cookie: "ja", language: "ja", want: "en"},
		{name: "cookie", cookie: " en ", language: "ja", want: "en"},
		{name: "accept language", language: "en-GB,ja;q=0.5", want: "en"},
		{name: "unmatched header", language: "fr", want: ""},
		{name: "no preference", want: ""},
		{name: "unsupported path passes through", path: "fr", want: "fr"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.path != "" {
				req.SetPathValue(localePathValue, tc.path)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "NEXT_LOCALE", Value: tc.cookie})
			}
			if tc.language != "" {
				req.Header.Set("Accept-Language", tc.language)
			}
			if got := extractor.Extract(req); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestHintExtractorWithoutNegotiator(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en")
	if got := NewHintExtractor("", nil).Extract(req); got != "" {
		t.Fatalf("expected empty hint, got %q", got)
	}
	var nilExtractor *HintExtractor
	if got := nilExtractor.Extract(req); got != "" {
		t.Fatalf("expected empty hint from nil extractor, got %q", got)
	}
}

func TestMapErrorDefaults(t *testing.T) {
	status, body := mapError(nil)
	if status != http.StatusInternalServerError || body.Error != "unknown_error" {
		t.Fatalf("unexpected mapping %d %+v", status, body)
	}
	status, body = mapError(ErrViewerSignedIn)
	if status != http.StatusConflict {
		t.Fatalf("expected 409, got %d %+v", status, body)
	}
}

func TestJoinPath(t *testing.T) {
	cases := map[[2]string]string{
		{"", ""}:           "/",
		{"/landing/", ""}:  "/landing",
		{"", "start"}:      "/start",
		{"landing", "/a/"}: "/landing/a",
	}
	for in, want := range cases {
		if got := joinPath(in[0], in[1]); got != want {
			t.Fatalf("joinPath(%q, %q) = %q, want %q", in[0], in[1], got, want)
		}
	}
}
