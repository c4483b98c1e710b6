package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	startcmd "github.com/goliatone/go-landing/internal/commands/start"
	"github.com/goliatone/go-landing/internal/i18n"
	"github.com/goliatone/go-landing/internal/links"
	"github.com/goliatone/go-landing/internal/resolution"
	"github.com/goliatone/go-landing/internal/variants"
	"github.com/goliatone/go-landing/pkg/interfaces"
	"github.com/goliatone/go-landing/segments"
)

var testLocales = []string{"ja", "en"}

type countingFetcher struct {
	calls atomic.Int32
	pages map[string]*segments.Page
}

func (f *countingFetcher) Fetch(_ context.Context, req segments.FetchRequest) (*segments.Page, error) {
	f.calls.Add(1)
	page, ok := f.pages[req.Variant]
	if !ok {
		return nil, nil
	}
	return page, nil
}

func textSegment(variant string, ordinal int, text string) segments.Segment {
	return segments.Segment{
		VariantKey: variant,
		Ordinal:    ordinal,
		Elements:   []segments.Element{{Kind: segments.ElementText, Text: text}},
	}
}

type fixture struct {
	fetcher *countingFetcher
	server  *httptest.Server
}

func newFixture(t *testing.T, opts ...PublicOption) *fixture {
	t.Helper()
	fetcher := &countingFetcher{pages: map[string]*segments.Page{
		"evame": {VariantKey: "evame", SourceLocale: "ja", Segments: []segments.Segment{
			textSegment("evame", 1, "本文"), textSegment("evame", 0, "タイトル"),
		}},
		"evame-ja": {VariantKey: "evame-ja", SourceLocale: "en", Segments: []segments.Segment{
			textSegment("evame-ja", 0, "Title"), textSegment("evame-ja", 1, "Body"),
		}},
	}}
	selector, err := variants.NewSelector(variants.Table{Default: "evame", Overrides: map[string]string{"en": "evame-ja"}}, testLocales)
	if err != nil {
		t.Fatalf("NewSelector: %v", err)
	}
	cfg := i18n.Config{DefaultLocale: "ja", Locales: testLocales}
	service := resolution.NewService(i18n.NewResolver(cfg), selector, fetcher)

	base := []PublicOption{
		WithResolver(service),
		WithStarter(startcmd.NewHandler(nil)),
		WithHintExtractor(NewHintExtractor("NEXT_LOCALE", i18n.NewNegotiator(cfg))),
	}
	api := NewPublicAPI(append(base, opts...)...)
	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		t.Fatalf("Register: %v", err)
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return &fixture{fetcher: fetcher, server: server}
}

func getHero(t *testing.T, req *http.Request) (int, heroResponse, errorResponse) {
	t.Helper()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	var hero heroResponse
	var failure errorResponse
	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(&hero); err != nil {
			t.Fatalf("decode: %v", err)
		}
	} else if err := json.NewDecoder(resp.Body).Decode(&failure); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return resp.StatusCode, hero, failure
}

func mustRequest(t *testing.T, method, target string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, target, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	return req
}

func TestHeroDefaultsToPrimaryVariant(t *testing.T) {
	f := newFixture(t)

	status, hero, _ := getHero(t, mustRequest(t, http.MethodGet, f.server.URL+"/"))
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if hero.Lang != "ja" || hero.Variant != "evame" || hero.Title.Elements[0].Text != "タイトル" {
		t.Fatalf("unexpected hero %+v", hero)
	}
	if !hero.ShowStart || !hero.ShowOriginal || !hero.ShowTranslation {
		t.Fatalf("expected display flags for anonymous visitor, got %+v", hero)
	}
}

func TestHeroPathLocaleWins(t *testing.T) {
	f := newFixture(t)

	req := mustRequest(t, http.MethodGet, f.server.URL+"/en")
	req.AddCookie(&http.Cookie{Name: "NEXT_LOCALE", Value: "ja"})
	status, hero, _ := getHero(t, req)
	if status != http.StatusOK || hero.Variant != "evame-ja" || hero.Lang != "en" {
		t.Fatalf("unexpected response %d %+v", status, hero)
	}
}

func TestHeroUsesCookieThenAcceptLanguage(t *testing.T) {
	f := newFixture(t)

	req := mustRequest(t, http.MethodGet, f.server.URL+"/")
	req.AddCookie(&http.Cookie{Name: "NEXT_LOCALE", Value: "en"})
	req.Header.Set("Accept-Language", "ja")
	if _, hero, _ := getHero(t, req); hero.Lang != "en" {
		t.Fatalf("expected cookie to win, got %q", hero.Lang)
	}

	req = mustRequest(t, http.MethodGet, f.server.URL+"/")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	if _, hero, _ := getHero(t, req); hero.Lang != "en" {
		t.Fatalf("expected Accept-Language match, got %q", hero.Lang)
	}

	req = mustRequest(t, http.MethodGet, f.server.URL+"/")
	req.Header.Set("Accept-Language", "fr")
	if status, hero, _ := getHero(t, req); status != http.StatusOK || hero.Lang != "ja" {
		t.Fatalf("expected unmatched header to fall back to default, got %d %q", status, hero.Lang)
	}
}

func TestHeroUnsupportedLocaleIsNotFoundWithoutFetch(t *testing.T) {
	f := newFixture(t)

	status, _, failure := getHero(t, mustRequest(t, http.MethodGet, f.server.URL+"/fr"))
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
	if failure.Code != resolution.TextCodeContentUnavailable {
		t.Fatalf("unexpected error body %+v", failure)
	}
	if f.fetcher.calls.Load() != 0 {
		t.Fatalf("expected no fetch, got %d", f.fetcher.calls.Load())
	}
}

func TestHeroAbsentVariantIsNotFound(t *testing.T) {
	f := newFixture(t)
	delete(f.fetcher.pages, "evame-ja")

	status, _, failure := getHero(t, mustRequest(t, http.MethodGet, f.server.URL+"/en"))
	if status != http.StatusNotFound || failure.Message != "content not available" {
		t.Fatalf("expected uniform 404, got %d %+v", status, failure)
	}
}

func TestHeroSignedInViewer(t *testing.T) {
	viewer := &segments.Viewer{ID: 7, DisplayName: "hana"}
	f := newFixture(t, WithViewerProvider(interfaces.ViewerProviderFunc(func(*http.Request) (*segments.Viewer, error) {
		return viewer, nil
	})))

	_, hero, _ := getHero(t, mustRequest(t, http.MethodGet, f.server.URL+"/ja"))
	if hero.ShowStart || hero.Viewer == nil || hero.Viewer.DisplayName != "hana" {
		t.Fatalf("expected signed-in payload, got %+v", hero)
	}
}

func TestHeroViewerErrorsAreAnonymous(t *testing.T) {
	f := newFixture(t, WithViewerProvider(interfaces.ViewerProviderFunc(func(*http.Request) (*segments.Viewer, error) {
		return nil, errors.New("session store down")
	})))

	status, hero, _ := getHero(t, mustRequest(t, http.MethodGet, f.server.URL+"/ja"))
	if status != http.StatusOK || !hero.ShowStart {
		t.Fatalf("expected anonymous payload, got %d %+v", status, hero)
	}
}

func TestHeroIncludesAlternates(t *testing.T) {
	builder, err := links.NewBuilder(links.Config{BaseURL: "https://eveeve.org"}, testLocales)
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	f := newFixture(t, WithLinks(builder))

	_, hero, _ := getHero(t, mustRequest(t, http.MethodGet, f.server.URL+"/en"))
	if hero.Canonical != "https://eveeve.org/en" || len(hero.Alternates) != 3 {
		t.Fatalf("unexpected links %q %+v", hero.Canonical, hero.Alternates)
	}
}

func TestStartAcceptsForm(t *testing.T) {
	f := newFixture(t)

	resp, err := http.PostForm(f.server.URL+"/start", url.Values{"inputName": {"Hana"}})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var result startcmd.StartResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !result.Success || result.Value != "Hana" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestStartRejectsInvalidInput(t *testing.T) {
	f := newFixture(t)

	resp, err := http.Post(f.server.URL+"/start", "application/json", strings.NewReader(`{"inputName":""}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestStartRejectsSignedInViewer(t *testing.T) {
	f := newFixture(t, WithViewerProvider(interfaces.ViewerProviderFunc(func(*http.Request) (*segments.Viewer, error) {
		return &segments.Viewer{ID: 1}, nil
	})))

	resp, err := http.PostForm(f.server.URL+"/start", url.Values{"inputName": {"Hana"}})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	resolution.NewPrometheusMetrics(reg)
	f := newFixture(t, WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	resp, err := http.Get(f.server.URL + "/metrics")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestRegisterUnderBasePath(t *testing.T) {
	f := newFixture(t, WithBasePath("/landing/"))

	status, hero, _ := getHero(t, mustRequest(t, http.MethodGet, f.server.URL+"/landing/en"))
	if status != http.StatusOK || hero.Lang != "en" {
		t.Fatalf("unexpected response %d %+v", status, hero)
	}
}

func TestRegisterRequiresResolver(t *testing.T) {
	if err := NewPublicAPI().Register(http.NewServeMux()); err == nil {
		t.Fatal("expected error without resolver")
	}
}
