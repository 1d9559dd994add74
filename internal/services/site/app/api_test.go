package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/atelierfolio/atelier/internal/content"
	"github.com/atelierfolio/atelier/internal/services/site/storage/sqlite"
	"github.com/atelierfolio/atelier/internal/services/site/vitals"
)

var testNow = time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)

type fakeSource struct {
	mu    sync.Mutex
	rc    content.RoomContent
	err   error
	calls int
}

func (f *fakeSource) Scan(ctx context.Context) (content.RoomContent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := ctx.Err(); err != nil {
		return content.RoomContent{}, err
	}
	return f.rc, f.err
}

func (f *fakeSource) scans() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakePages struct {
	page    content.Page
	err     error
	fetched []string
}

func (f *fakePages) FetchPage(_ context.Context, pageID string) (content.Page, error) {
	f.fetched = append(f.fetched, pageID)
	return f.page, f.err
}

type fakeVitalsStore struct {
	closed    bool
	reports   []vitals.Report
	summaries []vitals.Summary
	since     time.Time
	err       error
}

func (f *fakeVitalsStore) Close() error {
	f.closed = true
	return nil
}

func (f *fakeVitalsStore) RecordVital(_ context.Context, report vitals.Report) error {
	if f.err != nil {
		return f.err
	}
	f.reports = append(f.reports, report)
	return nil
}

func (f *fakeVitalsStore) SummarizeVitals(_ context.Context, since time.Time) ([]vitals.Summary, error) {
	f.since = since
	return f.summaries, f.err
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func liveContent() content.RoomContent {
	return content.RoomContent{
		Statement:   content.DefaultStatement,
		Practices:   []content.Entry{{ID: "p1", Title: "Listening Practice", URL: "https://example.com/p1", Type: "practice"}},
		Cases:       []content.Entry{{ID: "c1", Title: "Brand Case", URL: "https://example.com/c1", Type: "case"}},
		Journey:     []content.Entry{},
		Connections: []content.Entry{{ID: "n1", Title: "Connection Map", URL: "https://example.com/n1", Type: "connection"}},
	}
}

func serve(t *testing.T, h http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", rr.Body.String(), err)
	}
	return out
}

func TestPortfolioFallsBackToSamples(t *testing.T) {
	tests := []struct {
		name   string
		source content.Source
	}{
		{name: "no source", source: nil},
		{name: "scan failure", source: &fakeSource{err: errors.New("workspace down")}},
		{name: "empty workspace", source: &fakeSource{rc: content.RoomContent{}}},
	}
	for _, tc := range tests {
		h := NewHandler(Services{Content: tc.source, Now: func() time.Time { return testNow }})
		rr := serve(t, h, http.MethodGet, "/api/portfolio", nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: status = %d, want 200", tc.name, rr.Code)
		}
		got := decodeBody[portfolioResponse](t, rr)
		if got.Source != content.SourceSample {
			t.Fatalf("%s: source = %q, want sample", tc.name, got.Source)
		}
		if got.Total != len(content.SampleItems()) || len(got.Items) != got.Total {
			t.Fatalf("%s: total = %d items = %d", tc.name, got.Total, len(got.Items))
		}
		if got.Items[0].Category != content.CategoryJourney {
			t.Fatalf("%s: first category = %q, want Journey", tc.name, got.Items[0].Category)
		}
		if len(got.Categories) != 4 || got.Categories[0] != content.CategoryProjects {
			t.Fatalf("%s: categories = %v", tc.name, got.Categories)
		}
	}
}

func TestPortfolioServesLiveContentAndCaches(t *testing.T) {
	source := &fakeSource{rc: liveContent()}
	clock := &testClock{now: testNow}
	h := NewHandler(Services{Content: source, Now: clock.Now, CacheTTL: 5 * time.Minute})

	first := decodeBody[portfolioResponse](t, serve(t, h, http.MethodGet, "/api/portfolio", nil))
	if first.Source != "notion" || first.Total != 3 {
		t.Fatalf("first = %+v", first)
	}
	wantOrder := []content.Category{content.CategoryPractices, content.CategoryProjects, content.CategoryThinking}
	for i, item := range first.Items {
		if item.Category != wantOrder[i] {
			t.Fatalf("items[%d].Category = %q, want %q", i, item.Category, wantOrder[i])
		}
	}

	clock.Advance(4 * time.Minute)
	_ = serve(t, h, http.MethodGet, "/api/portfolio", nil)
	if source.scans() != 1 {
		t.Fatalf("scans = %d, want 1 within ttl", source.scans())
	}

	clock.Advance(2 * time.Minute)
	_ = serve(t, h, http.MethodGet, "/api/portfolio", nil)
	if source.scans() != 2 {
		t.Fatalf("scans = %d, want 2 after ttl", source.scans())
	}
}

func TestPortfolioCategory(t *testing.T) {
	h := NewHandler(Services{Now: func() time.Time { return testNow }})

	rr := serve(t, h, http.MethodGet, "/api/portfolio/practices", nil)
	got := decodeBody[portfolioCategoryResponse](t, rr)
	if got.Category != "Practices" || got.Total != 2 || len(got.Items) != 2 {
		t.Fatalf("practices = %+v", got)
	}
	for _, item := range got.Items {
		if item.Category != content.CategoryPractices {
			t.Fatalf("item category = %q, want Practices", item.Category)
		}
	}
	if got.Source != content.SourceSample || len(got.Categories) != 4 || !got.LastUpdated.Equal(testNow) {
		t.Fatalf("practices envelope = %+v", got.portfolioResponse)
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(rr.Body.Bytes(), &keys); err != nil {
		t.Fatalf("decode keys: %v", err)
	}
	for _, key := range []string{"items", "total", "categories", "lastUpdated", "source", "category"} {
		if _, ok := keys[key]; !ok {
			t.Fatalf("category response missing %q: %s", key, rr.Body.String())
		}
	}

	rr = serve(t, h, http.MethodGet, "/api/portfolio/unknown", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("unknown status = %d, want 200", rr.Code)
	}
	unknown := decodeBody[portfolioCategoryResponse](t, rr)
	if unknown.Total != 0 || unknown.Items == nil || unknown.Category != "Unknown" {
		t.Fatalf("unknown = %+v", unknown)
	}
}

func TestPortfolioCancelledRequestDoesNotCacheSamples(t *testing.T) {
	source := &fakeSource{rc: liveContent()}
	h := NewHandler(Services{Content: source, Now: func() time.Time { return testNow }, CacheTTL: 5 * time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil).WithContext(ctx)
	h.ServeHTTP(httptest.NewRecorder(), req)

	got := decodeBody[portfolioResponse](t, serve(t, h, http.MethodGet, "/api/portfolio", nil))
	if got.Source != "notion" {
		t.Fatalf("source after cancelled request = %q, want notion", got.Source)
	}
}

func TestNotionContentUsesMockWithoutKey(t *testing.T) {
	pages := &fakePages{}
	h := NewHandler(Services{Pages: pages, PageIDs: map[content.PageKind]string{content.PageProjects: "page-1"}})

	got := decodeBody[notionContentResponse](t, serve(t, h, http.MethodGet, "/api/notion/content/projects", nil))
	if got.Source != pageSourceMock || got.Data.ID != "projects-page" {
		t.Fatalf("projects = %+v", got)
	}
	if len(pages.fetched) != 0 {
		t.Fatalf("fetched = %v, want none without a key", pages.fetched)
	}

	fallback := decodeBody[notionContentResponse](t, serve(t, h, http.MethodGet, "/api/notion/content/bogus", nil))
	if fallback.Data.ID != content.MockPage(content.PageHiring).ID {
		t.Fatalf("unknown kind data id = %q, want hiring mock", fallback.Data.ID)
	}
}

func TestNotionContentFetchesConfiguredPage(t *testing.T) {
	pages := &fakePages{page: content.Page{ID: "live-1", Title: "Live Work"}}
	h := NewHandler(Services{
		NotionConfigured: true,
		Pages:            pages,
		PageIDs:          map[content.PageKind]string{content.PageProjects: "page-1"},
	})

	got := decodeBody[notionContentResponse](t, serve(t, h, http.MethodGet, "/api/notion/content/projects", nil))
	if got.Source != pageSourceNotion || got.Data.ID != "live-1" {
		t.Fatalf("projects = %+v", got)
	}
	if len(pages.fetched) != 1 || pages.fetched[0] != "page-1" {
		t.Fatalf("fetched = %v, want [page-1]", pages.fetched)
	}

	unset := decodeBody[notionContentResponse](t, serve(t, h, http.MethodGet, "/api/notion/content/collaborators", nil))
	if unset.Source != pageSourceMock {
		t.Fatalf("collaborators source = %q, want mock without a page id", unset.Source)
	}

	pages.err = errors.New("rate limited")
	failed := decodeBody[notionContentResponse](t, serve(t, h, http.MethodGet, "/api/notion/content/projects", nil))
	if failed.Source != pageSourceMock || failed.Data.ID != "projects-page" {
		t.Fatalf("failed fetch = %+v, want projects mock", failed)
	}
}

func TestNotionStatus(t *testing.T) {
	off := decodeBody[notionStatusResponse](t, serve(t, NewHandler(Services{}), http.MethodGet, "/api/notion/status", nil))
	if off.Configured || off.Status != "using_mock_data" {
		t.Fatalf("off = %+v", off)
	}
	on := decodeBody[notionStatusResponse](t, serve(t, NewHandler(Services{NotionConfigured: true}), http.MethodGet, "/api/notion/status", nil))
	if !on.Configured || on.Status != "connected" {
		t.Fatalf("on = %+v", on)
	}
}

func TestResumeFormats(t *testing.T) {
	source := &fakeSource{rc: liveContent()}
	h := NewHandler(Services{Content: source, Now: func() time.Time { return testNow }})

	rr := serve(t, h, http.MethodGet, "/api/resume", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var markdown struct {
		Resume string `json:"resume"`
		Format string `json:"format"`
		Cached bool   `json:"cached"`
		Source string `json:"source"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &markdown); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if markdown.Format != "markdown" || markdown.Cached || markdown.Source != "notion-live" {
		t.Fatalf("markdown = %+v", markdown)
	}
	if !strings.HasPrefix(markdown.Resume, "# HALEY BIRD") {
		t.Fatalf("resume = %q", markdown.Resume)
	}

	rr = serve(t, h, http.MethodGet, "/api/resume?format=json", nil)
	var doc struct {
		Resume struct {
			Name      string `json:"name"`
			Practices []struct {
				Title string `json:"title"`
			} `json:"practices"`
		} `json:"resume"`
		Cached bool `json:"cached"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !doc.Cached || doc.Resume.Name != "Haley Bird" || len(doc.Resume.Practices) != 1 {
		t.Fatalf("json = %+v", doc)
	}
	if source.scans() != 1 {
		t.Fatalf("scans = %d, want 1", source.scans())
	}
}

func TestResumeRejectsUnknownFormat(t *testing.T) {
	rr := serve(t, NewHandler(Services{}), http.MethodGet, "/api/resume?format=pdf", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	got := decodeBody[errorResponse](t, rr)
	if got.Code != "RESUME_FORMAT_INVALID" || got.Error == "" {
		t.Fatalf("error = %+v", got)
	}
}

func TestResumeMarkdownAndHTML(t *testing.T) {
	h := NewHandler(Services{Content: &fakeSource{err: errors.New("down")}})

	rr := serve(t, h, http.MethodGet, "/api/resume/markdown", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("markdown status = %d, want 200", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/markdown") {
		t.Fatalf("Content-Type = %q, want text/markdown", got)
	}
	if got := rr.Header().Get("Content-Disposition"); got != `attachment; filename="haley-bird-resume.md"` {
		t.Fatalf("Content-Disposition = %q", got)
	}

	rr = serve(t, h, http.MethodGet, "/api/resume/html", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("html status = %d, want 200", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/html") {
		t.Fatalf("Content-Type = %q, want text/html", got)
	}
	if !strings.Contains(rr.Body.String(), "<h1>HALEY BIRD</h1>") {
		t.Fatalf("body missing heading: %q", rr.Body.String())
	}
}

func TestRooms(t *testing.T) {
	h := NewHandler(Services{})

	all := decodeBody[roomsResponse](t, serve(t, h, http.MethodGet, "/api/rooms", nil))
	if len(all.Rooms) != 11 || all.Entry != "hero" || len(all.Order) != 8 {
		t.Fatalf("rooms = %d entry = %q order = %d", len(all.Rooms), all.Entry, len(all.Order))
	}

	rr := serve(t, h, http.MethodGet, "/api/rooms/%23Garden", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("garden status = %d, want 200", rr.Code)
	}
	var garden struct {
		ID    string   `json:"id"`
		Trail []string `json:"trail"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &garden); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if garden.ID != "garden" || len(garden.Trail) != 3 {
		t.Fatalf("garden = %+v", garden)
	}

	rr = serve(t, h, http.MethodGet, "/api/rooms/attic", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("attic status = %d, want 404", rr.Code)
	}
	got := decodeBody[errorResponse](t, rr)
	if got.Code != "ROOM_UNKNOWN" || got.Error != `Room "attic" does not exist.` {
		t.Fatalf("error = %+v", got)
	}
}

func TestQualityFromClientHints(t *testing.T) {
	h := NewHandler(Services{})
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{name: "no hints", headers: nil, want: "medium"},
		{name: "mobile hint", headers: map[string]string{"Sec-CH-UA-Mobile": "?1"}, want: "low"},
		{name: "mobile agent", headers: map[string]string{"User-Agent": "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0)"}, want: "low"},
		{name: "low memory", headers: map[string]string{"Device-Memory": "2"}, want: "low"},
		{name: "slow network", headers: map[string]string{"ECT": "2g"}, want: "low"},
		{name: "high memory", headers: map[string]string{"Device-Memory": "16", "Sec-CH-UA-Mobile": "?0"}, want: "high"},
	}
	for _, tc := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/quality", nil)
		for k, v := range tc.headers {
			req.Header.Set(k, v)
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		got := decodeBody[qualityResponse](t, rr)
		if string(got.Quality.Tier) != tc.want {
			t.Fatalf("%s: tier = %q, want %q", tc.name, got.Quality.Tier, tc.want)
		}
	}
}

func TestAudioRendersRoomChime(t *testing.T) {
	h := NewHandler(Services{})

	rr := serve(t, h, http.MethodGet, "/api/audio/garden.wav?x=1&z=-2", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("Content-Type"); got != "audio/wav" {
		t.Fatalf("Content-Type = %q, want audio/wav", got)
	}
	body := rr.Body.Bytes()
	if len(body) < 44 || string(body[0:4]) != "RIFF" || string(body[8:12]) != "WAVE" {
		t.Fatalf("body is not a wav file (%d bytes)", len(body))
	}
}

func TestAudioRejectsBadRequests(t *testing.T) {
	h := NewHandler(Services{})
	tests := []struct {
		target string
		status int
		code   string
	}{
		{target: "/api/audio/attic.wav", status: http.StatusNotFound, code: "ROOM_UNKNOWN"},
		{target: "/api/audio/garden.mp3", status: http.StatusNotFound, code: "NOT_FOUND"},
		{target: "/api/audio/garden.wav?x=left", status: http.StatusBadRequest, code: "AUDIO_POSITION_INVALID"},
		{target: "/api/audio/garden.wav?y=NaN", status: http.StatusBadRequest, code: "AUDIO_POSITION_INVALID"},
	}
	for _, tc := range tests {
		rr := serve(t, h, http.MethodGet, tc.target, nil)
		if rr.Code != tc.status {
			t.Fatalf("%s: status = %d, want %d", tc.target, rr.Code, tc.status)
		}
		if got := decodeBody[errorResponse](t, rr); got.Code != tc.code {
			t.Fatalf("%s: code = %q, want %q", tc.target, got.Code, tc.code)
		}
	}
}

func TestVitalsDisabledWithoutStore(t *testing.T) {
	h := NewHandler(Services{})
	rr := serve(t, h, http.MethodPost, "/api/vitals", []byte(`{"name":"lcp","value":1200}`))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("record status = %d, want 503", rr.Code)
	}
	rr = serve(t, h, http.MethodGet, "/api/vitals/summary", nil)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("summary status = %d, want 503", rr.Code)
	}
	if got := decodeBody[errorResponse](t, rr); got.Code != "VITALS_UNAVAILABLE" {
		t.Fatalf("code = %q, want VITALS_UNAVAILABLE", got.Code)
	}
}

func TestVitalsRejectsInvalidReports(t *testing.T) {
	store := &fakeVitalsStore{}
	h := NewHandler(Services{Vitals: store, Now: func() time.Time { return testNow }})

	for _, body := range []string{`{"name":"fid","value":10}`, `{"name":"lcp","value":-1}`, `not json`} {
		rr := serve(t, h, http.MethodPost, "/api/vitals", []byte(body))
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", body, rr.Code)
		}
		if got := decodeBody[errorResponse](t, rr); got.Code != "VITALS_INVALID" {
			t.Fatalf("%s: code = %q, want VITALS_INVALID", body, got.Code)
		}
	}
	if len(store.reports) != 0 {
		t.Fatalf("reports = %d, want 0", len(store.reports))
	}

	rr := serve(t, h, http.MethodGet, "/api/vitals/summary?window=forever", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad window status = %d, want 400", rr.Code)
	}
}

func TestVitalsRoundTripThroughSQLite(t *testing.T) {
	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "site.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	h := NewHandler(Services{Vitals: store, Now: func() time.Time { return testNow }})

	for _, body := range []string{
		`{"name":"LCP","value":2000,"path":"/garden","room":"garden"}`,
		`{"name":"lcp","value":3000}`,
		`{"name":"cls","value":0.3}`,
	} {
		rr := serve(t, h, http.MethodPost, "/api/vitals", []byte(body))
		if rr.Code != http.StatusAccepted {
			t.Fatalf("%s: status = %d, want 202: %s", body, rr.Code, rr.Body.String())
		}
	}

	got := decodeBody[vitalsSummaryResponse](t, serve(t, h, http.MethodGet, "/api/vitals/summary?window=1h", nil))
	if !got.Since.Equal(testNow.Add(-time.Hour)) {
		t.Fatalf("since = %v, want %v", got.Since, testNow.Add(-time.Hour))
	}
	if len(got.Metrics) != 2 {
		t.Fatalf("metrics = %+v, want lcp and cls", got.Metrics)
	}
	lcp := got.Metrics[0]
	if lcp.Metric != vitals.LCP || lcp.Count != 2 || lcp.Average != 2500 || lcp.Max != 3000 {
		t.Fatalf("lcp = %+v", lcp)
	}
	if got.Metrics[1].Metric != vitals.CLS || got.Metrics[1].Rating != vitals.RatingPoor {
		t.Fatalf("cls = %+v", got.Metrics[1])
	}
}

func TestUnknownErrorsAreInternal(t *testing.T) {
	store := &fakeVitalsStore{err: errors.New("disk full")}
	h := NewHandler(Services{Vitals: store})
	rr := serve(t, h, http.MethodPost, "/api/vitals", []byte(`{"name":"ttfb","value":100}`))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	if got := decodeBody[errorResponse](t, rr); got.Code != "UNKNOWN" || got.Error != "Something went wrong." {
		t.Fatalf("error = %+v", got)
	}
}
