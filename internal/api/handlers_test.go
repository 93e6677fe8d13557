// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/curator/internal/catalog"
	"github.com/tomtom215/curator/internal/engine"
	"github.com/tomtom215/curator/internal/feedback"
	"github.com/tomtom215/curator/internal/history"
	"github.com/tomtom215/curator/internal/recommend"
)

var ts = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

const adultSelections = `{"age_group":"adults","group_type":"individual","time_slot":"morning","interests":["science","space"]}`

// fakePublisher records published events, or fails with err.
type fakePublisher struct {
	mu     sync.Mutex
	events []recommend.InteractionEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, _ string, ev recommend.InteractionEvent) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return "", p.err
	}
	p.events = append(p.events, ev)
	return "msg-1", nil
}

// brokenStore fails every call.
type brokenStore struct{}

func (brokenStore) Append(context.Context, string, recommend.InteractionEvent) error {
	return history.ErrUnavailable
}

func (brokenStore) List(context.Context, string) ([]recommend.InteractionEvent, error) {
	return nil, history.ErrUnavailable
}

func (brokenStore) Clear(context.Context, string) (int, error) {
	return 0, history.ErrUnavailable
}

func (brokenStore) Close() error { return nil }

type testEnv struct {
	handler   *Handler
	router    http.Handler
	store     *history.MemoryStore
	publisher *fakePublisher
}

// newTestEnv builds a handler over an engine loaded with the sample catalog.
func newTestEnv(t *testing.T, initialized bool) *testEnv {
	t.Helper()
	eng, err := engine.New(nil, nil)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	if initialized {
		if err := eng.Initialize(catalog.Sample()); err != nil {
			t.Fatalf("Initialize: %v", err)
		}
	}
	store := history.NewMemoryStore(100)
	pub := &fakePublisher{}
	h := NewHandler(HandlerConfig{Engine: eng, History: store, Publisher: pub})
	h.now = func() time.Time { return ts }

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	return &testEnv{
		handler:   h,
		router:    NewRouter(h, NewChiMiddleware(cfg)),
		store:     store,
		publisher: pub,
	}
}

func (e *testEnv) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	return serve(t, e.router, method, path, body)
}

// envelope mirrors APIResponse with raw data.
type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *APIError       `json:"error"`
}

func serve(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: response is not an envelope: %v\n%s", method, path, err, rec.Body.String())
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data: %v\n%s", err, env.Data)
	}
}

func wantError(t *testing.T, rec *httptest.ResponseRecorder, env envelope, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Errorf("status = %d, want %d (%s)", rec.Code, status, rec.Body.String())
	}
	if env.Status != StatusError || env.Error == nil {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
	if env.Error.Code != code {
		t.Errorf("error code = %q, want %q", env.Error.Code, code)
	}
}

func TestHealth(t *testing.T) {
	t.Run("live before init", func(t *testing.T) {
		env := newTestEnv(t, false)
		rec, _ := env.do(t, http.MethodGet, "/api/v1/health/live", "")
		if rec.Code != http.StatusOK {
			t.Errorf("live = %d, want 200", rec.Code)
		}
	})

	t.Run("not ready before init", func(t *testing.T) {
		env := newTestEnv(t, false)
		rec, resp := env.do(t, http.MethodGet, "/api/v1/health/ready", "")
		if rec.Code != http.StatusServiceUnavailable || resp.Status != "not_ready" {
			t.Errorf("ready = %d %q, want 503 not_ready", rec.Code, resp.Status)
		}
	})

	t.Run("ready after init", func(t *testing.T) {
		env := newTestEnv(t, true)
		rec, resp := env.do(t, http.MethodGet, "/api/v1/health/ready", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("ready = %d, want 200", rec.Code)
		}
		var data struct {
			CatalogLoaded bool `json:"catalog_loaded"`
			ExhibitCount  int  `json:"exhibit_count"`
		}
		decodeData(t, resp, &data)
		if !data.CatalogLoaded || data.ExhibitCount != 10 {
			t.Errorf("data = %+v", data)
		}
	})
}

func TestStatus(t *testing.T) {
	env := newTestEnv(t, true)
	rec, resp := env.do(t, http.MethodGet, "/api/v1/status", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var data StatusResponse
	decodeData(t, resp, &data)
	if !data.Engine.Initialized || data.Engine.ExhibitCount != 10 || data.Engine.CatalogVersion == "" {
		t.Errorf("engine status = %+v", data.Engine)
	}
	if data.HistoryState != "" {
		t.Errorf("memory store has no breaker, got state %q", data.HistoryState)
	}
}

func TestListExhibits(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantTotal int
		wantCount int
		wantMore  bool
		wantFirst string
	}{
		{"all", "", 10, 10, false, "dino-hall"},
		{"by category", "?category=Chemistry", 1, 1, false, "chem-lab"},
		{"by tag", "?tag=science", 3, 3, false, "chem-lab"},
		{"not accessible", "?accessible=false", 1, 1, false, "chem-lab"},
		{"first page", "?limit=4", 10, 4, true, "dino-hall"},
		{"last page", "?limit=4&offset=8", 10, 2, false, "climate-change"},
		{"offset past end", "?offset=50", 10, 0, false, ""},
	}
	env := newTestEnv(t, true)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := env.do(t, http.MethodGet, "/api/v1/exhibits"+tt.query, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
			}
			var data ExhibitListResponse
			decodeData(t, resp, &data)
			if data.Total != tt.wantTotal || data.Count != tt.wantCount || data.HasMore != tt.wantMore {
				t.Errorf("total/count/more = %d/%d/%v, want %d/%d/%v",
					data.Total, data.Count, data.HasMore, tt.wantTotal, tt.wantCount, tt.wantMore)
			}
			if len(data.Exhibits) != tt.wantCount {
				t.Fatalf("got %d exhibits, want %d", len(data.Exhibits), tt.wantCount)
			}
			if tt.wantFirst != "" && data.Exhibits[0].ID != tt.wantFirst {
				t.Errorf("first exhibit = %q, want %q", data.Exhibits[0].ID, tt.wantFirst)
			}
			if len(data.Categories) != 10 {
				t.Errorf("categories = %d, want 10", len(data.Categories))
			}
		})
	}

	t.Run("limit out of range", func(t *testing.T) {
		rec, resp := env.do(t, http.MethodGet, "/api/v1/exhibits?limit=0", "")
		wantError(t, rec, resp, http.StatusBadRequest, ErrCodeValidation)
	})

	t.Run("before init", func(t *testing.T) {
		rec, resp := newTestEnv(t, false).do(t, http.MethodGet, "/api/v1/exhibits", "")
		wantError(t, rec, resp, http.StatusServiceUnavailable, ErrCodeNotInitialized)
	})
}

func TestGetExhibit(t *testing.T) {
	env := newTestEnv(t, true)

	rec, resp := env.do(t, http.MethodGet, "/api/v1/exhibits/space-mission", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var ex recommend.ExhibitRecord
	decodeData(t, resp, &ex)
	if ex.ID != "space-mission" || ex.Category != recommend.CategoryAstronomy {
		t.Errorf("exhibit = %s/%s", ex.ID, ex.Category)
	}

	rec, resp = env.do(t, http.MethodGet, "/api/v1/exhibits/nope", "")
	wantError(t, rec, resp, http.StatusNotFound, ErrCodeNotFound)
}

func TestAnalyze(t *testing.T) {
	env := newTestEnv(t, true)
	body := `{"selections":` + adultSelections + `,"options":{"seed":7,"top_k":4}}`

	rec, resp := env.do(t, http.MethodPost, "/api/v1/analyze", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var data AnalyzeResponse
	decodeData(t, resp, &data)
	if data.AnalysisResult == nil || data.Profile == nil {
		t.Fatal("missing analysis result")
	}
	if len(data.Recommendations) == 0 || len(data.Recommendations) > 4 {
		t.Errorf("got %d recommendations, want 1..4", len(data.Recommendations))
	}
	if len(data.Tour.Stops) == 0 {
		t.Error("expected a non-empty tour")
	}
	if data.HistorySource != HistoryNone {
		t.Errorf("history source = %q, want %q", data.HistorySource, HistoryNone)
	}

	// The same seed yields the same ranking.
	_, resp2 := env.do(t, http.MethodPost, "/api/v1/analyze", body)
	var again AnalyzeResponse
	decodeData(t, resp2, &again)
	for i := range data.Recommendations {
		if data.Recommendations[i].ExhibitID != again.Recommendations[i].ExhibitID {
			t.Fatalf("rank %d differs between identical requests", i+1)
		}
	}
}

func TestAnalyze_Errors(t *testing.T) {
	tests := []struct {
		name     string
		init     bool
		body     string
		wantCode int
		wantErr  string
	}{
		{"empty body", true, "", http.StatusBadRequest, ErrCodeInvalidJSON},
		{"malformed json", true, `{"selections":`, http.StatusBadRequest, ErrCodeInvalidJSON},
		{"missing selections", true, `{}`, http.StatusBadRequest, ErrCodeValidation},
		{"bad age group", true, `{"selections":{"age_group":"toddlers","group_type":"family","time_slot":"morning"}}`, http.StatusBadRequest, ErrCodeValidation},
		{"bad session id", true, `{"selections":` + adultSelections + `,"session_id":"a b"}`, http.StatusBadRequest, ErrCodeValidation},
		{"bad option", true, `{"selections":` + adultSelections + `,"options":{"top_k":500}}`, http.StatusBadRequest, ErrCodeValidation},
		{"not initialized", false, `{"selections":` + adultSelections + `}`, http.StatusServiceUnavailable, ErrCodeNotInitialized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tt.init)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			env.router.ServeHTTP(rec, req)

			var resp envelope
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("not an envelope: %s", rec.Body.String())
			}
			wantError(t, rec, resp, tt.wantCode, tt.wantErr)
		})
	}
}

func TestAnalyze_BodyTooLarge(t *testing.T) {
	env := newTestEnv(t, true)
	body := `{"selections":` + adultSelections + `,"pad":"` + strings.Repeat("x", maxBodyBytes) + `"}`
	rec, resp := env.do(t, http.MethodPost, "/api/v1/analyze", body)
	wantError(t, rec, resp, http.StatusRequestEntityTooLarge, ErrCodeInvalidJSON)
}

func TestAnalyze_HistorySources(t *testing.T) {
	inline := `[{"exhibit_id":"chem-lab","kind":"liked","timestamp":"2026-03-14T09:00:00Z"}]`

	tests := []struct {
		name       string
		store      history.Store
		body       string
		wantSource string
		wantEvents int
	}{
		{
			name:       "inline wins over store",
			body:       `{"selections":` + adultSelections + `,"session_id":"s1","history":` + inline + `}`,
			wantSource: HistoryInline,
			wantEvents: 1,
		},
		{
			name:       "explicit empty history skips store",
			body:       `{"selections":` + adultSelections + `,"session_id":"s1","history":[]}`,
			wantSource: HistoryInline,
			wantEvents: 0,
		},
		{
			name:       "stored history by session",
			body:       `{"selections":` + adultSelections + `,"session_id":"s1"}`,
			wantSource: HistoryStored,
			wantEvents: 2,
		},
		{
			name:       "store failure degrades",
			store:      brokenStore{},
			body:       `{"selections":` + adultSelections + `,"session_id":"s1"}`,
			wantSource: HistoryUnavailable,
			wantEvents: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, true)
			for _, id := range []string{"dino-hall", "ocean-depths"} {
				ev := recommend.InteractionEvent{ExhibitID: id, Kind: recommend.FeedbackViewed, Timestamp: ts}
				if err := env.store.Append(context.Background(), "s1", ev); err != nil {
					t.Fatal(err)
				}
			}
			if tt.store != nil {
				env.handler.history = tt.store
			}

			rec, resp := env.do(t, http.MethodPost, "/api/v1/analyze", tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
			}
			var data AnalyzeResponse
			decodeData(t, resp, &data)
			if data.HistorySource != tt.wantSource || data.HistoryEvents != tt.wantEvents {
				t.Errorf("history = %s/%d, want %s/%d",
					data.HistorySource, data.HistoryEvents, tt.wantSource, tt.wantEvents)
			}
			if data.SessionID != "s1" {
				t.Errorf("session_id = %q", data.SessionID)
			}
		})
	}
}

func TestRecordInteraction(t *testing.T) {
	const path = "/api/v1/sessions/visitor-42/interactions"

	t.Run("accepted with server timestamp", func(t *testing.T) {
		env := newTestEnv(t, true)
		rec, resp := env.do(t, http.MethodPost, path, `{"exhibit_id":"chem-lab","kind":"liked"}`)
		if rec.Code != http.StatusAccepted {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}
		var data InteractionAccepted
		decodeData(t, resp, &data)
		if data.MessageID != "msg-1" || data.SessionID != "visitor-42" {
			t.Errorf("data = %+v", data)
		}
		if len(env.publisher.events) != 1 || !env.publisher.events[0].Timestamp.Equal(ts) {
			t.Errorf("published = %+v", env.publisher.events)
		}
	})

	t.Run("client timestamp kept", func(t *testing.T) {
		env := newTestEnv(t, true)
		rec, _ := env.do(t, http.MethodPost, path, `{"exhibit_id":"chem-lab","kind":"viewed","timestamp":"2026-03-14T08:30:00+01:00"}`)
		if rec.Code != http.StatusAccepted {
			t.Fatalf("status = %d", rec.Code)
		}
		want := time.Date(2026, 3, 14, 7, 30, 0, 0, time.UTC)
		if got := env.publisher.events[0].Timestamp; !got.Equal(want) || got.Location() != time.UTC {
			t.Errorf("timestamp = %v, want %v", got, want)
		}
	})

	t.Run("duplicate acknowledged", func(t *testing.T) {
		env := newTestEnv(t, true)
		env.publisher.err = feedback.ErrDuplicate
		rec, resp := env.do(t, http.MethodPost, path, `{"exhibit_id":"chem-lab","kind":"liked"}`)
		if rec.Code != http.StatusAccepted {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}
		var data InteractionAccepted
		decodeData(t, resp, &data)
		if !data.Duplicate || data.MessageID != "" {
			t.Errorf("data = %+v, want a duplicate without message id", data)
		}
	})

	errorCases := []struct {
		name     string
		path     string
		body     string
		setup    func(*testEnv)
		wantCode int
		wantErr  string
	}{
		{"invalid session id", "/api/v1/sessions/bad.id/interactions", `{"exhibit_id":"chem-lab","kind":"liked"}`, nil, http.StatusBadRequest, ErrCodeValidation},
		{"unknown kind", path, `{"exhibit_id":"chem-lab","kind":"loved"}`, nil, http.StatusBadRequest, ErrCodeValidation},
		{"missing exhibit", path, `{"kind":"liked"}`, nil, http.StatusBadRequest, ErrCodeValidation},
		{"unknown exhibit", path, `{"exhibit_id":"nope","kind":"liked"}`, nil, http.StatusNotFound, ErrCodeNotFound},
		{"malformed", path, `not json`, nil, http.StatusBadRequest, ErrCodeInvalidJSON},
		{
			"rate limited", path, `{"exhibit_id":"chem-lab","kind":"liked"}`,
			func(e *testEnv) { e.publisher.err = feedback.ErrRateLimited },
			http.StatusTooManyRequests, ErrCodeRateLimited,
		},
		{
			"publish failure", path, `{"exhibit_id":"chem-lab","kind":"liked"}`,
			func(e *testEnv) { e.publisher.err = errors.New("bus closed") },
			http.StatusInternalServerError, ErrCodeInternal,
		},
		{
			"ingestion disabled", path, `{"exhibit_id":"chem-lab","kind":"liked"}`,
			func(e *testEnv) { e.handler.publisher = nil },
			http.StatusServiceUnavailable, ErrCodeUnavailable,
		},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, true)
			if tt.setup != nil {
				tt.setup(env)
			}
			rec, resp := env.do(t, http.MethodPost, tt.path, tt.body)
			wantError(t, rec, resp, tt.wantCode, tt.wantErr)
		})
	}
}

func TestListAndClearInteractions(t *testing.T) {
	const path = "/api/v1/sessions/visitor-42/interactions"
	env := newTestEnv(t, true)
	for _, id := range []string{"dino-hall", "chem-lab", "space-mission"} {
		ev := recommend.InteractionEvent{ExhibitID: id, Kind: recommend.FeedbackLiked, Timestamp: ts}
		if err := env.store.Append(context.Background(), "visitor-42", ev); err != nil {
			t.Fatal(err)
		}
	}

	rec, resp := env.do(t, http.MethodGet, path, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var list InteractionList
	decodeData(t, resp, &list)
	if list.Count != 3 || list.Events[0].ExhibitID != "dino-hall" {
		t.Errorf("list = %+v", list)
	}

	rec, resp = env.do(t, http.MethodDelete, path, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("clear status = %d", rec.Code)
	}
	var cleared InteractionsCleared
	decodeData(t, resp, &cleared)
	if cleared.Deleted != 3 {
		t.Errorf("deleted = %d, want 3", cleared.Deleted)
	}

	_, resp = env.do(t, http.MethodGet, path, "")
	decodeData(t, resp, &list)
	if list.Count != 0 {
		t.Errorf("count after clear = %d", list.Count)
	}

	t.Run("store unavailable", func(t *testing.T) {
		env := newTestEnv(t, true)
		env.handler.history = brokenStore{}
		rec, resp := env.do(t, http.MethodGet, path, "")
		wantError(t, rec, resp, http.StatusServiceUnavailable, ErrCodeUnavailable)
	})
}
