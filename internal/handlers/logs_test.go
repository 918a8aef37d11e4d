package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"safety_monitor/internal/alert"
	"safety_monitor/internal/models"
	"safety_monitor/internal/service"
)

func TestLogsHandler_PassesDomainFilters(t *testing.T) {
	loc := models.Location{Lat: 23.81, Lon: 90.41}
	logs := &mockEventLog{resp: []models.AuditEvent{
		{EventID: "e2", Kind: models.AuditSOSAuto, Source: alert.SourceFire, Category: models.CategoryFireSmoke, Location: &loc},
		{EventID: "e1", Kind: models.AuditHazardPush, Source: alert.SourceFire, Fire: &models.FireSample{Flame: 100, SmokeMgM3: 15}},
	}}
	r := newTestRouter(&service.Service{EventLog: logs})

	q := url.Values{}
	q.Add("kind", "sos,hazard_push")
	q.Add("kind", "HAZARD_CLEAR")
	q.Set("source", "Fire/Smoke Alarm")
	q.Set("category", "fire_smoke")
	q.Set("limit", "50")
	q.Set("from", "2025-08-01T00:00:00Z")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs?"+q.Encode(), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	f := logs.last
	if fmt.Sprint(f.Kinds) != "[sos hazard_push HAZARD_CLEAR]" {
		t.Errorf("kinds = %v", f.Kinds)
	}
	if f.Source != alert.SourceFire || f.Category != "fire_smoke" || f.Limit != 50 {
		t.Errorf("filter = %+v", f)
	}
	if !f.From.Equal(time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("from = %v", f.From)
	}

	var out struct {
		Count  int                 `json:"count"`
		Events []models.AuditEvent `json:"events"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 2 || out.Events[0].Location == nil || out.Events[1].Fire == nil || out.Events[1].Fire.Flame != 100 {
		t.Fatalf("unexpected response: %s", w.Body.String())
	}
}

func TestLogsHandler_DateOnlyToIsEndOfDay(t *testing.T) {
	logs := &mockEventLog{}
	r := newTestRouter(&service.Service{EventLog: logs})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs?to=2025-08-31", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	want := time.Date(2025, time.August, 31, 23, 59, 59, 999999999, time.UTC)
	if !logs.last.To.Equal(want) {
		t.Fatalf("to=%v; want %v", logs.last.To, want)
	}
}

func TestLogsHandler_BadRequests(t *testing.T) {
	cases := []struct {
		name  string
		query string
		err   error
	}{
		{name: "bad from", query: "from=notatime"},
		{name: "bad limit", query: "limit=ten"},
		{name: "inverted range", query: "from=2025-08-02", err: service.ErrInvalidTimeRange},
		{name: "unknown kind", query: "kind=FURNACE_START", err: service.ErrUnknownKind},
		{name: "unknown source", query: "source=Radio", err: service.ErrUnknownSource},
		{name: "advisory category", query: "category=MINE_AIR_QUALITY", err: service.ErrUnknownCategory},
		{name: "negative limit", query: "limit=-1", err: service.ErrNegativeLimit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{EventLog: &mockEventLog{err: tc.err}})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs?"+tc.query, nil))
			if w.Code != http.StatusBadRequest {
				t.Fatalf("want 400, got %d body=%s", w.Code, w.Body.String())
			}
		})
	}
}

func TestLogsHandler_ServiceError(t *testing.T) {
	logs := &mockEventLog{err: errors.New("db down")}
	r := newTestRouter(&service.Service{EventLog: logs})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestLogsHandler_Summary(t *testing.T) {
	last := models.AuditEvent{EventID: "n-9", Kind: models.AuditSOSManual, Source: alert.SourceHelmet}
	logs := &mockEventLog{summary: service.JournalSummary{
		Total:      3,
		ByKind:     map[models.AuditKind]int{models.AuditSOSManual: 1, models.AuditSOSAuto: 2},
		ByCategory: map[models.AlertCategory]int{models.CategoryMineGas: 2},
		BySource:   map[string]int{alert.SourceHelmet: 1, alert.SourceMining: 2},
		LastSOS:    &last,
	}}
	r := newTestRouter(&service.Service{EventLog: logs})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs/summary?kind=sos", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if len(logs.last.Kinds) != 1 || logs.last.Kinds[0] != "sos" {
		t.Fatalf("kinds = %v", logs.last.Kinds)
	}

	var out service.JournalSummary
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Total != 3 || out.ByCategory[models.CategoryMineGas] != 2 || out.LastSOS == nil || out.LastSOS.EventID != "n-9" {
		t.Fatalf("summary = %+v", out)
	}
}

func Test_parseQueryTime(t *testing.T) {
	cases := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2025-08-27T18:04:05+03:00", want: time.Date(2025, 8, 27, 15, 4, 5, 0, time.UTC)},
		{in: "2025-08-27 15:04:05", want: time.Date(2025, 8, 27, 15, 4, 5, 0, time.UTC)},
		{in: "2025-08-27", want: time.Date(2025, 8, 27, 0, 0, 0, 0, time.UTC)},
		{in: "27/08/2025", wantErr: true},
	}
	for _, c := range cases {
		got, err := parseQueryTime(c.in)
		if c.wantErr {
			if err == nil {
				t.Fatalf("parseQueryTime(%q) expected error", c.in)
			}
			continue
		}
		if err != nil || !got.Equal(c.want) {
			t.Fatalf("parseQueryTime(%q) = %v, %v; want %v", c.in, got, err, c.want)
		}
	}
}
