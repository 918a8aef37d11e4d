package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"safety_monitor/internal/models"
	"safety_monitor/internal/service"
)

const validReadingBody = `{"alcohol":0.02,"gas_ppm":40,"temperature_c":31,"aqi":60,"flame":8,"smoke_mg_m3":0.4,"accident":false,"location":{"lat":23.81,"lon":90.41}}`

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestRouter(&service.Service{})

	w := doJSON(t, r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), statusOK) {
		t.Fatalf("health status=%d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "safety_ticks_total") {
		t.Fatalf("metrics status=%d", w.Code)
	}
}

func TestDashboardHandlers_GetDashboard(t *testing.T) {
	dash := &mockDashboard{view: models.Dashboard{Ignition: models.IgnitionCut, Tick: 7}}
	r := newTestRouter(&service.Service{Dashboard: dash})

	w := doJSON(t, r, http.MethodGet, "/api/v1/dashboard", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var v models.Dashboard
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.Ignition != models.IgnitionCut || v.Tick != 7 {
		t.Fatalf("unexpected view: %+v", v)
	}

	dash.viewErr = service.ErrControllerStopped
	w = doJSON(t, r, http.MethodGet, "/api/v1/dashboard", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestDashboardHandlers_IngestReading(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantCode   int
		wantCalls  int
	}{
		{name: "ok", body: validReadingBody, wantCode: http.StatusOK, wantCalls: 1},
		{name: "missing field", body: `{"alcohol":0.02}`, wantCode: http.StatusBadRequest},
		{name: "not json", body: `nope`, wantCode: http.StatusBadRequest},
		{name: "bad taken_at", body: strings.Replace(validReadingBody, `"accident":false`, `"accident":false,"taken_at":"yesterday"`, 1), wantCode: http.StatusBadRequest},
		{name: "invalid reading", body: validReadingBody, serviceErr: fmt.Errorf("%w: flame", service.ErrInvalidReading), wantCode: http.StatusBadRequest, wantCalls: 1},
		{name: "stale", body: validReadingBody, serviceErr: service.ErrStaleReading, wantCode: http.StatusConflict, wantCalls: 1},
		{name: "stopped", body: validReadingBody, serviceErr: service.ErrControllerStopped, wantCode: http.StatusServiceUnavailable, wantCalls: 1},
		{name: "unexpected", body: validReadingBody, serviceErr: errors.New("boom"), wantCode: http.StatusInternalServerError, wantCalls: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dash := &mockDashboard{ingestErr: tc.serviceErr}
			r := newTestRouter(&service.Service{Dashboard: dash})

			w := doJSON(t, r, http.MethodPost, "/api/v1/readings", tc.body)
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d; want %d body=%s", w.Code, tc.wantCode, w.Body.String())
			}
			if dash.ingestCalls != tc.wantCalls {
				t.Fatalf("ingest calls=%d; want %d", dash.ingestCalls, tc.wantCalls)
			}
		})
	}
}

func TestDashboardHandlers_IngestMapsFields(t *testing.T) {
	dash := &mockDashboard{}
	r := newTestRouter(&service.Service{Dashboard: dash})

	body := strings.Replace(validReadingBody, `"accident":false`, `"accident":true,"taken_at":"2025-08-01T10:00:00Z"`, 1)
	if w := doJSON(t, r, http.MethodPost, "/api/v1/readings", body); w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	got := dash.lastReading
	want := models.Reading{
		Alcohol: 0.02, GasPPM: 40, TemperatureC: 31, AirQuality: 60, Flame: 8, SmokeMgM3: 0.4,
		Accident: true,
		Location: models.Location{Lat: 23.81, Lon: 90.41},
		TakenAt:  time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC),
	}
	if got != want {
		t.Fatalf("reading=%+v; want %+v", got, want)
	}
}

func TestDashboardHandlers_SendSOS(t *testing.T) {
	dash := &mockDashboard{sosNote: models.Notification{ID: "n1", Kind: models.NotificationManual, Source: "Smart Helmet"}}
	r := newTestRouter(&service.Service{Dashboard: dash})

	w := doJSON(t, r, http.MethodPost, "/api/v1/sos", `{"source":"Smart Helmet"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Status       string              `json:"status"`
		Notification models.Notification `json:"notification"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Status != statusSent || resp.Notification.ID != "n1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if dash.lastSource != "Smart Helmet" {
		t.Fatalf("source=%q", dash.lastSource)
	}

	// missing source rejected by binding
	if w := doJSON(t, r, http.MethodPost, "/api/v1/sos", `{}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing source, got %d", w.Code)
	}

	dash.sosErr = service.ErrEmptySource
	if w := doJSON(t, r, http.MethodPost, "/api/v1/sos", `{"source":"  "}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank source, got %d", w.Code)
	}
}

func TestDashboardHandlers_History(t *testing.T) {
	dash := &mockDashboard{}
	r := newTestRouter(&service.Service{Dashboard: dash})

	w := doJSON(t, r, http.MethodGet, "/api/v1/sos/history", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var empty struct {
		Count       int    `json:"count"`
		Placeholder string `json:"placeholder"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &empty)
	if empty.Count != 0 || empty.Placeholder != historyPlaceholder {
		t.Fatalf("unexpected empty history: %+v", empty)
	}

	dash.history = []models.Notification{{ID: "b"}, {ID: "a"}}
	w = doJSON(t, r, http.MethodGet, "/api/v1/sos/history", "")
	var full struct {
		Count       int                   `json:"count"`
		Events      []models.Notification `json:"events"`
		Placeholder *string               `json:"placeholder"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &full)
	if full.Count != 2 || full.Events[0].ID != "b" || full.Placeholder != nil {
		t.Fatalf("unexpected history: %+v", full)
	}
}

func TestDashboardHandlers_FireRoutes(t *testing.T) {
	dash := &mockDashboard{view: models.Dashboard{FireOverride: true, FireLinkStatus: "FIRE DETECTED!"}}
	r := newTestRouter(&service.Service{Dashboard: dash})

	if w := doJSON(t, r, http.MethodPost, "/api/v1/fire/hazard", `{"active":true}`); w.Code != http.StatusOK {
		t.Fatalf("hazard status=%d body=%s", w.Code, w.Body.String())
	}
	if dash.lastHazard == nil || !*dash.lastHazard {
		t.Fatalf("hazard not forwarded")
	}

	// false is a valid value, not a missing one
	if w := doJSON(t, r, http.MethodPost, "/api/v1/fire/hazard", `{"active":false}`); w.Code != http.StatusOK {
		t.Fatalf("clear status=%d body=%s", w.Code, w.Body.String())
	}
	if *dash.lastHazard {
		t.Fatalf("clear not forwarded")
	}

	if w := doJSON(t, r, http.MethodPost, "/api/v1/fire/hazard", `{}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing active, got %d", w.Code)
	}

	w := doJSON(t, r, http.MethodDelete, "/api/v1/fire/override", "")
	if w.Code != http.StatusOK || dash.releaseCalls != 1 {
		t.Fatalf("release status=%d calls=%d", w.Code, dash.releaseCalls)
	}
	var resp struct {
		Status string `json:"status"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Status != statusReleased {
		t.Fatalf("status=%q", resp.Status)
	}
}
