package handlers

import (
	"context"

	"safety_monitor/internal/models"
	"safety_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockDashboard struct {
	view    models.Dashboard
	viewErr error

	ingestErr   error
	lastReading models.Reading
	ingestCalls int

	sosNote    models.Notification
	sosErr     error
	lastSource string

	history    []models.Notification
	historyErr error

	hazardErr    error
	lastHazard   *bool
	releaseErr   error
	releaseCalls int
}

func (m *mockDashboard) Ingest(ctx context.Context, r models.Reading) (models.Dashboard, error) {
	m.ingestCalls++
	m.lastReading = r
	return m.view, m.ingestErr
}

func (m *mockDashboard) PushHazard(ctx context.Context, active bool) (models.Dashboard, error) {
	m.lastHazard = &active
	return m.view, m.hazardErr
}

func (m *mockDashboard) ReleaseOverride(ctx context.Context) (models.Dashboard, error) {
	m.releaseCalls++
	return m.view, m.releaseErr
}

func (m *mockDashboard) SendSOS(ctx context.Context, source string) (models.Notification, error) {
	m.lastSource = source
	return m.sosNote, m.sosErr
}

func (m *mockDashboard) View(ctx context.Context) (models.Dashboard, error) {
	return m.view, m.viewErr
}

func (m *mockDashboard) History(ctx context.Context) ([]models.Notification, error) {
	return m.history, m.historyErr
}

type mockEventLog struct {
	resp    []models.AuditEvent
	summary service.JournalSummary
	err     error
	last    service.LogFilter
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.AuditEvent, error) {
	m.last = f
	return m.resp, m.err
}

func (m *mockEventLog) Summary(ctx context.Context, f service.LogFilter) (service.JournalSummary, error) {
	m.last = f
	return m.summary, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
