package service

import (
	"context"
	"time"

	"safety_monitor/internal/alert"
	"safety_monitor/internal/logger"
	"safety_monitor/internal/models"
	"safety_monitor/internal/repository"
)

// Dashboard exposes the controller operations. Every mutating call is
// serialized through the controller's event loop.
type Dashboard interface {
	Ingest(ctx context.Context, r models.Reading) (models.Dashboard, error)
	PushHazard(ctx context.Context, active bool) (models.Dashboard, error)
	ReleaseOverride(ctx context.Context) (models.Dashboard, error)
	SendSOS(ctx context.Context, source string) (models.Notification, error)
	View(ctx context.Context) (models.Dashboard, error)
	History(ctx context.Context) ([]models.Notification, error)
}

// EventLog exposes the audit journal with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.AuditEvent, error)
	Summary(ctx context.Context, f LogFilter) (JournalSummary, error)
}

// Loop is the controller's event loop. Stop via context cancellation.
type Loop interface {
	Run(ctx context.Context)
}

// Simulator produces random readings at a fixed cadence.
type Simulator interface {
	Run(ctx context.Context, tick time.Duration)
}

// Service aggregates all sub-services.
type Service struct {
	Dashboard
	EventLog
	Loop
	Simulator
}

// Options carries the non-repository dependencies of the services.
type Options struct {
	Thresholds alert.Thresholds
	Origin     models.Location
	Publisher  Publisher
	Locator    Locator
	// LocateTimeout bounds one Locator call; zero means defaultLocateTimeout.
	LocateTimeout time.Duration
	Seed          uint64
	Log           *logger.Logger
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, opts Options) *Service {
	dash := NewDashboardService(repos.AuditRepo, opts)
	return &Service{
		Dashboard: dash,
		EventLog:  NewEventLogService(repos.AuditRepo),
		Loop:      dash,
		Simulator: NewSimulatorService(dash, opts.Seed, opts.Log),
	}
}
