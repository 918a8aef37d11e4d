package repository

import (
	"context"
	"database/sql"
	"time"

	"safety_monitor/internal/models"
)

// AuditQuery selects journal entries. Zero fields do not filter.
type AuditQuery struct {
	From     time.Time // inclusive
	To       time.Time // inclusive
	Kinds    []models.AuditKind
	Source   string
	Category models.AlertCategory
	// Limit caps the result; non-positive means DefaultAuditLimit.
	Limit int
}

// AuditRepo is the append-only journal of SOS and hazard events.
type AuditRepo interface {
	Append(ctx context.Context, e models.AuditEvent) error
	// List returns matching entries, newest first.
	List(ctx context.Context, q AuditQuery) ([]models.AuditEvent, error)
}

type Repository struct {
	AuditRepo AuditRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		AuditRepo: NewAuditSQLite(db),
	}
}
