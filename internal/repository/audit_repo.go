package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"safety_monitor/internal/models"

	"github.com/google/uuid"
)

// DefaultAuditLimit bounds List when the query sets no limit.
const DefaultAuditLimit = 200

// ErrMissingKind is returned by Append for an entry without a kind.
var ErrMissingKind = errors.New("audit event has no kind")

type AuditSQLite struct {
	db *sql.DB
}

func NewAuditSQLite(db *sql.DB) *AuditSQLite { return &AuditSQLite{db: db} }

var _ AuditRepo = (*AuditSQLite)(nil)

const (
	insertAuditSQL = `
		INSERT INTO audit_events
			(id, occurred_at, kind, source, category, message, lat, lon, flame, smoke_mg_m3)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	selectAuditSQL = `SELECT id, occurred_at, kind, source, category, message, lat, lon, flame, smoke_mg_m3 FROM audit_events`
	orderAuditSQL  = ` ORDER BY occurred_at DESC, rowid DESC LIMIT ?`

	sqliteTimestampLayout = "2006-01-02 15:04:05"
)

// Append stores e. A missing EventID or OccurredAt is filled in.
func (r *AuditSQLite) Append(ctx context.Context, e models.AuditEvent) error {
	if e.Kind == "" {
		return ErrMissingKind
	}
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}

	// nil binds SQL NULL for the optional groups
	var lat, lon, flame, smoke any
	if e.Location != nil {
		lat, lon = e.Location.Lat, e.Location.Lon
	}
	if e.Fire != nil {
		flame, smoke = int64(e.Fire.Flame), e.Fire.SmokeMgM3
	}

	_, err := r.db.ExecContext(ctx, insertAuditSQL,
		e.EventID,
		e.OccurredAt.UTC().Format(sqliteTimestampLayout),
		string(e.Kind),
		e.Source,
		string(e.Category),
		e.Message,
		lat, lon, flame, smoke,
	)
	return err
}

// List returns entries matching q, newest first.
func (r *AuditSQLite) List(ctx context.Context, q AuditQuery) ([]models.AuditEvent, error) {
	where, args := auditWhere(q)

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultAuditLimit
	}
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, selectAuditSQL+where+orderAuditSQL, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.AuditEvent, 0, 32)
	for rows.Next() {
		ev, err := scanAudit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func auditWhere(q AuditQuery) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if !q.From.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, q.From.UTC().Format(sqliteTimestampLayout))
	}
	if !q.To.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, q.To.UTC().Format(sqliteTimestampLayout))
	}
	if len(q.Kinds) > 0 {
		marks := make([]string, len(q.Kinds))
		for i, k := range q.Kinds {
			marks[i] = "?"
			args = append(args, string(k))
		}
		conds = append(conds, "kind IN ("+strings.Join(marks, ", ")+")")
	}
	if q.Source != "" {
		conds = append(conds, "source = ?")
		args = append(args, q.Source)
	}
	if q.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, string(q.Category))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanAudit(rows *sql.Rows) (models.AuditEvent, error) {
	var (
		ev            models.AuditEvent
		kind, cat     string
		lat, lon, smk sql.NullFloat64
		flame         sql.NullInt64
	)
	if err := rows.Scan(&ev.EventID, &ev.OccurredAt, &kind, &ev.Source, &cat, &ev.Message, &lat, &lon, &flame, &smk); err != nil {
		return models.AuditEvent{}, err
	}
	ev.OccurredAt = ev.OccurredAt.UTC()
	ev.Kind = models.AuditKind(kind)
	ev.Category = models.AlertCategory(cat)
	if lat.Valid && lon.Valid {
		ev.Location = &models.Location{Lat: lat.Float64, Lon: lon.Float64}
	}
	if flame.Valid && smk.Valid {
		ev.Fire = &models.FireSample{Flame: int(flame.Int64), SmokeMgM3: smk.Float64}
	}
	return ev, nil
}
