package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"safety_monitor/internal/alert"
	"safety_monitor/internal/models"
	"safety_monitor/internal/repository"
)

// Journal listing bounds.
const (
	DefaultLogLimit = repository.DefaultAuditLimit
	MaxLogLimit     = 1000
)

// sosKindAlias selects both SOS kinds in a kind filter.
const sosKindAlias = "SOS"

var (
	ErrInvalidTimeRange = errors.New("invalid time range: from must be <= to")
	ErrUnknownKind      = errors.New("unknown journal kind")
	ErrUnknownSource    = errors.New("unknown alarm source")
	ErrUnknownCategory  = errors.New("category is not journaled")
	ErrNegativeLimit    = errors.New("limit must not be negative")
)

// EventLogService answers journal queries over SOS emissions and fire link
// pushes.
type EventLogService struct {
	auditRepo repository.AuditRepo
}

func NewEventLogService(auditRepo repository.AuditRepo) *EventLogService {
	return &EventLogService{auditRepo: auditRepo}
}

// List returns journal entries matching f, newest first.
func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.AuditEvent, error) {
	q, err := f.query()
	if err != nil {
		return nil, err
	}
	return s.auditRepo.List(ctx, q)
}

// Summary counts the entries matching f, up to MaxLogLimit of them.
func (s *EventLogService) Summary(ctx context.Context, f LogFilter) (JournalSummary, error) {
	q, err := f.query()
	if err != nil {
		return JournalSummary{}, err
	}
	q.Limit = MaxLogLimit
	events, err := s.auditRepo.List(ctx, q)
	if err != nil {
		return JournalSummary{}, err
	}
	return summarize(events), nil
}

func summarize(events []models.AuditEvent) JournalSummary {
	out := JournalSummary{
		Total:      len(events),
		ByKind:     make(map[models.AuditKind]int),
		ByCategory: make(map[models.AlertCategory]int),
		BySource:   make(map[string]int),
	}
	for i, e := range events {
		out.ByKind[e.Kind]++
		if !e.IsSOS() {
			continue
		}
		if e.Category != "" {
			out.ByCategory[e.Category]++
		}
		out.BySource[e.Source]++
		// events are newest first
		if out.LastSOS == nil {
			out.LastSOS = &events[i]
		}
	}
	return out
}

// query validates f and turns it into a repository query. Kinds and
// categories are matched case-insensitively, sources against the alarm
// labels.
func (f LogFilter) query() (repository.AuditQuery, error) {
	q := repository.AuditQuery{
		From:  normalizeToUTC(f.From),
		To:    normalizeToUTC(f.To),
		Limit: f.Limit,
	}
	if !q.From.IsZero() && !q.To.IsZero() && q.From.After(q.To) {
		return repository.AuditQuery{}, ErrInvalidTimeRange
	}

	switch {
	case f.Limit < 0:
		return repository.AuditQuery{}, ErrNegativeLimit
	case f.Limit == 0:
		q.Limit = DefaultLogLimit
	case f.Limit > MaxLogLimit:
		q.Limit = MaxLogLimit
	}

	kinds, err := parseKinds(f.Kinds)
	if err != nil {
		return repository.AuditQuery{}, err
	}
	q.Kinds = kinds

	if src := strings.TrimSpace(f.Source); src != "" {
		canon, ok := alert.CanonicalSource(src)
		if !ok {
			return repository.AuditQuery{}, ErrUnknownSource
		}
		q.Source = canon
	}

	if c := strings.ToUpper(strings.TrimSpace(f.Category)); c != "" {
		cat := models.AlertCategory(c)
		if !alert.IsLatching(cat) {
			return repository.AuditQuery{}, ErrUnknownCategory
		}
		q.Category = cat
	}
	return q, nil
}

func parseKinds(in []string) ([]models.AuditKind, error) {
	var out []models.AuditKind
	seen := make(map[models.AuditKind]bool, len(models.AuditKinds))
	add := func(k models.AuditKind) {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	for _, raw := range in {
		k := strings.ToUpper(strings.TrimSpace(raw))
		switch {
		case k == "":
		case k == sosKindAlias:
			add(models.AuditSOSAuto)
			add(models.AuditSOSManual)
		case isAuditKind(models.AuditKind(k)):
			add(models.AuditKind(k))
		default:
			return nil, ErrUnknownKind
		}
	}
	return out, nil
}

func isAuditKind(k models.AuditKind) bool {
	for _, known := range models.AuditKinds {
		if k == known {
			return true
		}
	}
	return false
}

func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// notificationEntry is the journal form of an emitted SOS.
func notificationEntry(n models.Notification) models.AuditEvent {
	kind := models.AuditSOSAuto
	if n.Kind == models.NotificationManual {
		kind = models.AuditSOSManual
	}
	loc := n.Location
	return models.AuditEvent{
		EventID:    n.ID,
		OccurredAt: n.OccurredAt,
		Kind:       kind,
		Source:     n.Source,
		Category:   n.Category,
		Message:    n.Message,
		Location:   &loc,
	}
}

// hazardEntry records a remote fire link push and the values it forced.
func hazardEntry(at time.Time, active bool, link string, fire models.FireSample) models.AuditEvent {
	kind := models.AuditHazardClear
	if active {
		kind = models.AuditHazardPush
	}
	return models.AuditEvent{
		OccurredAt: at,
		Kind:       kind,
		Source:     alert.SourceFire,
		Message:    "Remote fire link reported " + link,
		Fire:       &fire,
	}
}

func releaseEntry(at time.Time) models.AuditEvent {
	return models.AuditEvent{
		OccurredAt: at,
		Kind:       models.AuditOverrideRelease,
		Source:     alert.SourceFire,
		Message:    "Fire sensors returned to self-simulation",
	}
}
