package models

import "time"

// AuditKind says which controller action produced a journal entry.
type AuditKind string

const (
	AuditSOSAuto         AuditKind = "SOS_AUTO"
	AuditSOSManual       AuditKind = "SOS_MANUAL"
	AuditHazardPush      AuditKind = "HAZARD_PUSH"
	AuditHazardClear     AuditKind = "HAZARD_CLEAR"
	AuditOverrideRelease AuditKind = "OVERRIDE_RELEASE"
)

// AuditKinds lists every journal kind.
var AuditKinds = []AuditKind{
	AuditSOSAuto,
	AuditSOSManual,
	AuditHazardPush,
	AuditHazardClear,
	AuditOverrideRelease,
}

// FireSample is the fire field group a remote push forced onto the dashboard.
type FireSample struct {
	Flame     int     `json:"flame"`
	SmokeMgM3 float64 `json:"smoke_mg_m3"`
}

// AuditEvent is one durable journal entry. SOS entries carry the source,
// category (auto only) and location of the notification; fire link entries
// carry the pushed FireSample.
type AuditEvent struct {
	EventID    string        `json:"event_id"`
	OccurredAt time.Time     `json:"occurred_at"`
	Kind       AuditKind     `json:"kind"`
	Source     string        `json:"source,omitempty"`
	Category   AlertCategory `json:"category,omitempty"`
	Message    string        `json:"message"`
	Location   *Location     `json:"location,omitempty"`
	Fire       *FireSample   `json:"fire,omitempty"`
}

// IsSOS reports whether the entry records an emitted notification.
func (e AuditEvent) IsSOS() bool {
	return e.Kind == AuditSOSAuto || e.Kind == AuditSOSManual
}
