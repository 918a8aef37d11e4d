package service

import (
	"time"

	"safety_monitor/internal/models"
)

// LogFilter narrows a journal query. Zero fields do not filter.
type LogFilter struct {
	From     time.Time // inclusive
	To       time.Time // inclusive
	Kinds    []string  // journal kinds; "SOS" selects SOS_AUTO and SOS_MANUAL
	Source   string    // alarm label, e.g. "Mining Safety"
	Category string    // latching alert category
	Limit    int       // 0 means DefaultLogLimit; capped at MaxLogLimit
}

// JournalSummary aggregates a filtered slice of the journal.
type JournalSummary struct {
	Total      int                          `json:"total"`
	ByKind     map[models.AuditKind]int     `json:"by_kind"`
	ByCategory map[models.AlertCategory]int `json:"by_category"` // auto SOS only
	BySource   map[string]int               `json:"by_source"`   // SOS only
	LastSOS    *models.AuditEvent           `json:"last_sos,omitempty"`
}
