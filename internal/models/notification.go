package models

import "time"

type NotificationKind string

const (
	NotificationAuto   NotificationKind = "AUTO"   // rising edge of a latched category
	NotificationManual NotificationKind = "MANUAL" // operator pressed "send SOS"
)

// Notification is one emitted SOS. Immutable once created.
type Notification struct {
	ID         string           `json:"id"`
	Kind       NotificationKind `json:"kind"`
	Category   AlertCategory    `json:"category,omitempty"`
	Source     string           `json:"source"` // e.g. "Smart Helmet"
	Message    string           `json:"message"`
	OccurredAt time.Time        `json:"occurred_at"`
	Location   Location         `json:"location"`
}
