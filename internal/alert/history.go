package alert

import "safety_monitor/internal/models"

// HistoryCapacity is the number of SOS records kept for display.
const HistoryCapacity = 20

// History is a most-recent-first list of notifications. Appending past
// capacity silently drops the oldest record.
type History struct {
	records  []models.Notification
	capacity int
}

// NewHistory creates a history holding at most capacity records.
// A non-positive capacity falls back to HistoryCapacity.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = HistoryCapacity
	}
	return &History{
		records:  make([]models.Notification, 0, capacity+1),
		capacity: capacity,
	}
}

// Append inserts n at the head.
func (h *History) Append(n models.Notification) {
	h.records = append(h.records, models.Notification{})
	copy(h.records[1:], h.records)
	h.records[0] = n
	if len(h.records) > h.capacity {
		h.records = h.records[:h.capacity]
	}
}

// Snapshot returns a copy, most recent first.
func (h *History) Snapshot() []models.Notification {
	out := make([]models.Notification, len(h.records))
	copy(out, h.records)
	return out
}

// Len is the number of records currently held.
func (h *History) Len() int { return len(h.records) }
