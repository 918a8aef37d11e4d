package alert

import "safety_monitor/internal/models"

// Latch tracks which latching categories currently have an open incident.
// It is not safe for concurrent use; the dashboard loop owns it.
type Latch struct {
	open map[models.AlertCategory]bool
}

// NewLatch returns a latch set with every category Closed.
func NewLatch() *Latch {
	return &Latch{open: make(map[models.AlertCategory]bool, len(Latching))}
}

// Update applies one classification and returns the categories that moved
// Closed -> Open, in Latching order. Anything other than Critical closes.
func (l *Latch) Update(c models.Classification) []models.AlertCategory {
	var rising []models.AlertCategory
	for _, cat := range Latching {
		critical := c.IsCritical(cat)
		if critical && !l.open[cat] {
			rising = append(rising, cat)
		}
		l.open[cat] = critical
	}
	return rising
}

// IsOpen reports whether cat has an open incident.
func (l *Latch) IsOpen(cat models.AlertCategory) bool { return l.open[cat] }

// Open lists the categories with an open incident, in Latching order.
func (l *Latch) Open() []models.AlertCategory {
	out := make([]models.AlertCategory, 0, len(Latching))
	for _, cat := range Latching {
		if l.open[cat] {
			out = append(out, cat)
		}
	}
	return out
}
