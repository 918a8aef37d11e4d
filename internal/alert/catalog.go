package alert

import (
	"strings"

	"safety_monitor/internal/models"
)

// Source labels shown in the SOS history.
const (
	SourceHelmet = "Smart Helmet"
	SourceMining = "Mining Safety"
	SourceFire   = "Fire/Smoke Alarm"
)

// Sources lists every alarm label.
var Sources = []string{SourceHelmet, SourceMining, SourceFire}

// Latching lists the categories that open incidents, in evaluation order.
// MineAirQuality is advisory and IgnitionLock is continuous status.
var Latching = []models.AlertCategory{
	models.CategoryAccidentImpact,
	models.CategoryMineGas,
	models.CategoryMineHeat,
	models.CategoryFireSmoke,
}

type entry struct {
	display string // dashboard banner
	source  string
	record  string // SOS history text
}

var catalog = map[models.AlertCategory]entry{
	models.CategoryIgnitionLock: {
		display: "ALCOHOL DETECTED! IGNITION DISENGAGED.",
		source:  SourceHelmet,
	},
	models.CategoryAccidentImpact: {
		display: "ACCIDENT DETECTED! SOS SENT TO NHAI ACCIDENT SUPPORT HELPLINE.",
		source:  SourceHelmet,
		record:  "ACCIDENT DETECTED! SOS sent to NHAI Helpline.",
	},
	models.CategoryMineGas: {
		display: "HIGH METHANE LEVELS! SOS SENT TO MINE RESCUE TEAM!",
		source:  SourceMining,
		record:  "HIGH METHANE DETECTED! SOS sent to Rescue Team.",
	},
	models.CategoryMineHeat: {
		display: "EXTREME HEAT! SOS SENT TO MINE RESCUE TEAM!",
		source:  SourceMining,
		record:  "EXTREME HEAT DETECTED! SOS sent to Rescue Team.",
	},
	models.CategoryMineAirQuality: {
		display: "POOR AIR QUALITY! VENTILATION ADVISED.",
		source:  SourceMining,
	},
	models.CategoryFireSmoke: {
		display: "FIRE/SMOKE DETECTED! SOS SENT TO FIRE DEPARTMENT.",
		source:  SourceFire,
		record:  "FIRE/SMOKE DETECTED! SOS sent to Fire Department.",
	},
}

// IsLatching reports whether cat takes part in edge-triggered notification.
func IsLatching(cat models.AlertCategory) bool {
	for _, c := range Latching {
		if c == cat {
			return true
		}
	}
	return false
}

// CanonicalSource matches s against Sources ignoring case and
// surrounding space.
func CanonicalSource(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, src := range Sources {
		if strings.EqualFold(s, src) {
			return src, true
		}
	}
	return "", false
}

// SourceOf returns the history source label for cat.
func SourceOf(cat models.AlertCategory) string { return catalog[cat].source }

// RecordMessage returns the SOS history text for a latching category.
func RecordMessage(cat models.AlertCategory) string { return catalog[cat].record }

func displayMessage(cat models.AlertCategory) string { return catalog[cat].display }
