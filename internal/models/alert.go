package models

// AlertCategory identifies one independently tracked alert.
type AlertCategory string

const (
	CategoryAccidentImpact AlertCategory = "ACCIDENT_IMPACT"
	CategoryMineGas        AlertCategory = "MINE_GAS"
	CategoryMineHeat       AlertCategory = "MINE_HEAT"
	CategoryMineAirQuality AlertCategory = "MINE_AIR_QUALITY"
	CategoryFireSmoke      AlertCategory = "FIRE_SMOKE"
	CategoryIgnitionLock   AlertCategory = "IGNITION_LOCK"
)

type Severity string

const (
	SeverityNormal   Severity = "NORMAL"
	SeverityWarning  Severity = "WARNING"
	SeverityCritical Severity = "CRITICAL"
)

// Verdict is the classifier output for a single category.
type Verdict struct {
	Severity      Severity `json:"severity"`
	Message       string   `json:"message,omitempty"`
	Indeterminate bool     `json:"indeterminate,omitempty"` // an input was NaN/Inf
}

// Classification holds a verdict for every AlertCategory.
type Classification struct {
	Verdicts        map[AlertCategory]Verdict `json:"verdicts"`
	IgnitionGranted bool                      `json:"ignition_granted"`
}

// Verdict returns the verdict for c, Normal when absent.
func (c Classification) Verdict(cat AlertCategory) Verdict {
	if v, ok := c.Verdicts[cat]; ok {
		return v
	}
	return Verdict{Severity: SeverityNormal}
}

// IsCritical reports whether cat was classified Critical.
func (c Classification) IsCritical(cat AlertCategory) bool {
	return c.Verdict(cat).Severity == SeverityCritical
}
