// Package alert classifies readings into per-category verdicts, tracks open
// incidents and keeps the bounded SOS history.
package alert

// Thresholds holds the unsafe boundary for every measured quantity.
// All comparisons are strict: a value equal to its limit is safe.
type Thresholds struct {
	Alcohol      float64 `mapstructure:"alcohol"`
	GasPPM       int     `mapstructure:"gas_ppm"`
	TemperatureC float64 `mapstructure:"temperature_c"`
	AirQuality   int     `mapstructure:"aqi"`
	Flame        int     `mapstructure:"flame"`
	SmokeMgM3    float64 `mapstructure:"smoke_mg_m3"`
}

// Default limits.
const (
	DefaultAlcoholLimit     = 0.08
	DefaultGasLimitPPM      = 100
	DefaultTemperatureLimit = 45.0
	DefaultAQILimit         = 150
	DefaultFlameLimit       = 70
	DefaultSmokeLimit       = 5.0
)

// DefaultThresholds returns the stock limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Alcohol:      DefaultAlcoholLimit,
		GasPPM:       DefaultGasLimitPPM,
		TemperatureC: DefaultTemperatureLimit,
		AirQuality:   DefaultAQILimit,
		Flame:        DefaultFlameLimit,
		SmokeMgM3:    DefaultSmokeLimit,
	}
}

// IsZero reports whether no limit was configured at all. A single zero
// limit is a valid setting: zero alcohol tolerance trips on any reading.
func (t Thresholds) IsZero() bool { return t == Thresholds{} }
