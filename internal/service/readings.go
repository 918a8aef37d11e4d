package service

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"safety_monitor/internal/models"
)

var (
	ErrInvalidReading    = errors.New("invalid reading")
	ErrStaleReading      = errors.New("stale reading: taken_at must be after the last accepted reading")
	ErrEmptySource       = errors.New("sos source must not be empty")
	ErrControllerStopped = errors.New("dashboard controller stopped")
)

// ValidateReading rejects NaN/Inf and out-of-domain values at the source
// boundary so the classifier only ever sees well-formed snapshots.
func ValidateReading(r models.Reading) error {
	switch {
	case !finite(r.Alcohol) || r.Alcohol < 0:
		return fmt.Errorf("%w: alcohol must be a finite value >= 0, got %v", ErrInvalidReading, r.Alcohol)
	case r.GasPPM < 0:
		return fmt.Errorf("%w: gas_ppm must be >= 0, got %d", ErrInvalidReading, r.GasPPM)
	case !finite(r.TemperatureC):
		return fmt.Errorf("%w: temperature_c must be finite, got %v", ErrInvalidReading, r.TemperatureC)
	case r.AirQuality < 0:
		return fmt.Errorf("%w: aqi must be >= 0, got %d", ErrInvalidReading, r.AirQuality)
	case r.Flame < 0 || r.Flame > 100:
		return fmt.Errorf("%w: flame must be within [0,100], got %d", ErrInvalidReading, r.Flame)
	case !finite(r.SmokeMgM3) || r.SmokeMgM3 < 0:
		return fmt.Errorf("%w: smoke_mg_m3 must be a finite value >= 0, got %v", ErrInvalidReading, r.SmokeMgM3)
	}
	return ValidateLocation(r.Location)
}

// ValidateLocation checks WGS84 bounds.
func ValidateLocation(l models.Location) error {
	if !finite(l.Lat) || l.Lat < -90 || l.Lat > 90 {
		return fmt.Errorf("%w: latitude must be within [-90,90], got %v", ErrInvalidReading, l.Lat)
	}
	if !finite(l.Lon) || l.Lon < -180 || l.Lon > 180 {
		return fmt.Errorf("%w: longitude must be within [-180,180], got %v", ErrInvalidReading, l.Lon)
	}
	return nil
}

func normalizeSource(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptySource
	}
	return s, nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
