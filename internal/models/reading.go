package models

import "time"

// Location is a WGS84 coordinate pair.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Reading is one snapshot of every monitored quantity.
type Reading struct {
	Alcohol      float64   `json:"alcohol"`       // fractional concentration
	GasPPM       int       `json:"gas_ppm"`       // ppm
	TemperatureC float64   `json:"temperature_c"` // °C
	AirQuality   int       `json:"aqi"`           // air quality index
	Flame        int       `json:"flame"`         // 0..100
	SmokeMgM3    float64   `json:"smoke_mg_m3"`   // mg/m³
	Accident     bool      `json:"accident"`
	Location     Location  `json:"location"`
	TakenAt      time.Time `json:"taken_at,omitempty"`
}
