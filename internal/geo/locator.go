// Package geo resolves the device location from an HTTP geolocation endpoint.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"safety_monitor/internal/models"
)

const defaultTimeout = 5 * time.Second

var ErrNoFix = errors.New("geolocation response carried no coordinates")

// fixResponse accepts both lat/lon and latitude/longitude spellings.
type fixResponse struct {
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// HTTPLocator queries a JSON geolocation endpoint such as ip-api.com/json.
type HTTPLocator struct {
	client *resty.Client
	url    string
}

func NewHTTPLocator(url string, timeout time.Duration) *HTTPLocator {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &HTTPLocator{client: client, url: url}
}

// Locate performs one GET and returns the reported coordinates.
func (l *HTTPLocator) Locate(ctx context.Context) (models.Location, error) {
	resp, err := l.client.R().SetContext(ctx).Get(l.url)
	if err != nil {
		return models.Location{}, fmt.Errorf("geolocation request: %w", err)
	}
	if resp.IsError() {
		return models.Location{}, fmt.Errorf("geolocation request: unexpected status %d", resp.StatusCode())
	}

	var fr fixResponse
	if err := json.Unmarshal(resp.Body(), &fr); err != nil {
		return models.Location{}, fmt.Errorf("decode geolocation: %w", err)
	}
	return fr.location()
}

func (fr fixResponse) location() (models.Location, error) {
	switch {
	case fr.Lat != nil && fr.Lon != nil:
		return models.Location{Lat: *fr.Lat, Lon: *fr.Lon}, nil
	case fr.Latitude != nil && fr.Longitude != nil:
		return models.Location{Lat: *fr.Latitude, Lon: *fr.Longitude}, nil
	default:
		return models.Location{}, ErrNoFix
	}
}
