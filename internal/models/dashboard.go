package models

import "time"

// Ignition display states.
const (
	IgnitionActive = "ACTIVE"
	IgnitionCut    = "CUT OFF"
)

// Markers holds the per-map marker positions.
type Markers struct {
	Helmet Location `json:"helmet"`
	Fire   Location `json:"fire"`
}

// Dashboard is the view-model published to renderers after every tick.
type Dashboard struct {
	Reading         Reading                   `json:"reading"`
	Verdicts        map[AlertCategory]Verdict `json:"verdicts"`
	MiningAlert     AlertCategory             `json:"mining_alert,omitempty"` // the single active mining alert, if any
	Ignition        string                    `json:"ignition"`               // ACTIVE | CUT OFF
	IgnitionGranted bool                      `json:"ignition_granted"`
	OpenIncidents   []AlertCategory           `json:"open_incidents"`
	FireOverride    bool                      `json:"fire_override"`
	FireLinkStatus  string                    `json:"fire_link_status,omitempty"`
	Markers         Markers                   `json:"markers"`
	History         []Notification            `json:"history"`
	Tick            uint64                    `json:"tick"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}

// MapDirective asks map views to recenter once and open a callout.
type MapDirective struct {
	Center  Location `json:"center"`
	Zoom    int      `json:"zoom"`
	Marker  string   `json:"marker"` // helmet | fire
	Callout string   `json:"callout,omitempty"`
}

// UserAlert is a user-facing alert dialog.
type UserAlert struct {
	Title    string    `json:"title"`
	Message  string    `json:"message"`
	Location *Location `json:"location,omitempty"`
	RaisedAt time.Time `json:"raised_at"`
}

// Envelope types carried on the live stream.
const (
	EnvelopeState        = "state"
	EnvelopeAlert        = "alert"
	EnvelopeMap          = "map"
	EnvelopeNotification = "notification"
)

// Envelope wraps every message pushed to renderers and relays.
type Envelope struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}
