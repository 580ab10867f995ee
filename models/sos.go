package models

import "time"

// SOS activation statuses
const (
	SOSStatusIdle       = "idle"
	SOSStatusActivating = "activating"
	SOSStatusActive     = "active"
	SOSStatusResolved   = "resolved"
)

type SOSActivation struct {
	ID          string        `json:"id"`
	UserID      string        `json:"userId,omitempty"`
	Status      string        `json:"status"`
	ActivatedAt *time.Time    `json:"activatedAt,omitempty"`
	Location    *SOSLocation  `json:"location,omitempty"`
	Audio       *SOSRecording `json:"audioRecording,omitempty"`
	Contacts    []string      `json:"contactsNotified"`
	// Rapid-response unit dispatch acknowledgement
	DispatchNotified bool `json:"dispatchNotified"`
}

type SOSLocation struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Address   string  `json:"address"`
}

type SOSRecording struct {
	URL      string `json:"url"`
	Duration int    `json:"duration"` // seconds
}

// SOSStatusResponse is returned by the status endpoint and broadcast over
// the websocket hub on every transition.
type SOSStatusResponse struct {
	Status     string         `json:"status"`
	Activation *SOSActivation `json:"activation,omitempty"`
}
