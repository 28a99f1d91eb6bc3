package entity

import (
	"regexp"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/sheet"
)

// Event is one row of the Events table, provisioned outside this service.
type Event struct {
	EventID        string `sheet:"event_id"`
	Name           string `sheet:"name"`
	Type           string `sheet:"type"`
	DateTime       string `sheet:"date_time"`
	Location       string `sheet:"location"`
	Capacity       string `sheet:"capacity"`
	Description    string `sheet:"description"`
	TargetAudience string `sheet:"target_audience"`
}

var Events = sheet.NewSchema[Event]("Events",
	"event_id", "name", "type", "date_time", "location", "capacity", "description", "target_audience",
)

// Summary is the event listing with the derived registration count.
type Summary struct {
	EventID         string `json:"event_id"`
	EventName       string `json:"event_name"`
	EventDate       string `json:"event_date"`
	Description     string `json:"description"`
	Capacity        int    `json:"capacity"`
	RegisteredCount int    `json:"registered_count"`
	Type            string `json:"type,omitempty"`
	Location        string `json:"location,omitempty"`
	TargetAudience  string `json:"target_audience,omitempty"`
}

// Defaults for events inferred from registrations when no Events rows exist.
const (
	DerivedEventDate = "2025-12-15"
	DerivedCapacity  = 100
)

var whitespace = regexp.MustCompile(`\s+`)

// PlaceholderID is the synthesized event_id for a registration that has none.
func PlaceholderID(eventName string) string {
	return "EVT-" + whitespace.ReplaceAllString(eventName, "-")
}
