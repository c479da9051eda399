package event

import (
	"crypto/sha1"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// PlaceholderName is used for single-entity events that carry no name of their own
const PlaceholderName = "Event"

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Event represents one scheduled broadcast
type Event struct {
	ID            string   `json:"id" yaml:"id"`
	Time          string   `json:"time" yaml:"time"` // HH:MM in the destination timezone
	League        string   `json:"league" yaml:"league"`
	Sport         string   `json:"sport" yaml:"sport"`
	Channels      []string `json:"channels" yaml:"channels"`
	IsSingleEvent bool     `json:"is_single_event" yaml:"is_single_event"`
	EventName     string   `json:"event_name,omitempty" yaml:"event_name,omitempty"`
	TeamLeft      string   `json:"team_left,omitempty" yaml:"team_left,omitempty"`
	TeamRight     string   `json:"team_right,omitempty" yaml:"team_right,omitempty"`
}

// GenerateID creates a deterministic ID for an event based on stable fields
func GenerateID(sport, clock, league, title string) string {
	h := sha1.New()
	h.Write([]byte(sport + "|" + clock + "|" + league + "|" + title))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// NewMatch creates a two-participant event
func NewMatch(clock, league, sport, left, right string, channels []string) *Event {
	evt := &Event{
		Time:      clock,
		League:    league,
		Sport:     sport,
		Channels:  nonNil(channels),
		TeamLeft:  left,
		TeamRight: right,
	}
	evt.ID = GenerateID(sport, clock, league, evt.Title())
	return evt
}

// NewSingle creates a single-entity event. A blank name falls back to PlaceholderName.
func NewSingle(clock, league, sport, name string, channels []string) *Event {
	if strings.TrimSpace(name) == "" {
		name = PlaceholderName
	}
	evt := &Event{
		Time:          clock,
		League:        league,
		Sport:         sport,
		Channels:      nonNil(channels),
		IsSingleEvent: true,
		EventName:     name,
	}
	evt.ID = GenerateID(sport, clock, league, evt.Title())
	return evt
}

// Title returns the human-readable headline of the event
func (e *Event) Title() string {
	if e.IsSingleEvent {
		return e.EventName
	}
	return e.TeamLeft + " vs " + e.TeamRight
}

// Validate checks the clock format and that exactly one shape is populated
func (e *Event) Validate() error {
	if !clockPattern.MatchString(e.Time) {
		return fmt.Errorf("invalid time %q", e.Time)
	}
	if e.Sport == "" {
		return errors.New("missing sport")
	}
	if e.IsSingleEvent {
		if e.EventName == "" {
			return errors.New("single event without a name")
		}
		if e.TeamLeft != "" || e.TeamRight != "" {
			return errors.New("single event with participants")
		}
		return nil
	}
	if e.EventName != "" {
		return errors.New("match with an event name")
	}
	return nil
}

func nonNil(channels []string) []string {
	if channels == nil {
		return []string{}
	}
	return channels
}
