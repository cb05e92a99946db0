package models

import (
	"strings"
	"time"
)

// ProgramType categorizes a session for display purposes only; it has no
// scheduling semantics.
type ProgramType string

const (
	ProgramInSchool     ProgramType = "in-school"
	ProgramDropOff      ProgramType = "drop-off"
	ProgramSchoolPickup ProgramType = "school-pickup"
)

// EventColors holds the cosmetic palette derived from a program type.
type EventColors struct {
	Background string
	Border     string
	Text       string
}

// Colors maps a program type to its calendar palette. Unknown types fall back
// to the drop-off palette rather than erroring.
func (p ProgramType) Colors() EventColors {
	switch p {
	case ProgramInSchool:
		return EventColors{Background: "#3b82f6", Border: "#2563eb", Text: "#ffffff"}
	case ProgramSchoolPickup:
		return EventColors{Background: "#8b5cf6", Border: "#7c3aed", Text: "#ffffff"}
	default:
		return EventColors{Background: "#f59e0b", Border: "#d97706", Text: "#1f2937"}
	}
}

// SessionDefinition is one recurring weekly time-slot at a location. It is
// read-only configuration: a definition covers a single start/end slot, and a
// location running two slots on the same weekday uses two definitions.
type SessionDefinition struct {
	ID          string      `mapstructure:"id" json:"id"`
	ProgramType ProgramType `mapstructure:"programType" json:"programType"`
	Location    string      `mapstructure:"location" json:"location"`
	Address     string      `mapstructure:"address" json:"address,omitempty"`
	DaysOfWeek  []string    `mapstructure:"daysOfWeek" json:"daysOfWeek"`
	StartTime   string      `mapstructure:"startTime" json:"startTime"`
	EndTime     string      `mapstructure:"endTime" json:"endTime"`
	PriceWeekly string      `mapstructure:"priceWeekly" json:"priceWeekly,omitempty"`
	Capacity    int         `mapstructure:"capacity" json:"capacity"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday resolves a weekday name case-insensitively.
func ParseWeekday(name string) (time.Weekday, bool) {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	return wd, ok
}

// OccursOn reports whether the session runs on the given weekday. Unparseable
// day names never match.
func (s SessionDefinition) OccursOn(day time.Weekday) bool {
	for _, name := range s.DaysOfWeek {
		if wd, ok := ParseWeekday(name); ok && wd == day {
			return true
		}
	}
	return false
}
