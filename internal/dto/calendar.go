// Package dto defines the wire shapes returned by the API. Calendar events
// come in two projections with different exposure levels; the projection
// functions here are the only place occurrence data is shaped for output.
package dto

import (
	"fmt"
	"time"

	"github.com/sparklabs-au/ignite-api/internal/models"
)

// StudentInfo is the admin-facing learner identity on an event.
type StudentInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ExtendedProps carries the event fields beyond the calendar-widget basics.
// Public output holds only location and availableSpots; everything else is
// omitempty/pointer-typed so it is absent, not zeroed, when redacted.
type ExtendedProps struct {
	SessionID      string        `json:"sessionId,omitempty"`
	Location       string        `json:"location"`
	Address        string        `json:"address,omitempty"`
	ProgramType    string        `json:"programType,omitempty"`
	AvailableSpots int           `json:"availableSpots"`
	IsRecurring    bool          `json:"isRecurring,omitempty"`
	Capacity       *int          `json:"capacity,omitempty"`
	CurrentCount   *int          `json:"currentCount,omitempty"`
	Students       []StudentInfo `json:"students,omitempty"`
}

// CalendarEvent is one rendered occurrence. Start and End are UTC instants.
type CalendarEvent struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Start           time.Time     `json:"start"`
	End             time.Time     `json:"end"`
	BackgroundColor string        `json:"backgroundColor"`
	BorderColor     string        `json:"borderColor"`
	TextColor       string        `json:"textColor"`
	ExtendedProps   ExtendedProps `json:"extendedProps"`
}

func baseEvent(occ models.EventOccurrence) CalendarEvent {
	colors := occ.ProgramType.Colors()
	return CalendarEvent{
		ID:              occ.ID(),
		Start:           occ.Start,
		End:             occ.End,
		BackgroundColor: colors.Background,
		BorderColor:     colors.Border,
		TextColor:       colors.Text,
		ExtendedProps: ExtendedProps{
			Location:       occ.Location,
			AvailableSpots: occ.AvailableSpots(),
		},
	}
}

// AdminEvent projects an occurrence with full enrollment detail.
func AdminEvent(occ models.EventOccurrence) CalendarEvent {
	event := baseEvent(occ)
	event.Title = fmt.Sprintf("%s (%d/%d)", occ.Location, occ.Occupancy(), occ.Capacity)

	event.ExtendedProps.SessionID = occ.SessionID
	event.ExtendedProps.Address = occ.Address
	event.ExtendedProps.ProgramType = string(occ.ProgramType)
	event.ExtendedProps.IsRecurring = true

	capacity := occ.Capacity
	current := occ.Occupancy()
	event.ExtendedProps.Capacity = &capacity
	event.ExtendedProps.CurrentCount = &current

	students := make([]StudentInfo, 0, len(occ.Students))
	for _, st := range occ.Students {
		students = append(students, StudentInfo{ID: st.ID, Name: st.Name})
	}
	event.ExtendedProps.Students = students

	return event
}

// PublicEvent projects an occurrence for unauthenticated consumers. It never
// carries student identities or raw occupancy, only remaining availability.
func PublicEvent(occ models.EventOccurrence) CalendarEvent {
	event := baseEvent(occ)
	event.Title = occ.Location
	return event
}
