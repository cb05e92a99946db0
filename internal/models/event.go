package models

import (
	"fmt"
	"time"

	"github.com/sparklabs-au/ignite-api/internal/timezone"
)

// EventOccurrence is the full internal record for one session on one date.
// It is computed fresh per query and projected into a view shape before it
// leaves the service layer; it is never persisted.
type EventOccurrence struct {
	SessionID   string
	Date        timezone.Date
	Start       time.Time // UTC
	End         time.Time // UTC
	Location    string
	Address     string
	ProgramType ProgramType
	Capacity    int
	Students    []Student
}

// ID returns the stable composite identifier for the occurrence. Callers and
// caching layers rely on this being byte-identical across queries.
func (e EventOccurrence) ID() string {
	return fmt.Sprintf("%s-%s", e.SessionID, e.Date)
}

// Occupancy is the distinct enrolled-student count for the occurrence.
func (e EventOccurrence) Occupancy() int {
	return len(e.Students)
}

// AvailableSpots is capacity minus occupancy, floored at zero so
// over-enrollment never surfaces as a negative number.
func (e EventOccurrence) AvailableSpots() int {
	spots := e.Capacity - len(e.Students)
	if spots < 0 {
		return 0
	}
	return spots
}
