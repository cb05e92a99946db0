package export

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
)

// CalendarItem describes one VEVENT to serialize. Start and End are UTC
// instants; serialization keeps them in UTC so consumers apply their own zone.
type CalendarItem struct {
	UID      string
	Summary  string
	Location string
	Start    time.Time
	End      time.Time
}

// ICSExporter renders calendar items into an iCalendar feed.
type ICSExporter struct{}

// NewICSExporter constructs an ICS exporter.
func NewICSExporter() *ICSExporter {
	return &ICSExporter{}
}

// Render serializes the items into an ICS payload. DTSTAMP is pinned to the
// item start so repeated exports of the same range are byte-identical.
func (e *ICSExporter) Render(items []CalendarItem, calendarName string) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	if calendarName != "" {
		cal.SetName(calendarName)
		cal.SetXWRCalName(calendarName)
	}

	for _, item := range items {
		if item.UID == "" {
			return nil, fmt.Errorf("calendar item requires a uid")
		}
		event := cal.AddEvent(item.UID)
		event.SetDtStampTime(item.Start.UTC())
		event.SetStartAt(item.Start.UTC())
		event.SetEndAt(item.End.UTC())
		event.SetSummary(item.Summary)
		if item.Location != "" {
			event.SetLocation(item.Location)
		}
	}

	return []byte(cal.Serialize()), nil
}
