package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sparklabs-au/ignite-api/internal/models"
	"github.com/sparklabs-au/ignite-api/internal/timezone"
	appErrors "github.com/sparklabs-au/ignite-api/pkg/errors"
	"github.com/sparklabs-au/ignite-api/pkg/export"
)

// ExportFormat enumerates supported calendar export encodings.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
	FormatICS ExportFormat = "ics"
)

// ParseExportFormat resolves the format query parameter.
func ParseExportFormat(raw string) (ExportFormat, error) {
	switch strings.ToLower(raw) {
	case string(FormatCSV):
		return FormatCSV, nil
	case string(FormatPDF):
		return FormatPDF, nil
	case string(FormatICS):
		return FormatICS, nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown export format %q", raw))
	}
}

// ExportResult is a rendered download payload.
type ExportResult struct {
	ContentType string
	Filename    string
	Payload     []byte
}

type occurrenceSource interface {
	Occurrences(ctx context.Context, from, to timezone.Date) ([]models.EventOccurrence, error)
}

// ExportService renders calendar ranges into downloadable documents. The
// admin/public redaction contract applies to exports exactly as it does to
// the JSON calendar.
type ExportService struct {
	calendar     occurrenceSource
	csv          *export.CSVExporter
	pdf          *export.PDFExporter
	ics          *export.ICSExporter
	location     *time.Location
	calendarName string
	logger       *zap.Logger
}

// NewExportService constructs an export service.
func NewExportService(calendar occurrenceSource, loc *time.Location, calendarName string, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ExportService{
		calendar:     calendar,
		csv:          export.NewCSVExporter(),
		pdf:          export.NewPDFExporter(),
		ics:          export.NewICSExporter(),
		location:     loc,
		calendarName: calendarName,
		logger:       logger,
	}
}

// Export materializes the range and renders it in the requested format and
// view.
func (s *ExportService) Export(ctx context.Context, from, to timezone.Date, format ExportFormat, view View) (*ExportResult, error) {
	occurrences, err := s.calendar.Occurrences(ctx, from, to)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("ignite-calendar-%s-%s.%s", from, to, format)

	switch format {
	case FormatCSV:
		payload, err := s.csv.Render(s.rosterDataset(occurrences, view))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportResult{ContentType: "text/csv", Filename: filename, Payload: payload}, nil
	case FormatPDF:
		title := fmt.Sprintf("%s %s to %s", s.calendarName, from, to)
		payload, err := s.pdf.Render(s.rosterDataset(occurrences, view), title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportResult{ContentType: "application/pdf", Filename: filename, Payload: payload}, nil
	case FormatICS:
		payload, err := s.ics.Render(s.calendarItems(occurrences, view), s.calendarName)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render ics export")
		}
		return &ExportResult{ContentType: "text/calendar", Filename: filename, Payload: payload}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown export format %q", format))
	}
}

func (s *ExportService) rosterDataset(occurrences []models.EventOccurrence, view View) export.Dataset {
	headers := []string{"Date", "Session", "Location", "Start", "End", "Available"}
	if view == ViewAdmin {
		headers = append(headers, "Capacity", "Enrolled", "Students")
	}

	rows := make([]map[string]string, 0, len(occurrences))
	for _, occ := range occurrences {
		row := map[string]string{
			"Date":      occ.Date.String(),
			"Session":   occ.SessionID,
			"Location":  occ.Location,
			"Start":     occ.Start.In(s.location).Format("15:04"),
			"End":       occ.End.In(s.location).Format("15:04"),
			"Available": fmt.Sprintf("%d", occ.AvailableSpots()),
		}
		if view == ViewAdmin {
			names := make([]string, 0, len(occ.Students))
			for _, st := range occ.Students {
				names = append(names, st.Name)
			}
			row["Capacity"] = fmt.Sprintf("%d", occ.Capacity)
			row["Enrolled"] = fmt.Sprintf("%d", occ.Occupancy())
			row["Students"] = strings.Join(names, ", ")
		}
		rows = append(rows, row)
	}

	return export.Dataset{Headers: headers, Rows: rows}
}

func (s *ExportService) calendarItems(occurrences []models.EventOccurrence, view View) []export.CalendarItem {
	items := make([]export.CalendarItem, 0, len(occurrences))
	for _, occ := range occurrences {
		summary := occ.Location
		if view == ViewAdmin {
			summary = fmt.Sprintf("%s (%d/%d)", occ.Location, occ.Occupancy(), occ.Capacity)
		}
		location := occ.Address
		if location == "" {
			location = occ.Location
		}
		items = append(items, export.CalendarItem{
			UID:      occ.ID(),
			Summary:  summary,
			Location: location,
			Start:    occ.Start,
			End:      occ.End,
		})
	}
	return items
}
