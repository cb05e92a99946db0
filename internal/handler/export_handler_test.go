package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/sparklabs-au/ignite-api/internal/middleware"
	"github.com/sparklabs-au/ignite-api/internal/models"
	"github.com/sparklabs-au/ignite-api/internal/service"
	"github.com/sparklabs-au/ignite-api/internal/timezone"
)

type exportServiceMock struct {
	lastFormat service.ExportFormat
	lastView   service.View
}

func (m *exportServiceMock) Export(ctx context.Context, from, to timezone.Date, format service.ExportFormat, view service.View) (*service.ExportResult, error) {
	m.lastFormat = format
	m.lastView = view
	return &service.ExportResult{
		ContentType: "text/calendar",
		Filename:    "ignite-calendar-2025-03-01-2025-03-31.ics",
		Payload:     []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"),
	}, nil
}

func newExportTestContext(t *testing.T, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodGet, target, nil)
	require.NoError(t, err)
	c.Request = req
	return c, w
}

func TestExportHandlerDefaultsToICS(t *testing.T) {
	mockSvc := &exportServiceMock{}
	h := NewExportHandler(mockSvc, &calendarServiceMock{})

	c, w := newExportTestContext(t, "/calendar/export?start=2025-03-01&end=2025-03-31")
	h.Download(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, service.FormatICS, mockSvc.lastFormat)
	require.Equal(t, service.ViewPublic, mockSvc.lastView)
	require.Equal(t, "text/calendar", w.Header().Get("Content-Type"))
	require.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
}

func TestExportHandlerAdminViewRequiresAuth(t *testing.T) {
	h := NewExportHandler(&exportServiceMock{}, &calendarServiceMock{})

	c, w := newExportTestContext(t, "/calendar/export?start=2025-03-01&end=2025-03-31&format=csv&view=admin")
	h.Download(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExportHandlerAdminCSV(t *testing.T) {
	mockSvc := &exportServiceMock{}
	h := NewExportHandler(mockSvc, &calendarServiceMock{})

	c, w := newExportTestContext(t, "/calendar/export?start=2025-03-01&end=2025-03-31&format=csv&view=admin")
	c.Set(middleware.ContextUserKey, &models.JWTClaims{Email: "admin@sparklabs.com.au", Role: models.RoleAdmin})
	h.Download(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, service.FormatCSV, mockSvc.lastFormat)
	require.Equal(t, service.ViewAdmin, mockSvc.lastView)
}

func TestExportHandlerUnknownFormat(t *testing.T) {
	h := NewExportHandler(&exportServiceMock{}, &calendarServiceMock{})

	c, w := newExportTestContext(t, "/calendar/export?start=2025-03-01&end=2025-03-31&format=xlsx")
	h.Download(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
