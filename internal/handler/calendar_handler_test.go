package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/sparklabs-au/ignite-api/internal/dto"
	"github.com/sparklabs-au/ignite-api/internal/middleware"
	"github.com/sparklabs-au/ignite-api/internal/models"
	"github.com/sparklabs-au/ignite-api/internal/service"
	"github.com/sparklabs-au/ignite-api/internal/timezone"
	appErrors "github.com/sparklabs-au/ignite-api/pkg/errors"
)

type calendarServiceMock struct {
	events   []dto.CalendarEvent
	err      error
	lastView service.View
}

func (m *calendarServiceMock) ParseRange(startRaw, endRaw string) (timezone.Date, timezone.Date, error) {
	from, err := timezone.ParseDate(startRaw)
	if err != nil {
		return timezone.Date{}, timezone.Date{}, appErrors.Clone(appErrors.ErrInvalidRange, "start must be a yyyy-MM-dd date")
	}
	to, err := timezone.ParseDate(endRaw)
	if err != nil {
		return timezone.Date{}, timezone.Date{}, appErrors.Clone(appErrors.ErrInvalidRange, "end must be a yyyy-MM-dd date")
	}
	return from, to, nil
}

func (m *calendarServiceMock) ListEvents(ctx context.Context, from, to timezone.Date, view service.View) ([]dto.CalendarEvent, error) {
	m.lastView = view
	if m.err != nil {
		return nil, m.err
	}
	return m.events, nil
}

func newCalendarTestContext(t *testing.T, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodGet, target, nil)
	require.NoError(t, err)
	c.Request = req
	return c, w
}

func TestCalendarHandlerPublicList(t *testing.T) {
	mockSvc := &calendarServiceMock{events: []dto.CalendarEvent{{ID: "lane-cove-wed-2025-03-05", Title: "Lane Cove"}}}
	h := NewCalendarHandler(mockSvc)

	c, w := newCalendarTestContext(t, "/calendar/events?start=2025-03-01&end=2025-03-31")
	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, service.ViewPublic, mockSvc.lastView)

	var envelope struct {
		Data []dto.CalendarEvent        `json:"data"`
		Meta map[string]json.RawMessage `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	require.Equal(t, "lane-cove-wed-2025-03-05", envelope.Data[0].ID)
}

func TestCalendarHandlerAdminViewRequiresAuth(t *testing.T) {
	h := NewCalendarHandler(&calendarServiceMock{})

	c, w := newCalendarTestContext(t, "/calendar/events?start=2025-03-01&end=2025-03-31&view=admin")
	h.List(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCalendarHandlerAdminViewWithClaims(t *testing.T) {
	mockSvc := &calendarServiceMock{}
	h := NewCalendarHandler(mockSvc)

	c, w := newCalendarTestContext(t, "/calendar/events?start=2025-03-01&end=2025-03-31&view=admin")
	c.Set(middleware.ContextUserKey, &models.JWTClaims{Email: "admin@sparklabs.com.au", Role: models.RoleAdmin})
	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, service.ViewAdmin, mockSvc.lastView)
}

func TestCalendarHandlerAdminViewWrongRole(t *testing.T) {
	h := NewCalendarHandler(&calendarServiceMock{})

	c, w := newCalendarTestContext(t, "/calendar/events?start=2025-03-01&end=2025-03-31&view=admin")
	c.Set(middleware.ContextUserKey, &models.JWTClaims{Email: "someone@example.com", Role: models.UserRole("VIEWER")})
	h.List(c)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestCalendarHandlerRejectsInvalidDates(t *testing.T) {
	h := NewCalendarHandler(&calendarServiceMock{})

	c, w := newCalendarTestContext(t, "/calendar/events?start=bad&end=2025-03-31")
	h.List(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalendarHandlerRejectsUnknownView(t *testing.T) {
	h := NewCalendarHandler(&calendarServiceMock{})

	c, w := newCalendarTestContext(t, "/calendar/events?start=2025-03-01&end=2025-03-31&view=superuser")
	h.List(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
