package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sparklabs-au/ignite-api/internal/dto"
	"github.com/sparklabs-au/ignite-api/internal/middleware"
	"github.com/sparklabs-au/ignite-api/internal/models"
	"github.com/sparklabs-au/ignite-api/internal/service"
	"github.com/sparklabs-au/ignite-api/internal/timezone"
	appErrors "github.com/sparklabs-au/ignite-api/pkg/errors"
	"github.com/sparklabs-au/ignite-api/pkg/response"
)

type calendarService interface {
	ParseRange(startRaw, endRaw string) (timezone.Date, timezone.Date, error)
	ListEvents(ctx context.Context, from, to timezone.Date, view service.View) ([]dto.CalendarEvent, error)
}

// CalendarHandler exposes the calendar event listing.
type CalendarHandler struct {
	service calendarService
}

// NewCalendarHandler constructs the handler.
func NewCalendarHandler(service calendarService) *CalendarHandler {
	return &CalendarHandler{service: service}
}

// List godoc
// @Summary List calendar events for a date range
// @Tags Calendar
// @Produce json
// @Param start query string true "Range start (YYYY-MM-DD, inclusive)"
// @Param end query string true "Range end (YYYY-MM-DD, inclusive)"
// @Param view query string false "Projection: public (default) or admin"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /calendar/events [get]
func (h *CalendarHandler) List(c *gin.Context) {
	view, err := resolveView(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	from, to, err := h.service.ParseRange(c.Query("start"), c.Query("end"))
	if err != nil {
		response.Error(c, err)
		return
	}

	events, err := h.service.ListEvents(c.Request.Context(), from, to, view)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, events, map[string]interface{}{
		"count": len(events),
		"view":  string(view),
	})
}

// resolveView parses the view parameter and enforces that the admin
// projection is only served to an authenticated admin.
func resolveView(c *gin.Context) (service.View, error) {
	view, err := service.ParseView(c.Query("view"))
	if err != nil {
		return "", err
	}
	if view != service.ViewAdmin {
		return view, nil
	}

	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return "", appErrors.Clone(appErrors.ErrUnauthorized, "admin view requires authentication")
	}
	if claims.Role != models.RoleAdmin {
		return "", appErrors.ErrForbidden
	}
	return view, nil
}
