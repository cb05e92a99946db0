package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sparklabs-au/ignite-api/internal/models"
	"github.com/sparklabs-au/ignite-api/pkg/response"
)

type sessionService interface {
	List() []models.SessionDefinition
	Get(id string) (models.SessionDefinition, error)
}

// SessionHandler exposes the configured session definitions.
type SessionHandler struct {
	service sessionService
}

// NewSessionHandler constructs the handler.
func NewSessionHandler(service sessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

// List godoc
// @Summary List configured recurring sessions
// @Tags Sessions
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /sessions [get]
func (h *SessionHandler) List(c *gin.Context) {
	sessions := h.service.List()
	response.JSON(c, http.StatusOK, sessions, map[string]interface{}{"count": len(sessions)})
}

// Get godoc
// @Summary Get one session definition
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	def, err := h.service.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, def)
}
