package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sparklabs-au/ignite-api/internal/service"
	"github.com/sparklabs-au/ignite-api/internal/timezone"
	"github.com/sparklabs-au/ignite-api/pkg/response"
)

type exportService interface {
	Export(ctx context.Context, from, to timezone.Date, format service.ExportFormat, view service.View) (*service.ExportResult, error)
}

type rangeParser interface {
	ParseRange(startRaw, endRaw string) (timezone.Date, timezone.Date, error)
}

// ExportHandler serves downloadable calendar documents.
type ExportHandler struct {
	exports exportService
	ranges  rangeParser
}

// NewExportHandler constructs the handler.
func NewExportHandler(exports exportService, ranges rangeParser) *ExportHandler {
	return &ExportHandler{exports: exports, ranges: ranges}
}

// Download godoc
// @Summary Export the calendar as csv, pdf or ics
// @Tags Calendar
// @Produce octet-stream
// @Param start query string true "Range start (YYYY-MM-DD, inclusive)"
// @Param end query string true "Range end (YYYY-MM-DD, inclusive)"
// @Param format query string false "Export format: ics (default), csv or pdf"
// @Param view query string false "Projection: public (default) or admin"
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /calendar/export [get]
func (h *ExportHandler) Download(c *gin.Context) {
	view, err := resolveView(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	formatRaw := c.Query("format")
	if formatRaw == "" {
		formatRaw = string(service.FormatICS)
	}
	format, err := service.ParseExportFormat(formatRaw)
	if err != nil {
		response.Error(c, err)
		return
	}

	from, to, err := h.ranges.ParseRange(c.Query("start"), c.Query("end"))
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.exports.Export(c.Request.Context(), from, to, format, view)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}
