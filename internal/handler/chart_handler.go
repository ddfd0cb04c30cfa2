package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/bikeshare-eda/internal/charts"
	"github.com/jengzang/bikeshare-eda/internal/service"
	"github.com/jengzang/bikeshare-eda/pkg/response"
)

// ChartHandler handles HTTP requests for rendered charts
type ChartHandler struct {
	service       *service.ChartService
	defaultFormat string
}

// NewChartHandler creates a new chart handler
func NewChartHandler(service *service.ChartService, defaultFormat string) *ChartHandler {
	return &ChartHandler{service: service, defaultFormat: defaultFormat}
}

// ListCharts returns the registered charts
// GET /api/v1/charts
func (h *ChartHandler) ListCharts(c *gin.Context) {
	response.Success(c, h.service.List())
}

// GetChart renders one chart as an image
// GET /api/v1/charts/:name?format=png
func (h *ChartHandler) GetChart(c *gin.Context) {
	name := c.Param("name")
	format := c.DefaultQuery("format", h.defaultFormat)

	data, err := h.service.Render(c.Request.Context(), name, format)
	switch {
	case err == nil:
	case errors.Is(err, charts.ErrUnknownChart):
		response.NotFound(c, err.Error())
		return
	case errors.Is(err, charts.ErrUnsupportedFormat), errors.Is(err, charts.ErrNoData):
		response.BadRequest(c, err.Error())
		return
	default:
		slog.ErrorContext(c.Request.Context(), "Failed to render chart", "chart", name, "error", err)
		_ = c.Error(err)
		response.InternalError(c, "Failed to render chart")
		return
	}

	c.Data(http.StatusOK, service.ContentType(format), data)
}
