package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/bikeshare-eda/internal/service"
	"github.com/jengzang/bikeshare-eda/pkg/response"
)

// StatsHandler handles HTTP requests for descriptive statistics
type StatsHandler struct {
	service *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(service *service.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// GetCorrelation returns the numeric correlation matrix
// GET /api/v1/stats/correlation
func (h *StatsHandler) GetCorrelation(c *gin.Context) {
	response.Success(c, h.service.Correlation())
}

// GetDescribe returns summary statistics of numeric columns
// GET /api/v1/stats/describe
func (h *StatsHandler) GetDescribe(c *gin.Context) {
	response.Success(c, h.service.Describe())
}

// GetBox returns box plot statistics of count grouped by a category
// GET /api/v1/stats/box?by=season
func (h *StatsHandler) GetBox(c *gin.Context) {
	by := c.DefaultQuery("by", "season")

	boxes, err := h.service.Box(by)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, boxes)
}
