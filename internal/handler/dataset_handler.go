package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/bikeshare-eda/internal/service"
	"github.com/jengzang/bikeshare-eda/pkg/response"
)

// DatasetHandler handles HTTP requests for the loaded dataset
type DatasetHandler struct {
	service  *service.DatasetService
	headRows int
}

// NewDatasetHandler creates a new dataset handler
func NewDatasetHandler(service *service.DatasetService, headRows int) *DatasetHandler {
	return &DatasetHandler{service: service, headRows: headRows}
}

// GetSummary returns shape and column types
// GET /api/v1/dataset/summary
func (h *DatasetHandler) GetSummary(c *gin.Context) {
	response.Success(c, h.service.Summary())
}

// GetHead returns the first n enriched rows
// GET /api/v1/dataset/head?n=3
func (h *DatasetHandler) GetHead(c *gin.Context) {
	n := h.headRows
	if s := c.Query("n"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid n parameter")
			return
		}
		n = v
	}

	rows, err := h.service.Head(n)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, rows)
}
