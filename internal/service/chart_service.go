package service

import (
	"bytes"
	"context"
	"strings"
	"sync"

	"github.com/jengzang/bikeshare-eda/internal/charts"
	"github.com/jengzang/bikeshare-eda/internal/models"
)

var contentTypes = map[string]string{
	"png":  "image/png",
	"svg":  "image/svg+xml",
	"pdf":  "application/pdf",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
}

// ContentType returns the MIME type of a chart format
func ContentType(format string) string {
	if ct, ok := contentTypes[strings.ToLower(format)]; ok {
		return ct
	}
	return "application/octet-stream"
}

// ChartService renders charts of the enriched table. The table never
// changes, so every rendered figure is cached by name and format.
type ChartService struct {
	registry *charts.Registry
	table    *models.Table
	opts     charts.Options

	mu    sync.Mutex
	cache map[string][]byte
}

// NewChartService creates a new chart service
func NewChartService(registry *charts.Registry, table *models.Table, opts charts.Options) *ChartService {
	return &ChartService{
		registry: registry,
		table:    table,
		opts:     opts,
		cache:    make(map[string][]byte),
	}
}

// List returns the registered charts
func (s *ChartService) List() []charts.Chart {
	return s.registry.Charts()
}

// Render returns the encoded figure of the named chart
func (s *ChartService) Render(ctx context.Context, name, format string) ([]byte, error) {
	format = strings.ToLower(format)
	key := name + "." + format

	s.mu.Lock()
	defer s.mu.Unlock()

	if data, ok := s.cache[key]; ok {
		return data, nil
	}

	var buf bytes.Buffer
	if err := s.registry.Render(ctx, &buf, name, s.table, format, s.opts); err != nil {
		return nil, err
	}
	s.cache[key] = buf.Bytes()
	return buf.Bytes(), nil
}
