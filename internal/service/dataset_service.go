package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gota/gota/dataframe"

	"github.com/jengzang/bikeshare-eda/internal/config"
	"github.com/jengzang/bikeshare-eda/internal/dataset"
	"github.com/jengzang/bikeshare-eda/internal/features"
	"github.com/jengzang/bikeshare-eda/internal/models"
)

// ErrInvalidArgument marks a request parameter out of range
var ErrInvalidArgument = errors.New("invalid argument")

// Prepare loads the configured dataset and derives the enriched table
func Prepare(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dataset.LoadResult, *models.Table, error) {
	res, err := dataset.Load(ctx, cfg.DataPath, dataset.Options{Sheet: cfg.Sheet, Table: cfg.Table})
	if err != nil {
		return nil, nil, err
	}

	table, err := features.Derive(res.Records, features.Options{
		StrictLabels: cfg.StrictLabels,
		Logger:       logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to derive features: %w", err)
	}
	table.Source = res.Source
	return res, table, nil
}

// DatasetService answers questions about the loaded dataset
type DatasetService struct {
	table *models.Table
	frame dataframe.DataFrame
}

// NewDatasetService creates a new dataset service
func NewDatasetService(table *models.Table, frame dataframe.DataFrame) *DatasetService {
	return &DatasetService{table: table, frame: frame}
}

// Summary returns the shape and column types of the enriched table
func (s *DatasetService) Summary() *models.DatasetSummary {
	_, rawCols := s.frame.Dims()
	missing := s.table.MissingCounts()

	summary := &models.DatasetSummary{
		Source:     s.table.Source,
		Rows:       s.table.Len(),
		RawColumns: rawCols,
	}
	for _, c := range s.table.Columns() {
		summary.Columns = append(summary.Columns, models.ColumnInfo{
			Name:    c.String(),
			Dtype:   c.Dtype(),
			Derived: c.Derived(),
			Missing: missing[c],
		})
	}
	return summary
}

// Head returns the first n enriched rows keyed by column name
func (s *DatasetService) Head(n int) ([]map[string]any, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: n must be >= 0, got %d", ErrInvalidArgument, n)
	}
	rows := s.table.Head(n)
	out := make([]map[string]any, len(rows))
	for i, r := range rows {
		out[i] = r.Map()
	}
	return out, nil
}
