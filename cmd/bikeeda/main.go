// Command bikeeda loads a bike-sharing rental dataset, prints its
// diagnostics, derives the calendar and label columns and renders the
// exploratory charts to image files.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/jengzang/bikeshare-eda/internal/charts"
	"github.com/jengzang/bikeshare-eda/internal/config"
	"github.com/jengzang/bikeshare-eda/internal/dataset"
	"github.com/jengzang/bikeshare-eda/internal/features"
	"github.com/jengzang/bikeshare-eda/internal/logging"
	"github.com/jengzang/bikeshare-eda/internal/models"
	"github.com/jengzang/bikeshare-eda/internal/report"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		slog.Error("bikeeda failed", "error", err)
		os.Exit(1)
	}
}

// run parses args, then loads, reports and renders. Diagnostics go to
// stdout and logs to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	logger := logging.NewWithWriter(stderr, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	res, err := dataset.Load(ctx, cfg.DataPath, dataset.Options{Sheet: cfg.Sheet, Table: cfg.Table})
	if err != nil {
		return err
	}

	report.PrintShape(stdout, res.Frame)
	report.PrintHead(stdout, res.Frame, cfg.HeadRows)
	report.PrintDtypes(stdout, res.Frame)

	table, err := features.Derive(res.Records, features.Options{
		StrictLabels: cfg.StrictLabels,
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("failed to derive features: %w", err)
	}
	table.Source = res.Source

	report.PrintTableHead(stdout, table, cfg.HeadRows)
	report.PrintDescribe(stdout, table)
	report.PrintMissing(stdout, table)

	registry := charts.DefaultRegistry()
	names := cfg.ChartNames(registry.Names())
	for _, name := range names {
		if _, err := registry.Lookup(name); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	opts := charts.Options{Bins: cfg.Bins}
	for _, name := range names {
		path := filepath.Join(cfg.OutputDir, name+"."+cfg.Format)
		start := time.Now()
		if err := renderFile(ctx, registry, path, name, table, cfg.Format, opts); err != nil {
			return err
		}
		logger.Info("Chart written", "chart", name, "path", path, "elapsed", time.Since(start))
	}
	return nil
}

// renderFile writes one chart, removing the partial file on failure
func renderFile(ctx context.Context, registry *charts.Registry, path, name string, t *models.Table, format string, opts charts.Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	var result *multierror.Error
	if err := registry.Render(ctx, f, name, t, format, opts); err != nil {
		result = multierror.Append(result, err)
	}
	if err := f.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("failed to close %s: %w", path, err))
	}
	if err := result.ErrorOrNil(); err != nil {
		_ = os.Remove(path)
		return err
	}
	return nil
}

// parseFlags loads the config and applies the flags that were set
func parseFlags(args []string, stderr io.Writer) (*config.Config, error) {
	fs := flag.NewFlagSet("bikeeda", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "path to a YAML config file")
	data := fs.String("data", "", "dataset path (.csv, .xlsx, .db)")
	chart := fs.String("chart", "", "chart name, comma separated names or \"all\"")
	out := fs.String("out", "", "output directory")
	format := fs.String("format", "", "image format (png, svg, pdf, jpg, tif)")
	strict := fs.Bool("strict-labels", false, "fail on season/weather/holiday codes without a label")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data":
			cfg.DataPath = *data
		case "chart":
			cfg.Chart = *chart
		case "out":
			cfg.OutputDir = *out
		case "format":
			cfg.Format = strings.ToLower(*format)
		case "strict-labels":
			cfg.StrictLabels = *strict
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
