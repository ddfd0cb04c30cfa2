package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment override, e.g. BIKE_DATA_PATH
const EnvPrefix = "BIKE"

// ChartAll selects every registered chart
const ChartAll = "all"

var supportedFormats = map[string]bool{
	"png": true, "svg": true, "pdf": true, "jpg": true, "jpeg": true, "tif": true, "tiff": true,
}

// Config 应用配置
type Config struct {
	// Input
	DataPath string `yaml:"data_path" split_words:"true"`
	Sheet    string `yaml:"sheet" split_words:"true"` // xlsx sheet, first sheet when empty
	Table    string `yaml:"table" split_words:"true"` // sqlite table

	// Output
	OutputDir string `yaml:"output_dir" split_words:"true"`
	Format    string `yaml:"format" split_words:"true"`
	Chart     string `yaml:"chart" split_words:"true"`

	// Analysis
	HeadRows     int  `yaml:"head_rows" split_words:"true"`
	Bins         int  `yaml:"bins" split_words:"true"`
	StrictLabels bool `yaml:"strict_labels" split_words:"true"`

	// Server
	Port        string `yaml:"port" split_words:"true"`
	RenderLimit int    `yaml:"render_limit" split_words:"true"` // chart renders per client per minute

	// Logging
	LogLevel  string `yaml:"log_level" split_words:"true"`
	LogFormat string `yaml:"log_format" split_words:"true"`
}

// NewConfig returns the built-in defaults
func NewConfig() *Config {
	return &Config{
		DataPath:    "bike.csv",
		Table:       "bike",
		OutputDir:   "charts",
		Format:      "png",
		Chart:       "correlation",
		HeadRows:    3,
		Bins:        6,
		Port:        ":8080",
		RenderLimit: 30,
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// Load 加载配置: defaults, then the YAML file at path (if any), then .env,
// then BIKE_* environment variables.
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg.Format = strings.ToLower(cfg.Format)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid field at once
func (c *Config) Validate() error {
	var result *multierror.Error

	if strings.TrimSpace(c.DataPath) == "" {
		result = multierror.Append(result, errors.New("data_path must not be empty"))
	}
	if !supportedFormats[strings.ToLower(c.Format)] {
		result = multierror.Append(result, fmt.Errorf("unsupported chart format %q", c.Format))
	}
	if c.Chart == "" {
		result = multierror.Append(result, errors.New("chart must not be empty"))
	}
	if c.HeadRows < 0 {
		result = multierror.Append(result, fmt.Errorf("head_rows must be >= 0, got %d", c.HeadRows))
	}
	if c.Bins < 1 {
		result = multierror.Append(result, fmt.Errorf("bins must be >= 1, got %d", c.Bins))
	}
	if c.RenderLimit < 1 {
		result = multierror.Append(result, fmt.Errorf("render_limit must be >= 1, got %d", c.RenderLimit))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		result = multierror.Append(result, fmt.Errorf("unsupported log format %q", c.LogFormat))
	}

	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ChartNames expands the Chart setting into the list of charts to render
func (c *Config) ChartNames(registered []string) []string {
	if c.Chart == ChartAll {
		return registered
	}
	var names []string
	for _, n := range strings.Split(c.Chart, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}
