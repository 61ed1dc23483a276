package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is the prefix of every environment variable read by Load,
// e.g. PPA_INPUT_XLSX or PPA_LOGGING_LEVEL.
const EnvPrefix = "PPA"

// Config represents the complete run configuration
type Config struct {
	Input   InputConfig   `yaml:"input" envconfig:"INPUT"`
	Output  OutputConfig  `yaml:"output" envconfig:"OUTPUT"`
	Chart   ChartConfig   `yaml:"chart" envconfig:"CHART"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// InputConfig locates the source range
type InputConfig struct {
	Path  string `yaml:"path" envconfig:"XLSX"`
	Sheet string `yaml:"sheet" envconfig:"SHEET"`
	Range string `yaml:"range" envconfig:"RANGE"`
	// Regions, when set, must match the region headers of the range
	// exactly and in order.
	Regions []string `yaml:"regions" envconfig:"REGIONS"`
	// CheckHeaders compares the normalized date/capacity/price headers
	// against ExpectedHeaders.
	CheckHeaders    bool     `yaml:"check_headers" envconfig:"CHECK_HEADERS"`
	ExpectedHeaders []string `yaml:"expected_headers" envconfig:"EXPECTED_HEADERS"`
	Date1904        bool     `yaml:"date_1904" envconfig:"DATE_1904"`
	// LongCSV re-enters the pipeline from a previously exported long table
	// instead of the workbook.
	LongCSV string `yaml:"long_csv" envconfig:"FROM_CSV"`
}

// OutputConfig names the files a run writes. Empty file names are skipped.
type OutputConfig struct {
	Dir      string `yaml:"dir" envconfig:"DIR"`
	LongCSV  string `yaml:"long_csv" envconfig:"LONG_CSV"`
	Workbook string `yaml:"workbook" envconfig:"WORKBOOK"`
	Report   string `yaml:"report" envconfig:"REPORT"`
	Figure   string `yaml:"figure" envconfig:"FIGURE"`
	// SplitCharts also saves each chart as its own image.
	SplitCharts bool `yaml:"split_charts" envconfig:"SPLIT_CHARTS"`
}

// ChartConfig sizes the composed figure, in inches.
type ChartConfig struct {
	Width  float64 `yaml:"width" envconfig:"WIDTH"`
	Height float64 `yaml:"height" envconfig:"HEIGHT"`
	Title  string  `yaml:"title" envconfig:"TITLE"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Encoding string `yaml:"encoding" envconfig:"ENCODING"`
}

// Default returns the configuration used when neither a file nor the
// environment says otherwise.
func Default() Config {
	return Config{
		Input: InputConfig{
			Path:            "solar_ppa.xlsx",
			Sheet:           "Data",
			Range:           "A1:M300",
			CheckHeaders:    true,
			ExpectedHeaders: []string{"execution_date", "capacity_mw", "price"},
		},
		Output: OutputConfig{
			Dir:         "out",
			LongCSV:     "solar_ppa_long.csv",
			Workbook:    "solar_ppa_summary.xlsx",
			Report:      "solar_ppa_summary.md",
			Figure:      "solar_ppa_dashboard.png",
			SplitCharts: true,
		},
		Chart: ChartConfig{
			Width:  18,
			Height: 10,
			Title:  "Utility-Scale Solar PPA Prices and Capacity",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "json",
		},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (if path is non-empty), then PPA_* environment variables. Later sources
// win.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// No default tags: envconfig leaves unset variables alone.
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Input.LongCSV == "" {
		if c.Input.Path == "" {
			return errors.New("input path is required")
		}
		if c.Input.Sheet == "" {
			return errors.New("input sheet is required")
		}
		if !strings.Contains(c.Input.Range, ":") {
			return fmt.Errorf("input range %q must be of the form A1:M300", c.Input.Range)
		}
		if c.Input.CheckHeaders && len(c.Input.ExpectedHeaders) != 3 {
			return fmt.Errorf("expected_headers must name the date, capacity and price columns, got %d", len(c.Input.ExpectedHeaders))
		}
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("chart size must be positive, got %gx%g", c.Chart.Width, c.Chart.Height)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	switch c.Logging.Encoding {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log encoding: %s", c.Logging.Encoding)
	}
	return nil
}
