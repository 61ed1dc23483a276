package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Default(), *cfg)
	assert.Equal(t, "A1:M300", cfg.Input.Range)
	assert.Equal(t, []string{"execution_date", "capacity_mw", "price"}, cfg.Input.ExpectedHeaders)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "solarppa.yaml")
	yamlBody := `
input:
  path: from-file.xlsx
  sheet: FileSheet
  regions: [CAISO, Hawaii]
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yamlBody), 0644))

	t.Setenv("PPA_INPUT_SHEET", "EnvSheet")
	t.Setenv("PPA_CHART_WIDTH", "12.5")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file.xlsx", cfg.Input.Path, "file overrides default")
	assert.Equal(t, "EnvSheet", cfg.Input.Sheet, "env overrides file")
	assert.Equal(t, []string{"CAISO", "Hawaii"}, cfg.Input.Regions)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 12.5, cfg.Chart.Width)
	assert.Equal(t, "A1:M300", cfg.Input.Range, "untouched default")
}

func TestLoadLongCSVEnvKeys(t *testing.T) {
	t.Setenv("LONG_CSV", "stray.csv")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Input.LongCSV, "an unprefixed LONG_CSV must not switch on re-entry")
	assert.Equal(t, "stray.csv", cfg.Output.LongCSV)

	t.Setenv("PPA_INPUT_FROM_CSV", "previous.csv")
	t.Setenv("PPA_OUTPUT_LONG_CSV", "next.csv")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "previous.csv", cfg.Input.LongCSV)
	assert.Equal(t, "next.csv", cfg.Output.LongCSV)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"no path", func(c *Config) { c.Input.Path = "" }, true},
		{"no path with long csv", func(c *Config) { c.Input.Path = ""; c.Input.LongCSV = "long.csv" }, false},
		{"bad range", func(c *Config) { c.Input.Range = "A1" }, true},
		{"short headers", func(c *Config) { c.Input.ExpectedHeaders = []string{"date"} }, true},
		{"headers unchecked", func(c *Config) { c.Input.CheckHeaders = false; c.Input.ExpectedHeaders = nil }, false},
		{"zero width", func(c *Config) { c.Chart.Width = 0 }, true},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"bad encoding", func(c *Config) { c.Logging.Encoding = "xml" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
