package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/seu-repo/brace-tracker/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DataDir != "bt-bracedata" {
		t.Errorf("data dir = %q", cfg.DataDir)
	}
	if cfg.Analysis.UsageThresholdHoursPerDay != 16.0 {
		t.Errorf("usage threshold = %v", cfg.Analysis.UsageThresholdHoursPerDay)
	}
	if cfg.Analysis.TemperatureThresholdFahrenheit != 90.0 {
		t.Errorf("temperature threshold = %v", cfg.Analysis.TemperatureThresholdFahrenheit)
	}
	if cfg.Analysis.WindowDays != 7 {
		t.Errorf("window days = %d", cfg.Analysis.WindowDays)
	}
	if cfg.Report.Color != "auto" {
		t.Errorf("color = %q", cfg.Report.Color)
	}
}

func TestLoad_FromTOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brace-tracker.toml")
	content := `data_dir = "/var/lib/braces"

[analysis]
usage_threshold_hours_per_day = 18.5
temperature_threshold_fahrenheit = 88.0
window_days = 14
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DataDir != "/var/lib/braces" {
		t.Errorf("data dir = %q", cfg.DataDir)
	}
	if cfg.Analysis.UsageThresholdHoursPerDay != 18.5 {
		t.Errorf("usage threshold = %v", cfg.Analysis.UsageThresholdHoursPerDay)
	}
	if cfg.Analysis.WindowDays != 14 {
		t.Errorf("window days = %d", cfg.Analysis.WindowDays)
	}
	// Untouched sections keep their defaults.
	if cfg.HTTP.Port != 8080 {
		t.Errorf("http port = %d", cfg.HTTP.Port)
	}
}

func TestLoad_InvalidValuesAreFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brace-tracker.toml")
	content := "[analysis]\nwindow_days = 0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); !errors.Is(err, domain.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("an explicit config path that does not exist must fail")
	}
}

func TestAnalysisConfig_Validate(t *testing.T) {
	cfg := DefaultAnalysisConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}

	cfg.UsageThresholdHoursPerDay = 24.0
	if err := cfg.Validate(); err != nil {
		t.Errorf("24 hr/day is a legal (if harsh) target: %v", err)
	}
}
