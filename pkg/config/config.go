package config

import (
	"fmt"
	"math"
	"time"

	"github.com/seu-repo/brace-tracker/internal/domain"
)

type Config struct {
	DataDir  string         `mapstructure:"data_dir"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Report   ReportConfig   `mapstructure:"report"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// AnalysisConfig carries the thresholds the aggregator and evaluator run
// with. It is always passed explicitly so concurrent runs can use distinct
// values.
type AnalysisConfig struct {
	UsageThresholdHoursPerDay      float64 `mapstructure:"usage_threshold_hours_per_day"`
	TemperatureThresholdFahrenheit float64 `mapstructure:"temperature_threshold_fahrenheit"`
	WindowDays                     int     `mapstructure:"window_days"`
}

type ReportConfig struct {
	Color string `mapstructure:"color"` // auto, always, never
}

type HTTPConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// DefaultAnalysisConfig returns the stock thresholds: 16 hours of wear per
// day, readings above 90 degrees Fahrenheit counting as worn, 7-day window.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		UsageThresholdHoursPerDay:      16.0,
		TemperatureThresholdFahrenheit: 90.0,
		WindowDays:                     7,
	}
}

// Validate rejects thresholds the run cannot proceed with. Violations wrap
// domain.ErrInvalidConfig and are fatal, unlike row/file warnings.
func (c AnalysisConfig) Validate() error {
	if c.WindowDays < 1 {
		return fmt.Errorf("%w: window_days must be at least 1, got %d", domain.ErrInvalidConfig, c.WindowDays)
	}
	if c.UsageThresholdHoursPerDay < 0 || c.UsageThresholdHoursPerDay > 24 {
		return fmt.Errorf("%w: usage_threshold_hours_per_day must be within [0, 24], got %g", domain.ErrInvalidConfig, c.UsageThresholdHoursPerDay)
	}
	if math.IsNaN(c.TemperatureThresholdFahrenheit) || math.IsInf(c.TemperatureThresholdFahrenheit, 0) {
		return fmt.Errorf("%w: temperature_threshold_fahrenheit must be finite", domain.ErrInvalidConfig)
	}
	return nil
}

func (c *Config) Validate() error {
	if err := c.Analysis.Validate(); err != nil {
		return err
	}
	switch c.Report.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("%w: report color must be auto, always or never, got %q", domain.ErrInvalidConfig, c.Report.Color)
	}
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("%w: http port out of range: %d", domain.ErrInvalidConfig, c.HTTP.Port)
	}
	return nil
}
