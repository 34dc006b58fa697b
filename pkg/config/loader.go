package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load reads brace-tracker.toml plus environment overrides. An empty path
// searches the working directory and ./configs; a missing file there is fine
// and the defaults apply. An explicit path that does not exist is an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("brace-tracker")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix("BT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Allow common env vars without the BT_ prefix for container deploys
	v.BindEnv("data_dir", "DATA_DIR", "BT_DATA_DIR")
	v.BindEnv("http.port", "HTTP_PORT", "BT_HTTP_PORT")
	v.BindEnv("logging.level", "LOG_LEVEL", "BT_LOGGING_LEVEL")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := DefaultAnalysisConfig()

	v.SetDefault("data_dir", "bt-bracedata")
	v.SetDefault("analysis.usage_threshold_hours_per_day", defaults.UsageThresholdHoursPerDay)
	v.SetDefault("analysis.temperature_threshold_fahrenheit", defaults.TemperatureThresholdFahrenheit)
	v.SetDefault("analysis.window_days", defaults.WindowDays)
	v.SetDefault("report.color", "auto")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.read_timeout", "30s")
	v.SetDefault("http.write_timeout", "30s")
	v.SetDefault("logging.level", "info")
}
