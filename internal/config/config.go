// Package config is responsible for setting the program config from the
// config file and command-line arguments
package config

import "github.com/tomato-timer/tomato/internal/engine"

// SoundOff as the sound setting silences the alert. An empty setting uses
// the system beep.
const SoundOff = "off"

type (
	// Config holds all configuration settings.
	Config struct {
		Work          SessionConfig      `mapstructure:"work"`
		ShortBreak    SessionConfig      `mapstructure:"short_break"`
		LongBreak     SessionConfig      `mapstructure:"long_break"`
		Settings      SettingsConfig     `mapstructure:"settings"`
		Notifications NotificationConfig `mapstructure:"notifications"`
		Display       DisplayConfig      `mapstructure:"display"`
		Storage       StorageConfig      `mapstructure:"storage"`
		Log           LogConfig          `mapstructure:"log"`
		CLI           CLIConfig          `mapstructure:"-"`
	}

	// SessionConfig holds the settings of a single timer mode.
	SessionConfig struct {
		Message string `mapstructure:"message"`
		Color   string `mapstructure:"color"`
		Minutes int    `mapstructure:"minutes"`
	}

	// SettingsConfig holds general timer settings.
	SettingsConfig struct {
		SessionCmd        string `mapstructure:"session_cmd"`
		LongBreakInterval int    `mapstructure:"long_break_interval"`
		TwentyFourHour    bool   `mapstructure:"24hr_clock"`
	}

	// NotificationConfig holds notification settings.
	NotificationConfig struct {
		Sound   string `mapstructure:"sound"`
		Enabled bool   `mapstructure:"enabled"`
	}

	// DisplayConfig holds display-related settings.
	DisplayConfig struct {
		DarkTheme bool `mapstructure:"dark_theme"`
	}

	// StorageConfig selects the persistence backend.
	StorageConfig struct {
		Driver string `mapstructure:"driver"`
	}

	// LogConfig controls the log file.
	LogConfig struct {
		Level      string `mapstructure:"level"`
		MaxSizeMB  int    `mapstructure:"max_size_mb"`
		MaxBackups int    `mapstructure:"max_backups"`
	}

	// CLIConfig holds options that only make sense for a single run and are
	// never written to the config file.
	CLIConfig struct {
		TaskID string
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

const Version = "v0.3.0"

// New creates a new Config by applying opts in order and validating the
// result.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}

// Timer returns the timer durations as an engine configuration.
func (c *Config) Timer() engine.Config {
	return engine.Config{
		WorkMinutes:       c.Work.Minutes,
		ShortBreakMinutes: c.ShortBreak.Minutes,
		LongBreakMinutes:  c.LongBreak.Minutes,
		LongBreakInterval: c.Settings.LongBreakInterval,
	}
}

// Session returns the settings for mode m.
func (c *Config) Session(m engine.Mode) SessionConfig {
	switch m {
	case engine.ShortBreak:
		return c.ShortBreak
	case engine.LongBreak:
		return c.LongBreak
	default:
		return c.Work
	}
}
