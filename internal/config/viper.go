package config

import (
	"errors"
	"log/slog"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/tomato-timer/tomato/internal/engine"
)

const (
	keyWorkMinutes          = "work.minutes"
	keyWorkMessage          = "work.message"
	keyWorkColor            = "work.color"
	keyShortBreakMinutes    = "short_break.minutes"
	keyShortBreakMessage    = "short_break.message"
	keyShortBreakColor      = "short_break.color"
	keyLongBreakMinutes     = "long_break.minutes"
	keyLongBreakMessage     = "long_break.message"
	keyLongBreakColor       = "long_break.color"
	keyLongBreakInterval    = "settings.long_break_interval"
	keySessionCmd           = "settings.session_cmd"
	keyTwentyFourHour       = "settings.24hr_clock"
	keyNotificationsEnabled = "notifications.enabled"
	keyNotificationSound    = "notifications.sound"
	keyDarkTheme            = "display.dark_theme"
	keyStorageDriver        = "storage.driver"
	keyLogLevel             = "log.level"
	keyLogMaxSize           = "log.max_size_mb"
	keyLogMaxBackups        = "log.max_backups"
)

// WithViperConfig returns an Option that loads configuration from the YAML
// file at configPath, writing a default file if none exists.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := newViper(configPath, c)

		err := v.ReadInConfig()
		if err == nil {
			return v.Unmarshal(c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return v.Unmarshal(c)
	}
}

// newViper configures a Viper instance with defaults. Durations already
// present in c (from the first-run prompt) take the place of the stock
// defaults.
func newViper(configPath string, c *Config) *viper.Viper {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetDefault(keyWorkMinutes, firstPositive(c.Work.Minutes, engine.DefaultWorkMinutes))
	v.SetDefault(keyWorkMessage, "Focus on your task")
	v.SetDefault(keyWorkColor, "#B0DB43")
	v.SetDefault(keyShortBreakMinutes, firstPositive(c.ShortBreak.Minutes, engine.DefaultShortBreakMinutes))
	v.SetDefault(keyShortBreakMessage, "Take a breather")
	v.SetDefault(keyShortBreakColor, "#12EAEA")
	v.SetDefault(keyLongBreakMinutes, firstPositive(c.LongBreak.Minutes, engine.DefaultLongBreakMinutes))
	v.SetDefault(keyLongBreakMessage, "Take a long break")
	v.SetDefault(keyLongBreakColor, "#C492B1")
	v.SetDefault(keyLongBreakInterval, firstPositive(c.Settings.LongBreakInterval, engine.DefaultLongBreakInterval))
	v.SetDefault(keySessionCmd, "")
	v.SetDefault(keyTwentyFourHour, false)
	v.SetDefault(keyNotificationsEnabled, true)
	v.SetDefault(keyNotificationSound, "")
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyStorageDriver, "bolt")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogMaxSize, 5)
	v.SetDefault(keyLogMaxBackups, 3)

	return v
}

// Watch re-reads the config file whenever it changes on disk and passes the
// timer durations that changed to onChange. Edits that leave the durations
// alone do not call onChange. Files that fail validation are logged and
// skipped.
func Watch(
	configPath string,
	logger *slog.Logger,
	onChange func(engine.ConfigPatch),
) {
	v := newViper(configPath, &Config{})

	if err := v.ReadInConfig(); err != nil {
		logger.Warn("config watch disabled", slog.Any("error", err))
		return
	}

	var initial Config

	if err := v.Unmarshal(&initial); err != nil {
		logger.Warn("config watch disabled", slog.Any("error", err))
		return
	}

	// OnConfigChange callbacks run one at a time on the watcher goroutine
	last := initial.Timer()

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}

		var c Config

		if err := v.Unmarshal(&c); err != nil {
			logger.Warn("ignoring unreadable config change", slog.Any("error", err))
			return
		}

		if err := c.Validate(); err != nil {
			logger.Warn("ignoring invalid config change", slog.Any("error", err))
			return
		}

		next := c.Timer()

		p := engine.Diff(last, next)
		if p.Empty() {
			logger.Debug("config file changed", slog.String("file", e.Name))
			return
		}

		last = next

		logger.Info(
			"timer settings changed",
			slog.String("file", e.Name),
			slog.Any("patch", p),
		)

		onChange(p)
	})

	v.WatchConfig()
}

func firstPositive(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}

	return 0
}
