package config

import (
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

const (
	minSessionMinutes    = 1
	maxSessionMinutes    = 720
	minLongBreakInterval = 1
	maxLongBreakInterval = 12
)

var (
	hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

	drivers = []string{"bolt", "sqlite"}

	soundExts = []string{".mp3", ".ogg", ".flac", ".wav"}
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	sessions := []struct {
		name string
		sc   SessionConfig
	}{
		{"work", c.Work},
		{"short break", c.ShortBreak},
		{"long break", c.LongBreak},
	}

	for _, s := range sessions {
		if err := validateSession(s.name, s.sc); err != nil {
			return err
		}
	}

	if c.Settings.LongBreakInterval < minLongBreakInterval ||
		c.Settings.LongBreakInterval > maxLongBreakInterval {
		return errInvalidLongBreakInterval.Fmt(
			minLongBreakInterval,
			maxLongBreakInterval,
			c.Settings.LongBreakInterval,
		)
	}

	if !slices.Contains(drivers, c.Storage.Driver) {
		return errUnknownDriver.Fmt(c.Storage.Driver)
	}

	if c.Notifications.Sound != "" && c.Notifications.Sound != SoundOff {
		ext := strings.ToLower(filepath.Ext(c.Notifications.Sound))
		if !slices.Contains(soundExts, ext) {
			return errInvalidSoundFormat.Fmt(c.Notifications.Sound)
		}
	}

	return nil
}

func validateSession(name string, sc SessionConfig) error {
	if sc.Minutes < minSessionMinutes || sc.Minutes > maxSessionMinutes {
		return errInvalidDuration.Fmt(
			name,
			minSessionMinutes,
			maxSessionMinutes,
			sc.Minutes,
		)
	}

	if strings.TrimSpace(sc.Message) == "" {
		return errEmptyMsg.Fmt(name)
	}

	if !hexColorRegex.MatchString(sc.Color) {
		return errInvalidColor.Fmt(name, sc.Color)
	}

	return nil
}
