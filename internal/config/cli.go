package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/tomato-timer/tomato/internal/engine"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Work              string
	ShortBreak        string
	LongBreak         string
	Sound             string
	SessionCmd        string
	TaskID            string
	LongBreakInterval int
	DisableNotify     bool
}

// WithCLIConfig returns an Option that overrides configuration from CLI
// flags. Unset flags leave the current values alone.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Work:              ctx.String("work"),
			ShortBreak:        ctx.String("short-break"),
			LongBreak:         ctx.String("long-break"),
			LongBreakInterval: ctx.Int("long-break-interval"),
			Sound:             ctx.String("sound"),
			SessionCmd:        ctx.String("session-cmd"),
			TaskID:            ctx.String("task"),
			DisableNotify:     ctx.Bool("disable-notification"),
		}

		return applyCLIOptions(c, opts)
	}
}

func applyCLIOptions(c *Config, opts CLIOptions) error {
	durations := []struct {
		dest *int
		val  string
		mode engine.Mode
	}{
		{&c.Work.Minutes, opts.Work, engine.Work},
		{&c.ShortBreak.Minutes, opts.ShortBreak, engine.ShortBreak},
		{&c.LongBreak.Minutes, opts.LongBreak, engine.LongBreak},
	}

	for _, d := range durations {
		if d.val == "" {
			continue
		}

		mins, err := parseMinutes(d.val)
		if err != nil {
			return errInvalidCLIDuration.Fmt(d.mode.Label(), d.val)
		}

		*d.dest = mins
	}

	if opts.LongBreakInterval > 0 {
		c.Settings.LongBreakInterval = opts.LongBreakInterval
	}

	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}

	if opts.Sound != "" {
		c.Notifications.Sound = opts.Sound
	}

	if opts.SessionCmd != "" {
		c.Settings.SessionCmd = opts.SessionCmd
	}

	c.CLI.TaskID = strings.TrimSpace(opts.TaskID)

	return nil
}

// parseMinutes accepts a bare number of minutes ("25") or a Go duration
// that is a whole number of minutes ("25m", "1h30m").
func parseMinutes(s string) (int, error) {
	s = strings.TrimSpace(s)

	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}

	if d%time.Minute != 0 {
		return 0, errInvalidCLIDuration
	}

	return int(d / time.Minute), nil
}
