package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/tomato-timer/tomato/internal/engine"
)

const asciiLogo = `
████████╗ ██████╗ ███╗   ███╗ █████╗ ████████╗ ██████╗
╚══██╔══╝██╔═══██╗████╗ ████║██╔══██╗╚══██╔══╝██╔═══██╗
   ██║   ██║   ██║██╔████╔██║███████║   ██║   ██║   ██║
   ██║   ██║   ██║██║╚██╔╝██║██╔══██║   ██║   ██║   ██║
   ██║   ╚██████╔╝██║ ╚═╝ ██║██║  ██║   ██║   ╚██████╔╝
   ╚═╝    ╚═════╝ ╚═╝     ╚═╝╚═╝  ╚═╝   ╚═╝    ╚═════╝`

// PromptOptions holds the user's responses to the first-run prompts.
type PromptOptions struct {
	WorkMinutes       int
	ShortBreakMinutes int
	LongBreakMinutes  int
	LongBreakInterval int
}

// WithPromptConfig returns an Option that asks for the timer durations when
// no config file exists yet. The answers become the defaults written to the
// new file.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		opts, err := promptUser()
		if err != nil {
			return fmt.Errorf("user prompt failed: %w", err)
		}

		opts.apply(c)

		return nil
	}
}

func promptUser() (PromptOptions, error) {
	opts := PromptOptions{
		WorkMinutes:       engine.DefaultWorkMinutes,
		ShortBreakMinutes: engine.DefaultShortBreakMinutes,
		LongBreakMinutes:  engine.DefaultLongBreakMinutes,
		LongBreakInterval: engine.DefaultLongBreakInterval,
	}

	pterm.Println(asciiLogo)

	_ = putils.BulletListFromString(`Follow the prompts below to set up Tomato for the first time.
Select your preferred value, or press ENTER to accept the defaults.
Run 'tomato edit-config' later to change any settings.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			minutesSelect("Work session length", &opts.WorkMinutes, 25, 35, 50, 60, 90),
		),
		huh.NewGroup(
			minutesSelect("Short break length", &opts.ShortBreakMinutes, 5, 10, 15, 20),
		),
		huh.NewGroup(
			minutesSelect("Long break length", &opts.LongBreakMinutes, 15, 20, 30, 45),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Work sessions before a long break").
				Options(
					huh.NewOption("2 sessions", 2),
					huh.NewOption("3 sessions", 3),
					huh.NewOption("4 sessions", 4).Selected(true),
					huh.NewOption("6 sessions", 6),
				).
				Value(&opts.LongBreakInterval),
		),
	)

	if err := form.Run(); err != nil {
		return opts, fmt.Errorf("form interaction failed: %w", err)
	}

	return opts, nil
}

// minutesSelect builds a select field whose first choice is preselected.
func minutesSelect(title string, value *int, choices ...int) *huh.Select[int] {
	options := make([]huh.Option[int], 0, len(choices))

	for i, m := range choices {
		options = append(
			options,
			huh.NewOption(fmt.Sprintf("%d minutes", m), m).Selected(i == 0),
		)
	}

	return huh.NewSelect[int]().Title(title).Options(options...).Value(value)
}

func (opts PromptOptions) apply(c *Config) {
	c.Work.Minutes = opts.WorkMinutes
	c.ShortBreak.Minutes = opts.ShortBreakMinutes
	c.LongBreak.Minutes = opts.LongBreakMinutes
	c.Settings.LongBreakInterval = opts.LongBreakInterval
}
