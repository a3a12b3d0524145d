// Package engine implements the focus timer as a pure state machine. Every
// change to a State goes through Reduce; scheduling ticks and talking to the
// outside world is left to the caller.
package engine

// Mode is the current phase of the timer.
type Mode string

const (
	Work       Mode = "work"
	ShortBreak Mode = "short_break"
	LongBreak  Mode = "long_break"
)

const secondsInAMinute = 60

const (
	DefaultWorkMinutes       = 25
	DefaultShortBreakMinutes = 5
	DefaultLongBreakMinutes  = 15
	DefaultLongBreakInterval = 4
)

// Modes lists every valid mode in display order.
var Modes = []Mode{Work, ShortBreak, LongBreak}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	switch m {
	case Work, ShortBreak, LongBreak:
		return true
	}

	return false
}

// Label returns a human readable name for the mode.
func (m Mode) Label() string {
	switch m {
	case Work:
		return "Work session"
	case ShortBreak:
		return "Short break"
	case LongBreak:
		return "Long break"
	}

	return string(m)
}

// Config holds the durations (in minutes) of each mode and the number of
// work sessions after which a long break is taken.
type Config struct {
	WorkMinutes       int `json:"work_minutes"`
	ShortBreakMinutes int `json:"short_break_minutes"`
	LongBreakMinutes  int `json:"long_break_minutes"`
	LongBreakInterval int `json:"long_break_interval"`
}

// DefaultConfig returns the stock 25/5/15 configuration with a long break
// after every fourth work session.
func DefaultConfig() Config {
	return Config{
		WorkMinutes:       DefaultWorkMinutes,
		ShortBreakMinutes: DefaultShortBreakMinutes,
		LongBreakMinutes:  DefaultLongBreakMinutes,
		LongBreakInterval: DefaultLongBreakInterval,
	}
}

// Minutes returns the configured length of mode m.
func (c Config) Minutes(m Mode) int {
	switch m {
	case ShortBreak:
		return c.ShortBreakMinutes
	case LongBreak:
		return c.LongBreakMinutes
	default:
		return c.WorkMinutes
	}
}

// Seconds returns the configured length of mode m in seconds.
func (c Config) Seconds(m Mode) int {
	return c.Minutes(m) * secondsInAMinute
}

// State is the complete, copyable state of a timer.
type State struct {
	Mode         Mode   `json:"mode"`
	ActiveTaskID string `json:"active_task_id,omitempty"`
	Config       Config `json:"config"`
	Remaining    int    `json:"remaining"`
	Completed    int    `json:"completed"`
	Running      bool   `json:"running"`
}

// New returns the initial state for cfg: a stopped work countdown with no
// active task. Non-positive fields of cfg are replaced by the defaults.
func New(cfg Config) State {
	cfg = ConfigPatch(cfg).Apply(DefaultConfig())

	return State{
		Mode:      Work,
		Config:    cfg,
		Remaining: cfg.Seconds(Work),
	}
}

// Duration returns the full length of the current mode in seconds.
func (s State) Duration() int {
	return s.Config.Seconds(s.Mode)
}

// Progress returns how much of the current countdown has elapsed, between 0
// and 1.
func (s State) Progress() float64 {
	total := s.Duration()
	if total <= 0 {
		return 0
	}

	elapsed := float64(total-s.Remaining) / float64(total)

	switch {
	case elapsed < 0:
		return 0
	case elapsed > 1:
		return 1
	}

	return elapsed
}

// Cycle returns the position of the current or next work session within the
// long break interval, starting from 1.
func (s State) Cycle() int {
	return s.Completed%s.Config.LongBreakInterval + 1
}
