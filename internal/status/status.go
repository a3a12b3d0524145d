// Package status keeps a small JSON snapshot of the running timer on disk
// so that other processes (e.g. `tomato status` in a shell prompt) can
// report on it.
package status

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tomato-timer/tomato/internal/engine"
	"github.com/tomato-timer/tomato/internal/timeutil"
)

// ErrNotRunning is returned by Read when no timer has written a status file.
var ErrNotRunning = errors.New("no timer is running")

// Status is the snapshot written by a running timer.
type Status struct {
	UpdatedAt         time.Time   `json:"updated_at"`
	Mode              engine.Mode `json:"mode"`
	TaskID            string      `json:"task_id,omitempty"`
	Remaining         int         `json:"remaining"`
	Completed         int         `json:"completed"`
	LongBreakInterval int         `json:"long_break_interval"`
	Running           bool        `json:"running"`
}

// FromState projects s at time now.
func FromState(s engine.State, now time.Time) Status {
	return Status{
		Mode:              s.Mode,
		TaskID:            s.ActiveTaskID,
		Remaining:         s.Remaining,
		Completed:         s.Completed,
		LongBreakInterval: s.Config.LongBreakInterval,
		Running:           s.Running,
		UpdatedAt:         now,
	}
}

// RemainingAt estimates the seconds left at now. A running countdown keeps
// going after the snapshot was taken.
func (s Status) RemainingAt(now time.Time) int {
	if !s.Running {
		return s.Remaining
	}

	elapsed := int(now.Sub(s.UpdatedAt) / time.Second)

	return max(s.Remaining-elapsed, 0)
}

// Format renders the status for a shell prompt, e.g. "[Work 2/4]: 12:34".
func (s Status) Format(now time.Time) string {
	var label string

	switch s.Mode {
	case engine.Work:
		interval := max(s.LongBreakInterval, 1)
		label = fmt.Sprintf("[Work %d/%d]", s.Completed%interval+1, interval)
	case engine.ShortBreak:
		label = "[Short break]"
	case engine.LongBreak:
		label = "[Long break]"
	default:
		label = "[" + string(s.Mode) + "]"
	}

	out := fmt.Sprintf("%s: %s", label, timeutil.FormatClock(s.RemainingAt(now)))
	if !s.Running {
		out += " (paused)"
	}

	return out
}

// Write replaces the status file at path with s.
func Write(path string, s Status) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".status-*")
	if err != nil {
		return err
	}

	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err = tmp.Write(b); err != nil {
		_ = tmp.Close()
		return err
	}

	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// Read loads the status file at path. It returns ErrNotRunning when the
// file does not exist.
func Read(path string) (*Status, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotRunning
	}

	if err != nil {
		return nil, err
	}

	var s Status

	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("corrupt status file %s: %w", path, err)
	}

	return &s, nil
}

// Remove deletes the status file. A missing file is not an error.
func Remove(path string) error {
	err := os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return err
}
