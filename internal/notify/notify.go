// Package notify alerts the user when a countdown reaches zero with a
// desktop notification and a sound. Without a configured sound file the
// system beep is used.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gen2brain/beeep"

	"github.com/tomato-timer/tomato/internal/engine"
)

// Alert describes a countdown that just reached zero.
type Alert struct {
	Title     string
	Message   string
	TaskID    string
	Finished  engine.Mode
	Next      engine.Mode
	Completed int
}

// NewAlert builds the alert for a countdown in mode finished. message is
// the text configured for the mode that comes next.
func NewAlert(finished, next engine.Mode, message string) Alert {
	title := finished.Label() + " is finished"
	if finished == next {
		title = finished.Label() + " is over"
	}

	return Alert{
		Title:    title,
		Message:  message,
		Finished: finished,
		Next:     next,
	}
}

// Notifier sends desktop notifications and plays the alert sound.
type Notifier struct {
	logger  *slog.Logger
	send    func(title, message, icon string) error
	play    func(ctx context.Context, file string) error
	beep    func() error
	sound   string
	icon    string
	enabled bool
	silent  bool
}

// Option customises a Notifier.
type Option func(*Notifier)

// WithSound plays the audio file at path after each notification.
func WithSound(path string) Option {
	return func(n *Notifier) {
		n.sound = path
	}
}

// WithIcon sets the notification icon.
func WithIcon(path string) Option {
	return func(n *Notifier) {
		n.icon = path
	}
}

// WithSender replaces the desktop notification backend.
func WithSender(send func(title, message, icon string) error) Option {
	return func(n *Notifier) {
		n.send = send
	}
}

// WithPlayer replaces the audio backend.
func WithPlayer(play func(ctx context.Context, file string) error) Option {
	return func(n *Notifier) {
		n.play = play
	}
}

// Silent turns off both the sound file and the beep.
func Silent() Option {
	return func(n *Notifier) {
		n.silent = true
	}
}

// WithBeeper replaces the fallback used when no sound file is set.
func WithBeeper(beep func() error) Option {
	return func(n *Notifier) {
		n.beep = beep
	}
}

func systemBeep() error {
	return beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
}

// New returns a Notifier. A disabled Notifier does nothing.
func New(enabled bool, logger *slog.Logger, opts ...Option) *Notifier {
	n := &Notifier{
		enabled: enabled,
		logger:  logger,
		send:    beeep.Notify,
		play:    PlaySound,
		beep:    systemBeep,
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Notify shows the alert and plays the sound file, or beeps when none is
// set. Both are attempted even when the first fails.
func (n *Notifier) Notify(ctx context.Context, a Alert) error {
	if !n.enabled {
		return nil
	}

	var errs []error

	if err := n.send(a.Title, a.Message, n.icon); err != nil {
		errs = append(errs, fmt.Errorf("desktop notification: %w", err))
	}

	switch {
	case n.silent:
	case n.sound != "":
		if err := n.play(ctx, n.sound); err != nil {
			errs = append(errs, fmt.Errorf("alert sound: %w", err))
		}
	default:
		if err := n.beep(); err != nil {
			errs = append(errs, fmt.Errorf("system beep: %w", err))
		}
	}

	n.logger.Debug(
		"alert delivered",
		slog.String("finished", string(a.Finished)),
		slog.Int("errors", len(errs)),
	)

	return errors.Join(errs...)
}
