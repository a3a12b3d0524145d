// Package tui is the terminal front end of the focus timer
package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/tomato-timer/tomato/internal/config"
	"github.com/tomato-timer/tomato/internal/engine"
	"github.com/tomato-timer/tomato/internal/models"
	"github.com/tomato-timer/tomato/timer"
)

// Controller is the part of timer.Timer the front end drives.
type Controller interface {
	State() engine.State
	Subscribe() (<-chan timer.Event, func())
	Start(ctx context.Context) (engine.State, error)
	Toggle(ctx context.Context) (engine.State, error)
	Reset(ctx context.Context) (engine.State, error)
	Skip(ctx context.Context) (engine.State, error)
	SetMode(ctx context.Context, m engine.Mode) (engine.State, error)
	SetActiveTask(ctx context.Context, taskID string) (engine.State, error)
}

type (
	eventMsg struct {
		event timer.Event
	}

	eventsClosedMsg struct{}

	stateMsg struct {
		state engine.State
	}

	errMsg struct {
		err error
	}
)

// Model is the bubbletea model of the timer screen.
type Model struct {
	ctx         context.Context
	timer       Controller
	cfg         *config.Config
	logger      *slog.Logger
	now         func() time.Time
	events      <-chan timer.Event
	unsubscribe func()
	picker      *huh.Form
	pickedTask  *string
	tasks       []*models.Task
	notice      string
	styles      styles
	help        help.Model
	keys        keyMap
	progress    progress.Model
	state       engine.State
	finished    engine.Mode
	waiting     bool
}

// Options configures a Model.
type Options struct {
	Config *config.Config
	Logger *slog.Logger
	Now    func() time.Time
	Tasks  []*models.Task
}

// New returns a Model driving t. Call Close when the program exits.
func New(ctx context.Context, t Controller, opts Options) *Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	events, unsubscribe := t.Subscribe()

	return &Model{
		ctx:         ctx,
		timer:       t,
		cfg:         opts.Config,
		logger:      opts.Logger,
		now:         opts.Now,
		tasks:       opts.Tasks,
		events:      events,
		unsubscribe: unsubscribe,
		state:       t.State(),
		styles:      newStyles(opts.Config),
		help:        help.New(),
		keys:        defaultKeymap,
		progress: progress.New(
			progress.WithGradient(
				opts.Config.Work.Color,
				opts.Config.LongBreak.Color,
			),
			progress.WithoutPercentage(),
		),
	}
}

// Close stops listening to timer events.
func (m *Model) Close() {
	m.unsubscribe()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.waitForEvent()
}

func (m *Model) waitForEvent() tea.Cmd {
	events := m.events

	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}

		return eventMsg{event: e}
	}
}

// do runs a timer action off the update loop.
func (m *Model) do(
	fn func(ctx context.Context) (engine.State, error),
) tea.Cmd {
	ctx := m.ctx

	return func() tea.Msg {
		st, err := fn(ctx)
		if err != nil {
			return errMsg{err}
		}

		return stateMsg{st}
	}
}

func (m *Model) taskTitle(id string) string {
	for _, t := range m.tasks {
		if t.ID == id {
			return t.Title
		}
	}

	return ""
}
