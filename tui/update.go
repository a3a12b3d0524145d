package tui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/davecgh/go-spew/spew"

	"github.com/tomato-timer/tomato/internal/engine"
	"github.com/tomato-timer/tomato/timer"
)

const noTask = ""

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.logger.Enabled(m.ctx, slog.LevelDebug) {
		m.logger.Debug("tui message", slog.String("msg", spew.Sdump(msg)))
	}

	if m.picker != nil {
		return m.updatePicker(msg)
	}

	switch msg := msg.(type) {
	case eventMsg:
		m.handleEvent(msg.event)

		return m, m.waitForEvent()

	case eventsClosedMsg:
		return m, tea.Quit

	case stateMsg:
		m.state = msg.state

		return m, nil

	case errMsg:
		m.notice = msg.err.Error()

		return m, nil

	case tea.WindowSizeMsg:
		m.progress.Width = min(msg.Width-padding*2-4, maxWidth)
		m.help.Width = msg.Width

		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

func (m *Model) handleEvent(e timer.Event) {
	switch e.Kind {
	case timer.EventState:
		m.state = e.State

	case timer.EventFinished:
		m.state = e.State
		m.finished = e.Finished
		m.waiting = true

	case timer.EventRecorded:
		m.notice = "Session saved to " + m.taskTitle(e.Session.TaskID)

	case timer.EventRecordFailed:
		m.notice = "Could not save session: " + e.Err.Error()
	}
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.quit) {
		return m, tea.Quit
	}

	if m.waiting {
		if key.Matches(msg, m.keys.enter) {
			m.waiting = false
			m.notice = ""

			return m, m.continueCmd()
		}

		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.togglePlay):
		return m, m.do(m.timer.Toggle)

	case key.Matches(msg, m.keys.reset):
		return m, m.do(m.timer.Reset)

	case key.Matches(msg, m.keys.skip):
		return m, m.do(m.timer.Skip)

	case key.Matches(msg, m.keys.work):
		return m, m.setMode(engine.Work)

	case key.Matches(msg, m.keys.shortBreak):
		return m, m.setMode(engine.ShortBreak)

	case key.Matches(msg, m.keys.longBreak):
		return m, m.setMode(engine.LongBreak)

	case key.Matches(msg, m.keys.task):
		if len(m.tasks) == 0 {
			m.notice = "No tasks yet: add one with 'tomato task add'"
			return m, nil
		}

		return m, m.openPicker()
	}

	return m, nil
}

func (m *Model) setMode(mode engine.Mode) tea.Cmd {
	return m.do(func(ctx context.Context) (engine.State, error) {
		return m.timer.SetMode(ctx, mode)
	})
}

// continueCmd starts the next countdown after the user acknowledged a
// finished one. A finished break leaves the timer in break mode, so it is
// switched back to work first.
func (m *Model) continueCmd() tea.Cmd {
	finished := m.finished

	return m.do(func(ctx context.Context) (engine.State, error) {
		if finished != engine.Work {
			if _, err := m.timer.SetMode(ctx, engine.Work); err != nil {
				return engine.State{}, err
			}
		}

		return m.timer.Start(ctx)
	})
}

func (m *Model) openPicker() tea.Cmd {
	selected := m.state.ActiveTaskID
	m.pickedTask = &selected

	options := []huh.Option[string]{huh.NewOption("No task", noTask)}

	for _, t := range m.tasks {
		options = append(options, huh.NewOption(t.Title, t.ID))
	}

	m.picker = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which task are you working on?").
				Options(options...).
				Value(m.pickedTask),
		),
	).WithShowHelp(false)

	return m.picker.Init()
}

func (m *Model) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.esc):
			m.picker = nil
			return m, nil
		case keyMsg.String() == "ctrl+c":
			return m, tea.Quit
		}
	}

	// timer events keep flowing while the picker is open
	if e, ok := msg.(eventMsg); ok {
		m.handleEvent(e.event)
		return m, m.waitForEvent()
	}

	form, cmd := m.picker.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.picker = f
	}

	switch m.picker.State {
	case huh.StateCompleted:
		taskID := *m.pickedTask
		m.picker = nil

		return m, m.do(func(ctx context.Context) (engine.State, error) {
			return m.timer.SetActiveTask(ctx, taskID)
		})

	case huh.StateAborted:
		m.picker = nil

		return m, nil
	}

	return m, cmd
}
