package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomato-timer/tomato/internal/config"
	"github.com/tomato-timer/tomato/internal/engine"
	"github.com/tomato-timer/tomato/internal/logging"
	"github.com/tomato-timer/tomato/internal/models"
	"github.com/tomato-timer/tomato/timer"
)

type fakeController struct {
	events chan timer.Event
	calls  []string
	state  engine.State
}

func newFakeController() *fakeController {
	return &fakeController{
		state:  engine.New(engine.DefaultConfig()),
		events: make(chan timer.Event, 8),
	}
}

func (f *fakeController) record(call string) (engine.State, error) {
	f.calls = append(f.calls, call)
	return f.state, nil
}

func (f *fakeController) State() engine.State { return f.state }

func (f *fakeController) Subscribe() (<-chan timer.Event, func()) {
	return f.events, func() {}
}

func (f *fakeController) Start(context.Context) (engine.State, error) {
	return f.record("start")
}

func (f *fakeController) Toggle(context.Context) (engine.State, error) {
	return f.record("toggle")
}

func (f *fakeController) Reset(context.Context) (engine.State, error) {
	return f.record("reset")
}

func (f *fakeController) Skip(context.Context) (engine.State, error) {
	return f.record("skip")
}

func (f *fakeController) SetMode(_ context.Context, m engine.Mode) (engine.State, error) {
	return f.record("mode:" + string(m))
}

func (f *fakeController) SetActiveTask(_ context.Context, id string) (engine.State, error) {
	return f.record("task:" + id)
}

func testConfig() *config.Config {
	return &config.Config{
		Work:       config.SessionConfig{Minutes: 25, Message: "Focus on your task", Color: "#B0DB43"},
		ShortBreak: config.SessionConfig{Minutes: 5, Message: "Take a breather", Color: "#12EAEA"},
		LongBreak:  config.SessionConfig{Minutes: 15, Message: "Take a long break", Color: "#C492B1"},
		Settings:   config.SettingsConfig{LongBreakInterval: 4, TwentyFourHour: true},
		Display:    config.DisplayConfig{DarkTheme: true},
	}
}

func newTestModel(ctrl *fakeController, tasks ...*models.Task) *Model {
	return New(context.Background(), ctrl, Options{
		Config: testConfig(),
		Logger: logging.Discard(),
		Tasks:  tasks,
		Now: func() time.Time {
			return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
		},
	})
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}

	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key and runs the resulting command, feeding its message back
// into the model.
func press(t *testing.T, m *Model, s string) {
	t.Helper()

	_, cmd := m.Update(keyPress(s))
	if cmd == nil {
		return
	}

	msg := cmd()
	_, _ = m.Update(msg)
}

func TestInitialView(t *testing.T) {
	m := newTestModel(newFakeController())

	view := m.View()
	assert.Contains(t, view, "25:00")
	assert.Contains(t, view, "[Paused]")
	assert.Contains(t, view, "(1/4)")
	assert.Contains(t, view, "Work session")
}

func TestRunningView(t *testing.T) {
	ctrl := newFakeController()
	ctrl.state.Running = true
	ctrl.state.Remaining = 90

	m := newTestModel(ctrl)

	view := m.View()
	assert.Contains(t, view, "01:30")
	assert.Contains(t, view, "until 09:01:30")
}

func TestKeysDriveTimer(t *testing.T) {
	ctrl := newFakeController()
	m := newTestModel(ctrl)

	for _, k := range []string{"p", "r", "s", "2", "3", "1"} {
		press(t, m, k)
	}

	assert.Equal(t, []string{
		"toggle",
		"reset",
		"skip",
		"mode:short_break",
		"mode:long_break",
		"mode:work",
	}, ctrl.calls)
}

func TestQuit(t *testing.T) {
	m := newTestModel(newFakeController())

	_, cmd := m.Update(keyPress("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestFinishedWorkPrompt(t *testing.T) {
	ctrl := newFakeController()
	m := newTestModel(ctrl)

	st := engine.Reduce(ctrl.state, engine.CompleteWorkSession{})

	_, cmd := m.Update(eventMsg{timer.Event{
		Kind:     timer.EventFinished,
		Finished: engine.Work,
		State:    st,
	}})
	assert.NotNil(t, cmd, "keeps listening for events")

	view := m.View()
	assert.Contains(t, view, "Your focus session is complete")
	assert.Contains(t, view, "Take a breather")

	press(t, m, "p")
	assert.Empty(t, ctrl.calls, "timer keys are ignored until the prompt is answered")

	press(t, m, "enter")
	assert.Equal(t, []string{"start"}, ctrl.calls)
	assert.False(t, m.waiting)
}

func TestFinishedBreakPrompt(t *testing.T) {
	ctrl := newFakeController()
	m := newTestModel(ctrl)

	st := engine.Reduce(ctrl.state, engine.SetMode{Mode: engine.ShortBreak})
	st.Remaining = 0

	m.Update(eventMsg{timer.Event{
		Kind:     timer.EventFinished,
		Finished: engine.ShortBreak,
		State:    st,
	}})

	view := m.View()
	assert.Contains(t, view, "Your break is over")
	assert.Contains(t, view, "Focus on your task")

	press(t, m, "enter")
	assert.Equal(t, []string{"mode:work", "start"}, ctrl.calls)
}

func TestRecordNotices(t *testing.T) {
	m := newTestModel(newFakeController(), &models.Task{ID: "task-1", Title: "Write report"})

	m.Update(eventMsg{timer.Event{
		Kind:    timer.EventRecorded,
		Session: &models.Session{TaskID: "task-1"},
	}})
	assert.Contains(t, m.View(), "Session saved to Write report")

	m.Update(eventMsg{timer.Event{
		Kind: timer.EventRecordFailed,
		Err:  errors.New("database is locked"),
	}})
	assert.Contains(t, m.View(), "Could not save session: database is locked")
}

func TestTaskPickerWithoutTasks(t *testing.T) {
	ctrl := newFakeController()
	m := newTestModel(ctrl)

	press(t, m, "t")

	assert.Nil(t, m.picker)
	assert.Contains(t, m.View(), "No tasks yet")
}

func TestTaskPickerCancel(t *testing.T) {
	ctrl := newFakeController()
	m := newTestModel(ctrl, &models.Task{ID: "task-1", Title: "Write report"})

	m.Update(keyPress("t"))
	require.NotNil(t, m.picker)
	assert.Contains(t, m.View(), "Which task are you working on?")

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.picker)
	assert.Empty(t, ctrl.calls)
}

func TestEventStateUpdatesView(t *testing.T) {
	ctrl := newFakeController()
	m := newTestModel(ctrl)

	st := ctrl.state
	st.Remaining = 61
	st.ActiveTaskID = "task-1"

	m.tasks = []*models.Task{{ID: "task-1", Title: "Write report"}}
	m.Update(eventMsg{timer.Event{Kind: timer.EventState, State: st}})

	view := m.View()
	assert.Contains(t, view, "01:01")
	assert.Contains(t, view, "Task: Write report")
}
