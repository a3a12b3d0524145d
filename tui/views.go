package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"

	"github.com/tomato-timer/tomato/internal/engine"
	"github.com/tomato-timer/tomato/internal/timeutil"
)

func (m *Model) sessionPromptView() string {
	var s strings.Builder

	title := "Your focus session is complete"
	msg := m.cfg.Session(m.state.Mode).Message

	if m.finished != engine.Work {
		title = "Your break is over"
		msg = m.cfg.Work.Message
	}

	s.WriteString(m.styles.main.Render(title))
	s.WriteString("\n\n" + m.styles.secondary.Render(msg))

	if m.notice != "" {
		s.WriteString("\n\n" + m.styles.notice.Render(m.notice))
	}

	s.WriteString("\n\n" + m.help.ShortHelpView([]key.Binding{
		m.keys.enter,
		m.keys.quit,
	}))

	return s.String()
}

func (m *Model) statusLine() string {
	var s strings.Builder

	st := m.state

	s.WriteString(m.styles.modes[st.Mode].Render(st.Mode.Label()))

	if st.Running {
		timeFormat := "03:04:05 PM"
		if m.cfg.Settings.TwentyFourHour {
			timeFormat = "15:04:05"
		}

		end := m.now().Add(time.Duration(st.Remaining) * time.Second)

		s.WriteString(m.styles.hint.Render("until " + end.Format(timeFormat)))
	} else {
		s.WriteString(m.styles.secondary.Render("[Paused]"))
	}

	if st.Mode == engine.Work {
		s.WriteString(m.styles.hint.Render(
			fmt.Sprintf(" (%d/%d)", st.Cycle(), st.Config.LongBreakInterval),
		))
	}

	return s.String()
}

func (m *Model) timerView() string {
	var s strings.Builder

	s.WriteString(m.statusLine())

	if title := m.taskTitle(m.state.ActiveTaskID); title != "" {
		s.WriteString("\n" + m.styles.hint.Render("Task: "+title))
	}

	s.WriteString("\n\n")
	s.WriteString(m.styles.main.Render(timeutil.FormatClock(m.state.Remaining)))
	s.WriteString("\n\n")
	s.WriteString(m.progress.ViewAs(m.state.Progress()))

	if m.notice != "" {
		s.WriteString("\n\n" + m.styles.notice.Render(m.notice))
	}

	s.WriteString("\n\n" + m.help.View(m.keys))

	return s.String()
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.waiting {
		return m.styles.base.Render(m.sessionPromptView())
	}

	view := m.timerView()

	if m.picker != nil {
		view += "\n\n" + m.picker.View()
	}

	return m.styles.base.Render(view)
}
