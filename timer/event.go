package timer

import (
	"log/slog"

	"github.com/tomato-timer/tomato/internal/engine"
	"github.com/tomato-timer/tomato/internal/models"
)

// EventKind identifies what an Event reports.
type EventKind int

const (
	// EventState is published after every change to the timer state.
	EventState EventKind = iota
	// EventFinished is published when a countdown reaches zero.
	EventFinished
	// EventRecorded is published when a completed work session was saved.
	EventRecorded
	// EventRecordFailed is published when saving a work session failed.
	EventRecordFailed
)

func (k EventKind) String() string {
	switch k {
	case EventState:
		return "state"
	case EventFinished:
		return "finished"
	case EventRecorded:
		return "recorded"
	case EventRecordFailed:
		return "record_failed"
	}

	return "unknown"
}

// Event is a notification sent to subscribers.
type Event struct {
	Err      error
	Session  *models.Session
	Finished engine.Mode
	State    engine.State
	Kind     EventKind
}

const subscriberBuffer = 64

// Subscribe returns a channel that receives timer events and a function that
// cancels the subscription. Events are dropped when the channel is full.
func (t *Timer) Subscribe() (<-chan Event, func()) {
	t.subsMu.Lock()
	defer t.subsMu.Unlock()

	id := t.nextSub
	t.nextSub++

	ch := make(chan Event, subscriberBuffer)
	t.subs[id] = ch

	var once bool

	return ch, func() {
		t.subsMu.Lock()
		defer t.subsMu.Unlock()

		if once {
			return
		}

		once = true

		delete(t.subs, id)
		close(ch)
	}
}

func (t *Timer) publish(e Event) {
	t.subsMu.Lock()
	defer t.subsMu.Unlock()

	for _, ch := range t.subs {
		select {
		case ch <- e:
		default:
			t.logger.Debug("dropped event", slog.String("kind", e.Kind.String()))
		}
	}
}
