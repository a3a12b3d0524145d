// Package timer runs the focus countdown. A Timer owns a single
// engine.State, applies every action to it on one goroutine, arms a ticker
// only while the countdown is running, and carries out the side effects of
// a finished countdown: saving the work session, notifying the user, and
// running the session command.
package timer

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomato-timer/tomato/internal/engine"
	"github.com/tomato-timer/tomato/internal/models"
	"github.com/tomato-timer/tomato/internal/notify"
)

const defaultPersistTimeout = 10 * time.Second

type (
	// Identity reports the signed in user.
	Identity interface {
		CurrentUserID(ctx context.Context) (string, bool)
	}

	// Persistence saves completed work sessions.
	Persistence interface {
		RecordSession(ctx context.Context, s *models.Session) error
		IncrementTaskSessionCount(ctx context.Context, taskID string) error
	}

	// Notifier alerts the user that a countdown finished.
	Notifier interface {
		Notify(ctx context.Context, a notify.Alert) error
	}

	// Hook runs after a countdown finished.
	Hook interface {
		Run(ctx context.Context, a notify.Alert) error
	}
)

// request asks the loop to apply the action chosen by decide. A nil action
// only reads the state.
type request struct {
	decide func(engine.State) engine.Action
	reply  chan engine.State
}

// Timer is the running focus timer.
type Timer struct {
	identity       Identity
	persistence    Persistence
	notifier       Notifier
	hook           Hook
	clock          Clock
	logger         *slog.Logger
	messages       func(engine.Mode) string
	ticker         Ticker
	tickC          <-chan time.Time
	requests       chan request
	done           chan struct{}
	subs           map[int]chan Event
	snapshot       atomic.Pointer[engine.State]
	state          engine.State
	wg             sync.WaitGroup
	subsMu         sync.Mutex
	persistTimeout time.Duration
	nextSub        int
	started        atomic.Bool
}

// Option configures a Timer.
type Option func(*Timer)

// WithIdentity sets the provider asked for the signed in user.
func WithIdentity(i Identity) Option {
	return func(t *Timer) {
		t.identity = i
	}
}

// WithPersistence sets where completed work sessions are saved.
func WithPersistence(p Persistence) Option {
	return func(t *Timer) {
		t.persistence = p
	}
}

// WithNotifier sets the notifier used when a countdown finishes.
func WithNotifier(n Notifier) Option {
	return func(t *Timer) {
		t.notifier = n
	}
}

// WithHook sets a command to run when a countdown finishes.
func WithHook(h Hook) Option {
	return func(t *Timer) {
		t.hook = h
	}
}

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(t *Timer) {
		t.clock = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Timer) {
		t.logger = l
	}
}

// WithMessages sets the notification text shown for the mode that comes
// next.
func WithMessages(fn func(engine.Mode) string) Option {
	return func(t *Timer) {
		t.messages = fn
	}
}

// WithPersistTimeout bounds how long saving a session may take.
func WithPersistTimeout(d time.Duration) Option {
	return func(t *Timer) {
		t.persistTimeout = d
	}
}

// New returns a stopped Timer in work mode. Call Run to start processing.
func New(cfg engine.Config, opts ...Option) *Timer {
	t := &Timer{
		state:          engine.New(cfg),
		clock:          systemClock{},
		logger:         slog.Default(),
		messages:       func(engine.Mode) string { return "" },
		requests:       make(chan request),
		done:           make(chan struct{}),
		subs:           make(map[int]chan Event),
		persistTimeout: defaultPersistTimeout,
	}

	for _, opt := range opts {
		opt(t)
	}

	st := t.state
	t.snapshot.Store(&st)

	return t
}

// Run processes actions and ticks until ctx is cancelled. It stops the
// ticker and waits for pending side effects before returning. A Timer can
// only be run once.
func (t *Timer) Run(ctx context.Context) error {
	if !t.started.CompareAndSwap(false, true) {
		return errAlreadyRunning
	}

	defer close(t.done)
	defer t.wg.Wait()
	defer t.stopTicker()

	t.publish(Event{Kind: EventState, State: t.state})

	for {
		select {
		case <-ctx.Done():
			t.logger.Debug("timer stopped", slog.Int("remaining", t.state.Remaining))
			return nil

		case req := <-t.requests:
			if req.decide != nil {
				if a := req.decide(t.state); a != nil {
					t.apply(a)
				}
			}

			req.reply <- t.state

		case <-t.tickC:
			t.tick(ctx)
		}
	}
}

// State returns the most recent state. It may lag behind actions that are
// still queued.
func (t *Timer) State() engine.State {
	return *t.snapshot.Load()
}

// Current returns the state once every earlier action has been applied.
func (t *Timer) Current(ctx context.Context) (engine.State, error) {
	return t.send(ctx, nil)
}

// Dispatch applies a to the timer state and returns the result.
func (t *Timer) Dispatch(ctx context.Context, a engine.Action) (engine.State, error) {
	return t.send(ctx, func(engine.State) engine.Action {
		return a
	})
}

// Start resumes the countdown.
func (t *Timer) Start(ctx context.Context) (engine.State, error) {
	return t.Dispatch(ctx, engine.Start{})
}

// Pause stops the countdown.
func (t *Timer) Pause(ctx context.Context) (engine.State, error) {
	return t.Dispatch(ctx, engine.Pause{})
}

// Toggle pauses a running countdown and resumes a paused one.
func (t *Timer) Toggle(ctx context.Context) (engine.State, error) {
	return t.send(ctx, func(s engine.State) engine.Action {
		if s.Running {
			return engine.Pause{}
		}

		return engine.Start{}
	})
}

// Reset stops the countdown and refills it for the current mode.
func (t *Timer) Reset(ctx context.Context) (engine.State, error) {
	return t.Dispatch(ctx, engine.Reset{})
}

// SetMode switches to mode m, stopping the countdown.
func (t *Timer) SetMode(ctx context.Context, m engine.Mode) (engine.State, error) {
	return t.Dispatch(ctx, engine.SetMode{Mode: m})
}

// SetActiveTask selects the task that completed work sessions are credited
// to. An empty id clears it.
func (t *Timer) SetActiveTask(ctx context.Context, taskID string) (engine.State, error) {
	return t.Dispatch(ctx, engine.SetActiveTask{TaskID: taskID})
}

// SetConfig changes the durations and refills the countdown for the current
// mode. Zero fields are treated as absent and negative ones are logged and
// ignored.
func (t *Timer) SetConfig(ctx context.Context, p engine.ConfigPatch) (engine.State, error) {
	for _, field := range p.Ignored() {
		t.logger.Warn("ignoring negative setting", slog.String("field", field))
	}

	return t.Dispatch(ctx, engine.SetConfig{Patch: p})
}

// CompleteWorkSession counts a work session as done and moves to the next
// break without saving anything.
func (t *Timer) CompleteWorkSession(ctx context.Context) (engine.State, error) {
	return t.Dispatch(ctx, engine.CompleteWorkSession{})
}

// Skip ends the current countdown early. A skipped work session counts as
// completed but is never saved. A skipped break returns to work.
func (t *Timer) Skip(ctx context.Context) (engine.State, error) {
	return t.send(ctx, func(s engine.State) engine.Action {
		if s.Mode == engine.Work {
			return engine.CompleteWorkSession{}
		}

		return engine.SetMode{Mode: engine.Work}
	})
}

// Wait blocks until Run has returned.
func (t *Timer) Wait() {
	<-t.done
}

func (t *Timer) send(
	ctx context.Context,
	decide func(engine.State) engine.Action,
) (engine.State, error) {
	req := request{
		decide: decide,
		reply:  make(chan engine.State, 1),
	}

	select {
	case t.requests <- req:
	case <-t.done:
		return t.State(), errStopped
	case <-ctx.Done():
		return t.State(), ctx.Err()
	}

	return <-req.reply, nil
}

// apply reduces a into the state, keeps the ticker in step with the running
// flag, and publishes the change.
func (t *Timer) apply(a engine.Action) {
	prev := t.state
	next := engine.Reduce(prev, a)

	t.state = next
	t.syncTicker(prev, next)

	if next == prev {
		return
	}

	st := next
	t.snapshot.Store(&st)

	t.publish(Event{Kind: EventState, State: next})
}

func (t *Timer) syncTicker(prev, next engine.State) {
	switch {
	case !prev.Running && next.Running:
		t.stopTicker()
		t.ticker = t.clock.NewTicker(time.Second)
		t.tickC = t.ticker.C()
	case prev.Running && !next.Running:
		t.stopTicker()
	}
}

func (t *Timer) stopTicker() {
	if t.ticker == nil {
		return
	}

	t.ticker.Stop()
	t.ticker = nil
	t.tickC = nil
}

func (t *Timer) tick(ctx context.Context) {
	prev := t.state

	t.apply(engine.Tick{})

	if engine.Finished(prev, t.state) {
		t.finish(ctx)
	}
}

// finish runs the completion policy for a countdown that just reached zero
// while running. Only work sessions advance the mode. Breaks stay where they
// are until the user moves on.
func (t *Timer) finish(ctx context.Context) {
	finished := t.state.Mode
	taskID := t.state.ActiveTaskID
	workMinutes := t.state.Config.WorkMinutes

	t.apply(engine.Pause{})

	if finished == engine.Work {
		t.record(ctx, taskID, workMinutes)
		t.apply(engine.CompleteWorkSession{})
	}

	t.logger.Info(
		"countdown finished",
		slog.String("mode", string(finished)),
		slog.String("next", string(t.state.Mode)),
		slog.Int("completed", t.state.Completed),
	)

	t.publish(Event{Kind: EventFinished, Finished: finished, State: t.state})

	next := t.state.Mode
	if finished != engine.Work {
		next = engine.Work
	}

	alert := notify.NewAlert(finished, t.state.Mode, t.messages(next))
	alert.TaskID = taskID
	alert.Completed = t.state.Completed

	t.alert(ctx, alert)
}

// record saves the work session in the background when both a signed in
// user and an active task exist.
func (t *Timer) record(ctx context.Context, taskID string, workMinutes int) {
	if t.persistence == nil || t.identity == nil || taskID == "" {
		t.logger.Debug("session not saved: no active task")
		return
	}

	now := t.clock.Now()

	t.wg.Add(1)

	go func() {
		defer t.wg.Done()

		ctx, cancel := context.WithTimeout(
			context.WithoutCancel(ctx),
			t.persistTimeout,
		)
		defer cancel()

		userID, ok := t.identity.CurrentUserID(ctx)
		if !ok {
			t.logger.Debug("session not saved: not signed in")
			return
		}

		sess := &models.Session{
			UserID:          userID,
			TaskID:          taskID,
			DurationMinutes: workMinutes,
			Completed:       true,
			StartedAt:       now.Add(-time.Duration(workMinutes) * time.Minute),
			CompletedAt:     now,
		}

		err := t.persistence.RecordSession(ctx, sess)
		if err == nil {
			err = t.persistence.IncrementTaskSessionCount(ctx, taskID)
		}

		if err != nil {
			t.logger.Warn(
				"unable to save work session",
				slog.String("task_id", taskID),
				slog.Any("error", err),
			)

			t.publish(Event{Kind: EventRecordFailed, Session: sess, Err: err})

			return
		}

		t.logger.Info(
			"work session saved",
			slog.String("session_id", sess.ID),
			slog.String("task_id", taskID),
		)

		t.publish(Event{Kind: EventRecorded, Session: sess})
	}()
}

// alert notifies the user and runs the session hook. Failures are logged
// and otherwise ignored.
func (t *Timer) alert(ctx context.Context, a notify.Alert) {
	if t.notifier != nil {
		t.wg.Add(1)

		go func() {
			defer t.wg.Done()

			if err := t.notifier.Notify(ctx, a); err != nil {
				t.logger.Warn("notification failed", slog.Any("error", err))
			}
		}()
	}

	if t.hook != nil {
		t.wg.Add(1)

		go func() {
			defer t.wg.Done()

			if err := t.hook.Run(ctx, a); err != nil {
				t.logger.Warn("session command failed", slog.Any("error", err))
			}
		}()
	}
}
