package engine

// Action is a single intent applied to a State by Reduce. The set of actions
// is closed: only the types in this file implement it.
type Action interface {
	isAction()
}

type (
	// Start sets the countdown running.
	Start struct{}

	// Pause stops the countdown and keeps the remaining time.
	Pause struct{}

	// Reset stops the countdown and reloads the duration of the current mode.
	Reset struct{}

	// Tick removes one second from the countdown.
	Tick struct{}

	// SetMode switches to Mode, stopping the countdown.
	SetMode struct {
		Mode Mode
	}

	// SetActiveTask attributes future work sessions to TaskID. An empty ID
	// clears the association.
	SetActiveTask struct {
		TaskID string
	}

	// SetConfig merges Patch into the configuration.
	SetConfig struct {
		Patch ConfigPatch
	}

	// CompleteWorkSession counts a finished work session and moves on to the
	// appropriate break.
	CompleteWorkSession struct{}
)

func (Start) isAction()               {}
func (Pause) isAction()               {}
func (Reset) isAction()               {}
func (Tick) isAction()                {}
func (SetMode) isAction()             {}
func (SetActiveTask) isAction()       {}
func (SetConfig) isAction()           {}
func (CompleteWorkSession) isAction() {}
