package timer

import "github.com/tomato-timer/tomato/internal/apperr"

var (
	errAlreadyRunning = &apperr.Error{
		Message: "timer is already running",
	}

	errStopped = &apperr.Error{
		Message: "timer has stopped",
	}
)
