package app

import "github.com/tomato-timer/tomato/internal/apperr"

var (
	errUnknownTask = &apperr.Error{
		Message: "task %s not found among your tasks: run 'tomato task list' to see them",
	}

	errMissingTitle = &apperr.Error{
		Message: "a task title is required",
	}

	errInvalidPriority = &apperr.Error{
		Message: "invalid priority %q: must be low, medium, high, or urgent",
	}

	errInvalidEstimate = &apperr.Error{
		Message: "estimate cannot be negative, got %d",
	}

	errMissingEmail = &apperr.Error{
		Message: "an email address is required",
	}

	errMissingPassword = &apperr.Error{
		Message: "a password is required",
	}

	errConflictingFormats = &apperr.Error{
		Message: "choose only one of --json and --yaml",
	}
)
