package store

import "github.com/tomato-timer/tomato/internal/apperr"

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = &apperr.Error{
		Message: "record not found",
	}

	// ErrEmailTaken is returned when registering an email that is in use.
	ErrEmailTaken = &apperr.Error{
		Message: "an account with this email already exists",
	}

	errStoreLocked = &apperr.Error{
		Message: "is tomato already running? Only one timer can use the bolt store at a time",
	}

	errUnknownDriver = &apperr.Error{
		Message: "unknown storage driver: %s (must be bolt or sqlite)",
	}

	errMissingSessionUser = &apperr.Error{
		Message: "a session must belong to a user",
	}
)
