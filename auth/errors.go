package auth

import "github.com/tomato-timer/tomato/internal/apperr"

var (
	// ErrNotSignedIn is returned when an operation needs a signed in user.
	ErrNotSignedIn = &apperr.Error{
		Message: "you are not signed in: run 'tomato login' first",
	}

	errInvalidEmail = &apperr.Error{
		Message: "invalid email address: %q",
	}

	errPasswordTooShort = &apperr.Error{
		Message: "password must be at least %d characters",
	}

	errPasswordMismatch = &apperr.Error{
		Message: "passwords do not match",
	}

	errInvalidCredentials = &apperr.Error{
		Message: "invalid email or password",
	}

	errReadSession = &apperr.Error{
		Message: "unable to read the sign-in session",
	}

	errWriteSession = &apperr.Error{
		Message: "unable to save the sign-in session",
	}
)
