package timeutil

import "github.com/tomato-timer/tomato/internal/apperr"

var (
	errEmptyDate = &apperr.Error{
		Message: "date must not be empty",
	}

	errParsingDate = &apperr.Error{
		Message: "unable to understand the date %q",
	}
)
