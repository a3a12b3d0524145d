package config

import "github.com/tomato-timer/tomato/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errInvalidCLIDuration = &apperr.Error{
		Message: "invalid %s duration %q: use whole minutes (e.g. 25 or 25m)",
	}

	errInvalidColor = &apperr.Error{
		Message: "%s color must be a valid hex color code (e.g. #FF0000), got %s",
	}

	errEmptyMsg = &apperr.Error{
		Message: "%s message cannot be empty",
	}

	errInvalidDuration = &apperr.Error{
		Message: "%s duration must be between %d and %d minutes, got %d",
	}

	errInvalidLongBreakInterval = &apperr.Error{
		Message: "long break interval must be between %d and %d sessions, got %d",
	}

	errUnknownDriver = &apperr.Error{
		Message: "unknown storage driver: %s (must be bolt or sqlite)",
	}

	errInvalidSoundFormat = &apperr.Error{
		Message: "invalid sound file format: %s (must be mp3, ogg, flac, or wav)",
	}
)
