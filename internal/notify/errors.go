package notify

import "github.com/tomato-timer/tomato/internal/apperr"

var errInvalidSoundFormat = &apperr.Error{
	Message: "unsupported sound file %s (must be mp3, ogg, flac, or wav)",
}
