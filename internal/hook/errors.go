package hook

import "github.com/tomato-timer/tomato/internal/apperr"

var errParseCmd = &apperr.Error{
	Message: "unable to parse session_cmd option",
}
