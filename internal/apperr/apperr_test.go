package apperr

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSample = &Error{
	Message: "%s duration must be between %d and %d",
}

func TestFmtKeepsIdentity(t *testing.T) {
	err := errSample.Fmt("work", 1, 720)

	assert.Equal(t, "work duration must be between 1 and 720", err.Error())
	assert.ErrorIs(t, err, errSample)
	assert.NotErrorIs(t, err, &Error{Message: errSample.Message})
}

func TestWrapChainsCause(t *testing.T) {
	sentinel := &Error{Message: "reading config file failed"}

	err := sentinel.Wrap(io.ErrUnexpectedEOF)

	assert.Equal(t, "reading config file failed: unexpected EOF", err.Error())
	assert.ErrorIs(t, err, sentinel)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	var target *Error
	assert.True(t, errors.As(err, &target))
}
