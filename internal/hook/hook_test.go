package hook

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomato-timer/tomato/internal/engine"
	"github.com/tomato-timer/tomato/internal/logging"
	"github.com/tomato-timer/tomato/internal/notify"
	"github.com/tomato-timer/tomato/internal/osutil"
)

func TestNewParsesQuotes(t *testing.T) {
	c, err := New(`notify-send "Time's up" 'take a break'`, logging.Discard())
	require.NoError(t, err)

	assert.Equal(t, []string{"notify-send", "Time's up", "take a break"}, c.args)

	_, err = New(`echo "unterminated`, logging.Discard())
	assert.ErrorIs(t, err, errParseCmd)
}

func TestEmptyCommand(t *testing.T) {
	c, err := New("   ", logging.Discard())
	require.NoError(t, err)

	assert.True(t, c.Empty())
	assert.NoError(t, c.Run(context.Background(), notify.Alert{}))
}

func TestRunPassesAlert(t *testing.T) {
	if runtime.GOOS == osutil.Windows {
		t.Skip("uses sh")
	}

	out := filepath.Join(t.TempDir(), "out.txt")

	c, err := New(
		`sh -c 'echo "$TOMATO_FINISHED $TOMATO_NEXT $TOMATO_TASK_ID $TOMATO_COMPLETED" > "$0"' `+out,
		logging.Discard(),
	)
	require.NoError(t, err)

	err = c.Run(context.Background(), notify.Alert{
		Finished:  engine.Work,
		Next:      engine.LongBreak,
		TaskID:    "task-1",
		Completed: 4,
	})
	require.NoError(t, err)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "work long_break task-1 4\n", string(b))
}

func TestRunFailure(t *testing.T) {
	if runtime.GOOS == osutil.Windows {
		t.Skip("uses sh")
	}

	c, err := New(`sh -c 'exit 3'`, logging.Discard())
	require.NoError(t, err)

	assert.Error(t, c.Run(context.Background(), notify.Alert{}))
}
