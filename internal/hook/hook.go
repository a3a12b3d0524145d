// Package hook runs the user's session command after a countdown ends.
package hook

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/tomato-timer/tomato/internal/notify"
)

const defaultTimeout = time.Minute

// Command is a parsed session_cmd.
type Command struct {
	logger  *slog.Logger
	args    []string
	timeout time.Duration
}

// New parses cmdline with shell quoting rules. An empty cmdline gives a
// Command that does nothing.
func New(cmdline string, logger *slog.Logger) (*Command, error) {
	args, err := shellquote.Split(cmdline)
	if err != nil {
		return nil, errParseCmd.Wrap(err)
	}

	return &Command{
		args:    args,
		logger:  logger,
		timeout: defaultTimeout,
	}, nil
}

// Empty reports whether there is no command to run.
func (c *Command) Empty() bool {
	return len(c.args) == 0
}

// Run executes the command. Details of the alert are passed in TOMATO_*
// environment variables.
func (c *Command) Run(ctx context.Context, a notify.Alert) error {
	if c.Empty() {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.args[0], c.args[1:]...)
	cmd.Env = append(
		os.Environ(),
		"TOMATO_FINISHED="+string(a.Finished),
		"TOMATO_NEXT="+string(a.Next),
		"TOMATO_TASK_ID="+a.TaskID,
		"TOMATO_COMPLETED="+strconv.Itoa(a.Completed),
	)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", c.args[0], err, out)
	}

	c.logger.Debug(
		"session command finished",
		slog.String("cmd", c.args[0]),
		slog.Int("output_bytes", len(out)),
	)

	return nil
}
