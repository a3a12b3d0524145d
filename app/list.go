package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/tomato-timer/tomato/internal/models"
	"github.com/tomato-timer/tomato/internal/timeutil"
	"github.com/tomato-timer/tomato/internal/ui"
	"github.com/tomato-timer/tomato/report"
)

const (
	noSessionsMsg = "No sessions found for the specified time range"

	defaultSessionRange = 7 * 24 * time.Hour
)

type format int

const (
	formatTable format = iota
	formatJSON
	formatYAML
)

func outputFormat(ctx *cli.Context) (format, error) {
	switch j, y := ctx.Bool("json"), ctx.Bool("yaml"); {
	case j && y:
		return formatTable, errConflictingFormats
	case j:
		return formatJSON, nil
	case y:
		return formatYAML, nil
	}

	return formatTable, nil
}

// encode writes v to w as JSON or YAML.
func encode(w io.Writer, f format, v any) error {
	if f == formatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(v); err != nil {
			return err
		}

		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

// sessionRange resolves --since and --until relative to now. Without flags
// it covers the last seven days up to the end of today.
func sessionRange(since, until string, now time.Time) (time.Time, time.Time, error) {
	start := timeutil.RoundToStart(now.Add(-defaultSessionRange))
	end := timeutil.RoundToEnd(now)

	var err error

	if since != "" {
		start, err = timeutil.FromStr(since, now)
		if err != nil {
			return start, end, err
		}
	}

	if until != "" {
		end, err = timeutil.FromStr(until, now)
		if err != nil {
			return start, end, err
		}
	}

	return start, end, nil
}

// sessionsAction prints the work sessions recorded within a time period.
func sessionsAction(ctx *cli.Context) error {
	format, err := outputFormat(ctx)
	if err != nil {
		return err
	}

	since, until, err := sessionRange(
		ctx.String("since"),
		ctx.String("until"),
		time.Now(),
	)
	if err != nil {
		return err
	}

	e, err := newEnv(ctx, false)
	if err != nil {
		return err
	}

	defer e.Close()

	u, err := e.auth.CurrentUser(ctx.Context)
	if err != nil {
		return err
	}

	sessions, err := e.db.Sessions(ctx.Context, u.ID, since, until)
	if err != nil {
		return err
	}

	if format != formatTable {
		return encode(ctx.App.Writer, format, sessions)
	}

	if len(sessions) == 0 {
		report.Info(noSessionsMsg)
		return nil
	}

	tasks, err := e.db.Tasks(ctx.Context, u.ID)
	if err != nil {
		return err
	}

	ui.PrintTable(
		sessionsTable(sessions, tasks, e.cfg.Settings.TwentyFourHour),
		ctx.App.Writer,
	)

	return nil
}

func sessionsTable(
	sessions []*models.Session,
	tasks []*models.Task,
	twentyFourHour bool,
) [][]string {
	layout := "Jan 02, 2006 03:04 PM"
	if twentyFourHour {
		layout = "Jan 02, 2006 15:04"
	}

	rows := [][]string{
		{"#", "START DATE", "END DATE", "MINUTES", "TASK", "STATUS"},
	}

	for i, sess := range sessions {
		statusText := ui.Green("completed")
		if !sess.Completed {
			statusText = ui.Red("abandoned")
		}

		task := sess.TaskID
		if t := findTask(tasks, sess.TaskID); t != nil {
			task = t.Title
		}

		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			sess.StartedAt.Local().Format(layout),
			sess.CompletedAt.Local().Format(layout),
			strconv.Itoa(sess.DurationMinutes),
			task,
			statusText,
		})
	}

	return rows
}
