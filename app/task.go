package app

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/maruel/natural"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/tomato-timer/tomato/internal/models"
	"github.com/tomato-timer/tomato/internal/timeutil"
	"github.com/tomato-timer/tomato/internal/ui"
	"github.com/tomato-timer/tomato/report"
	"github.com/tomato-timer/tomato/store"
)

const noTasksMsg = "No tasks yet: add one with 'tomato task add <title>'"

// newTask builds a task for userID from the arguments of `task add`.
func newTask(ctx *cli.Context, userID string, now time.Time) (*models.Task, error) {
	title := strings.TrimSpace(strings.Join(ctx.Args().Slice(), " "))
	if title == "" {
		return nil, errMissingTitle
	}

	priority := models.TaskPriority(strings.ToLower(ctx.String("priority")))
	if !priority.Valid() {
		return nil, errInvalidPriority.Fmt(ctx.String("priority"))
	}

	estimate := ctx.Int("estimate")
	if estimate < 0 {
		return nil, errInvalidEstimate.Fmt(estimate)
	}

	t := &models.Task{
		UserID:             userID,
		Title:              title,
		Description:        strings.TrimSpace(ctx.String("description")),
		Category:           strings.ToLower(strings.TrimSpace(ctx.String("category"))),
		Priority:           priority,
		EstimatedPomodoros: estimate,
	}

	if planned := ctx.String("planned"); planned != "" {
		d, err := timeutil.FromStr(planned, now)
		if err != nil {
			return nil, err
		}

		t.PlannedDate = &d
	}

	return t, nil
}

func taskAddAction(ctx *cli.Context) error {
	e, err := newEnv(ctx, false)
	if err != nil {
		return err
	}

	defer e.Close()

	u, err := e.auth.CurrentUser(ctx.Context)
	if err != nil {
		return err
	}

	t, err := newTask(ctx, u.ID, time.Now())
	if err != nil {
		return err
	}

	if err := e.db.CreateTask(ctx.Context, t); err != nil {
		return err
	}

	report.Success("added task %s", ui.Highlight(t.Title))
	pterm.Fprintln(ctx.App.Writer, t.ID)

	return nil
}

func taskListAction(ctx *cli.Context) error {
	format, err := outputFormat(ctx)
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

	tasks, err := e.db.Tasks(ctx.Context, u.ID)
	if err != nil {
		return err
	}

	sortTasks(tasks)

	if format != formatTable {
		return encode(ctx.App.Writer, format, tasks)
	}

	if len(tasks) == 0 {
		report.Info(noTasksMsg)
		return nil
	}

	ui.PrintTable(tasksTable(tasks), ctx.App.Writer)

	return nil
}

// sortTasks orders tasks by title so that "Chapter 2" comes before
// "Chapter 10".
func sortTasks(tasks []*models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return natural.Less(tasks[i].Title, tasks[j].Title)
	})
}

func findTask(tasks []*models.Task, id string) *models.Task {
	for _, t := range tasks {
		if t.ID == id {
			return t
		}
	}

	return nil
}

func tasksTable(tasks []*models.Task) [][]string {
	rows := [][]string{
		{"ID", "TITLE", "CATEGORY", "PRIORITY", "STATUS", "POMODOROS"},
	}

	for _, t := range tasks {
		pomodoros := strconv.Itoa(t.ActualPomodoros)
		if t.EstimatedPomodoros > 0 {
			pomodoros += "/" + strconv.Itoa(t.EstimatedPomodoros)
		}

		rows = append(rows, []string{
			t.ID,
			t.Title,
			t.Category,
			string(t.Priority),
			string(t.Status),
			pomodoros,
		})
	}

	return rows
}
