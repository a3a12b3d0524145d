package app

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/tomato-timer/tomato/internal/engine"
	"github.com/tomato-timer/tomato/internal/logging"
	"github.com/tomato-timer/tomato/internal/models"
	"github.com/tomato-timer/tomato/internal/pathutil"
	"github.com/tomato-timer/tomato/internal/status"
	"github.com/tomato-timer/tomato/internal/testutil"
	"github.com/tomato-timer/tomato/store"
	"github.com/tomato-timer/tomato/timer"
)

var sampleSessions = []*models.Session{
	{
		ID:              "s1",
		UserID:          "u1",
		TaskID:          "t1",
		StartedAt:       time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		CompletedAt:     time.Date(2024, 5, 1, 9, 25, 0, 0, time.UTC),
		DurationMinutes: 25,
		Completed:       true,
	},
}

func TestEncodeGolden(t *testing.T) {
	cases := []struct {
		name   string
		format format
	}{
		{name: "sessions_json", format: formatJSON},
		{name: "sessions_yaml", format: formatYAML},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer

			require.NoError(t, encode(&buf, tc.format, sampleSessions))

			testutil.CompareGolden(t, tc.name, buf.Bytes())
		})
	}
}

func newCLIContext(t *testing.T, flags []cli.Flag, args ...string) *cli.Context {
	t.Helper()

	set := flag.NewFlagSet("test", flag.ContinueOnError)

	for _, f := range flags {
		require.NoError(t, f.Apply(set))
	}

	require.NoError(t, set.Parse(args))

	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestOutputFormat(t *testing.T) {
	flags := []cli.Flag{jsonFlag, yamlFlag}

	f, err := outputFormat(newCLIContext(t, flags))
	require.NoError(t, err)
	assert.Equal(t, formatTable, f)

	f, err = outputFormat(newCLIContext(t, flags, "--json"))
	require.NoError(t, err)
	assert.Equal(t, formatJSON, f)

	f, err = outputFormat(newCLIContext(t, flags, "--yaml"))
	require.NoError(t, err)
	assert.Equal(t, formatYAML, f)

	_, err = outputFormat(newCLIContext(t, flags, "--json", "--yaml"))
	assert.ErrorIs(t, err, errConflictingFormats)
}

func TestSessionRangeDefault(t *testing.T) {
	now := time.Date(2024, 5, 8, 15, 30, 0, 0, time.UTC)

	since, until, err := sessionRange("", "", now)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), since)
	assert.Equal(t, time.Date(2024, 5, 8, 23, 59, 59, 0, time.UTC), until)
}

func TestSessionRangeInvalid(t *testing.T) {
	_, _, err := sessionRange("   ", "", time.Now())
	assert.Error(t, err)
}

func TestNewTask(t *testing.T) {
	flags := []cli.Flag{
		descriptionFlag,
		categoryFlag,
		priorityFlag,
		estimateFlag,
		plannedFlag,
	}

	ctx := newCLIContext(t, flags,
		"--priority", "HIGH",
		"--category", " Study ",
		"--estimate", "3",
		"Read", "chapter", "4",
	)

	got, err := newTask(ctx, "u1", time.Now())
	require.NoError(t, err)

	want := &models.Task{
		UserID:             "u1",
		Title:              "Read chapter 4",
		Category:           "study",
		Priority:           models.PriorityHigh,
		EstimatedPomodoros: 3,
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("newTask() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewTaskErrors(t *testing.T) {
	flags := []cli.Flag{priorityFlag, estimateFlag}

	cases := []struct {
		want error
		name string
		args []string
	}{
		{name: "missing title", args: nil, want: errMissingTitle},
		{
			name: "bad priority",
			args: []string{"--priority", "someday", "Write"},
			want: errInvalidPriority,
		},
		{
			name: "negative estimate",
			args: []string{"--estimate", "-1", "Write"},
			want: errInvalidEstimate,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newTask(newCLIContext(t, flags, tc.args...), "u1", time.Now())
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSortTasksNaturalOrder(t *testing.T) {
	tasks := []*models.Task{
		{Title: "Chapter 10"},
		{Title: "Chapter 2"},
		{Title: "Appendix"},
	}

	sortTasks(tasks)

	var titles []string
	for _, task := range tasks {
		titles = append(titles, task.Title)
	}

	assert.Equal(t, []string{"Appendix", "Chapter 2", "Chapter 10"}, titles)
}

func TestTasksTable(t *testing.T) {
	rows := tasksTable([]*models.Task{
		{
			ID:                 "t1",
			Title:              "Write report",
			Category:           "work",
			Priority:           models.PriorityMedium,
			Status:             models.StatusTodo,
			ActualPomodoros:    1,
			EstimatedPomodoros: 4,
		},
		{ID: "t2", Title: "Inbox", ActualPomodoros: 2},
	})

	require.Len(t, rows, 3)
	assert.Equal(t, "1/4", rows[1][5])
	assert.Equal(t, "2", rows[2][5])
}

func TestSessionsTableUsesTaskTitles(t *testing.T) {
	rows := sessionsTable(
		sampleSessions,
		[]*models.Task{{ID: "t1", Title: "Write report"}},
		true,
	)

	require.Len(t, rows, 2)
	assert.Equal(t, "Write report", rows[1][4])
	assert.Equal(t, "25", rows[1][3])
}

func TestFirstNonEmptyString(t *testing.T) {
	assert.Equal(t, "vim", firstNonEmptyString("", "vim", "nano"))
	assert.Empty(t, firstNonEmptyString("", ""))
}

func TestTrackStatus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.json")
	events := make(chan timer.Event)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- trackStatus(ctx, events, path, logging.Discard())
	}()

	st := engine.New(engine.DefaultConfig())
	st.Running = true

	events <- timer.Event{Kind: timer.EventState, State: st}
	events <- timer.Event{Kind: timer.EventRecorded}

	assert.Eventually(t, func() bool {
		s, err := status.Read(path)
		return err == nil && s.Running
	}, time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	_, err := status.Read(path)
	assert.ErrorIs(t, err, status.ErrNotRunning)
}

// isolate points every XDG directory at a temporary location.
func isolate(t *testing.T) {
	t.Helper()

	dir := t.TempDir()

	// registered first so that it runs after the environment is restored
	t.Cleanup(xdg.Reload)

	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("TOMATO_ENV", "")
	t.Setenv("TOMATO_NO_COLOR", "1")
	xdg.Reload()
}

// run executes the CLI with args and returns what it wrote.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	a := Get()
	a.Reader = strings.NewReader(stdin)
	a.Writer = &out
	a.ErrWriter = &out

	err := a.RunContext(context.Background(), append([]string{"tomato"}, args...))

	return out.String(), err
}

func TestCommandsEndToEnd(t *testing.T) {
	isolate(t)

	_, err := run(t, "", "whoami")
	require.Error(t, err, "nobody is signed in yet")

	_, err = run(t, "hunter22\n",
		"signup", "--email", "Ada@Example.com", "--password-stdin")
	require.NoError(t, err)

	out, err := run(t, "", "whoami")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com\n", out)

	out, err = run(t, "", "task", "add", "--estimate", "2", "Write", "report")
	require.NoError(t, err)

	taskID := strings.TrimSpace(out)
	require.NotEmpty(t, taskID)

	out, err = run(t, "", "task", "list", "--json")
	require.NoError(t, err)

	var tasks []models.Task
	require.NoError(t, json.Unmarshal([]byte(out), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "Write report", tasks[0].Title)
	assert.Equal(t, 2, tasks[0].EstimatedPomodoros)

	paths, err := pathutil.New(appDir)
	require.NoError(t, err)

	recordSession(t, paths.BoltFile, tasks[0])

	out, err = run(t, "", "sessions", "--json")
	require.NoError(t, err)

	var sessions []models.Session
	require.NoError(t, json.Unmarshal([]byte(out), &sessions))
	require.Len(t, sessions, 1)
	assert.Equal(t, taskID, sessions[0].TaskID)

	require.NoError(t, status.Write(
		paths.StatusFile,
		status.FromState(engine.New(engine.DefaultConfig()), time.Now()),
	))

	out, err = run(t, "", "status")
	require.NoError(t, err)
	assert.Equal(t, "[Work 1/4]: 25:00 (paused)\n", out)

	_, err = run(t, "", "logout")
	require.NoError(t, err)

	_, err = run(t, "", "task", "list")
	assert.Error(t, err)

	_, err = run(t, "wrong-password\n",
		"login", "--email", "ada@example.com", "--password-stdin")
	assert.Error(t, err)

	_, err = run(t, "hunter22\n",
		"login", "--email", "ada@example.com", "--password-stdin")
	require.NoError(t, err)
}

func TestStatusWithoutTimer(t *testing.T) {
	isolate(t)

	out, err := run(t, "", "status")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestStatusIgnoresStaleFile(t *testing.T) {
	isolate(t)

	paths, err := pathutil.New(appDir)
	require.NoError(t, err)

	st := engine.New(engine.DefaultConfig())
	st.Running = true

	require.NoError(t, status.Write(
		paths.StatusFile,
		status.FromState(st, time.Now().Add(-time.Hour)),
	))

	out, err := run(t, "", "status")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func recordSession(t *testing.T, dbFile string, task models.Task) {
	t.Helper()

	db, err := store.Open(store.DriverBolt, dbFile)
	require.NoError(t, err)

	defer db.Close()

	now := time.Now()

	require.NoError(t, db.RecordSession(context.Background(), &models.Session{
		UserID:          task.UserID,
		TaskID:          task.ID,
		StartedAt:       now.Add(-25 * time.Minute),
		CompletedAt:     now,
		DurationMinutes: 25,
		Completed:       true,
	}))
}

func TestMain(m *testing.M) {
	disableStyling()
	os.Exit(m.Run())
}
