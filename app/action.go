package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/tomato-timer/tomato/auth"
	"github.com/tomato-timer/tomato/internal/config"
	"github.com/tomato-timer/tomato/internal/engine"
	"github.com/tomato-timer/tomato/internal/hook"
	"github.com/tomato-timer/tomato/internal/models"
	"github.com/tomato-timer/tomato/internal/notify"
	"github.com/tomato-timer/tomato/internal/osutil"
	"github.com/tomato-timer/tomato/internal/pathutil"
	"github.com/tomato-timer/tomato/internal/status"
	"github.com/tomato-timer/tomato/report"
	"github.com/tomato-timer/tomato/timer"
	"github.com/tomato-timer/tomato/tui"
)

const (
	envNoColor       = "NO_COLOR"
	envTomatoNoColor = "TOMATO_NO_COLOR"
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// defaultAction starts the timer screen.
func defaultAction(ctx *cli.Context) error {
	e, err := newEnv(ctx, true, config.WithCLIConfig(ctx))
	if err != nil {
		return err
	}

	defer e.Close()

	tasks, err := signedInTasks(ctx.Context, e)
	if err != nil {
		return err
	}

	taskID := e.cfg.CLI.TaskID
	if taskID != "" && findTask(tasks, taskID) == nil {
		return errUnknownTask.Fmt(taskID)
	}

	sortTasks(tasks)

	hk, err := hook.New(e.cfg.Settings.SessionCmd, e.logger)
	if err != nil {
		return err
	}

	// the icon path is empty if the file is not found
	icon, _ := xdg.SearchDataFile(appDir + "/icon.png")

	sound := notify.WithSound(e.cfg.Notifications.Sound)
	if e.cfg.Notifications.Sound == config.SoundOff {
		sound = notify.Silent()
	}

	notifier := notify.New(
		e.cfg.Notifications.Enabled,
		e.logger,
		sound,
		notify.WithIcon(icon),
	)

	cfg := e.cfg

	t := timer.New(
		cfg.Timer(),
		timer.WithIdentity(e.auth),
		timer.WithPersistence(e.db),
		timer.WithNotifier(notifier),
		timer.WithHook(hk),
		timer.WithLogger(e.logger),
		timer.WithMessages(func(m engine.Mode) string {
			return cfg.Session(m).Message
		}),
	)

	return runTimer(ctx.Context, e, t, taskID, tasks)
}

// signedInTasks returns the tasks of the signed in user. Without a signed in
// user the timer still works but nothing is saved.
func signedInTasks(ctx context.Context, e *env) ([]*models.Task, error) {
	u, err := e.auth.CurrentUser(ctx)
	if errors.Is(err, auth.ErrNotSignedIn) {
		report.Warning("not signed in: completed sessions will not be saved")
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return e.db.Tasks(ctx, u.ID)
}

// runTimer runs the timer loop, the status file writer, and the terminal
// front end together. Quitting the front end stops the other two.
func runTimer(
	ctx context.Context,
	e *env,
	t *timer.Timer,
	taskID string,
	tasks []*models.Task,
) error {
	g, gctx := errgroup.WithContext(ctx)

	runCtx, cancel := context.WithCancel(gctx)
	defer cancel()

	events, unsubscribe := t.Subscribe()

	g.Go(func() error {
		return t.Run(runCtx)
	})

	g.Go(func() error {
		defer unsubscribe()

		return trackStatus(runCtx, events, e.paths.StatusFile, e.logger)
	})

	if taskID != "" {
		if _, err := t.SetActiveTask(runCtx, taskID); err != nil {
			cancel()
			_ = g.Wait()

			return err
		}
	}

	config.Watch(e.paths.ConfigFile, e.logger, func(p engine.ConfigPatch) {
		if _, err := t.SetConfig(runCtx, p); err != nil {
			e.logger.Debug("config change not applied", slog.Any("error", err))
		}
	})

	model := tui.New(runCtx, t, tui.Options{
		Config: e.cfg,
		Logger: e.logger,
		Tasks:  tasks,
	})

	g.Go(func() error {
		defer cancel()
		defer model.Close()

		_, err := tea.NewProgram(model, tea.WithContext(runCtx)).Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}

		return err
	})

	return g.Wait()
}

// trackStatus keeps the status file in step with the timer until ctx is
// cancelled, then removes it.
func trackStatus(
	ctx context.Context,
	events <-chan timer.Event,
	path string,
	logger *slog.Logger,
) error {
	defer func() {
		if err := status.Remove(path); err != nil {
			logger.Warn("unable to remove status file", slog.Any("error", err))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case e, ok := <-events:
			if !ok {
				return nil
			}

			if e.Kind != timer.EventState && e.Kind != timer.EventFinished {
				continue
			}

			err := status.Write(path, status.FromState(e.State, time.Now()))
			if err != nil {
				logger.Warn("unable to write status file", slog.Any("error", err))
			}
		}
	}
}

// staleAfter is how long a running timer may go without updating the status
// file before it is assumed to have crashed.
const staleAfter = time.Minute

// statusAction prints the status of the running timer, if any.
func statusAction(ctx *cli.Context) error {
	paths, err := pathutil.New(appDir)
	if err != nil {
		return err
	}

	s, err := status.Read(paths.StatusFile)
	if errors.Is(err, status.ErrNotRunning) {
		return nil
	}

	if err != nil {
		return err
	}

	now := time.Now()

	if s.Running && now.Sub(s.UpdatedAt) > staleAfter {
		return nil
	}

	fmt.Fprintln(ctx.App.Writer, s.Format(now))

	return nil
}

// editConfigAction opens the config file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == osutil.Windows {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	paths, err := pathutil.New(appDir)
	if err != nil {
		return err
	}

	// write the defaults if there is no file to edit yet
	if _, err := os.Stat(paths.ConfigFile); errors.Is(err, os.ErrNotExist) {
		if _, err := config.New(config.WithViperConfig(paths.ConfigFile)); err != nil {
			return err
		}
	}

	cmd := exec.Command(editor, paths.ConfigFile)

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	_, noColor := os.LookupEnv(envNoColor)
	_, tomatoNoColor := os.LookupEnv(envTomatoNoColor)

	if noColor || tomatoNoColor || ctx.Bool("no-color") {
		disableStyling()
	}

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.DebugContext(ctx.Context, "exiting tomato")

	return nil
}
