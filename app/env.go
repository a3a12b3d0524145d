package app

import (
	"errors"
	"io"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/tomato-timer/tomato/auth"
	"github.com/tomato-timer/tomato/internal/config"
	"github.com/tomato-timer/tomato/internal/logging"
	"github.com/tomato-timer/tomato/internal/pathutil"
	"github.com/tomato-timer/tomato/internal/ui"
	"github.com/tomato-timer/tomato/store"
)

const appDir = "tomato"

// env holds what a command needs. It is built once per invocation and
// passed explicitly.
type env struct {
	paths  *pathutil.Paths
	cfg    *config.Config
	logger *slog.Logger
	db     store.DB
	auth   *auth.Service
	logs   io.Closer
}

// newEnv loads the configuration, opens the log file and the store, and
// wires the identity provider. When firstRun is set the user is asked for
// the timer durations if no config file exists yet. Overrides run after the
// config file is read.
func newEnv(
	ctx *cli.Context,
	firstRun bool,
	overrides ...config.Option,
) (*env, error) {
	paths, err := pathutil.New(appDir)
	if err != nil {
		return nil, err
	}

	var opts []config.Option

	if firstRun {
		opts = append(opts, config.WithPromptConfig(paths.ConfigFile))
	}

	opts = append(opts, config.WithViperConfig(paths.ConfigFile))
	opts = append(opts, overrides...)

	cfg, err := config.New(opts...)
	if err != nil {
		return nil, err
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	logger, logs := logging.New(logging.Options{
		File:       paths.LogFile,
		Level:      cfg.Log.Level,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})

	slog.SetDefault(logger)

	driver := store.Driver(cfg.Storage.Driver)

	db, err := store.Open(driver, paths.DBFile(cfg.Storage.Driver))
	if err != nil {
		_ = logs.Close()
		return nil, err
	}

	logger.DebugContext(
		ctx.Context,
		"environment ready",
		slog.String("driver", string(driver)),
		slog.String("config", paths.ConfigFile),
	)

	return &env{
		paths:  paths,
		cfg:    cfg,
		logger: logger,
		db:     db,
		auth:   auth.New(db, paths.AuthFile, logger),
		logs:   logs,
	}, nil
}

func (e *env) Close() error {
	return errors.Join(e.db.Close(), e.logs.Close())
}
