// Package app defines the tomato command-line interface
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/tomato-timer/tomato/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the tomato app instance.
func Get() *cli.App {
	return &cli.App{
		Name: "tomato",
		Usage: `
		Tomato is a task-aware pomodoro timer for the command-line. Work in
		focused sessions separated by short breaks, take a long break every few
		sessions, and keep a record of the sessions spent on each task.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "signup",
				Usage:  "Create an account and sign in",
				Flags:  []cli.Flag{emailFlag, passwordStdinFlag},
				Action: signupAction,
			},
			{
				Name:   "login",
				Usage:  "Sign in to an existing account",
				Flags:  []cli.Flag{emailFlag, passwordStdinFlag},
				Action: loginAction,
			},
			{
				Name:   "logout",
				Usage:  "Sign out",
				Action: logoutAction,
			},
			{
				Name:   "whoami",
				Usage:  "Print the signed in account",
				Action: whoamiAction,
			},
			{
				Name:  "task",
				Usage: "Manage the tasks that work sessions are credited to",
				Subcommands: []*cli.Command{
					{
						Name:      "add",
						Usage:     "Add a task",
						ArgsUsage: "<title>",
						Flags: []cli.Flag{
							descriptionFlag,
							categoryFlag,
							priorityFlag,
							estimateFlag,
							plannedFlag,
						},
						Action: taskAddAction,
					},
					{
						Name:   "list",
						Usage:  "List your tasks",
						Flags:  []cli.Flag{jsonFlag, yamlFlag},
						Action: taskListAction,
					},
				},
			},
			{
				Name:   "sessions",
				Usage:  "List recorded work sessions. Defaults to the last 7 days",
				Flags:  []cli.Flag{sinceFlag, untilFlag, jsonFlag, yamlFlag},
				Action: sessionsAction,
			},
			{
				Name:   "status",
				Usage:  "Print the status of the running timer",
				Action: statusAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			taskFlag,
			workFlag,
			shortBreakFlag,
			longBreakFlag,
			longBreakIntervalFlag,
			disableNotificationFlag,
			soundFlag,
			sessionCmdFlag,
			noColorFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
		After:  afterAction,
	}
}
