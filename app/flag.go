package app

import "github.com/urfave/cli/v2"

var (
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	taskFlag = &cli.StringFlag{
		Name:    "task",
		Aliases: []string{"t"},
		Usage:   "ID of the task that completed work sessions are credited to",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears after a session is completed",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after each session",
	}

	soundFlag = &cli.StringFlag{
		Name:  "sound",
		Usage: "Audio file (mp3, ogg, flac or wav) to play when a session ends. Defaults to the system beep. Disable sound by setting to 'off'",
	}

	shortBreakFlag = &cli.StringFlag{
		Name:    "short-break",
		Aliases: []string{"s"},
		Usage:   "Short break duration in minutes (default: 5)",
	}

	longBreakFlag = &cli.StringFlag{
		Name:    "long-break",
		Aliases: []string{"l"},
		Usage:   "Long break duration in minutes (default: 15)",
	}

	longBreakIntervalFlag = &cli.IntFlag{
		Name:    "long-break-interval",
		Aliases: []string{"int"},
		Usage:   "The number of work sessions before a long break (default: 4)",
	}

	workFlag = &cli.StringFlag{
		Name:    "work",
		Aliases: []string{"w"},
		Usage:   "Work duration in minutes (default: 25)",
	}

	emailFlag = &cli.StringFlag{
		Name:    "email",
		Aliases: []string{"e"},
		Usage:   "Account email address",
	}

	passwordStdinFlag = &cli.BoolFlag{
		Name:  "password-stdin",
		Usage: "Read the password from standard input instead of prompting for it",
	}

	sinceFlag = &cli.StringFlag{
		Name:  "since",
		Usage: "Only show sessions started after this time (e.g. '2 days ago', 'last monday'). Defaults to 7 days ago",
	}

	untilFlag = &cli.StringFlag{
		Name:  "until",
		Usage: "Only show sessions started before this time. Defaults to now",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print output as JSON",
	}

	yamlFlag = &cli.BoolFlag{
		Name:  "yaml",
		Usage: "Print output as YAML",
	}

	descriptionFlag = &cli.StringFlag{
		Name:  "description",
		Usage: "Longer description of the task",
	}

	categoryFlag = &cli.StringFlag{
		Name:  "category",
		Usage: "Task category: work, study, life, other, or any custom value",
		Value: "other",
	}

	priorityFlag = &cli.StringFlag{
		Name:  "priority",
		Usage: "Task priority: low, medium, high, or urgent",
		Value: "medium",
	}

	estimateFlag = &cli.IntFlag{
		Name:  "estimate",
		Usage: "Estimated number of pomodoros needed for the task",
	}

	plannedFlag = &cli.StringFlag{
		Name:  "planned",
		Usage: "When you plan to work on the task (e.g. 'tomorrow')",
	}
)
