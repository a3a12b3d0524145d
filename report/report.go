// Package report prints user facing messages from commands
package report

import "github.com/pterm/pterm"

func Success(format string, a ...any) {
	pterm.Success.Printfln(format, a...)
}

func Info(msg string) {
	pterm.Info.Println(msg)
}

func Warning(msg string) {
	pterm.Warning.Println(msg)
}

func Error(err error) {
	pterm.Error.Println(err)
}
