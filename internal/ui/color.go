// Package ui holds the colours and tables used for command output
package ui

import "github.com/pterm/pterm"

// DarkTheme selects the lighter variant of each colour.
var DarkTheme bool

type palette struct {
	light pterm.Color
	dark  pterm.Color
}

func (p palette) sprint(a any) string {
	if DarkTheme {
		return p.dark.Sprint(a)
	}

	return p.light.Sprint(a)
}

var (
	green     = palette{light: pterm.FgGreen, dark: pterm.FgLightGreen}
	red       = palette{light: pterm.FgRed, dark: pterm.FgLightRed}
	highlight = palette{light: pterm.FgBlack, dark: pterm.FgLightWhite}
)

func Green(a any) string {
	return green.sprint(a)
}

func Red(a any) string {
	return red.sprint(a)
}

// Highlight makes a value stand out from the surrounding text.
func Highlight(a any) string {
	return highlight.sprint(a)
}
