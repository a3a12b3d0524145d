package ui

import (
	"bytes"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func TestPrintTable(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	var buf bytes.Buffer

	PrintTable([][]string{
		{"ID", "TITLE"},
		{"1", "Write report"},
	}, &buf)

	out := buf.String()
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Write report")
}

func TestColorsKeepText(t *testing.T) {
	for _, dark := range []bool{true, false} {
		DarkTheme = dark

		assert.Contains(t, Green("completed"), "completed")
		assert.Contains(t, Red("abandoned"), "abandoned")
		assert.Contains(t, Highlight("task"), "task")
	}

	DarkTheme = false
}
