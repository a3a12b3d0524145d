// Package testutil holds helpers shared by tests
package testutil

import (
	"runtime"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/tomato-timer/tomato/internal/osutil"
)

// CompareGolden verifies that got matches testdata/<name>.golden. Run the
// tests with -update to rewrite the golden files.
func CompareGolden(t *testing.T, name string, got []byte) {
	t.Helper()

	if runtime.GOOS == osutil.Windows {
		// TODO: normalise CRLF output so golden files can be compared on Windows
		t.Skip("skipping golden file test on Windows")
	}

	g := goldie.New(
		t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)

	g.Assert(t, name, got)
}
