package pathutil

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithEnvSuffix(t *testing.T) {
	tmp := t.TempDir()

	// registered first so that it runs after the environment is restored
	t.Cleanup(xdg.Reload)

	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmp, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))
	t.Setenv(envName, "test")

	xdg.Reload()

	p, err := New("tomato")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmp, "config", "tomato", "config_test.yml"), p.ConfigFile)
	assert.Equal(t, filepath.Join(tmp, "data", "tomato", "tomato_test.db"), p.DBFile("bolt"))
	assert.Equal(t, filepath.Join(tmp, "data", "tomato", "tomato_test.sqlite"), p.DBFile("sqlite"))
	assert.True(t, strings.HasPrefix(p.AuthFile, filepath.Join(tmp, "state")))
}
