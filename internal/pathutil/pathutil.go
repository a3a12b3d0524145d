// Package pathutil manages application file paths and locations
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/tomato-timer/tomato/internal/osutil"
)

const envName = "TOMATO_ENV"

// Paths holds the locations of every file tomato reads or writes.
type Paths struct {
	ConfigFile string
	BoltFile   string
	SQLiteFile string
	StatusFile string
	AuthFile   string
	LogFile    string
	AppDir     string
	fileSuffix string
}

// New computes the paths under the XDG base directories, creating parent
// directories as needed. Setting TOMATO_ENV keeps a separate set of files
// (e.g. TOMATO_ENV=dev uses config_dev.yml and tomato_dev.db).
func New(appDir string) (*Paths, error) {
	p := &Paths{
		AppDir: appDir,
	}

	if env := strings.TrimSpace(os.Getenv(envName)); env != "" {
		p.fileSuffix = "_" + env
	}

	var err error

	p.ConfigFile, err = xdg.ConfigFile(p.rel("config%s.yml"))
	if err != nil {
		return nil, err
	}

	dataDir, err := xdg.DataFile(appDir)
	if err != nil {
		return nil, err
	}

	if err = os.MkdirAll(dataDir, osutil.DirPermission); err != nil {
		return nil, err
	}

	p.BoltFile = filepath.Join(dataDir, p.name("tomato%s.db"))
	p.SQLiteFile = filepath.Join(dataDir, p.name("tomato%s.sqlite"))
	p.StatusFile = filepath.Join(dataDir, p.name("status%s.json"))
	p.LogFile = filepath.Join(dataDir, "log", p.name("tomato%s.log"))

	p.AuthFile, err = xdg.StateFile(p.rel("session%s.json"))
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Paths) name(pattern string) string {
	return fmt.Sprintf(pattern, p.fileSuffix)
}

func (p *Paths) rel(pattern string) string {
	return filepath.Join(p.AppDir, p.name(pattern))
}

// DBFile returns the database path used by the named storage driver.
func (p *Paths) DBFile(driver string) string {
	if driver == "sqlite" {
		return p.SQLiteFile
	}

	return p.BoltFile
}
