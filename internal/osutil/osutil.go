// Package osutil holds operating system constants shared across packages
package osutil

import "io/fs"

const Windows = "windows"

type exitCode int

const (
	ExitOK    exitCode = 0
	ExitError exitCode = 1
)

// Code returns the value passed to os.Exit.
func (c exitCode) Code() int {
	return int(c)
}

const (
	// DirPermission is used for every directory tomato creates.
	DirPermission fs.FileMode = 0o750
	// FilePermission is used for databases, session and status files.
	FilePermission fs.FileMode = 0o600
)
