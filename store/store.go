// Package store connects to the data store and manages users, tasks and
// focus sessions
package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/tomato-timer/tomato/internal/models"
)

// Driver names a storage backend.
type Driver string

const (
	DriverBolt   Driver = "bolt"
	DriverSQLite Driver = "sqlite"
)

// Drivers lists the supported backends.
var Drivers = []Driver{DriverBolt, DriverSQLite}

// Open connects to the backend named by driver at path.
func Open(driver Driver, path string) (DB, error) {
	switch driver {
	case DriverBolt, "":
		return NewBoltClient(path)
	case DriverSQLite:
		return NewSQLiteClient(path)
	}

	return nil, errUnknownDriver.Fmt(driver)
}

func prepareUser(u *models.User, now time.Time) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
}

func prepareTask(t *models.Task, now time.Time) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}

	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = t.CreatedAt
	}

	if t.Status == "" {
		t.Status = models.StatusTodo
	}

	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}

	if t.Category == "" {
		t.Category = "other"
	}
}

func prepareSession(s *models.Session) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
}
