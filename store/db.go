package store

import (
	"context"
	"time"

	"github.com/tomato-timer/tomato/internal/models"
)

// DB is the persistence interface shared by every storage backend.
type DB interface {
	// CreateUser stores a new user. It fails with ErrEmailTaken if another
	// user has the same email address.
	CreateUser(ctx context.Context, u *models.User) error
	// UserByEmail retrieves the user registered with email
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// UserByID retrieves the user with the given id
	UserByID(ctx context.Context, id string) (*models.User, error)
	// CreateTask stores a new task, assigning an ID and timestamps if absent
	CreateTask(ctx context.Context, t *models.Task) error
	// Task retrieves a single task
	Task(ctx context.Context, id string) (*models.Task, error)
	// Tasks returns every task belonging to userID
	Tasks(ctx context.Context, userID string) ([]*models.Task, error)
	// RecordSession stores a completed focus session
	RecordSession(ctx context.Context, s *models.Session) error
	// IncrementTaskSessionCount adds one to the actual pomodoro count of a
	// task
	IncrementTaskSessionCount(ctx context.Context, taskID string) error
	// Sessions returns the sessions of userID that started within
	// [since, until], oldest first
	Sessions(
		ctx context.Context,
		userID string,
		since, until time.Time,
	) ([]*models.Session, error)
	// Close ends the database connection
	Close() error
}
