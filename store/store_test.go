package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomato-timer/tomato/internal/models"
)

func openTestDB(t *testing.T, driver Driver) DB {
	t.Helper()

	db, err := Open(driver, filepath.Join(t.TempDir(), "tomato.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

func forEachDriver(t *testing.T, fn func(t *testing.T, db DB)) {
	t.Helper()

	for _, d := range Drivers {
		t.Run(string(d), func(t *testing.T) {
			fn(t, openTestDB(t, d))
		})
	}
}

func TestUnknownDriver(t *testing.T) {
	_, err := Open("postgres", filepath.Join(t.TempDir(), "x.db"))
	assert.ErrorIs(t, err, errUnknownDriver)
}

func TestUsers(t *testing.T) {
	forEachDriver(t, func(t *testing.T, db DB) {
		ctx := context.Background()

		u := &models.User{
			Email:        "ada@example.com",
			PasswordHash: []byte("hash"),
		}

		require.NoError(t, db.CreateUser(ctx, u))
		assert.NotEmpty(t, u.ID)
		assert.False(t, u.CreatedAt.IsZero())

		err := db.CreateUser(ctx, &models.User{Email: "ada@example.com"})
		assert.ErrorIs(t, err, ErrEmailTaken)

		byEmail, err := db.UserByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, byEmail.ID)
		assert.Equal(t, []byte("hash"), byEmail.PasswordHash)

		byID, err := db.UserByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.Email, byID.Email)

		_, err = db.UserByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTasksAndSessionCount(t *testing.T) {
	forEachDriver(t, func(t *testing.T, db DB) {
		ctx := context.Background()

		first := &models.Task{UserID: "u1", Title: "Write report"}
		second := &models.Task{
			UserID:             "u1",
			Title:              "Review PR",
			Priority:           models.PriorityHigh,
			EstimatedPomodoros: 3,
		}
		other := &models.Task{UserID: "u2", Title: "Someone else"}

		require.NoError(t, db.CreateTask(ctx, first))
		require.NoError(t, db.CreateTask(ctx, second))
		require.NoError(t, db.CreateTask(ctx, other))

		assert.Equal(t, models.StatusTodo, first.Status)
		assert.Equal(t, models.PriorityMedium, first.Priority)

		tasks, err := db.Tasks(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, tasks, 2)

		require.NoError(t, db.IncrementTaskSessionCount(ctx, second.ID))
		require.NoError(t, db.IncrementTaskSessionCount(ctx, second.ID))

		got, err := db.Task(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, got.ActualPomodoros)
		assert.Equal(t, 3, got.EstimatedPomodoros)
		assert.Equal(t, models.PriorityHigh, got.Priority)

		err = db.IncrementTaskSessionCount(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = db.Task(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSessionsRange(t *testing.T) {
	forEachDriver(t, func(t *testing.T, db DB) {
		ctx := context.Background()

		base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

		for i := range 4 {
			start := base.Add(time.Duration(i) * 24 * time.Hour)

			err := db.RecordSession(ctx, &models.Session{
				UserID:          "u1",
				TaskID:          "t1",
				DurationMinutes: 25,
				Completed:       true,
				StartedAt:       start,
				CompletedAt:     start.Add(25 * time.Minute),
			})
			require.NoError(t, err)
		}

		require.NoError(t, db.RecordSession(ctx, &models.Session{
			UserID:      "u2",
			StartedAt:   base.Add(time.Hour),
			CompletedAt: base.Add(time.Hour + 25*time.Minute),
		}))

		sessions, err := db.Sessions(
			ctx,
			"u1",
			base.Add(24*time.Hour),
			base.Add(48*time.Hour),
		)
		require.NoError(t, err)
		require.Len(t, sessions, 2)

		assert.True(t, sessions[0].StartedAt.Equal(base.Add(24*time.Hour)))
		assert.True(t, sessions[1].StartedAt.Equal(base.Add(48*time.Hour)))
		assert.Equal(t, "t1", sessions[0].TaskID)
		assert.Equal(t, 25, sessions[0].DurationMinutes)
		assert.True(t, sessions[0].Completed)

		err = db.RecordSession(ctx, &models.Session{TaskID: "t1"})
		assert.ErrorIs(t, err, errMissingSessionUser)
	})
}

func TestBoltLockedByAnotherClient(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tomato.db")

	db, err := NewBoltClient(path)
	require.NoError(t, err)

	defer db.Close()

	_, err = NewBoltClient(path)
	assert.ErrorIs(t, err, errStoreLocked)
}
