package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	// registers the "sqlite" database/sql driver
	_ "modernc.org/sqlite"

	"github.com/tomato-timer/tomato/internal/models"
	"github.com/tomato-timer/tomato/internal/timeutil"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash BLOB NOT NULL,
	created_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	id                  TEXT PRIMARY KEY,
	user_id             TEXT NOT NULL,
	title               TEXT NOT NULL,
	description         TEXT NOT NULL DEFAULT '',
	category            TEXT NOT NULL,
	priority            TEXT NOT NULL,
	status              TEXT NOT NULL,
	estimated_pomodoros INTEGER NOT NULL DEFAULT 0,
	actual_pomodoros    INTEGER NOT NULL DEFAULT 0,
	planned_date        TEXT,
	created_at          TEXT NOT NULL,
	updated_at          TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id, created_at);

CREATE TABLE IF NOT EXISTS pomodoro_sessions (
	id               TEXT PRIMARY KEY,
	user_id          TEXT NOT NULL,
	task_id          TEXT NOT NULL DEFAULT '',
	duration_minutes INTEGER NOT NULL,
	completed        INTEGER NOT NULL DEFAULT 1,
	started_at       TEXT NOT NULL,
	completed_at     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_user_started
	ON pomodoro_sessions(user_id, started_at);
`

const taskColumns = `id, user_id, title, description, category, priority,
	status, estimated_pomodoros, actual_pomodoros, planned_date, created_at,
	updated_at`

// SQLiteClient stores records in a SQLite database.
type SQLiteClient struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteClient opens (creating if needed) the SQLite database at dbPath.
func NewSQLiteClient(dbPath string) (*SQLiteClient, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}

	// a single connection serialises writers without SQLITE_BUSY retries
	db.SetMaxOpenConns(1)

	_, err = db.Exec(sqliteSchema)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteClient{
		db:  db,
		now: time.Now,
	}, nil
}

func (c *SQLiteClient) Close() error {
	return c.db.Close()
}

func formatTime(t time.Time) string {
	return string(timeutil.ToKey(t))
}

func parseTime(s string) (time.Time, error) {
	return timeutil.FromKey([]byte(s))
}

func (c *SQLiteClient) CreateUser(ctx context.Context, u *models.User) error {
	prepareUser(u, c.now())

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback()
	}()

	var exists int

	err = tx.QueryRowContext(
		ctx,
		`SELECT COUNT(1) FROM users WHERE email = ?`,
		u.Email,
	).Scan(&exists)
	if err != nil {
		return err
	}

	if exists > 0 {
		return ErrEmailTaken
	}

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO users (id, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)`,
		u.ID,
		u.Email,
		u.PasswordHash,
		formatTime(u.CreatedAt),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (c *SQLiteClient) scanUser(row *sql.Row) (*models.User, error) {
	var (
		u         models.User
		createdAt string
	)

	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	u.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (c *SQLiteClient) UserByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {
	return c.scanUser(c.db.QueryRowContext(
		ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE email = ?`,
		email,
	))
}

func (c *SQLiteClient) UserByID(
	ctx context.Context,
	id string,
) (*models.User, error) {
	return c.scanUser(c.db.QueryRowContext(
		ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE id = ?`,
		id,
	))
}

func (c *SQLiteClient) CreateTask(ctx context.Context, t *models.Task) error {
	prepareTask(t, c.now())

	var planned sql.NullString
	if t.PlannedDate != nil {
		planned = sql.NullString{String: formatTime(*t.PlannedDate), Valid: true}
	}

	_, err := c.db.ExecContext(
		ctx,
		`INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID,
		t.UserID,
		t.Title,
		t.Description,
		t.Category,
		string(t.Priority),
		string(t.Status),
		t.EstimatedPomodoros,
		t.ActualPomodoros,
		planned,
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)

	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	var (
		t                    models.Task
		priority, status     string
		planned              sql.NullString
		createdAt, updatedAt string
	)

	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&t.Description,
		&t.Category,
		&priority,
		&status,
		&t.EstimatedPomodoros,
		&t.ActualPomodoros,
		&planned,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Priority = models.TaskPriority(priority)
	t.Status = models.TaskStatus(status)

	if planned.Valid {
		p, err := parseTime(planned.String)
		if err != nil {
			return nil, err
		}

		t.PlannedDate = &p
	}

	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}

	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return &t, nil
}

func (c *SQLiteClient) Task(
	ctx context.Context,
	id string,
) (*models.Task, error) {
	t, err := scanTask(c.db.QueryRowContext(
		ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	return t, err
}

func (c *SQLiteClient) Tasks(
	ctx context.Context,
	userID string,
) ([]*models.Task, error) {
	rows, err := c.db.QueryContext(
		ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = ?
		ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var tasks []*models.Task

	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}

		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

func (c *SQLiteClient) RecordSession(
	ctx context.Context,
	s *models.Session,
) error {
	if s.UserID == "" {
		return errMissingSessionUser
	}

	prepareSession(s)

	_, err := c.db.ExecContext(
		ctx,
		`INSERT INTO pomodoro_sessions
		(id, user_id, task_id, duration_minutes, completed, started_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID,
		s.UserID,
		s.TaskID,
		s.DurationMinutes,
		s.Completed,
		formatTime(s.StartedAt),
		formatTime(s.CompletedAt),
	)

	return err
}

func (c *SQLiteClient) IncrementTaskSessionCount(
	ctx context.Context,
	taskID string,
) error {
	res, err := c.db.ExecContext(
		ctx,
		`UPDATE tasks
		SET actual_pomodoros = actual_pomodoros + 1, updated_at = ?
		WHERE id = ?`,
		formatTime(c.now()),
		taskID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if n == 0 {
		return ErrNotFound
	}

	return nil
}

func (c *SQLiteClient) Sessions(
	ctx context.Context,
	userID string,
	since, until time.Time,
) ([]*models.Session, error) {
	rows, err := c.db.QueryContext(
		ctx,
		`SELECT id, user_id, task_id, duration_minutes, completed, started_at,
		completed_at
		FROM pomodoro_sessions
		WHERE user_id = ? AND started_at >= ? AND started_at <= ?
		ORDER BY started_at`,
		userID,
		formatTime(since),
		formatTime(until),
	)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var sessions []*models.Session

	for rows.Next() {
		var (
			s                      models.Session
			startedAt, completedAt string
		)

		err = rows.Scan(
			&s.ID,
			&s.UserID,
			&s.TaskID,
			&s.DurationMinutes,
			&s.Completed,
			&startedAt,
			&completedAt,
		)
		if err != nil {
			return nil, err
		}

		if s.StartedAt, err = parseTime(startedAt); err != nil {
			return nil, err
		}

		if s.CompletedAt, err = parseTime(completedAt); err != nil {
			return nil, err
		}

		sessions = append(sessions, &s)
	}

	return sessions, rows.Err()
}
