package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/tomato-timer/tomato/internal/models"
	"github.com/tomato-timer/tomato/internal/osutil"
	"github.com/tomato-timer/tomato/internal/timeutil"
)

const (
	usersBucket    = "users"
	emailsBucket   = "emails"
	tasksBucket    = "tasks"
	sessionsBucket = "sessions"
	metaBucket     = "meta"
)

// BoltClient is a BoltDB database client.
type BoltClient struct {
	*bolt.DB
	now func() time.Time
}

// NewBoltClient opens (creating if needed) the bolt database at dbPath and
// brings its schema up to date.
func NewBoltClient(dbPath string) (*BoltClient, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	err = db.Update(migrate)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &BoltClient{
		DB:  db,
		now: time.Now,
	}, nil
}

// openDB creates or opens a database and locks it.
func openDB(dbPath string) (*bolt.DB, error) {
	fileMode := osutil.FilePermission

	db, err := bolt.Open(
		dbPath,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errStoreLocked
		}

		return nil, err
	}

	return db, nil
}

func putJSON(b *bolt.Bucket, key []byte, v any) error {
	value, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return b.Put(key, value)
}

func (c *BoltClient) CreateUser(ctx context.Context, u *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	prepareUser(u, c.now())

	return c.Update(func(tx *bolt.Tx) error {
		emails := tx.Bucket([]byte(emailsBucket))

		if emails.Get([]byte(u.Email)) != nil {
			return ErrEmailTaken
		}

		err := emails.Put([]byte(u.Email), []byte(u.ID))
		if err != nil {
			return err
		}

		return putJSON(tx.Bucket([]byte(usersBucket)), []byte(u.ID), u)
	})
}

func (c *BoltClient) UserByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {
	var id []byte

	err := c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(emailsBucket)).Get([]byte(email))
		if v == nil {
			return ErrNotFound
		}

		id = bytes.Clone(v)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.UserByID(ctx, string(id))
}

func (c *BoltClient) UserByID(
	ctx context.Context,
	id string,
) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var u models.User

	err := c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(usersBucket)).Get([]byte(id))
		if v == nil {
			return ErrNotFound
		}

		return json.Unmarshal(v, &u)
	})
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (c *BoltClient) CreateTask(ctx context.Context, t *models.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	prepareTask(t, c.now())

	return c.Update(func(tx *bolt.Tx) error {
		return putJSON(tx.Bucket([]byte(tasksBucket)), []byte(t.ID), t)
	})
}

func (c *BoltClient) Task(
	ctx context.Context,
	id string,
) (*models.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var t models.Task

	err := c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(tasksBucket)).Get([]byte(id))
		if v == nil {
			return ErrNotFound
		}

		return json.Unmarshal(v, &t)
	})
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (c *BoltClient) Tasks(
	ctx context.Context,
	userID string,
) ([]*models.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var tasks []*models.Task

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(tasksBucket)).ForEach(func(_, v []byte) error {
			var t models.Task

			err := json.Unmarshal(v, &t)
			if err != nil {
				return err
			}

			if t.UserID == userID {
				tasks = append(tasks, &t)
			}

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})

	return tasks, nil
}

func (c *BoltClient) RecordSession(
	ctx context.Context,
	s *models.Session,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.UserID == "" {
		return errMissingSessionUser
	}

	prepareSession(s)

	key := append(timeutil.ToKey(s.StartedAt), []byte(s.ID)...)

	return c.Update(func(tx *bolt.Tx) error {
		return putJSON(tx.Bucket([]byte(sessionsBucket)), key, s)
	})
}

func (c *BoltClient) IncrementTaskSessionCount(
	ctx context.Context,
	taskID string,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(tasksBucket))

		v := b.Get([]byte(taskID))
		if v == nil {
			return ErrNotFound
		}

		var t models.Task

		err := json.Unmarshal(v, &t)
		if err != nil {
			return err
		}

		t.ActualPomodoros++
		t.UpdatedAt = c.now()

		return putJSON(b, []byte(taskID), &t)
	})
}

func (c *BoltClient) Sessions(
	ctx context.Context,
	userID string,
	since, until time.Time,
) ([]*models.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var sessions []*models.Session

	minKey := timeutil.ToKey(since)
	maxKey := timeutil.ToKey(until)

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(sessionsBucket)).Cursor()

		for k, v := cur.Seek(minKey); k != nil; k, v = cur.Next() {
			if len(k) >= len(maxKey) &&
				bytes.Compare(k[:len(maxKey)], maxKey) > 0 {
				break
			}

			var s models.Session

			err := json.Unmarshal(v, &s)
			if err != nil {
				return err
			}

			if s.UserID == userID {
				sessions = append(sessions, &s)
			}
		}

		return nil
	})

	return sessions, err
}
