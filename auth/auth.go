// Package auth is a local email and password identity provider. The signed
// in user is remembered in a session file so that separate invocations of
// the CLI share it.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tomato-timer/tomato/internal/models"
	"github.com/tomato-timer/tomato/internal/osutil"
	"github.com/tomato-timer/tomato/store"
)

// MinPasswordLength is the shortest password SignUp accepts.
const MinPasswordLength = 6

// UserStore is the subset of the store needed to manage accounts.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id string) (*models.User, error)
}

type session struct {
	SignedInAt time.Time `json:"signed_in_at"`
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
}

// Service signs users up, in, and out.
type Service struct {
	users       UserStore
	logger      *slog.Logger
	now         func() time.Time
	sessionFile string
	cost        int
}

// Option customises a Service.
type Option func(*Service)

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithHashCost sets the bcrypt cost. Tests use bcrypt.MinCost.
func WithHashCost(cost int) Option {
	return func(s *Service) {
		s.cost = cost
	}
}

// New returns a Service backed by users that keeps the signed in user in
// sessionFile.
func New(
	users UserStore,
	sessionFile string,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		users:       users,
		sessionFile: sessionFile,
		logger:      logger,
		now:         time.Now,
		cost:        bcrypt.DefaultCost,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp registers a new account and signs it in.
func (s *Service) SignUp(
	ctx context.Context,
	email, password, confirm string,
) (*models.User, error) {
	email = NormalizeEmail(email)

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return nil, errInvalidEmail.Fmt(email)
	}

	if len(password) < MinPasswordLength {
		return nil, errPasswordTooShort.Fmt(MinPasswordLength)
	}

	if password != confirm {
		return nil, errPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}

	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user signed up", slog.String("user_id", u.ID))

	return u, s.saveSession(u)
}

// SignIn checks the credentials and remembers the user.
func (s *Service) SignIn(
	ctx context.Context,
	email, password string,
) (*models.User, error) {
	u, err := s.users.UserByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, errInvalidCredentials
	}

	if err != nil {
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password))
	if err != nil {
		s.logger.Debug("password mismatch", slog.String("user_id", u.ID))
		return nil, errInvalidCredentials
	}

	s.logger.Info("user signed in", slog.String("user_id", u.ID))

	return u, s.saveSession(u)
}

// SignOut forgets the signed in user. Signing out twice is not an error.
func (s *Service) SignOut() error {
	err := os.Remove(s.sessionFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return nil
}

// CurrentUserID reports the id of the signed in user, if any. An unreadable
// session file counts as signed out.
func (s *Service) CurrentUserID(_ context.Context) (string, bool) {
	sess, err := s.readSession()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("ignoring sign-in session", slog.Any("error", err))
		}

		return "", false
	}

	return sess.UserID, sess.UserID != ""
}

// CurrentUser loads the signed in user from the store. It returns
// ErrNotSignedIn when nobody is signed in or the account no longer exists.
func (s *Service) CurrentUser(ctx context.Context) (*models.User, error) {
	id, ok := s.CurrentUserID(ctx)
	if !ok {
		return nil, ErrNotSignedIn
	}

	u, err := s.users.UserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotSignedIn
	}

	return u, err
}

func (s *Service) readSession() (*session, error) {
	b, err := os.ReadFile(s.sessionFile)
	if err != nil {
		return nil, err
	}

	var sess session

	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, errReadSession.Wrap(err)
	}

	return &sess, nil
}

func (s *Service) saveSession(u *models.User) error {
	b, err := json.Marshal(session{
		UserID:     u.ID,
		Email:      u.Email,
		SignedInAt: s.now(),
	})
	if err != nil {
		return errWriteSession.Wrap(err)
	}

	if err := os.MkdirAll(filepath.Dir(s.sessionFile), osutil.DirPermission); err != nil {
		return errWriteSession.Wrap(err)
	}

	if err := os.WriteFile(s.sessionFile, b, osutil.FilePermission); err != nil {
		return errWriteSession.Wrap(err)
	}

	return nil
}
