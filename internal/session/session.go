// Package session tracks which user the CLI is acting as. The active session
// is persisted in the store so it survives between invocations; a role
// override applies to a single invocation only.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/khrees2412/campuslink/internal/database"
	"github.com/khrees2412/campuslink/pkg/models"
)

// ErrNoSession is returned when no user is signed in
var ErrNoSession = errors.New("no active session (run 'campuslink session start <user-id>')")

// Store is the subset of the database the session needs
type Store interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	Touch(ctx context.Context, userID string, at time.Time) error
	SaveSession(ctx context.Context, userID string, startedAt time.Time) error
	LoadSession(ctx context.Context) (string, time.Time, error)
	ClearSession(ctx context.Context) error
}

// Session is the signed-in user. UserType is the stored role; Override, when
// set, replaces it for the current invocation.
type Session struct {
	UserID    string
	FullName  string
	UserType  models.UserType
	Override  models.UserType
	StartedAt time.Time
}

// Role returns the effective role
func (s *Session) Role() models.UserType {
	if s.Override != "" {
		return s.Override
	}
	return s.UserType
}

// WithOverride returns a copy acting as role. The override is never persisted.
func (s *Session) WithOverride(role models.UserType) *Session {
	cp := *s
	cp.Override = role
	return &cp
}

// Start signs userID in, replacing any previous session, and records activity
func Start(ctx context.Context, store Store, userID string, now time.Time) (*Session, error) {
	user, err := store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	if err := store.SaveSession(ctx, user.ID, now); err != nil {
		return nil, err
	}
	if err := store.Touch(ctx, user.ID, now); err != nil {
		return nil, err
	}
	return &Session{UserID: user.ID, FullName: user.FullName, UserType: user.UserType, StartedAt: now}, nil
}

// Load restores the persisted session. It returns ErrNoSession when none is
// stored or when the user it points at no longer exists.
func Load(ctx context.Context, store Store) (*Session, error) {
	userID, startedAt, err := store.LoadSession(ctx)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	user, err := store.GetUser(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &Session{UserID: user.ID, FullName: user.FullName, UserType: user.UserType, StartedAt: startedAt}, nil
}

// End signs the current user out
func End(ctx context.Context, store Store) error {
	return store.ClearSession(ctx)
}
