package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/khrees2412/campuslink/internal/database"
	"github.com/khrees2412/campuslink/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *database.Store {
	t.Helper()
	store, err := database.Open(filepath.Join(t.TempDir(), "session.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStartLoadEnd(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	user := &models.User{FullName: "Jordan Lee", Email: "jlee@example.edu", UserType: models.UserTypeStudent}
	require.NoError(t, store.CreateUser(ctx, user))

	_, err := Load(ctx, store)
	assert.True(t, errors.Is(err, ErrNoSession))

	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	started, err := Start(ctx, store, user.ID, now)
	require.NoError(t, err)
	assert.Equal(t, models.UserTypeStudent, started.Role())

	loaded, err := Load(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, user.ID, loaded.UserID)
	assert.Equal(t, "Jordan Lee", loaded.FullName)
	assert.True(t, loaded.StartedAt.Equal(now))

	touched, err := store.GetUser(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, touched.LastActiveDate)
	assert.True(t, touched.LastActiveDate.Equal(now))

	require.NoError(t, End(ctx, store))
	_, err = Load(ctx, store)
	assert.True(t, errors.Is(err, ErrNoSession))
}

func TestStartUnknownUser(t *testing.T) {
	_, err := Start(context.Background(), newStore(t), "missing", time.Now())
	assert.True(t, errors.Is(err, database.ErrNotFound), "got %v", err)
}

func TestDeletedUserEndsSession(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	user := &models.User{FullName: "Avery Chen", Email: "achen@example.edu", UserType: models.UserTypeAlumni}
	require.NoError(t, store.CreateUser(ctx, user))
	_, err := Start(ctx, store, user.ID, time.Now())
	require.NoError(t, err)

	require.NoError(t, store.DeleteUser(ctx, user.ID))
	_, err = Load(ctx, store)
	assert.True(t, errors.Is(err, ErrNoSession))
}

func TestWithOverride(t *testing.T) {
	s := &Session{UserID: "u1", UserType: models.UserTypeStudent}
	admin := s.WithOverride(models.UserTypeAdmin)

	assert.Equal(t, models.UserTypeAdmin, admin.Role())
	assert.Equal(t, models.UserTypeStudent, s.Role(), "original session unchanged")
}
