package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/khrees2412/campuslink/internal/session"
	"github.com/khrees2412/campuslink/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, dir, as string) *App {
	t.Helper()
	a, err := NewApp(context.Background(), Options{Dir: dir, As: as})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestNewAppWithoutSession(t *testing.T) {
	a := newTestApp(t, t.TempDir(), "")
	assert.Nil(t, a.Session)
	assert.Equal(t, 300*time.Millisecond, a.Config.DebounceWindow())

	_, err := a.RequireSession()
	assert.True(t, errors.Is(err, session.ErrNoSession))
}

func TestNewAppRestoresSessionAndOverride(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first := newTestApp(t, dir, "")
	user := &models.User{FullName: "Avery Chen", Email: "achen@example.edu", UserType: models.UserTypeAlumni}
	require.NoError(t, first.Store.CreateUser(ctx, user))
	_, err := session.Start(ctx, first.Store, user.ID, time.Now())
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second := newTestApp(t, dir, "")
	require.NotNil(t, second.Session)
	assert.Equal(t, user.ID, second.Session.UserID)
	_, err = second.RequireRole(models.UserTypeAdmin)
	assert.True(t, errors.Is(err, ErrForbidden))
	require.NoError(t, second.Close())

	third := newTestApp(t, dir, "admin")
	sess, err := third.RequireRole(models.UserTypeAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.UserTypeAlumni, sess.UserType, "stored role is untouched")
}

func TestNewAppOverrideErrors(t *testing.T) {
	_, err := NewApp(context.Background(), Options{Dir: t.TempDir(), As: "admin"})
	assert.True(t, errors.Is(err, session.ErrNoSession))

	_, err = NewApp(context.Background(), Options{Dir: t.TempDir(), As: "wizard"})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestContext(t *testing.T) {
	_, err := FromContext(context.Background())
	assert.True(t, errors.Is(err, ErrNotInitialized))

	a := &App{}
	got, err := FromContext(WithApp(context.Background(), a))
	require.NoError(t, err)
	assert.Same(t, a, got)
}
