package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/khrees2412/campuslink/internal/config"
	"github.com/khrees2412/campuslink/internal/database"
	"github.com/khrees2412/campuslink/internal/logging"
	"github.com/khrees2412/campuslink/internal/session"
	"github.com/khrees2412/campuslink/pkg/models"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// App is the dependency container for the CLI application
type App struct {
	Store   *database.Store
	Config  *config.Config
	Viper   *viper.Viper
	Logger  *zap.Logger
	Session *session.Session // nil when nobody is signed in
	Now     func() time.Time
}

// Options controls NewApp
type Options struct {
	// Dir holds config.yaml and, unless data_dir says otherwise, the database.
	// Empty means ~/.campuslink.
	Dir string
	// As overrides the session user's role for this invocation only
	As string
}

// NewApp initializes and returns a new App instance
func NewApp(ctx context.Context, opts Options) (*App, error) {
	dir := opts.Dir
	if dir == "" {
		var err error
		if dir, err = config.DefaultDir(); err != nil {
			return nil, err
		}
	}

	// Initialize config
	cfg, v, err := config.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Open database with proper pragmas
	store, err := database.Open(cfg.DatabasePath(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	a := &App{Store: store, Config: cfg, Viper: v, Logger: logger, Now: time.Now}

	sess, err := session.Load(ctx, store)
	switch {
	case errors.Is(err, session.ErrNoSession):
		logger.Debug("no active session")
	case err != nil:
		a.Close()
		return nil, err
	default:
		a.Session = sess
	}

	if opts.As != "" {
		role, err := models.ParseUserType(opts.As)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("%w: --as: %v", ErrInvalidArgument, err)
		}
		if a.Session == nil {
			a.Close()
			return nil, fmt.Errorf("--as %s: %w", role, session.ErrNoSession)
		}
		a.Session = a.Session.WithOverride(role)
		logger.Debug("role override", zap.String("role", string(role)))
	}

	return a, nil
}

// RequireSession returns the active session or session.ErrNoSession
func (a *App) RequireSession() (*session.Session, error) {
	if a.Session == nil {
		return nil, session.ErrNoSession
	}
	return a.Session, nil
}

// RequireRole returns the active session when its effective role is one of
// roles, ErrForbidden otherwise.
func (a *App) RequireRole(roles ...models.UserType) (*session.Session, error) {
	sess, err := a.RequireSession()
	if err != nil {
		return nil, err
	}
	for _, r := range roles {
		if sess.Role() == r {
			return sess, nil
		}
	}
	return nil, fmt.Errorf("%w: %s cannot do this", ErrForbidden, sess.Role())
}

// Close closes all resources
func (a *App) Close() error {
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
