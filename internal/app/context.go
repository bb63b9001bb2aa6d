package app

import "context"

// contextKey is used to store App in context
type contextKey struct{}

var appContextKey = contextKey{}

// FromContext retrieves the App from context
func FromContext(ctx context.Context) (*App, error) {
	app, ok := ctx.Value(appContextKey).(*App)
	if !ok || app == nil {
		return nil, ErrNotInitialized
	}
	return app, nil
}

// WithApp stores the App in context
func WithApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appContextKey, app)
}
