package settings

import "context"

// runContextKey is unexported to prevent collisions.
type runContextKey struct{}

// IntoContext returns a new context carrying the run settings.
func IntoContext(ctx context.Context, run *Run) context.Context {
	return context.WithValue(ctx, runContextKey{}, run)
}

// FromContext retrieves the run settings stored with IntoContext.
func FromContext(ctx context.Context) (*Run, bool) {
	run, ok := ctx.Value(runContextKey{}).(*Run)
	return run, ok
}
