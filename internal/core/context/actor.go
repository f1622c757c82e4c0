// Package context provides request-scoped values extraction.
package context

import (
	"context"
)

// ActorContext identifies who initiated the request. The value comes
// from the X-Actor-ID header and is recorded on created and updated
// entities. It is informational only and carries no privileges.
type ActorContext struct {
	ActorID string
	Name    string
}

type actorContextKey struct{}

// WithActor adds ActorContext to context.
func WithActor(ctx context.Context, actor *ActorContext) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// GetActor returns ActorContext from context.
func GetActor(ctx context.Context) *ActorContext {
	if v, ok := ctx.Value(actorContextKey{}).(*ActorContext); ok {
		return v
	}
	return nil
}

// GetActorID returns actor ID from context or empty string.
func GetActorID(ctx context.Context) string {
	if a := GetActor(ctx); a != nil {
		return a.ActorID
	}
	return ""
}
