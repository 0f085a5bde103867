package shared

import "context"

type actorKey struct{}

// WithActor stores the acting user id on ctx.
func WithActor(ctx context.Context, userID string) context.Context {
	if userID == "" {
		return ctx
	}
	return context.WithValue(ctx, actorKey{}, userID)
}

// ActorFrom returns the acting user id, or DefaultActorID when none was set.
func ActorFrom(ctx context.Context) string {
	if id, ok := ctx.Value(actorKey{}).(string); ok && id != "" {
		return id
	}
	return DefaultActorID
}
