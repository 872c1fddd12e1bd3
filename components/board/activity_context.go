package board

import "context"

// ActivityContext identifies who performed a board edit. Transports attach
// it before calling the service, and the service copies it onto every audit
// event emitted for the operation.
type ActivityContext struct {
	ActorID  string
	UserID   string
	TenantID string
}

// IsZero reports whether no identity field is set.
func (a ActivityContext) IsZero() bool {
	return a.ActorID == "" && a.UserID == "" && a.TenantID == ""
}

type activityContextKey struct{}

// ContextWithActivity attaches the acting identity to the context. A zero
// meta keeps any identity already present, so command wrappers never wipe
// an actor the transport resolved earlier.
func ContextWithActivity(ctx context.Context, meta ActivityContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if meta.IsZero() {
		if _, ok := ctx.Value(activityContextKey{}).(ActivityContext); ok {
			return ctx
		}
	}
	return context.WithValue(ctx, activityContextKey{}, meta)
}

// activityContextFrom extracts the acting identity, zero when absent.
func activityContextFrom(ctx context.Context) ActivityContext {
	if ctx == nil {
		return ActivityContext{}
	}
	if meta, ok := ctx.Value(activityContextKey{}).(ActivityContext); ok {
		return meta
	}
	return ActivityContext{}
}
