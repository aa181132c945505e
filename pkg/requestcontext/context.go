// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values. Middleware sets them, services read them, tests
// inject them, and none of the consumers need net/http for it.
package requestcontext

import (
	"context"
	"time"

	"github.com/google/uuid"

	"landregistry/internal/deed/models"
)

type (
	actorIDKey     struct{}
	actorRoleKey   struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// Exported context keys for tests that need raw context.WithValue.
var (
	ContextKeyActorID     = actorIDKey{}
	ContextKeyActorRole   = actorRoleKey{}
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
)

// ActorID retrieves the authenticated actor's ID from the context.
// Returns uuid.Nil if not set.
func ActorID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(ContextKeyActorID).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// WithActorID injects an actor ID into the context.
func WithActorID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ContextKeyActorID, id)
}

// ActorRole retrieves the authenticated actor's role from the context.
// Returns models.RoleCitizen, the least-privileged role, if not set.
func ActorRole(ctx context.Context) models.Role {
	if role, ok := ctx.Value(ContextKeyActorRole).(models.Role); ok {
		return role
	}
	return models.RoleCitizen
}

// WithActorRole injects an actor role into the context.
func WithActorRole(ctx context.Context, role models.Role) context.Context {
	return context.WithValue(ctx, ContextKeyActorRole, role)
}

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// Now retrieves the request-scoped time from context, falling back to
// time.Now() for non-HTTP contexts such as workers and tests.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a fixed time into a context. Useful for service unit tests
// that don't run the middleware chain.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
