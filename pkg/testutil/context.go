package testutil

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"landregistry/internal/deed/models"
	"landregistry/pkg/requestcontext"
)

// WithActor adds an actor ID and role to the request context. This simulates
// what the auth middleware would do for authenticated requests.
func WithActor(req *http.Request, actorID uuid.UUID, role models.Role) *http.Request {
	ctx := requestcontext.WithActorID(req.Context(), actorID)
	ctx = requestcontext.WithActorRole(ctx, role)
	return req.WithContext(ctx)
}

// WithRequestTime pins the request-scoped clock, so handlers under test stamp
// a known time.
func WithRequestTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}
