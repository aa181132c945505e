package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"landregistry/pkg/requestcontext"
)

// RequestID assigns every request an ID, honoring an inbound X-Request-ID so
// traces stay joined across services.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
