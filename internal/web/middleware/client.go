package middleware

import (
	"context"
	"net/http"

	"faceconsole/internal/faceapi"
)

type contextKey string

const clientContextKey contextKey = "faceapi"

// WithFaceClient is middleware that adds the backend client to the request
// context so handlers do not need to carry it explicitly.
func WithFaceClient(client *faceapi.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := SetClientInContext(r.Context(), client)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SetClientInContext stores the backend client in a context. Exposed for tests.
func SetClientInContext(ctx context.Context, client *faceapi.Client) context.Context {
	return context.WithValue(ctx, clientContextKey, client)
}

// GetClientFromContext retrieves the backend client from the request context.
// Returns nil if no client is available.
func GetClientFromContext(ctx context.Context) *faceapi.Client {
	client, ok := ctx.Value(clientContextKey).(*faceapi.Client)
	if !ok {
		return nil
	}
	return client
}

// MustGetClient retrieves the backend client from context. If not available,
// writes an error response and returns nil. Handlers should return
// immediately after receiving nil.
func MustGetClient(ctx context.Context, w http.ResponseWriter) *faceapi.Client {
	client := GetClientFromContext(ctx)
	if client == nil {
		http.Error(w, `{"error": "backend client not available"}`, http.StatusInternalServerError)
		return nil
	}
	return client
}
