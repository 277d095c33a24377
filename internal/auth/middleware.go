// ABOUTME: Identity middleware for editor and admin requests.
// ABOUTME: Parses Bearer tokens and puts the caller's name in the request context.

package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const userContextKey contextKey = "user"

const (
	// Anonymous is the identity of requests without credentials.
	Anonymous = "anonymous"
	// Editor is the identity of any bearer token without a user: prefix.
	Editor = "editor"
)

func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := extractUser(r.Header.Get("Authorization"))
		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithUser returns ctx carrying user, for callers outside the HTTP stack.
func WithUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func UserFromContext(ctx context.Context) string {
	user, ok := ctx.Value(userContextKey).(string)
	if !ok || user == "" {
		return Anonymous
	}
	return user
}

// Identity only; no permission checks happen here.
func extractUser(authHeader string) string {
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return Anonymous
	}

	// "user:NAME" names the caller explicitly
	if name, ok := strings.CutPrefix(token, "user:"); ok {
		if name = strings.TrimSpace(name); name != "" {
			return name
		}
		return Anonymous
	}

	return Editor
}
