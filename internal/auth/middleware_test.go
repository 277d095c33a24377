// ABOUTME: Tests for identity middleware.
// ABOUTME: Verifies token parsing and user extraction from headers.

package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMiddleware_ExtractsUser(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		wantUser   string
	}{
		{"user prefix", "Bearer user:harper", "harper"},
		{"user prefix with blank name", "Bearer user: ", Anonymous},
		{"no header", "", Anonymous},
		{"empty bearer", "Bearer ", Anonymous},
		{"opaque token", "Bearer 4f9c2a", Editor},
		{"token without scheme", "abc123", Editor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser string
			handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser = UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest("GET", "/api/blocks", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if gotUser != tt.wantUser {
				t.Errorf("UserFromContext() = %q, want %q", gotUser, tt.wantUser)
			}
		})
	}
}

func TestUserFromContext_Default(t *testing.T) {
	if got := UserFromContext(context.Background()); got != Anonymous {
		t.Errorf("UserFromContext() = %q, want %q", got, Anonymous)
	}
	if got := UserFromContext(WithUser(context.Background(), "seeder")); got != "seeder" {
		t.Errorf("UserFromContext() = %q, want seeder", got)
	}
}
