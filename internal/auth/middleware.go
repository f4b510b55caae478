package auth

import (
	"net/http"
	"strings"

	"libraryapi/internal/httpx"
)

// Middleware rejects requests without a valid bearer token. When enabled is
// false it passes everything through, which keeps the API open by default.
func Middleware(secret string, enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				httpx.JSONErrors(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			userID, err := ParseToken(secret, token)
			if err != nil {
				httpx.JSONErrors(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := httpx.ContextWithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
