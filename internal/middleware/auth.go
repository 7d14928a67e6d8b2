package middleware

import (
	"net/http"

	"github.com/ayush/vibrant-blog/internal/auth"
	"github.com/ayush/vibrant-blog/internal/httpjson"
	"github.com/ayush/vibrant-blog/internal/logger"
)

// TokenParser verifies a bearer token and returns its claims.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// RequireAuth rejects requests without a valid bearer token and injects the
// decoded claims into the request context. A missing token is 401, a token
// that fails verification is 403.
func RequireAuth(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := auth.TokenFromRequest(r)
			if err != nil {
				httpjson.Message(w, http.StatusUnauthorized, "Access denied, token missing!")
				return
			}

			claims, err := tokens.Parse(raw)
			if err != nil {
				logger.Log.Infow("rejected bearer token", "err", err, "path", r.URL.Path)
				httpjson.Message(w, http.StatusForbidden, "Invalid token!")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}
