package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/eldermuller/dindin/internal/http/respond"
)

type contextKey struct{}

// WithUser returns a context carrying the authenticated user id.
func WithUser(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, contextKey{}, userID)
}

// UserID returns the authenticated user id stored by Middleware.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(contextKey{}).(int64)
	return id, ok
}

const missingTokenMessage = "Para acessar este recurso um token de autenticação válido deve ser enviado."

// Middleware rejects requests without a valid bearer token and stores the
// token's user id in the request context.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			respond.Error(w, http.StatusUnauthorized, missingTokenMessage)
			return
		}

		userID, err := s.Verify(token)
		if err != nil {
			respond.Error(w, http.StatusUnauthorized, missingTokenMessage)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), userID)))
	})
}
