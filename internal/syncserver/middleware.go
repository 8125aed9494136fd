package syncserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/mmcdole/showlist/internal/store"
)

type contextKey string

const contextKeyNamespace contextKey = "namespace"

// requireAuth checks the bearer token and attaches the token's storage
// namespace to the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "Missing authorization header", s.logger)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			writeError(w, http.StatusUnauthorized, "Invalid authorization header format", s.logger)
			return
		}
		token := strings.TrimSpace(parts[1])

		if !s.accepts(token) {
			writeError(w, http.StatusUnauthorized, "Unknown token", s.logger)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyNamespace, store.HashToken(token))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) accepts(token string) bool {
	if len(s.tokens) == 0 {
		return true
	}
	_, ok := s.tokens[token]
	return ok
}

func namespace(ctx context.Context) string {
	ns, _ := ctx.Value(contextKeyNamespace).(string)
	return ns
}
