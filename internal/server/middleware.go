// internal/server/middleware.go
package server

import (
	"context"
	"net/http"

	"cookmate-backend/internal/common/auth"
)

type contextKey string

const sessionContextKey contextKey = "session"

// sessionMiddleware resolves the session cookie and puts the session on the
// request context. Requests without a valid session are rejected.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(s.config.Auth.CookieName)
		if err != nil || cookie.Value == "" {
			s.writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		session, err := s.sessions.Validate(r.Context(), cookie.Value)
		if err != nil {
			s.writeError(w, http.StatusUnauthorized, "session invalid or expired")
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// rateLimitMiddleware applies the global generation budget.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			s.writeError(w, http.StatusTooManyRequests, "too many generation requests, slow down")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// corsMiddleware allows the frontend origin. The API is cookie-based, so
// credentials are allowed.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// sessionFromContext returns the authenticated session, or nil on
// unauthenticated routes.
func sessionFromContext(ctx context.Context) *auth.Session {
	session, _ := ctx.Value(sessionContextKey).(*auth.Session)
	return session
}
