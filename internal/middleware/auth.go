package middleware

import (
	"context"
	"net/http"
	"strings"

	"chem-backend/internal/auth"
	"chem-backend/pkg/utils"
)

type contextKey string

const sessionKey contextKey = "session"

// RevocationChecker reports tokens that were logged out before expiry
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) bool
}

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	revoked    RevocationChecker
}

func NewAuthMiddleware(jwtManager *auth.JWTManager, revoked RevocationChecker) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		revoked:    revoked,
	}
}

type authError struct {
	status  int
	message string
}

// session resolves the bearer token on r. It returns nil, nil when the
// request carries no Authorization header at all.
func (m *AuthMiddleware) session(r *http.Request) (*auth.Session, *authError) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, nil
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, &authError{http.StatusUnauthorized, "Invalid authorization format"}
	}

	claims, err := m.jwtManager.ValidateToken(parts[1])
	if err != nil {
		return nil, &authError{http.StatusUnauthorized, "Invalid or expired token"}
	}

	s := auth.SessionFromClaims(claims)
	if m.revoked != nil && m.revoked.IsRevoked(r.Context(), s.TokenID) {
		return nil, &authError{http.StatusUnauthorized, "Token has been revoked"}
	}
	return s, nil
}

// Authenticate rejects requests without a valid token
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, authErr := m.session(r)
		if authErr != nil {
			utils.Error(w, authErr.status, authErr.message)
			return
		}
		if s == nil {
			utils.Error(w, http.StatusUnauthorized, "Authorization header required")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}

// OptionalAuth attaches a session when a valid token is present and lets
// anonymous requests through. A malformed or revoked token is still rejected.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, authErr := m.session(r)
		if authErr != nil {
			utils.Error(w, authErr.status, authErr.message)
			return
		}
		if s != nil {
			r = r.WithContext(WithSession(r.Context(), s))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin must run after Authenticate
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !SessionFromContext(r.Context()).IsAdmin() {
			utils.Error(w, http.StatusForbidden, "Forbidden - insufficient permissions")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithSession stores s on ctx
func WithSession(ctx context.Context, s *auth.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFromContext returns the caller's session, or nil when anonymous
func SessionFromContext(ctx context.Context) *auth.Session {
	s, _ := ctx.Value(sessionKey).(*auth.Session)
	return s
}
