package http

import (
	"context"
	"net/http"
	"strings"

	"impactolocal-backend/internal/domain"
	"impactolocal-backend/internal/security"
)

type contextKey string

const claimsContextKey contextKey = "user_claims"

// AuthMiddleware validates the Bearer access token and stores the claims in
// the request context.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				respondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				respondServiceError(w, err)
				return
			}
			if claims.Type != security.TokenTypeAccess {
				respondError(w, http.StatusUnauthorized, "access token required")
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// claimsFrom extracts the authenticated claims set by AuthMiddleware.
func claimsFrom(r *http.Request) (*security.UserClaims, bool) {
	claims, ok := r.Context().Value(claimsContextKey).(*security.UserClaims)
	return claims, ok
}

// actorID returns the authenticated user ID, writing a 401 when absent.
func actorID(w http.ResponseWriter, r *http.Request) (int32, bool) {
	claims, ok := claimsFrom(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return 0, false
	}
	return claims.UserID, true
}

// requireRole checks the authenticated role, writing a 403 on mismatch.
func requireRole(w http.ResponseWriter, r *http.Request, role domain.Role) (*security.UserClaims, bool) {
	claims, ok := claimsFrom(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}
	if claims.Role != role {
		respondError(w, http.StatusForbidden, "insufficient role")
		return nil, false
	}
	return claims, true
}
