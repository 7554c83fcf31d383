package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/wolber/school-portal/internal/model"
)

// contextKey is an unexported type for this package's context keys, so no
// other package can read or shadow the claim stored in a request context.
type contextKey string

const claimKey contextKey = "claim"

// RequireAuth enforces authentication on protected routes.
//
// It expects an "Authorization: Bearer <token>" header, verifies the token,
// and stores the decoded claim in the request context. A missing header or
// a failed signature/expiry check stops the chain with 401.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				writeAuthError(w, http.StatusUnauthorized, "Token manquant")
				return
			}

			tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			claim, err := tokens.Validate(tokenStr)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "Token invalide")
				return
			}

			ctx := context.WithValue(r.Context(), claimKey, claim)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates a route on the admin role. It must run after
// RequireAuth in the middleware chain.
func RequireAdmin(message string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claim, ok := ClaimFromContext(r.Context())
			if !ok || claim.Role != model.RoleAdmin {
				writeAuthError(w, http.StatusForbidden, message)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClaimFromContext retrieves the verified claim set by RequireAuth.
// Returns (nil, false) on routes that never passed through it.
func ClaimFromContext(ctx context.Context) (*Claim, bool) {
	claim, ok := ctx.Value(claimKey).(*Claim)
	return claim, ok && claim != nil
}

// writeAuthError emits the portal's standard {"error": msg} body. The
// middleware cannot import the handler package (the handlers import this
// one), so the shaping is duplicated here.
func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
