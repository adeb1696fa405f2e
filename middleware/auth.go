package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"motohub/models"
	"motohub/repository"
	"motohub/utils"
)

// Key type for context
type contextKey string

const UserContextKey = contextKey("user")

// TokenParser verifies a bearer token and returns its claims.
type TokenParser interface {
	ParseJWT(tokenStr string) (*utils.Claims, error)
}

// UserLookup resolves the account behind a token's email.
type UserLookup interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthMiddleware verifies JWT tokens and attaches the claims to the context
func AuthMiddleware(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.RespondWithError(w, http.StatusUnauthorized, "unauthorized access")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				utils.RespondWithError(w, http.StatusUnauthorized, "unauthorized access")
				return
			}

			claims, err := tokens.ParseJWT(parts[1])
			if err != nil {
				utils.RespondWithError(w, http.StatusUnauthorized, "unauthorized access")
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the claims stored by AuthMiddleware.
func ClaimsFromContext(ctx context.Context) (*utils.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*utils.Claims)
	return claims, ok
}

// RequireRole lets the request through only when the token's user currently holds role.
// Must run after AuthMiddleware.
func RequireRole(users UserLookup, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				utils.RespondWithError(w, http.StatusUnauthorized, "unauthorized access")
				return
			}

			ctx, cancel := storeContext(r.Context())
			user, err := users.FindByEmail(ctx, claims.Email)
			cancel()
			switch {
			case errors.Is(err, repository.ErrNotFound):
				utils.RespondWithError(w, http.StatusForbidden, "forbidden access")
				return
			case err != nil:
				utils.RespondWithErr(w, r, err)
				return
			case user.Role != role:
				utils.RespondWithError(w, http.StatusForbidden, "forbidden access")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
