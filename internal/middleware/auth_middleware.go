package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/talenthub/auth-service/internal/models"
	"github.com/talenthub/auth-service/internal/utils"
)

type contextKey string

const ContextKeyUserID = contextKey("userID")

// Gate answers whether a presented token is currently acceptable.
// Revocation wins over a still-cryptographically-valid signature, so the
// gate must consult the blacklist, not just the codec.
type Gate interface {
	Introspect(tokenString string) models.Introspection
}

// AuthMiddleware guards protected endpoints. The JWT is read from
// Authorization: Bearer; a missing, invalid, expired or blacklisted
// token yields 401 before any business logic runs.
func AuthMiddleware(gate Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, err := ExtractBearerToken(r)
			if err != nil {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, err.Error(), nil,
				)
				return
			}

			introspection := gate.Introspect(tokenStr)
			if !introspection.Active {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid token", nil,
				)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUserID, introspection.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ExtractBearerToken reads the token from the Authorization header.
func ExtractBearerToken(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", errors.New("missing or malformed Authorization header")
	}
	return strings.TrimPrefix(h, "Bearer "), nil
}
