package auth

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"barorder/internal/commons"
	"barorder/internal/errors"
)

type claimsKey struct{}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*Claims)
	return claims, ok
}

// RequireAdmin rejects requests without a valid admin token. The token is
// read from the Authorization header, or from ?token= for websocket clients
// that cannot set headers.
func RequireAdmin(tokens *Tokens, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				commons.WriteError(w, r, logger, errors.NewUnauthorizedError("missing admin token"))
				return
			}

			claims, err := tokens.Parse(raw)
			if err != nil {
				msg := "invalid admin token"
				if err == ErrTokenExpired {
					msg = "admin token expired"
				}
				commons.WriteError(w, r, logger, errors.NewUnauthorizedError(msg))
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return r.URL.Query().Get("token")
}
