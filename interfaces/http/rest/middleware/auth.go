package middleware

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"soundmap/pkg/auth"
	"soundmap/pkg/common"
)

// Authenticate validates the bearer access token and puts the username on
// the request context. Error bodies use the "detail" field, matching the
// token endpoints.
func Authenticate(issuer *auth.TokenIssuer, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				common.RespondDetail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				common.RespondDetail(w, http.StatusUnauthorized, "Authorization header must contain two space-delimited values")
				return
			}

			claims, err := issuer.ValidateAccess(parts[1])
			if err != nil {
				logger.Debug("rejected access token",
					zap.Error(err),
					zap.String("path", r.URL.Path),
				)
				common.RespondDetail(w, http.StatusUnauthorized, "Given token not valid for any token type")
				return
			}

			ctx := auth.ContextWithUser(r.Context(), claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
