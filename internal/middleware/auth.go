package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/utils"
)

// Authenticate requires a valid "Authorization: Bearer <jwt>" header and
// stores the caller in the request context.
func Authenticate(log zerolog.Logger, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			tok, ok := strings.CutPrefix(h, "Bearer ")
			tok = strings.TrimSpace(tok)
			if !ok || tok == "" {
				utils.Error(w, http.StatusUnauthorized, "No token provided")
				return
			}

			claims, err := utils.ParseJWT(secret, tok)
			if err != nil {
				log.Debug().Err(err).Msg("rejected bearer token")
				utils.Error(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := utils.WithPrincipal(r.Context(), utils.Principal{UserID: claims.UserID, Role: claims.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
