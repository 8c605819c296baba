package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"stockroom/internal/config"
	"stockroom/internal/domain"
)

// Middleware authenticates bearer tokens and stores the acting user in the request context.
func Middleware(authCfg config.AuthConfig, companiesCfg config.CompaniesConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			token := raw
			if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				writeUnauthorized(w, "missing credentials")
				return
			}

			claims, err := ParseAccessToken(authCfg, token)
			if err != nil {
				logger.Debug("rejecting access token", zap.Error(err))
				writeUnauthorized(w, "invalid token")
				return
			}

			user := domain.ActingUser{
				ID:            claims.UserID,
				CompanyID:     claims.CompanyID,
				Superuser:     claims.Superuser,
				CompanyScoped: companiesCfg.FullScoping,
				Permissions:   claims.Permissions,
			}

			next.ServeHTTP(w, r.WithContext(WithActingUser(r.Context(), user)))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   "UNAUTHORIZED",
		"message": message,
	})
}
