package middleware

import (
	"arcade_backend/internal/config"
	"arcade_backend/pkg/resp"
	"arcade_backend/pkg/token"
	"context"
	"net/http"
	"strconv"
	"strings"
)

type ctxKey string

const userIDKey ctxKey = "user_id"

// Auth - проверяет access token из заголовка Authorization
// и кладет ID пользователя в контекст запроса
func Auth(jwtCfg config.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenStr, found := strings.CutPrefix(header, "Bearer ")
			if !found || tokenStr == "" {
				resp.WriteError(w, http.StatusUnauthorized, "missing access token")
				return
			}

			claims, err := token.VerifyToken(tokenStr, jwtCfg.AccessTokenSecretKey())
			if err != nil {
				resp.WriteError(w, http.StatusUnauthorized, "invalid access token")
				return
			}

			userID, err := strconv.Atoi(claims.ID)
			if err != nil {
				resp.WriteError(w, http.StatusUnauthorized, "invalid token claims")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext - достает ID пользователя, положенный Auth
func UserIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok
}

// WithUserID - кладет ID пользователя в контекст (для вызовов сервисов вне HTTP)
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
