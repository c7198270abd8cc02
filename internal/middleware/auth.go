package middleware

import (
	"context"
	"net/http"
	"strings"

	"taskKeeper/internal/auth"
	"taskKeeper/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const UserIdKey contextKey = "user_id"

// Auth проверяет Bearer-токен и кладёт id пользователя в контекст запроса.
// Отсутствие токена — 401, невалидный токен — 403.
func Auth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				logger.Warn("AUTH: Токен не передан",
					zap.String("path", r.URL.Path),
					zap.String("client_ip", r.RemoteAddr))
				writeAuthError(w, http.StatusUnauthorized, "токен не передан")
				return
			}

			tokenString := strings.TrimPrefix(header, "Bearer ")

			userID, err := tokens.Validate(tokenString)
			if err != nil {
				logger.Warn("AUTH: Неверный токен",
					zap.Error(err),
					zap.String("path", r.URL.Path),
					zap.String("client_ip", r.RemoteAddr))
				writeAuthError(w, http.StatusForbidden, "неверный токен")
				return
			}

			ctx := context.WithValue(r.Context(), UserIdKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(UserIdKey).(uuid.UUID)
	return id, ok
}

// WithUserID нужен хендлерам в тестах, где цепочка Auth не поднимается.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, UserIdKey, userID)
}

func writeAuthError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
