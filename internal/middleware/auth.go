package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/aidar/invento-api/internal/service"
)

// ContextKey это кастомный тип для ключей контекста
type ContextKey string

// AdminIDKey ключ контекста для ID администратора
const AdminIDKey ContextKey = "admin_id"

// unauthorizedResponse повторяет общий конверт ответов API
type unauthorizedResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AuthMiddleware создает middleware для валидации JWT токенов
func AuthMiddleware(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Получаем токен из заголовка Authorization
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, r, "Not authorized, no token")
				return
			}

			// Проверяем формат Bearer
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				unauthorized(w, r, "Not authorized, invalid authorization header")
				return
			}

			// Валидируем токен
			claims, err := authService.ValidateToken(parts[1])
			if err != nil {
				unauthorized(w, r, "Not authorized, token failed")
				return
			}

			// Добавляем ID администратора в контекст
			ctx := context.WithValue(r.Context(), AdminIDKey, claims.AdminID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdminIDFromContext извлекает ID администратора из контекста
func GetAdminIDFromContext(ctx context.Context) string {
	adminID, ok := ctx.Value(AdminIDKey).(string)
	if !ok {
		return ""
	}
	return adminID
}

func unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, unauthorizedResponse{Success: false, Message: message})
}
