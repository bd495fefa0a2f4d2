// Package middlewarectx содержит HTTP middleware для обработки и проверки JWT токенов.
//
// JWTMiddleware проверяет наличие и валидность JWT токена в заголовке Authorization
// и в случае успеха добавляет в контекст email пользователя для дальнейшего
// использования в обработчиках.
//
// В случае ошибки проверки возвращает HTTP 401 Unauthorized с сообщением об ошибке.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/newsfusion/newsfusion-backend/internal/http/response"
	jwtlib "github.com/newsfusion/newsfusion-backend/internal/lib/jwt"
	"github.com/newsfusion/newsfusion-backend/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// Email — ключ для email пользователя в контексте.
const Email Key = "email"

// JWTMiddleware проверяет JWT токен из заголовка Authorization.
//
// Если токен валиден, добавляет email пользователя в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func JWTMiddleware(maker jwtlib.Maker, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := maker.ParseToken(tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), Email, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// EmailFromContext возвращает email аутентифицированного пользователя из контекста.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(Email).(string)
	return email, ok && email != ""
}
