package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/newsfusion/newsfusion-backend/internal/http/response"
	"github.com/newsfusion/newsfusion-backend/internal/lib/sl"
	"github.com/newsfusion/newsfusion-backend/internal/models"
	userservice "github.com/newsfusion/newsfusion-backend/internal/services/user"
)

// UserService описывает интерфейс для получения пользователя по email.
type UserService interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// AdminMiddleware пропускает дальше только администраторов.
//
// Роль берётся из хранилища по email из контекста, а не из токена:
// снятие роли действует немедленно, не дожидаясь истечения токена.
func AdminMiddleware(users UserService, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AdminMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			email, ok := EmailFromContext(r.Context())
			if !ok {
				log.Error("user identification missing")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			user, err := users.GetByEmail(r.Context(), email)
			if err != nil {
				if errors.Is(err, userservice.ErrUserNotFound) {
					log.Error("user not found", slog.String("email", email))
					render.Status(r, http.StatusForbidden)
					render.JSON(w, r, response.Error("admin access required"))
					return
				}
				log.Error("failed to get user", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			if user.Role != models.RoleAdmin {
				log.Error("admin access denied", slog.String("email", email))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("admin access required"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
