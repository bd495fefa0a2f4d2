// Package admincheck реализует HTTP-обработчик проверки административной роли пользователя.
package admincheck

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/newsfusion/newsfusion-backend/internal/http/middlewarectx"
	"github.com/newsfusion/newsfusion-backend/internal/http/response"
	"github.com/newsfusion/newsfusion-backend/internal/lib/sl"
	userservice "github.com/newsfusion/newsfusion-backend/internal/services/user"
)

// Handler обрабатывает запросы проверки роли.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики ролей
}

// Service описывает интерфейс бизнес-логики проверки роли.
type Service interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Проверить административную роль
// @Description Сообщает, является ли пользователь с указанным email администратором. Только для владельца email.
// @Tags Users
// @Produce  json
// @Param email path string true "Email пользователя"
// @Success 200 {object} map[string]any "Результат проверки"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Email не совпадает с токеном"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /users/admin/{email} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.admincheck"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email := chi.URLParam(r, "email")

	tokenEmail, ok := middlewarectx.EmailFromContext(r.Context())
	if !ok {
		log.Error("email not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	if email != tokenEmail {
		log.Error("email mismatch", slog.String("token_email", tokenEmail))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("email does not match token"))
		return
	}

	isAdmin, err := h.service.IsAdmin(r.Context(), email)
	if err != nil {
		if errors.Is(err, userservice.ErrUserNotFound) {
			log.Error("user not found", slog.String("email", email))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to check role", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not check role"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"is_admin": isAdmin,
	}))
}
