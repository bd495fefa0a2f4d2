// Package makeadmin реализует HTTP-обработчик назначения пользователя администратором.
// Маршрут доступен только администраторам.
package makeadmin

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/newsfusion/newsfusion-backend/internal/http/response"
	"github.com/newsfusion/newsfusion-backend/internal/lib/sl"
	userservice "github.com/newsfusion/newsfusion-backend/internal/services/user"
)

// Handler обрабатывает запросы на назначение администратора.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики ролей
}

// Service описывает интерфейс бизнес-логики назначения администратора.
type Service interface {
	MakeAdmin(ctx context.Context, email string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Назначить администратора
// @Description Назначает пользователя с указанным email администратором. Только для администраторов.
// @Tags Users
// @Produce  json
// @Param email path string true "Email пользователя"
// @Success 200 {object} response.Response "Роль обновлена"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /users/admin/{email} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.makeadmin"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email := chi.URLParam(r, "email")

	if err := h.service.MakeAdmin(r.Context(), email); err != nil {
		if errors.Is(err, userservice.ErrUserNotFound) {
			log.Error("user not found", slog.String("email", email))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to make admin", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update role"))
		return
	}

	log.Info("user promoted to admin", slog.String("email", email))
	render.JSON(w, r, response.OK())
}
