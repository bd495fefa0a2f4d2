// Package list реализует HTTP-обработчик получения списка пользователей.
// Маршрут доступен только администраторам.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/newsfusion/newsfusion-backend/internal/http/response"
	"github.com/newsfusion/newsfusion-backend/internal/lib/sl"
	"github.com/newsfusion/newsfusion-backend/internal/models"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Handler обрабатывает запросы списка пользователей.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики списка пользователей
}

// Service описывает интерфейс бизнес-логики списка пользователей.
type Service interface {
	List(ctx context.Context, limit, offset int) ([]*models.User, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список пользователей
// @Description Возвращает список пользователей с пагинацией. Только для администраторов.
// @Tags Users
// @Produce  json
// @Param limit query int false "Максимум записей (по умолчанию 20)"
// @Param offset query int false "Смещение выборки"
// @Success 200 {object} map[string]any "Список пользователей"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, offset := pagination(r, defaultLimit, maxLimit)

	users, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list users"))
		return
	}

	log.Info("success to list users", slog.Int("count", len(users)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"users": users,
	}))
}

func pagination(r *http.Request, def, max int) (limit, offset int) {
	limit = def
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > max {
		limit = max
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}
