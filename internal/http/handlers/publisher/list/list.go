// Package list реализует HTTP-обработчик получения списка издателей.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/newsfusion/newsfusion-backend/internal/http/response"
	"github.com/newsfusion/newsfusion-backend/internal/lib/sl"
	"github.com/newsfusion/newsfusion-backend/internal/models"
)

// Handler обрабатывает запросы списка издателей.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики издателей
}

// Service описывает интерфейс бизнес-логики списка издателей.
type Service interface {
	List(ctx context.Context) ([]*models.Publisher, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список издателей
// @Description Возвращает всех издателей справочника.
// @Tags Publishers
// @Produce  json
// @Success 200 {object} map[string]any "Список издателей"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /publishers [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.publisher.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	publishers, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list publishers", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list publishers"))
		return
	}

	log.Info("success to list publishers", slog.Int("count", len(publishers)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"publishers": publishers,
	}))
}
