// Package approve реализует HTTP-обработчик одобрения статьи модератором.
// Маршрут доступен только администраторам.
package approve

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/newsfusion/newsfusion-backend/internal/http/response"
	"github.com/newsfusion/newsfusion-backend/internal/lib/sl"
	articleservice "github.com/newsfusion/newsfusion-backend/internal/services/article"
)

// Handler обрабатывает запросы одобрения статей.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики модерации
}

// Service описывает интерфейс бизнес-логики одобрения статьи.
type Service interface {
	Approve(ctx context.Context, id int) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Одобрить статью
// @Description Переводит статью в статус approved и уведомляет автора. Только для администраторов.
// @Tags Articles
// @Produce  json
// @Param id path int true "ID статьи"
// @Success 200 {object} response.Response "Статья одобрена"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Статья не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /articles/approve/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.approve"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	if err := h.service.Approve(r.Context(), id); err != nil {
		if errors.Is(err, articleservice.ErrArticleNotFound) {
			log.Error("article not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("article not found"))
			return
		}
		log.Error("failed to approve article", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not approve article"))
		return
	}

	log.Info("article approved", slog.Int("id", id))
	render.JSON(w, r, response.OK())
}
