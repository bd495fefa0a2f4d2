// Package trending реализует HTTP-обработчик выборки популярных статей.
// Результат отдаётся из кеша, когда он прогрет.
package trending

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

// Handler обрабатывает запросы популярных статей.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики статей
}

// Service описывает интерфейс бизнес-логики популярных статей.
type Service interface {
	Trending(ctx context.Context) ([]*models.Article, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Популярные статьи
// @Description Возвращает самые просматриваемые одобренные статьи.
// @Tags Articles
// @Produce  json
// @Success 200 {object} map[string]any "Список статей"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /articles/trending [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.trending"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	articles, err := h.service.Trending(r.Context())
	if err != nil {
		log.Error("failed to list trending articles", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list trending articles"))
		return
	}

	log.Info("success to list trending articles", slog.Int("count", len(articles)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"articles": articles,
	}))
}
