// Package listall реализует HTTP-обработчик выборки всех статей независимо
// от статуса модерации. Маршрут доступен только администраторам.
package listall

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

// Handler обрабатывает запросы полного списка статей.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики статей
}

// Service описывает интерфейс бизнес-логики выборки всех статей.
type Service interface {
	ListAll(ctx context.Context, limit, offset int) ([]*models.Article, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Все статьи
// @Description Возвращает статьи во всех статусах модерации. Только для администраторов.
// @Tags Articles
// @Produce  json
// @Param limit query int false "Максимум записей (по умолчанию 20)"
// @Param offset query int false "Смещение выборки"
// @Success 200 {object} map[string]any "Список статей"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /articles/all [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.listall"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit := defaultLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	var offset int
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}

	articles, err := h.service.ListAll(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list all articles", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list articles"))
		return
	}

	log.Info("success to list all articles", slog.Int("count", len(articles)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"articles": articles,
	}))
}
