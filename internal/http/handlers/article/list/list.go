// Package list реализует HTTP-обработчик публичной ленты одобренных статей.
//
// Handler принимает query-параметры поиска по заголовку, фильтрации по
// издателю и тегу, а также пагинацию limit/offset.
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

// Handler обрабатывает запросы публичной ленты статей.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики статей
}

// Service описывает интерфейс бизнес-логики выборки одобренных статей.
type Service interface {
	List(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Лента одобренных статей
// @Description Возвращает одобренные статьи с поиском по заголовку, фильтрами по издателю и тегу и пагинацией.
// @Tags Articles
// @Produce  json
// @Param search query string false "Поиск по заголовку"
// @Param publisher query string false "Имя издателя"
// @Param tag query string false "Тег"
// @Param limit query int false "Максимум записей (по умолчанию 20)"
// @Param offset query int false "Смещение выборки"
// @Success 200 {object} map[string]any "Список статей"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /articles [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter := models.ArticleFilter{
		Search:    r.URL.Query().Get("search"),
		Publisher: r.URL.Query().Get("publisher"),
		Tag:       r.URL.Query().Get("tag"),
		Limit:     defaultLimit,
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		filter.Limit = v
	}
	if filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		filter.Offset = v
	}

	articles, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to list articles", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list articles"))
		return
	}

	log.Info("success to list articles", slog.Int("count", len(articles)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"articles": articles,
	}))
}
