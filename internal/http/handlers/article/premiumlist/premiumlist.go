// Package premiumlist реализует HTTP-обработчик выборки премиум-статей.
// Доступ только для читателей с действующим премиумом.
package premiumlist

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/newsfusion/newsfusion-backend/internal/http/middlewarectx"
	"github.com/newsfusion/newsfusion-backend/internal/http/response"
	"github.com/newsfusion/newsfusion-backend/internal/lib/sl"
	"github.com/newsfusion/newsfusion-backend/internal/models"
	articleservice "github.com/newsfusion/newsfusion-backend/internal/services/article"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Handler обрабатывает запросы списка премиум-статей.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики статей
}

// Service описывает интерфейс бизнес-логики выборки премиум-статей.
type Service interface {
	ListPremium(ctx context.Context, readerEmail string, limit, offset int) ([]*models.Article, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Премиум-статьи
// @Description Возвращает одобренные премиум-статьи. Требуется действующий премиум читателя.
// @Tags Articles
// @Produce  json
// @Param limit query int false "Максимум записей (по умолчанию 20)"
// @Param offset query int false "Смещение выборки"
// @Success 200 {object} map[string]any "Список статей"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется премиум"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /articles/premium [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.premiumlist"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email, ok := middlewarectx.EmailFromContext(r.Context())
	if !ok {
		log.Error("email not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

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

	articles, err := h.service.ListPremium(r.Context(), email, limit, offset)
	if err != nil {
		if errors.Is(err, articleservice.ErrPremiumRequired) {
			log.Error("premium required", slog.String("email", email))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("premium subscription required"))
			return
		}
		log.Error("failed to list premium articles", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list premium articles"))
		return
	}

	log.Info("success to list premium articles", slog.Int("count", len(articles)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"articles": articles,
	}))
}
