// Package read реализует HTTP-обработчик получения статьи по ID.
//
// Handler извлекает ID из URL-параметров и возвращает статью. Премиум-статья
// доступна только читателю с действующим премиумом, автор читает свою статью
// без подписки. Каждое успешное чтение увеличивает счётчик просмотров.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/newsfusion/newsfusion-backend/internal/http/middlewarectx"
	"github.com/newsfusion/newsfusion-backend/internal/http/response"
	"github.com/newsfusion/newsfusion-backend/internal/lib/sl"
	"github.com/newsfusion/newsfusion-backend/internal/models"
	articleservice "github.com/newsfusion/newsfusion-backend/internal/services/article"
)

// Handler обрабатывает запросы на получение статьи по ID.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики статей
}

// Service описывает интерфейс бизнес-логики чтения статьи.
type Service interface {
	Read(ctx context.Context, id int, readerEmail string) (*models.Article, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить статью
// @Description Возвращает статью по ID. Премиум-статья требует действующего премиума читателя.
// @Tags Articles
// @Produce  json
// @Param id path int true "ID статьи"
// @Success 200 {object} map[string]any "Статья"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется премиум"
// @Failure 404 {object} response.ErrorResponse "Статья не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /articles/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.read"
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

	email, ok := middlewarectx.EmailFromContext(r.Context())
	if !ok {
		log.Error("email not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	article, err := h.service.Read(r.Context(), id, email)
	if err != nil {
		switch {
		case errors.Is(err, articleservice.ErrArticleNotFound):
			log.Error("article not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("article not found"))
		case errors.Is(err, articleservice.ErrPremiumRequired):
			log.Error("premium required", slog.Int("id", id))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("premium subscription required"))
		default:
			log.Error("failed to read article", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not read article"))
		}
		return
	}

	log.Info("success to read article", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"article": article,
	}))
}
