// Package author реализует HTTP-обработчик выборки статей автора во всех
// статусах модерации. Доступ только для владельца email.
package author

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/newsfusion/newsfusion-backend/internal/http/middlewarectx"
	"github.com/newsfusion/newsfusion-backend/internal/http/response"
	"github.com/newsfusion/newsfusion-backend/internal/lib/sl"
	"github.com/newsfusion/newsfusion-backend/internal/models"
)

// Handler обрабатывает запросы статей автора.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики статей
}

// Service описывает интерфейс бизнес-логики выборки статей автора.
type Service interface {
	ListByAuthor(ctx context.Context, email string) ([]*models.Article, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Статьи автора
// @Description Возвращает статьи автора во всех статусах модерации. Только для владельца email.
// @Tags Articles
// @Produce  json
// @Param email path string true "Email автора"
// @Success 200 {object} map[string]any "Список статей"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Email не совпадает с токеном"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /articles/author/{email} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.author"
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

	articles, err := h.service.ListByAuthor(r.Context(), email)
	if err != nil {
		log.Error("failed to list author articles", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list author articles"))
		return
	}

	log.Info("success to list author articles", slog.Int("count", len(articles)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"articles": articles,
	}))
}
