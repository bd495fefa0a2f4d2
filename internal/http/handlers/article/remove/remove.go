// Package remove реализует HTTP-обработчик удаления статьи.
// Удалять статью может её автор или администратор.
package remove

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
	articleservice "github.com/newsfusion/newsfusion-backend/internal/services/article"
	userservice "github.com/newsfusion/newsfusion-backend/internal/services/user"
)

// Handler обрабатывает запросы удаления статей.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики статей
	users   UserService  // Сервис проверки административной роли
}

// Service описывает интерфейс бизнес-логики удаления статьи.
type Service interface {
	Remove(ctx context.Context, id int, requesterEmail string, isAdmin bool) error
}

// UserService описывает интерфейс проверки роли пользователя.
type UserService interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// New создает новый Handler с переданными логгером и сервисами.
func New(log *slog.Logger, service Service, users UserService) *Handler {
	return &Handler{
		log:     log,
		service: service,
		users:   users,
	}
}

// ServeHTTP godoc
// @Summary Удалить статью
// @Description Удаляет статью. Доступно автору статьи и администраторам.
// @Tags Articles
// @Produce  json
// @Param id path int true "ID статьи"
// @Success 200 {object} response.Response "Статья удалена"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Статья принадлежит другому автору"
// @Failure 404 {object} response.ErrorResponse "Статья не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /articles/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.remove"
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

	isAdmin, err := h.users.IsAdmin(r.Context(), email)
	if err != nil && !errors.Is(err, userservice.ErrUserNotFound) {
		log.Error("failed to check role", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove article"))
		return
	}

	if err := h.service.Remove(r.Context(), id, email, isAdmin); err != nil {
		switch {
		case errors.Is(err, articleservice.ErrArticleNotFound):
			log.Error("article not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("article not found"))
		case errors.Is(err, articleservice.ErrNotAuthor):
			log.Error("not the author", slog.Int("id", id), slog.String("email", email))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("article belongs to another author"))
		default:
			log.Error("failed to remove article", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not remove article"))
		}
		return
	}

	log.Info("article removed", slog.Int("id", id))
	render.JSON(w, r, response.OK())
}
