// Package update реализует HTTP-обработчик редактирования статьи.
//
// Handler принимает новые данные статьи, проверяет авторство и возвращает
// статью в статус pending для повторной модерации.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/newsfusion/newsfusion-backend/internal/http/middlewarectx"
	"github.com/newsfusion/newsfusion-backend/internal/http/response"
	"github.com/newsfusion/newsfusion-backend/internal/lib/sl"
	"github.com/newsfusion/newsfusion-backend/internal/models"
	articleservice "github.com/newsfusion/newsfusion-backend/internal/services/article"
)

// Handler управляет HTTP-запросами на редактирование статей.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики статей
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики редактирования статьи.
type Service interface {
	Update(ctx context.Context, id int, authorEmail string, req models.DummyArticle) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Отредактировать статью
// @Description Обновляет содержимое статьи и возвращает её на повторную модерацию. Только для автора.
// @Tags Articles
// @Accept  json
// @Produce  json
// @Param id path int true "ID статьи"
// @Param request body models.DummyArticle true "Новые данные статьи"
// @Success 200 {object} response.Response "Статья обновлена"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Статья принадлежит другому автору"
// @Failure 404 {object} response.ErrorResponse "Статья не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /articles/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.update"
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

	var req models.DummyArticle
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	email, ok := middlewarectx.EmailFromContext(r.Context())
	if !ok {
		log.Error("email not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.Update(r.Context(), id, email, req); err != nil {
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
			log.Error("failed to update article", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update article"))
		}
		return
	}

	log.Info("article updated", slog.Int("id", id))
	render.JSON(w, r, response.OK())
}
