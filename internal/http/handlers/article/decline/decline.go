// Package decline реализует HTTP-обработчик отклонения статьи модератором
// с указанием причины. Маршрут доступен только администраторам.
package decline

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

	"github.com/newsfusion/newsfusion-backend/internal/http/response"
	"github.com/newsfusion/newsfusion-backend/internal/lib/sl"
	articleservice "github.com/newsfusion/newsfusion-backend/internal/services/article"
)

// Handler обрабатывает запросы отклонения статей.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики модерации
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики отклонения статьи.
type Service interface {
	Decline(ctx context.Context, id int, reason string) error
}

// Request — тело запроса отклонения статьи.
type Request struct {
	Reason string `json:"reason" validate:"required"`
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
// @Summary Отклонить статью
// @Description Переводит статью в статус declined с причиной и уведомляет автора. Только для администраторов.
// @Tags Articles
// @Accept  json
// @Produce  json
// @Param id path int true "ID статьи"
// @Param request body Request true "Причина отклонения"
// @Success 200 {object} response.Response "Статья отклонена"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 404 {object} response.ErrorResponse "Статья не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /articles/decline/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.decline"
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

	var req Request
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

	if err := h.service.Decline(r.Context(), id, req.Reason); err != nil {
		if errors.Is(err, articleservice.ErrArticleNotFound) {
			log.Error("article not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("article not found"))
			return
		}
		log.Error("failed to decline article", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not decline article"))
		return
	}

	log.Info("article declined", slog.Int("id", id))
	render.JSON(w, r, response.OK())
}
