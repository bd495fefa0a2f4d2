// Package create реализует HTTP-обработчик создания статьи.
//
// Handler принимает JSON-запрос с данными статьи, валидирует их, извлекает
// email автора из контекста и вызывает бизнес-логику создания. Автор без
// действующего премиума ограничен одной статьёй.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/newsfusion/newsfusion-backend/internal/http/middlewarectx"
	"github.com/newsfusion/newsfusion-backend/internal/http/response"
	"github.com/newsfusion/newsfusion-backend/internal/lib/sl"
	"github.com/newsfusion/newsfusion-backend/internal/models"
	articleservice "github.com/newsfusion/newsfusion-backend/internal/services/article"
)

// Handler управляет HTTP-запросами на создание статей.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики статей
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания статьи.
type Service interface {
	Create(ctx context.Context, authorEmail string, req models.DummyArticle) (int, error)
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
// @Summary Создать статью
// @Description Создает статью от имени автора из токена. Автор без премиума ограничен одной статьёй.
// @Tags Articles
// @Accept  json
// @Produce  json
// @Param request body models.DummyArticle true "Данные новой статьи"
// @Success 200 {object} map[string]any "Статья создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Автор не зарегистрирован"
// @Failure 403 {object} response.ErrorResponse "Достигнут лимит статей"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /articles [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	id, err := h.service.Create(r.Context(), email, req)
	if err != nil {
		switch {
		case errors.Is(err, articleservice.ErrAuthorNotFound):
			log.Error("author not found", slog.String("email", email))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("author not registered"))
		case errors.Is(err, articleservice.ErrAuthorLimitReached):
			log.Error("author limit reached", slog.String("email", email))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("article limit reached, premium required"))
		default:
			log.Error("failed to create article", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not create article"))
		}
		return
	}

	log.Info("article created", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id": id,
	}))
}
