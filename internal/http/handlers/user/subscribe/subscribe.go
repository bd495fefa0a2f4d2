// Package subscribe реализует HTTP-обработчик оформления премиум-подписки.
//
// Handler принимает email и селектор длительности, проверяет совпадение
// email с токеном и выставляет новый момент истечения премиума. Повторная
// подписка перезаписывает отметку, остаток прежней не суммируется.
package subscribe

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/newsfusion/newsfusion-backend/internal/http/middlewarectx"
	"github.com/newsfusion/newsfusion-backend/internal/http/response"
	"github.com/newsfusion/newsfusion-backend/internal/lib/sl"
	userservice "github.com/newsfusion/newsfusion-backend/internal/services/user"
)

// Handler управляет HTTP-запросами на оформление премиум-подписки.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики подписки
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики оформления подписки.
type Service interface {
	Subscribe(ctx context.Context, email, selector string) (time.Time, error)
}

// Request — тело запроса на оформление подписки.
//
// Селектор не ограничен списком: неизвестное значение даёт нулевую
// длительность, то есть подписку с немедленным истечением.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Selector string `json:"selector" validate:"required"`
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
// @Summary Оформить премиум-подписку
// @Description Выставляет момент истечения премиума по селектору длительности. Только для владельца email.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body Request true "Email и селектор длительности"
// @Success 200 {object} map[string]any "Подписка оформлена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Email не совпадает с токеном"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /users/subscribe [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.subscribe"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	tokenEmail, ok := middlewarectx.EmailFromContext(r.Context())
	if !ok {
		log.Error("email not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	if req.Email != tokenEmail {
		log.Error("email mismatch", slog.String("token_email", tokenEmail))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("email does not match token"))
		return
	}

	expiry, err := h.service.Subscribe(r.Context(), req.Email, req.Selector)
	if err != nil {
		if errors.Is(err, userservice.ErrUserNotFound) {
			log.Error("user not found", slog.String("email", req.Email))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to subscribe", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not subscribe"))
		return
	}

	log.Info("premium subscription taken", slog.String("email", req.Email), slog.Time("expiry", expiry))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"premium_taken": expiry,
	}))
}
