// Package premiumstatus реализует HTTP-обработчик проверки премиум-статуса пользователя.
//
// Статус вычисляется из отметки истечения на момент запроса: истёкшая,
// но ещё не скорректированная в хранилище отметка даёт false.
package premiumstatus

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/newsfusion/newsfusion-backend/internal/http/middlewarectx"
	"github.com/newsfusion/newsfusion-backend/internal/http/response"
	"github.com/newsfusion/newsfusion-backend/internal/lib/sl"
	userservice "github.com/newsfusion/newsfusion-backend/internal/services/user"
)

// Handler обрабатывает запросы премиум-статуса.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики премиум-статуса
}

// Service описывает интерфейс бизнес-логики премиум-статуса.
type Service interface {
	PremiumStatus(ctx context.Context, email string) (bool, *time.Time, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Проверить премиум-статус
// @Description Возвращает действующий премиум-статус пользователя и момент истечения. Только для владельца email.
// @Tags Users
// @Produce  json
// @Param email path string true "Email пользователя"
// @Success 200 {object} map[string]any "Премиум-статус"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Email не совпадает с токеном"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /users/premium/{email} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.premiumstatus"
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

	active, premiumTaken, err := h.service.PremiumStatus(r.Context(), email)
	if err != nil {
		if errors.Is(err, userservice.ErrUserNotFound) {
			log.Error("user not found", slog.String("email", email))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to get premium status", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get premium status"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"premium":       active,
		"premium_taken": premiumTaken,
	}))
}
