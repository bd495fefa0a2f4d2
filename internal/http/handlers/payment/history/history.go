// Package history реализует HTTP-обработчик истории платежей пользователя.
package history

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/newsfusion/newsfusion-backend/internal/http/middlewarectx"
	"github.com/newsfusion/newsfusion-backend/internal/http/response"
	"github.com/newsfusion/newsfusion-backend/internal/lib/sl"
	"github.com/newsfusion/newsfusion-backend/internal/models"
)

// Handler обрабатывает запросы истории платежей.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики платежей
}

// Service описывает интерфейс бизнес-логики истории платежей.
type Service interface {
	History(ctx context.Context, email string) ([]*models.Payment, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary История платежей
// @Description Возвращает платежи текущего пользователя, новые первыми.
// @Tags Payments
// @Produce  json
// @Success 200 {object} map[string]any "Список платежей"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /payments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.history"
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

	payments, err := h.service.History(r.Context(), email)
	if err != nil {
		log.Error("failed to list payments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list payments"))
		return
	}

	log.Info("success to list payments", slog.Int("count", len(payments)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"payments": payments,
	}))
}
