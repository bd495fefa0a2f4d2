// Package intent реализует HTTP-обработчик создания платёжного намерения.
//
// Handler принимает сумму в минимальных единицах валюты, создает намерение
// у платёжного провайдера и возвращает client secret для подтверждения
// платежа на клиенте.
package intent

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/newsfusion/newsfusion-backend/internal/http/response"
	"github.com/newsfusion/newsfusion-backend/internal/lib/sl"
	"github.com/newsfusion/newsfusion-backend/internal/paymentprovider"
)

// Handler управляет HTTP-запросами на создание платёжных намерений.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики платежей
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания платёжного намерения.
type Service interface {
	CreateIntent(ctx context.Context, amountCents int) (*paymentprovider.CreateIntentResponse, error)
}

// Request — тело запроса создания платёжного намерения.
type Request struct {
	AmountCents int `json:"amount_cents" validate:"required,gt=0"`
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
// @Summary Создать платёжное намерение
// @Description Создает намерение у платёжного провайдера и возвращает client secret.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body Request true "Сумма платежа"
// @Success 200 {object} map[string]any "Намерение создано"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка платёжного провайдера"
// @Security BearerAuth
// @Router /payments/intent [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.intent"
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

	resp, err := h.service.CreateIntent(r.Context(), req.AmountCents)
	if err != nil {
		log.Error("failed to create payment intent", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create payment intent"))
		return
	}

	log.Info("payment intent created", slog.String("intent_id", resp.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"intent_id":     resp.ID,
		"client_secret": resp.ClientSecret,
		"status":        resp.Status,
	}))
}
