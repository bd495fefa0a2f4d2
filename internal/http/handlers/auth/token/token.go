// Package token реализует HTTP-обработчик выпуска JWT токена по email.
//
// Handler принимает JSON-запрос с email, валидирует его и возвращает
// подписанный токен. Существование пользователя не проверяется: токен
// удостоверяет только владение email, права проверяются на защищённых
// маршрутах.
package token

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/newsfusion/newsfusion-backend/internal/http/response"
	"github.com/newsfusion/newsfusion-backend/internal/lib/sl"
)

// Handler управляет HTTP-запросами на выпуск токена.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис выпуска токенов
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс выпуска JWT токена.
type Service interface {
	GenerateToken(email string) (string, error)
}

// Request — тело запроса на выпуск токена.
type Request struct {
	Email string `json:"email" validate:"required,email"`
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
// @Summary Выпустить JWT токен
// @Description Выпускает JWT токен для указанного email. Токен передаётся в заголовке Authorization на защищённых маршрутах.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Email пользователя"
// @Success 200 {object} map[string]any "Токен выпущен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при выпуске токена"
// @Router /jwt [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.token"
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

	tokenStr, err := h.service.GenerateToken(req.Email)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not generate token"))
		return
	}

	log.Info("token issued", slog.String("email", req.Email))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"token": tokenStr,
	}))
}
