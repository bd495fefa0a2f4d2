// Package register реализует HTTP-обработчик идемпотентной регистрации пользователя.
//
// Handler принимает JSON-запрос с данными пользователя, валидирует их и вызывает
// бизнес-логику регистрации. Повторная регистрация по тому же email не является
// ошибкой: возвращается существующая запись с признаком inserted=false.
package register

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/newsfusion/newsfusion-backend/internal/http/middlewarectx"
	"github.com/newsfusion/newsfusion-backend/internal/http/response"
	"github.com/newsfusion/newsfusion-backend/internal/lib/sl"
	"github.com/newsfusion/newsfusion-backend/internal/models"
)

// Handler управляет HTTP-запросами на регистрацию пользователей.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики регистрации
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	RegisterOrGet(ctx context.Context, req models.DummyUser) (*models.RegisterResult, error)
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
// @Summary Зарегистрировать пользователя
// @Description Регистрирует пользователя по email из токена. Повторная регистрация возвращает существующую запись.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body models.DummyUser true "Данные пользователя"
// @Success 200 {object} map[string]any "Пользователь зарегистрирован или найден"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Email не совпадает с токеном"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при регистрации"
// @Security BearerAuth
// @Router /users [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.register"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyUser
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
	if req.Email != email {
		log.Error("email mismatch", slog.String("token_email", email))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("email does not match token"))
		return
	}

	result, err := h.service.RegisterOrGet(r.Context(), req)
	if err != nil {
		log.Error("failed to register user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not register user"))
		return
	}

	log.Info("user registered", slog.String("email", req.Email), slog.Bool("inserted", result.Inserted))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"inserted": result.Inserted,
		"user":     result.User,
	}))
}
