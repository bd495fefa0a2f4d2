// Package health реализует HTTP-обработчик проверки готовности сервиса.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/newsfusion/newsfusion-backend/internal/http/response"
	"github.com/newsfusion/newsfusion-backend/internal/lib/sl"
)

// Handler обрабатывает запросы проверки готовности.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	checker Checker      // Проверка готовности хранилища
}

// Checker описывает интерфейс проверки готовности хранилища.
type Checker interface {
	CheckDatabaseReady(ctx context.Context) error
}

// New создает новый Handler с переданным логгером и проверкой хранилища.
func New(log *slog.Logger, checker Checker) *Handler {
	return &Handler{
		log:     log,
		checker: checker,
	}
}

// ServeHTTP godoc
// @Summary Проверка готовности
// @Description Сообщает о готовности сервиса и его хранилища.
// @Tags Health
// @Produce  json
// @Success 200 {object} map[string]any "Сервис готов"
// @Failure 503 {object} response.ErrorResponse "Хранилище недоступно"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	if err := h.checker.CheckDatabaseReady(r.Context()); err != nil {
		h.log.Error("database not ready", slog.String("op", op), sl.Err(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("storage is not ready"))
		return
	}

	w.WriteHeader(http.StatusOK)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"status": "ok",
	}))
}
