package subscribe

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/newsfusion/newsfusion-backend/internal/http/middlewarectx"
	userservice "github.com/newsfusion/newsfusion-backend/internal/services/user"
)

// MockService реализует интерфейс subscribe.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Subscribe(ctx context.Context, email, selector string) (time.Time, error) {
	args := m.Called(ctx, email, selector)
	return args.Get(0).(time.Time), args.Error(1)
}

func TestSubscribeHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	expiry := time.Date(2026, 9, 5, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		body           string
		ctxEmail       string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешная подписка",
			body:     `{"email":"user@example.com","selector":"5-days"}`,
			ctxEmail: "user@example.com",
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, "user@example.com", "5-days").Return(expiry, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"premium_taken"`,
		},
		{
			name:     "неизвестный селектор даёт мгновенное истечение",
			body:     `{"email":"user@example.com","selector":"forever"}`,
			ctxEmail: "user@example.com",
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, "user@example.com", "forever").Return(expiry, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"premium_taken"`,
		},
		{
			name:           "чужой email",
			body:           `{"email":"other@example.com","selector":"1-minute"}`,
			ctxEmail:       "user@example.com",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `"email does not match token"`,
		},
		{
			name:     "пользователь не найден",
			body:     `{"email":"ghost@example.com","selector":"10-days"}`,
			ctxEmail: "ghost@example.com",
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, "ghost@example.com", "10-days").
					Return(time.Time{}, userservice.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"user not found"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPatch, "/users/subscribe", strings.NewReader(tt.body))
			if tt.ctxEmail != "" {
				ctx := context.WithValue(req.Context(), middlewarectx.Email, tt.ctxEmail)
				req = req.WithContext(ctx)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
