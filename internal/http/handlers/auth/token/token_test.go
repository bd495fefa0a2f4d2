package token

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockService реализует интерфейс token.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) GenerateToken(email string) (string, error) {
	args := m.Called(email)
	return args.String(0), args.Error(1)
}

func TestTokenHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный выпуск токена",
			body: `{"email":"user@example.com"}`,
			setupMock: func(m *MockService) {
				m.On("GenerateToken", "user@example.com").Return("signed.jwt.token", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"token":"signed.jwt.token"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"email":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"invalid request body"`,
		},
		{
			name:           "невалидный email",
			body:           `{"email":"not-an-email"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `must be a valid email`,
		},
		{
			name: "ошибка выпуска токена",
			body: `{"email":"user@example.com"}`,
			setupMock: func(m *MockService) {
				m.On("GenerateToken", "user@example.com").Return("", errors.New("sign error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"could not generate token"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/jwt", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
