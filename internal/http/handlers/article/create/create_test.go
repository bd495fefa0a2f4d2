package create

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/newsfusion/newsfusion-backend/internal/http/middlewarectx"
	"github.com/newsfusion/newsfusion-backend/internal/models"
	articleservice "github.com/newsfusion/newsfusion-backend/internal/services/article"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, authorEmail string, req models.DummyArticle) (int, error) {
	args := m.Called(ctx, authorEmail, req)
	return args.Int(0), args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	validBody := `{"title":"Go news","description":"text","publisher_name":"TechDaily","tags":["go"]}`

	tests := []struct {
		name           string
		body           string
		ctxEmail       string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешное создание",
			body:     validBody,
			ctxEmail: "author@example.com",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "author@example.com", mock.Anything).Return(42, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":42`,
		},
		{
			name:     "достигнут лимит статей",
			body:     validBody,
			ctxEmail: "author@example.com",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "author@example.com", mock.Anything).
					Return(0, articleservice.ErrAuthorLimitReached)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `"article limit reached, premium required"`,
		},
		{
			name:     "автор не зарегистрирован",
			body:     validBody,
			ctxEmail: "ghost@example.com",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "ghost@example.com", mock.Anything).
					Return(0, articleservice.ErrAuthorNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"author not registered"`,
		},
		{
			name:           "нет email в контексте",
			body:           validBody,
			ctxEmail:       "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"unauthorized"`,
		},
		{
			name:           "невалидное тело запроса",
			body:           `{"title":"only title"}`,
			ctxEmail:       "author@example.com",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `required field`,
		},
		{
			name:     "ошибка сервиса",
			body:     validBody,
			ctxEmail: "author@example.com",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "author@example.com", mock.Anything).
					Return(0, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"could not create article"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/articles", strings.NewReader(tt.body))
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
