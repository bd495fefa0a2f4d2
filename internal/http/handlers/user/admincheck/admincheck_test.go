package admincheck

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/newsfusion/newsfusion-backend/internal/http/middlewarectx"
	userservice "github.com/newsfusion/newsfusion-backend/internal/services/user"
)

// MockService реализует интерфейс admincheck.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) IsAdmin(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func TestAdminCheckHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		pathEmail      string
		ctxEmail       string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "администратор",
			pathEmail: "admin@example.com",
			ctxEmail:  "admin@example.com",
			setupMock: func(m *MockService) {
				m.On("IsAdmin", mock.Anything, "admin@example.com").Return(true, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"is_admin":true`,
		},
		{
			name:      "обычный пользователь",
			pathEmail: "user@example.com",
			ctxEmail:  "user@example.com",
			setupMock: func(m *MockService) {
				m.On("IsAdmin", mock.Anything, "user@example.com").Return(false, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"is_admin":false`,
		},
		{
			name:           "чужой email",
			pathEmail:      "victim@example.com",
			ctxEmail:       "attacker@example.com",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `"email does not match token"`,
		},
		{
			name:           "нет email в контексте",
			pathEmail:      "user@example.com",
			ctxEmail:       "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"unauthorized"`,
		},
		{
			name:      "пользователь не найден",
			pathEmail: "ghost@example.com",
			ctxEmail:  "ghost@example.com",
			setupMock: func(m *MockService) {
				m.On("IsAdmin", mock.Anything, "ghost@example.com").
					Return(false, userservice.ErrUserNotFound)
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

			req := httptest.NewRequest(http.MethodGet, "/users/admin/"+tt.pathEmail, nil)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("email", tt.pathEmail)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			if tt.ctxEmail != "" {
				ctx = context.WithValue(ctx, middlewarectx.Email, tt.ctxEmail)
			}
			req = req.WithContext(ctx)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
