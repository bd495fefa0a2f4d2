package read

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
	"github.com/newsfusion/newsfusion-backend/internal/models"
	articleservice "github.com/newsfusion/newsfusion-backend/internal/services/article"
)

// MockService реализует интерфейс read.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Read(ctx context.Context, id int, readerEmail string) (*models.Article, error) {
	args := m.Called(ctx, id, readerEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		urlID          string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "успешное чтение",
			urlID: "7",
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, 7, "reader@example.com").
					Return(&models.Article{ID: 7, Title: "Go news"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"Go news"`,
		},
		{
			name:           "некорректный id",
			urlID:          "abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"invalid id"`,
		},
		{
			name:  "статья не найдена",
			urlID: "99",
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, 99, "reader@example.com").
					Return(nil, articleservice.ErrArticleNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"article not found"`,
		},
		{
			name:  "требуется премиум",
			urlID: "5",
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, 5, "reader@example.com").
					Return(nil, articleservice.ErrPremiumRequired)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `"premium subscription required"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/articles/"+tt.urlID, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.urlID)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middlewarectx.Email, "reader@example.com")
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
