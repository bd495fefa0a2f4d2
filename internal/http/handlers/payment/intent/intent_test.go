package intent

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

	"github.com/newsfusion/newsfusion-backend/internal/paymentprovider"
)

// MockService реализует интерфейс intent.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) CreateIntent(ctx context.Context, amountCents int) (*paymentprovider.CreateIntentResponse, error) {
	args := m.Called(ctx, amountCents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentprovider.CreateIntentResponse), args.Error(1)
}

func TestIntentHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное создание намерения",
			body: `{"amount_cents":499}`,
			setupMock: func(m *MockService) {
				m.On("CreateIntent", mock.Anything, 499).Return(&paymentprovider.CreateIntentResponse{
					ID:           "pi_123",
					ClientSecret: "pi_123_secret",
					Status:       "requires_payment_method",
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"client_secret":"pi_123_secret"`,
		},
		{
			name:           "нулевая сумма отклоняется",
			body:           `{"amount_cents":0}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `required field`,
		},
		{
			name: "ошибка провайдера",
			body: `{"amount_cents":499}`,
			setupMock: func(m *MockService) {
				m.On("CreateIntent", mock.Anything, 499).Return(nil, errors.New("provider down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"could not create payment intent"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/payments/intent", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
