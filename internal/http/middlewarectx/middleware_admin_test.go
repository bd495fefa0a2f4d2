package middlewarectx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/newsfusion/newsfusion-backend/internal/http/middlewarectx"
	"github.com/newsfusion/newsfusion-backend/internal/models"
	userservice "github.com/newsfusion/newsfusion-backend/internal/services/user"
)

type UserServiceMock struct {
	mock.Mock
}

func (m *UserServiceMock) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func TestAdminMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		ctxEmail       string
		mockUser       *models.User
		mockErr        error
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "missing email in context",
			ctxEmail:       "",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "regular user forbidden",
			ctxEmail:       "user@example.com",
			mockUser:       &models.User{Email: "user@example.com", Role: models.RoleRegular},
			wantStatusCode: http.StatusForbidden,
			wantCalled:     false,
		},
		{
			name:           "unknown user forbidden",
			ctxEmail:       "ghost@example.com",
			mockErr:        userservice.ErrUserNotFound,
			wantStatusCode: http.StatusForbidden,
			wantCalled:     false,
		},
		{
			name:           "admin passes",
			ctxEmail:       "admin@example.com",
			mockUser:       &models.User{Email: "admin@example.com", Role: models.RoleAdmin},
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			users := new(UserServiceMock)
			if tc.ctxEmail != "" {
				users.On("GetByEmail", mock.Anything, tc.ctxEmail).Return(tc.mockUser, tc.mockErr)
			}

			handlerCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})

			mw := middlewarectx.AdminMiddleware(users, newNoopLogger())(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.ctxEmail != "" {
				ctx := context.WithValue(req.Context(), middlewarectx.Email, tc.ctxEmail)
				req = req.WithContext(ctx)
			}
			rr := httptest.NewRecorder()

			mw.ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatusCode, rr.Code)
			assert.Equal(t, tc.wantCalled, handlerCalled)
		})
	}
}
