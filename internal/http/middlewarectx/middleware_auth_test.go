package middlewarectx_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/newsfusion/newsfusion-backend/internal/http/middlewarectx"
	jwtlib "github.com/newsfusion/newsfusion-backend/internal/lib/jwt"
)

type MakerMock struct {
	mock.Mock
}

func (m *MakerMock) GenerateToken(email string) (string, error) {
	args := m.Called(email)
	return args.String(0), args.Error(1)
}

func (m *MakerMock) ParseToken(tokenStr string) (*jwtlib.CustomClaims, error) {
	args := m.Called(tokenStr)
	claims, _ := args.Get(0).(*jwtlib.CustomClaims)
	return claims, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestJWTMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		mockClaims     *jwtlib.CustomClaims
		mockErr        error
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "missing Authorization header",
			authHeader:     "",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "invalid Authorization header prefix",
			authHeader:     "Basic sometoken",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "token parse error",
			authHeader:     "Bearer badtoken",
			mockClaims:     nil,
			mockErr:        assert.AnError,
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "valid token",
			authHeader:     "Bearer goodtoken",
			mockClaims:     &jwtlib.CustomClaims{Email: "user@example.com"},
			mockErr:        nil,
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			maker := new(MakerMock)
			if tc.mockClaims != nil || tc.mockErr != nil {
				maker.On("ParseToken", mock.Anything).Return(tc.mockClaims, tc.mockErr)
			}

			handlerCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				email, ok := middlewarectx.EmailFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, "user@example.com", email)
				w.WriteHeader(http.StatusOK)
			})

			mw := middlewarectx.JWTMiddleware(maker, newNoopLogger())(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rr := httptest.NewRecorder()

			mw.ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatusCode, rr.Code)
			assert.Equal(t, tc.wantCalled, handlerCalled)
		})
	}
}
