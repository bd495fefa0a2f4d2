package payment

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/newsfusion/newsfusion-backend/internal/models"
	"github.com/newsfusion/newsfusion-backend/internal/paymentprovider"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) InsertPayment(ctx context.Context, payment models.Payment) (int, error) {
	args := m.Called(ctx, payment)
	return args.Int(0), args.Error(1)
}

func (m *mockRepository) ListPaymentsByEmail(ctx context.Context, email string) ([]*models.Payment, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) CreatePaymentIntent(ctx context.Context, reqParams paymentprovider.CreateIntentRequest) (*paymentprovider.CreateIntentResponse, error) {
	args := m.Called(ctx, reqParams)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentprovider.CreateIntentResponse), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateIntent(t *testing.T) {
	repo := new(mockRepository)
	provider := new(mockProvider)
	svc := New(repo, provider, "usd", discardLogger())

	provider.On("CreatePaymentIntent", mock.Anything, paymentprovider.CreateIntentRequest{
		AmountCents: 499,
		Currency:    "usd",
	}).Return(&paymentprovider.CreateIntentResponse{
		ID:           "pi_123",
		ClientSecret: "pi_123_secret",
		Status:       "requires_payment_method",
	}, nil)

	resp, err := svc.CreateIntent(context.Background(), 499)

	require.NoError(t, err)
	assert.Equal(t, "pi_123", resp.ID)
	assert.Equal(t, "pi_123_secret", resp.ClientSecret)
}

func TestCreateIntent_ProviderError(t *testing.T) {
	repo := new(mockRepository)
	provider := new(mockProvider)
	svc := New(repo, provider, "usd", discardLogger())

	provider.On("CreatePaymentIntent", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	_, err := svc.CreateIntent(context.Background(), 499)

	assert.Error(t, err)
}

func TestRecord(t *testing.T) {
	repo := new(mockRepository)
	provider := new(mockProvider)
	svc := New(repo, provider, "usd", discardLogger())

	repo.On("InsertPayment", mock.Anything, mock.MatchedBy(func(p models.Payment) bool {
		return p.Email == "payer@example.com" && p.AmountCents == 499 &&
			p.Currency == "usd" && p.IntentID == "pi_123" && !p.PaidAt.IsZero()
	})).Return(11, nil)

	id, err := svc.Record(context.Background(), "payer@example.com", models.DummyPayment{
		AmountCents: 499,
		IntentID:    "pi_123",
	})

	require.NoError(t, err)
	assert.Equal(t, 11, id)
}

func TestHistory(t *testing.T) {
	repo := new(mockRepository)
	provider := new(mockProvider)
	svc := New(repo, provider, "usd", discardLogger())

	payments := []*models.Payment{{ID: 2, Email: "payer@example.com"}, {ID: 1, Email: "payer@example.com"}}
	repo.On("ListPaymentsByEmail", mock.Anything, "payer@example.com").Return(payments, nil)

	got, err := svc.History(context.Background(), "payer@example.com")

	require.NoError(t, err)
	assert.Len(t, got, 2)
}
