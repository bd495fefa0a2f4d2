// Package payment содержит бизнес-логику платежей: создание платёжных
// намерений у провайдера, фиксацию оплат и историю платежей пользователя.
package payment

import (
	"context"
	"log/slog"
	"time"

	"github.com/newsfusion/newsfusion-backend/internal/models"
	"github.com/newsfusion/newsfusion-backend/internal/paymentprovider"
)

// Repository описывает контракт для работы с платежами в базе данных.
type Repository interface {
	InsertPayment(ctx context.Context, payment models.Payment) (int, error)
	ListPaymentsByEmail(ctx context.Context, email string) ([]*models.Payment, error)
}

// Provider описывает контракт платёжного провайдера.
type Provider interface {
	CreatePaymentIntent(ctx context.Context, reqParams paymentprovider.CreateIntentRequest) (*paymentprovider.CreateIntentResponse, error)
}

// Service реализует операции над платежами.
type Service struct {
	repo     Repository
	provider Provider
	currency string
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, provider Provider, currency string, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		provider: provider,
		currency: currency,
		log:      log,
	}
}

// CreateIntent создает платёжное намерение у провайдера и возвращает
// client secret для подтверждения платежа на клиенте.
func (s *Service) CreateIntent(ctx context.Context, amountCents int) (*paymentprovider.CreateIntentResponse, error) {
	resp, err := s.provider.CreatePaymentIntent(ctx, paymentprovider.CreateIntentRequest{
		AmountCents: amountCents,
		Currency:    s.currency,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("payment intent created",
		slog.String("intent_id", resp.ID),
		slog.Int("amount_cents", amountCents))
	return resp, nil
}

// Record фиксирует подтверждённый платёж пользователя.
func (s *Service) Record(ctx context.Context, email string, req models.DummyPayment) (int, error) {
	payment := models.Payment{
		Email:       email,
		AmountCents: req.AmountCents,
		Currency:    s.currency,
		IntentID:    req.IntentID,
		PaidAt:      time.Now().UTC(),
	}

	id, err := s.repo.InsertPayment(ctx, payment)
	if err != nil {
		return 0, err
	}

	s.log.Info("payment recorded", slog.Int("id", id), slog.String("email", email))
	return id, nil
}

// History возвращает платежи пользователя, новые первыми.
func (s *Service) History(ctx context.Context, email string) ([]*models.Payment, error) {
	return s.repo.ListPaymentsByEmail(ctx, email)
}
