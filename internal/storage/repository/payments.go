package repository

import (
	"context"
	"fmt"

	"github.com/newsfusion/newsfusion-backend/internal/models"
)

// InsertPayment сохраняет запись о завершённой оплате и возвращает её ID.
// Записи платежей не обновляются и не удаляются.
func (s *Storage) InsertPayment(ctx context.Context, payment models.Payment) (int, error) {
	const op = "storage.InsertPayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (email, amount_cents, currency, intent_id, paid_at)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		payment.Email, payment.AmountCents, payment.Currency, payment.IntentID,
		payment.PaidAt).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListPaymentsByEmail возвращает историю платежей пользователя.
func (s *Storage) ListPaymentsByEmail(ctx context.Context, email string) ([]*models.Payment, error) {
	const op = "storage.ListPaymentsByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, amount_cents, currency, intent_id, paid_at
			  FROM payments
			  WHERE email = $1
			  ORDER BY paid_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		var p models.Payment
		if err = rows.Scan(&p.ID, &p.Email, &p.AmountCents, &p.Currency, &p.IntentID, &p.PaidAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
