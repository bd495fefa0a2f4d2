package models

import "time"

// Payment — запись о завершённой оплате. Хранилище платежей только
// пополняется, обновление и удаление записей не предусмотрено.
type Payment struct {
	ID          int       `json:"id"`
	Email       string    `json:"email"`        // Email плательщика
	AmountCents int       `json:"amount_cents"` // Сумма в минимальных единицах валюты
	Currency    string    `json:"currency"`     // Код валюты, например usd
	IntentID    string    `json:"intent_id"`    // Идентификатор платежа у провайдера
	PaidAt      time.Time `json:"paid_at"`      // Момент оплаты
}

// DummyPayment используется для приёма данных о платеже из JSON-запроса.
type DummyPayment struct {
	Email       string `json:"email" validate:"required,email"`
	AmountCents int    `json:"amount_cents" validate:"required,gt=0"`
	Currency    string `json:"currency" validate:"required"`
	IntentID    string `json:"intent_id" validate:"required"`
}
