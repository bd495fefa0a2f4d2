package paymentprovider

// CreateIntentRequest — параметры создания платёжного намерения.
type CreateIntentRequest struct {
	AmountCents int    // Сумма в минимальных единицах валюты
	Currency    string // Код валюты, например usd
}

// CreateIntentResponse — ответ провайдера на создание платёжного намерения.
// ClientSecret передаётся клиенту для подтверждения платежа.
type CreateIntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}
