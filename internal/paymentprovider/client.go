// Package paymentprovider содержит HTTP-клиент платёжного провайдера.
// Для платформы провайдер непрозрачен: создать платёжное намерение
// на сумму в валюте и получить client secret для подтверждения на клиенте.
package paymentprovider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Client struct {
	secretKey  string
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент платёжного провайдера.
func NewClient(secretKey, apiURL string) *Client {
	return &Client{
		secretKey:  secretKey,
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// CreatePaymentIntent создаёт платёжное намерение и возвращает ответ провайдера
// с client secret. Запрос снабжается ключом идемпотентности, поэтому сетевой
// повтор не создаст второй платёж.
func (c *Client) CreatePaymentIntent(ctx context.Context, reqParams CreateIntentRequest) (*CreateIntentResponse, error) {
	form := url.Values{}
	form.Set("amount", strconv.Itoa(reqParams.AmountCents))
	form.Set("currency", reqParams.Currency)
	form.Set("payment_method_types[]", "card")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiURL+"/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Idempotency-Key", uuid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, errors.New("unexpected status: " + resp.Status)
	}

	var intentResp CreateIntentResponse
	if err := json.NewDecoder(resp.Body).Decode(&intentResp); err != nil {
		return nil, err
	}
	return &intentResp, nil
}
