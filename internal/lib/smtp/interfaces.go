// Package smtp оборачивает net/smtp в интерфейсы, чтобы отправку писем
// о результатах модерации можно было тестировать без реального сервера.
package smtp

import "io"

// Client — минимальный контракт SMTP-сессии, который использует отправитель
// уведомлений: конверт, тело, завершение.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface устанавливает SMTP-соединение и сообщает адрес
// отправителя для поля From.
type TransportInterface interface {
	Connect() (Client, error)
	GetSMTPUser() string
}
