// Package sender содержит сервис рассылки писем авторам о результатах
// модерации их статей.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/newsfusion/newsfusion-backend/internal/lib/sl"
	"github.com/newsfusion/newsfusion-backend/internal/lib/smtp"
	"github.com/newsfusion/newsfusion-backend/internal/models"
)

// Service отправляет уведомления о модерации по электронной почте.
type Service struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(transport smtp.TransportInterface, log *slog.Logger) *Service {
	return &Service{
		transport: transport,
		log:       log,
	}
}

// SendModerationResult разбирает событие модерации из очереди и отправляет
// автору письмо о судьбе его статьи.
func (s *Service) SendModerationResult(body []byte) error {
	var event models.ModerationEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Error("failed to unmarshal moderation event", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{event.AuthorEmail}
	var subject, bodyText string
	switch event.Status {
	case models.StatusApproved:
		subject = "Ваша статья опубликована"
		bodyText = fmt.Sprintf("Здравствуйте, %s!\n\nВаша статья «%s» прошла модерацию и опубликована.",
			event.AuthorName, event.Title)
	case models.StatusDeclined:
		reason := "причина не указана"
		if event.Reason != nil {
			reason = *event.Reason
		}
		subject = "Ваша статья отклонена"
		bodyText = fmt.Sprintf("Здравствуйте, %s!\n\nВаша статья «%s» отклонена модератором.\n\nПричина: %s.",
			event.AuthorName, event.Title, reason)
	default:
		s.log.Warn("unknown moderation status, skipping", slog.String("status", event.Status))
		return nil
	}

	return s.sendEmail(to, subject, bodyText)
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), "error", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", "recipient", addr, "error", sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}
