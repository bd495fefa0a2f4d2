// Package sender собирает приложение рассылки уведомлений о модерации.
package sender

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/newsfusion/newsfusion-backend/internal/config"
	"github.com/newsfusion/newsfusion-backend/internal/lib/rabbitmq"
	"github.com/newsfusion/newsfusion-backend/internal/lib/smtp"
	senderservice "github.com/newsfusion/newsfusion-backend/internal/services/sender"
)

const (
	rabbitMQMaxRetries = 5
	rabbitMQRetryDelay = 3 * time.Second
)

// App инкапсулирует соединение с брокером и сервис рассылки.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.Service
	logger        *slog.Logger
}

// New устанавливает соединение с RabbitMQ и собирает сервис рассылки.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQConnection, rabbitMQMaxRetries, rabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	queues := rabbitmq.GetNotificationQueues()
	ch, err := rabbitmq.SetupChannel(conn, queues)
	if err != nil {
		conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg, logger)
	senderService := senderservice.New(transport, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run запускает потребителя очереди модерации до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, "notification.moderation", a.senderService.SendModerationResult)
	if err != nil {
		a.logger.Error("failed to start notification.moderation consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
