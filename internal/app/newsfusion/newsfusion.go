package newsfusion

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/newsfusion/newsfusion-backend/internal/cache"
	"github.com/newsfusion/newsfusion-backend/internal/config"
	jwtlib "github.com/newsfusion/newsfusion-backend/internal/lib/jwt"
	"github.com/newsfusion/newsfusion-backend/internal/lib/rabbitmq"
	"github.com/newsfusion/newsfusion-backend/internal/lib/sl"
	"github.com/newsfusion/newsfusion-backend/internal/migrations"
	"github.com/newsfusion/newsfusion-backend/internal/paymentprovider"
	articleservice "github.com/newsfusion/newsfusion-backend/internal/services/article"
	paymentservice "github.com/newsfusion/newsfusion-backend/internal/services/payment"
	publisherservice "github.com/newsfusion/newsfusion-backend/internal/services/publisher"
	userservice "github.com/newsfusion/newsfusion-backend/internal/services/user"
	"github.com/newsfusion/newsfusion-backend/internal/storage/repository"
)

const (
	rabbitMQMaxRetries = 5
	rabbitMQRetryDelay = 3 * time.Second
)

// App собирает HTTP-сервер платформы и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New инициализирует хранилище, кеш, брокер и собирает маршруты.
//
// Недоступный RabbitMQ не мешает старту: уведомления о модерации
// отключаются, остальная функциональность работает.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	var conn *amqp.Connection
	var ch *amqp.Channel
	conn, err = rabbitmq.Connect(cfg.RabbitMQConnection, rabbitMQMaxRetries, rabbitMQRetryDelay)
	if err != nil {
		logger.Error("rabbitmq unavailable, moderation notifications disabled", sl.Err(err))
	} else {
		ch, err = rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
		if err != nil {
			conn.Close()
			return nil, err
		}
	}

	maker := jwtlib.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	providerClient := paymentprovider.NewClient(cfg.PaymentProvider.SecretKey, cfg.APIURL)

	users := userservice.New(db, logger)
	articles := articleservice.New(db, cacheRedis, ch, logger)
	publishers := publisherservice.New(db, logger)
	payments := paymentservice.New(db, providerClient, cfg.Currency, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, db, maker, users, articles, publishers, payments)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.ch != nil {
			if closeErr := a.ch.Close(); closeErr != nil {
				a.logger.Error("failed to close channel", sl.Err(closeErr))
			}
		}
		if a.conn != nil {
			if closeErr := a.conn.Close(); closeErr != nil {
				a.logger.Error("failed to close connection", sl.Err(closeErr))
			}
		}
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", sl.Err(closeErr))
		}
		return err
	}
}
