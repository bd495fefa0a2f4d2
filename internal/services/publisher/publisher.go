// Package publisher содержит бизнес-логику справочника издателей.
package publisher

import (
	"context"
	"log/slog"
	"time"

	"github.com/newsfusion/newsfusion-backend/internal/models"
)

// Repository описывает контракт для работы с издателями в базе данных.
type Repository interface {
	CreatePublisher(ctx context.Context, publisher models.Publisher) (int, error)
	ListPublishers(ctx context.Context) ([]*models.Publisher, error)
}

// Service реализует операции над издателями.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Create добавляет нового издателя.
func (s *Service) Create(ctx context.Context, req models.DummyPublisher) (int, error) {
	publisher := models.Publisher{
		Name:      req.Name,
		LogoURL:   req.LogoURL,
		AddedDate: time.Now().UTC(),
	}

	id, err := s.repo.CreatePublisher(ctx, publisher)
	if err != nil {
		return 0, err
	}

	s.log.Info("publisher created", slog.Int("id", id), slog.String("name", req.Name))
	return id, nil
}

// List возвращает всех издателей.
func (s *Service) List(ctx context.Context) ([]*models.Publisher, error) {
	return s.repo.ListPublishers(ctx)
}
