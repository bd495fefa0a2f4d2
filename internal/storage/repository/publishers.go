package repository

import (
	"context"
	"fmt"

	"github.com/newsfusion/newsfusion-backend/internal/models"
)

// CreatePublisher вставляет нового издателя и возвращает его ID.
func (s *Storage) CreatePublisher(ctx context.Context, publisher models.Publisher) (int, error) {
	const op = "storage.CreatePublisher"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO publishers (name, logo_url, added_date)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		publisher.Name, publisher.LogoURL, publisher.AddedDate).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListPublishers возвращает список всех издателей.
func (s *Storage) ListPublishers(ctx context.Context) ([]*models.Publisher, error) {
	const op = "storage.ListPublishers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, logo_url, added_date
			  FROM publishers
			  ORDER BY name`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Publisher
	for rows.Next() {
		var p models.Publisher
		if err = rows.Scan(&p.ID, &p.Name, &p.LogoURL, &p.AddedDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
