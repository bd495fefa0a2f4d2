package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/newsfusion/newsfusion-backend/internal/models"
)

// InsertUser сохраняет нового пользователя, если email ещё не занят.
//
// Вставка выполняется одним условным запросом (ON CONFLICT DO NOTHING),
// поэтому гонка проверки-и-записи при конкурентной регистрации закрыта
// на уровне хранилища. Возвращает nil без ошибки, если email уже занят.
func (s *Storage) InsertUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.InsertUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (email, username, photo_url, role, premium_taken, registered_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (email) DO NOTHING
			  RETURNING uid, email, username, photo_url, role, premium_taken, registered_at;`
	row := s.DB.QueryRowContext(ctx, query,
		user.Email, user.Username, user.PhotoURL, user.Role, user.PremiumTaken, user.RegisteredAt)

	inserted, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			// конфликт по email: запись не вставлена
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return inserted, nil
}

// FindUserByEmail возвращает пользователя по email.
func (s *Storage) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.FindUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, username, photo_url, role, premium_taken, registered_at
			  FROM users
			  WHERE email = $1`
	row := s.DB.QueryRowContext(ctx, query, email)

	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// ListUsers возвращает список пользователей с пагинацией.
func (s *Storage) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, username, photo_url, role, premium_taken, registered_at
			  FROM users
			  ORDER BY registered_at
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateUserRole меняет роль пользователя и возвращает количество изменённых строк.
func (s *Storage) UpdateUserRole(ctx context.Context, email, role string) (int, error) {
	const op = "storage.UpdateUserRole"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET role = $1
			  WHERE email = $2`
	result, err := s.DB.ExecContext(ctx, query, role, email)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// UpdatePremiumTaken выставляет момент истечения премиума пользователя.
func (s *Storage) UpdatePremiumTaken(ctx context.Context, email string, premiumTaken time.Time) (int, error) {
	const op = "storage.UpdatePremiumTaken"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET premium_taken = $1
			  WHERE email = $2`
	result, err := s.DB.ExecContext(ctx, query, premiumTaken, email)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ClearPremiumTaken обнуляет отметку премиума, применяя ленивую коррекцию истечения.
func (s *Storage) ClearPremiumTaken(ctx context.Context, email string) error {
	const op = "storage.ClearPremiumTaken"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET premium_taken = NULL
			  WHERE email = $1`
	if _, err := s.DB.ExecContext(ctx, query, email); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// rowScanner покрывает *sql.Row и *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	var premiumTaken sql.NullTime
	if err := row.Scan(&u.UID, &u.Email, &u.Username, &u.PhotoURL,
		&u.Role, &premiumTaken, &u.RegisteredAt); err != nil {
		return nil, err
	}
	if premiumTaken.Valid {
		u.PremiumTaken = &premiumTaken.Time
	}
	return u, nil
}
