// Package user содержит бизнес-логику учётных записей: идемпотентную
// регистрацию с ленивой коррекцией истёкшего премиума, оформление
// премиум-подписки и проверку ролей.
package user

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/newsfusion/newsfusion-backend/internal/lib/premium"
	"github.com/newsfusion/newsfusion-backend/internal/lib/sl"
	"github.com/newsfusion/newsfusion-backend/internal/models"
)

// ErrUserNotFound возвращается, когда пользователь с указанным email не существует.
var ErrUserNotFound = errors.New("user not found")

// Repository описывает контракт для работы с пользователями в базе данных.
type Repository interface {
	// InsertUser сохраняет нового пользователя. Возвращает nil без ошибки,
	// если email уже занят.
	InsertUser(ctx context.Context, user models.User) (*models.User, error)
	// FindUserByEmail возвращает пользователя по email или ошибку, если не найден.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	// ListUsers возвращает список пользователей с пагинацией.
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
	// UpdateUserRole меняет роль пользователя.
	UpdateUserRole(ctx context.Context, email, role string) (int, error)
	// UpdatePremiumTaken выставляет момент истечения премиума.
	UpdatePremiumTaken(ctx context.Context, email string, premiumTaken time.Time) (int, error)
	// ClearPremiumTaken обнуляет отметку премиума.
	ClearPremiumTaken(ctx context.Context, email string) error
}

// Service реализует операции над учётными записями.
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

// RegisterOrGet выполняет идемпотентную регистрацию по email.
//
// Новый email — вставка записи с ролью regular. Занятый email — не ошибка:
// возвращается существующая запись с Inserted == false, а перед этим к ней
// применяется ленивая коррекция истёкшего премиума. Это единственный путь,
// на котором коррекция записывается в хранилище.
func (s *Service) RegisterOrGet(ctx context.Context, req models.DummyUser) (*models.RegisterResult, error) {
	user := models.User{
		Email:        req.Email,
		Username:     req.Username,
		PhotoURL:     req.PhotoURL,
		Role:         models.RoleRegular,
		RegisteredAt: time.Now().UTC(),
	}

	inserted, err := s.repo.InsertUser(ctx, user)
	if err != nil {
		return nil, err
	}
	if inserted != nil {
		s.log.Info("registered new user", slog.String("email", inserted.Email))
		return &models.RegisterResult{Inserted: true, User: inserted}, nil
	}

	existing, err := s.repo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	corrected, needsPersist := premium.CheckAndCorrectExpiry(existing, time.Now().UTC())
	if needsPersist {
		if err := s.repo.ClearPremiumTaken(ctx, req.Email); err != nil {
			return nil, err
		}
		s.log.Info("cleared expired premium", slog.String("email", req.Email))
	}

	return &models.RegisterResult{Inserted: false, User: corrected}, nil
}

// Subscribe оформляет премиум-подписку и возвращает момент её истечения.
//
// Повторная подписка перезаписывает отметку новой, отсчитанной от текущего
// момента: остаток прежнего премиума не суммируется. Неизвестный селектор
// даёт нулевую длительность.
func (s *Service) Subscribe(ctx context.Context, email, selector string) (time.Time, error) {
	expiry := time.Now().UTC().Add(premium.Duration(selector))

	count, err := s.repo.UpdatePremiumTaken(ctx, email, expiry)
	if err != nil {
		return time.Time{}, err
	}
	if count == 0 {
		return time.Time{}, ErrUserNotFound
	}

	s.log.Info("premium subscription taken",
		slog.String("email", email),
		slog.String("selector", selector),
		slog.Time("expiry", expiry))
	return expiry, nil
}

// GetByEmail возвращает пользователя по email.
func (s *Service) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// IsAdmin сообщает, является ли пользователь администратором.
func (s *Service) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return user.Role == models.RoleAdmin, nil
}

// PremiumStatus возвращает действующий премиум-статус пользователя.
//
// Статус выводится из отметки времени: истёкшая, но ещё не скорректированная
// в хранилище отметка даёт false. Сама коррекция здесь не выполняется.
func (s *Service) PremiumStatus(ctx context.Context, email string) (bool, *time.Time, error) {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		return false, nil, err
	}
	return premium.IsEffective(user, time.Now().UTC()), user.PremiumTaken, nil
}

// MakeAdmin назначает пользователя администратором.
func (s *Service) MakeAdmin(ctx context.Context, email string) error {
	count, err := s.repo.UpdateUserRole(ctx, email, models.RoleAdmin)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrUserNotFound
	}
	s.log.Info("user promoted to admin", slog.String("email", email))
	return nil
}

// List возвращает список пользователей с пагинацией.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	users, err := s.repo.ListUsers(ctx, limit, offset)
	if err != nil {
		s.log.Error("failed to list users", sl.Err(err))
		return nil, err
	}
	return users, nil
}
