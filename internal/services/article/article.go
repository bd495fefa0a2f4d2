// Package article содержит бизнес-логику публикаций: лимит на одну статью
// для автора без премиума, премиум-доступ к чтению, модерацию и
// кешируемую выдачу популярных статей.
package article

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/newsfusion/newsfusion-backend/internal/lib/premium"
	"github.com/newsfusion/newsfusion-backend/internal/lib/rabbitmq"
	"github.com/newsfusion/newsfusion-backend/internal/lib/sl"
	"github.com/newsfusion/newsfusion-backend/internal/models"
)

var (
	// ErrAuthorNotFound возвращается, когда автор статьи не зарегистрирован.
	ErrAuthorNotFound = errors.New("author not found")
	// ErrAuthorLimitReached возвращается, когда автор без премиума уже имеет статью.
	ErrAuthorLimitReached = errors.New("author already has an article")
	// ErrArticleNotFound возвращается, когда статья с указанным id не существует.
	ErrArticleNotFound = errors.New("article not found")
	// ErrNotAuthor возвращается при попытке изменить чужую статью.
	ErrNotAuthor = errors.New("article belongs to another author")
	// ErrPremiumRequired возвращается при доступе к премиум-контенту без премиума.
	ErrPremiumRequired = errors.New("premium subscription required")
)

const (
	trendingCacheKey = "articles:trending"
	trendingCacheTTL = 5 * time.Minute
	trendingLimit    = 10
)

// Repository описывает контракт для работы со статьями в базе данных.
type Repository interface {
	CreateArticle(ctx context.Context, article models.Article) (int, error)
	// CreateArticleIfNone вставляет статью, только если у автора ещё нет ни одной.
	CreateArticleIfNone(ctx context.Context, article models.Article) (int, bool, error)
	ReadArticle(ctx context.Context, id int) (*models.Article, error)
	IncrementViewCount(ctx context.Context, id int) error
	ListApprovedArticles(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error)
	ListAllArticles(ctx context.Context, limit, offset int) ([]*models.Article, error)
	ListArticlesByAuthor(ctx context.Context, email string) ([]*models.Article, error)
	ListPremiumArticles(ctx context.Context, limit, offset int) ([]*models.Article, error)
	ListTrendingArticles(ctx context.Context, limit int) ([]*models.Article, error)
	UpdateArticleStatus(ctx context.Context, id int, status string, reason *string) (int, error)
	SetArticlePremium(ctx context.Context, id int) (int, error)
	UpdateArticle(ctx context.Context, id int, authorEmail string, req models.DummyArticle) (int, error)
	RemoveArticle(ctx context.Context, id int) (int, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Cache описывает контракт кеша для списков статей.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует операции над статьями.
type Service struct {
	repo    Repository
	cache   Cache
	channel *amqp.Channel
	log     *slog.Logger
}

// New создает новый экземпляр Service. channel может быть nil — тогда
// уведомления о модерации не публикуются.
func New(repo Repository, cache Cache, channel *amqp.Channel, log *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		cache:   cache,
		channel: channel,
		log:     log,
	}
}

// Create создает статью от имени автора.
//
// Автор с действующим премиумом публикует без ограничений. Автор без
// премиума ограничен одной статьёй: проверка и вставка выполняются одним
// условным запросом, поэтому параллельные запросы не обходят лимит.
func (s *Service) Create(ctx context.Context, authorEmail string, req models.DummyArticle) (int, error) {
	author, err := s.repo.FindUserByEmail(ctx, authorEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrAuthorNotFound
		}
		return 0, err
	}

	article := models.Article{
		Title:         req.Title,
		ImageURL:      req.ImageURL,
		Description:   req.Description,
		PublisherName: req.PublisherName,
		Tags:          req.Tags,
		Status:        models.StatusPending,
		AuthorEmail:   author.Email,
		AuthorName:    author.Username,
		AuthorPhoto:   author.PhotoURL,
		PostedDate:    time.Now().UTC(),
	}

	if premium.IsEffective(author, time.Now().UTC()) {
		id, err := s.repo.CreateArticle(ctx, article)
		if err != nil {
			return 0, err
		}
		s.log.Info("article created", slog.Int("id", id), slog.String("author", authorEmail))
		return id, nil
	}

	id, inserted, err := s.repo.CreateArticleIfNone(ctx, article)
	if err != nil {
		return 0, err
	}
	if !inserted {
		return 0, ErrAuthorLimitReached
	}
	s.log.Info("article created", slog.Int("id", id), slog.String("author", authorEmail))
	return id, nil
}

// Read возвращает статью по id и увеличивает счётчик просмотров.
//
// Неодобренная статья видна только автору и администратору, для остальных
// она неотличима от несуществующей. Премиум-статья доступна только читателю
// с действующим премиумом; автор читает собственную статью без подписки.
// Ошибка инкремента счётчика логируется, но не прерывает чтение.
func (s *Service) Read(ctx context.Context, id int, readerEmail string) (*models.Article, error) {
	article, err := s.repo.ReadArticle(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}

	if article.Status != models.StatusApproved && article.AuthorEmail != readerEmail {
		reader, err := s.repo.FindUserByEmail(ctx, readerEmail)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrArticleNotFound
			}
			return nil, err
		}
		if reader.Role != models.RoleAdmin {
			return nil, ErrArticleNotFound
		}
	}

	if article.IsPremium && article.AuthorEmail != readerEmail {
		reader, err := s.repo.FindUserByEmail(ctx, readerEmail)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrPremiumRequired
			}
			return nil, err
		}
		if !premium.IsEffective(reader, time.Now().UTC()) {
			return nil, ErrPremiumRequired
		}
	}

	if err := s.repo.IncrementViewCount(ctx, id); err != nil {
		s.log.Error("failed to increment view count", slog.Int("id", id), sl.Err(err))
	} else {
		article.ViewCount++
	}

	return article, nil
}

// List возвращает одобренные статьи с фильтрацией и пагинацией.
func (s *Service) List(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error) {
	return s.repo.ListApprovedArticles(ctx, filter)
}

// ListAll возвращает все статьи независимо от статуса. Только для администраторов.
func (s *Service) ListAll(ctx context.Context, limit, offset int) ([]*models.Article, error) {
	return s.repo.ListAllArticles(ctx, limit, offset)
}

// ListByAuthor возвращает статьи автора во всех статусах.
func (s *Service) ListByAuthor(ctx context.Context, email string) ([]*models.Article, error) {
	return s.repo.ListArticlesByAuthor(ctx, email)
}

// ListPremium возвращает одобренные премиум-статьи. Читатель должен иметь
// действующий премиум.
func (s *Service) ListPremium(ctx context.Context, readerEmail string, limit, offset int) ([]*models.Article, error) {
	reader, err := s.repo.FindUserByEmail(ctx, readerEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPremiumRequired
		}
		return nil, err
	}
	if !premium.IsEffective(reader, time.Now().UTC()) {
		return nil, ErrPremiumRequired
	}
	return s.repo.ListPremiumArticles(ctx, limit, offset)
}

// Trending возвращает самые просматриваемые одобренные статьи. Результат
// кешируется в Redis; промах кеша не прерывает выдачу.
func (s *Service) Trending(ctx context.Context) ([]*models.Article, error) {
	var cached []*models.Article
	if s.cache != nil {
		found, err := s.cache.Get(trendingCacheKey, &cached)
		if err != nil {
			s.log.Error("failed to read trending cache", sl.Err(err))
		}
		if found {
			return cached, nil
		}
	}

	articles, err := s.repo.ListTrendingArticles(ctx, trendingLimit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(trendingCacheKey, articles, trendingCacheTTL); err != nil {
			s.log.Error("failed to write trending cache", sl.Err(err))
		}
	}

	return articles, nil
}

// Approve переводит статью в статус approved и уведомляет автора.
func (s *Service) Approve(ctx context.Context, id int) error {
	return s.moderate(ctx, id, models.StatusApproved, nil)
}

// Decline переводит статью в статус declined с указанием причины.
func (s *Service) Decline(ctx context.Context, id int, reason string) error {
	return s.moderate(ctx, id, models.StatusDeclined, &reason)
}

func (s *Service) moderate(ctx context.Context, id int, status string, reason *string) error {
	article, err := s.repo.ReadArticle(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrArticleNotFound
		}
		return err
	}

	count, err := s.repo.UpdateArticleStatus(ctx, id, status, reason)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrArticleNotFound
	}

	s.log.Info("article moderated", slog.Int("id", id), slog.String("status", status))
	s.invalidateTrending()
	s.publishModerationEvent(article, status, reason)
	return nil
}

// MakePremium помечает одобренную статью как премиум-контент.
func (s *Service) MakePremium(ctx context.Context, id int) error {
	count, err := s.repo.SetArticlePremium(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrArticleNotFound
	}
	s.log.Info("article marked premium", slog.Int("id", id))
	return nil
}

// Update обновляет содержимое статьи и возвращает её в статус pending.
// Редактировать статью может только её автор.
func (s *Service) Update(ctx context.Context, id int, authorEmail string, req models.DummyArticle) error {
	count, err := s.repo.UpdateArticle(ctx, id, authorEmail, req)
	if err != nil {
		return err
	}
	if count == 0 {
		// различаем отсутствие статьи и чужую статью
		if _, err := s.repo.ReadArticle(ctx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrArticleNotFound
			}
			return err
		}
		return ErrNotAuthor
	}
	s.log.Info("article updated", slog.Int("id", id))
	return nil
}

// Remove удаляет статью. Удалять может автор или администратор; право
// вызова проверяется на уровне обработчика.
func (s *Service) Remove(ctx context.Context, id int, requesterEmail string, isAdmin bool) error {
	if !isAdmin {
		article, err := s.repo.ReadArticle(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrArticleNotFound
			}
			return err
		}
		if article.AuthorEmail != requesterEmail {
			return ErrNotAuthor
		}
	}

	count, err := s.repo.RemoveArticle(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrArticleNotFound
	}
	s.log.Info("article removed", slog.Int("id", id))
	s.invalidateTrending()
	return nil
}

func (s *Service) invalidateTrending() {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(trendingCacheKey); err != nil {
		s.log.Error("failed to invalidate trending cache", sl.Err(err))
	}
}

func (s *Service) publishModerationEvent(article *models.Article, status string, reason *string) {
	if s.channel == nil {
		return
	}
	event := models.ModerationEvent{
		ArticleID:   article.ID,
		Title:       article.Title,
		AuthorEmail: article.AuthorEmail,
		AuthorName:  article.AuthorName,
		Status:      status,
		Reason:      reason,
	}
	if err := rabbitmq.PublishMessage(s.channel, "notifications", "moderation", event); err != nil {
		s.log.Error("failed to publish moderation event", sl.Err(err))
	}
}
