package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/newsfusion/newsfusion-backend/internal/models"
)

const articleColumns = `id, title, image_url, description, publisher_name, tags,
			      status, decline_reason, is_premium, view_count,
			      author_email, author_name, author_photo, posted_date`

// CreateArticle вставляет новую статью без ограничения на количество
// и возвращает её ID. Используется для премиум-авторов.
func (s *Storage) CreateArticle(ctx context.Context, article models.Article) (int, error) {
	const op = "storage.CreateArticle"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tags, err := json.Marshal(article.Tags)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO articles (title, image_url, description, publisher_name, tags,
			      status, is_premium, author_email, author_name, author_photo, posted_date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			  RETURNING id`
	var newID int
	err = s.DB.QueryRowContext(ctx, query,
		article.Title, article.ImageURL, article.Description, article.PublisherName, tags,
		article.Status, article.IsPremium, article.AuthorEmail, article.AuthorName,
		article.AuthorPhoto, article.PostedDate).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// CreateArticleIfNone вставляет статью только если у автора ещё нет ни одной.
//
// Конкурентные отправки одного автора сериализуются advisory-блокировкой по
// email внутри транзакции: вторая отправка ждёт коммита первой и видит её
// строку в условии NOT EXISTS. Возвращает (0, false, nil), если лимит уже
// исчерпан.
func (s *Storage) CreateArticleIfNone(ctx context.Context, article models.Article) (int, bool, error) {
	const op = "storage.CreateArticleIfNone"
	select {
	case <-ctx.Done():
		return 0, false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tags, err := json.Marshal(article.Tags)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", op, err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1))`, article.AuthorEmail); err != nil {
		return 0, false, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO articles (title, image_url, description, publisher_name, tags,
			      status, is_premium, author_email, author_name, author_photo, posted_date)
			  SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
			  WHERE NOT EXISTS (SELECT 1 FROM articles WHERE author_email = $8)
			  RETURNING id`
	var newID int
	err = tx.QueryRowContext(ctx, query,
		article.Title, article.ImageURL, article.Description, article.PublisherName, tags,
		article.Status, article.IsPremium, article.AuthorEmail, article.AuthorName,
		article.AuthorPhoto, article.PostedDate).Scan(&newID)
	if err == sql.ErrNoRows {
		if err := tx.Commit(); err != nil {
			return 0, false, fmt.Errorf("%s: %w", op, err)
		}
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", op, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("%s: %w", op, err)
	}
	return newID, true, nil
}

// ReadArticle возвращает статью по её ID.
func (s *Storage) ReadArticle(ctx context.Context, id int) (*models.Article, error) {
	const op = "storage.ReadArticle"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + articleColumns + `
			  FROM articles WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	result, err := scanArticle(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// IncrementViewCount увеличивает счётчик просмотров статьи.
func (s *Storage) IncrementViewCount(ctx context.Context, id int) error {
	const op = "storage.IncrementViewCount"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE articles
			  SET view_count = view_count + 1
			  WHERE id = $1`
	if _, err := s.DB.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListApprovedArticles возвращает одобренные статьи с поиском по заголовку,
// фильтром по издателю и тегу и пагинацией.
func (s *Storage) ListApprovedArticles(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error) {
	const op = "storage.ListApprovedArticles"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + articleColumns + `
			  FROM articles
			  WHERE status = 'approved'
			    AND ($1 = '' OR title ~* $1)
			    AND ($2 = '' OR publisher_name = $2)
			    AND ($3 = '' OR tags ? $3)
			  ORDER BY posted_date DESC
			  LIMIT $4 OFFSET $5`
	rows, err := s.DB.QueryContext(ctx, query,
		filter.Search, filter.Publisher, filter.Tag, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return collectArticles(op, rows)
}

// ListAllArticles возвращает статьи всех статусов с пагинацией. Для админки.
func (s *Storage) ListAllArticles(ctx context.Context, limit, offset int) ([]*models.Article, error) {
	const op = "storage.ListAllArticles"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + articleColumns + `
			  FROM articles
			  ORDER BY posted_date DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return collectArticles(op, rows)
}

// ListArticlesByAuthor возвращает все статьи автора.
func (s *Storage) ListArticlesByAuthor(ctx context.Context, email string) ([]*models.Article, error) {
	const op = "storage.ListArticlesByAuthor"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + articleColumns + `
			  FROM articles
			  WHERE author_email = $1
			  ORDER BY posted_date DESC`
	rows, err := s.DB.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return collectArticles(op, rows)
}

// ListPremiumArticles возвращает одобренные премиум-статьи с пагинацией.
func (s *Storage) ListPremiumArticles(ctx context.Context, limit, offset int) ([]*models.Article, error) {
	const op = "storage.ListPremiumArticles"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + articleColumns + `
			  FROM articles
			  WHERE status = 'approved' AND is_premium = TRUE
			  ORDER BY posted_date DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return collectArticles(op, rows)
}

// ListTrendingArticles возвращает одобренные статьи по убыванию просмотров.
func (s *Storage) ListTrendingArticles(ctx context.Context, limit int) ([]*models.Article, error) {
	const op = "storage.ListTrendingArticles"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + articleColumns + `
			  FROM articles
			  WHERE status = 'approved'
			  ORDER BY view_count DESC
			  LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return collectArticles(op, rows)
}

// UpdateArticleStatus меняет статус модерации статьи. Причина отклонения
// пишется только для статуса declined, для остальных обнуляется.
func (s *Storage) UpdateArticleStatus(ctx context.Context, id int, status string, reason *string) (int, error) {
	const op = "storage.UpdateArticleStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE articles
			  SET status = $1, decline_reason = $2
			  WHERE id = $3`
	result, err := s.DB.ExecContext(ctx, query, status, reason, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// SetArticlePremium помечает статью как премиум-контент.
func (s *Storage) SetArticlePremium(ctx context.Context, id int) (int, error) {
	const op = "storage.SetArticlePremium"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE articles
			  SET is_premium = TRUE
			  WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// UpdateArticle обновляет содержимое статьи её автора и возвращает
// количество изменённых строк. Чужие статьи не затрагиваются — авторство
// проверяется в самом запросе.
func (s *Storage) UpdateArticle(ctx context.Context, id int, authorEmail string, req models.DummyArticle) (int, error) {
	const op = "storage.UpdateArticle"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tags, err := json.Marshal(req.Tags)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE articles
			  SET title = $1, image_url = $2, description = $3, publisher_name = $4, tags = $5
			  WHERE id = $6 AND author_email = $7`
	result, err := s.DB.ExecContext(ctx, query,
		req.Title, req.ImageURL, req.Description, req.PublisherName, tags, id, authorEmail)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveArticle удаляет статью по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveArticle(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveArticle"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM articles WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

func scanArticle(row rowScanner) (*models.Article, error) {
	a := &models.Article{}
	var tags []byte
	var declineReason sql.NullString
	if err := row.Scan(&a.ID, &a.Title, &a.ImageURL, &a.Description, &a.PublisherName, &tags,
		&a.Status, &declineReason, &a.IsPremium, &a.ViewCount,
		&a.AuthorEmail, &a.AuthorName, &a.AuthorPhoto, &a.PostedDate); err != nil {
		return nil, err
	}
	if declineReason.Valid {
		a.DeclineReason = &declineReason.String
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &a.Tags); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func collectArticles(op string, rows *sql.Rows) ([]*models.Article, error) {
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
