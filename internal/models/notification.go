package models

// ModerationEvent — событие модерации статьи, публикуемое в очередь
// уведомлений. Потребляется сервисом отправки писем авторам.
type ModerationEvent struct {
	ArticleID   int     `json:"article_id"`
	Title       string  `json:"title"`
	AuthorEmail string  `json:"author_email"`
	AuthorName  string  `json:"author_name"`
	Status      string  `json:"status"`           // approved или declined
	Reason      *string `json:"reason,omitempty"` // Причина отклонения
}
