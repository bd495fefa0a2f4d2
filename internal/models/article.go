// Package models содержит доменные структуры статей,
// а также вспомогательные типы для работы с данными из JSON-запросов.
package models

import "time"

// Статусы модерации статьи.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDeclined = "declined"
)

// Article представляет собой статью платформы.
//
// Автор встраивается по email, а не по ссылке на запись пользователя.
// Поле IsPremium относится к статье и не связано с премиум-статусом автора.
// DeclineReason заполняется только для отклонённых статей.
type Article struct {
	ID            int       `json:"id"`             // Идентификатор статьи
	Title         string    `json:"title"`          // Заголовок
	ImageURL      string    `json:"image_url"`      // Обложка
	Description   string    `json:"description"`    // Текст статьи
	PublisherName string    `json:"publisher_name"` // Издатель (по имени)
	Tags          []string  `json:"tags"`           // Теги
	Status        string    `json:"status"`         // pending, approved или declined
	DeclineReason *string   `json:"decline_reason"` // Причина отклонения, nil если не отклонена
	IsPremium     bool      `json:"is_premium"`     // Премиум-статья
	ViewCount     int       `json:"view_count"`     // Счётчик просмотров
	AuthorEmail   string    `json:"author_email"`   // Email автора
	AuthorName    string    `json:"author_name"`    // Имя автора
	AuthorPhoto   string    `json:"author_photo"`   // Аватар автора
	PostedDate    time.Time `json:"posted_date"`    // Дата публикации
}

// DummyArticle используется для приёма данных новой статьи из JSON-запроса,
// прежде чем конвертировать их в Article.
type DummyArticle struct {
	Title         string   `json:"title" validate:"required"`          // Заголовок
	ImageURL      string   `json:"image_url"`                          // Обложка
	Description   string   `json:"description" validate:"required"`    // Текст статьи
	PublisherName string   `json:"publisher_name" validate:"required"` // Издатель
	Tags          []string `json:"tags"`                               // Теги
}

// ArticleFilter описывает параметры выборки публичной ленты:
// поиск по заголовку, фильтр по издателю и тегу, пагинация limit/offset.
type ArticleFilter struct {
	Search    string // Регулярное выражение для поиска по заголовку
	Publisher string // Имя издателя
	Tag       string // Тег
	Limit     int
	Offset    int
}
