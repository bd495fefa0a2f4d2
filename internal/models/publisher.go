package models

import "time"

// Publisher представляет издателя, от имени которого публикуются статьи.
// Жизненный цикл ограничен созданием и выборкой списка.
type Publisher struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`       // Имя издателя (уникальное)
	LogoURL   string    `json:"logo_url"`   // Логотип
	AddedDate time.Time `json:"added_date"` // Дата добавления
}

// DummyPublisher используется для приёма данных нового издателя из JSON-запроса.
type DummyPublisher struct {
	Name    string `json:"name" validate:"required"`
	LogoURL string `json:"logo_url"`
}
