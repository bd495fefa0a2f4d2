// Package models содержит доменную модель пользователя платформы,
// включающую роль и отметку об окончании премиум-доступа.
// Структура используется в бизнес-логике и при работе с хранилищем.
package models

import "time"

// Роли пользователей. Отсутствие роли трактуется как RoleRegular.
const (
	RoleRegular = "regular"
	RoleAdmin   = "admin"
)

// User представляет зарегистрированного пользователя платформы.
//
// Премиум-статус не хранится как флаг: поле PremiumTaken содержит
// абсолютный момент истечения премиума, nil — премиума нет.
// Действующий статус всегда вычисляется сравнением с текущим временем.
type User struct {
	UID          string     `json:"uid"`           // Уникальный идентификатор пользователя
	Email        string     `json:"email"`         // Электронная почта (естественный ключ)
	Username     string     `json:"username"`      // Отображаемое имя
	PhotoURL     string     `json:"photo_url"`     // Ссылка на аватар
	Role         string     `json:"role"`          // Роль пользователя, regular или admin
	PremiumTaken *time.Time `json:"premium_taken"` // Момент истечения премиума, nil — премиума нет
	RegisteredAt time.Time  `json:"registered_at"` // Дата регистрации
}

// RegisterResult — результат идемпотентной регистрации.
// Повторная регистрация по тому же email не является ошибкой:
// Inserted == false, возвращается уже существующая запись.
type RegisterResult struct {
	Inserted bool  `json:"inserted"`
	User     *User `json:"user"`
}

// DummyUser используется для приёма данных регистрации из JSON-запроса,
// прежде чем конвертировать их в User.
type DummyUser struct {
	Email    string `json:"email" validate:"required,email"` // Электронная почта
	Username string `json:"username" validate:"required"`    // Отображаемое имя
	PhotoURL string `json:"photo_url"`                       // Ссылка на аватар
}
