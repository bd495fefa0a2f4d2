// Package premium содержит чистые функции жизненного цикла премиум-доступа:
// перевод селектора тарифа в длительность, вычисление действующего статуса
// и ленивую коррекцию истёкшего премиума.
//
// Статус никогда не читается из хранилища как булев флаг — он всегда
// выводится сравнением PremiumTaken с текущим временем.
package premium

import (
	"time"

	"github.com/newsfusion/newsfusion-backend/internal/models"
)

// Селекторы тарифов подписки.
const (
	SelectorMinute  = "1-minute"
	SelectorFiveDay = "5-days"
	SelectorTenDay  = "10-days"
)

// Duration переводит селектор тарифа в длительность премиум-доступа.
// Неизвестный селектор даёт нулевую длительность: подписка формально
// оформляется, но истекает немедленно.
func Duration(selector string) time.Duration {
	switch selector {
	case SelectorMinute:
		return time.Minute
	case SelectorFiveDay:
		return 5 * 24 * time.Hour
	case SelectorTenDay:
		return 10 * 24 * time.Hour
	default:
		return 0
	}
}

// IsEffective сообщает, действует ли премиум у пользователя в момент now.
// nil PremiumTaken — премиума нет; истёкшая отметка также означает false,
// даже если коррекция в хранилище ещё не выполнялась.
func IsEffective(user *models.User, now time.Time) bool {
	if user == nil || user.PremiumTaken == nil {
		return false
	}
	return now.Before(*user.PremiumTaken)
}

// CheckAndCorrectExpiry выполняет ленивую коррекцию истёкшего премиума.
//
// Возвращает копию пользователя с обнулённым PremiumTaken и признак
// needsPersist — нужно ли записать коррекцию в хранилище. Действующий
// премиум и отсутствие премиума возвращаются без изменений.
func CheckAndCorrectExpiry(user *models.User, now time.Time) (*models.User, bool) {
	if user == nil || user.PremiumTaken == nil {
		return user, false
	}
	if now.Before(*user.PremiumTaken) {
		return user, false
	}
	corrected := *user
	corrected.PremiumTaken = nil
	return &corrected, true
}
