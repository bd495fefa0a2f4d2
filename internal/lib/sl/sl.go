// Package sl содержит вспомогательные функции для структурированного
// логирования через slog.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и текстом ошибки, чтобы все
// обработчики и сервисы логировали ошибки в одном и том же поле.
//
// Пример:
//
//	log.Error("failed to create article", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
