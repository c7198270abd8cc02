package repository

import "errors"

// Закрытый набор ошибок слоя хранения. Сервисы оборачивают их через %w,
// обработчики сопоставляют HTTP-статусам через errors.Is.
var (
	// ErrNotFound — запись не существует или не принадлежит вызывающему.
	// Чужие задачи намеренно неотличимы от несуществующих.
	ErrNotFound = errors.New("запись не найдена")

	// ErrConflict — нарушение уникальности (заголовок задачи у пользователя,
	// email при регистрации).
	ErrConflict = errors.New("конфликт уникальности")

	// ErrNoLogs — владение подтверждено, но логов по задаче нет.
	// Защитный случай: создание задачи всегда пишет лог.
	ErrNoLogs = errors.New("логи не найдены")

	// ErrPersistence — не удалось зафиксировать данные на диске.
	ErrPersistence = errors.New("ошибка сохранения данных")
)
