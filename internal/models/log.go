package models

import (
	"time"

	"github.com/google/uuid"
)

// LogEntry — неизменяемая запись аудита одной мутации задачи.
// Порядок в срезе logs отражает причинный порядок мутаций,
// timestamp носит справочный характер.
type LogEntry struct {
	TaskID    uuid.UUID `json:"taskID" db:"task_id"`
	Timestamp time.Time `json:"timestamp" db:"ts"`
	Action    string    `json:"action" db:"action"`
}

// PastTask — надгробие удалённой задачи: сохраняет связь владельца
// с taskID, чтобы логи оставались доступны после удаления.
type PastTask struct {
	UserID uuid.UUID `json:"userID" db:"user_id"`
	TaskID uuid.UUID `json:"taskID" db:"task_id"`
}
