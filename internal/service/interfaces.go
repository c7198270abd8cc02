package service

import (
	"context"

	"taskKeeper/internal/models"

	"github.com/google/uuid"
)

// TaskRepository — единственный путь мутаций задач. Реализации: jsonfile
// (файл с полной перезаписью) и postgres.
type TaskRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.Task, error)
	GetByID(ctx context.Context, taskID, userID uuid.UUID) (models.Task, error)
	Create(ctx context.Context, task models.Task) (models.Task, error)
	Update(ctx context.Context, taskID, userID uuid.UUID, upd models.TaskUpdate) (models.Task, error)
	Delete(ctx context.Context, taskID, userID uuid.UUID) (models.Task, error)
	Logs(ctx context.Context, taskID, userID uuid.UUID) ([]models.LogEntry, error)
}

type UserRepository interface {
	Register(ctx context.Context, user models.User) error
	ByEmail(ctx context.Context, email string) (models.User, error)
}
