package handlers

import (
	"context"

	"taskKeeper/internal/models"
	"taskKeeper/internal/service"

	"github.com/google/uuid"
)

type TaskService interface {
	CreateTask(ctx context.Context, userID uuid.UUID, draft service.TaskDraft) (models.Task, error)
	GetTasks(ctx context.Context, userID uuid.UUID) ([]models.Task, error)
	GetTaskByID(ctx context.Context, taskID, userID uuid.UUID) (models.Task, error)
	UpdateTask(ctx context.Context, taskID, userID uuid.UUID, upd models.TaskUpdate) (models.Task, error)
	DeleteTask(ctx context.Context, taskID, userID uuid.UUID) (models.Task, error)
}

type LogService interface {
	GetTaskLog(ctx context.Context, taskID, userID uuid.UUID) ([]models.LogEntry, error)
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)
}

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
