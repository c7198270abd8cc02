package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskKeeper/internal/logger"
	"taskKeeper/internal/models"
	"taskKeeper/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TaskService struct {
	repo TaskRepository
}

func NewTaskService(repo TaskRepository) TaskService {
	return TaskService{
		repo: repo,
	}
}

// TaskDraft — поля задачи, которые задаёт клиент. Всё остальное
// (id, владелец, временные метки) назначает сервис.
type TaskDraft struct {
	Title       string
	Description string
	DueDate     string
	Priority    string
	Notes       []string
	ItemsNeeded []string
}

func (s *TaskService) CreateTask(ctx context.Context, userID uuid.UUID, draft TaskDraft) (models.Task, error) {
	now := time.Now()
	task := models.Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       draft.Title,
		Description: draft.Description,
		DueDate:     draft.DueDate,
		Priority:    draft.Priority,
		Notes:       draft.Notes,
		ItemsNeeded: draft.ItemsNeeded,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			logger.Info("Service: Дубликат заголовка задачи",
				zap.String("user_id", userID.String()),
				zap.String("title", draft.Title))
			return models.Task{}, err
		}
		return models.Task{}, fmt.Errorf("создание задачи: %w", err)
	}
	return created, nil
}

func (s *TaskService) GetTasks(ctx context.Context, userID uuid.UUID) ([]models.Task, error) {
	tasks, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) GetTaskByID(ctx context.Context, taskID, userID uuid.UUID) (models.Task, error) {
	task, err := s.repo.GetByID(ctx, taskID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.String("target_id", taskID.String()))
			return models.Task{}, err
		}
		return models.Task{}, fmt.Errorf("получение задачи: %w", err)
	}
	return task, nil
}

// UpdateTask применяет частичное обновление. Пустые обновления отсекает
// валидация на уровне HTTP — сюда они не доходят.
func (s *TaskService) UpdateTask(ctx context.Context, taskID, userID uuid.UUID, upd models.TaskUpdate) (models.Task, error) {
	updated, err := s.repo.Update(ctx, taskID, userID, upd)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.String("target_id", taskID.String()))
			return models.Task{}, err
		}
		return models.Task{}, fmt.Errorf("обновление задачи: %w", err)
	}
	return updated, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, taskID, userID uuid.UUID) (models.Task, error) {
	removed, err := s.repo.Delete(ctx, taskID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.String("target_id", taskID.String()))
			return models.Task{}, err
		}
		return models.Task{}, fmt.Errorf("удаление задачи: %w", err)
	}
	return removed, nil
}
