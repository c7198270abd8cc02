package service

import (
	"context"
	"errors"
	"fmt"

	"taskKeeper/internal/logger"
	"taskKeeper/internal/models"
	"taskKeeper/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type LogService struct {
	repo TaskRepository
}

func NewLogService(repo TaskRepository) LogService {
	return LogService{
		repo: repo,
	}
}

// GetTaskLog возвращает записи аудита по задаче пользователя.
func (s *LogService) GetTaskLog(ctx context.Context, taskID, userID uuid.UUID) ([]models.LogEntry, error) {
	entries, err := s.repo.Logs(ctx, taskID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrNoLogs) {
			logger.Info("Service: Логи недоступны",
				zap.String("task_id", taskID.String()),
				zap.String("user_id", userID.String()))
			return nil, err
		}
		return nil, fmt.Errorf("получение логов: %w", err)
	}
	return entries, nil
}
