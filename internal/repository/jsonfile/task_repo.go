package jsonfile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taskKeeper/internal/ledger"
	"taskKeeper/internal/logger"
	"taskKeeper/internal/models"
	"taskKeeper/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// List возвращает живые задачи пользователя в порядке вставки.
func (s *Store) List(ctx context.Context, userID uuid.UUID) ([]models.Task, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	tasks := []models.Task{}
	for _, t := range s.data.Tasks {
		if t.UserID == userID {
			tasks = append(tasks, t.Clone())
		}
	}
	return tasks, nil
}

// GetByID возвращает живую задачу пользователя. Чужая задача неотличима
// от несуществующей.
func (s *Store) GetByID(ctx context.Context, taskID, userID uuid.UUID) (models.Task, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	idx := s.indexOf(taskID, userID)
	if idx < 0 {
		return models.Task{}, fmt.Errorf("задача %s: %w", taskID, repository.ErrNotFound)
	}
	return s.data.Tasks[idx].Clone(), nil
}

// Create добавляет полностью собранную сервисом задачу. Заголовок должен
// быть уникален среди живых задач владельца без учёта регистра; при
// конфликте ни задача, ни лог не появляются.
func (s *Store) Create(ctx context.Context, task models.Task) (models.Task, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	title := strings.ToLower(task.Title)
	for _, existing := range s.data.Tasks {
		if existing.UserID == task.UserID && strings.ToLower(existing.Title) == title {
			logger.Warn("Repository: Дубликат заголовка задачи",
				zap.String("user_id", task.UserID.String()),
				zap.String("title", task.Title))
			return models.Task{}, fmt.Errorf("задача %q уже существует: %w", task.Title, repository.ErrConflict)
		}
	}

	next := s.data.Clone()
	next.Tasks = append(next.Tasks, task.Clone())
	next.Logs = append(next.Logs, models.LogEntry{
		TaskID:    task.ID,
		Timestamp: time.Now(),
		Action:    ledger.CreateAction(task),
	})

	if err := s.commit(next); err != nil {
		return models.Task{}, err
	}
	s.data = next

	logger.Info("Repository: Задача создана", zap.String("task_id", task.ID.String()))
	return task, nil
}

// Update накладывает частичное обновление на задачу. Запись аудита
// строится по исходной задаче, чтобы лог показывал старое -> новое.
func (s *Store) Update(ctx context.Context, taskID, userID uuid.UUID, upd models.TaskUpdate) (models.Task, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	idx := s.indexOf(taskID, userID)
	if idx < 0 {
		return models.Task{}, fmt.Errorf("задача %s: %w", taskID, repository.ErrNotFound)
	}

	original := s.data.Tasks[idx]
	updated := upd.Apply(original.Clone())
	updated.UpdatedAt = time.Now()

	next := s.data.Clone()
	next.Tasks[idx] = updated
	next.Logs = append(next.Logs, models.LogEntry{
		TaskID:    taskID,
		Timestamp: time.Now(),
		Action:    ledger.EditAction(original, upd),
	})

	if err := s.commit(next); err != nil {
		return models.Task{}, err
	}
	s.data = next

	logger.Info("Repository: Задача обновлена", zap.String("task_id", taskID.String()))
	return updated.Clone(), nil
}

// Delete убирает задачу из живого набора, оставляя надгробие: логи по
// удалённой задаче остаются доступны владельцу. Восстановления нет.
func (s *Store) Delete(ctx context.Context, taskID, userID uuid.UUID) (models.Task, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	idx := s.indexOf(taskID, userID)
	if idx < 0 {
		return models.Task{}, fmt.Errorf("задача %s: %w", taskID, repository.ErrNotFound)
	}

	removed := s.data.Tasks[idx].Clone()

	next := s.data.Clone()
	next.Tasks = append(next.Tasks[:idx], next.Tasks[idx+1:]...)
	next.PastTasks = append(next.PastTasks, models.PastTask{UserID: userID, TaskID: taskID})
	next.Logs = append(next.Logs, models.LogEntry{
		TaskID:    taskID,
		Timestamp: time.Now(),
		Action:    ledger.DeleteAction(removed.Title),
	})

	if err := s.commit(next); err != nil {
		return models.Task{}, err
	}
	s.data = next

	logger.Info("Repository: Задача удалена", zap.String("task_id", taskID.String()))
	return removed, nil
}

// Logs возвращает записи аудита по задаче в причинном порядке.
// Доступ есть только у владельца живой задачи или надгробия.
func (s *Store) Logs(ctx context.Context, taskID, userID uuid.UUID) ([]models.LogEntry, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if !s.ownsTask(taskID, userID) {
		return nil, fmt.Errorf("задача %s: %w", taskID, repository.ErrNotFound)
	}

	matched := []models.LogEntry{}
	for _, entry := range s.data.Logs {
		if entry.TaskID == taskID {
			matched = append(matched, entry)
		}
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("задача %s: %w", taskID, repository.ErrNoLogs)
	}
	return matched, nil
}

func (s *Store) indexOf(taskID, userID uuid.UUID) int {
	for i, t := range s.data.Tasks {
		if t.ID == taskID && t.UserID == userID {
			return i
		}
	}
	return -1
}

func (s *Store) ownsTask(taskID, userID uuid.UUID) bool {
	if s.indexOf(taskID, userID) >= 0 {
		return true
	}
	for _, p := range s.data.PastTasks {
		if p.TaskID == taskID && p.UserID == userID {
			return true
		}
	}
	return false
}
