package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskKeeper/internal/ledger"
	"taskKeeper/internal/logger"
	"taskKeeper/internal/models"
	"taskKeeper/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const taskColumns = `id, user_id, title, description, due_date, priority, notes, items_needed, created_at, updated_at`

func scanTask(row pgx.Row) (models.Task, error) {
	var t models.Task
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&t.Description,
		&t.DueDate,
		&t.Priority,
		&t.Notes,
		&t.ItemsNeeded,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

func (s *Storage) List(ctx context.Context, userID uuid.UUID) ([]models.Task, error) {
	start := time.Now()

	query := `SELECT ` + taskColumns + `
				FROM tasks
				WHERE user_id = $1
				ORDER BY seq`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи", err)
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			logger.Warn("Repository: Ошибка сканирования задачи", zap.Error(err))
			continue
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}

	warnIfSlow(start, "list_tasks")
	return tasks, nil
}

func (s *Storage) GetByID(ctx context.Context, taskID, userID uuid.UUID) (models.Task, error) {
	start := time.Now()

	query := `SELECT ` + taskColumns + `
				FROM tasks
				WHERE id = $1 AND user_id = $2`

	t, err := scanTask(s.pool.QueryRow(ctx, query, taskID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Task{}, fmt.Errorf("задача %s: %w", taskID, repository.ErrNotFound)
		}
		logger.Error("Repository: Не удалось получить задачу", err)
		return models.Task{}, fmt.Errorf("получение задачи: %w", err)
	}

	warnIfSlow(start, "get_task")
	return t, nil
}

func (s *Storage) Create(ctx context.Context, task models.Task) (models.Task, error) {
	start := time.Now()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		logger.Error("Repository: Не удалось открыть транзакцию", err)
		return models.Task{}, fmt.Errorf("%w: открытие транзакции: %s", repository.ErrPersistence, err)
	}
	defer tx.Rollback(ctx)

	insertTask := `INSERT INTO tasks
				(` + taskColumns + `)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = tx.Exec(ctx, insertTask,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.DueDate,
		task.Priority,
		task.Notes,
		task.ItemsNeeded,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			logger.Warn("Repository: Дубликат заголовка задачи",
				zap.String("user_id", task.UserID.String()),
				zap.String("title", task.Title))
			return models.Task{}, fmt.Errorf("задача %q уже существует: %w", task.Title, repository.ErrConflict)
		}
		logger.Error("Repository: Не удалось добавить задачу", err)
		return models.Task{}, fmt.Errorf("%w: добавление задачи: %s", repository.ErrPersistence, err)
	}

	if err := appendLog(ctx, tx, task.ID, ledger.CreateAction(task)); err != nil {
		return models.Task{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("Repository: Не удалось зафиксировать транзакцию", err)
		return models.Task{}, fmt.Errorf("%w: фиксация транзакции: %s", repository.ErrPersistence, err)
	}

	warnIfSlow(start, "create_task")
	return task, nil
}

func (s *Storage) Update(ctx context.Context, taskID, userID uuid.UUID, upd models.TaskUpdate) (models.Task, error) {
	start := time.Now()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		logger.Error("Repository: Не удалось открыть транзакцию", err)
		return models.Task{}, fmt.Errorf("%w: открытие транзакции: %s", repository.ErrPersistence, err)
	}
	defer tx.Rollback(ctx)

	selectForUpdate := `SELECT ` + taskColumns + `
				FROM tasks
				WHERE id = $1 AND user_id = $2
				FOR UPDATE`

	original, err := scanTask(tx.QueryRow(ctx, selectForUpdate, taskID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Task{}, fmt.Errorf("задача %s: %w", taskID, repository.ErrNotFound)
		}
		logger.Error("Repository: Не удалось получить задачу", err)
		return models.Task{}, fmt.Errorf("получение задачи: %w", err)
	}

	updated := upd.Apply(original.Clone())
	updated.UpdatedAt = time.Now()

	updateTask := `UPDATE tasks
			SET title = $1,
				description = $2,
				due_date = $3,
				priority = $4,
				notes = $5,
				items_needed = $6,
				updated_at = $7
			WHERE id = $8`

	_, err = tx.Exec(ctx, updateTask,
		updated.Title,
		updated.Description,
		updated.DueDate,
		updated.Priority,
		updated.Notes,
		updated.ItemsNeeded,
		updated.UpdatedAt,
		taskID,
	)
	if err != nil {
		logger.Error("Repository: Не удалось обновить задачу", err)
		return models.Task{}, fmt.Errorf("%w: обновление задачи: %s", repository.ErrPersistence, err)
	}

	if err := appendLog(ctx, tx, taskID, ledger.EditAction(original, upd)); err != nil {
		return models.Task{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("Repository: Не удалось зафиксировать транзакцию", err)
		return models.Task{}, fmt.Errorf("%w: фиксация транзакции: %s", repository.ErrPersistence, err)
	}

	warnIfSlow(start, "update_task")
	return updated, nil
}

func (s *Storage) Delete(ctx context.Context, taskID, userID uuid.UUID) (models.Task, error) {
	start := time.Now()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		logger.Error("Repository: Не удалось открыть транзакцию", err)
		return models.Task{}, fmt.Errorf("%w: открытие транзакции: %s", repository.ErrPersistence, err)
	}
	defer tx.Rollback(ctx)

	selectForUpdate := `SELECT ` + taskColumns + `
				FROM tasks
				WHERE id = $1 AND user_id = $2
				FOR UPDATE`

	removed, err := scanTask(tx.QueryRow(ctx, selectForUpdate, taskID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Task{}, fmt.Errorf("задача %s: %w", taskID, repository.ErrNotFound)
		}
		logger.Error("Repository: Не удалось получить задачу", err)
		return models.Task{}, fmt.Errorf("получение задачи: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, taskID); err != nil {
		logger.Error("Repository: Не удалось удалить задачу", err)
		return models.Task{}, fmt.Errorf("%w: удаление задачи: %s", repository.ErrPersistence, err)
	}

	insertTombstone := `INSERT INTO past_tasks (user_id, task_id) VALUES ($1, $2)`
	if _, err := tx.Exec(ctx, insertTombstone, userID, taskID); err != nil {
		logger.Error("Repository: Не удалось записать надгробие", err)
		return models.Task{}, fmt.Errorf("%w: запись надгробия: %s", repository.ErrPersistence, err)
	}

	if err := appendLog(ctx, tx, taskID, ledger.DeleteAction(removed.Title)); err != nil {
		return models.Task{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("Repository: Не удалось зафиксировать транзакцию", err)
		return models.Task{}, fmt.Errorf("%w: фиксация транзакции: %s", repository.ErrPersistence, err)
	}

	warnIfSlow(start, "delete_task")
	return removed, nil
}

func appendLog(ctx context.Context, tx pgx.Tx, taskID uuid.UUID, action string) error {
	insertLog := `INSERT INTO task_logs (task_id, ts, action) VALUES ($1, $2, $3)`
	if _, err := tx.Exec(ctx, insertLog, taskID, time.Now(), action); err != nil {
		logger.Error("Repository: Не удалось записать лог", err)
		return fmt.Errorf("%w: запись лога: %s", repository.ErrPersistence, err)
	}
	return nil
}

// Logs возвращает записи аудита задачи; доступ только у владельца живой
// задачи или надгробия.
func (s *Storage) Logs(ctx context.Context, taskID, userID uuid.UUID) ([]models.LogEntry, error) {
	start := time.Now()

	ownership := `SELECT
			EXISTS (SELECT 1 FROM tasks WHERE id = $1 AND user_id = $2)
			OR EXISTS (SELECT 1 FROM past_tasks WHERE task_id = $1 AND user_id = $2)`

	var owned bool
	if err := s.pool.QueryRow(ctx, ownership, taskID, userID).Scan(&owned); err != nil {
		logger.Error("Repository: Не удалось проверить владение", err)
		return nil, fmt.Errorf("проверка владения: %w", err)
	}
	if !owned {
		return nil, fmt.Errorf("задача %s: %w", taskID, repository.ErrNotFound)
	}

	query := `SELECT task_id, ts, action
				FROM task_logs
				WHERE task_id = $1
				ORDER BY seq`

	rows, err := s.pool.Query(ctx, query, taskID)
	if err != nil {
		logger.Error("Repository: Не удалось получить логи", err)
		return nil, fmt.Errorf("получение логов: %w", err)
	}
	defer rows.Close()

	entries := []models.LogEntry{}
	for rows.Next() {
		var entry models.LogEntry
		if err := rows.Scan(&entry.TaskID, &entry.Timestamp, &entry.Action); err != nil {
			logger.Warn("Repository: Ошибка сканирования лога", zap.Error(err))
			continue
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("задача %s: %w", taskID, repository.ErrNoLogs)
	}

	warnIfSlow(start, "task_logs")
	return entries, nil
}

// OrphanedLogs — записи, чей taskID не разрешается ни в живую задачу,
// ни в надгробие.
func (s *Storage) OrphanedLogs(ctx context.Context) ([]models.LogEntry, error) {
	query := `SELECT l.task_id, l.ts, l.action
				FROM task_logs l
				WHERE NOT EXISTS (SELECT 1 FROM tasks t WHERE t.id = l.task_id)
				  AND NOT EXISTS (SELECT 1 FROM past_tasks p WHERE p.task_id = l.task_id)
				ORDER BY l.seq`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		logger.Error("Repository: Не удалось получить осиротевшие логи", err)
		return nil, fmt.Errorf("получение осиротевших логов: %w", err)
	}
	defer rows.Close()

	entries := []models.LogEntry{}
	for rows.Next() {
		var entry models.LogEntry
		if err := rows.Scan(&entry.TaskID, &entry.Timestamp, &entry.Action); err != nil {
			logger.Warn("Repository: Ошибка сканирования лога", zap.Error(err))
			continue
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}

	return entries, nil
}
