// Package jsonfile — файловое хранилище всего набора данных сервиса.
// Набор загружается один раз при старте и живёт в памяти; каждая мутация
// готовится на копии и фиксируется полной перезаписью файла. Читатели файла
// никогда не видят частичной записи: запись идёт во временный файл с
// последующим rename.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"taskKeeper/internal/logger"
	"taskKeeper/internal/models"
	"taskKeeper/internal/repository"

	"go.uber.org/zap"
)

type Store struct {
	path string
	mtx  sync.Mutex
	data models.Dataset
}

// Open читает файл данных, если он есть. Отсутствующий файл — не ошибка:
// хранилище стартует пустым и создаст файл при первом коммите.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.Error("Repository: Не удалось создать каталог данных", err)
		return nil, fmt.Errorf("каталог данных: %w", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Info("Repository: Файл данных отсутствует, старт с пустого набора",
				zap.String("path", path))
			return s, nil
		}
		logger.Error("Repository: Не удалось прочитать файл данных", err)
		return nil, fmt.Errorf("чтение файла данных: %w", err)
	}

	if err := json.Unmarshal(raw, &s.data); err != nil {
		logger.Error("Repository: Повреждённый файл данных", err)
		return nil, fmt.Errorf("разбор файла данных: %w", err)
	}

	logger.Info("Repository: Файл данных загружен",
		zap.String("path", path),
		zap.Int("users", len(s.data.Users)),
		zap.Int("tasks", len(s.data.Tasks)),
		zap.Int("logs", len(s.data.Logs)))
	return s, nil
}

// commit сериализует набор целиком (UTF-8, отступ два пробела) и атомарно
// подменяет файл. Вызывается под мьютексом.
func (s *Store) commit(next models.Dataset) error {
	normalize(&next)

	raw, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		logger.Error("Repository: Ошибка сериализации набора", err)
		return fmt.Errorf("%w: сериализация: %s", repository.ErrPersistence, err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".data-*.json")
	if err != nil {
		logger.Error("Repository: Не удалось создать временный файл", err)
		return fmt.Errorf("%w: временный файл: %s", repository.ErrPersistence, err)
	}

	_, werr := tmp.Write(raw)
	cerr := tmp.Close()
	if werr != nil || cerr != nil {
		os.Remove(tmp.Name())
		logger.Error("Repository: Ошибка записи временного файла", errors.Join(werr, cerr))
		return fmt.Errorf("%w: запись: %s", repository.ErrPersistence, errors.Join(werr, cerr))
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		logger.Error("Repository: Не удалось подменить файл данных", err)
		return fmt.Errorf("%w: подмена файла: %s", repository.ErrPersistence, err)
	}

	return nil
}

// normalize заменяет nil-срезы пустыми, чтобы в файле всегда были массивы.
func normalize(d *models.Dataset) {
	if d.Users == nil {
		d.Users = []models.User{}
	}
	if d.Tasks == nil {
		d.Tasks = []models.Task{}
	}
	if d.PastTasks == nil {
		d.PastTasks = []models.PastTask{}
	}
	if d.Logs == nil {
		d.Logs = []models.LogEntry{}
	}
}

// OrphanedLogs возвращает записи аудита, чей taskID не разрешается ни в
// живую задачу, ни в надгробие. Такие записи недостижимы для запросов.
func (s *Store) OrphanedLogs(ctx context.Context) ([]models.LogEntry, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	known := make(map[string]struct{}, len(s.data.Tasks)+len(s.data.PastTasks))
	for _, t := range s.data.Tasks {
		known[t.ID.String()] = struct{}{}
	}
	for _, p := range s.data.PastTasks {
		known[p.TaskID.String()] = struct{}{}
	}

	orphaned := []models.LogEntry{}
	for _, entry := range s.data.Logs {
		if _, ok := known[entry.TaskID.String()]; !ok {
			orphaned = append(orphaned, entry)
		}
	}
	return orphaned, nil
}

func (s *Store) HealthCheck(ctx context.Context) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, err := os.Stat(filepath.Dir(s.path)); err != nil {
		logger.Error("Repository: Каталог данных недоступен", err)
		return fmt.Errorf("%w: каталог данных: %s", repository.ErrPersistence, err)
	}
	return nil
}
