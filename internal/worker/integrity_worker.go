package worker

import (
	"context"
	"time"

	"taskKeeper/internal/logger"
	"taskKeeper/internal/models"

	"go.uber.org/zap"
)

type LogScanner interface {
	OrphanedLogs(ctx context.Context) ([]models.LogEntry, error)
}

// IntegrityWorker периодически проверяет журнал на осиротевшие записи:
// записи, чья задача не существует ни среди живых, ни среди удалённых.
type IntegrityWorker struct {
	scanner  LogScanner
	interval time.Duration
}

func NewIntegrityWorker(scanner LogScanner, interval *time.Duration) *IntegrityWorker {
	var intervalToSet time.Duration
	if interval == nil {
		intervalToSet = 5 * time.Minute
	} else {
		intervalToSet = *interval
	}
	return &IntegrityWorker{
		scanner:  scanner,
		interval: intervalToSet,
	}
}

func (w *IntegrityWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			logger.Info("Worker: Фоновая проверка целостности журнала", zap.Time("started_at", time.Now()))
			w.Check(ctx)
		case <-ctx.Done():
			logger.Info("Worker: Фоновая проверка останавливается")
			return
		}
	}
}

func (w *IntegrityWorker) Check(ctx context.Context) {
	start := time.Now()

	orphans, err := w.scanner.OrphanedLogs(ctx)
	if err != nil {
		logger.Warn("Worker: ошибка проверки журнала", zap.Error(err))
		return
	}

	if len(orphans) > 0 {
		for _, entry := range orphans {
			logger.Warn("Worker: Осиротевшая запись журнала",
				zap.String("task_id", entry.TaskID.String()),
				zap.String("action", entry.Action),
				zap.Time("timestamp", entry.Timestamp),
			)
		}
	}

	logger.Info(
		"Worker: Завершение проверки журнала",
		zap.Duration("ms", time.Since(start)),
		zap.Int("orphaned", len(orphans)),
	)
}
