// Package postgres — хранилище на PostgreSQL с тем же контрактом, что и
// jsonfile: каждая мутация задачи и её запись аудита фиксируются одной
// транзакцией.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"taskKeeper/internal/config"
	"taskKeeper/internal/logger"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const uniqueViolation = "23505"

type Storage struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, cfg config.DatabaseConfig) (*Storage, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		logger.Error("Repository: Ошибка загрузки конфига", err)
		return nil, fmt.Errorf("загрузка конфига: %w", err)
	}

	if cfg.MaxConnections > 0 {
		poolConfig.MaxConns = cfg.MaxConnections
	}
	if cfg.MinConnections > 0 {
		poolConfig.MinConns = cfg.MinConnections
	}
	if cfg.IdleTimeout > 0 {
		poolConfig.MaxConnIdleTime = cfg.IdleTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("Repository: Ошибка создания пула", err)
		return nil, fmt.Errorf("создание пула: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	logger.Info("Repository: Успешное создание подключения к PostgreSQL")
	return &Storage{pool: pool}, nil
}

func (s *Storage) Close() {
	s.pool.Close()
	logger.Info("Repository: Закрытие всех соединений PostgreSQL")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func warnIfSlow(started time.Time, op string) {
	if elapsed := time.Since(started); elapsed > 100*time.Millisecond {
		logger.Warn("Repository: Медленная операция",
			zap.Duration("ms", elapsed),
			zap.String("operation", op))
	}
}

func (s *Storage) Migrate(ctx context.Context) error {
	logger.Info("Repository: Применение миграций")

	for _, name := range []string{"001_init.up.sql", "002_indexes.up.sql"} {
		raw, err := os.ReadFile("internal/migrations/" + name)
		if err != nil {
			logger.Error("Repository: Не удалось прочитать миграцию "+name, err)
			return fmt.Errorf("чтение миграции %s: %w", name, err)
		}
		if _, err := s.pool.Exec(ctx, string(raw)); err != nil {
			logger.Error("Repository: Не удалось применить миграцию "+name, err)
			return fmt.Errorf("применение миграции %s: %w", name, err)
		}
	}

	logger.Info("Repository: Миграции применены")
	return nil
}

func (s *Storage) Down(ctx context.Context) error {
	logger.Info("Repository: Откат миграций")

	for _, name := range []string{"002_indexes.down.sql", "001_init.down.sql"} {
		raw, err := os.ReadFile("internal/migrations/" + name)
		if err != nil {
			logger.Error("Repository: Не удалось прочитать миграцию "+name, err)
			return fmt.Errorf("чтение миграции %s: %w", name, err)
		}
		if _, err := s.pool.Exec(ctx, string(raw)); err != nil {
			logger.Error("Repository: Не удалось откатить миграцию "+name, err)
			return fmt.Errorf("откат миграции %s: %w", name, err)
		}
	}

	logger.Info("Repository: Миграции откачены")
	return nil
}
