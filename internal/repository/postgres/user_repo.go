package postgres

import (
	"context"
	"errors"
	"fmt"

	"taskKeeper/internal/logger"
	"taskKeeper/internal/models"
	"taskKeeper/internal/repository"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

func (s *Storage) Register(ctx context.Context, user models.User) error {
	query := `INSERT INTO users (id, name, email, password_hash)
				VALUES ($1, $2, $3, $4)`

	_, err := s.pool.Exec(ctx, query, user.ID, user.Name, user.Email, user.PasswordHash)
	if err != nil {
		if isUniqueViolation(err) {
			logger.Warn("Repository: Повторная регистрация email",
				zap.String("email", user.Email))
			return fmt.Errorf("пользователь %s уже существует: %w", user.Email, repository.ErrConflict)
		}
		logger.Error("Repository: Не удалось зарегистрировать пользователя", err)
		return fmt.Errorf("%w: регистрация пользователя: %s", repository.ErrPersistence, err)
	}

	return nil
}

func (s *Storage) ByEmail(ctx context.Context, email string) (models.User, error) {
	query := `SELECT id, name, email, password_hash
				FROM users
				WHERE email = $1`

	var user models.User
	err := s.pool.QueryRow(ctx, query, email).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, fmt.Errorf("пользователь %s: %w", email, repository.ErrNotFound)
		}
		logger.Error("Repository: Не удалось получить пользователя", err)
		return models.User{}, fmt.Errorf("получение пользователя: %w", err)
	}

	return user, nil
}
