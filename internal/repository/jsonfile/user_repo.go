package jsonfile

import (
	"context"
	"fmt"

	"taskKeeper/internal/logger"
	"taskKeeper/internal/models"
	"taskKeeper/internal/repository"

	"go.uber.org/zap"
)

// Register добавляет пользователя. Email уникален среди всех пользователей.
func (s *Store) Register(ctx context.Context, user models.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for _, existing := range s.data.Users {
		if existing.Email == user.Email {
			logger.Warn("Repository: Повторная регистрация email",
				zap.String("email", user.Email))
			return fmt.Errorf("пользователь %s уже существует: %w", user.Email, repository.ErrConflict)
		}
	}

	next := s.data.Clone()
	next.Users = append(next.Users, user)

	if err := s.commit(next); err != nil {
		return err
	}
	s.data = next

	logger.Info("Repository: Пользователь зарегистрирован", zap.String("user_id", user.ID.String()))
	return nil
}

// ByEmail возвращает пользователя по email или ErrNotFound.
func (s *Store) ByEmail(ctx context.Context, email string) (models.User, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for _, user := range s.data.Users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, fmt.Errorf("пользователь %s: %w", email, repository.ErrNotFound)
}
