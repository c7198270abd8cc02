package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"taskKeeper/internal/auth"
	"taskKeeper/internal/models"
	"taskKeeper/internal/repository"
	"taskKeeper/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockTaskRepository - мок репозитория задач
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) List(ctx context.Context, userID uuid.UUID) ([]models.Task, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, taskID, userID uuid.UUID) (models.Task, error) {
	args := m.Called(ctx, taskID, userID)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *MockTaskRepository) Create(ctx context.Context, task models.Task) (models.Task, error) {
	args := m.Called(ctx, task)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, taskID, userID uuid.UUID, upd models.TaskUpdate) (models.Task, error) {
	args := m.Called(ctx, taskID, userID, upd)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *MockTaskRepository) Delete(ctx context.Context, taskID, userID uuid.UUID) (models.Task, error) {
	args := m.Called(ctx, taskID, userID)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *MockTaskRepository) Logs(ctx context.Context, taskID, userID uuid.UUID) ([]models.LogEntry, error) {
	args := m.Called(ctx, taskID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LogEntry), args.Error(1)
}

var _ service.TaskRepository = (*MockTaskRepository)(nil)

// MockUserRepository - мок репозитория пользователей
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Register(ctx context.Context, user models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) ByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.User), args.Error(1)
}

var _ service.UserRepository = (*MockUserRepository)(nil)

func TestTaskService_CreateTask(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	draft := service.TaskDraft{
		Title:       "Buy groceries",
		Description: "weekly shopping",
		DueDate:     "2024-01-01",
		Priority:    "Medium",
	}

	t.Run("success - server fields assigned", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(task models.Task) bool {
			return task.ID != uuid.Nil &&
				task.UserID == userID &&
				task.Title == draft.Title &&
				!task.CreatedAt.IsZero() &&
				task.UpdatedAt.Equal(task.CreatedAt)
		})).Return(models.Task{ID: uuid.New(), UserID: userID, Title: draft.Title}, nil)

		svc := service.NewTaskService(mockRepo)
		created, err := svc.CreateTask(ctx, userID, draft)

		require.NoError(t, err)
		assert.Equal(t, draft.Title, created.Title)
		mockRepo.AssertExpectations(t)
	})

	t.Run("error - title conflict passes through", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("Create", mock.Anything, mock.Anything).
			Return(models.Task{}, fmt.Errorf("задача %q уже существует: %w", draft.Title, repository.ErrConflict))

		svc := service.NewTaskService(mockRepo)
		_, err := svc.CreateTask(ctx, userID, draft)

		assert.ErrorIs(t, err, repository.ErrConflict)
		mockRepo.AssertExpectations(t)
	})

	t.Run("error - persistence failure wrapped", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("Create", mock.Anything, mock.Anything).
			Return(models.Task{}, repository.ErrPersistence)

		svc := service.NewTaskService(mockRepo)
		_, err := svc.CreateTask(ctx, userID, draft)

		assert.ErrorIs(t, err, repository.ErrPersistence)
		mockRepo.AssertExpectations(t)
	})
}

func TestTaskService_GetTaskByID(t *testing.T) {
	ctx := context.Background()
	taskID := uuid.New()
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("GetByID", mock.Anything, taskID, userID).
			Return(models.Task{ID: taskID, UserID: userID, Title: "Buy groceries"}, nil)

		svc := service.NewTaskService(mockRepo)
		task, err := svc.GetTaskByID(ctx, taskID, userID)

		require.NoError(t, err)
		assert.Equal(t, taskID, task.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("error - not found passes through", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("GetByID", mock.Anything, taskID, userID).
			Return(models.Task{}, repository.ErrNotFound)

		svc := service.NewTaskService(mockRepo)
		_, err := svc.GetTaskByID(ctx, taskID, userID)

		assert.ErrorIs(t, err, repository.ErrNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestTaskService_UpdateTask(t *testing.T) {
	ctx := context.Background()
	taskID := uuid.New()
	userID := uuid.New()
	newTitle := "Buy food"
	upd := models.TaskUpdate{Title: &newTitle}

	t.Run("success", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("Update", mock.Anything, taskID, userID, upd).
			Return(models.Task{ID: taskID, Title: newTitle}, nil)

		svc := service.NewTaskService(mockRepo)
		updated, err := svc.UpdateTask(ctx, taskID, userID, upd)

		require.NoError(t, err)
		assert.Equal(t, newTitle, updated.Title)
		mockRepo.AssertExpectations(t)
	})

	t.Run("error - not found", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("Update", mock.Anything, taskID, userID, upd).
			Return(models.Task{}, repository.ErrNotFound)

		svc := service.NewTaskService(mockRepo)
		_, err := svc.UpdateTask(ctx, taskID, userID, upd)

		assert.ErrorIs(t, err, repository.ErrNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestTaskService_DeleteTask(t *testing.T) {
	ctx := context.Background()
	taskID := uuid.New()
	userID := uuid.New()

	mockRepo := new(MockTaskRepository)
	mockRepo.On("Delete", mock.Anything, taskID, userID).
		Return(models.Task{ID: taskID, Title: "Buy groceries"}, nil)

	svc := service.NewTaskService(mockRepo)
	removed, err := svc.DeleteTask(ctx, taskID, userID)

	require.NoError(t, err)
	assert.Equal(t, taskID, removed.ID)
	mockRepo.AssertExpectations(t)
}

func TestLogService_GetTaskLog(t *testing.T) {
	ctx := context.Background()
	taskID := uuid.New()
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		entries := []models.LogEntry{
			{TaskID: taskID, Timestamp: time.Now(), Action: "Task 'Buy groceries' created."},
		}
		mockRepo := new(MockTaskRepository)
		mockRepo.On("Logs", mock.Anything, taskID, userID).Return(entries, nil)

		svc := service.NewLogService(mockRepo)
		got, err := svc.GetTaskLog(ctx, taskID, userID)

		require.NoError(t, err)
		assert.Equal(t, entries, got)
		mockRepo.AssertExpectations(t)
	})

	t.Run("error - no logs flavor preserved", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("Logs", mock.Anything, taskID, userID).Return(nil, repository.ErrNoLogs)

		svc := service.NewLogService(mockRepo)
		_, err := svc.GetTaskLog(ctx, taskID, userID)

		assert.ErrorIs(t, err, repository.ErrNoLogs)
		mockRepo.AssertExpectations(t)
	})
}

func newTokenManager() *auth.TokenManager {
	return auth.NewTokenManager("test-secret-at-least-32-characters!", "taskKeeper", time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success - password stored as bcrypt hash", func(t *testing.T) {
		var registered models.User
		mockUsers := new(MockUserRepository)
		mockUsers.On("Register", mock.Anything, mock.MatchedBy(func(u models.User) bool {
			registered = u
			return u.ID != uuid.Nil && u.Email == "alice@example.com"
		})).Return(nil)

		svc := service.NewAuthService(mockUsers, newTokenManager())
		err := svc.Register(ctx, "Alice", "alice@example.com", "secret123")

		require.NoError(t, err)
		assert.NotEqual(t, "secret123", registered.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(registered.PasswordHash), []byte("secret123")))
		mockUsers.AssertExpectations(t)
	})

	t.Run("error - duplicate email passes through", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("Register", mock.Anything, mock.Anything).Return(repository.ErrConflict)

		svc := service.NewAuthService(mockUsers, newTokenManager())
		err := svc.Register(ctx, "Alice", "alice@example.com", "secret123")

		assert.ErrorIs(t, err, repository.ErrConflict)
		mockUsers.AssertExpectations(t)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := models.User{
		ID:           uuid.New(),
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
	}

	t.Run("success - token carries user id", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("ByEmail", mock.Anything, user.Email).Return(user, nil)

		manager := newTokenManager()
		svc := service.NewAuthService(mockUsers, manager)

		token, err := svc.Login(ctx, user.Email, "secret123")
		require.NoError(t, err)

		parsed, err := manager.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, parsed)
		mockUsers.AssertExpectations(t)
	})

	t.Run("error - wrong password", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("ByEmail", mock.Anything, user.Email).Return(user, nil)

		svc := service.NewAuthService(mockUsers, newTokenManager())
		_, err := svc.Login(ctx, user.Email, "wrong")

		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("error - unknown email indistinguishable", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("ByEmail", mock.Anything, "nobody@example.com").
			Return(models.User{}, repository.ErrNotFound)

		svc := service.NewAuthService(mockUsers, newTokenManager())
		_, err := svc.Login(ctx, "nobody@example.com", "secret123")

		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
		assert.False(t, errors.Is(err, repository.ErrNotFound))
	})
}
