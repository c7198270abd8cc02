package dto

import (
	"time"

	"taskKeeper/internal/models"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     string   `json:"dueDate"`
	Priority    string   `json:"priority"`
	Notes       []string `json:"notes,omitempty"`
	ItemsNeeded []string `json:"itemsNeeded,omitempty"`
}

type UpdateTaskRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	DueDate     *string  `json:"dueDate,omitempty"`
	Priority    *string  `json:"priority,omitempty"`
	Notes       []string `json:"notes,omitempty"`
	ItemsNeeded []string `json:"itemsNeeded,omitempty"`
}

// ToUpdate переводит запрос в частичное обновление. Неизвестные ключи
// JSON отбрасывает декодер, немутабельные поля здесь не представлены.
func (r UpdateTaskRequest) ToUpdate() models.TaskUpdate {
	return models.TaskUpdate{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		Priority:    r.Priority,
		Notes:       r.Notes,
		ItemsNeeded: r.ItemsNeeded,
	}
}

func (r UpdateTaskRequest) IsEmpty() bool {
	return r.ToUpdate().IsEmpty()
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TaskResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     string    `json:"dueDate"`
	Priority    string    `json:"priority"`
	Notes       []string  `json:"notes,omitempty"`
	ItemsNeeded []string  `json:"itemsNeeded,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func FromTask(t models.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
		Notes:       t.Notes,
		ItemsNeeded: t.ItemsNeeded,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func FromTaskList(tasks []models.Task) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t)
	}
	return result
}

type LogResponse struct {
	TaskID    uuid.UUID `json:"taskID"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
}

func FromLogEntries(entries []models.LogEntry) []LogResponse {
	result := make([]LogResponse, len(entries))
	for i, entry := range entries {
		result[i] = LogResponse{
			TaskID:    entry.TaskID,
			Timestamp: entry.Timestamp,
			Action:    entry.Action,
		}
	}
	return result
}
