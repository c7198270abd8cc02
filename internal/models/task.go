package models

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"userID" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	DueDate     string    `json:"dueDate" db:"due_date"`
	Priority    string    `json:"priority" db:"priority"`
	Notes       []string  `json:"notes,omitempty" db:"notes"`
	ItemsNeeded []string  `json:"itemsNeeded,omitempty" db:"items_needed"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// TaskUpdate — частичное обновление задачи. nil-поле означает "не менять".
// Список полей закрытый: id, userID и временные метки через обновление
// изменить нельзя.
type TaskUpdate struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	DueDate     *string  `json:"dueDate,omitempty"`
	Priority    *string  `json:"priority,omitempty"`
	Notes       []string `json:"notes,omitempty"`
	ItemsNeeded []string `json:"itemsNeeded,omitempty"`
}

func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil &&
		u.Description == nil &&
		u.DueDate == nil &&
		u.Priority == nil &&
		u.Notes == nil &&
		u.ItemsNeeded == nil
}

// Apply накладывает заполненные поля обновления на копию задачи.
func (u TaskUpdate) Apply(t Task) Task {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.DueDate != nil {
		t.DueDate = *u.DueDate
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.Notes != nil {
		t.Notes = append([]string(nil), u.Notes...)
	}
	if u.ItemsNeeded != nil {
		t.ItemsNeeded = append([]string(nil), u.ItemsNeeded...)
	}
	return t
}

// Clone возвращает независимую копию задачи (срезы копируются).
func (t Task) Clone() Task {
	c := t
	if t.Notes != nil {
		c.Notes = append([]string(nil), t.Notes...)
	}
	if t.ItemsNeeded != nil {
		c.ItemsNeeded = append([]string(nil), t.ItemsNeeded...)
	}
	return c
}
