package ledger_test

import (
	"testing"

	"taskKeeper/internal/ledger"
	"taskKeeper/internal/models"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestCreateAction(t *testing.T) {
	task := models.Task{Title: "Buy groceries"}
	assert.Equal(t, "Task 'Buy groceries' created.", ledger.CreateAction(task))
}

func TestDeleteAction(t *testing.T) {
	assert.Equal(t, "Task 'Buy groceries' deleted.", ledger.DeleteAction("Buy groceries"))
}

func TestEditAction(t *testing.T) {
	base := models.Task{
		Title:       "Buy groceries",
		Description: "weekly shopping",
		DueDate:     "2024-01-01",
		Priority:    "Medium",
		Notes:       []string{"check fridge"},
	}

	tests := []struct {
		name     string
		updates  models.TaskUpdate
		expected string
	}{
		{
			name:     "single field",
			updates:  models.TaskUpdate{Priority: strPtr("High")},
			expected: "Task 'Buy groceries' updated: [Medium -> High]",
		},
		{
			name: "multiple fields joined with comma",
			updates: models.TaskUpdate{
				Title:    strPtr("Buy food"),
				Priority: strPtr("High"),
			},
			expected: "Task 'Buy groceries' updated: [Buy groceries -> Buy food], [Medium -> High]",
		},
		{
			name:     "list field",
			updates:  models.TaskUpdate{Notes: []string{"check fridge", "take bags"}},
			expected: "Task 'Buy groceries' updated: [check fridge -> check fridge,take bags]",
		},
		{
			name:     "empty update has no fragments",
			updates:  models.TaskUpdate{},
			expected: "Task 'Buy groceries' updated: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ledger.EditAction(base, tt.updates))
		})
	}
}

// Заголовок в префиксе берётся у исходной задачи, не из обновления.
func TestEditActionKeepsOriginalTitleInPrefix(t *testing.T) {
	base := models.Task{Title: "Old title"}
	action := ledger.EditAction(base, models.TaskUpdate{Title: strPtr("New title")})
	assert.Equal(t, "Task 'Old title' updated: [Old title -> New title]", action)
}
