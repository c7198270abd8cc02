// Package ledger формирует тексты записей аудита. Формат строк — часть
// контракта: клиенты разбирают фрагменты вида [старое -> новое].
package ledger

import (
	"fmt"
	"strings"

	"taskKeeper/internal/models"
)

func CreateAction(t models.Task) string {
	return fmt.Sprintf("Task '%s' created.", t.Title)
}

func DeleteAction(title string) string {
	return fmt.Sprintf("Task '%s' deleted.", title)
}

// EditAction собирает по фрагменту [старое -> новое] на каждое изменённое
// поле и соединяет их через ", ". Порядок фрагментов фиксированный:
// title, description, dueDate, priority, notes, itemsNeeded.
// Пустое обновление даёт строку без фрагментов — такие вызовы отсекаются
// валидацией выше.
func EditAction(old models.Task, upd models.TaskUpdate) string {
	fragments := make([]string, 0, 6)

	if upd.Title != nil {
		fragments = append(fragments, fragment(old.Title, *upd.Title))
	}
	if upd.Description != nil {
		fragments = append(fragments, fragment(old.Description, *upd.Description))
	}
	if upd.DueDate != nil {
		fragments = append(fragments, fragment(old.DueDate, *upd.DueDate))
	}
	if upd.Priority != nil {
		fragments = append(fragments, fragment(old.Priority, *upd.Priority))
	}
	if upd.Notes != nil {
		fragments = append(fragments, fragment(joinList(old.Notes), joinList(upd.Notes)))
	}
	if upd.ItemsNeeded != nil {
		fragments = append(fragments, fragment(joinList(old.ItemsNeeded), joinList(upd.ItemsNeeded)))
	}

	return fmt.Sprintf("Task '%s' updated: %s", old.Title, strings.Join(fragments, ", "))
}

func fragment(oldValue, newValue string) string {
	return fmt.Sprintf("[%s -> %s]", oldValue, newValue)
}

func joinList(values []string) string {
	return strings.Join(values, ",")
}
