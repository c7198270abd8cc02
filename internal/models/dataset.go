package models

// Dataset — агрегат всего состояния сервиса. Это единица долговечности:
// файловое хранилище при каждом коммите перезаписывает его целиком.
type Dataset struct {
	Users     []User     `json:"users"`
	Tasks     []Task     `json:"tasks"`
	PastTasks []PastTask `json:"pastTasks"`
	Logs      []LogEntry `json:"logs"`
}

// Clone возвращает глубокую копию агрегата. Мутации готовятся на копии
// и публикуются только после успешного коммита.
func (d Dataset) Clone() Dataset {
	c := Dataset{
		Users:     append([]User(nil), d.Users...),
		Tasks:     make([]Task, 0, len(d.Tasks)),
		PastTasks: append([]PastTask(nil), d.PastTasks...),
		Logs:      append([]LogEntry(nil), d.Logs...),
	}
	for _, t := range d.Tasks {
		c.Tasks = append(c.Tasks, t.Clone())
	}
	return c
}
