package manager

import "task-tracker-api/internal/models"

// TaskManager is the whole surface callers may use on a task store.
// All returned values are independent copies of stored state.
type TaskManager interface {
	GetAllTasks() []models.Task
	DeleteAllTasks() error
	GetTaskByID(id int) (models.Task, error)
	AddTask(task models.Task) (models.Task, error)
	UpdateTask(task models.Task) (models.Task, error)
	DeleteTaskByID(id int) error

	GetAllEpics() []models.Epic
	DeleteAllEpics() error
	GetEpicByID(id int) (models.Epic, error)
	AddEpic(epic models.Epic) (models.Epic, error)
	UpdateEpic(epic models.Epic) (models.Epic, error)
	DeleteEpicByID(id int) error

	GetAllSubtasks() []models.Subtask
	DeleteAllSubtasks() error
	GetSubtaskByID(id int) (models.Subtask, error)
	AddSubtask(subtask models.Subtask) (models.Subtask, error)
	UpdateSubtask(subtask models.Subtask) (models.Subtask, error)
	DeleteSubtaskByID(id int) error
	GetAllSubtasksByEpicID(epicID int) ([]models.Subtask, error)

	GetHistory() []models.Item
	GetPrioritizedTasks() []models.Item
	HasCrossInTimeWithManagerTasks(item models.Item) bool
}

// SnapshotStore persists and restores the full state of a store.
type SnapshotStore interface {
	Save(snapshot models.Snapshot) error
	Load() (models.Snapshot, error)
}
