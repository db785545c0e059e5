package manager

import (
	"fmt"
	"sort"
	"sync"

	"task-tracker-api/internal/history"
	"task-tracker-api/internal/models"
)

// InMemoryTaskManager keeps tasks, epics and subtasks in id-keyed maps.
// Every public method runs under one mutex so recomputation and overlap
// checks never interleave with other mutations.
type InMemoryTaskManager struct {
	mu       sync.Mutex
	idCount  int
	tasks    map[int]*models.Task
	epics    map[int]*models.Epic
	subtasks map[int]*models.Subtask
	history  history.Manager
}

// NewInMemoryTaskManager creates an empty store that records views into h.
func NewInMemoryTaskManager(h history.Manager) *InMemoryTaskManager {
	if h == nil {
		h = NewDefaultHistory()
	}
	return &InMemoryTaskManager{
		tasks:    make(map[int]*models.Task),
		epics:    make(map[int]*models.Epic),
		subtasks: make(map[int]*models.Subtask),
		history:  h,
	}
}

func (m *InMemoryTaskManager) generateID() int {
	m.idCount++
	return m.idCount
}

// sortedKeys returns map keys ascending so listings are stable.
func sortedKeys[V any](items map[int]V) []int {
	keys := make([]int, 0, len(items))
	for id := range items {
		keys = append(keys, id)
	}
	sort.Ints(keys)
	return keys
}

// Tasks

// GetAllTasks returns copies of all tasks ordered by id.
func (m *InMemoryTaskManager) GetAllTasks() []models.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Task, 0, len(m.tasks))
	for _, id := range sortedKeys(m.tasks) {
		out = append(out, m.tasks[id].Copy())
	}
	return out
}

// DeleteAllTasks removes every task from the store and the history.
func (m *InMemoryTaskManager) DeleteAllTasks() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id := range m.tasks {
		m.history.Evict(id)
	}
	m.tasks = make(map[int]*models.Task)
	return nil
}

// GetTaskByID returns a copy of the task and records the view.
func (m *InMemoryTaskManager) GetTaskByID(id int) (models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return models.Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	m.history.Record(*t)
	return t.Copy(), nil
}

// AddTask stores a copy of task under a fresh id. Any caller id is ignored.
func (m *InMemoryTaskManager) AddTask(task models.Task) (models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	created := task.Copy()
	created.ID = 0
	if err := normalize(&created); err != nil {
		return models.Task{}, err
	}
	if m.hasCross(created) {
		return models.Task{}, fmt.Errorf("add task %q: %w", created.Name, ErrTimeConflict)
	}

	created.ID = m.generateID()
	m.tasks[created.ID] = &created
	return created.Copy(), nil
}

// UpdateTask replaces the stored task with the same id.
func (m *InMemoryTaskManager) UpdateTask(task models.Task) (models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[task.ID]; !ok {
		return models.Task{}, fmt.Errorf("task %d: %w", task.ID, ErrNotFound)
	}
	updated := task.Copy()
	if err := normalize(&updated); err != nil {
		return models.Task{}, err
	}
	if m.hasCross(updated) {
		return models.Task{}, fmt.Errorf("update task %d: %w", task.ID, ErrTimeConflict)
	}
	m.tasks[updated.ID] = &updated
	return updated.Copy(), nil
}

// DeleteTaskByID removes the task from the store and the history.
func (m *InMemoryTaskManager) DeleteTaskByID(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[id]; !ok {
		return fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	m.history.Evict(id)
	delete(m.tasks, id)
	return nil
}

// Epics

// GetAllEpics returns copies of all epics ordered by id.
func (m *InMemoryTaskManager) GetAllEpics() []models.Epic {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Epic, 0, len(m.epics))
	for _, id := range sortedKeys(m.epics) {
		out = append(out, m.epics[id].Copy())
	}
	return out
}

// DeleteAllEpics removes every epic and, with them, every subtask.
func (m *InMemoryTaskManager) DeleteAllEpics() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id := range m.subtasks {
		m.history.Evict(id)
	}
	for id := range m.epics {
		m.history.Evict(id)
	}
	m.epics = make(map[int]*models.Epic)
	m.subtasks = make(map[int]*models.Subtask)
	return nil
}

// GetEpicByID returns a copy of the epic and records the view.
func (m *InMemoryTaskManager) GetEpicByID(id int) (models.Epic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.epics[id]
	if !ok {
		return models.Epic{}, fmt.Errorf("epic %d: %w", id, ErrNotFound)
	}
	m.history.Record(*e)
	return e.Copy(), nil
}

// AddEpic stores a copy of epic under a fresh id. Caller-supplied membership
// and derived fields are discarded.
func (m *InMemoryTaskManager) AddEpic(epic models.Epic) (models.Epic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	created := epic.Copy()
	created.ID = m.generateID()
	created.ClearSubtaskIDs()
	m.refreshEpic(&created)
	m.epics[created.ID] = &created
	return created.Copy(), nil
}

// UpdateEpic replaces the stored epic's own fields. Subtask membership is
// kept as stored and status and schedule are recomputed.
func (m *InMemoryTaskManager) UpdateEpic(epic models.Epic) (models.Epic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.epics[epic.ID]
	if !ok {
		return models.Epic{}, fmt.Errorf("epic %d: %w", epic.ID, ErrNotFound)
	}
	updated := epic.Copy()
	updated.SubtaskIDs = current.Copy().SubtaskIDs
	m.refreshEpic(&updated)
	m.epics[updated.ID] = &updated
	return updated.Copy(), nil
}

// DeleteEpicByID removes the epic and every subtask that references it.
func (m *InMemoryTaskManager) DeleteEpicByID(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.epics[id]; !ok {
		return fmt.Errorf("epic %d: %w", id, ErrNotFound)
	}
	m.history.Evict(id)
	delete(m.epics, id)
	for sid, st := range m.subtasks {
		if st.EpicID == id {
			m.history.Evict(sid)
			delete(m.subtasks, sid)
		}
	}
	return nil
}

// Subtasks

// GetAllSubtasks returns copies of all subtasks ordered by id.
func (m *InMemoryTaskManager) GetAllSubtasks() []models.Subtask {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Subtask, 0, len(m.subtasks))
	for _, id := range sortedKeys(m.subtasks) {
		out = append(out, m.subtasks[id].Copy())
	}
	return out
}

// DeleteAllSubtasks removes every subtask and resets every epic.
func (m *InMemoryTaskManager) DeleteAllSubtasks() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id := range m.subtasks {
		m.history.Evict(id)
	}
	m.subtasks = make(map[int]*models.Subtask)
	for _, e := range m.epics {
		e.ClearSubtaskIDs()
		m.refreshEpic(e)
	}
	return nil
}

// GetSubtaskByID returns a copy of the subtask and records the view.
func (m *InMemoryTaskManager) GetSubtaskByID(id int) (models.Subtask, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.subtasks[id]
	if !ok {
		return models.Subtask{}, fmt.Errorf("subtask %d: %w", id, ErrNotFound)
	}
	m.history.Record(*st)
	return st.Copy(), nil
}

// AddSubtask stores a copy of subtask under a fresh id and attaches it to its epic.
func (m *InMemoryTaskManager) AddSubtask(subtask models.Subtask) (models.Subtask, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if subtask.ID != 0 && subtask.ID == subtask.EpicID {
		return models.Subtask{}, fmt.Errorf("subtask %d cannot be its own epic: %w", subtask.ID, ErrInvalidInput)
	}
	epic, ok := m.epics[subtask.EpicID]
	if !ok {
		return models.Subtask{}, fmt.Errorf("epic %d: %w", subtask.EpicID, ErrNotFound)
	}

	created := subtask.Copy()
	created.ID = 0
	if err := normalize(&created.Task); err != nil {
		return models.Subtask{}, err
	}
	if m.hasCross(created) {
		return models.Subtask{}, fmt.Errorf("add subtask %q: %w", created.Name, ErrTimeConflict)
	}

	created.ID = m.generateID()
	m.subtasks[created.ID] = &created
	epic.AddSubtaskID(created.ID)
	m.refreshEpic(epic)
	return created.Copy(), nil
}

// UpdateSubtask replaces the stored subtask with the same id and recomputes
// its epic. The epic reference of a stored subtask cannot change.
func (m *InMemoryTaskManager) UpdateSubtask(subtask models.Subtask) (models.Subtask, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if subtask.EpicID == subtask.ID {
		return models.Subtask{}, fmt.Errorf("subtask %d cannot be its own epic: %w", subtask.ID, ErrInvalidInput)
	}
	current, ok := m.subtasks[subtask.ID]
	if !ok {
		return models.Subtask{}, fmt.Errorf("subtask %d: %w", subtask.ID, ErrNotFound)
	}
	if current.EpicID != subtask.EpicID {
		return models.Subtask{}, fmt.Errorf("subtask %d belongs to epic %d, not %d: %w",
			subtask.ID, current.EpicID, subtask.EpicID, ErrInvalidInput)
	}

	updated := subtask.Copy()
	if err := normalize(&updated.Task); err != nil {
		return models.Subtask{}, err
	}
	if m.hasCross(updated) {
		return models.Subtask{}, fmt.Errorf("update subtask %d: %w", subtask.ID, ErrTimeConflict)
	}

	m.subtasks[updated.ID] = &updated
	m.refreshEpic(m.epics[updated.EpicID])
	return updated.Copy(), nil
}

// DeleteSubtaskByID removes the subtask and recomputes its epic.
func (m *InMemoryTaskManager) DeleteSubtaskByID(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.subtasks[id]
	if !ok {
		return fmt.Errorf("subtask %d: %w", id, ErrNotFound)
	}
	delete(m.subtasks, id)
	if epic, ok := m.epics[st.EpicID]; ok {
		epic.RemoveSubtaskID(id)
		m.refreshEpic(epic)
	}
	m.history.Evict(id)
	return nil
}

// GetAllSubtasksByEpicID returns copies of the epic's subtasks ordered by id.
func (m *InMemoryTaskManager) GetAllSubtasksByEpicID(epicID int) ([]models.Subtask, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.epics[epicID]; !ok {
		return nil, fmt.Errorf("epic %d: %w", epicID, ErrNotFound)
	}
	out := make([]models.Subtask, 0)
	for _, id := range sortedKeys(m.subtasks) {
		if st := m.subtasks[id]; st.EpicID == epicID {
			out = append(out, st.Copy())
		}
	}
	return out, nil
}

// GetHistory returns the viewed items, least recent first.
func (m *InMemoryTaskManager) GetHistory() []models.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history.Snapshot()
}

// normalize defaults an empty status to NEW and rejects unknown statuses
// and negative durations.
func normalize(t *models.Task) error {
	status, err := models.ParseStatus(string(t.Status))
	if err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalidInput)
	}
	if t.Duration != nil && *t.Duration < 0 {
		return fmt.Errorf("negative duration %s: %w", *t.Duration, ErrInvalidInput)
	}
	t.Status = status
	return nil
}

// Ensure InMemoryTaskManager implements TaskManager at compile time.
var _ TaskManager = (*InMemoryTaskManager)(nil)
