package manager

import (
	"fmt"

	"task-tracker-api/internal/models"
)

// Restore loads a snapshot into an empty store, keeping the stored ids.
// The id counter moves to the highest loaded id, epic membership is rebuilt
// from the loaded subtasks and every epic is recomputed.
func (m *InMemoryTaskManager) Restore(snap models.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.tasks)+len(m.epics)+len(m.subtasks) > 0 {
		return fmt.Errorf("restore into a non-empty store: %w", ErrInvalidInput)
	}

	seen := make(map[int]models.TaskType, snap.Len())
	claim := func(it models.Item) error {
		id := it.Identity()
		if id <= 0 {
			return fmt.Errorf("%s with id %d: %w", it.Kind(), id, ErrInvalidInput)
		}
		if kind, dup := seen[id]; dup {
			return fmt.Errorf("id %d used by both %s and %s: %w", id, kind, it.Kind(), ErrInvalidInput)
		}
		seen[id] = it.Kind()
		return nil
	}

	tasks := make(map[int]*models.Task, len(snap.Tasks))
	epics := make(map[int]*models.Epic, len(snap.Epics))
	subtasks := make(map[int]*models.Subtask, len(snap.Subtasks))
	maxID := 0

	for _, t := range snap.Tasks {
		if err := claim(t); err != nil {
			return err
		}
		c := t.Copy()
		if err := normalize(&c); err != nil {
			return err
		}
		tasks[c.ID] = &c
		maxID = max(maxID, c.ID)
	}
	for _, e := range snap.Epics {
		if err := claim(e); err != nil {
			return err
		}
		c := e.Copy()
		c.ClearSubtaskIDs()
		epics[c.ID] = &c
		maxID = max(maxID, c.ID)
	}
	for _, st := range snap.Subtasks {
		if err := claim(st); err != nil {
			return err
		}
		if _, ok := epics[st.EpicID]; !ok || st.EpicID == st.ID {
			return fmt.Errorf("subtask %d references epic %d: %w", st.ID, st.EpicID, ErrNotFound)
		}
		c := st.Copy()
		if err := normalize(&c.Task); err != nil {
			return err
		}
		subtasks[c.ID] = &c
		maxID = max(maxID, c.ID)
	}

	m.tasks, m.epics, m.subtasks = tasks, epics, subtasks
	for _, id := range sortedKeys(subtasks) {
		st := subtasks[id]
		epics[st.EpicID].AddSubtaskID(st.ID)
	}
	for _, e := range epics {
		m.refreshEpic(e)
	}
	m.idCount = max(m.idCount, maxID)
	return nil
}

// Snapshot returns the full state of the store, each kind ordered by id.
func (m *InMemoryTaskManager) Snapshot() models.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := models.Snapshot{
		Tasks:    make([]models.Task, 0, len(m.tasks)),
		Epics:    make([]models.Epic, 0, len(m.epics)),
		Subtasks: make([]models.Subtask, 0, len(m.subtasks)),
	}
	for _, id := range sortedKeys(m.tasks) {
		snap.Tasks = append(snap.Tasks, m.tasks[id].Copy())
	}
	for _, id := range sortedKeys(m.epics) {
		snap.Epics = append(snap.Epics, m.epics[id].Copy())
	}
	for _, id := range sortedKeys(m.subtasks) {
		snap.Subtasks = append(snap.Subtasks, m.subtasks[id].Copy())
	}
	return snap
}
