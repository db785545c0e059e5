package manager

import (
	"sort"

	"task-tracker-api/internal/models"
)

// CrossesInTime reports whether two scheduled items share any instant.
// Touching boundaries count as a conflict. Unscheduled items and an item
// compared with itself never cross.
func CrossesInTime(a, b models.Item) bool {
	if a == nil || b == nil || a.Identity() == b.Identity() {
		return false
	}
	aStart, aEnd := a.Start(), a.End()
	bStart, bEnd := b.Start(), b.End()
	if aStart == nil || aEnd == nil || bStart == nil || bEnd == nil {
		return false
	}
	if aEnd.Before(*bStart) || bEnd.Before(*aStart) {
		return false
	}
	return true
}

// prioritized returns every task and subtask with a start time, ascending by
// start. Equal starts are ordered by id. Caller holds the lock.
func (m *InMemoryTaskManager) prioritized() []models.Item {
	items := make([]models.Item, 0, len(m.tasks)+len(m.subtasks))
	for _, t := range m.tasks {
		if t.StartTime != nil {
			items = append(items, *t)
		}
	}
	for _, st := range m.subtasks {
		if st.StartTime != nil {
			items = append(items, *st)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		si, sj := items[i].Start(), items[j].Start()
		if si.Equal(*sj) {
			return items[i].Identity() < items[j].Identity()
		}
		return si.Before(*sj)
	})
	return items
}

// hasCross reports whether candidate crosses any scheduled item in the store.
// Caller holds the lock.
func (m *InMemoryTaskManager) hasCross(candidate models.Item) bool {
	if candidate == nil || candidate.Start() == nil || candidate.End() == nil {
		return false
	}
	for _, existing := range m.prioritized() {
		if CrossesInTime(candidate, existing) {
			return true
		}
	}
	return false
}

// GetPrioritizedTasks returns scheduled tasks and subtasks ordered by start time.
func (m *InMemoryTaskManager) GetPrioritizedTasks() []models.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := m.prioritized()
	for i, it := range items {
		items[i] = it.Clone()
	}
	return items
}

// HasCrossInTimeWithManagerTasks reports whether item would overlap a stored
// scheduled task or subtask.
func (m *InMemoryTaskManager) HasCrossInTimeWithManagerTasks(item models.Item) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hasCross(item)
}
