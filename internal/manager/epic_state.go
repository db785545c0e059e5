package manager

import (
	"time"

	"task-tracker-api/internal/models"
)

// refreshEpic recomputes the epic's status and schedule from its current
// subtasks. Caller holds the lock.
func (m *InMemoryTaskManager) refreshEpic(epic *models.Epic) {
	if epic == nil {
		return
	}
	subtasks := make([]*models.Subtask, 0, len(epic.SubtaskIDs))
	for _, id := range epic.SubtaskIDs {
		if st, ok := m.subtasks[id]; ok {
			subtasks = append(subtasks, st)
		}
	}
	epic.Status = epicStatus(subtasks)
	epic.StartTime, epic.EndTime, epic.Duration = epicSchedule(subtasks)
}

// epicStatus is NEW for no subtasks or all NEW, DONE for all DONE and
// IN_PROGRESS otherwise.
func epicStatus(subtasks []*models.Subtask) models.TaskStatus {
	var newCount, doneCount int
	for _, st := range subtasks {
		switch st.Status {
		case models.StatusNew:
			newCount++
		case models.StatusDone:
			doneCount++
		}
	}
	switch {
	case len(subtasks) == 0 || newCount == len(subtasks):
		return models.StatusNew
	case doneCount == len(subtasks):
		return models.StatusDone
	default:
		return models.StatusInProgress
	}
}

// epicSchedule returns the earliest start, latest end and the sum of known
// durations. Duration is nil unless both start and end resolve; subtasks
// without a duration are left out of the sum.
func epicSchedule(subtasks []*models.Subtask) (start, end *time.Time, duration *time.Duration) {
	for _, st := range subtasks {
		if s := st.Start(); s != nil && (start == nil || s.Before(*start)) {
			start = s
		}
		if e := st.End(); e != nil && (end == nil || e.After(*end)) {
			end = e
		}
	}
	if start == nil || end == nil {
		return start, end, nil
	}
	for _, st := range subtasks {
		if st.Duration == nil {
			continue
		}
		if duration == nil {
			duration = new(time.Duration)
		}
		*duration += *st.Duration
	}
	return start, end, duration
}
