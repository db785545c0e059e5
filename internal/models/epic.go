package models

import "time"

// Epic is an aggregate task whose status and schedule derive from its subtasks.
// StartTime, Duration, EndTime and Status are recomputed by the store.
type Epic struct {
	Task
	SubtaskIDs []int
	EndTime    *time.Time
}

// NewEpic builds an epic with no subtasks.
func NewEpic(name, description string) Epic {
	return Epic{Task: NewTask(name, description)}
}

// AddSubtaskID appends id to the membership list. The epic's own id is ignored.
func (e *Epic) AddSubtaskID(id int) {
	if id == e.ID {
		return
	}
	e.SubtaskIDs = append(e.SubtaskIDs, id)
}

// RemoveSubtaskID drops id from the membership list, keeping order.
func (e *Epic) RemoveSubtaskID(id int) {
	for i, sid := range e.SubtaskIDs {
		if sid == id {
			e.SubtaskIDs = append(e.SubtaskIDs[:i], e.SubtaskIDs[i+1:]...)
			return
		}
	}
}

// ClearSubtaskIDs empties the membership list.
func (e *Epic) ClearSubtaskIDs() {
	e.SubtaskIDs = nil
}

// Copy returns a deep copy of e.
func (e Epic) Copy() Epic {
	e.Task = e.Task.Copy()
	if e.SubtaskIDs != nil {
		ids := make([]int, len(e.SubtaskIDs))
		copy(ids, e.SubtaskIDs)
		e.SubtaskIDs = ids
	}
	e.EndTime = copyTime(e.EndTime)
	return e
}

func (e Epic) Kind() TaskType { return TypeEpic }
func (e Epic) End() *time.Time { return copyTime(e.EndTime) }
func (e Epic) Clone() Item { return e.Copy() }
