package models

import "time"

// Subtask is a task scoped to exactly one epic. EpicID never changes once stored.
type Subtask struct {
	Task
	EpicID int
}

// NewSubtask builds a NEW subtask of the given epic.
func NewSubtask(name, description string, epicID int) Subtask {
	return Subtask{Task: NewTask(name, description), EpicID: epicID}
}

// Copy returns a deep copy of s.
func (s Subtask) Copy() Subtask {
	s.Task = s.Task.Copy()
	return s
}

func (s Subtask) Kind() TaskType { return TypeSubtask }
func (s Subtask) Clone() Item { return s.Copy() }

// Scheduled returns a copy of s starting at start and lasting d.
func (s Subtask) Scheduled(start time.Time, d time.Duration) Subtask {
	s.Task = s.Task.Scheduled(start, d)
	return s
}
