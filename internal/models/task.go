package models

import (
	"fmt"
	"time"
)

// TaskStatus represents the status of a task
type TaskStatus string

const (
	StatusNew        TaskStatus = "NEW"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
)

// ParseStatus maps a wire value to a TaskStatus. Empty means NEW.
func ParseStatus(s string) (TaskStatus, error) {
	switch TaskStatus(s) {
	case "":
		return StatusNew, nil
	case StatusNew, StatusInProgress, StatusDone:
		return TaskStatus(s), nil
	}
	return "", fmt.Errorf("unknown task status %q", s)
}

// TaskType represents the kind of a tracked item (task, epic, subtask)
type TaskType string

const (
	TypeTask    TaskType = "TASK"
	TypeEpic    TaskType = "EPIC"
	TypeSubtask TaskType = "SUBTASK"
)

// ParseType maps a wire value to a TaskType.
func ParseType(s string) (TaskType, error) {
	switch TaskType(s) {
	case TypeTask, TypeEpic, TypeSubtask:
		return TaskType(s), nil
	}
	return "", fmt.Errorf("unknown task type %q", s)
}

// Item is one of Task, Epic or Subtask.
type Item interface {
	Identity() int
	Kind() TaskType
	Start() *time.Time
	End() *time.Time
	Clone() Item
	item()
}

// Task is the base schedulable unit of work.
// ID is assigned by the store; a zero ID means "not stored yet".
type Task struct {
	ID          int
	Name        string
	Description string
	Status      TaskStatus
	Duration    *time.Duration
	StartTime   *time.Time
}

// NewTask builds an unscheduled task with status NEW.
func NewTask(name, description string) Task {
	return Task{Name: name, Description: description, Status: StatusNew}
}

// Scheduled returns a copy of t starting at start and lasting d.
func (t Task) Scheduled(start time.Time, d time.Duration) Task {
	t.StartTime = &start
	t.Duration = &d
	return t
}

// EndTime is StartTime + Duration, or nil when either is missing.
func (t Task) EndTime() *time.Time {
	if t.StartTime == nil || t.Duration == nil {
		return nil
	}
	end := t.StartTime.Add(*t.Duration)
	return &end
}

// SameAs reports whether both values denote the same stored entity.
func (t Task) SameAs(other Item) bool {
	return other != nil && t.ID == other.Identity()
}

// Copy returns a deep copy of t.
func (t Task) Copy() Task {
	t.StartTime = copyTime(t.StartTime)
	t.Duration = copyDuration(t.Duration)
	return t
}

func (t Task) Identity() int { return t.ID }
func (t Task) Kind() TaskType { return TypeTask }
func (t Task) Start() *time.Time { return copyTime(t.StartTime) }
func (t Task) End() *time.Time { return t.EndTime() }
func (t Task) Clone() Item { return t.Copy() }
func (t Task) item() {}

func copyTime(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyDuration(p *time.Duration) *time.Duration {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
