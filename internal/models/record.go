package models

import (
	"fmt"
	"time"
)

// Snapshot is the full state of a store, grouped by kind.
type Snapshot struct {
	Tasks    []Task
	Epics    []Epic
	Subtasks []Subtask
}

// Items flattens the snapshot into tasks, then epics, then subtasks.
func (s Snapshot) Items() []Item {
	items := make([]Item, 0, len(s.Tasks)+len(s.Epics)+len(s.Subtasks))
	for _, t := range s.Tasks {
		items = append(items, t)
	}
	for _, e := range s.Epics {
		items = append(items, e)
	}
	for _, st := range s.Subtasks {
		items = append(items, st)
	}
	return items
}

// Len returns the number of entities in the snapshot.
func (s Snapshot) Len() int {
	return len(s.Tasks) + len(s.Epics) + len(s.Subtasks)
}

// TaskRecord is the flat persisted form of any item
type TaskRecord struct {
	ID          int            `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Type        TaskType       `json:"type" gorm:"not null"`
	Name        string         `json:"name" gorm:"not null"`
	Status      TaskStatus     `json:"status" gorm:"not null;default:'NEW'"`
	Description string         `json:"description"`
	EpicID      *int           `json:"epicId" gorm:"column:epic_id;index"`
	StartTime   *time.Time     `json:"startTime" gorm:"column:start_time"`
	Duration    *time.Duration `json:"duration" gorm:"column:duration_ns"`
}

// TableName specifies the table name for TaskRecord Model
func (TaskRecord) TableName() string {
	return "task_records"
}

// RecordOf flattens an item. Epic schedule fields are derived and not stored.
func RecordOf(it Item) TaskRecord {
	var base Task
	rec := TaskRecord{Type: it.Kind()}
	switch v := it.(type) {
	case Task:
		base = v
	case Epic:
		base = v.Task
		base.StartTime, base.Duration = nil, nil
	case Subtask:
		base = v.Task
		epicID := v.EpicID
		rec.EpicID = &epicID
	}
	rec.ID = base.ID
	rec.Name = base.Name
	rec.Status = base.Status
	rec.Description = base.Description
	rec.StartTime = copyTime(base.StartTime)
	rec.Duration = copyDuration(base.Duration)
	return rec
}

// Item rebuilds the typed item a record was made from.
func (r TaskRecord) Item() (Item, error) {
	status, err := ParseStatus(string(r.Status))
	if err != nil {
		return nil, err
	}
	base := Task{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Status:      status,
		StartTime:   copyTime(r.StartTime),
		Duration:    copyDuration(r.Duration),
	}

	switch r.Type {
	case TypeTask:
		return base, nil
	case TypeEpic:
		base.StartTime, base.Duration = nil, nil
		return Epic{Task: base}, nil
	case TypeSubtask:
		if r.EpicID == nil {
			return nil, fmt.Errorf("subtask %d has no epic id", r.ID)
		}
		return Subtask{Task: base, EpicID: *r.EpicID}, nil
	}
	return nil, fmt.Errorf("unknown task type %q", r.Type)
}

// Records flattens a snapshot in Items order.
func (s Snapshot) Records() []TaskRecord {
	items := s.Items()
	records := make([]TaskRecord, 0, len(items))
	for _, it := range items {
		records = append(records, RecordOf(it))
	}
	return records
}

// SnapshotFromRecords groups records back into a snapshot.
func SnapshotFromRecords(records []TaskRecord) (Snapshot, error) {
	var snap Snapshot
	for _, rec := range records {
		it, err := rec.Item()
		if err != nil {
			return Snapshot{}, fmt.Errorf("record %d: %w", rec.ID, err)
		}
		switch v := it.(type) {
		case Task:
			snap.Tasks = append(snap.Tasks, v)
		case Epic:
			snap.Epics = append(snap.Epics, v)
		case Subtask:
			snap.Subtasks = append(snap.Subtasks, v)
		}
	}
	return snap, nil
}
