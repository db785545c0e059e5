package handlers

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"task-tracker-api/internal/models"
)

// TimeLayout is the wire format of startTime and endTime (local time).
const TimeLayout = "02.01.2006 15:04:05"

// WireTime is a time encoded with TimeLayout
type WireTime struct {
	time.Time
}

func (t WireTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.In(time.Local).Format(TimeLayout))
}

func (t *WireTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("time must be a string in format %s", TimeLayout)
	}
	parsed, err := time.ParseInLocation(TimeLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return fmt.Errorf("invalid time %q, expected format %s", s, TimeLayout)
	}
	t.Time = parsed
	return nil
}

// WireDuration is a duration encoded as whole minutes.
// Accepts a JSON string or number on input and writes a string.
type WireDuration struct {
	time.Duration
}

func (d WireDuration) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatInt(int64(d.Duration/time.Minute), 10))
}

func (d *WireDuration) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	minutes, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid duration %s, expected minutes", string(data))
	}
	d.Duration = time.Duration(minutes) * time.Minute
	return nil
}

// TaskPayload is the JSON form of a task, epic or subtask
type TaskPayload struct {
	ID          int               `json:"id"`
	Type        models.TaskType   `json:"type"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	Duration    *WireDuration     `json:"duration"`
	StartTime   *WireTime         `json:"startTime"`
	EndTime     *WireTime         `json:"endTime"`
	EpicID      *int              `json:"epicId,omitempty"`
	SubtaskIDs  *[]int            `json:"subtasksIdList,omitempty"`
}

// PayloadOf converts any stored item to its wire form.
func PayloadOf(it models.Item) TaskPayload {
	var base models.Task
	p := TaskPayload{Type: it.Kind()}
	switch v := it.(type) {
	case models.Task:
		base = v
	case models.Epic:
		base = v.Task
		ids := append([]int{}, v.SubtaskIDs...)
		p.SubtaskIDs = &ids
	case models.Subtask:
		base = v.Task
		epicID := v.EpicID
		p.EpicID = &epicID
	}
	p.ID = base.ID
	p.Name = base.Name
	p.Description = base.Description
	p.Status = base.Status
	if base.Duration != nil {
		p.Duration = &WireDuration{*base.Duration}
	}
	if start := it.Start(); start != nil {
		p.StartTime = &WireTime{*start}
	}
	if end := it.End(); end != nil {
		p.EndTime = &WireTime{*end}
	}
	return p
}

func payloadsOf[T models.Item](items []T) []TaskPayload {
	out := make([]TaskPayload, 0, len(items))
	for _, it := range items {
		out = append(out, PayloadOf(it))
	}
	return out
}

// Task builds the base record. endTime and type are ignored on input.
func (p TaskPayload) Task() models.Task {
	t := models.Task{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
	}
	if p.Duration != nil {
		d := p.Duration.Duration
		t.Duration = &d
	}
	if p.StartTime != nil {
		start := p.StartTime.Time
		t.StartTime = &start
	}
	return t
}

// Epic builds an epic; derived fields are recomputed by the store.
func (p TaskPayload) Epic() models.Epic {
	return models.Epic{Task: p.Task()}
}

// Subtask builds a subtask. A missing epicId refers to epic 0, which never exists.
func (p TaskPayload) Subtask() models.Subtask {
	st := models.Subtask{Task: p.Task()}
	if p.EpicID != nil {
		st.EpicID = *p.EpicID
	}
	return st
}
