package snapshot

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"task-tracker-api/internal/models"
)

var (
	header       = []string{"id", "type", "name", "status", "description", "epic", "startTime", "duration"}
	legacyHeader = header[:6]
)

// CSVFile stores snapshots as one record per line in a flat file.
type CSVFile struct {
	Path string
}

// NewCSVFile returns a snapshot store backed by the file at path.
func NewCSVFile(path string) *CSVFile {
	return &CSVFile{Path: path}
}

// Save rewrites the whole file. The new content is written to a temporary
// file first and renamed over the old one.
func (f *CSVFile) Save(snap models.Snapshot) error {
	tmp, err := os.CreateTemp(filepath.Dir(f.Path), filepath.Base(f.Path)+".*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, snap); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Load reads the file. A missing file is reported as fs.ErrNotExist.
func (f *CSVFile) Load() (models.Snapshot, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("open snapshot: %w", err)
	}
	defer file.Close()
	return Read(file)
}

// Write encodes snap as CSV: a header line, then tasks, epics and subtasks.
func Write(w io.Writer, snap models.Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range snap.Records() {
		if err := cw.Write(formatRecord(rec)); err != nil {
			return fmt.Errorf("write record %d: %w", rec.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read decodes a snapshot written by Write. Files with the six-column
// header (no schedule columns) are accepted too.
func Read(r io.Reader) (models.Snapshot, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return models.Snapshot{}, nil
	}
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("read header: %w", err)
	}
	if !sameFields(head, header) && !sameFields(head, legacyHeader) {
		return models.Snapshot{}, fmt.Errorf("unexpected header %q", strings.Join(head, ","))
	}

	var records []models.TaskRecord
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return models.Snapshot{}, fmt.Errorf("read record: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if len(fields) == 1 && strings.TrimSpace(fields[0]) == "" {
			continue
		}
		rec, err := parseRecord(fields, len(head))
		if err != nil {
			return models.Snapshot{}, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return models.SnapshotFromRecords(records)
}

func formatRecord(rec models.TaskRecord) []string {
	row := []string{
		strconv.Itoa(rec.ID),
		string(rec.Type),
		rec.Name,
		string(rec.Status),
		rec.Description,
		"",
		"",
		"",
	}
	if rec.EpicID != nil {
		row[5] = strconv.Itoa(*rec.EpicID)
	}
	if rec.StartTime != nil {
		row[6] = rec.StartTime.Format(time.RFC3339Nano)
	}
	if rec.Duration != nil {
		row[7] = rec.Duration.String()
	}
	return row
}

func parseRecord(fields []string, columns int) (models.TaskRecord, error) {
	if len(fields) < 5 || len(fields) > columns {
		return models.TaskRecord{}, fmt.Errorf("expected %d fields, got %d", columns, len(fields))
	}
	for len(fields) < len(header) {
		fields = append(fields, "")
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return models.TaskRecord{}, fmt.Errorf("invalid id %q", fields[0])
	}
	taskType, err := models.ParseType(fields[1])
	if err != nil {
		return models.TaskRecord{}, err
	}
	status, err := models.ParseStatus(fields[3])
	if err != nil {
		return models.TaskRecord{}, err
	}
	rec := models.TaskRecord{
		ID:          id,
		Type:        taskType,
		Name:        fields[2],
		Status:      status,
		Description: fields[4],
	}

	if fields[5] != "" {
		epicID, err := strconv.Atoi(fields[5])
		if err != nil {
			return models.TaskRecord{}, fmt.Errorf("invalid epic id %q", fields[5])
		}
		rec.EpicID = &epicID
	}
	if fields[6] != "" {
		start, err := time.Parse(time.RFC3339Nano, fields[6])
		if err != nil {
			return models.TaskRecord{}, fmt.Errorf("invalid start time %q", fields[6])
		}
		rec.StartTime = &start
	}
	if fields[7] != "" {
		d, err := parseDuration(fields[7])
		if err != nil {
			return models.TaskRecord{}, fmt.Errorf("invalid duration %q", fields[7])
		}
		rec.Duration = &d
	}
	return rec, nil
}

// parseDuration reads a Go duration such as "1m30s". A bare integer is a
// count of minutes, as written by older snapshots.
func parseDuration(s string) (time.Duration, error) {
	if minutes, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(minutes) * time.Minute, nil
	}
	return time.ParseDuration(s)
}

func sameFields(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if strings.TrimSpace(a[i]) != b[i] {
			return false
		}
	}
	return true
}
