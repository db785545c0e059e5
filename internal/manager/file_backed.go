package manager

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"sync"

	"task-tracker-api/internal/models"
)

// FileBackedTaskManager is an in-memory store that writes a full snapshot to
// its SnapshotStore after every successful mutation. Reads go straight to the
// embedded store.
type FileBackedTaskManager struct {
	*InMemoryTaskManager
	store  SnapshotStore
	saveMu sync.Mutex
}

// NewFileBackedTaskManager wraps an empty in-memory store.
func NewFileBackedTaskManager(store SnapshotStore) *FileBackedTaskManager {
	return &FileBackedTaskManager{
		InMemoryTaskManager: NewInMemoryTaskManager(NewDefaultHistory()),
		store:               store,
	}
}

// LoadFileBacked builds a manager from whatever store currently holds.
// A snapshot that does not exist yet yields an empty manager.
func LoadFileBacked(store SnapshotStore) (*FileBackedTaskManager, error) {
	m := NewFileBackedTaskManager(store)
	snap, err := store.Load()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Println("No snapshot found, starting with an empty store")
			return m, nil
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if err := m.Restore(snap); err != nil {
		return nil, fmt.Errorf("restore snapshot: %w", err)
	}
	log.Printf("Restored %d tasks, %d epics, %d subtasks", len(snap.Tasks), len(snap.Epics), len(snap.Subtasks))
	return m, nil
}

// Save writes the current state to the snapshot store.
func (f *FileBackedTaskManager) Save() error {
	if err := f.store.Save(f.Snapshot()); err != nil {
		return fmt.Errorf("%w: %v", ErrManagerSave, err)
	}
	return nil
}

// mutate runs op and saves when it succeeded. Saves are serialized so the
// last write always reflects the latest state.
func (f *FileBackedTaskManager) mutate(op func() error) error {
	f.saveMu.Lock()
	defer f.saveMu.Unlock()
	if err := op(); err != nil {
		return err
	}
	return f.Save()
}

func (f *FileBackedTaskManager) DeleteAllTasks() error {
	return f.mutate(f.InMemoryTaskManager.DeleteAllTasks)
}

func (f *FileBackedTaskManager) AddTask(task models.Task) (models.Task, error) {
	var created models.Task
	err := f.mutate(func() (err error) {
		created, err = f.InMemoryTaskManager.AddTask(task)
		return err
	})
	return created, err
}

func (f *FileBackedTaskManager) UpdateTask(task models.Task) (models.Task, error) {
	var updated models.Task
	err := f.mutate(func() (err error) {
		updated, err = f.InMemoryTaskManager.UpdateTask(task)
		return err
	})
	return updated, err
}

func (f *FileBackedTaskManager) DeleteTaskByID(id int) error {
	return f.mutate(func() error { return f.InMemoryTaskManager.DeleteTaskByID(id) })
}

func (f *FileBackedTaskManager) DeleteAllEpics() error {
	return f.mutate(f.InMemoryTaskManager.DeleteAllEpics)
}

func (f *FileBackedTaskManager) AddEpic(epic models.Epic) (models.Epic, error) {
	var created models.Epic
	err := f.mutate(func() (err error) {
		created, err = f.InMemoryTaskManager.AddEpic(epic)
		return err
	})
	return created, err
}

func (f *FileBackedTaskManager) UpdateEpic(epic models.Epic) (models.Epic, error) {
	var updated models.Epic
	err := f.mutate(func() (err error) {
		updated, err = f.InMemoryTaskManager.UpdateEpic(epic)
		return err
	})
	return updated, err
}

func (f *FileBackedTaskManager) DeleteEpicByID(id int) error {
	return f.mutate(func() error { return f.InMemoryTaskManager.DeleteEpicByID(id) })
}

func (f *FileBackedTaskManager) DeleteAllSubtasks() error {
	return f.mutate(f.InMemoryTaskManager.DeleteAllSubtasks)
}

func (f *FileBackedTaskManager) AddSubtask(subtask models.Subtask) (models.Subtask, error) {
	var created models.Subtask
	err := f.mutate(func() (err error) {
		created, err = f.InMemoryTaskManager.AddSubtask(subtask)
		return err
	})
	return created, err
}

func (f *FileBackedTaskManager) UpdateSubtask(subtask models.Subtask) (models.Subtask, error) {
	var updated models.Subtask
	err := f.mutate(func() (err error) {
		updated, err = f.InMemoryTaskManager.UpdateSubtask(subtask)
		return err
	})
	return updated, err
}

func (f *FileBackedTaskManager) DeleteSubtaskByID(id int) error {
	return f.mutate(func() error { return f.InMemoryTaskManager.DeleteSubtaskByID(id) })
}

// Ensure FileBackedTaskManager implements TaskManager at compile time.
var _ TaskManager = (*FileBackedTaskManager)(nil)
