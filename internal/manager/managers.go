package manager

import "task-tracker-api/internal/history"

// NewDefault returns an empty in-memory store with its own history.
func NewDefault() TaskManager {
	return NewInMemoryTaskManager(NewDefaultHistory())
}

// NewDefaultHistory returns the history used by stores. The store serializes
// access itself, so the history is built without its own lock.
func NewDefaultHistory() history.Manager {
	return history.NewLinkedHistory(history.Options{ConcurrencySafe: false})
}
