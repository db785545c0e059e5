package history

import "task-tracker-api/internal/models"

// Manager remembers the most recently viewed items, most recent last.
// Each id appears at most once. Implementations may or may not be
// goroutine-safe depending on configuration.
type Manager interface {
	// Record appends a copy of item at the tail, dropping any older entry with the same id.
	// A nil item is ignored.
	Record(item models.Item)

	// Evict removes the entry for id if present.
	Evict(id int)

	// Snapshot returns copies of all entries from least to most recently viewed.
	Snapshot() []models.Item
}
