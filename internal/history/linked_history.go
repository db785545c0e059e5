package history

import (
	"sync"

	"task-tracker-api/internal/models"
)

// node is one history entry in the doubly-linked list.
type node struct {
	item models.Item
	prev *node
	next *node
}

// LinkedHistory is a doubly-linked list indexed by item id.
// Record, Evict and Has are O(1) regardless of history length.
type LinkedHistory struct {
	// If muPtr is nil, the history is NOT goroutine-safe.
	// If muPtr is non-nil, it guards all operations.
	muPtr *sync.RWMutex

	head  *node
	tail  *node
	index map[int]*node
}

// Options controls construction of a LinkedHistory.
type Options struct {
	// ConcurrencySafe controls whether operations are guarded by a RWMutex.
	// Leave it false when the owner already serializes access.
	ConcurrencySafe bool
}

// NewLinkedHistory constructs an empty LinkedHistory with the given options.
func NewLinkedHistory(opts Options) *LinkedHistory {
	var mu *sync.RWMutex
	if opts.ConcurrencySafe {
		mu = &sync.RWMutex{}
	}
	return &LinkedHistory{
		muPtr: mu,
		index: make(map[int]*node),
	}
}

func (h *LinkedHistory) lockR() func() {
	if h.muPtr == nil {
		return func() {}
	}
	h.muPtr.RLock()
	return h.muPtr.RUnlock
}

func (h *LinkedHistory) lockW() func() {
	if h.muPtr == nil {
		return func() {}
	}
	h.muPtr.Lock()
	return h.muPtr.Unlock
}

// Record implements Manager.Record.
func (h *LinkedHistory) Record(item models.Item) {
	if item == nil {
		return
	}
	unlock := h.lockW()
	defer unlock()

	id := item.Identity()
	if n, ok := h.index[id]; ok {
		h.unlink(n)
	}
	n := &node{item: item.Clone(), prev: h.tail}
	if h.tail == nil {
		h.head = n
	} else {
		h.tail.next = n
	}
	h.tail = n
	h.index[id] = n
}

// Evict implements Manager.Evict.
func (h *LinkedHistory) Evict(id int) {
	unlock := h.lockW()
	defer unlock()
	if n, ok := h.index[id]; ok {
		h.unlink(n)
	}
}

// unlink detaches n from the list and the index. Caller holds the write lock.
func (h *LinkedHistory) unlink(n *node) {
	if n.prev == nil {
		h.head = n.next
	} else {
		n.prev.next = n.next
	}
	if n.next == nil {
		h.tail = n.prev
	} else {
		n.next.prev = n.prev
	}
	n.prev, n.next = nil, nil
	delete(h.index, n.item.Identity())
}

// Snapshot implements Manager.Snapshot.
func (h *LinkedHistory) Snapshot() []models.Item {
	unlock := h.lockR()
	defer unlock()
	items := make([]models.Item, 0, len(h.index))
	for n := h.head; n != nil; n = n.next {
		items = append(items, n.item.Clone())
	}
	return items
}

// Has reports whether id is currently in the history.
func (h *LinkedHistory) Has(id int) bool {
	unlock := h.lockR()
	defer unlock()
	_, ok := h.index[id]
	return ok
}

// Len returns the number of entries.
func (h *LinkedHistory) Len() int {
	unlock := h.lockR()
	defer unlock()
	return len(h.index)
}

// Clear removes all entries.
func (h *LinkedHistory) Clear() {
	unlock := h.lockW()
	defer unlock()
	h.head, h.tail = nil, nil
	h.index = make(map[int]*node)
}

// Ensure LinkedHistory implements Manager at compile time.
var _ Manager = (*LinkedHistory)(nil)
