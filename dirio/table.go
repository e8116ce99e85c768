package dirio

import (
	"errors"
	"sync"
)

// ErrClosed is returned when creating endpoints on a closed table.
var ErrClosed = errors.New("endpoint table closed")

// Handle is an opaque reference to an endpoint pair in a table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// Table tracks live endpoint pairs. Slots are reused through a free list so
// handle space stays bounded by the peak number of live pairs.
type Table struct {
	entries  []tableEntry
	freeList []Handle
	mu       sync.RWMutex
	closed   bool
}

type tableEntry struct {
	pair  *pair
	valid bool
}

// NewTable creates an empty endpoint table.
func NewTable() *Table {
	return &Table{
		entries:  make([]tableEntry, 0, 16),
		freeList: make([]Handle, 0, 8),
	}
}

func (t *Table) insert(p *pair) (Handle, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return 0, ErrClosed
	}

	e := tableEntry{pair: p, valid: true}
	if len(t.freeList) > 0 {
		h := t.freeList[len(t.freeList)-1]
		t.freeList = t.freeList[:len(t.freeList)-1]
		t.entries[h-1] = e
		return h, nil
	}

	t.entries = append(t.entries, e)
	return Handle(len(t.entries)), nil
}

func (t *Table) remove(h Handle) {
	if h == 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	idx := int(h - 1)
	if idx >= len(t.entries) || !t.entries[idx].valid {
		return
	}
	t.entries[idx] = tableEntry{}
	t.freeList = append(t.freeList, h)
}

// Len returns the number of live endpoint pairs.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries) - len(t.freeList)
}

// Close marks the table closed. Existing pairs keep working; new pairs
// cannot be created.
func (t *Table) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
}

var defaultTable = NewTable()

// DefaultTable returns the process-wide endpoint table used by NewEndpoints.
func DefaultTable() *Table {
	return defaultTable
}
