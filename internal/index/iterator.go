package index

import (
	"bytes"
	"sync"
)

type entry struct {
	key   string
	value []byte
}

// Iterator walks a point-in-time copy of the Index in sorted order.
// Writes made after Iterator returned are not visible to it.
type Iterator struct {
	entries   []entry
	currIndex int
	current   entry
	mu        sync.Mutex
	closed    bool
}

// Iterator creates a new Iterator over the current contents.
func (ix *Index) Iterator() *Iterator {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	entries := make([]entry, 0, ix.tree.Len())
	for key, value := range ix.tree.InOrder() {
		entries = append(entries, entry{key, bytes.Clone(value)})
	}

	return &Iterator{
		entries:   entries,
		currIndex: -1, // Start before the first element
	}
}

// Next advances the iterator to the next entry.
func (it *Iterator) Next() bool {
	it.mu.Lock()
	defer it.mu.Unlock()

	if it.closed || it.currIndex >= len(it.entries)-1 {
		return false
	}

	it.currIndex++
	it.current = it.entries[it.currIndex]
	return true
}

// Key returns the current key.
func (it *Iterator) Key() string {
	return it.current.key
}

// Value returns the current value.
func (it *Iterator) Value() []byte {
	return it.current.value
}

// Close releases the snapshot.
func (it *Iterator) Close() error {
	it.mu.Lock()
	defer it.mu.Unlock()

	if !it.closed {
		it.closed = true
		it.entries = nil
	}

	return nil
}
