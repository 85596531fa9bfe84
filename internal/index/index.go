// Package index implements a sorted in-memory key-value index on top of
// the red-black tree in internal/rbtree.
//
// The tree itself is single-owner; Index is the owner that serializes
// access to it, so an Index is safe for concurrent use. Values are copied
// on the way in and on the way out, so callers never share a slice with
// the index.
//
// After Close, the methods that return an error return ErrClosed. The
// remaining accessors (First, Last, Count, Size, Stats, ForEach and
// Iterator) see an empty index.
package index

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	humanize "github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/AlonMell/rbindex/internal/rbtree"
)

// ErrClosed is returned by the error-returning methods of a closed Index.
var ErrClosed = errors.New("index is closed")

// Config holds configuration options for an Index.
type Config struct {
	// Name identifies the index in log output
	Name string

	// Run the tree invariant checker after every write (slow, for testing)
	VerifyWrites bool

	// Logger receives index events; nil means logrus.StandardLogger()
	Logger *logrus.Logger
}

// DefaultConfig returns a default index configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:         "default",
		VerifyWrites: false,
	}
}

// Index represents a sorted in-memory table using a red-black tree.
type Index struct {
	tree   *rbtree.Tree[string, []byte]
	size   int // Approximate size in bytes
	verify bool
	log    *logrus.Entry
	mu     sync.RWMutex
	closed bool
}

// Stats is a point-in-time summary of an Index.
type Stats struct {
	Count       int
	Bytes       int
	Height      int
	BlackHeight int
}

func (s Stats) String() string {
	return fmt.Sprintf("%s entries, %s, height %d, black-height %d",
		humanize.Comma(int64(s.Count)), humanize.IBytes(uint64(s.Bytes)),
		s.Height, s.BlackHeight)
}

// New creates a new, empty Index.
func New(config *Config) *Index {
	if config == nil {
		config = DefaultConfig()
	}
	logger := config.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Index{
		tree:   rbtree.New[string, []byte](),
		verify: config.VerifyWrites,
		log: logger.WithFields(logrus.Fields{
			"component": "index",
			"name":      config.Name,
		}),
	}
}

// Put adds or updates a key-value pair in the Index.
func (ix *Index) Put(key string, value []byte) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.closed {
		return ErrClosed
	}

	// Calculate size delta
	sizeDelta := len(key) + len(value)
	if oldVal, exists := ix.tree.Get(key); exists {
		sizeDelta -= len(key) + len(oldVal)
	}

	ix.tree.Insert(key, bytes.Clone(value))
	ix.size += sizeDelta
	ix.log.Debugf("put %q (%d bytes)", key, len(value))

	return ix.check("put", key)
}

// Get retrieves a value by key from the Index.
func (ix *Index) Get(key string) ([]byte, bool, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if ix.closed {
		return nil, false, ErrClosed
	}

	value, exists := ix.tree.Get(key)
	return bytes.Clone(value), exists, nil
}

// Delete removes key from the Index and reports whether it was present.
func (ix *Index) Delete(key string) (bool, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.closed {
		return false, ErrClosed
	}

	oldVal, exists := ix.tree.Delete(key)
	if !exists {
		return false, nil
	}
	ix.size -= len(key) + len(oldVal)
	ix.log.Debugf("delete %q", key)

	return true, ix.check("delete", key)
}

func (ix *Index) check(op, key string) error {
	if !ix.verify {
		return nil
	}
	if err := ix.tree.Verify(); err != nil {
		ix.log.WithError(err).Errorf("verification failed after %s %q", op, key)
		return errors.Wrapf(err, "after %s %q", op, key)
	}
	return nil
}

// First returns the entry with the smallest key.
func (ix *Index) First() (string, []byte, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	n, ok := ix.tree.Min()
	if !ok {
		return "", nil, false
	}
	return n.Key(), bytes.Clone(n.Value()), true
}

// Last returns the entry with the largest key.
func (ix *Index) Last() (string, []byte, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	n, ok := ix.tree.Max()
	if !ok {
		return "", nil, false
	}
	return n.Key(), bytes.Clone(n.Value()), true
}

// Size returns the approximate size of the Index in bytes.
func (ix *Index) Size() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	return ix.size
}

// Count returns the number of entries in the Index.
func (ix *Index) Count() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	return ix.tree.Len()
}

// Stats returns counts and shape of the underlying tree.
func (ix *Index) Stats() Stats {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	return Stats{
		Count:       ix.tree.Len(),
		Bytes:       ix.size,
		Height:      ix.tree.Height(),
		BlackHeight: ix.tree.BlackHeight(),
	}
}

// ForEach iterates over all entries in the Index in sorted order.
// fn must not call back into the Index for writes.
func (ix *Index) ForEach(fn func(key string, value []byte) bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	for key, value := range ix.tree.InOrder() {
		if !fn(key, bytes.Clone(value)) {
			break
		}
	}
}

// Verify runs the tree invariant checker.
func (ix *Index) Verify() error {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if ix.closed {
		return ErrClosed
	}
	return ix.tree.Verify()
}

// Dotdump writes the underlying tree as a graphviz digraph.
func (ix *Index) Dotdump(w io.Writer) error {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if ix.closed {
		return ErrClosed
	}
	return ix.tree.Dotdump(w)
}

// Close releases every entry. The Index cannot be used afterwards.
func (ix *Index) Close() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.closed {
		return ErrClosed
	}
	ix.closed = true

	released := ix.tree.Clear()
	ix.log.Infof("closed, released %d entries (%s)", released, humanize.IBytes(uint64(ix.size)))
	ix.size = 0
	return nil
}
