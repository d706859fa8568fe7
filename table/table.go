// Package table provides Table, a keyed collection of owned values of
// unrelated types. It's meant for plugin registries and deferred-cleanup
// tables: every value put into a Table is destroyed exactly once, either when
// it's replaced or deleted or when the Table is closed, unless it's released
// or taken back out first.
//
// Example usage:
//
//	cleanup := table.New(table.WithName("request"))
//	defer cleanup.Close()
//
//	_ = table.Put(cleanup, "db", openConn())
//	_ = table.Put(cleanup, "scratch", newBuffer())
//
// Unlike a single owner.Owner, a Table is safe for concurrent use.
package table

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/amp-labs/amp-owner/closer"
	"github.com/amp-labs/amp-owner/owner"
	"github.com/amp-labs/amp-owner/should"
	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// ErrClosed is returned when a value is added to a Table that has been closed.
var ErrClosed = errors.New("table is closed")

type tableOptions struct {
	name   string
	logger *slog.Logger
}

// Option configures a Table.
type Option func(*tableOptions)

// WithName sets the name used to label the Table's metrics. Defaults to "table".
// Tables sharing a name add up into the same series.
func WithName(name string) Option {
	return func(o *tableOptions) {
		o.name = name
	}
}

// WithLogger sets the logger used for the Table's own log messages.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *tableOptions) {
		o.logger = logger
	}
}

// Table maps keys to owners. Keys keep their insertion order; replacing the
// value under an existing key moves that key to the end.
type Table struct {
	name   string
	logger *slog.Logger
	closed *atomic.Bool

	mut     sync.Mutex
	entries map[string]*owner.Owner // Protected by mut
	order   []string                // Protected by mut: insertion order of entries
}

// New creates an empty Table.
func New(opts ...Option) *Table {
	options := &tableOptions{
		name: "table",
	}

	for _, opt := range opts {
		opt(options)
	}

	if options.logger == nil {
		options.logger = slog.Default()
	}

	tableEntries.WithLabelValues(options.name).Add(0)
	entriesDestroyed.WithLabelValues(options.name).Add(0)

	return &Table{
		name:    options.name,
		logger:  options.logger,
		closed:  atomic.NewBool(false),
		entries: make(map[string]*owner.Owner),
	}
}

// Put takes ownership of ptr under key. Any value already stored under key is
// destroyed. A nil ptr just deletes key.
//
// If the Table is closed, Put returns ErrClosed and ptr stays the caller's
// responsibility.
func Put[T any](t *Table, key string, ptr *T) error {
	if ptr == nil {
		if t.closed.Load() {
			return ErrClosed
		}

		t.Delete(key)

		return nil
	}

	return t.Adopt(key, owner.New(ptr))
}

// Add takes ownership of ptr under a freshly generated key, which is returned.
func Add[T any](t *Table, ptr *T) (string, error) {
	key := uuid.New().String()

	if err := Put(t, key, ptr); err != nil {
		return "", err
	}

	return key, nil
}

// Adopt moves the value held by src into the Table under key, leaving src
// empty. Any value already stored under key is destroyed. An empty src just
// deletes key.
//
// If the Table is closed, Adopt returns ErrClosed and src is left untouched.
func (t *Table) Adopt(key string, src *owner.Owner) error {
	t.mut.Lock()

	if t.closed.Load() {
		t.mut.Unlock()

		return ErrClosed
	}

	entry := owner.Move(src)
	old := t.remove(key)

	if !entry.IsEmpty() {
		t.entries[key] = entry
		t.order = append(t.order, key)

		tableEntries.WithLabelValues(t.name).Inc()
	}

	t.mut.Unlock()

	t.destroy(key, old)

	return nil
}

// Get returns the value stored under key without transferring ownership.
func (t *Table) Get(key string) (any, bool) {
	t.mut.Lock()
	defer t.mut.Unlock()

	entry, ok := t.entries[key]
	if !ok {
		return nil, false
	}

	return entry.Get(), true
}

// Release removes key from the Table and hands its value back to the caller,
// who becomes responsible for it. Nothing is destroyed.
func (t *Table) Release(key string) (any, bool) {
	entry, ok := t.Take(key)
	if !ok {
		return nil, false
	}

	return entry.Release(), true
}

// Take removes key from the Table and returns its value as a new Owner.
func (t *Table) Take(key string) (*owner.Owner, bool) {
	t.mut.Lock()
	defer t.mut.Unlock()

	entry := t.remove(key)
	if entry == nil {
		return nil, false
	}

	return entry, true
}

// Delete removes key from the Table and destroys its value.
// Returns false if key was not present.
func (t *Table) Delete(key string) bool {
	t.mut.Lock()
	entry := t.remove(key)
	t.mut.Unlock()

	if entry == nil {
		return false
	}

	t.destroy(key, entry)

	return true
}

// Len returns the number of values in the Table.
func (t *Table) Len() int {
	t.mut.Lock()
	defer t.mut.Unlock()

	return len(t.entries)
}

// Keys returns the Table's keys in insertion order.
func (t *Table) Keys() []string {
	t.mut.Lock()
	defer t.mut.Unlock()

	return slices.Clone(t.order)
}

// Close destroys every value in the Table, most recently added first, and
// rejects further additions. Calling Close again does nothing. Destruction
// failures are logged through the Table's logger, so Close always returns nil.
func (t *Table) Close() error {
	t.mut.Lock()

	if t.closed.Swap(true) {
		t.mut.Unlock()

		return nil
	}

	order := t.order
	entries := t.entries

	t.order = nil
	t.entries = make(map[string]*owner.Owner)

	tableEntries.WithLabelValues(t.name).Sub(float64(len(entries)))
	t.mut.Unlock()

	t.logger.Debug("closing table", "table", t.name, "entries", len(order))

	collector := closer.NewCloser()

	for _, key := range slices.Backward(order) {
		collector.Add(t.entryCloser(key, entries[key]))
	}

	should.CloseWith(t.logger, collector, "failed to destroy table entries", "table", t.name)

	return nil
}

// remove detaches key from the Table and returns its owner, or nil.
// Callers must hold mut.
func (t *Table) remove(key string) *owner.Owner {
	entry, ok := t.entries[key]
	if !ok {
		return nil
	}

	delete(t.entries, key)

	if idx := slices.Index(t.order, key); idx >= 0 {
		t.order = slices.Delete(t.order, idx, idx+1)
	}

	tableEntries.WithLabelValues(t.name).Dec()

	return entry
}

// destroy destroys entry outside of mut, so a destructor may use the Table.
func (t *Table) destroy(key string, entry *owner.Owner) {
	should.CloseWith(t.logger, t.entryCloser(key, entry), "failed to destroy table entry",
		"table", t.name, "key", key)
}

// entryCloser takes entry's value and returns an io.Closer that destroys it,
// or nil if entry is empty.
func (t *Table) entryCloser(key string, entry *owner.Owner) io.Closer {
	destroy := entry.Detach()
	if destroy == nil {
		return nil
	}

	return closer.CustomCloser(func() error {
		t.logger.Debug("destroying table entry", "table", t.name, "key", key)

		err := destroy.Close()

		entriesDestroyed.WithLabelValues(t.name).Inc()

		if err != nil {
			return fmt.Errorf("table entry %q: %w", key, err)
		}

		return nil
	})
}
