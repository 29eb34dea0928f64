package listview

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"
)

// ErrSuperseded is returned by Load when a newer fetch replaced this one.
var ErrSuperseded = errors.New("fetch superseded by a newer request")

// Ticket identifies one fetch started with Begin.
type Ticket uint64

// Collection holds the records fetched for one list page.
//
// Fetches are tracked by ticket: Begin invalidates and cancels every earlier
// fetch, and Commit discards results from a ticket that is no longer current.
type Collection[T any] struct {
	id func(T) string

	mu        sync.Mutex
	records   []T
	current   Ticket
	cancel    context.CancelFunc
	loaded    bool
	stale     bool
	fetchedAt time.Time
	now       func() time.Time
}

// NewCollection creates an empty collection keyed by id.
func NewCollection[T any](id func(T) string) *Collection[T] {
	return &Collection[T]{id: id, now: time.Now}
}

// Begin starts a fetch. The returned context is cancelled when a newer fetch
// begins or when the ticket is committed or abandoned.
func (c *Collection[T]) Begin(ctx context.Context) (Ticket, context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	c.current++
	c.cancel = cancel
	return c.current, fetchCtx
}

// Commit replaces the records if ticket is still current.
func (c *Collection[T]) Commit(ticket Ticket, records []T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ticket != c.current {
		return false
	}
	c.release()
	c.records = slices.Clone(records)
	c.loaded = true
	c.stale = false
	c.fetchedAt = c.now()
	return true
}

// Abandon releases a ticket whose fetch failed, leaving records untouched.
func (c *Collection[T]) Abandon(ticket Ticket) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ticket == c.current {
		c.release()
	}
}

func (c *Collection[T]) release() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Load runs fetch under a fresh ticket and commits its result.
func (c *Collection[T]) Load(ctx context.Context, fetch func(context.Context) ([]T, error)) error {
	ticket, fetchCtx := c.Begin(ctx)
	records, err := fetch(fetchCtx)
	if err != nil {
		c.Abandon(ticket)
		return err
	}
	if !c.Commit(ticket, records) {
		return ErrSuperseded
	}
	return nil
}

// Replace sets the records unconditionally and invalidates in-flight fetches.
func (c *Collection[T]) Replace(records []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.release()
	c.current++
	c.records = slices.Clone(records)
	c.loaded = true
	c.stale = false
	c.fetchedAt = c.now()
}

// Records returns a copy of the records.
func (c *Collection[T]) Records() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.records)
}

// Len returns the number of records.
func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// Find returns the record with id.
func (c *Collection[T]) Find(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, rec := range c.records {
		if c.id(rec) == id {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

// RemoveByID drops every record with id. Removing an absent id is a no-op.
func (c *Collection[T]) RemoveByID(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	before := len(c.records)
	c.records = slices.DeleteFunc(c.records, func(rec T) bool { return c.id(rec) == id })
	return len(c.records) != before
}

// Upsert replaces the record sharing rec's id, or appends rec.
func (c *Collection[T]) Upsert(rec T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.id(rec)
	for i := range c.records {
		if c.id(c.records[i]) == id {
			c.records[i] = rec
			return
		}
	}
	c.records = append(c.records, rec)
}

// MarkStale flags the records for re-fetch the next time they are served.
func (c *Collection[T]) MarkStale() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stale = true
}

// Stale reports whether a re-fetch is due.
func (c *Collection[T]) Stale() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stale
}

// Loaded reports whether any fetch has committed.
func (c *Collection[T]) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// FetchedAt returns when the records were last replaced.
func (c *Collection[T]) FetchedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetchedAt
}
