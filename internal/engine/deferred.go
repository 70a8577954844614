package engine

import "sync"

// DeferredQueue holds one-shot callbacks that run on the frame thread at
// the start of the next frame.
//
// Callbacks are either pushed ready to run or reserved as a Ticket and
// fulfilled later from any goroutine. Drain runs ready entries in the order
// they entered the queue, so completion order of asynchronous work never
// changes the order its reactions fire in.
type DeferredQueue struct {
	mu      sync.Mutex
	entries []*deferredEntry
}

type deferredEntry struct {
	fn      func()
	ready   bool
	dropped bool
}

// Ticket is a reserved slot in a DeferredQueue.
type Ticket struct {
	q     *DeferredQueue
	entry *deferredEntry
}

// Push appends a callback that is ready to run.
func (q *DeferredQueue) Push(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = append(q.entries, &deferredEntry{fn: fn, ready: true})
}

// Reserve appends an empty slot. Its position is fixed now; the callback is
// supplied later with Fulfill.
func (q *DeferredQueue) Reserve() *Ticket {
	q.mu.Lock()
	defer q.mu.Unlock()
	e := &deferredEntry{}
	q.entries = append(q.entries, e)
	return &Ticket{q: q, entry: e}
}

// Fulfill sets the callback of a reserved slot. It is safe to call from any
// goroutine. Fulfilling twice, or after the queue was flushed, does nothing.
func (t *Ticket) Fulfill(fn func()) {
	if t == nil || fn == nil {
		return
	}
	t.q.mu.Lock()
	defer t.q.mu.Unlock()
	if t.entry.ready || t.entry.dropped {
		return
	}
	t.entry.fn = fn
	t.entry.ready = true
}

// Dropped reports whether the queue was flushed before the slot ran.
func (t *Ticket) Dropped() bool {
	if t == nil {
		return false
	}
	t.q.mu.Lock()
	defer t.q.mu.Unlock()
	return t.entry.dropped
}

// Drain runs every ready callback, oldest first, until none are left.
// Callbacks queued while draining run in the same drain. Reserved slots
// that are not fulfilled yet keep their position for a later drain.
// Returns the number of callbacks run.
func (q *DeferredQueue) Drain() int {
	ran := 0
	for {
		fn := q.pop()
		if fn == nil {
			return ran
		}
		fn()
		ran++
	}
}

// pop removes and returns the oldest ready callback, or nil.
func (q *DeferredQueue) pop() func() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, e := range q.entries {
		if !e.ready {
			continue
		}
		q.entries = append(q.entries[:i], q.entries[i+1:]...)
		return e.fn
	}
	return nil
}

// Flush drops every queued callback and reservation.
func (q *DeferredQueue) Flush() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, e := range q.entries {
		e.dropped = true
	}
	q.entries = nil
}

// Len returns the number of queued entries, fulfilled or not.
func (q *DeferredQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Waiting returns the number of reservations not fulfilled yet.
func (q *DeferredQueue) Waiting() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := 0
	for _, e := range q.entries {
		if !e.ready {
			n++
		}
	}
	return n
}
