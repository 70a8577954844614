package core

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// Event names a notification dispatched through a Hub.
type Event string

// ErrListenerPanic is returned by Emit when a handler panicked.
var ErrListenerPanic = errors.New("hub: listener panicked")

// Listener receives an emission. src is the emitting object.
type Listener func(src any, args ...any)

// ListenerHandle identifies a single registration. On returns one so that a
// listener can be removed without an explicit identifier.
type ListenerHandle uint64

// DefaultHandler is implemented by hub owners that handle their own events.
// It runs before any registered listener.
type DefaultHandler interface {
	HandleEvent(ev Event, args ...any)
}

type listenerRecord struct {
	id     any
	handle ListenerHandle
	fn     Listener
}

var nextHandle atomic.Uint64

// Hub is a per-owner registry of named event listeners.
//
// The zero value is ready to use. Owners call Bind so that Emit can run
// their default handler and pass them as src to listeners.
type Hub struct {
	src       any
	owner     DefaultHandler
	listeners map[Event][]listenerRecord
}

// Bind sets the emitting object. If src implements DefaultHandler it is
// invoked first on every emission.
func (h *Hub) Bind(src any) {
	h.src = src
	h.owner, _ = src.(DefaultHandler)
}

// On appends fn to the listeners of ev. The optional id is stored for Off.
// Duplicate registrations are allowed and all of them fire.
func (h *Hub) On(ev Event, fn Listener, id ...any) ListenerHandle {
	if h.listeners == nil {
		h.listeners = make(map[Event][]listenerRecord)
	}

	rec := listenerRecord{
		handle: ListenerHandle(nextHandle.Add(1)),
		fn:     fn,
	}
	if len(id) > 0 {
		rec.id = id[0]
	}

	h.listeners[ev] = append(h.listeners[ev], rec)
	return rec.handle
}

// Off removes every listener of ev whose identifier or handle equals id.
func (h *Hub) Off(ev Event, id any) {
	list := h.listeners[ev]
	if len(list) == 0 {
		return
	}

	for i := len(list) - 1; i >= 0; i-- {
		if matches(list[i], id) {
			list = append(list[:i:i], list[i+1:]...)
		}
	}

	if len(list) == 0 {
		delete(h.listeners, ev)
		return
	}
	h.listeners[ev] = list
}

func matches(rec listenerRecord, id any) bool {
	if handle, ok := id.(ListenerHandle); ok && handle == rec.handle {
		return true
	}
	return rec.id != nil && isComparable(id) && rec.id == id
}

func isComparable(v any) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	_ = v == v
	return true
}

// Count returns the number of listeners registered for ev.
func (h *Hub) Count(ev Event) int {
	return len(h.listeners[ev])
}

// Emit runs the owner's default handler, then every listener of ev in
// registration order. A panicking handler stops the remaining listeners of
// this emission only; the panic is returned as an error wrapping
// ErrListenerPanic.
func (h *Hub) Emit(ev Event, args ...any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrListenerPanic, ev, r)
		}
	}()

	if h.owner != nil {
		h.owner.HandleEvent(ev, args...)
	}

	// Snapshot so listeners may register or remove listeners while running.
	list := h.listeners[ev]
	if len(list) == 0 {
		return nil
	}
	snapshot := make([]listenerRecord, len(list))
	copy(snapshot, list)

	for _, rec := range snapshot {
		rec.fn(h.src, args...)
	}
	return nil
}
