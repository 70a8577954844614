package tui

import (
	"sort"
	"time"
)

// HoldTracker emulates key releases. Terminals report key presses and
// auto-repeats but never releases, so a key stays held while repeats keep
// arriving and is released once they stop.
type HoldTracker struct {
	// Initial covers the auto-repeat delay after the first press.
	Initial time.Duration
	// Repeat covers the gap between auto-repeats.
	Repeat time.Duration

	until map[string]time.Time
}

// Default hold windows, tuned to common terminal repeat settings.
const (
	DefaultHoldInitial = 550 * time.Millisecond
	DefaultHoldRepeat  = 120 * time.Millisecond
)

// NewHoldTracker creates a tracker with the default hold windows.
func NewHoldTracker() *HoldTracker {
	return &HoldTracker{
		Initial: DefaultHoldInitial,
		Repeat:  DefaultHoldRepeat,
		until:   make(map[string]time.Time),
	}
}

// Press records a press of key at now. It returns true if the key was not
// already held.
func (h *HoldTracker) Press(key string, now time.Time) bool {
	if _, held := h.until[key]; held {
		h.until[key] = now.Add(h.Repeat)
		return false
	}
	h.until[key] = now.Add(h.Initial)
	return true
}

// Expire releases every key whose hold window ended before now and
// returns them in sorted order.
func (h *HoldTracker) Expire(now time.Time) []string {
	var released []string
	for key, until := range h.until {
		if now.After(until) {
			released = append(released, key)
			delete(h.until, key)
		}
	}
	sort.Strings(released)
	return released
}

// Held reports whether key is held.
func (h *HoldTracker) Held(key string) bool {
	_, ok := h.until[key]
	return ok
}

// Reset releases all keys and returns them in sorted order.
func (h *HoldTracker) Reset() []string {
	released := make([]string, 0, len(h.until))
	for key := range h.until {
		released = append(released, key)
	}
	clear(h.until)
	sort.Strings(released)
	return released
}
