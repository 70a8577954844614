package core

// KeyState tracks which keys are currently held.
// Keys are host-neutral identifiers such as "w" or "r".
type KeyState struct {
	down map[string]bool
}

// NewKeyState creates an empty key state.
func NewKeyState() KeyState {
	return KeyState{down: make(map[string]bool)}
}

// Set records key as pressed or released.
func (k *KeyState) Set(key string, down bool) {
	if k.down == nil {
		k.down = make(map[string]bool)
	}
	if !down {
		delete(k.down, key)
		return
	}
	k.down[key] = true
}

// IsDown returns true if key is currently held.
func (k KeyState) IsDown(key string) bool {
	return k.down[key]
}

// Held returns the number of keys currently held.
func (k KeyState) Held() int {
	return len(k.down)
}

// Clear releases all keys.
func (k *KeyState) Clear() {
	for key := range k.down {
		delete(k.down, key)
	}
}

// Clone creates a copy of this key state.
func (k KeyState) Clone() KeyState {
	clone := NewKeyState()
	for key, v := range k.down {
		clone.down[key] = v
	}
	return clone
}
