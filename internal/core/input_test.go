package core

import "testing"

func TestKeyStateSetAndRelease(t *testing.T) {
	var k KeyState

	if k.IsDown("w") {
		t.Error("zero KeyState should report no keys held")
	}

	k.Set("w", true)
	k.Set("a", true)
	if !k.IsDown("w") || !k.IsDown("a") {
		t.Error("pressed keys should be reported as held")
	}
	if k.Held() != 2 {
		t.Errorf("Held() = %d, expected 2", k.Held())
	}

	k.Set("w", false)
	if k.IsDown("w") {
		t.Error("released key should not be held")
	}

	clone := k.Clone()
	k.Clear()
	if k.Held() != 0 {
		t.Errorf("Held() after Clear() = %d, expected 0", k.Held())
	}
	if !clone.IsDown("a") {
		t.Error("Clone() should be independent of Clear()")
	}
}
