package window

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/lanerush/internal/config"
	"github.com/vovakirdan/lanerush/internal/engine"
)

func TestGameKey(t *testing.T) {
	controls := config.DefaultLaneRushConfig().Controls

	tests := []struct {
		name     string
		key      ebiten.Key
		expected string
		ok       bool
	}{
		{"letter", ebiten.KeyW, "w", true},
		{"restart", ebiten.KeyR, "r", true},
		{"arrow up", ebiten.KeyArrowUp, "w", true},
		{"arrow left", ebiten.KeyArrowLeft, "a", true},
		{"arrow down", ebiten.KeyArrowDown, "s", true},
		{"arrow right", ebiten.KeyArrowRight, "d", true},
		{"space", ebiten.KeySpace, "", false},
		{"digit", ebiten.KeyDigit1, "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := GameKey(tc.key, controls)
			if got != tc.expected || ok != tc.ok {
				t.Errorf("GameKey() = (%q, %v), expected (%q, %v)", got, ok, tc.expected, tc.ok)
			}
		})
	}
}

func TestTextX(t *testing.T) {
	tests := []struct {
		align    engine.TextAlign
		expected int
	}{
		{engine.AlignLeft, 100},
		{engine.AlignCenter, 85},
		{engine.AlignRight, 70},
	}
	for _, tc := range tests {
		if got := textX("Score", 100, tc.align); got != tc.expected {
			t.Errorf("textX(%s) = %d, expected %d", tc.align, got, tc.expected)
		}
	}
}
