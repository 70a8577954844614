package core

import "testing"

func TestNearestColor(t *testing.T) {
	tests := []struct {
		name     string
		r, g, b  uint8
		expected Color
	}{
		{"pure red", 255, 0, 0, ColorBrightRed},
		{"dark red", 200, 10, 10, ColorRed},
		{"asphalt", 130, 130, 135, ColorGray},
		{"cone orange", 250, 130, 10, ColorOrange},
		{"white", 250, 250, 250, ColorBrightWhite},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NearestColor(tc.r, tc.g, tc.b); got != tc.expected {
				t.Errorf("NearestColor(%d, %d, %d) = %d, expected %d", tc.r, tc.g, tc.b, got, tc.expected)
			}
		})
	}
}
