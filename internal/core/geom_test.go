package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"last cell", 29, 24, true},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
		{"negative", -2, 15, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestPointAdd(t *testing.T) {
	p := Point{X: 10, Y: 10}.Add(2, -2)
	if p != (Point{X: 12, Y: 8}) {
		t.Errorf("Add() = %+v, expected {12 8}", p)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestColorChannels(t *testing.T) {
	r, g, b := Color(0x12ab34).RGB()
	if r != 0x12 || g != 0xab || b != 0x34 {
		t.Errorf("RGB() = %x %x %x, expected 12 ab 34", r, g, b)
	}
	if ColorRed.Hex() != "#ff0000" {
		t.Errorf("Hex() = %q, expected #ff0000", ColorRed.Hex())
	}
	if ColorBlack.Hex() != "#000000" {
		t.Errorf("Hex() = %q, expected #000000", ColorBlack.Hex())
	}
}
