package core

import (
	"strings"
	"testing"
)

func TestNewFrame(t *testing.T) {
	f := NewFrame(35, 25)

	if f.Width() != 35 {
		t.Errorf("Width() = %d, expected 35", f.Width())
	}
	if f.Height() != 25 {
		t.Errorf("Height() = %d, expected 25", f.Height())
	}
	if f.Count(ColorBlack) != 35*25 {
		t.Errorf("New frame should be black, got %d black cells", f.Count(ColorBlack))
	}
}

func TestFrameSetGet(t *testing.T) {
	f := NewFrame(10, 10)

	f.Set(5, 5, ColorRed)
	if f.Get(5, 5) != ColorRed {
		t.Errorf("Get(5, 5) = %v, expected red", f.Get(5, 5))
	}

	// Out of bounds should be silent
	f.Set(-1, 0, ColorRed)
	f.Set(100, 0, ColorRed)
	f.Set(0, -1, ColorRed)
	f.Set(0, 100, ColorRed)

	if f.Get(-1, 0) != ColorBlack {
		t.Error("Out of bounds Get should return black")
	}
	if f.Count(ColorRed) != 1 {
		t.Errorf("Expected exactly 1 red cell, got %d", f.Count(ColorRed))
	}
}

func TestFrameClear(t *testing.T) {
	f := NewFrame(10, 10)
	f.Fill(ColorGreen)
	f.Clear()

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if f.Get(x, y) != ColorBlack {
				t.Errorf("After Clear, expected black at (%d, %d), got %v", x, y, f.Get(x, y))
			}
		}
	}
}

func TestFrameFillRect(t *testing.T) {
	f := NewFrame(10, 10)
	f.FillRect(NewRect(2, 2, 2, 2), ColorRed)

	for y := 2; y < 4; y++ {
		for x := 2; x < 4; x++ {
			if f.Get(x, y) != ColorRed {
				t.Errorf("FillRect: expected red at (%d, %d)", x, y)
			}
		}
	}
	if f.Count(ColorRed) != 4 {
		t.Errorf("FillRect should paint 4 cells, painted %d", f.Count(ColorRed))
	}
}

func TestFrameString(t *testing.T) {
	f := NewFrame(4, 3)
	f.Set(0, 0, ColorRed)
	f.Set(1, 1, ColorGreen)
	f.Set(3, 2, ColorWhite)

	expected := "o...\n.*..\n...#"
	if f.String() != expected {
		t.Errorf("String() = %q, expected %q", f.String(), expected)
	}

	if f.Row(-1) != "...." {
		t.Errorf("Out of bounds row should be dots, got %q", f.Row(-1))
	}
}

func TestFrameClone(t *testing.T) {
	f := NewFrame(4, 4)
	f.Set(1, 1, ColorRed)

	clone := f.Clone()
	f.Set(1, 1, ColorBlack)

	if clone.Get(1, 1) != ColorRed {
		t.Error("Clone should not share cells with the original")
	}
	if !strings.Contains(clone.String(), "o") {
		t.Error("Clone should keep painted cells")
	}
}

var _ Canvas = (*Frame)(nil)
