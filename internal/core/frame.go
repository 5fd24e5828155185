package core

import (
	"strings"
)

// Canvas is anything the game can paint cells onto.
// The LED matrix peripheral and Frame both satisfy it.
type Canvas interface {
	Width() int
	Height() int
	Set(x, y int, c Color)
	Fill(c Color)
}

// Frame is an in-memory copy of a matrix image. Platform layers take
// frames from the board so they never hold the bus while drawing.
type Frame struct {
	width  int
	height int
	cells  []Color
}

// NewFrame creates a black frame with the given dimensions.
func NewFrame(width, height int) *Frame {
	return &Frame{
		width:  width,
		height: height,
		cells:  make([]Color, width*height),
	}
}

// Width returns the frame width in cells.
func (f *Frame) Width() int {
	return f.width
}

// Height returns the frame height in cells.
func (f *Frame) Height() int {
	return f.height
}

// Clear paints the whole frame black.
func (f *Frame) Clear() {
	f.Fill(ColorBlack)
}

// Fill paints every cell with c.
func (f *Frame) Fill(c Color) {
	for i := range f.cells {
		f.cells[i] = c
	}
}

// Set paints one cell. Out-of-bounds coordinates are silently ignored.
func (f *Frame) Set(x, y int, c Color) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	f.cells[y*f.width+x] = c
}

// Get returns the color at (x, y), black when out of bounds.
func (f *Frame) Get(x, y int) Color {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return ColorBlack
	}
	return f.cells[y*f.width+x]
}

// FillRect paints a rectangular block.
func (f *Frame) FillRect(r Rect, c Color) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			f.Set(x, y, c)
		}
	}
}

// Count returns how many cells hold exactly c.
func (f *Frame) Count(c Color) int {
	n := 0
	for _, cell := range f.cells {
		if cell == c {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	clone := NewFrame(f.width, f.height)
	copy(clone.cells, f.cells)
	return clone
}

// glyph maps a cell color to a character for text dumps.
func glyph(c Color) rune {
	switch c {
	case ColorBlack:
		return '.'
	case ColorRed:
		return 'o'
	case ColorGreen:
		return '*'
	default:
		return '#'
	}
}

// Row returns the specified row as text, using '.' for black,
// 'o' for red, '*' for green and '#' for anything else.
func (f *Frame) Row(y int) string {
	if y < 0 || y >= f.height {
		return strings.Repeat(".", f.width)
	}
	var sb strings.Builder
	sb.Grow(f.width)
	for x := 0; x < f.width; x++ {
		sb.WriteRune(glyph(f.cells[y*f.width+x]))
	}
	return sb.String()
}

// String renders the frame as text, one row per line.
func (f *Frame) String() string {
	var sb strings.Builder
	sb.Grow(f.width*f.height + f.height)

	for y := 0; y < f.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(f.Row(y))
	}
	return sb.String()
}
