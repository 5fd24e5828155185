package periph

import (
	"github.com/vovakirdan/ledsnake/internal/core"
)

// Address map of the simulated board.
const (
	LEDMatrixBase uint32 = 0xF0000000
	SwitchesBase  uint32 = 0xF0100000
	DPadBase      uint32 = 0xF0100010

	DPadUp    = DPadBase
	DPadDown  = DPadBase + 1*WordSize
	DPadLeft  = DPadBase + 2*WordSize
	DPadRight = DPadBase + 3*WordSize

	// MaxMatrixCells keeps the matrix region below the switch bank.
	MaxMatrixCells = int((SwitchesBase - LEDMatrixBase) / WordSize)
)

// LEDMatrix is a width x height grid of color words addressed linearly by
// row*width + column. Writing a cell changes the displayed color immediately.
type LEDMatrix struct {
	bus    *Bus
	base   uint32
	width  int
	height int
}

// Width returns the matrix width in cells.
func (m *LEDMatrix) Width() int {
	return m.width
}

// Height returns the matrix height in cells.
func (m *LEDMatrix) Height() int {
	return m.height
}

// Addr returns the bus address of cell (x, y).
func (m *LEDMatrix) Addr(x, y int) uint32 {
	return m.base + uint32(y*m.width+x)*WordSize
}

// Set writes a cell. Out-of-bounds coordinates are silently ignored.
func (m *LEDMatrix) Set(x, y int, c core.Color) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	_ = m.bus.Write(m.Addr(x, y), uint32(c)) // in range by construction
}

// Get reads a cell, black when out of bounds.
func (m *LEDMatrix) Get(x, y int) core.Color {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return core.ColorBlack
	}
	v, err := m.bus.Read(m.Addr(x, y))
	if err != nil {
		return core.ColorBlack
	}
	return core.Color(v)
}

// Fill writes c into every cell.
func (m *LEDMatrix) Fill(c core.Color) {
	_ = m.bus.Fill(m.base, m.width*m.height, uint32(c))
}

// Frame copies the current matrix contents.
func (m *LEDMatrix) Frame() *core.Frame {
	f := core.NewFrame(m.width, m.height)
	words, err := m.bus.ReadBlock(m.base, m.width*m.height)
	if err != nil {
		return f
	}
	for i, w := range words {
		f.Set(i%m.width, i/m.width, core.Color(w))
	}
	return f
}

// Switches is a bit-field register.
type Switches struct {
	bus  *Bus
	addr uint32
}

// Word returns the raw register value.
func (s *Switches) Word() uint32 {
	v, _ := s.bus.Read(s.addr)
	return v
}

// Bit reports whether switch n is on.
func (s *Switches) Bit(n uint) bool {
	return s.Word()&(1<<n) != 0
}

// Set turns switch n on or off.
func (s *Switches) Set(n uint, on bool) {
	v := s.Word()
	if on {
		v |= 1 << n
	} else {
		v &^= 1 << n
	}
	_ = s.bus.Write(s.addr, v)
}

// Toggle flips switch n and returns its new state.
func (s *Switches) Toggle(n uint) bool {
	on := !s.Bit(n)
	s.Set(n, on)
	return on
}

// Button identifies one D-pad register.
type Button int

const (
	ButtonUp Button = iota
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Buttons lists the D-pad buttons in the order the game polls them.
var Buttons = [...]Button{ButtonUp, ButtonDown, ButtonLeft, ButtonRight}

// ParseButton maps a name ("up", "down", "left", "right") to a Button.
func ParseButton(name string) (Button, bool) {
	switch name {
	case "up":
		return ButtonUp, true
	case "down":
		return ButtonDown, true
	case "left":
		return ButtonLeft, true
	case "right":
		return ButtonRight, true
	}
	return 0, false
}

// Action returns the input action the button produces.
func (b Button) Action() core.Action {
	switch b {
	case ButtonUp:
		return core.ActionUp
	case ButtonDown:
		return core.ActionDown
	case ButtonLeft:
		return core.ActionLeft
	case ButtonRight:
		return core.ActionRight
	}
	return core.ActionNone
}

// DPad is four independent registers, non-zero while the button is pressed.
type DPad struct {
	bus  *Bus
	base uint32
}

func (d *DPad) addr(b Button) uint32 {
	return d.base + uint32(b)*WordSize
}

// Pressed reports whether b's register is non-zero.
func (d *DPad) Pressed(b Button) bool {
	v, _ := d.bus.Read(d.addr(b))
	return v != 0
}

// Press sets b's register.
func (d *DPad) Press(b Button) {
	_ = d.bus.Write(d.addr(b), 1)
}

// Release clears b's register.
func (d *DPad) Release(b Button) {
	_ = d.bus.Write(d.addr(b), 0)
}

// ReleaseAll clears every register.
func (d *DPad) ReleaseAll() {
	_ = d.bus.Fill(d.base, len(Buttons), 0)
}
