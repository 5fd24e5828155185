package periph

import (
	"bytes"
	"errors"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/ledsnake/internal/core"
)

func newTestBoard(t *testing.T) *Board {
	t.Helper()
	b, err := NewBoard(35, 25)
	if err != nil {
		t.Fatalf("NewBoard() failed: %v", err)
	}
	return b
}

func TestMemoryReadWrite(t *testing.T) {
	m := NewMemory("ram", 0x1000, 4)

	if m.Memtop() != 0x100F {
		t.Errorf("Memtop() = 0x%x, expected 0x100f", m.Memtop())
	}
	if err := m.Write(0x1008, 42); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	v, err := m.Read(0x1008)
	if err != nil || v != 42 {
		t.Errorf("Read() = %d, %v; expected 42, nil", v, err)
	}

	tests := []struct {
		name string
		addr uint32
	}{
		{"below origin", 0x0FFC},
		{"past memtop", 0x1010},
		{"unaligned", 0x1002},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := m.Read(tc.addr); !errors.Is(err, ErrBusFault) {
				t.Errorf("Read(0x%x) error = %v, expected ErrBusFault", tc.addr, err)
			}
		})
	}

	if err := m.Fill(0x1008, 3, 1); !errors.Is(err, ErrBusFault) {
		t.Errorf("Fill past memtop error = %v, expected ErrBusFault", err)
	}
}

func TestBusRouting(t *testing.T) {
	b := newTestBoard(t)
	bus := b.Bus()

	if _, err := bus.Read(0x10); !errors.Is(err, ErrBusFault) {
		t.Errorf("Unmapped read error = %v, expected ErrBusFault", err)
	}

	if err := bus.Write(DPadLeft, 1); err != nil {
		t.Fatalf("Write(DPadLeft) failed: %v", err)
	}
	if !b.Pad.Pressed(ButtonLeft) {
		t.Error("Writing the left register should press left")
	}
	if b.Pad.Pressed(ButtonRight) {
		t.Error("Right should not be pressed")
	}
}

func TestNewBusOverlapPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Overlapping regions should panic")
		}
	}()
	NewBus(NewMemory("a", 0x1000, 4), NewMemory("b", 0x100C, 4))
}

func TestMatrixLinearAddressing(t *testing.T) {
	b := newTestBoard(t)

	b.Matrix.Set(3, 2, core.ColorRed)

	// row * width + column
	addr := LEDMatrixBase + uint32(2*35+3)*WordSize
	v, err := b.Bus().Read(addr)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if core.Color(v) != core.ColorRed {
		t.Errorf("Cell word = 0x%06x, expected 0xff0000", v)
	}
	if b.Matrix.Get(3, 2) != core.ColorRed {
		t.Error("Get should return the written color")
	}

	// Out of bounds is ignored
	b.Matrix.Set(35, 0, core.ColorGreen)
	b.Matrix.Set(-1, 0, core.ColorGreen)
	if b.Matrix.Frame().Count(core.ColorGreen) != 0 {
		t.Error("Out of bounds writes should be ignored")
	}
}

func TestMatrixFillAndFrame(t *testing.T) {
	b := newTestBoard(t)
	b.Matrix.Fill(core.ColorGreen)

	f := b.Matrix.Frame()
	if f.Count(core.ColorGreen) != 35*25 {
		t.Errorf("Expected every cell green, got %d", f.Count(core.ColorGreen))
	}

	b.Matrix.Fill(core.ColorBlack)
	if f.Count(core.ColorGreen) != 35*25 {
		t.Error("Frame should be a copy, not a view")
	}
}

func TestSwitches(t *testing.T) {
	b := newTestBoard(t)

	if b.Switches.Bit(0) {
		t.Error("Switches should power on off")
	}
	b.Switches.Set(3, true)
	if b.Switches.Word() != 0x8 {
		t.Errorf("Word() = 0x%x, expected 0x8", b.Switches.Word())
	}
	if !b.Switches.Toggle(0) || b.Switches.Word() != 0x9 {
		t.Errorf("Toggle(0) should turn bit 0 on, word = 0x%x", b.Switches.Word())
	}
	b.Switches.Set(3, false)
	if b.Switches.Word() != 0x1 {
		t.Errorf("Word() = 0x%x, expected 0x1", b.Switches.Word())
	}
}

func TestBoardReadInput(t *testing.T) {
	b := newTestBoard(t)

	b.Pad.Press(ButtonUp)
	b.Pad.Press(ButtonRight)
	b.Switches.Set(RestartSwitch, true)

	in := b.ReadInput()
	for _, a := range []core.Action{core.ActionUp, core.ActionRight, core.ActionRestart} {
		if !in.Has(a) {
			t.Errorf("Expected %v in input frame", a)
		}
	}
	if in.Has(core.ActionDown) || in.Has(core.ActionLeft) {
		t.Error("Unpressed buttons should not appear")
	}

	b.Pad.ReleaseAll()
	b.Switches.Set(RestartSwitch, false)
	if len(b.ReadInput().Actions) != 0 {
		t.Error("Released board should produce an empty frame")
	}
}

func TestNewBoardRejectsBadSize(t *testing.T) {
	if _, err := NewBoard(0, 25); err == nil {
		t.Error("Zero width should be rejected")
	}
	if _, err := NewBoard(1024, 1024); err == nil {
		t.Error("Matrix overlapping the switch bank should be rejected")
	}
}

func TestParseButton(t *testing.T) {
	for i, name := range []string{"up", "down", "left", "right"} {
		btn, ok := ParseButton(name)
		if !ok || btn != Buttons[i] {
			t.Errorf("ParseButton(%q) = %v, %v", name, btn, ok)
		}
	}
	if _, ok := ParseButton("jump"); ok {
		t.Error("Unknown button should not parse")
	}
}

func TestEncodePNG(t *testing.T) {
	f := core.NewFrame(4, 3)
	f.Set(1, 1, core.ColorRed)

	var buf bytes.Buffer
	if err := EncodePNG(&buf, f, 8); err != nil {
		t.Fatalf("EncodePNG() failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() failed: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 32 || bounds.Dy() != 24 {
		t.Errorf("Image size = %dx%d, expected 32x24", bounds.Dx(), bounds.Dy())
	}

	r, g, b, _ := img.At(1*8+4, 1*8+4).RGBA()
	if r>>8 != 0xff || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("LED center = (%d,%d,%d), expected red", r>>8, g>>8, b>>8)
	}
}

func TestSaveImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := SaveImage(path, core.NewFrame(4, 4), 4); err != nil {
		t.Fatalf("SaveImage() failed: %v", err)
	}
	if err := SaveImage(filepath.Join(t.TempDir(), "frame.unknown"), core.NewFrame(4, 4), 4); err == nil {
		t.Error("Unknown extension should fail")
	}
}

var _ core.Canvas = (*LEDMatrix)(nil)
