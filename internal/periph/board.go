package periph

import (
	"fmt"

	"github.com/vovakirdan/ledsnake/internal/core"
)

// RestartSwitch is the switch bank bit polled for restart requests.
const RestartSwitch uint = 0

// Board wires the devices onto one bus.
type Board struct {
	bus      *Bus
	Matrix   *LEDMatrix
	Switches *Switches
	Pad      *DPad
}

// NewBoard creates a board with a width x height LED matrix.
func NewBoard(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 || width*height > MaxMatrixCells {
		return nil, fmt.Errorf("periph: invalid matrix size %dx%d", width, height)
	}

	bus := NewBus(
		NewMemory("led_matrix", LEDMatrixBase, width*height),
		NewMemory("switches", SwitchesBase, 1),
		NewMemory("d_pad", DPadBase, len(Buttons)),
	)

	return &Board{
		bus:      bus,
		Matrix:   &LEDMatrix{bus: bus, base: LEDMatrixBase, width: width, height: height},
		Switches: &Switches{bus: bus, addr: SwitchesBase},
		Pad:      &DPad{bus: bus, base: DPadBase},
	}, nil
}

// Bus exposes the raw address space.
func (b *Board) Bus() *Bus {
	return b.bus
}

// ReadInput samples the D-pad registers and restart switch into a frame.
func (b *Board) ReadInput() core.InputFrame {
	frame := core.NewInputFrame()
	for _, btn := range Buttons {
		if b.Pad.Pressed(btn) {
			frame.Set(btn.Action())
		}
	}
	if b.Switches.Bit(RestartSwitch) {
		frame.Set(core.ActionRestart)
	}
	return frame
}
