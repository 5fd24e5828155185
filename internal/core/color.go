package core

import "fmt"

// Color is a packed 0xRRGGBB value, the same encoding the LED matrix
// peripheral stores in each cell word.
type Color uint32

// Predefined colors for game elements.
const (
	ColorBlack  Color = 0x000000
	ColorRed    Color = 0xff0000
	ColorGreen  Color = 0x00ff00
	ColorBlue   Color = 0x0000ff
	ColorYellow Color = 0xffff00
	ColorWhite  Color = 0xffffff
)

// RGB splits the color into its 8-bit channels.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}
