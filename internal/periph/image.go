package periph

import (
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/vovakirdan/ledsnake/internal/core"
)

// offColor is how a dark LED is drawn so the grid stays visible.
const offColor core.Color = 0x202020

// RenderImage draws a frame as round LEDs, scale pixels per cell.
func RenderImage(f *core.Frame, scale int) image.Image {
	scale = core.Clamp(scale, 2, 64)
	dc := gg.NewContext(f.Width()*scale, f.Height()*scale)
	dc.SetRGB255(8, 8, 8)
	dc.Clear()

	s := float64(scale)
	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			c := f.Get(x, y)
			if c == core.ColorBlack {
				c = offColor
			}
			r, g, b := c.RGB()
			dc.SetRGB255(int(r), int(g), int(b))
			dc.DrawCircle(float64(x)*s+s/2, float64(y)*s+s/2, s*0.42)
			dc.Fill()
		}
	}
	return dc.Image()
}

// EncodePNG writes the rendered frame as PNG.
func EncodePNG(w io.Writer, f *core.Frame, scale int) error {
	if err := imaging.Encode(w, RenderImage(f, scale), imaging.PNG); err != nil {
		return fmt.Errorf("periph: encode frame: %w", err)
	}
	return nil
}

// SaveImage writes the rendered frame to path; the format follows the
// file extension.
func SaveImage(path string, f *core.Frame, scale int) error {
	if err := imaging.Save(RenderImage(f, scale), path); err != nil {
		return fmt.Errorf("periph: save frame %s: %w", path, err)
	}
	return nil
}
