package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/ledsnake/internal/core"
)

// offColor is how an unlit LED is drawn.
const offColor = "#202020"

// cellWidth is the number of terminal columns per LED; two spaces make a
// roughly square cell.
const cellWidth = 2

// ledStyle returns the style for a run of LEDs lit with c.
func ledStyle(c core.Color) lipgloss.Style {
	bg := offColor
	if c != core.ColorBlack {
		bg = c.Hex()
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(bg))
}

// RenderFrame converts an LED frame to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderFrame(f *core.Frame) string {
	var sb strings.Builder
	sb.Grow(f.Width()*f.Height()*cellWidth + f.Height())

	styles := make(map[core.Color]lipgloss.Style)

	for y := 0; y < f.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < f.Width() {
			start := f.Get(x, y)
			n := 0
			for x < f.Width() && f.Get(x, y) == start {
				n++
				x++
			}

			style, ok := styles[start]
			if !ok {
				style = ledStyle(start)
				styles[start] = style
			}
			sb.WriteString(style.Render(strings.Repeat(" ", n*cellWidth)))
		}
	}
	return sb.String()
}
