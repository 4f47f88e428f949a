package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the framebuffer to terminal cells and places them on the
// screen. Each cell is an upper half block: its foreground carries the
// top pixel row, its background the bottom one, so the framebuffer
// height should be twice the terminal height.
func (f *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < f.Width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(f.GetPixel(col, topY)),
					Bg: rgbaToColor(f.GetPixel(col, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}

// TerminalRenderer presents framebuffers on an ultraviolet terminal.
// Build a fresh one after a resize; it carries no state beyond the
// terminal dimensions.
type TerminalRenderer struct {
	term   *uv.Terminal
	width  int
	height int
}

// NewTerminalRenderer wraps a terminal of the given size in cells.
func NewTerminalRenderer(term *uv.Terminal, width, height int) *TerminalRenderer {
	return &TerminalRenderer{term: term, width: width, height: height}
}

// FramebufferSize returns the pixel dimensions a framebuffer must have
// to fill the terminal: one pixel per column, two per row.
func (t *TerminalRenderer) FramebufferSize() (width, height int) {
	return t.width, t.height * 2
}

// Render writes the framebuffer into the terminal's cell buffer.
func (t *TerminalRenderer) Render(fb *Framebuffer) {
	fb.Draw(t.term, uv.Rect(0, 0, t.width, t.height))
}

// Flush pushes buffered cells to the terminal.
func (t *TerminalRenderer) Flush() error {
	return t.term.Display()
}
