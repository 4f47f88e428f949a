// Package render draws meshes into an RGBA framebuffer with a software
// rasterizer and presents the result as terminal half-block cells.
package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// Framebuffer is a dense RGBA pixel grid. Pixel (0,0) is the top-left
// corner.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []Color
}

// NewFramebuffer allocates a width x height buffer of transparent black.
func NewFramebuffer(width, height int) *Framebuffer {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// Clear fills the buffer with one color.
func (f *Framebuffer) Clear(c Color) {
	if len(f.Pixels) == 0 {
		return
	}
	f.Pixels[0] = c
	for filled := 1; filled < len(f.Pixels); filled *= 2 {
		copy(f.Pixels[filled:], f.Pixels[:filled])
	}
}

// SetPixel writes a pixel, ignoring coordinates outside the buffer.
func (f *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return
	}
	f.Pixels[y*f.Width+x] = c
}

// GetPixel reads a pixel; out-of-range coordinates return zero.
func (f *Framebuffer) GetPixel(x, y int) Color {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return Color{}
	}
	return f.Pixels[y*f.Width+x]
}

// DrawLine draws a line with Bresenham's algorithm, clipped per pixel.
func (f *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		f.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// ToImage copies the buffer into an image.RGBA.
func (f *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			img.SetRGBA(x, y, f.Pixels[y*f.Width+x])
		}
	}
	return img
}

// SavePNG writes the buffer to a PNG file.
func (f *Framebuffer) SavePNG(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()
	if err := png.Encode(file, f.ToImage()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
