package render

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
)

// WrapMode controls texture coordinates outside [0, 1).
type WrapMode int

const (
	// WrapRepeat tiles the texture.
	WrapRepeat WrapMode = iota
	// WrapClamp pins coordinates to the edge texels.
	WrapClamp
)

// FilterMode controls how texels are sampled.
type FilterMode int

const (
	// FilterBilinear blends the four nearest texels.
	FilterBilinear FilterMode = iota
	// FilterNearest picks the single nearest texel.
	FilterNearest
)

// Texture is an image prepared for sampling. Textures repeat and filter
// bilinearly unless configured otherwise.
type Texture struct {
	Width  int
	Height int
	Pixels []Color
	Wrap   WrapMode
	Filter FilterMode
}

// LoadTexture reads and decodes an image file.
func LoadTexture(path string) (*Texture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	return TextureFromImage(img), nil
}

// TextureFromImage copies an image into sampleable form.
func TextureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	t := newTexture(bounds.Dx(), bounds.Dy())
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			t.Pixels[i] = Color{
				R: uint8(r >> 8),
				G: uint8(g >> 8),
				B: uint8(b >> 8),
				A: uint8(a >> 8),
			}
			i++
		}
	}
	return t
}

// NewCheckerTexture builds a two-color checkerboard with square cells.
func NewCheckerTexture(width, height, cell int, a, b Color) *Texture {
	if cell < 1 {
		cell = 1
	}
	t := newTexture(width, height)
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			t.Pixels[y*t.Width+x] = c
		}
	}
	return t
}

// NewGradientTexture builds a vertical gradient from top to bottom.
func NewGradientTexture(width, height int, top, bottom Color) *Texture {
	t := newTexture(width, height)
	for y := 0; y < t.Height; y++ {
		frac := 0.0
		if t.Height > 1 {
			frac = float64(y) / float64(t.Height-1)
		}
		c := lerpColor(top, bottom, frac)
		for x := 0; x < t.Width; x++ {
			t.Pixels[y*t.Width+x] = c
		}
	}
	return t
}

func newTexture(width, height int) *Texture {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// Sample returns the texture color at (u, v). V grows upward, so v=0 is
// the bottom of the image; image rows grow downward, hence the flip.
func (t *Texture) Sample(u, v float64) Color {
	u = t.wrapCoord(u)
	v = 1 - t.wrapCoord(v)

	if t.Filter == FilterNearest {
		return t.nearest(u, v)
	}
	return t.bilinear(u, v)
}

func (t *Texture) wrapCoord(c float64) float64 {
	switch t.Wrap {
	case WrapClamp:
		if c < 0 {
			return 0
		}
		if c > 1 {
			return 1
		}
		return c
	default:
		c -= math.Floor(c)
		return c
	}
}

func (t *Texture) nearest(u, v float64) Color {
	x := int(u * float64(t.Width))
	y := int(v * float64(t.Height))
	if x >= t.Width {
		x = t.Width - 1
	}
	if y >= t.Height {
		y = t.Height - 1
	}
	return t.Pixels[y*t.Width+x]
}

func (t *Texture) bilinear(u, v float64) Color {
	fx := u*float64(t.Width) - 0.5
	fy := v*float64(t.Height) - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	c00 := t.texel(x0, y0)
	c10 := t.texel(x0+1, y0)
	c01 := t.texel(x0, y0+1)
	c11 := t.texel(x0+1, y0+1)

	top := lerpColor(c00, c10, tx)
	bottom := lerpColor(c01, c11, tx)
	return lerpColor(top, bottom, ty)
}

// texel reads pixel (x, y) honoring the wrap mode.
func (t *Texture) texel(x, y int) Color {
	switch t.Wrap {
	case WrapClamp:
		x = clampInt(x, 0, t.Width-1)
		y = clampInt(y, 0, t.Height-1)
	default:
		x = modInt(x, t.Width)
		y = modInt(y, t.Height)
	}
	return t.Pixels[y*t.Width+x]
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func modInt(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
