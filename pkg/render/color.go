package render

import "image/color"

// Color is the framebuffer pixel type.
type Color = color.RGBA

// RGB builds an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA builds a color with explicit alpha.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Common colors.
var (
	ColorBlack = RGB(0, 0, 0)
	ColorWhite = RGB(255, 255, 255)
	ColorGreen = RGB(0, 255, 0)
)

// lerpColor blends a toward b by t in [0, 1].
func lerpColor(a, b Color, t float64) Color {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return Color{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
		A: uint8(float64(a.A) + (float64(b.A)-float64(a.A))*t),
	}
}

// MultiplyColor scales a color's channels by a single factor, clamping
// at white.
func MultiplyColor(c Color, factor float64) Color {
	return ModulateColor(c, [3]float64{factor, factor, factor})
}

// ModulateColor multiplies a color by per-channel light values. Values
// above 1 saturate toward white, matching how GL clamps fragment output.
func ModulateColor(c Color, light [3]float64) Color {
	return Color{
		R: clampChannel(float64(c.R) * light[0]),
		G: clampChannel(float64(c.G) * light[1]),
		B: clampChannel(float64(c.B) * light[2]),
		A: c.A,
	}
}

func clampChannel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
