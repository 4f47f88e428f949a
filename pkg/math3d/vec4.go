package math3d

// Vec4 is a homogeneous 3D point or 4D vector.
type Vec4 struct {
	X, Y, Z, W float64
}

// V4 creates a new Vec4.
func V4(x, y, z, w float64) Vec4 {
	return Vec4{x, y, z, w}
}

// V4FromV3 promotes v to homogeneous coordinates with the given w.
func V4FromV3(v Vec3, w float64) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}

// Vec3 drops the W component.
func (a Vec4) Vec3() Vec3 {
	return Vec3{a.X, a.Y, a.Z}
}

// PerspectiveDivide returns the Vec3 after dividing by W.
// A zero W returns the components unchanged.
func (a Vec4) PerspectiveDivide() Vec3 {
	if a.W == 0 {
		return Vec3{a.X, a.Y, a.Z}
	}
	return Vec3{a.X / a.W, a.Y / a.W, a.Z / a.W}
}

// Add returns a + b.
func (a Vec4) Add(b Vec4) Vec4 {
	return Vec4{a.X + b.X, a.Y + b.Y, a.Z + b.Z, a.W + b.W}
}

// Sub returns a - b.
func (a Vec4) Sub(b Vec4) Vec4 {
	return Vec4{a.X - b.X, a.Y - b.Y, a.Z - b.Z, a.W - b.W}
}

// Scale returns a scaled by s.
func (a Vec4) Scale(s float64) Vec4 {
	return Vec4{a.X * s, a.Y * s, a.Z * s, a.W * s}
}

// Dot returns the dot product of a and b.
func (a Vec4) Dot(b Vec4) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
}

// Lerp interpolates linearly from a to b by t.
func (a Vec4) Lerp(b Vec4, t float64) Vec4 {
	return Vec4{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
		a.W + (b.W-a.W)*t,
	}
}
