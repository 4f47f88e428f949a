package render

import (
	"math"

	"github.com/taigrr/mugshot/pkg/math3d"
)

// Projection selects how the camera maps view space to clip space.
type Projection int

const (
	Perspective Projection = iota
	Orthographic
)

// Camera zoom limits, in degrees of vertical field of view.
const (
	minFOVDeg = 1
	maxFOVDeg = 45
)

const maxPitch = 89 * math.Pi / 180

// Camera is a free-flying Euler camera. View and projection matrices are
// cached and recomputed lazily when something they depend on changes.
type Camera struct {
	position math3d.Vec3
	yaw      float64 // radians around Y; 0 looks down -Z
	pitch    float64 // radians, clamped to just under straight up/down

	projection Projection
	fov        float64 // vertical field of view, radians
	orthoSize  float64 // half-extent of the orthographic volume
	aspect     float64
	near       float64
	far        float64

	// MovementSpeed is world units per second; SpeedScale adjusts it at
	// runtime from the mouse wheel and never drops below 0.1.
	MovementSpeed float64
	SpeedScale    float64
	// Sensitivity converts mouse movement units to radians.
	Sensitivity float64

	viewDirty  bool
	projDirty  bool
	viewMat    math3d.Mat4
	projMat    math3d.Mat4
	viewProj   math3d.Mat4
	vpDirty    bool
}

// NewCamera returns a camera at (0,0,3) looking down -Z with a 45 degree
// field of view, 4:3 aspect, and 0.1..100 clip range. The orthographic
// volume spans -10..10 on both axes regardless of aspect.
func NewCamera() *Camera {
	return &Camera{
		position:      math3d.V3(0, 0, 3),
		fov:           45 * math.Pi / 180,
		orthoSize:     10,
		aspect:        800.0 / 600.0,
		near:          0.1,
		far:           100,
		MovementSpeed: 2.5,
		SpeedScale:    1,
		Sensitivity:   0.1 * math.Pi / 180,
		viewDirty:     true,
		projDirty:     true,
		vpDirty:       true,
	}
}

// Position returns the camera's world position.
func (c *Camera) Position() math3d.Vec3 {
	return c.position
}

// SetPosition moves the camera.
func (c *Camera) SetPosition(p math3d.Vec3) {
	c.position = p
	c.viewDirty = true
	c.vpDirty = true
}

// SetRotation sets yaw and pitch directly, clamping pitch.
func (c *Camera) SetRotation(yaw, pitch float64) {
	c.yaw = yaw
	c.pitch = clampPitch(pitch)
	c.viewDirty = true
	c.vpDirty = true
}

// Rotate adjusts yaw and pitch by deltas already converted to radians.
func (c *Camera) Rotate(dyaw, dpitch float64) {
	c.SetRotation(c.yaw+dyaw, c.pitch+dpitch)
}

// Yaw returns the camera yaw in radians.
func (c *Camera) Yaw() float64 { return c.yaw }

// Pitch returns the camera pitch in radians.
func (c *Camera) Pitch() float64 { return c.pitch }

// SetAspect sets the width/height ratio of the perspective projection.
func (c *Camera) SetAspect(aspect float64) {
	if aspect <= 0 {
		return
	}
	c.aspect = aspect
	c.projDirty = true
	c.vpDirty = true
}

// SetClip sets the near and far plane distances.
func (c *Camera) SetClip(near, far float64) {
	c.near = near
	c.far = far
	c.projDirty = true
	c.vpDirty = true
}

// SetFOV sets the vertical field of view in radians.
func (c *Camera) SetFOV(fov float64) {
	c.fov = clampFOV(fov)
	c.projDirty = true
	c.vpDirty = true
}

// FOV returns the vertical field of view in radians.
func (c *Camera) FOV() float64 { return c.fov }

// ZoomBy narrows the field of view by offset degrees (scrolling up zooms
// in). The field of view stays between 1 and 45 degrees.
func (c *Camera) ZoomBy(offset float64) {
	c.SetFOV(c.fov - offset*math.Pi/180)
}

// AdjustSpeed nudges the movement speed scale by 0.1 per wheel unit,
// bottoming out at 0.1.
func (c *Camera) AdjustSpeed(delta float64) {
	c.SpeedScale += delta * 0.1
	if c.SpeedScale < 0.1 {
		c.SpeedScale = 0.1
	}
}

// Speed returns the effective movement speed in units per second.
func (c *Camera) Speed() float64 {
	return c.MovementSpeed * c.SpeedScale
}

// SetProjection switches between perspective and orthographic.
func (c *Camera) SetProjection(p Projection) {
	c.projection = p
	c.projDirty = true
	c.vpDirty = true
}

// ToggleProjection flips to the other projection and returns the new one.
func (c *Camera) ToggleProjection() Projection {
	if c.projection == Perspective {
		c.SetProjection(Orthographic)
	} else {
		c.SetProjection(Perspective)
	}
	return c.projection
}

// Projection returns the active projection kind.
func (c *Camera) Projection() Projection { return c.projection }

// Forward returns the unit view direction.
func (c *Camera) Forward() math3d.Vec3 {
	cp := math.Cos(c.pitch)
	return math3d.V3(
		-math.Sin(c.yaw)*cp,
		math.Sin(c.pitch),
		-math.Cos(c.yaw)*cp,
	)
}

// Right returns the unit vector to the camera's right, parallel to the
// ground plane.
func (c *Camera) Right() math3d.Vec3 {
	return c.Forward().Cross(math3d.Up()).Normalize()
}

// Up returns the camera's unit up vector.
func (c *Camera) Up() math3d.Vec3 {
	return c.Right().Cross(c.Forward()).Normalize()
}

// MoveForward moves along the view direction by dist world units.
func (c *Camera) MoveForward(dist float64) {
	c.SetPosition(c.position.Add(c.Forward().Scale(dist)))
}

// MoveRight strafes by dist world units.
func (c *Camera) MoveRight(dist float64) {
	c.SetPosition(c.position.Add(c.Right().Scale(dist)))
}

// MoveUp moves along the camera's up vector by dist world units.
func (c *Camera) MoveUp(dist float64) {
	c.SetPosition(c.position.Add(c.Up().Scale(dist)))
}

// LookAt orients the camera toward a world-space target.
func (c *Camera) LookAt(target math3d.Vec3) {
	dir := target.Sub(c.position)
	if dir.LenSq() == 0 {
		return
	}
	dir = dir.Normalize()
	c.SetRotation(math.Atan2(-dir.X, -dir.Z), math.Asin(dir.Y))
}

// ViewMatrix returns the world-to-view transform.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		c.viewMat = math3d.RotateX(-c.pitch).
			Mul(math3d.RotateY(-c.yaw)).
			Mul(math3d.Translate(c.position.Negate()))
		c.viewDirty = false
	}
	return c.viewMat
}

// ProjectionMatrix returns the view-to-clip transform for the active
// projection.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		switch c.projection {
		case Orthographic:
			s := c.orthoSize
			c.projMat = math3d.Orthographic(-s, s, -s, s, c.near, c.far)
		default:
			c.projMat = math3d.Perspective(c.fov, c.aspect, c.near, c.far)
		}
		c.projDirty = false
	}
	return c.projMat
}

// ViewProjectionMatrix returns projection * view, cached until either
// matrix changes.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	if c.vpDirty || c.viewDirty || c.projDirty {
		c.viewProj = c.ProjectionMatrix().Mul(c.ViewMatrix())
		c.vpDirty = false
	}
	return c.viewProj
}

// WorldToScreen projects a world point into pixel coordinates for a
// width x height target. The boolean reports whether the point lands
// inside the clip volume.
func (c *Camera) WorldToScreen(p math3d.Vec3, width, height int) (x, y float64, visible bool) {
	clip := c.ViewProjectionMatrix().MulVec4(math3d.V4FromV3(p, 1))
	if clip.W <= 0 {
		return 0, 0, false
	}
	ndcX := clip.X / clip.W
	ndcY := clip.Y / clip.W
	ndcZ := clip.Z / clip.W

	x = (ndcX + 1) * 0.5 * float64(width)
	y = (1 - ndcY) * 0.5 * float64(height)
	visible = ndcX >= -1 && ndcX <= 1 && ndcY >= -1 && ndcY <= 1 && ndcZ >= -1 && ndcZ <= 1
	return x, y, visible
}

func clampPitch(p float64) float64 {
	if p > maxPitch {
		return maxPitch
	}
	if p < -maxPitch {
		return -maxPitch
	}
	return p
}

func clampFOV(fov float64) float64 {
	min := minFOVDeg * math.Pi / 180
	max := maxFOVDeg * math.Pi / 180
	if fov < min {
		return min
	}
	if fov > max {
		return max
	}
	return fov
}
