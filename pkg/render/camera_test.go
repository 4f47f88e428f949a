package render

import (
	"math"
	"testing"

	"github.com/taigrr/mugshot/pkg/math3d"
)

func vecClose(a, b math3d.Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func TestCameraDefaults(t *testing.T) {
	c := NewCamera()

	if got := c.Position(); got != math3d.V3(0, 0, 3) {
		t.Errorf("position = %v, want (0, 0, 3)", got)
	}
	if got, want := c.FOV(), 45*math.Pi/180; math.Abs(got-want) > 1e-12 {
		t.Errorf("fov = %v, want %v", got, want)
	}
	if c.Projection() != Perspective {
		t.Error("default projection should be perspective")
	}
	if got := c.Speed(); got != 2.5 {
		t.Errorf("speed = %v, want 2.5", got)
	}
}

func TestFOVClamp(t *testing.T) {
	c := NewCamera()

	c.SetFOV(90 * math.Pi / 180)
	if got, want := c.FOV(), 45*math.Pi/180; math.Abs(got-want) > 1e-12 {
		t.Errorf("fov after wide set = %v, want clamp at %v", got, want)
	}

	c.SetFOV(0.001)
	if got, want := c.FOV(), 1*math.Pi/180; math.Abs(got-want) > 1e-12 {
		t.Errorf("fov after narrow set = %v, want clamp at %v", got, want)
	}
}

func TestZoomBy(t *testing.T) {
	c := NewCamera()

	c.ZoomBy(10)
	if got, want := c.FOV(), 35*math.Pi/180; math.Abs(got-want) > 1e-12 {
		t.Errorf("fov after zoom in = %v, want %v", got, want)
	}

	c.ZoomBy(-100)
	if got, want := c.FOV(), 45*math.Pi/180; math.Abs(got-want) > 1e-12 {
		t.Errorf("fov after zoom out = %v, want clamp at %v", got, want)
	}

	c.ZoomBy(1000)
	if got, want := c.FOV(), 1*math.Pi/180; math.Abs(got-want) > 1e-12 {
		t.Errorf("fov after extreme zoom = %v, want clamp at %v", got, want)
	}
}

func TestAdjustSpeedFloor(t *testing.T) {
	c := NewCamera()

	c.AdjustSpeed(-100)
	if c.SpeedScale != 0.1 {
		t.Errorf("speed scale = %v, want floor 0.1", c.SpeedScale)
	}
	if got := c.Speed(); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("speed = %v, want 0.25", got)
	}

	c.AdjustSpeed(5)
	if got := c.SpeedScale; math.Abs(got-0.6) > 1e-12 {
		t.Errorf("speed scale = %v, want 0.6", got)
	}
}

func TestPitchClamp(t *testing.T) {
	c := NewCamera()

	c.SetRotation(0, math.Pi)
	if got := c.Pitch(); got != maxPitch {
		t.Errorf("pitch = %v, want clamp at %v", got, maxPitch)
	}

	c.Rotate(0, -10)
	if got := c.Pitch(); got != -maxPitch {
		t.Errorf("pitch = %v, want clamp at %v", got, -maxPitch)
	}
}

func TestCameraBasis(t *testing.T) {
	c := NewCamera()

	if got := c.Forward(); !vecClose(got, math3d.V3(0, 0, -1), 1e-12) {
		t.Errorf("forward = %v, want (0, 0, -1)", got)
	}
	if got := c.Right(); !vecClose(got, math3d.V3(1, 0, 0), 1e-12) {
		t.Errorf("right = %v, want (1, 0, 0)", got)
	}
	if got := c.Up(); !vecClose(got, math3d.V3(0, 1, 0), 1e-12) {
		t.Errorf("up = %v, want (0, 1, 0)", got)
	}
}

func TestCameraMovement(t *testing.T) {
	c := NewCamera()

	c.MoveForward(2)
	if got := c.Position(); !vecClose(got, math3d.V3(0, 0, 1), 1e-12) {
		t.Errorf("after forward: %v, want (0, 0, 1)", got)
	}
	c.MoveRight(1.5)
	if got := c.Position(); !vecClose(got, math3d.V3(1.5, 0, 1), 1e-12) {
		t.Errorf("after strafe: %v, want (1.5, 0, 1)", got)
	}
	c.MoveUp(-1)
	if got := c.Position(); !vecClose(got, math3d.V3(1.5, -1, 1), 1e-12) {
		t.Errorf("after descend: %v, want (1.5, -1, 1)", got)
	}
}

func TestLookAtPointsForwardAtTarget(t *testing.T) {
	tests := []struct {
		name   string
		target math3d.Vec3
	}{
		{"down -Z", math3d.V3(0, 0, -10)},
		{"along +X", math3d.V3(10, 0, 0)},
		{"along -X", math3d.V3(-10, 0, 0)},
		{"up and back", math3d.V3(0, 5, 5)},
		{"diagonal", math3d.V3(3, -2, -4)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCamera()
			c.SetPosition(math3d.Zero3())
			c.LookAt(tc.target)

			want := tc.target.Normalize()
			if got := c.Forward(); !vecClose(got, want, 1e-9) {
				t.Errorf("forward = %v, want %v", got, want)
			}
		})
	}
}

func TestWorldToScreen(t *testing.T) {
	c := NewCamera()
	c.SetPosition(math3d.V3(0, 0, 10))
	c.LookAt(math3d.Zero3())
	c.SetAspect(1)

	t.Run("center", func(t *testing.T) {
		x, y, visible := c.WorldToScreen(math3d.Zero3(), 100, 100)
		if !visible {
			t.Fatal("origin should be visible")
		}
		if math.Abs(x-50) > 1e-6 || math.Abs(y-50) > 1e-6 {
			t.Errorf("projected to (%v, %v), want (50, 50)", x, y)
		}
	})

	t.Run("behind camera", func(t *testing.T) {
		if _, _, visible := c.WorldToScreen(math3d.V3(0, 0, 20), 100, 100); visible {
			t.Error("point behind the camera should not be visible")
		}
	})

	t.Run("off to the side", func(t *testing.T) {
		if _, _, visible := c.WorldToScreen(math3d.V3(100, 0, 0), 100, 100); visible {
			t.Error("point far outside the view cone should not be visible")
		}
	})
}

func TestToggleProjection(t *testing.T) {
	c := NewCamera()

	if got := c.ToggleProjection(); got != Orthographic {
		t.Fatalf("first toggle = %v, want orthographic", got)
	}
	if c.Projection() != Orthographic {
		t.Error("projection should be orthographic after toggle")
	}
	if got := c.ToggleProjection(); got != Perspective {
		t.Fatalf("second toggle = %v, want perspective", got)
	}
}

// The orthographic volume is a fixed -10..10 square; changing the aspect
// ratio must not move projected points.
func TestOrthographicIgnoresAspect(t *testing.T) {
	c := NewCamera()
	c.SetProjection(Orthographic)

	p := math3d.V3(5, 0, 0)
	x1, y1, vis1 := c.WorldToScreen(p, 100, 100)
	c.SetAspect(2)
	x2, y2, vis2 := c.WorldToScreen(p, 100, 100)

	if !vis1 || !vis2 {
		t.Fatal("point should stay visible in both aspect ratios")
	}
	if x1 != x2 || y1 != y2 {
		t.Errorf("projection moved from (%v, %v) to (%v, %v) with aspect change", x1, y1, x2, y2)
	}
	if math.Abs(x1-75) > 1e-9 {
		t.Errorf("x = %v, want 75 for a point at half the ortho extent", x1)
	}
}

func TestCameraMatrixInvalidation(t *testing.T) {
	c := NewCamera()

	x1, _, _ := c.WorldToScreen(math3d.Zero3(), 100, 100)
	c.SetPosition(math3d.V3(1, 0, 3))
	x2, _, _ := c.WorldToScreen(math3d.Zero3(), 100, 100)

	if x1 != 50 {
		t.Errorf("centered camera projected origin to x=%v, want 50", x1)
	}
	if x2 >= x1 {
		t.Errorf("after moving right the origin should project left of center, got x=%v", x2)
	}
}
