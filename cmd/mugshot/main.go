// mugshot - Terminal Mug Still Life
// Renders a textured coffee mug scene (or a GLB model) in your terminal
// with a free-flying camera over a software rasterizer.
//
// Controls:
//
//	W/A/S/D     - Move forward/left/back/right
//	Q/E         - Move down/up
//	Arrow keys  - Look around
//	Mouse drag  - Look around
//	Scroll      - Zoom and adjust movement speed
//	P           - Toggle perspective/orthographic projection
//	X           - Toggle wireframe mode (x-ray)
//	Space       - Pause or resume the turntable
//	?           - Toggle HUD overlay (FPS, scene name, triangle count)
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/mugshot/pkg/math3d"
	"github.com/taigrr/mugshot/pkg/models"
	"github.com/taigrr/mugshot/pkg/render"
	"github.com/taigrr/mugshot/pkg/scene"
)

var (
	targetFPS    = flag.Int("fps", 60, "Target FPS")
	scenePath    = flag.String("scene", "", "Scene layout TOML file (default: built-in layout)")
	exportPath   = flag.String("export", "", "Write the scene to a GLB file and exit")
	snapshotPath = flag.String("snapshot", "", "Render one frame to a PNG file and exit")
	outWidth     = flag.Int("width", 800, "Snapshot width in pixels")
	outHeight    = flag.Int("height", 600, "Snapshot height in pixels")
	wireframe    = flag.Bool("wireframe", false, "Start in wireframe mode")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "mugshot - Terminal Mug Still Life\n\n")
		fmt.Fprintf(os.Stderr, "Usage: mugshot [options] [model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Without a model argument, mugshot renders its built-in mug scene.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  W/A/S/D     - Move camera\n")
		fmt.Fprintf(os.Stderr, "  Q/E         - Move down/up\n")
		fmt.Fprintf(os.Stderr, "  Arrows      - Look around\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Look around\n")
		fmt.Fprintf(os.Stderr, "  Scroll      - Zoom and adjust speed\n")
		fmt.Fprintf(os.Stderr, "  P           - Toggle projection\n")
		fmt.Fprintf(os.Stderr, "  X           - Toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  Space       - Pause turntable\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Turntable spins the scene about Y, springing the spin velocity toward
// its target so pausing and resuming never snaps.
type Turntable struct {
	Angle    float64
	velocity float64
	velAccel float64 // internal spring velocity
	spring   harmonica.Spring
	rate     float64
	paused   bool
}

// NewTurntable creates a turntable completing one revolution every 20
// seconds at the given frame rate.
func NewTurntable(fps int) *Turntable {
	return &Turntable{
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
		rate:   2 * math.Pi / (20 * float64(fps)),
	}
}

// Update advances the angle and springs the velocity toward the full
// rate, or toward zero while paused.
func (t *Turntable) Update() {
	t.Angle += t.velocity

	target := t.rate
	if t.paused {
		target = 0
	}
	t.velocity, t.velAccel = t.spring.Update(t.velocity, t.velAccel, target)
}

// Toggle pauses or resumes the spin.
func (t *Turntable) Toggle() {
	t.paused = !t.paused
}

// Paused reports whether the turntable is stopped or winding down.
func (t *Turntable) Paused() bool {
	return t.paused
}

// RenderMode controls how the scene is drawn
type RenderMode int

const (
	RenderModeTextured  RenderMode = iota // Textured with Phong shading
	RenderModeWireframe                   // Wireframe only
)

// ViewState holds all view-related settings (UI state, not library code)
type ViewState struct {
	RenderMode RenderMode
	ShowHUD    bool
}

// NewViewState creates default view state
func NewViewState() *ViewState {
	return &ViewState{ShowHUD: true}
}

// HUD renders an overlay with scene info and controls
type HUD struct {
	title     string
	triCount  int
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a new HUD
func NewHUD(title string, triCount int) *HUD {
	return &HUD{
		title:    title,
		triCount: triCount,
		fpsTime:  time.Now(),
	}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Render draws the HUD overlay directly to the terminal
func (h *HUD) Render(width, height int, viewState *ViewState, camera *render.Camera) {
	// ANSI escape codes for positioning and styling
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		dim       = "\x1b[2m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgYellow  = "\x1b[93m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)

	// Helper to position cursor
	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows (so toggling off works)
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)

	// If HUD is disabled, we're done (lines already cleared)
	if !viewState.ShowHUD {
		return
	}

	// Top left: FPS
	fpsStr := fmt.Sprintf("%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)
	fmt.Print(fpsStr)

	// Top middle: scene or model name
	titleStr := fmt.Sprintf("%s%s%s %s %s", bold, bgBlack, fgWhite, h.title, reset)
	titleCol := max((width-len(h.title)-2)/2, 1)
	fmt.Print(moveTo(1, titleCol) + titleStr)

	// Top right: triangle count
	triStr := fmt.Sprintf("%s%s%s %d tris %s", bgBlack, fgCyan, bold, h.triCount, reset)
	triCol := max(width-12, 1)
	fmt.Print(moveTo(1, triCol) + triStr)

	// Bottom: mode checkboxes, projection, and speed scale
	checkWire := "[ ]"
	if viewState.RenderMode == RenderModeWireframe {
		checkWire = "[✓]"
	}
	proj := "Perspective"
	if camera.Projection() == render.Orthographic {
		proj = "Orthographic"
	}
	modeStr := fmt.Sprintf("%s%s %s X-Ray (wireframe)  %s  %.1fx speed %s",
		bgBlack, fgWhite, checkWire, proj, camera.SpeedScale, reset)
	fmt.Print(moveTo(height, 1) + modeStr)

	// Turntable hint (right side of bottom)
	hint := fmt.Sprintf("%s%s%s Space: pause spin %s", bgBlack, dim, fgYellow, reset)
	hintCol := max(width-20, 1)
	fmt.Print(moveTo(height, hintCol) + hint)
}

// moveAxes tracks held movement keys. Values decay each frame because
// key release events are unreliable in some terminals.
type moveAxes struct {
	forward, right, up float64
}

func (a *moveAxes) decay() {
	a.forward *= 0.9
	a.right *= 0.9
	a.up *= 0.9
}

// lookAxes tracks held arrow keys for keyboard look.
type lookAxes struct {
	yaw, pitch float64
}

func (a *lookAxes) decay() {
	a.yaw *= 0.9
	a.pitch *= 0.9
}

// viewTarget is what the viewer draws each frame: the built-in scene, or
// a single external model lit by the scene's light rig.
type viewTarget struct {
	scene   *scene.Scene    // always set; provides lights and background
	model   *models.Mesh    // replaces the scene's objects when non-nil
	texture *render.Texture // external model texture
	title   string
	tris    int
}

func (v *viewTarget) draw(r *render.Rasterizer, turn math3d.Mat4, lights render.Lighting) {
	if v.model != nil {
		r.DrawMeshPhong(v.model, turn, v.texture, render.RGB(200, 200, 200), lights)
		return
	}
	v.scene.Draw(r, turn, lights)
}

func (v *viewTarget) drawWireframe(r *render.Rasterizer, turn math3d.Mat4) {
	wire := render.RGB(0, 255, 128)
	r.DrawGrid(10, 1, render.MultiplyColor(wire, 0.2))
	if v.model != nil {
		r.DrawMeshWireframe(v.model, turn, wire)
		return
	}
	v.scene.DrawWireframe(r, turn, wire)
}

// loadModel loads an external GLB model, centers it at the origin, and
// scales it to fit a two-unit box.
func loadModel(path string) (*models.Mesh, *render.Texture, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".glb" && ext != ".gltf" {
		return nil, nil, fmt.Errorf("unsupported format: %s (use .glb)", ext)
	}

	mesh, img, err := models.LoadGLBWithTexture(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load model: %w", err)
	}

	var texture *render.Texture
	if img != nil {
		texture = render.TextureFromImage(img)
	} else {
		texture = render.NewCheckerTexture(64, 64, 8, render.RGB(200, 200, 200), render.RGB(100, 100, 100))
	}

	// Center and scale model
	mesh.CalculateBounds()
	center := mesh.Center()
	size := mesh.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if maxDim > 0 {
		s := 2.0 / maxDim
		mesh.Transform(math3d.Scale(math3d.V3(s, s, s)).Mul(math3d.Translate(center.Scale(-1))))
	}

	return mesh, texture, nil
}

// writeSnapshot renders one frame off-screen and saves it as a PNG.
func writeSnapshot(target *viewTarget, width, height int, path string, wire bool) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("snapshot size must be positive, got %dx%d", width, height)
	}

	fb := render.NewFramebuffer(width, height)
	camera := render.NewCamera()
	camera.SetAspect(float64(width) / float64(height))

	rasterizer := render.NewRasterizer(camera, fb)
	rasterizer.DoubleSided = true

	fb.Clear(target.scene.Background)
	rasterizer.ClearDepth()

	if wire {
		target.drawWireframe(rasterizer, math3d.Identity())
	} else {
		target.draw(rasterizer, math3d.Identity(), target.scene.Lighting(camera.Position()))
	}

	if err := fb.SavePNG(path); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	fmt.Printf("Saved %dx%d snapshot to %s\n", width, height, path)
	return nil
}

func run(modelPath string) error {
	cfg := scene.DefaultConfig()
	if *scenePath != "" {
		var err error
		cfg, err = scene.Load(*scenePath)
		if err != nil {
			return fmt.Errorf("load scene: %w", err)
		}
	}

	stillLife, err := scene.Build(cfg)
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}

	if *exportPath != "" {
		meshes := stillLife.ExportMeshes()
		if err := models.ExportGLB(*exportPath, meshes); err != nil {
			return fmt.Errorf("export scene: %w", err)
		}
		fmt.Printf("Exported %d meshes to %s\n", len(meshes), *exportPath)
		return nil
	}

	target := &viewTarget{scene: stillLife, title: "mug scene"}
	for _, o := range stillLife.Objects {
		target.tris += o.Mesh.TriangleCount()
	}
	if modelPath != "" {
		mesh, texture, err := loadModel(modelPath)
		if err != nil {
			return err
		}
		target.model = mesh
		target.texture = texture
		target.title = filepath.Base(modelPath)
		target.tris = mesh.TriangleCount()
		fmt.Printf("Loaded: %s (%d vertices, %d triangles)\n", target.title, mesh.VertexCount(), mesh.TriangleCount())
	}

	if *snapshotPath != "" {
		return writeSnapshot(target, *outWidth, *outHeight, *snapshotPath, *wireframe)
	}

	fps := max(*targetFPS, 1)

	// Create terminal
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	// Create renderer
	termRenderer := render.NewTerminalRenderer(term, width, height)
	fbWidth, fbHeight := termRenderer.FramebufferSize()
	fb := render.NewFramebuffer(fbWidth, fbHeight)

	// Create camera
	camera := render.NewCamera()
	camera.SetAspect(float64(fbWidth) / float64(fbHeight))

	rasterizer := render.NewRasterizer(camera, fb)
	// The cylinder is open and the ground is a single quad, so both faces
	// of every triangle stay visible.
	rasterizer.DoubleSided = true

	hud := NewHUD(target.title, target.tris)

	turntable := NewTurntable(fps)
	viewState := NewViewState()
	if *wireframe {
		viewState.RenderMode = RenderModeWireframe
	}

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Input state
	var move moveAxes
	var look lookAxes

	// Arrow keys turn at lookSpeed radians per second; a cell of mouse
	// drag turns by dragStep.
	const (
		lookSpeed = math.Pi / 2
		dragStep  = 1.5 * math.Pi / 180
	)

	// Mouse state
	var mouseDown bool
	var lastMouseX, lastMouseY int

	events := term.Events()

	// Main loop
	targetDuration := time.Second / time.Duration(fps)
	lastFrame := time.Now()

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		// Drain pending input before stepping the frame. Camera,
		// framebuffer, and view state only ever change on this goroutine.
	drain:
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					cancel()
					break drain
				}
				switch ev := ev.(type) {
				case uv.WindowSizeEvent:
					width, height = ev.Width, ev.Height
					term.Erase()
					term.Resize(width, height)
					termRenderer = render.NewTerminalRenderer(term, width, height)
					fbWidth, fbHeight = termRenderer.FramebufferSize()
					fb = render.NewFramebuffer(fbWidth, fbHeight)
					rasterizer = render.NewRasterizer(camera, fb)
					rasterizer.DoubleSided = true
					camera.SetAspect(float64(fbWidth) / float64(fbHeight))

				case uv.KeyPressEvent:
					switch {
					case ev.MatchString("escape"):
						cancel()
					case ev.MatchString("ctrl+c"):
						cancel()
					case ev.MatchString("w"):
						move.forward = 1
					case ev.MatchString("s"):
						move.forward = -1
					case ev.MatchString("a"):
						move.right = -1
					case ev.MatchString("d"):
						move.right = 1
					case ev.MatchString("q"):
						move.up = -1
					case ev.MatchString("e"):
						move.up = 1
					case ev.MatchString("up"):
						look.pitch = 1
					case ev.MatchString("down"):
						look.pitch = -1
					case ev.MatchString("left"):
						look.yaw = 1
					case ev.MatchString("right"):
						look.yaw = -1
					case ev.MatchString("p"):
						camera.ToggleProjection()
					case ev.MatchString("x"):
						// Toggle wireframe mode
						if viewState.RenderMode == RenderModeWireframe {
							viewState.RenderMode = RenderModeTextured
						} else {
							viewState.RenderMode = RenderModeWireframe
						}
					case ev.MatchString("space"):
						turntable.Toggle()
					case ev.MatchString("?"), ev.MatchString("shift+/"):
						// Toggle HUD
						viewState.ShowHUD = !viewState.ShowHUD
					}

				case uv.KeyReleaseEvent:
					switch {
					case ev.MatchString("w"), ev.MatchString("s"):
						move.forward = 0
					case ev.MatchString("a"), ev.MatchString("d"):
						move.right = 0
					case ev.MatchString("q"), ev.MatchString("e"):
						move.up = 0
					case ev.MatchString("up"), ev.MatchString("down"):
						look.pitch = 0
					case ev.MatchString("left"), ev.MatchString("right"):
						look.yaw = 0
					}

				case uv.MouseClickEvent:
					mouseDown = true
					lastMouseX, lastMouseY = ev.X, ev.Y

				case uv.MouseReleaseEvent:
					mouseDown = false

				case uv.MouseMotionEvent:
					if mouseDown {
						dx := ev.X - lastMouseX
						dy := ev.Y - lastMouseY
						// Dragging right turns right, dragging down looks down.
						camera.Rotate(-float64(dx)*dragStep, -float64(dy)*dragStep)
						lastMouseX, lastMouseY = ev.X, ev.Y
					}

				case uv.MouseWheelEvent:
					switch ev.Button {
					case uv.MouseWheelUp:
						camera.ZoomBy(1)
						camera.AdjustSpeed(1)
					case uv.MouseWheelDown:
						camera.ZoomBy(-1)
						camera.AdjustSpeed(-1)
					}
				}
			default:
				break drain
			}
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now

		if dt > 0.1 {
			dt = 0.1
		}

		// Apply held movement keys and decay them (key release events unreliable)
		dist := camera.Speed() * dt
		if move.forward != 0 {
			camera.MoveForward(move.forward * dist)
		}
		if move.right != 0 {
			camera.MoveRight(move.right * dist)
		}
		if move.up != 0 {
			// Q/E climb at a fixed rate; the speed scale applies to WASD only.
			camera.MoveUp(move.up * dt)
		}
		if look.yaw != 0 || look.pitch != 0 {
			camera.Rotate(look.yaw*lookSpeed*dt, look.pitch*lookSpeed*dt)
		}
		move.decay()
		look.decay()

		// Update turntable spring (harmonica handles timing internally)
		turntable.Update()

		// The camera may have moved, so the cached frustum is stale.
		rasterizer.InvalidateFrustum()

		// Render
		fb.Clear(stillLife.Background)
		rasterizer.ClearDepth()

		turn := math3d.RotateY(turntable.Angle)
		lights := stillLife.Lighting(camera.Position())

		switch viewState.RenderMode {
		case RenderModeWireframe:
			target.drawWireframe(rasterizer, turn)
		default:
			target.draw(rasterizer, turn, lights)
		}

		// Display
		termRenderer.Render(fb)
		if err := termRenderer.Flush(); err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		// HUD overlay (always update FPS, render clears lines when HUD off)
		hud.UpdateFPS()
		hud.Render(width, height, viewState, camera)

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
