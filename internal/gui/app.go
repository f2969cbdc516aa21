package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/linkage/internal/dynamo"
	"github.com/san-kum/linkage/internal/render"
	"github.com/san-kum/linkage/internal/sim"
)

// Theme Colors (Monochrome)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColError   = rl.NewColor(220, 60, 60, 255)
)

const maxTelemetry = 240

type App struct {
	Sim       *sim.Simulator
	Rebuild   func() (*dynamo.State, error)
	Surface   *Surface
	Renderer  *render.Renderer
	Width     int
	Height    int
	Running   bool
	Err       error
	Telemetry []float64
}

func NewApp(s *sim.Simulator, rebuild func() (*dynamo.State, error), width, height int) *App {
	surface := NewSurface()
	r := render.New(surface)
	s.SetRenderer(r)
	return &App{
		Sim:       s,
		Rebuild:   rebuild,
		Surface:   surface,
		Renderer:  r,
		Width:     width,
		Height:    height,
		Running:   true,
		Telemetry: make([]float64, 0, maxTelemetry),
	}
}

// Run opens a width x height window and steps the simulator once per
// frame until the window closes. The window's frame pacing is the clock.
func Run(s *sim.Simulator, rebuild func() (*dynamo.State, error), width, height, fps int) error {
	rl.InitWindow(int32(width), int32(height), "linkage")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(rl.KeyQ)

	app := NewApp(s, rebuild, width, height)
	app.RunLoop()
	return app.Err
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		step := a.Update()
		a.Draw(step)
	}
}

// Update handles input and reports whether this frame should tick.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		if st, err := a.Rebuild(); err != nil {
			a.Err = err
		} else {
			a.Sim.Reset(st)
			a.Err = nil
			a.Telemetry = a.Telemetry[:0]
		}
	}
	if a.Err != nil {
		return false
	}
	return a.Running || rl.IsKeyPressed(rl.KeyN)
}

func (a *App) Draw(step bool) {
	rl.BeginDrawing()

	ticked := false
	if step {
		if err := a.Sim.Tick(); err != nil {
			a.Err = err
			a.Running = false
		} else {
			ticked = true
			a.record(a.Sim.State().MaxStrain())
		}
	}
	if !ticked {
		a.Renderer.Render(a.Sim.State())
	}
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) record(v float64) {
	if len(a.Telemetry) == maxTelemetry {
		a.Telemetry = a.Telemetry[1:]
	}
	a.Telemetry = append(a.Telemetry, v)
}

func (a *App) DrawHUD() {
	rl.DrawText("linkage", 20, 20, 20, ColSelect)
	rl.DrawText(fmt.Sprintf("tick %d", a.Sim.State().Tick), 20, 46, 14, ColText)

	status, col := "RUNNING", ColSelect
	switch {
	case a.Err != nil:
		status, col = "FAILED: "+a.Err.Error(), ColError
	case !a.Running:
		status, col = "PAUSED", ColTextDim
	}
	rl.DrawText(status, int32(a.Width)-200, 20, 16, col)

	a.DrawTelemetry()
	rl.DrawText("[SPACE] PAUSE  [N] STEP  [R] RESET  [Q] QUIT", 20, int32(a.Height)-24, 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), int32(a.Width)-80, int32(a.Height)-24, 14, ColTextDim)
}

// DrawTelemetry plots recent max strain as a line strip.
func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := 20, a.Height-100
	width, height := 300, 60

	maxVal := a.Telemetry[0]
	for _, v := range a.Telemetry {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(maxTelemetry))*float32(width)
		py := float32(rectY+height) - float32(val/maxVal)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	rl.DrawText(fmt.Sprintf("strain %.3f", a.Telemetry[len(a.Telemetry)-1]), int32(rectX+width+10), int32(rectY+height-10), 14, ColText)
}
