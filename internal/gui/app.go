// Package gui is a windowed host: it opens a raylib window, steps a scene
// once per frame and draws it in 3D with an orbiting camera.
package gui

import (
	"fmt"
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/hadron/internal/audio"
	"github.com/san-kum/hadron/internal/particle"
	"github.com/san-kum/hadron/internal/scenes"
	"github.com/san-kum/hadron/internal/sim"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColGrid    = rl.NewColor(30, 30, 30, 255)
)

const (
	screenWidth  = 1280
	screenHeight = 720
	// degrees per second
	orbitRate   = 30.0
	maxSubsteps = 8
	maxTrail    = 50
	maxTrailed  = 20
	telemetryN  = 200
)

type Options struct {
	Dt    float64
	Seed  int64
	Sound bool
}

type App struct {
	registry *scenes.Registry
	opts     Options

	Scene      *scenes.Scene
	Camera     rl.Camera3D
	Angle      float64
	Distance   float64
	Running    bool
	AutoRotate bool
	InMenu     bool
	Scenes     []string
	Selected   int

	accumulator float64
	Trails      map[particle.Handle][]rl.Vector3
	Telemetry   []float64
	Stars       []rl.Vector3
	Sound       *audio.Sonifier
}

func initWindow() {
	rl.InitWindow(screenWidth, screenHeight, "hadron")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

func NewApp(r *scenes.Registry, opts Options) *App {
	app := &App{
		registry:   r,
		opts:       opts,
		Scenes:     r.List(),
		Distance:   50,
		InMenu:     true,
		AutoRotate: true,
		Trails:     make(map[particle.Handle][]rl.Vector3),
		Telemetry:  make([]float64, 0, telemetryN),
	}
	app.Camera = rl.NewCamera3D(
		rl.NewVector3(0, 0, float32(app.Distance)),
		rl.NewVector3(0, 0, 0),
		rl.NewVector3(0, 1, 0),
		85.0,
		rl.CameraPerspective,
	)

	rng := rand.New(rand.NewSource(opts.Seed))
	app.Stars = make([]rl.Vector3, 2000)
	for i := range app.Stars {
		app.Stars[i] = rl.NewVector3(
			float32((rng.Float64()-0.5)*1000),
			float32((rng.Float64()-0.5)*1000),
			float32(-500-rng.Float64()*500),
		)
	}

	if opts.Sound {
		s := audio.NewSonifier(1000)
		if err := s.Start(); err != nil {
			fmt.Printf("audio disabled: %v\n", err)
		} else {
			app.Sound = s
		}
	}
	return app
}

// Run opens the window on the scene picker, or straight on scene when it
// is not empty. It blocks until the window closes.
func Run(r *scenes.Registry, scene string, opts Options) error {
	initWindow()
	defer rl.CloseWindow()

	app := NewApp(r, opts)
	defer app.Close()
	if scene != "" {
		if err := app.Load(scene, nil); err != nil {
			return err
		}
	}
	app.RunLoop()
	return nil
}

func (a *App) Close() {
	if a.Sound != nil {
		a.Sound.Stop()
	}
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Load(name string, params scenes.Params) error {
	s, err := a.registry.Get(name, params, a.opts.Seed)
	if err != nil {
		return err
	}
	a.setScene(s)
	return nil
}

func (a *App) setScene(s *scenes.Scene) {
	a.Scene = s
	a.InMenu = false
	a.Running = true
	a.accumulator = 0
	a.Trails = make(map[particle.Handle][]rl.Vector3)
	a.Telemetry = a.Telemetry[:0]
}

func (a *App) Update() {
	if a.InMenu {
		a.updateMenu()
		return
	}

	switch {
	case rl.IsKeyPressed(rl.KeyEscape), rl.IsKeyPressed(rl.KeyTab):
		a.InMenu = true
		return
	case rl.IsKeyPressed(rl.KeySpace):
		a.Scene.Act()
	case rl.IsKeyPressed(rl.KeyP):
		a.Running = !a.Running
	case rl.IsKeyPressed(rl.KeyR):
		a.setScene(a.Scene.Reset())
	case rl.IsKeyPressed(rl.KeyA):
		a.AutoRotate = !a.AutoRotate
	}

	frame := float64(rl.GetFrameTime())
	if rl.IsKeyDown(rl.KeyLeft) {
		a.Angle -= orbitRate * 2 * frame
	}
	if rl.IsKeyDown(rl.KeyRight) {
		a.Angle += orbitRate * 2 * frame
	}
	if rl.IsKeyDown(rl.KeyUp) {
		a.Distance = math.Max(5, a.Distance-30*frame)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		a.Distance = math.Min(500, a.Distance+30*frame)
	}
	if a.AutoRotate {
		a.Angle += orbitRate * frame
	}
	a.Camera.Position = orbit(a.Angle, a.Distance)

	if !a.Running {
		return
	}
	a.accumulator += frame
	for n := 0; a.accumulator >= a.opts.Dt && n < maxSubsteps; n++ {
		a.Scene.World.Step(sim.Real(a.opts.Dt))
		a.accumulator -= a.opts.Dt
	}
	if a.accumulator > a.opts.Dt {
		a.accumulator = 0
	}

	w := a.Scene.World
	if a.Sound != nil {
		a.Sound.OnStep(w, w.Time)
	}
	a.record(w)
}

func (a *App) updateMenu() {
	switch {
	case rl.IsKeyPressed(rl.KeyUp) && a.Selected > 0:
		a.Selected--
	case rl.IsKeyPressed(rl.KeyDown) && a.Selected < len(a.Scenes)-1:
		a.Selected++
	case rl.IsKeyPressed(rl.KeyEnter):
		if err := a.Load(a.Scenes[a.Selected], nil); err != nil {
			fmt.Println(err)
		}
	case rl.IsKeyPressed(rl.KeyEscape) && a.Scene != nil:
		a.InMenu = false
	}
}

// orbit returns the camera position after turning angle degrees about the
// y axis at the given distance from the origin.
func orbit(angle, distance float64) rl.Vector3 {
	rad := angle * math.Pi / 180
	return rl.NewVector3(float32(distance*math.Sin(rad)), 0, float32(distance*math.Cos(rad)))
}

func (a *App) record(w *sim.World) {
	if len(a.Telemetry) == telemetryN {
		copy(a.Telemetry, a.Telemetry[1:])
		a.Telemetry = a.Telemetry[:telemetryN-1]
	}
	a.Telemetry = append(a.Telemetry, float64(w.TotalEnergy()))

	if w.Particles.Len() > maxTrailed {
		return
	}
	w.Particles.Each(func(h particle.Handle, p *particle.Particle) {
		if !p.IsAlive() {
			delete(a.Trails, h)
			return
		}
		trail := append(a.Trails[h], toRL(p.Position()))
		if len(trail) > maxTrail {
			trail = trail[1:]
		}
		a.Trails[h] = trail
	})
}
