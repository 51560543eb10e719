package gui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/hadron/internal/particle"
	"github.com/san-kum/hadron/internal/sim"
	"github.com/san-kum/hadron/internal/vecmath"
)

func toRL(v vecmath.Vector3) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

// speedShade brightens faster particles.
func speedShade(speed float64) rl.Color {
	val := uint8(math.Min(100+speed*5, 255))
	return rl.NewColor(val, val, val, 255)
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.InMenu {
		a.drawMenu()
		rl.EndDrawing()
		return
	}

	rl.BeginMode3D(a.Camera)
	for _, s := range a.Stars {
		rl.DrawPoint3D(s, ColTextDim)
	}
	rl.DrawGrid(20, 5)
	a.drawWorld(a.Scene.World)
	rl.EndMode3D()

	a.drawHUD(a.Scene.World)
	rl.EndDrawing()
}

func (a *App) drawWorld(w *sim.World) {
	for _, hook := range w.Hooks {
		if box, ok := hook.(*sim.BoundingBox); ok {
			center := toRL(box.Min.Add(box.Max).Scale(0.5))
			size := toRL(box.Max.Sub(box.Min))
			rl.DrawCubeWiresV(center, size, rl.ColorAlpha(rl.Gray, 0.5))
		}
	}

	for _, link := range a.Scene.Links {
		p, ok1 := w.Particles.Get(link[0])
		q, ok2 := w.Particles.Get(link[1])
		if ok1 && ok2 {
			rl.DrawLine3D(toRL(p.Position()), toRL(q.Position()), rl.Gray)
		}
	}

	for _, trail := range a.Trails {
		for i := 1; i < len(trail); i++ {
			alpha := float32(i) / float32(len(trail))
			rl.DrawLine3D(trail[i-1], trail[i], rl.ColorAlpha(ColAccent, alpha*0.6))
		}
	}

	radius := float32(0.5)
	if w.Particles.Len() > 100 {
		radius = 0.2
	}
	w.Particles.Each(func(_ particle.Handle, p *particle.Particle) {
		if !p.IsAlive() {
			return
		}
		speed := float64(p.Velocity().Length())
		rl.DrawSphereEx(toRL(p.Position()), radius, 4, 6, speedShade(speed))
	})
}

func (a *App) drawHUD(w *sim.World) {
	rl.DrawText(a.Scene.Name, 20, 20, 20, ColSelect)
	lines := []string{
		fmt.Sprintf("t      %8.2f s", w.Time),
		fmt.Sprintf("KE     %8.2f", w.KineticEnergy()),
		fmt.Sprintf("PE     %8.2f", w.PotentialEnergy()),
		fmt.Sprintf("alive  %8d / %d", w.AliveCount(), w.Particles.Len()),
		fmt.Sprintf("fps    %8d", rl.GetFPS()),
	}
	for i, l := range lines {
		rl.DrawText(l, 20, int32(50+i*18), 16, ColText)
	}
	if !a.Running {
		rl.DrawText("PAUSED", 20, int32(50+len(lines)*18+10), 16, ColAccent)
	}

	a.drawTelemetry(20, screenHeight-120, 300, 80)
	rl.DrawText("space act  p pause  r reset  a rotate  arrows camera  tab menu", 20, screenHeight-24, 14, ColTextDim)
}

func (a *App) drawTelemetry(x, y, width, height int32) {
	rl.DrawRectangleLines(x, y, width, height, ColGrid)
	if len(a.Telemetry) < 2 {
		return
	}
	lo, hi := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	step := float64(width) / float64(telemetryN-1)
	py := func(v float64) int32 { return y + height - int32((v-lo)/(hi-lo)*float64(height)) }
	for i := 1; i < len(a.Telemetry); i++ {
		rl.DrawLine(x+int32(float64(i-1)*step), py(a.Telemetry[i-1]),
			x+int32(float64(i)*step), py(a.Telemetry[i]), ColAccent)
	}
	rl.DrawText("total energy", x+4, y+4, 12, ColTextDim)
}

func (a *App) drawMenu() {
	rl.DrawText("HADRON", 80, 80, 40, ColSelect)
	rl.DrawText("particle physics playground", 80, 130, 18, ColTextDim)
	for i, name := range a.Scenes {
		col, prefix := ColText, "  "
		if i == a.Selected {
			col, prefix = ColSelect, "> "
		}
		y := int32(180 + i*32)
		rl.DrawText(prefix+name, 80, y, 22, col)
		rl.DrawText(a.registry.Description(name), 300, y+4, 16, ColTextDim)
	}
	rl.DrawText("up/down select  enter start  esc back", 80, screenHeight-40, 14, ColTextDim)
}
