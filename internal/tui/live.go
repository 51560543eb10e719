// Package tui prints a plain-text view of a running world. It needs no
// terminal framework and suits `hadron run --live`.
package tui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/san-kum/hadron/internal/particle"
	"github.com/san-kum/hadron/internal/sim"
)

const (
	width       = 70
	height      = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// Plane picks the two world axes drawn across and up the screen.
type Plane int

const (
	PlaneXY Plane = iota
	PlaneXZ
)

// LiveRenderer draws the alive particles of a world as characters, at most
// frameRate times per second of wall clock.
type LiveRenderer struct {
	out       io.Writer
	scene     string
	plane     Plane
	extent    float64
	frameRate int
	lastFrame time.Time
	canvas    [][]rune
	trail     []struct{ x, y int }
	tracked   particle.Handle
}

// NewLiveRenderer maps world coordinates in [-extent, extent] onto the
// canvas. The first particle drawn leaves a trail.
func NewLiveRenderer(out io.Writer, scene string, extent float64, frameRate int) *LiveRenderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	if extent <= 0 {
		extent = 50
	}
	if frameRate <= 0 {
		frameRate = 30
	}
	return &LiveRenderer{
		out:       out,
		scene:     scene,
		extent:    extent,
		frameRate: frameRate,
		canvas:    canvas,
		trail:     make([]struct{ x, y int }, 0, 50),
	}
}

func (r *LiveRenderer) SetPlane(p Plane) { r.plane = p }

func (r *LiveRenderer) OnStep(w *sim.World, t float64) {
	elapsed := time.Since(r.lastFrame)
	if elapsed < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()

	r.clear()
	r.drawAxes()
	r.drawParticles(w)
	r.render(w, t)
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

func (r *LiveRenderer) toScreen(p *particle.Particle) (int, int) {
	u, v := float64(p.X()), float64(p.Y())
	if r.plane == PlaneXZ {
		v = float64(p.Z())
	}
	sx := int(math.Round((u/r.extent + 1) * float64(width-1) / 2))
	sy := int(math.Round((1 - v/r.extent) * float64(height-1) / 2))
	return sx, sy
}

func (r *LiveRenderer) drawAxes() {
	cx, cy := (width-1)/2, (height-1)/2
	for x := 0; x < width; x++ {
		r.set(x, cy, '-')
	}
	for y := 0; y < height; y++ {
		r.set(cx, y, '|')
	}
	r.set(cx, cy, '+')
}

func (r *LiveRenderer) drawParticles(w *sim.World) {
	if _, ok := w.Particles.Get(r.tracked); !ok {
		r.tracked = particle.NoHandle
		r.trail = r.trail[:0]
	}

	w.Particles.Each(func(h particle.Handle, p *particle.Particle) {
		if !p.IsAlive() {
			return
		}
		if !r.tracked.Valid() {
			r.tracked = h
		}
		x, y := r.toScreen(p)
		if h == r.tracked {
			r.trail = append(r.trail, struct{ x, y int }{x, y})
			if len(r.trail) > 40 {
				r.trail = r.trail[1:]
			}
		}
		r.set(x, y, 'o')
	})

	for i, pt := range r.trail {
		if i < len(r.trail)-1 {
			r.set(pt.x, pt.y, '.')
		} else {
			r.set(pt.x, pt.y, 'O')
		}
	}
}

func (r *LiveRenderer) render(w *sim.World, t float64) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  t=%.2fs\n", r.scene, t))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	b.WriteString(fmt.Sprintf("  alive=%d  KE=%.2f  PE=%.2f\n",
		w.AliveCount(), w.KineticEnergy(), w.PotentialEnergy()))

	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
