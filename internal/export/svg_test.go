package export

import (
	"strings"
	"testing"

	"github.com/san-kum/hadron/internal/analysis"
	"github.com/san-kum/hadron/internal/sim"
	"github.com/san-kum/hadron/internal/vecmath"
	"github.com/san-kum/hadron/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(7, 7)

	svg := CanvasToSVG(c, 2)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("not an svg document: %q", svg)
	}
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("got %d dots, want 2", n)
	}
	if !strings.Contains(svg, `width="16" height="16"`) {
		t.Error("wrong document size")
	}
	if CanvasToSVG(nil, 1) != "" {
		t.Error("nil canvas should give empty output")
	}
}

func frames(alive ...bool) []sim.Frame {
	out := make([]sim.Frame, len(alive))
	for i, a := range alive {
		out[i] = sim.Frame{
			Time:      float64(i),
			Positions: []vecmath.Vector3{vecmath.V(vecmath.Real(i), vecmath.Real(i*i), 0)},
			Alive:     []bool{a},
		}
	}
	return out
}

func TestTrajectoryToSVG(t *testing.T) {
	svg := TrajectoryToSVG(frames(true, true, true), analysis.AxisX, analysis.AxisY, 200, 100, 0)
	if strings.Count(svg, "<path") != 1 {
		t.Fatalf("expected one path, got %q", svg)
	}
	if strings.Count(svg, "M") != 1 || strings.Count(svg, " L") != 2 {
		t.Errorf("expected one move and two lines in %q", svg)
	}
}

func TestTrajectoryToSVGBreaksOnDeath(t *testing.T) {
	svg := TrajectoryToSVG(frames(true, true, false, true, true), analysis.AxisX, analysis.AxisY, 200, 100, 0)
	if n := strings.Count(svg, "M"); n != 2 {
		t.Errorf("expected 2 subpaths, got %d in %q", n, svg)
	}
}

func TestTrajectoryToSVGEmpty(t *testing.T) {
	if TrajectoryToSVG(frames(true), analysis.AxisX, analysis.AxisY, 10, 10, 0) != "" {
		t.Error("single frame should give empty output")
	}
	if TrajectoryToSVG(frames(false, false), analysis.AxisX, analysis.AxisY, 10, 10, 0) != "" {
		t.Error("never-alive particle should give empty output")
	}
}
