package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/hadron/internal/scenes"
	"github.com/san-kum/hadron/internal/vecmath"
)

func TestCanvasSetAndLine(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(1, 2)
	if !c.IsSet(1, 2) || c.IsSet(0, 2) {
		t.Fatal("Set lit the wrong dot")
	}
	c.Unset(1, 2)
	if c.IsSet(1, 2) {
		t.Fatal("Unset left the dot lit")
	}

	c.DrawLine(0, 0, 7, 7)
	for i := 0; i < 8; i++ {
		if !c.IsSet(i, i) {
			t.Errorf("diagonal misses (%d,%d)", i, i)
		}
	}

	c.Set(100, 100)
	c.Clear()
	if strings.Trim(c.String(), string(rune(brailleBlank))+"\n") != "" {
		t.Error("Clear left dots behind")
	}
}

func TestCameraProject(t *testing.T) {
	cam := NewCamera()
	sw, sh := 160, 96

	cx, cy, _, ok := cam.Project(vecmath.Zero, sw, sh)
	if !ok || absInt(cx-sw/2) > 1 || absInt(cy-sh/2) > 1 {
		t.Fatalf("origin at (%d,%d) visible=%v, want near centre", cx, cy, ok)
	}

	x, _, _, ok := cam.Project(vecmath.V(10, 0, 0), sw, sh)
	if !ok || x <= cx {
		t.Errorf("+x projected to %d, want right of %d", x, cx)
	}
	_, y, _, ok := cam.Project(vecmath.V(0, 10, 0), sw, sh)
	if !ok || y >= cy {
		t.Errorf("+y projected to %d, want above %d", y, cy)
	}

	if _, _, _, ok := cam.Project(vecmath.V(0, 0, 100), sw, sh); ok {
		t.Error("point behind the camera reported visible")
	}
}

func TestCameraPitchClamped(t *testing.T) {
	cam := NewCamera()
	for i := 0; i < 100; i++ {
		cam.RotatePitch(0.1)
	}
	if cam.Pitch >= 1.5708 {
		t.Errorf("pitch %g reached the pole", cam.Pitch)
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	reg := scenes.NewRegistry()
	rebuild := func(p scenes.Params) (*scenes.Scene, error) { return reg.Get("orbit", p, 1) }
	s, err := rebuild(nil)
	if err != nil {
		t.Fatal(err)
	}
	return NewModel(s, 0.01, rebuild)
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelPauseAndStep(t *testing.T) {
	m := newTestModel(t)

	m = update(m, TickMsg{})
	if m.Scene().World.Time == 0 {
		t.Fatal("tick did not advance the world")
	}

	m = update(m, key("p"))
	if m.running {
		t.Fatal("p did not pause")
	}
	before := m.Scene().World.Time
	m = update(m, TickMsg{})
	if m.Scene().World.Time != before {
		t.Error("paused model kept stepping")
	}
}

func TestModelActAndReset(t *testing.T) {
	kicked, plain := newTestModel(t), newTestModel(t)
	h := kicked.Scene().Bodies[0]

	kicked = update(kicked, key(" "))
	kicked = update(kicked, TickMsg{})
	plain = update(plain, TickMsg{})
	a, _ := kicked.Scene().World.Particles.Get(h)
	b, _ := plain.Scene().World.Particles.Get(h)
	if a.Velocity().Y <= b.Velocity().Y {
		t.Errorf("kicked vy %g not above %g", a.Velocity().Y, b.Velocity().Y)
	}

	kicked = update(kicked, key("r"))
	if kicked.Scene().World.Time != 0 {
		t.Errorf("reset world time = %g", kicked.Scene().World.Time)
	}
}

func TestModelAdjustParamRebuilds(t *testing.T) {
	m := newTestModel(t)
	for m.paramKeys[m.selected] != "radius" {
		m = update(m, tea.KeyMsg{Type: tea.KeyTab})
	}
	m = update(m, key("k"))
	if got := m.Scene().Params["radius"]; got < 10.99 || got > 11.01 {
		t.Errorf("radius = %g, want 11", got)
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t)
	m = update(m, TickMsg{})
	if v := m.View(); !strings.Contains(v, "ORBIT") {
		t.Error("view does not name the scene")
	}
}

func TestPickerStartsScene(t *testing.T) {
	var m tea.Model = *NewInteractiveApp(scenes.NewRegistry(), 0.01, 1)
	for p := m.(picker); p.names[p.cursor] != "pair"; p = m.(picker) {
		m, _ = m.Update(key("j"))
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.(picker).state != stateConfig {
		t.Fatal("enter did not open the config screen")
	}
	m, _ = m.Update(key("s"))
	p := m.(picker)
	if p.state != stateSim || p.live.Scene().Name != "pair" {
		t.Errorf("state %d, want a running pair scene", p.state)
	}
}

func TestCanvasLayers(t *testing.T) {
	c := NewCanvas(2, 1)
	c.SetPen(LayerParticle)
	c.Set(0, 0)
	c.SetPen(LayerLink)
	c.Set(1, 1)
	c.Set(2, 0)
	if got := c.LayerAt(0, 0); got != LayerParticle {
		t.Errorf("shared cell layer = %d, want particle", got)
	}
	if got := c.LayerAt(1, 0); got != LayerLink {
		t.Errorf("link cell layer = %d", got)
	}
	if got := c.LayerAt(5, 0); got != LayerFrame {
		t.Errorf("off-canvas layer = %d", got)
	}

	c.Clear()
	c.Set(0, 0)
	if got := c.LayerAt(0, 0); got != LayerFrame {
		t.Errorf("after Clear layer = %d, pen not reset", got)
	}
}

func TestPaintKeepsCells(t *testing.T) {
	c := NewCanvas(3, 2)
	c.SetPen(LayerLink)
	c.DrawLine(0, 0, 5, 0)
	c.SetPen(LayerParticle)
	c.Set(2, 5)

	out := stylesFor(ActivePalette()).paint(c)
	for _, row := range c.Grid {
		for _, r := range row {
			if !strings.ContainsRune(out, r) {
				t.Errorf("painted output lost cell %q", r)
			}
		}
	}
	if n := strings.Count(out, "\n"); n != c.Height {
		t.Errorf("painted %d rows, want %d", n, c.Height)
	}
}

func TestUsePalette(t *testing.T) {
	saved := active
	defer func() { active = saved }()

	if err := UsePalette("plasma"); err != nil {
		t.Fatal(err)
	}
	if ActivePalette().Name != "plasma" {
		t.Errorf("active = %s", ActivePalette().Name)
	}
	if err := UsePalette("neon"); err == nil {
		t.Error("unknown palette accepted")
	}
	if ActivePalette().Name != "plasma" {
		t.Error("failed switch changed the palette")
	}

	names := PaletteNames()
	seen := map[string]bool{}
	for range names {
		seen[nextPalette()] = true
	}
	if len(seen) != len(names) || ActivePalette().Name != "plasma" {
		t.Errorf("cycling visited %d of %d palettes", len(seen), len(names))
	}
}

func TestModelCyclesPalette(t *testing.T) {
	saved := active
	defer func() { active = saved }()

	m := newTestModel(t)
	before := ActivePalette().Name
	m = update(m, key("t"))
	if ActivePalette().Name == before {
		t.Fatal("t kept the palette")
	}
	if !strings.Contains(m.message, ActivePalette().Name) {
		t.Errorf("message %q does not name the palette", m.message)
	}
}
