package viz

import (
	"fmt"
	"image"
	"math"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/hadron/internal/particle"
	"github.com/san-kum/hadron/internal/scenes"
	"github.com/san-kum/hadron/internal/sim"
	"github.com/san-kum/hadron/internal/vecmath"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	gifPath         = "hadron.gif"
	rotateStep      = 0.1
	// 30 degrees per second
	autoRotateRate = math.Pi / 6
)

// Rebuilder builds the running scene again with new params.
type Rebuilder func(params scenes.Params) (*scenes.Scene, error)

type TickMsg time.Time

// Model steps a scene once per tick and draws it through an orbiting camera.
type Model struct {
	scene         *scenes.Scene
	rebuild       Rebuilder
	dt            float64
	width, height int
	canvas        *Canvas
	camera        *Camera
	running       bool
	autoRotate    bool
	energyHistory []float64
	history       []sim.Frame
	playHead      int
	recording     bool
	frames        []*image.Paletted
	showHelp      bool
	paramKeys     []string
	selected      int
	message       string
	index         map[particle.Handle]int
}

func NewModel(s *scenes.Scene, dt float64, rebuild Rebuilder) Model {
	m := Model{
		dt:            dt,
		rebuild:       rebuild,
		width:         width,
		height:        height,
		canvas:        NewCanvas(width, height),
		camera:        NewCamera(),
		running:       true,
		autoRotate:    s.Name == "particles",
		energyHistory: make([]float64, 0, historyCapacity),
		history:       make([]sim.Frame, 0, historyCapacity),
		playHead:      -1,
	}
	m.load(s)
	return m
}

func (m *Model) load(s *scenes.Scene) {
	m.scene = s
	m.paramKeys = m.paramKeys[:0]
	for k := range s.Params {
		m.paramKeys = append(m.paramKeys, k)
	}
	sort.Strings(m.paramKeys)
	if m.selected >= len(m.paramKeys) {
		m.selected = 0
	}

	m.index = make(map[particle.Handle]int)
	for i, h := range s.World.Particles.Handles() {
		m.index[h] = i
	}

	m.energyHistory = m.energyHistory[:0]
	m.history = m.history[:0]
	m.playHead = -1
}

func (m Model) Scene() *scenes.Scene { return m.scene }

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if !m.scene.Act() {
				m.message = "no action for " + m.scene.Name
			}
		case "p":
			m.running = !m.running
		case "r":
			m.load(m.scene.Reset())
		case "a":
			m.autoRotate = !m.autoRotate
		case "left", "h":
			m.camera.RotateYaw(-rotateStep)
		case "right", "l":
			m.camera.RotateYaw(rotateStep)
		case "up":
			m.camera.RotatePitch(rotateStep)
		case "down":
			m.camera.RotatePitch(-rotateStep)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "tab":
			m.cycleParam()
		case "k":
			m.adjustParam(1.1)
		case "j":
			m.adjustParam(1 / 1.1)
		case "g":
			m.toggleRecording()
		case "t":
			m.message = "palette " + nextPalette()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			if m.playHead == -1 {
				m.step()
			} else {
				m.playHead++
				if m.playHead >= len(m.history) {
					m.playHead = -1
				}
			}
		}
		m.draw(m.currentFrame())
		if m.recording {
			m.frames = append(m.frames, captureFrame(m.canvas))
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) step() {
	w := m.scene.World
	w.Step(vecmath.Real(m.dt))
	if m.autoRotate {
		m.camera.RotateYaw(autoRotateRate * m.dt)
	}

	m.energyHistory = append(m.energyHistory, float64(w.TotalEnergy()))
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}

	m.history = append(m.history, w.Snapshot())
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

// scrub moves the replay head through recorded frames, pausing live
// stepping while replaying.
func (m *Model) scrub(dir int) {
	if m.playHead == -1 {
		if len(m.history) == 0 {
			return
		}
		m.playHead = len(m.history) - 1
		m.running = false
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.history) {
		m.playHead = -1
	}
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

// adjustParam scales the selected param and rebuilds the scene with it.
func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 || m.rebuild == nil {
		return
	}
	key := m.paramKeys[m.selected]
	params := m.scene.Params.Merge(scenes.Params{key: m.scene.Params[key] * factor})
	s, err := m.rebuild(params)
	if err != nil {
		m.message = err.Error()
		return
	}
	m.load(s)
	m.message = fmt.Sprintf("%s = %.4g", key, params[key])
}

func (m *Model) toggleRecording() {
	if !m.recording {
		m.recording = true
		m.frames = make([]*image.Paletted, 0)
		return
	}
	if err := saveGIF(gifPath, m.frames); err != nil {
		m.message = err.Error()
	} else {
		m.message = fmt.Sprintf("saved %d frames to %s", len(m.frames), gifPath)
	}
	m.recording = false
	m.frames = nil
}

func (m *Model) currentFrame() sim.Frame {
	if m.playHead >= 0 && m.playHead < len(m.history) {
		return m.history[m.playHead]
	}
	return m.scene.World.Snapshot()
}

// draw renders the box, links and live particles of f, each on its own
// layer.
func (m *Model) draw(f sim.Frame) {
	m.canvas.Clear()
	sw, sh := m.canvas.SubWidth(), m.canvas.SubHeight()

	m.canvas.SetPen(LayerFrame)
	for _, h := range m.scene.World.Hooks {
		if box, ok := h.(*sim.BoundingBox); ok {
			Render3D(m.canvas, BoxWireframe(box.Min, box.Max), m.camera)
		}
	}
	Render3D(m.canvas, AxesWireframe(3), m.camera)

	m.canvas.SetPen(LayerLink)
	for _, link := range m.scene.Links {
		i, okA := m.index[link[0]]
		j, okB := m.index[link[1]]
		if !okA || !okB || i >= len(f.Positions) || j >= len(f.Positions) {
			continue
		}
		x1, y1, _, v1 := m.camera.Project(f.Positions[i], sw, sh)
		x2, y2, _, v2 := m.camera.Project(f.Positions[j], sw, sh)
		if v1 && v2 {
			m.canvas.DrawLine(x1, y1, x2, y2)
		}
	}

	m.canvas.SetPen(LayerParticle)
	for i, pos := range f.Positions {
		if i < len(f.Alive) && !f.Alive[i] {
			continue
		}
		if x, y, _, ok := m.camera.Project(pos, sw, sh); ok {
			m.canvas.Set(x, y)
			m.canvas.Set(x+1, y)
		}
	}
}

func (m Model) View() string {
	st := stylesFor(ActivePalette())
	w := m.scene.World
	f := m.currentFrame()
	m.draw(f)

	status := st.running.Render("RUNNING")
	switch {
	case m.playHead != -1:
		back := f.Time - m.history[len(m.history)-1].Time
		status = st.paused.Render(fmt.Sprintf("REPLAY (%.1fs)", back))
	case !m.running:
		status = st.paused.Render("PAUSED")
	}
	if m.recording {
		status += " " + st.recording.Render("● REC")
	}

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.scene.Name)) + "\n")
	s.WriteString(status + "\n\n")
	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(st.graph.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", f.Time))
	row("Kinetic", fmt.Sprintf("%.2f", w.KineticEnergy()))
	row("Potential", fmt.Sprintf("%.2f", w.PotentialEnergy()))
	row("Total", fmt.Sprintf("%.2f", w.TotalEnergy()))

	alive, total := 0, len(f.Alive)
	for _, a := range f.Alive {
		if a {
			alive++
		}
	}
	fill := 0.0
	if total > 0 {
		fill = float64(alive) / float64(total)
	}
	row("Alive", fmt.Sprintf("%d/%d ", alive, total)+ProgressBar(fill, 10))
	row("Camera", fmt.Sprintf("yaw %.0f° pitch %.0f° x%.1f",
		m.camera.Yaw*180/math.Pi, m.camera.Pitch*180/math.Pi, m.camera.Zoom))

	s.WriteString("\nPARAMETERS\n")
	if len(m.paramKeys) == 0 {
		s.WriteString(st.label.Render("  (none)") + "\n")
	}
	for i, k := range m.paramKeys {
		line := fmt.Sprintf("%-12s %10.4g", k, m.scene.Params[k])
		if i == m.selected {
			s.WriteString(st.active.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + st.label.Render(line) + "\n")
		}
	}
	if m.message != "" {
		s.WriteString("\n" + st.value.Render(m.message) + "\n")
	}
	s.WriteString(st.help.Render("\n─────────────────────\nSP:Act P:Pause R:Reset Q:Quit\n←→↑↓:Orbit +/-:Zoom ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, st.canvas.Render(st.paint(m.canvas)), st.stats.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Scene action (spawn/kick)║
║  P        - Pause/Resume             ║
║  R        - Reset scene              ║
║  Q        - Quit                     ║
║  Arrows   - Orbit the camera         ║
║  + / -    - Zoom in / out            ║
║  A        - Toggle auto rotation     ║
║  Tab      - Cycle parameters         ║
║  K / J    - Raise / lower (10%)      ║
║  [ / ]    - Rewind / forward         ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle palettes           ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`
