package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	canvas, stats, header   lipgloss.Style
	label, value, active    lipgloss.Style
	graph, help             lipgloss.Style
	running, paused         lipgloss.Style
	recording               lipgloss.Style
	title, subtle, selected lipgloss.Style
	layers                  [numLayers]lipgloss.Style
}

// stylesFor derives every style of the live view and the picker from a
// palette.
func stylesFor(p Palette) styles {
	return styles{
		canvas: lipgloss.NewStyle().Padding(1, 2),
		stats: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(p.Frame).
			Padding(1, 2).
			Width(45),
		header:    lipgloss.NewStyle().Foreground(p.Particle).Bold(true).MarginBottom(1),
		label:     lipgloss.NewStyle().Foreground(p.Label).Width(12),
		value:     lipgloss.NewStyle().Foreground(p.Value),
		active:    lipgloss.NewStyle().Foreground(p.Particle).Bold(true),
		graph:     lipgloss.NewStyle().Foreground(p.Energy).Padding(1, 0),
		help:      lipgloss.NewStyle().Foreground(p.Label).MarginTop(2),
		running:   lipgloss.NewStyle().Foreground(p.Running).Bold(true),
		paused:    lipgloss.NewStyle().Foreground(p.Paused).Bold(true),
		recording: lipgloss.NewStyle().Foreground(p.Recording).Bold(true).Blink(true),
		title:     lipgloss.NewStyle().Foreground(p.Link).Bold(true),
		subtle:    lipgloss.NewStyle().Foreground(p.Label),
		selected:  lipgloss.NewStyle().Foreground(p.Value).Bold(true),
		layers: [numLayers]lipgloss.Style{
			LayerFrame:    lipgloss.NewStyle().Foreground(p.Frame),
			LayerLink:     lipgloss.NewStyle().Foreground(p.Link),
			LayerParticle: lipgloss.NewStyle().Foreground(p.Particle),
		},
	}
}

// paint renders c with every run of same-layer cells in that layer's style.
func (st styles) paint(c *Canvas) string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		start := 0
		for col := 1; col <= c.Width; col++ {
			if col < c.Width && c.LayerAt(col, row) == c.LayerAt(start, row) {
				continue
			}
			b.WriteString(st.layers[c.LayerAt(start, row)].Render(string(c.Grid[row][start:col])))
			start = col
		}
		b.WriteByte('\n')
	}
	return b.String()
}

var (
	sparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	sparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	sparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// GradientText colours each rune of text along a line between two hex
// colours.
func GradientText(text string, startColor, endColor lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	sr, sg, sb := parseHex(string(startColor))
	er, eg, eb := parseHex(string(endColor))

	var result strings.Builder
	n := len(runes)
	for i, c := range runes {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		r := int(float64(sr) + t*float64(er-sr))
		g := int(float64(sg) + t*float64(eg-sg))
		b := int(float64(sb) + t*float64(eb-sb))

		style := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(r, g, b)))
		result.WriteString(style.Render(string(c)))
	}
	return result.String()
}

func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	filled = max(0, min(width, filled))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case percent > 0.8:
		return sparkHigh.Render(bar)
	case percent > 0.4:
		return sparkMid.Render(bar)
	}
	return sparkLow.Render(bar)
}

// SparklineChart samples values down to width bars.
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := max(1, len(values)/width)

	var result strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := max(0, min(len(chars)-1, int(norm*float64(len(chars)-1))))
		c := string(chars[idx])
		switch {
		case norm > 0.7:
			result.WriteString(sparkHigh.Render(c))
		case norm > 0.3:
			result.WriteString(sparkMid.Render(c))
		default:
			result.WriteString(sparkLow.Render(c))
		}
	}
	return result.String()
}

func Separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", max(0, mid-3))
	right := strings.Repeat("─", max(0, width-mid-3))
	return left + " ◆ " + right
}

func parseHex(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	return parseHexByte(hex[1:3]), parseHexByte(hex[3:5]), parseHexByte(hex[5:7])
}

func parseHexByte(s string) int {
	var val int
	for _, c := range s {
		val *= 16
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	return val
}

func hexColor(r, g, b int) string {
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func hexByte(v int) string {
	v = max(0, min(255, v))
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}
