// Package export renders recorded runs and canvases as SVG.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/hadron/internal/analysis"
	"github.com/san-kum/hadron/internal/sim"
	"github.com/san-kum/hadron/internal/viz"
)

var palette = []string{"#00ffff", "#ff00ff", "#ffff00", "#00ff88", "#ff8800", "#88aaff"}

// CanvasToSVG draws every lit sub-pixel of a braille canvas as a dot.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.SubWidth()) * scale
	height := float64(canvas.SubHeight()) * scale

	var sb strings.Builder
	sb.WriteString(header(width, height))
	sb.WriteString("<g fill=\"#00ff00\">\n")

	dotRadius := scale * 0.4
	for y := 0; y < canvas.SubHeight(); y++ {
		for x := 0; x < canvas.SubWidth(); x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

type bounds struct{ minX, maxX, minY, maxY float64 }

func (b *bounds) add(x, y float64) {
	b.minX, b.maxX = min(b.minX, x), max(b.maxX, x)
	b.minY, b.maxY = min(b.minY, y), max(b.maxY, y)
}

// pad widens the box by 10% each side and keeps it non-empty.
func (b *bounds) pad() {
	rangeX, rangeY := b.maxX-b.minX, b.maxY-b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	b.minX -= rangeX * 0.1
	b.maxX += rangeX * 0.1
	b.minY -= rangeY * 0.1
	b.maxY += rangeY * 0.1
}

// TrajectoryToSVG draws one path per particle, projected on the x and y
// axes given. A particle's path breaks wherever it was dead. Only the
// first maxParticles particles are drawn when maxParticles > 0.
func TrajectoryToSVG(frames []sim.Frame, xAxis, yAxis analysis.Axis, width, height, maxParticles int) string {
	if len(frames) < 2 {
		return ""
	}
	n := len(frames[0].Positions)
	if maxParticles > 0 && n > maxParticles {
		n = maxParticles
	}

	paths := make([][]analysis.Point, 0, n)
	var b bounds
	first := true
	for i := 0; i < n; i++ {
		var pts []analysis.Point
		portrait := analysis.PhasePortrait(frames, i, xAxis, yAxis)
		if portrait == nil {
			continue
		}
		for j, pt := range portrait.Points {
			if j >= len(frames) || i >= len(frames[j].Alive) || !frames[j].Alive[i] {
				pts = append(pts, analysis.Point{X: math.NaN(), Y: math.NaN()})
				continue
			}
			if first {
				b = bounds{pt.X, pt.X, pt.Y, pt.Y}
				first = false
			}
			b.add(pt.X, pt.Y)
			pts = append(pts, pt)
		}
		paths = append(paths, pts)
	}
	if first {
		return ""
	}
	b.pad()

	var sb strings.Builder
	sb.WriteString(header(float64(width), float64(height)))
	for i, pts := range paths {
		d := pathData(pts, b, width, height)
		if d == "" {
			continue
		}
		sb.WriteString(fmt.Sprintf("<path fill=\"none\" stroke=\"%s\" stroke-width=\"1.5\" d=\"%s\"/>\n",
			palette[i%len(palette)], d))
	}
	sb.WriteString("</svg>")
	return sb.String()
}

func pathData(pts []analysis.Point, b bounds, width, height int) string {
	var sb strings.Builder
	pen := false
	for _, p := range pts {
		if math.IsNaN(p.X) {
			pen = false
			continue
		}
		x := (p.X - b.minX) / (b.maxX - b.minX) * float64(width)
		y := float64(height) - (p.Y-b.minY)/(b.maxY-b.minY)*float64(height)
		if !pen {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
			pen = true
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	return sb.String()
}

func header(width, height float64) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)
}
