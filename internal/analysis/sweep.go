package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/hadron/internal/sim"
	"github.com/san-kum/hadron/internal/vecmath"
)

// SweepPoint holds the distinct turning points seen for one parameter value.
type SweepPoint struct {
	Param  float64
	Values []float64
}

// ParamWorld builds a world with the swept parameter set to param.
type ParamWorld func(param float64) (*sim.World, error)

// Sweep steps a world for each of steps parameter values between lo and hi.
// After the transient it records the local maxima of axis for particle idx,
// deduplicated to three decimals. A periodic motion shows one value per
// parameter, period doubling shows two, and a spread suggests chaos.
func Sweep(build ParamWorld, lo, hi float64, steps, idx int, axis Axis, dt, transient, record float64) ([]SweepPoint, error) {
	if steps <= 1 {
		steps = 2
	}
	stride := (hi - lo) / float64(steps-1)
	results := make([]SweepPoint, 0, steps)

	for i := 0; i < steps; i++ {
		param := lo + float64(i)*stride
		w, err := build(param)
		if err != nil {
			return nil, err
		}

		handles := w.Particles.Handles()
		if idx < 0 || idx >= len(handles) {
			results = append(results, SweepPoint{Param: param})
			continue
		}
		h := handles[idx]

		for t := 0.0; t < transient; t += dt {
			w.Step(vecmath.Real(dt))
		}

		values := make([]float64, 0)
		seen := make(map[int64]bool)
		var prev2, prev1 float64
		n := 0

		for t := 0.0; t < record; t += dt {
			w.Step(vecmath.Real(dt))
			p, ok := w.Particles.Get(h)
			if !ok {
				break
			}
			v := axis.Value(p)
			if n >= 2 && prev1 > prev2 && prev1 >= v {
				key := int64(math.Round(prev1 * 1000))
				if !seen[key] {
					seen[key] = true
					values = append(values, prev1)
				}
			}
			prev2, prev1 = prev1, v
			n++
		}

		results = append(results, SweepPoint{Param: param, Values: values})
	}

	return results, nil
}

func SweepToASCII(data []SweepPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var minVal, maxVal float64
	found := false
	for _, p := range data {
		for _, v := range p.Values {
			if !found {
				minVal, maxVal = v, v
				found = true
				continue
			}
			minVal, maxVal = min(minVal, v), max(maxVal, v)
		}
	}
	if !found {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for i, p := range data {
		col := min(i*width/len(data), width-1)
		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				canvas[row][col] = '•'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
