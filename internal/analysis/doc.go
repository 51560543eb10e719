// Package analysis turns recorded runs into numbers and pictures.
//
// Series extract one coordinate of one particle from a run:
//
//   - [Series]: position or finite-difference velocity along an [Axis]
//   - [PowerSpectrum] and [DominantFrequency]: spectral content of a series
//   - [PhasePortrait]: two axes of one particle plotted against each other
//   - [NewPoincareSection]: points where an axis crosses a threshold upward
//
// Two helpers rebuild worlds instead of reading frames:
//
//   - [LyapunovExponent]: divergence rate of two nearly identical worlds
//   - [Sweep]: turning points of an axis while a scene parameter varies
//
// # Sensitivity
//
// A clearly positive exponent means small changes grow exponentially:
//
//	lambda, err := analysis.LyapunovExponent(build, 1e-6, 0.01, 20)
//	if err == nil && lambda > 0 {
//	    // nearby starts separate
//	}
package analysis
