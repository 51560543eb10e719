// Package viz draws particle worlds in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live view stepping a scene every tick
//   - [Camera]: orbiting perspective camera built on mgl64
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//   - Scene picker, and palettes that colour particles, springs and the box
//
// # Key Bindings
//
//	Space  - Scene action (respawn a particle, kick the bob)
//	P      - Pause/Resume simulation
//	R      - Reset to initial state
//	Arrows - Orbit the camera
//	+/-    - Zoom
//	T      - Cycle palettes
//	G      - Toggle GIF recording
//	?      - Show help overlay
//	[]     - Time travel (rewind/forward)
//
// # Recording
//
// G starts capturing frames and a second press writes them to hadron.gif
// in the current directory.
package viz
