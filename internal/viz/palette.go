package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette colours what the live view draws: the three canvas layers and the
// panel beside them.
type Palette struct {
	Name     string
	Particle lipgloss.Color
	Link     lipgloss.Color
	Frame    lipgloss.Color
	Energy   lipgloss.Color
	Label    lipgloss.Color
	Value    lipgloss.Color

	Running, Paused, Recording lipgloss.Color
}

var palettes = []Palette{
	{
		Name:      "cherenkov",
		Particle:  "#7fd4ff",
		Link:      "#3a7bd5",
		Frame:     "#24395c",
		Energy:    "#a0e9ff",
		Label:     "#5c7a99",
		Value:     "#e6f4ff",
		Running:   "#4fe3c1",
		Paused:    "#f2c14e",
		Recording: "#ff5d73",
	},
	{
		Name:      "plasma",
		Particle:  "#ffb347",
		Link:      "#ff6f91",
		Frame:     "#4b2a4f",
		Energy:    "#ffd36e",
		Label:     "#9a7197",
		Value:     "#fff1e0",
		Running:   "#9be564",
		Paused:    "#ffd36e",
		Recording: "#ff3c38",
	},
	{
		Name:      "cloud",
		Particle:  "#f5f5f5",
		Link:      "#b0b0b0",
		Frame:     "#4a4a4a",
		Energy:    "#d0d0d0",
		Label:     "#7a7a7a",
		Value:     "#ffffff",
		Running:   "#c8e6c9",
		Paused:    "#e0e0e0",
		Recording: "#ef9a9a",
	},
	{
		Name:      "bubble",
		Particle:  "#b8f2e6",
		Link:      "#5e6472",
		Frame:     "#2d3142",
		Energy:    "#ffa69e",
		Label:     "#6c7a89",
		Value:     "#faf3dd",
		Running:   "#aed9e0",
		Paused:    "#ffa69e",
		Recording: "#e4572e",
	},
}

var active = 0

func ActivePalette() Palette { return palettes[active] }

// UsePalette switches every view to the named palette.
func UsePalette(name string) error {
	for i, p := range palettes {
		if p.Name == name {
			active = i
			return nil
		}
	}
	return fmt.Errorf("unknown palette %q (want one of %s)", name, strings.Join(PaletteNames(), ", "))
}

func PaletteNames() []string {
	names := make([]string, len(palettes))
	for i, p := range palettes {
		names[i] = p.Name
	}
	return names
}

// nextPalette moves to the following palette and returns its name.
func nextPalette() string {
	active = (active + 1) % len(palettes)
	return palettes[active].Name
}
