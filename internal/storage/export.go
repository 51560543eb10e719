package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/hadron/internal/sim"
	"github.com/san-kum/hadron/internal/vecmath"
)

type ExportFrame struct {
	Time      float64           `json:"time"`
	Positions []vecmath.Vector3 `json:"positions"`
	Alive     []bool            `json:"alive"`
}

type ExportData struct {
	Scene       string             `json:"scene"`
	Seed        int64              `json:"seed"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Params      map[string]float64 `json:"params,omitempty"`
	Steps       int                `json:"steps"`
	EnergyDrift float64            `json:"energy_drift"`
	Frames      []ExportFrame      `json:"frames"`
	Metrics     map[string]float64 `json:"metrics"`
}

func NewExportData(meta RunMetadata, frames []sim.Frame) ExportData {
	data := ExportData{
		Scene:       meta.Scene,
		Seed:        meta.Seed,
		Dt:          meta.Dt,
		Duration:    meta.Duration,
		Params:      meta.Params,
		Steps:       meta.StepsTaken,
		EnergyDrift: meta.EnergyDrift,
		Frames:      make([]ExportFrame, len(frames)),
		Metrics:     meta.Metrics,
	}
	for i, f := range frames {
		data.Frames[i] = ExportFrame{Time: f.Time, Positions: f.Positions, Alive: f.Alive}
	}
	return data
}

func WriteJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, data ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, data)
}
