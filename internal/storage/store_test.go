package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/hadron/internal/sim"
	"github.com/san-kum/hadron/internal/vecmath"
)

func sampleResult() *sim.Result {
	return &sim.Result{
		Frames: []sim.Frame{
			{Time: 0, Positions: []vecmath.Vector3{vecmath.V(1, 2, 3), vecmath.V(0, 0, 0)}, Alive: []bool{true, false}},
			{Time: 0.01, Positions: []vecmath.Vector3{vecmath.V(1.5, 2, 3), vecmath.V(0, 0, 0)}, Alive: []bool{true, false}},
		},
		Metrics:     map[string]float64{"kinetic_energy": 1.5},
		EnergyDrift: 0.01,
		StepsTaken:  1,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{Scene: "pair", Seed: 42, Dt: 0.01, Duration: 1}, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Scene != "pair" {
		t.Errorf("expected scene 'pair', got '%s'", meta.Scene)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.Particles != 2 || meta.Frames != 2 {
		t.Errorf("expected 2 particles and 2 frames, got %d and %d", meta.Particles, meta.Frames)
	}
	if meta.Metrics["kinetic_energy"] != 1.5 {
		t.Errorf("expected kinetic_energy 1.5, got %f", meta.Metrics["kinetic_energy"])
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if frames[1].Positions[0] != vecmath.V(1.5, 2, 3) {
		t.Errorf("frame 1 particle 0 = %v", frames[1].Positions[0])
	}
	if !frames[0].Alive[0] || frames[0].Alive[1] {
		t.Errorf("alive flags = %v", frames[0].Alive)
	}
}

func TestStoreSave_UniqueIDs(t *testing.T) {
	st := New(t.TempDir())
	a, err := st.Save(RunMetadata{Scene: "pair"}, sampleResult())
	if err != nil {
		t.Fatal(err)
	}
	b, err := st.Save(RunMetadata{Scene: "pair"}, sampleResult())
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Errorf("two saves share id %s", a)
	}
}

func TestStoreSave_NamedID(t *testing.T) {
	st := New(t.TempDir())
	a, err := st.Save(RunMetadata{ID: "baseline", Scene: "pair"}, sampleResult())
	if err != nil {
		t.Fatal(err)
	}
	b, err := st.Save(RunMetadata{ID: "baseline", Scene: "pair"}, sampleResult())
	if err != nil {
		t.Fatal(err)
	}
	if a != "baseline" || b != "baseline_1" {
		t.Errorf("ids = %s, %s; want baseline, baseline_1", a, b)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save(RunMetadata{Scene: "orbit"}, sampleResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreList_MissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "absent")).List()
	if err != nil || len(runs) != 0 {
		t.Errorf("List() = %v, %v", runs, err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save(RunMetadata{Scene: "pair"}, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	for _, name := range []string{"metadata.json", "frames.csv"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestTrajectory(t *testing.T) {
	times, path := Trajectory(sampleResult().Frames, 0)
	if len(times) != 2 || len(path) != 2 {
		t.Fatalf("got %d times and %d points", len(times), len(path))
	}
	if path[1].X != 1.5 {
		t.Errorf("path[1] = %v", path[1])
	}

	if _, path := Trajectory(sampleResult().Frames, 5); len(path) != 0 {
		t.Error("out of range particle should give an empty path")
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	meta := RunMetadata{Scene: "pair", Seed: 3, StepsTaken: 1}
	if err := WriteJSON(&buf, NewExportData(meta, sampleResult().Frames)); err != nil {
		t.Fatal(err)
	}

	var got ExportData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Scene != "pair" || len(got.Frames) != 2 || got.Frames[1].Positions[0].X != 1.5 {
		t.Errorf("round trip gave %+v", got)
	}
}
