package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/hadron/internal/sim"
	"github.com/san-kum/hadron/internal/vecmath"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

// Store keeps finished runs on disk, one directory per run.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Scene       string             `json:"scene"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Params      map[string]float64 `json:"params,omitempty"`
	Particles   int                `json:"particles"`
	Frames      int                `json:"frames"`
	StepsTaken  int                `json:"steps_taken"`
	EnergyDrift float64            `json:"energy_drift"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes metadata.json and frames.csv for result. The timestamp and
// counts of meta are filled in here. A set meta.ID names the run; otherwise
// the ID is the scene and the unix time. Taken IDs get a numeric suffix.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := time.Now()
	base := meta.ID
	if base == "" {
		base = fmt.Sprintf("%s_%d", meta.Scene, now.Unix())
	}
	runID := base
	for n := 1; s.exists(runID); n++ {
		runID = fmt.Sprintf("%s_%d", base, n)
	}
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Frames = len(result.Frames)
	meta.StepsTaken = result.StepsTaken
	meta.EnergyDrift = result.EnergyDrift
	meta.Metrics = result.Metrics
	if len(result.Frames) > 0 {
		meta.Particles = len(result.Frames[0].Positions)
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := writeFrames(w, result.Frames); err != nil {
		return "", err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) exists(runID string) bool {
	_, err := os.Stat(filepath.Join(s.baseDir, runID))
	return err == nil
}

func writeFrames(w *csv.Writer, frames []sim.Frame) error {
	if err := w.Write([]string{"time", "particle", "alive", "x", "y", "z"}); err != nil {
		return err
	}

	for _, f := range frames {
		t := strconv.FormatFloat(f.Time, 'f', 6, 64)
		for i, pos := range f.Positions {
			alive := "0"
			if i < len(f.Alive) && f.Alive[i] {
				alive = "1"
			}
			row := []string{
				t,
				strconv.Itoa(i),
				alive,
				formatReal(pos.X),
				formatReal(pos.Y),
				formatReal(pos.Z),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

func formatReal(v vecmath.Real) string {
	return strconv.FormatFloat(float64(v), 'f', 6, 64)
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

// LoadFrames reads frames.csv back into frames. Rows sharing a time belong
// to the same frame; malformed rows are skipped.
func (s *Store) LoadFrames(runID string) ([]sim.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	frames := make([]sim.Frame, 0)
	if len(records) < 2 {
		return frames, nil
	}

	for _, record := range records[1:] {
		if len(record) < 6 {
			continue
		}

		vals := make([]float64, 0, 4)
		for _, idx := range []int{0, 3, 4, 5} {
			v, err := strconv.ParseFloat(record[idx], 64)
			if err != nil {
				break
			}
			vals = append(vals, v)
		}
		if len(vals) != 4 {
			continue
		}

		t := vals[0]
		if len(frames) == 0 || frames[len(frames)-1].Time != t {
			frames = append(frames, sim.Frame{Time: t})
		}
		f := &frames[len(frames)-1]
		f.Positions = append(f.Positions, vecmath.V(vecmath.Real(vals[1]), vecmath.Real(vals[2]), vecmath.Real(vals[3])))
		f.Alive = append(f.Alive, record[2] == "1")
	}

	return frames, nil
}

// Trajectory pulls one particle's positions and the frame times out of
// frames. Frames that do not include the particle are skipped.
func Trajectory(frames []sim.Frame, particle int) ([]float64, []vecmath.Vector3) {
	times := make([]float64, 0, len(frames))
	path := make([]vecmath.Vector3, 0, len(frames))
	for _, f := range frames {
		if particle < 0 || particle >= len(f.Positions) {
			continue
		}
		times = append(times, f.Time)
		path = append(path, f.Positions[particle])
	}
	return times, path
}
