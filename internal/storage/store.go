package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/davigp/odelab/internal/sim"
)

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
	ID           string    `json:"id"`
	Function     string    `json:"function"`
	Timestamp    time.Time `json:"timestamp"`
	X0           float64   `json:"x0"`
	Y0           float64   `json:"y0"`
	XEnd         float64   `json:"x_end"`
	H            float64   `json:"h"`
	Method       string    `json:"method"`
	Iterations   int       `json:"iterations"`
	ExactDisplay string    `json:"exact_display,omitempty"`
	Points       int       `json:"points"`
}

// Save writes one run as a directory holding metadata.json plus points.csv
// and returns the generated run id. Failed runs are rejected.
func (s *Store) Save(res *sim.Result) (string, error) {
	if res.Err != "" {
		return "", fmt.Errorf("refusing to save failed run: %s", res.Err)
	}

	runID := fmt.Sprintf("%s_%d", slug(res.Params.Source), time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	grid := res.Grid()
	meta := RunMetadata{
		ID:           runID,
		Function:     res.Params.Source,
		Timestamp:    time.Now(),
		X0:           res.Params.X0,
		Y0:           res.Params.Y0,
		XEnd:         res.Params.XEnd,
		H:            res.Params.H,
		Method:       string(res.Params.Method),
		Iterations:   res.Params.Iterations,
		ExactDisplay: res.ExactDisplay,
		Points:       len(grid),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "points.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(csvHeader(res)); err != nil {
		return "", err
	}
	for i, x := range grid {
		row := []string{formatFloat(x)}
		if res.Euler != nil {
			row = append(row, formatFloat(res.Euler[i].Y))
		}
		if res.Heun != nil {
			row = append(row, formatFloat(res.Heun[i].YSingle), formatFloat(res.Heun[i].YIterated))
		}
		if res.HasExact() {
			row = append(row, formatFloat(res.Exact[i]))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func csvHeader(res *sim.Result) []string {
	header := []string{"x"}
	if res.Euler != nil {
		header = append(header, "euler")
	}
	if res.Heun != nil {
		header = append(header, "heun_single", "heun_iterated")
	}
	if res.HasExact() {
		header = append(header, "exact")
	}
	return header
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', 12, 64)
}

// slug compresses an expression into a filesystem-safe id prefix.
func slug(source string) string {
	var b strings.Builder
	for _, r := range source {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + 32)
		}
	}
	out := b.String()
	if len(out) > 16 {
		out = out[:16]
	}
	if out == "" {
		out = "run"
	}
	return out
}

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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// PointsCSV returns a run's points.csv verbatim.
func (s *Store) PointsCSV(runID string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.baseDir, runID, "points.csv"))
}

// LoadPoints reads a run's points.csv back as a column-name to samples map
// plus the shared x grid.
func (s *Store) LoadPoints(runID string) ([]float64, map[string][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "points.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, map[string][]float64{}, nil
	}

	header := records[0]
	xs := make([]float64, 0, len(records)-1)
	cols := make(map[string][]float64, len(header)-1)

	for _, record := range records[1:] {
		if len(record) != len(header) {
			continue
		}
		x, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		xs = append(xs, x)
		for j := 1; j < len(record); j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				v = math.NaN()
			}
			cols[header[j]] = append(cols[header[j]], v)
		}
	}

	return xs, cols, nil
}
