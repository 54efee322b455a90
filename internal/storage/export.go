package storage

import (
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/davigp/odelab/internal/sim"
)

type ExportData struct {
	Function     string    `json:"function"`
	Method       string    `json:"method"`
	X0           float64   `json:"x0"`
	Y0           float64   `json:"y0"`
	XEnd         float64   `json:"x_end"`
	H            float64   `json:"h"`
	Iterations   int       `json:"iterations"`
	X            []float64 `json:"x"`
	Euler        []float64 `json:"euler,omitempty"`
	HeunSingle   []float64 `json:"heun_single,omitempty"`
	HeunIterated []float64 `json:"heun_iterated,omitempty"`
	Exact        []float64 `json:"exact,omitempty"`
	ExactDisplay string    `json:"exact_display,omitempty"`
}

// ExportJSON writes a run as indented JSON. Non-finite exact samples are
// zeroed first; encoding/json rejects NaN and Inf.
func ExportJSON(w io.Writer, res *sim.Result) error {
	data := ExportData{
		Function:     res.Params.Source,
		Method:       string(res.Params.Method),
		X0:           res.Params.X0,
		Y0:           res.Params.Y0,
		XEnd:         res.Params.XEnd,
		H:            res.Params.H,
		Iterations:   res.Params.Iterations,
		X:            res.Grid(),
		ExactDisplay: res.ExactDisplay,
	}

	if res.Euler != nil {
		data.Euler = make([]float64, len(res.Euler))
		for i, p := range res.Euler {
			data.Euler[i] = p.Y
		}
	}
	if res.Heun != nil {
		data.HeunSingle = make([]float64, len(res.Heun))
		data.HeunIterated = make([]float64, len(res.Heun))
		for i, p := range res.Heun {
			data.HeunSingle[i] = p.YSingle
			data.HeunIterated[i] = p.YIterated
		}
	}
	if res.HasExact() {
		data.Exact = make([]float64, len(res.Exact))
		for i, v := range res.Exact {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				v = 0
			}
			data.Exact[i] = v
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportJSONFile is ExportJSON to a freshly created file.
func ExportJSONFile(path string, res *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, res)
}
