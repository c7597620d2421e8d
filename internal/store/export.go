// Package store serializes run results for downstream consumers: the
// full run as JSON, selected time slices as CSV.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/glioma-lab/gliosim/internal/config"
	"github.com/glioma-lab/gliosim/internal/sim"
)

// RunData is the on-disk form of a finished run. The config is echoed
// back so a saved run can be re-rendered without the original flags.
type RunData struct {
	Config *config.Config `json:"config"`
	Result *sim.Result    `json:"result"`
}

func ExportJSON(w io.Writer, cfg *config.Config, result *sim.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(RunData{Config: cfg, Result: result})
}

func WriteJSON(path string, cfg *config.Config, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ExportJSON(f, cfg, result)
}

func ReadJSON(path string) (*RunData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var run RunData
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// ExportCSV writes the spatial grid and one column per requested time
// level: x, c@t=<time>, ...
func ExportCSV(w io.Writer, result *sim.Result, levels []int) error {
	cols := make([][]float64, len(levels))
	header := make([]string, 0, len(levels)+1)
	header = append(header, "x")
	for i, n := range levels {
		col, err := result.Column(n)
		if err != nil {
			return err
		}
		cols[i] = col
		header = append(header, fmt.Sprintf("c@t=%g", result.Times[n]))
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	row := make([]string, len(levels)+1)
	for i, x := range result.X {
		row[0] = strconv.FormatFloat(x, 'g', -1, 64)
		for j, col := range cols {
			row[j+1] = strconv.FormatFloat(col[i], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteCSV(path string, result *sim.Result, levels []int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ExportCSV(f, result, levels)
}
