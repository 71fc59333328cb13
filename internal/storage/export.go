package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/sim"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSV writes one row per sample: time, temperature, then every species
// concentration in history key order.
func WriteCSV(w io.Writer, h *sim.History) error {
	cw := csv.NewWriter(w)

	header := append([]string{"time", "temp"}, h.Keys...)
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for i := 0; i < h.Len(); i++ {
		row[0] = formatFloat(h.Times[i])
		row[1] = formatFloat(h.Temperatures[i])
		for j, c := range h.Row(i) {
			row[j+2] = formatFloat(c)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func writeCSVFile(path string, h *sim.History) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCSV(f, h); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// ReadCSV parses the format written by WriteCSV.
func ReadCSV(r io.Reader) (*sim.History, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read csv: missing header")
	}

	header := records[0]
	if len(header) < 2 || header[0] != "time" || header[1] != "temp" {
		return nil, fmt.Errorf("read csv: unexpected header %v", header)
	}

	h := sim.NewHistory(header[2:], len(records)-1)
	conc := make([]float64, len(header)-2)
	for i, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("read csv: line %d column %s: %w", i+2, header[j], err)
			}
			vals[j] = v
		}
		copy(conc, vals[2:])
		if err := h.Append(vals[0], vals[1], conc); err != nil {
			return nil, fmt.Errorf("read csv: line %d: %w", i+2, err)
		}
	}
	return h, nil
}

type ExportData struct {
	Run          *RunMetadata         `json:"run,omitempty"`
	Samples      int                  `json:"samples"`
	Times        []float64            `json:"times"`
	Temperatures []float64            `json:"temperatures"`
	Species      map[string][]float64 `json:"species"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, h *sim.History) error {
	data := ExportData{
		Run:          meta,
		Samples:      h.Len(),
		Times:        h.Times,
		Temperatures: h.Temperatures,
		Species:      make(map[string][]float64, len(h.Keys)),
	}
	for _, key := range h.Keys {
		data.Species[key] = h.Series(key)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSV copies a stored run's sample file to w.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	h, err := s.LoadHistory(runID)
	if err != nil {
		return err
	}
	return WriteCSV(w, h)
}
