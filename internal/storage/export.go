package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/nbody/internal/sim"
)

type ExportData struct {
	Run     RunMetadata  `json:"run"`
	Samples []sim.Sample `json:"samples"`
}

func ExportJSON(w io.Writer, meta RunMetadata, samples []sim.Sample) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Run: meta, Samples: samples})
}

// WriteSamplesCSV writes one row per sample: time, energy, momentum and
// the distance of each satellite to body 0 as r1..rN.
func WriteSamplesCSV(w io.Writer, samples []sim.Sample) error {
	cw := csv.NewWriter(w)

	header := []string{"time", "energy", "momentum"}
	if len(samples) > 0 {
		for i := range samples[0].Distances {
			header = append(header, fmt.Sprintf("r%d", i+1))
		}
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, s := range samples {
		row := []string{formatFloat(s.Time), formatFloat(s.Energy), formatFloat(s.Momentum)}
		for _, d := range s.Distances {
			row = append(row, formatFloat(d))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func ReadSamplesCSV(r io.Reader) ([]sim.Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []sim.Sample{}, nil
	}

	samples := make([]sim.Sample, 0, len(records)-1)
	for line, record := range records[1:] {
		if len(record) < 3 {
			return nil, fmt.Errorf("storage: line %d: expected at least 3 fields, got %d", line+2, len(record))
		}

		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: line %d: %w", line+2, err)
			}
			vals[j] = v
		}

		s := sim.Sample{Time: vals[0], Energy: vals[1], Momentum: vals[2]}
		if len(vals) > 3 {
			s.Distances = vals[3:]
		}
		samples = append(samples, s)
	}

	return samples, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
