// Package dataset loads numeric sample matrices from CSV files and
// generates the synthetic streams used by the CLI.
package dataset

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// LoadCSV reads a CSV file into a sample matrix. Every row must carry
// the same number of numeric columns; a single header row of
// non-numeric values is skipped.
func LoadCSV(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset %s is empty", path)
	}

	start := 0
	if _, err := strconv.ParseFloat(strings.TrimSpace(records[0][0]), 64); err != nil {
		start = 1 // header row
	}

	var X [][]float64
	for i := start; i < len(records); i++ {
		row := make([]float64, len(records[i]))
		for j, field := range records[i] {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: invalid float %q: %w", i+1, j+1, field, err)
			}
			row[j] = v
		}
		if len(X) > 0 && len(row) != len(X[0]) {
			return nil, fmt.Errorf("row %d has %d columns, want %d", i+1, len(row), len(X[0]))
		}
		X = append(X, row)
	}
	if len(X) == 0 {
		return nil, fmt.Errorf("dataset %s holds no data rows", path)
	}
	return X, nil
}

// Bounds returns the per-dimension minimum and maximum of a sample
// matrix, for deriving a context box from the data.
func Bounds(X [][]float64) (lo, hi []float64) {
	if len(X) == 0 {
		return nil, nil
	}
	d := len(X[0])
	lo = make([]float64, d)
	hi = make([]float64, d)
	for i := range lo {
		lo[i] = math.Inf(1)
		hi[i] = math.Inf(-1)
	}
	for _, row := range X {
		for i, v := range row {
			if v < lo[i] {
				lo[i] = v
			}
			if v > hi[i] {
				hi[i] = v
			}
		}
	}
	return lo, hi
}
