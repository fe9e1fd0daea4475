package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FromCSV reads a dataset from CSV: a header row naming every variable, then
// one integer-coded record per row. No missing values, no non-integer cells.
func FromCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("csv needs a header row and at least one record")
	}

	names := make([]string, len(rows[0]))
	for i, n := range rows[0] {
		names[i] = strings.TrimSpace(n)
	}

	records := make([][]int, 0, len(rows)-1)
	for r, row := range rows[1:] {
		rec := make([]int, len(row))
		for c, cell := range row {
			v, err := strconv.Atoi(strings.TrimSpace(cell))
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %q is not an integer", r+1, c, cell)
			}
			rec[c] = v
		}
		records = append(records, rec)
	}

	return New(names, records)
}
