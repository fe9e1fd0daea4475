package dataset

import (
	"fmt"
	"os"
)

// Dataset holds integer-coded observations over a fixed variable schema.
// Variable domains are derived from the data: the domain of a variable is the
// set of distinct values observed for it, kept in first-observed order.
// Immutable once constructed.
type Dataset struct {
	names   []string
	index   map[string]int
	records [][]int
	domains [][]int
	domPos  []map[int]int
}

// New builds a Dataset from a schema and records. Every record must carry one
// value per variable.
func New(names []string, records [][]int) (*Dataset, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("dataset has no variables")
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset has no records")
	}

	index := make(map[string]int, len(names))
	for i, n := range names {
		if n == "" {
			return nil, fmt.Errorf("empty variable name at column %d", i)
		}
		if _, ok := index[n]; ok {
			return nil, fmt.Errorf("duplicate variable name %q", n)
		}
		index[n] = i
	}

	domains := make([][]int, len(names))
	domPos := make([]map[int]int, len(names))
	for i := range names {
		domPos[i] = map[int]int{}
	}
	for r, rec := range records {
		if len(rec) != len(names) {
			return nil, fmt.Errorf("record %d has %d values, want %d", r, len(rec), len(names))
		}
		for col, v := range rec {
			if _, ok := domPos[col][v]; !ok {
				domPos[col][v] = len(domains[col])
				domains[col] = append(domains[col], v)
			}
		}
	}

	return &Dataset{
		names:   names,
		index:   index,
		records: records,
		domains: domains,
		domPos:  domPos,
	}, nil
}

// Load reads a dataset in the given format ("csv" or "sqlite").
func Load(format, path, table string) (*Dataset, error) {
	switch format {
	case "csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open dataset: %w", err)
		}
		defer f.Close()
		return FromCSV(f)
	case "sqlite":
		return FromSQLite(path, table)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", format)
	}
}

func (d *Dataset) NumVariables() int { return len(d.names) }

func (d *Dataset) NumRecords() int { return len(d.records) }

// Names returns the schema in column order. Callers must not mutate it.
func (d *Dataset) Names() []string { return d.names }

func (d *Dataset) Name(col int) string { return d.names[col] }

// Column resolves a variable name to its column index.
func (d *Dataset) Column(name string) (int, bool) {
	col, ok := d.index[name]
	return col, ok
}

// Domain returns a variable's observed values in first-observed order.
// Callers must not mutate it.
func (d *Dataset) Domain(col int) []int { return d.domains[col] }

func (d *Dataset) DomainSize(col int) int { return len(d.domains[col]) }

// DomainPos returns a value's position within the variable's domain.
func (d *Dataset) DomainPos(col, value int) (int, bool) {
	pos, ok := d.domPos[col][value]
	return pos, ok
}

func (d *Dataset) Value(row, col int) int { return d.records[row][col] }
