package loadplan

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// minTableSize guards against truncated downloads. Anything smaller cannot
// hold a single relation row.
const minTableSize = 10

// Table is an in-memory tab separated table with upper-cased column names.
type Table struct {
	Columns []string
	Rows    [][]string

	colIndex map[string]int
}

func newTable(columns []string) *Table {
	t := &Table{
		Columns:  make([]string, len(columns)),
		colIndex: make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		name := strings.ToUpper(strings.TrimSpace(c))
		t.Columns[i] = name
		t.colIndex[name] = i
	}
	return t
}

func tsvReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return cr
}

// Read parses a tab separated table whose first row is the header.
func Read(r io.Reader) (*Table, error) {
	cr := tsvReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("table has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read table header: %w", err)
	}

	t := newTable(header)
	if err := t.readRows(cr); err != nil {
		return nil, err
	}
	return t, nil
}

// ReadHeaderless parses a tab separated table using the supplied column names.
func ReadHeaderless(r io.Reader, columns []string) (*Table, error) {
	t := newTable(columns)
	if err := t.readRows(tsvReader(r)); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Table) readRows(cr *csv.Reader) error {
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read table row: %w", err)
		}
		t.Rows = append(t.Rows, record)
	}
}

// ReadFile parses a pathway relations file, rejecting files too small to
// hold any data.
func ReadFile(path string) (*Table, error) {
	return readFile(path, nil)
}

// ReadHeaderlessFile parses a full species relations file, which ships
// without a header row.
func ReadHeaderlessFile(path string, columns []string) (*Table, error) {
	return readFile(path, columns)
}

func readFile(path string, columns []string) (*Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%s file missing: %w", path, err)
	}
	if info.Size() < minTableSize {
		return nil, fmt.Errorf("%s looks to be empty", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if columns == nil {
		return Read(f)
	}
	return ReadHeaderless(f, columns)
}

// Get returns the value of a column in the given row, or an empty string
// when the column is unknown or the row is ragged.
func (t *Table) Get(row int, column string) string {
	idx, ok := t.colIndex[column]
	if !ok {
		return ""
	}
	if row < 0 || row >= len(t.Rows) || idx >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][idx]
}

// RequireValues drops rows with an empty value in any of the given columns
// and returns how many rows were removed.
func (t *Table) RequireValues(columns ...string) int {
	var kept [][]string
	dropped := 0
	for i := range t.Rows {
		ok := true
		for _, c := range columns {
			if strings.TrimSpace(t.Get(i, c)) == "" {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, t.Rows[i])
		} else {
			dropped++
		}
	}
	t.Rows = kept
	return dropped
}
