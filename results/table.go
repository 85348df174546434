package results

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const SEPARATOR = ','

// Table is a header plus rows of string cells aligned with it. A Table is
// never modified after construction; Filter and Group derive new values.
type Table struct {
	source string
	header []string
	rows   [][]string
	index  ColumnIndex
}

// NewTable builds a table from copies of header and rows. Every row must have
// as many cells as the header, and header names must be unique.
func NewTable(header []string, rows [][]string) (*Table, error) {
	if err := validateHeader(header); err != nil {
		return nil, &FormatError{Err: err}
	}
	copied := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, &FormatError{Line: i + 2, Err: fmt.Errorf("row has %d fields, header has %d", len(row), len(header))}
		}
		copied[i] = append([]string(nil), row...)
	}
	return &Table{
		header: append([]string(nil), header...),
		rows:   copied,
		index:  Indices(header),
	}, nil
}

// Load reads a comma separated results file. The first record is the header;
// every cell stays a string.
func Load(path string) (*Table, error) {
	rc, err := openResults(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	t, err := Read(rc)
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			fe.Path = path
		}
		return nil, err
	}
	t.source = path
	return t, nil
}

// Read parses CSV results from r.
func Read(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = SEPARATOR

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &FormatError{Line: 1, Err: errors.New("missing header")}
		}
		return nil, asFormatError(err)
	}
	if err := validateHeader(header); err != nil {
		return nil, &FormatError{Line: 1, Err: err}
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, asFormatError(err)
		}
		rows = append(rows, record)
	}
	return &Table{header: header, rows: rows, index: Indices(header)}, nil
}

func asFormatError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &FormatError{Line: pe.StartLine, Err: pe.Err}
	}
	return &FormatError{Err: err}
}

// Source is the path the table was loaded from, empty for derived or in-memory tables.
func (t *Table) Source() string { return t.source }

// Header returns a copy of the column names.
func (t *Table) Header() []string { return append([]string(nil), t.header...) }

// Index returns the column index shared by this table and everything derived from it.
func (t *Table) Index() ColumnIndex { return t.index }

// Len is the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// Row returns a copy of data row i.
func (t *Table) Row(i int) []string { return append([]string(nil), t.rows[i]...) }

// Value returns the cell of row i at the named column.
func (t *Table) Value(i int, column string) (string, error) {
	idx, err := t.index.Lookup(column)
	if err != nil {
		return "", err
	}
	return t.rows[i][idx], nil
}

// Column returns every value of the named column in row order.
func (t *Table) Column(name string) ([]string, error) {
	idx, err := t.index.Lookup(name)
	if err != nil {
		return nil, err
	}
	values := make([]string, len(t.rows))
	for i, row := range t.rows {
		values[i] = row[idx]
	}
	return values, nil
}

// Floats returns the named column converted to numbers. The first cell that
// does not parse aborts the conversion.
func (t *Table) Floats(name string) ([]float64, error) {
	idx, err := t.index.Lookup(name)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(t.rows))
	for i, row := range t.rows {
		v, err := ParseFloat(name, i, row[idx])
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// ParseFloat converts a cell the way numeric columns are read everywhere.
func ParseFloat(column string, row int, cell string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, &NumericFormatError{Column: column, Row: row, Value: cell, Err: err}
	}
	return v, nil
}

// derive returns a table sharing header and index with t.
func (t *Table) derive(rows [][]string) *Table {
	return &Table{header: t.header, rows: rows, index: t.index}
}
