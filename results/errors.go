package results

import (
	"fmt"
	"strings"
)

// FileError reports a results file that does not exist or cannot be opened.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("results file %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// FormatError reports a file that is not valid delimited text, including rows
// whose field count differs from the header.
type FormatError struct {
	Path string
	Line int // 1-based, 0 if unknown
	Err  error
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed results %s at line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("malformed results %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// SchemaError reports a column name that is absent from the header.
type SchemaError struct {
	Column  string
	Columns []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("unknown column %q (columns: %s)", e.Column, strings.Join(e.Columns, ","))
}

// NumericFormatError reports a cell that must be numeric but is not.
type NumericFormatError struct {
	Column string
	Row    int // 0-based data row, -1 when the value is not a cell
	Value  string
	Err    error
}

func (e *NumericFormatError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("column %s: %q is not a number", e.Column, e.Value)
	}
	return fmt.Sprintf("column %s row %d: %q is not a number", e.Column, e.Row, e.Value)
}

func (e *NumericFormatError) Unwrap() error { return e.Err }
