package results

import (
	"fmt"
	"sort"
)

// ColumnIndex maps a column name to its position in the header.
type ColumnIndex map[string]int

// Indices builds the name to position mapping for header. A repeated name
// maps to its last position; NewTable rejects such headers.
func Indices(header []string) ColumnIndex {
	index := make(ColumnIndex, len(header))
	for i, name := range header {
		index[name] = i
	}
	return index
}

// Lookup returns the position of name or a SchemaError listing the known columns.
func (c ColumnIndex) Lookup(name string) (int, error) {
	if i, ok := c[name]; ok {
		return i, nil
	}
	return -1, &SchemaError{Column: name, Columns: c.Names()}
}

// LookupAll resolves names in order.
func (c ColumnIndex) LookupAll(names []string) ([]int, error) {
	idxs := make([]int, len(names))
	for i, name := range names {
		idx, err := c.Lookup(name)
		if err != nil {
			return nil, err
		}
		idxs[i] = idx
	}
	return idxs, nil
}

// Names returns the column names ordered by position.
func (c ColumnIndex) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return c[names[i]] < c[names[j]] })
	return names
}

// validateHeader rejects empty and duplicate column names, which would break
// the one-to-one mapping between names and positions.
func validateHeader(header []string) error {
	seen := make(map[string]int, len(header))
	for i, name := range header {
		if name == "" {
			return fmt.Errorf("column %d has an empty name", i+1)
		}
		if prev, exists := seen[name]; exists {
			return fmt.Errorf("duplicate column %q at positions %d and %d", name, prev+1, i+1)
		}
		seen[name] = i
	}
	return nil
}
