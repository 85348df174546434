package results

import "github.com/pivolan/results_analyzer/domain/models"

// Filter keeps the rows for which ANY of the matches holds, i.e. the matches
// are OR-ed even when they name different columns. Chain Filter calls to get
// an AND:
//
//	t.Filter(METHOD=A, METHOD=B)             // METHOD is A or B
//	t.Filter(METHOD=A).Filter(NODES=10)      // METHOD is A and NODES is 10
//
// Values are compared as exact strings. The header is unchanged, so column
// positions stay valid, and no matching rows yields an empty table.
func (t *Table) Filter(matches ...models.Match) (*Table, error) {
	type pos struct {
		idx   int
		value string
	}
	preds := make([]pos, len(matches))
	for i, m := range matches {
		idx, err := t.index.Lookup(m.Column)
		if err != nil {
			return nil, err
		}
		preds[i] = pos{idx: idx, value: m.Value}
	}

	rows := make([][]string, 0)
	for _, row := range t.rows {
		for _, p := range preds {
			if row[p.idx] == p.value {
				rows = append(rows, row)
				break
			}
		}
	}
	return t.derive(rows), nil
}
