package results

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pivolan/results_analyzer/domain/models"
)

func methodTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable([]string{"METHOD", "AUC"}, [][]string{
		{"A", "0.8"},
		{"A", "0.6"},
		{"B", "0.9"},
	})
	require.NoError(t, err)
	return table
}

func TestGroup(t *testing.T) {
	groups, err := methodTable(t).Group([]string{"METHOD"}, "AUC")
	require.NoError(t, err)

	require.Equal(t, 2, groups.Len())
	a, ok := groups.Get("A")
	require.True(t, ok)
	assert.Equal(t, []float64{0.8, 0.6}, a)
	b, ok := groups.Get("B")
	require.True(t, ok)
	assert.Equal(t, []float64{0.9}, b)
	assert.Equal(t, []string{"A", "B"}, groups.Labels())
}

func TestGroupEveryRowOnce(t *testing.T) {
	table, err := Read(strings.NewReader(`NETWORK,NODES,METHOD,AUC
n1,10,A,0.1
n1,20,A,0.2
n2,10,B,0.3
n1,10,A,0.4
n2,10,B,0.5
n2,20,A,0.6
`))
	require.NoError(t, err)

	groups, err := table.Group([]string{"NETWORK", "METHOD"}, "AUC")
	require.NoError(t, err)

	total := 0
	for _, b := range groups.Buckets() {
		total += len(b.Values)
	}
	assert.Equal(t, table.Len(), total)
	assert.Equal(t, []string{"n1-A", "n2-B", "n2-A"}, groups.Labels())

	v, ok := groups.Get("n1", "A")
	require.True(t, ok)
	assert.Equal(t, []float64{0.1, 0.2, 0.4}, v)
}

func TestGroupKeysAreStrings(t *testing.T) {
	table, err := NewTable([]string{"NODES", "AUC"}, [][]string{{"1", "0.5"}, {"1.0", "0.7"}})
	require.NoError(t, err)

	groups, err := table.Group([]string{"NODES"}, "AUC")
	require.NoError(t, err)
	assert.Equal(t, 2, groups.Len())
}

func TestGroupSeparatorInValues(t *testing.T) {
	table, err := NewTable([]string{"X", "Y", "AUC"}, [][]string{
		{"a-b", "c", "0.1"},
		{"a", "b-c", "0.2"},
	})
	require.NoError(t, err)

	groups, err := table.Group([]string{"X", "Y"}, "AUC")
	require.NoError(t, err)
	assert.Equal(t, 2, groups.Len())
	assert.Equal(t, []string{"a-b-c", "a-b-c"}, groups.Labels())

	v, ok := groups.Get("a", "b-c")
	require.True(t, ok)
	assert.Equal(t, []float64{0.2}, v)
}

func TestGroupByOrderChangesLabelNotMembership(t *testing.T) {
	table, err := NewTable([]string{"M", "N", "AUC"}, [][]string{
		{"A", "1", "0.1"}, {"A", "2", "0.2"}, {"A", "1", "0.3"},
	})
	require.NoError(t, err)

	mn, err := table.Group([]string{"M", "N"}, "AUC")
	require.NoError(t, err)
	nm, err := table.Group([]string{"N", "M"}, "AUC")
	require.NoError(t, err)

	assert.Equal(t, []string{"A-1", "A-2"}, mn.Labels())
	assert.Equal(t, []string{"1-A", "2-A"}, nm.Labels())
	v1, _ := mn.Get("A", "1")
	v2, _ := nm.Get("1", "A")
	assert.Equal(t, v1, v2)
}

func TestGroupNonNumericOutput(t *testing.T) {
	table, err := NewTable([]string{"METHOD", "AUC"}, [][]string{{"A", "0.8"}, {"A", "N/A"}})
	require.NoError(t, err)

	groups, err := table.Group([]string{"METHOD"}, "AUC")
	assert.Nil(t, groups)
	var ne *NumericFormatError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, "N/A", ne.Value)
	assert.Equal(t, 1, ne.Row)
}

func TestGroupUnknownColumn(t *testing.T) {
	_, err := methodTable(t).Group([]string{"NETWORK"}, "AUC")
	var se *SchemaError
	assert.ErrorAs(t, err, &se)

	_, err = methodTable(t).Group([]string{"METHOD"}, "MCC")
	assert.ErrorAs(t, err, &se)
}

func TestFilter(t *testing.T) {
	table := methodTable(t)

	filtered, err := table.Filter(models.Match{Column: "METHOD", Value: "A"})
	require.NoError(t, err)
	assert.Equal(t, table.Header(), filtered.Header())
	require.Equal(t, 2, filtered.Len())
	assert.Equal(t, []string{"A", "0.8"}, filtered.Row(0))
	assert.Equal(t, []string{"A", "0.6"}, filtered.Row(1))
	assert.Equal(t, 3, table.Len(), "source table untouched")
}

func TestFilterOrWithinCallAndAcrossCalls(t *testing.T) {
	table, err := Read(strings.NewReader(`METHOD,NODES,AUC
A,10,0.1
A,20,0.2
B,10,0.3
C,30,0.4
`))
	require.NoError(t, err)
	methodA := models.Match{Column: "METHOD", Value: "A"}
	nodes10 := models.Match{Column: "NODES", Value: "10"}

	or, err := table.Filter(methodA, nodes10)
	require.NoError(t, err)
	assert.Equal(t, 3, or.Len())
	assert.Equal(t, []string{"A", "10", "0.1"}, or.Row(0), "row matching both pairs is kept once")

	first, err := table.Filter(methodA)
	require.NoError(t, err)
	and, err := first.Filter(nodes10)
	require.NoError(t, err)
	require.Equal(t, 1, and.Len())
	assert.Equal(t, []string{"A", "10", "0.1"}, and.Row(0))

	same, err := table.Filter(methodA, models.Match{Column: "METHOD", Value: "C"})
	require.NoError(t, err)
	assert.Equal(t, 3, same.Len())
}

func TestFilterNoMatches(t *testing.T) {
	filtered, err := methodTable(t).Filter(models.Match{Column: "METHOD", Value: "Z"})
	require.NoError(t, err)
	assert.Equal(t, 0, filtered.Len())
	assert.Equal(t, []string{"METHOD", "AUC"}, filtered.Header())
}

func TestFilterUnknownColumn(t *testing.T) {
	_, err := methodTable(t).Filter(models.Match{Column: "NODES", Value: "10"})
	var se *SchemaError
	assert.ErrorAs(t, err, &se)
}
