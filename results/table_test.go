package results

import (
	"archive/zip"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pierrec/lz4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `NETWORK,NODES,METHOD,AUC
net1,10,A,0.8
net1,10,A,0.6
net2,20,B,0.9
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "results.csv", sampleCSV)

	table, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"NETWORK", "NODES", "METHOD", "AUC"}, table.Header())
	assert.Equal(t, 3, table.Len())
	assert.Equal(t, []string{"net2", "20", "B", "0.9"}, table.Row(2))
	assert.Equal(t, path, table.Source())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, err error)
	}{
		{
			name:    "short row",
			content: "METHOD,AUC\nA\n",
			check: func(t *testing.T, err error) {
				var fe *FormatError
				require.ErrorAs(t, err, &fe)
				assert.Equal(t, 2, fe.Line)
			},
		},
		{
			name:    "long row",
			content: "METHOD,AUC\nA,0.5\nB,0.6,extra\n",
			check: func(t *testing.T, err error) {
				var fe *FormatError
				require.ErrorAs(t, err, &fe)
				assert.Equal(t, 3, fe.Line)
			},
		},
		{
			name:    "bare quote",
			content: "METHOD,AUC\nA\"x,0.5\n",
			check: func(t *testing.T, err error) {
				var fe *FormatError
				assert.ErrorAs(t, err, &fe)
			},
		},
		{
			name:    "empty file",
			content: "",
			check: func(t *testing.T, err error) {
				var fe *FormatError
				assert.ErrorAs(t, err, &fe)
			},
		},
		{
			name:    "duplicate header",
			content: "AUC,AUC\n0.1,0.2\n",
			check: func(t *testing.T, err error) {
				var fe *FormatError
				require.ErrorAs(t, err, &fe)
				assert.Contains(t, fe.Error(), "duplicate column")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "results.csv", tt.content))
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	var fe *FileError
	require.ErrorAs(t, err, &fe)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadCompressed(t *testing.T) {
	dir := t.TempDir()

	gzPath := filepath.Join(dir, "results.csv.gz")
	f, err := os.Create(gzPath)
	require.NoError(t, err)
	gw := gzip.NewWriter(f)
	_, err = gw.Write([]byte(sampleCSV))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, f.Close())

	lz4Path := filepath.Join(dir, "results.csv.lz4")
	f, err = os.Create(lz4Path)
	require.NoError(t, err)
	lw := lz4.NewWriter(f)
	_, err = lw.Write([]byte(sampleCSV))
	require.NoError(t, err)
	require.NoError(t, lw.Close())
	require.NoError(t, f.Close())

	zipPath := filepath.Join(dir, "results.zip")
	f, err = os.Create(zipPath)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	small, err := zw.Create("README.txt")
	require.NoError(t, err)
	_, err = small.Write([]byte("x"))
	require.NoError(t, err)
	member, err := zw.Create("out/results.csv")
	require.NoError(t, err)
	_, err = member.Write([]byte(sampleCSV))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	for _, path := range []string{gzPath, lz4Path, zipPath} {
		t.Run(filepath.Base(path), func(t *testing.T) {
			table, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, 3, table.Len())
			assert.Equal(t, "METHOD", table.Header()[2])
		})
	}
}

func TestLoadCorruptGzip(t *testing.T) {
	_, err := Load(writeFile(t, "results.csv.gz", "not gzip at all"))
	var fe *FormatError
	assert.ErrorAs(t, err, &fe)
}

func TestIndicesBijection(t *testing.T) {
	header := []string{"NETWORK", "NODES", "EDGES", "SAMPLES", "METHOD", "AUC"}
	index := Indices(header)

	require.Len(t, index, len(header))
	seen := map[int]bool{}
	for name, pos := range index {
		assert.Equal(t, name, header[pos])
		assert.False(t, seen[pos], "position %d mapped twice", pos)
		seen[pos] = true
	}
	assert.Equal(t, header, index.Names())
}

func TestLookupUnknownColumn(t *testing.T) {
	table, err := Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	_, err = table.Column("MCC")
	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "MCC", se.Column)
	assert.Equal(t, table.Header(), se.Columns)
}

func TestFloats(t *testing.T) {
	table, err := Read(strings.NewReader("AUC,NOTE\n0.5,x\n 0.25 ,N/A\n"))
	require.NoError(t, err)

	values, err := table.Floats("AUC")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.25}, values)

	_, err = table.Floats("NOTE")
	var ne *NumericFormatError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, 0, ne.Row)
	assert.Equal(t, "x", ne.Value)
}

func TestNewTable(t *testing.T) {
	_, err := NewTable([]string{"A", "B"}, [][]string{{"1", "2"}, {"3"}})
	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 3, fe.Line)

	table, err := NewTable([]string{"A", "B"}, [][]string{{"1", "2"}})
	require.NoError(t, err)
	v, err := table.Value(0, "B")
	require.NoError(t, err)
	assert.Equal(t, "2", v)
}

func TestNewTableCopiesInput(t *testing.T) {
	header := []string{"METHOD", "AUC"}
	rows := [][]string{{"A", "0.8"}, {"B", "0.9"}}
	table, err := NewTable(header, rows)
	require.NoError(t, err)

	rows[0][1] = "N/A"
	rows[1] = []string{"C", "0.1"}
	header[1] = "MCC"

	v, err := table.Value(0, "AUC")
	require.NoError(t, err)
	assert.Equal(t, "0.8", v)
	v, err = table.Value(1, "METHOD")
	require.NoError(t, err)
	assert.Equal(t, "B", v)
}

func TestLookupWithRepeatedNames(t *testing.T) {
	index := Indices([]string{"A", "A", "B"})
	assert.Equal(t, []string{"A", "B"}, index.Names())

	_, err := index.Lookup("C")
	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, []string{"A", "B"}, se.Columns)
}
