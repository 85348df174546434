package analysis

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pivolan/results_analyzer/domain/models"
	"github.com/pivolan/results_analyzer/plot"
	"github.com/pivolan/results_analyzer/results"
)

func sampleTable(t *testing.T) *results.Table {
	t.Helper()
	table, err := results.NewTable(
		[]string{"METHOD", "NODES", "SAMPLES", "MCC", "AUC"},
		[][]string{
			{"A", "10", "100", "0.1", "0.50"},
			{"B", "10", "100", "0.2", "0.60"},
			{"A", "20", "100", "0.2", "0.55"},
			{"B", "20", "200", "0.4", "0.70"},
			{"A", "10", "200", "0.3", "0.60"},
			{"B", "10", "200", "0.6", "0.80"},
			{"A", "20", "200", "0.4", "0.65"},
			{"B", "20", "100", "0.8", "0.90"},
			{"A", "5", "x", "0.5", "0.70"},
			{"B", "5", "x", "1.0", "0.95"},
		})
	require.NoError(t, err)
	return table
}

type fixture struct {
	session *Session
	gallery *plot.Gallery
	out     *bytes.Buffer
	logs    *observer.ObservedLogs
}

func newFixture(t *testing.T) fixture {
	core, logs := observer.New(zapcore.DebugLevel)
	gallery := plot.NewGallery(zap.New(core), 400, 300)
	out := &bytes.Buffer{}
	return fixture{
		session: NewSession(sampleTable(t), gallery, out, zap.New(core), 0.01),
		gallery: gallery,
		out:     out,
		logs:    logs,
	}
}

func TestFilterLogsAndNarrows(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Filter(models.Match{Column: "NODES", Value: "10"}, models.Match{Column: "NODES", Value: "20"}))
	assert.Equal(t, 8, f.session.Table().Len())
	require.NoError(t, f.session.Filter(models.Match{Column: "METHOD", Value: "A"}))
	assert.Equal(t, 4, f.session.Table().Len())

	entries := f.logs.FilterMessage("filter applied").All()
	require.Len(t, entries, 2)
	assert.Equal(t, int64(10), entries[0].ContextMap()["rowsBefore"])
	assert.Equal(t, int64(8), entries[0].ContextMap()["rowsAfter"])
	assert.Contains(t, f.out.String(), "*** FILTER: [NODES=10 NODES=20] ***")
}

func TestFilterUnknownColumn(t *testing.T) {
	f := newFixture(t)
	var se *results.SchemaError
	assert.ErrorAs(t, f.session.Filter(models.Match{Column: "NOPE", Value: "1"}), &se)
	assert.Equal(t, 10, f.session.Table().Len())
}

func TestPlots(t *testing.T) {
	tests := []struct {
		name    string
		run     func(s *Session) error
		figures int
	}{
		{"boxes", func(s *Session) error { return s.Boxes([]string{"METHOD"}, "AUC", DefaultLimits) }, 1},
		{"lines", func(s *Session) error { return s.Lines([]string{"METHOD", "NODES"}, "MCC", Limits{0, 1}) }, 1},
		{"lines nums", func(s *Session) error { return s.LinesNums([]string{"NODES"}, "MCC", NumsLimits) }, 1},
		{"bars", func(s *Session) error { return s.Bars([]string{"METHOD"}, "AUC", DefaultLimits) }, 1},
		{"scatter", func(s *Session) error { return s.Scatter("MCC", "AUC") }, 1},
		{"heatmap", func(s *Session) error { return s.Heatmap("NODES", "SAMPLES", "AUC") }, 1},
		{"histograms", func(s *Session) error { return s.Histograms([]string{"METHOD"}, "MCC") }, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			require.NoError(t, tt.run(f.session))
			assert.Equal(t, tt.figures, f.gallery.Pending())

			written, err := f.gallery.Show(t.TempDir(), plot.FormatPNG)
			require.NoError(t, err)
			assert.Len(t, written, tt.figures)
		})
	}
}

func TestLinesNumsRejectsTextLabels(t *testing.T) {
	f := newFixture(t)
	err := f.session.LinesNums([]string{"METHOD"}, "MCC", NumsLimits)
	var ne *results.NumericFormatError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, -1, ne.Row)
}

func TestHeatmapLabels(t *testing.T) {
	assert.Equal(t, []string{"5", "10", "20", "100", "abc", "x"},
		heatmapLabels([]string{"x", "20", "abc", "5", "100", "10", "20"}))
}

func TestAverages(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Averages([]string{"MCC", "AUC"}))
	assert.Equal(t, "       MCC 0.450\n       AUC 0.695\n", f.out.String())

	var ne *results.NumericFormatError
	assert.ErrorAs(t, f.session.Averages([]string{"SAMPLES"}), &ne)
}

func TestCorrelations(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Correlations([]string{"NODES", "MCC", "AUC"}))
	lines := strings.Split(strings.TrimSpace(f.out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[0], "MCC      NODES"))
	assert.True(t, strings.HasSuffix(lines[1], "AUC      NODES"))
	assert.True(t, strings.HasSuffix(lines[2], "AUC        MCC"))
}

func TestSummary(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Summary([]string{"METHOD"}, "MCC"))
	out := f.out.String()
	assert.Contains(t, out, "GROUP")
	assert.Less(t, strings.Index(out, "| A "), strings.Index(out, "| B "), "ordered by ascending mean")
}

func TestKruskal(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Kruskal([]string{"METHOD"}, "MCC"))
	assert.Equal(t, "METHOD vs MCC\nKruskal-Wallis p = 1.149610e-01 => No significant difference\n", f.out.String())
}

func TestKruskalSingleGroup(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Filter(models.Match{Column: "METHOD", Value: "A"}))
	assert.Error(t, f.session.Kruskal([]string{"METHOD"}, "MCC"))
}

func TestWilcoxon(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Wilcoxon([]string{"METHOD"}, "MCC"))
	assert.Equal(t, "  B - A :   4.311445e-02\n", f.out.String())
}

func TestWilcoxonUnpaired(t *testing.T) {
	f := newFixture(t)
	assert.Error(t, f.session.Wilcoxon([]string{"NODES"}, "MCC"))
}

func TestScatterWithoutVariation(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Filter(models.Match{Column: "MCC", Value: "0.1"}))
	require.NoError(t, f.session.Scatter("MCC", "AUC"))
	assert.Equal(t, 1, f.logs.FilterMessage("no correlation for scatter").Len())
	assert.Equal(t, 1, f.gallery.Pending())
}

func TestPlotsOfOneGroup(t *testing.T) {
	tests := []struct {
		name string
		run  func(s *Session) error
	}{
		{"boxes", func(s *Session) error { return s.Boxes([]string{"METHOD"}, "AUC", DefaultLimits) }},
		{"lines", func(s *Session) error { return s.Lines([]string{"METHOD"}, "MCC", Limits{0, 1}) }},
		{"lines nums", func(s *Session) error { return s.LinesNums([]string{"NODES"}, "MCC", NumsLimits) }},
		{"bars", func(s *Session) error { return s.Bars([]string{"METHOD"}, "AUC", DefaultLimits) }},
		{"scatter", func(s *Session) error { return s.Scatter("MCC", "AUC") }},
		{"heatmap", func(s *Session) error { return s.Heatmap("NODES", "SAMPLES", "AUC") }},
		{"histograms", func(s *Session) error { return s.Histograms([]string{"METHOD"}, "MCC") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			require.NoError(t, f.session.Filter(models.Match{Column: "METHOD", Value: "A"}))
			require.NoError(t, f.session.Filter(models.Match{Column: "NODES", Value: "10"}))
			require.Equal(t, 2, f.session.Table().Len())
			require.NoError(t, tt.run(f.session))

			written, err := f.gallery.Show(t.TempDir(), plot.FormatPNG, plot.FormatHTML)
			require.NoError(t, err)
			assert.Len(t, written, 2)
		})
	}
}
