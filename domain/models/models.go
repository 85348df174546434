package models

import (
	"fmt"
	"strings"
)

type StepKind string

const (
	StepBoxes        StepKind = "boxes"
	StepLines        StepKind = "lines"
	StepLinesNums    StepKind = "lines_nums"
	StepBars         StepKind = "bars"
	StepScatter      StepKind = "scatter"
	StepHeatmap      StepKind = "heatmap"
	StepHistograms   StepKind = "histograms"
	StepAverages     StepKind = "averages"
	StepCorrelations StepKind = "correlations"
	StepSummary      StepKind = "summary"
	StepKruskal      StepKind = "kruskal"
	StepWilcoxon     StepKind = "wilcoxon"
)

// StepKinds lists every kind a plan may contain.
var StepKinds = []string{
	string(StepBoxes), string(StepLines), string(StepLinesNums), string(StepBars),
	string(StepScatter), string(StepHeatmap), string(StepHistograms),
	string(StepAverages), string(StepCorrelations), string(StepSummary),
	string(StepKruskal), string(StepWilcoxon),
}

// Match is a single column = value predicate of a filter call.
type Match struct {
	Column string `yaml:"column"`
	Value  string `yaml:"value"`
}

func (m Match) String() string {
	return m.Column + "=" + m.Value
}

// ParseMatches parses "METHOD=A,METHOD=B" into the matches of one filter call.
func ParseMatches(s string) ([]Match, error) {
	var matches []Match
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		column, value, ok := strings.Cut(part, "=")
		if !ok || column == "" {
			return nil, fmt.Errorf("invalid filter %q: expected COLUMN=VALUE", part)
		}
		matches = append(matches, Match{Column: column, Value: value})
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("empty filter %q", s)
	}
	return matches, nil
}

// Step is one analysis call of a plan. Which fields matter depends on Kind.
type Step struct {
	Kind    StepKind `yaml:"kind"`
	By      []string `yaml:"by,omitempty"`
	Output  string   `yaml:"output,omitempty"`
	Columns []string `yaml:"columns,omitempty"`
	X       string   `yaml:"x,omitempty"`
	Y       string   `yaml:"y,omitempty"`
	YMin    *float64 `yaml:"ymin,omitempty"`
	YMax    *float64 `yaml:"ymax,omitempty"`
}

// Plan is a list of chained filter calls followed by analysis steps.
type Plan struct {
	Filters [][]Match `yaml:"filters,omitempty"`
	Steps   []Step    `yaml:"steps"`
}
