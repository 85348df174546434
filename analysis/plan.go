package analysis

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pivolan/go_utils"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/pivolan/results_analyzer/domain/models"
)

// DefaultPlan is the analysis run when no plan file is configured: a line
// plot of MCC by METHOD with the y axis starting at zero.
func DefaultPlan() *models.Plan {
	ymin := 0.0
	return &models.Plan{
		Steps: []models.Step{
			{Kind: models.StepLines, By: []string{"METHOD"}, Output: "MCC", YMin: &ymin},
		},
	}
}

// LoadPlan reads and validates a YAML plan.
func LoadPlan(path string) (*models.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var plan models.Plan
	if err := dec.Decode(&plan); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse plan %s: %w", path, err)
	}
	if err := ValidatePlan(&plan); err != nil {
		return nil, fmt.Errorf("plan %s: %w", path, err)
	}
	return &plan, nil
}

// ValidatePlan checks every step has a known kind and the fields it needs.
func ValidatePlan(plan *models.Plan) error {
	for i, matches := range plan.Filters {
		if len(matches) == 0 {
			return fmt.Errorf("filter %d: no matches", i+1)
		}
	}
	if len(plan.Steps) == 0 {
		return errors.New("no steps")
	}
	for i, step := range plan.Steps {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Kind, err)
		}
	}
	return nil
}

func validateStep(step models.Step) error {
	if !go_utils.InArray(string(step.Kind), models.StepKinds) {
		return fmt.Errorf("unknown kind, want one of %v", models.StepKinds)
	}
	switch step.Kind {
	case models.StepScatter:
		if step.X == "" || step.Y == "" {
			return errors.New("x and y are required")
		}
	case models.StepHeatmap:
		if step.X == "" || step.Y == "" || step.Output == "" {
			return errors.New("x, y and output are required")
		}
	case models.StepAverages, models.StepCorrelations:
		if len(step.Columns) == 0 {
			return errors.New("columns are required")
		}
	default:
		if len(step.By) == 0 || step.Output == "" {
			return errors.New("by and output are required")
		}
	}
	if step.YMin != nil && step.YMax != nil && *step.YMin >= *step.YMax {
		return fmt.Errorf("ymin %v is not below ymax %v", *step.YMin, *step.YMax)
	}
	return nil
}

func limitsOf(step models.Step, defaults Limits) Limits {
	lim := defaults
	if step.YMin != nil {
		lim.Min = *step.YMin
	}
	if step.YMax != nil {
		lim.Max = *step.YMax
	}
	return lim
}

// Run applies the plan's filters in order, then runs its steps. The first
// failure stops the run.
func (s *Session) Run(plan *models.Plan) error {
	if err := ValidatePlan(plan); err != nil {
		return err
	}
	for _, matches := range plan.Filters {
		if err := s.Filter(matches...); err != nil {
			return err
		}
	}
	for i, step := range plan.Steps {
		s.log.Debug("running step", zap.Int("step", i+1), zap.String("kind", string(step.Kind)))
		if err := s.RunStep(step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Kind, err)
		}
	}
	return nil
}

// RunStep runs a single analysis call.
func (s *Session) RunStep(step models.Step) error {
	switch step.Kind {
	case models.StepBoxes:
		return s.Boxes(step.By, step.Output, limitsOf(step, DefaultLimits))
	case models.StepLines:
		return s.Lines(step.By, step.Output, limitsOf(step, DefaultLimits))
	case models.StepLinesNums:
		return s.LinesNums(step.By, step.Output, limitsOf(step, NumsLimits))
	case models.StepBars:
		return s.Bars(step.By, step.Output, limitsOf(step, DefaultLimits))
	case models.StepScatter:
		return s.Scatter(step.X, step.Y)
	case models.StepHeatmap:
		return s.Heatmap(step.X, step.Y, step.Output)
	case models.StepHistograms:
		return s.Histograms(step.By, step.Output)
	case models.StepAverages:
		return s.Averages(step.Columns)
	case models.StepCorrelations:
		return s.Correlations(step.Columns)
	case models.StepSummary:
		return s.Summary(step.By, step.Output)
	case models.StepKruskal:
		return s.Kruskal(step.By, step.Output)
	case models.StepWilcoxon:
		return s.Wilcoxon(step.By, step.Output)
	}
	return fmt.Errorf("unknown step kind %q", step.Kind)
}
