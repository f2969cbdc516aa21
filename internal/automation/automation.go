// Package automation runs scripted sequences of linkage simulations.
package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/san-kum/linkage/internal/config"
	"github.com/san-kum/linkage/internal/dynamo"
	"github.com/san-kum/linkage/internal/experiment"
	"github.com/san-kum/linkage/internal/export"
	"github.com/san-kum/linkage/internal/logging"
	"github.com/san-kum/linkage/internal/sim"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted list of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset (reference when empty) and overrides
// what it sets. SaveAs, when set, receives the trajectory as CSV.
type ScenarioStep struct {
	Preset string             `yaml:"preset"`
	Ticks  int                `yaml:"ticks"`
	Seed   *int64             `yaml:"seed"`
	Every  int                `yaml:"every"`
	Params map[string]float64 `yaml:"params"`
	SaveAs string             `yaml:"save_as"`
}

type StepResult struct {
	Step   int
	Preset string
	*sim.Result
	Frames int
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%s: scenario has no steps", path)
	}
	return &scenario, nil
}

func (s ScenarioStep) presetName() string {
	if s.Preset == "" {
		return "reference"
	}
	return s.Preset
}

// Config resolves the step into a validated configuration.
func (s ScenarioStep) Config() (*config.Config, error) {
	cfg, err := config.GetPreset(s.presetName())
	if err != nil {
		return nil, err
	}
	if s.Ticks > 0 {
		cfg.Run.Ticks = s.Ticks
	}
	if s.Seed != nil {
		cfg.Run.Seed = *s.Seed
	}
	for k, v := range s.Params {
		if err := cfg.SetParam(k, v); err != nil {
			return nil, err
		}
	}
	return cfg, cfg.Validate()
}

// RunScenario executes the steps in order and stops at the first failure,
// returning the results gathered so far.
func RunScenario(ctx context.Context, scenario *Scenario, logger *zap.Logger) ([]StepResult, error) {
	logger = logging.OrNop(logger)
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		logger.Info("running step",
			zap.String("scenario", scenario.Name),
			zap.Int("step", i+1),
			zap.Int("of", len(scenario.Steps)),
			zap.String("preset", step.Preset),
		)

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		exp, err := experiment.New(cfg, logger.With(zap.Int("step", i+1)))
		if err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}
		rec := sim.NewRecorder(step.Every)
		exp.Simulator().AddObserver(rec)

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		if step.SaveAs != "" {
			if err := saveCSV(step.SaveAs, rec.Trajectory()); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}

		results = append(results, StepResult{
			Step:   i + 1,
			Preset: step.presetName(),
			Result: result,
			Frames: rec.Trajectory().Len(),
		})
	}

	return results, nil
}

func saveCSV(path string, traj *dynamo.Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteCSV(f, traj); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: need at least one value, got %d", dynamo.ErrParameterBounds, n)
	}
	if n == 1 {
		return []float64{lo}, nil
	}
	step := (hi - lo) / float64(n-1)
	values := make([]float64, n)
	for i := range values {
		values[i] = lo + float64(i)*step
	}
	values[n-1] = hi
	return values, nil
}
