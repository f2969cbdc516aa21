// Package optim searches physics parameters for the setting that minimises
// a run metric.
package optim

import (
	"context"
	"math"

	"github.com/san-kum/linkage/internal/sim"
)

// Build returns a runner for one parameter combination.
type Build func(params map[string]float64) (Runner, error)

type Runner interface {
	Run(ctx context.Context) (*sim.Result, error)
}

type Trial struct {
	Params map[string]float64
	Value  float64
	Err    error
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search runs every combination in the grid and returns the one with the
// smallest metricName, plus all trials in grid order. Combinations that
// fail to build or run are recorded and skipped. Cancellation stops the
// search with ctx.Err().
func (g *GridSearch) Search(ctx context.Context, build Build, metricName string) (map[string]float64, float64, []Trial, error) {
	best := math.Inf(1)
	var bestParams map[string]float64
	var trials []Trial

	err := g.searchRecursive(ctx, 0, make(map[string]float64), func(params map[string]float64) {
		t := Trial{Params: params, Value: math.NaN()}
		defer func() { trials = append(trials, t) }()

		runner, err := build(params)
		if err != nil {
			t.Err = err
			return
		}
		result, err := runner.Run(ctx)
		if err != nil {
			t.Err = err
			return
		}
		t.Value = result.Metrics[metricName]
		if t.Value < best {
			best = t.Value
			bestParams = params
		}
	})
	return bestParams, best, trials, err
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	visit func(map[string]float64),
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.paramNames) {
		visit(current)
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, visit); err != nil {
			return err
		}
	}
	return nil
}
