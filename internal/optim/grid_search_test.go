package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/linkage/internal/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRunner struct{ value float64 }

func (r fixedRunner) Run(context.Context) (*sim.Result, error) {
	return &sim.Result{Metrics: map[string]float64{"cost": r.value}}, nil
}

func TestGridSearchFindsMinimum(t *testing.T) {
	g := NewGridSearch([]string{"a", "b"}, [][]float64{{1, 2, 3}, {10, 20}})

	build := func(p map[string]float64) (Runner, error) {
		if p["a"] == 3 && p["b"] == 20 {
			return nil, errors.New("unbuildable")
		}
		// minimum at a=2, b=10
		return fixedRunner{value: (p["a"]-2)*(p["a"]-2) + p["b"]}, nil
	}

	best, value, trials, err := g.Search(context.Background(), build, "cost")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"a": 2, "b": 10}, best)
	assert.Equal(t, 10.0, value)
	require.Len(t, trials, 6)
	assert.Error(t, trials[5].Err)
	assert.Equal(t, map[string]float64{"a": 1, "b": 10}, trials[0].Params)
}

func TestGridSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGridSearch([]string{"a"}, [][]float64{{1}})
	_, _, trials, err := g.Search(ctx, func(map[string]float64) (Runner, error) {
		return fixedRunner{}, nil
	}, "cost")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, trials)
}
