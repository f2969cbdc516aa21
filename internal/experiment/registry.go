package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/linkage/internal/config"
	"github.com/san-kum/linkage/internal/metrics"
	"github.com/san-kum/linkage/internal/sim"
)

type Registry struct {
	metrics map[string]func() sim.Metric
}

func NewRegistry(cfg *config.Config) *Registry {
	r := &Registry{
		metrics: make(map[string]func() sim.Metric),
	}

	r.metrics["max_strain"] = func() sim.Metric { return metrics.NewMaxStrain() }
	r.metrics["kinetic_energy"] = func() sim.Metric { return metrics.NewKineticEnergy() }
	r.metrics["containment"] = func() sim.Metric {
		return metrics.NewContainment(cfg.Surface.Width, cfg.Surface.Height)
	}

	return r
}

func (r *Registry) GetMetric(name string) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

func (r *Registry) MetricNames() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
