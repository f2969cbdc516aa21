package metrics

import "github.com/san-kum/linkage/internal/dynamo"

// KineticEnergy averages the total kinetic energy of the free points over
// every observed tick, using the implicit per-tick velocity and unit mass.
type KineticEnergy struct {
	name    string
	total   float64
	last    float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(st *dynamo.State) {
	k.last = Kinetic(st)
	k.total += k.last
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

// Last is the energy seen at the most recent tick.
func (k *KineticEnergy) Last() float64 { return k.last }

func (k *KineticEnergy) Reset() {
	k.total = 0
	k.last = 0
	k.samples = 0
}

// Kinetic returns the sum of 0.5*|v|^2 over the non-pinned points of st.
func Kinetic(st *dynamo.State) float64 {
	var e float64
	for _, p := range st.Points {
		if p.Pinned {
			continue
		}
		vx, vy := p.Velocity()
		e += 0.5 * (vx*vx + vy*vy)
	}
	return e
}
