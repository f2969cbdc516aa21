package metrics

import "github.com/san-kum/linkage/internal/dynamo"

// MaxStrain tracks the largest |distance - rest length| of any stick over
// all observed ticks.
type MaxStrain struct {
	name string
	peak float64
	last float64
}

func NewMaxStrain() *MaxStrain {
	return &MaxStrain{name: "max_strain"}
}

func (m *MaxStrain) Name() string { return m.name }

func (m *MaxStrain) Observe(st *dynamo.State) {
	m.last = st.MaxStrain()
	if m.last > m.peak {
		m.peak = m.last
	}
}

func (m *MaxStrain) Value() float64 { return m.peak }

// Last is the strain seen at the most recent tick.
func (m *MaxStrain) Last() float64 { return m.last }

func (m *MaxStrain) Reset() {
	m.peak = 0
	m.last = 0
}
