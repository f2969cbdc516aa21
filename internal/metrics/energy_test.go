package metrics

import (
	"testing"

	"github.com/san-kum/linkage/internal/dynamo"
	"github.com/stretchr/testify/assert"
)

func movingState() *dynamo.State {
	return &dynamo.State{
		Points: []*dynamo.Point{
			{X: 10, Y: 10, OldX: 7, OldY: 6},
			{X: 5, Y: 5, OldX: 0, OldY: 0, Pinned: true},
			dynamo.NewPoint(50, 50),
		},
	}
}

func TestKineticIgnoresPinned(t *testing.T) {
	// only the first point moves: v = (3, 4), 0.5 * 25
	assert.InDelta(t, 12.5, Kinetic(movingState()), 1e-12)
}

func TestKineticEnergyAverage(t *testing.T) {
	m := NewKineticEnergy()
	st := movingState()

	m.Observe(st)
	st.Points[0].OldX, st.Points[0].OldY = st.Points[0].X, st.Points[0].Y
	m.Observe(st)

	assert.Equal(t, "kinetic_energy", m.Name())
	assert.InDelta(t, 6.25, m.Value(), 1e-12)
	assert.Equal(t, 0.0, m.Last())

	m.Reset()
	assert.Equal(t, 0.0, m.Value())
}

func TestMaxStrainKeepsPeak(t *testing.T) {
	a, b := dynamo.NewPoint(0, 0), dynamo.NewPoint(10, 0)
	st := &dynamo.State{
		Points: []*dynamo.Point{a, b},
		Sticks: []*dynamo.Stick{dynamo.NewStick(a, b)},
	}
	m := NewMaxStrain()

	b.X = 13
	m.Observe(st)
	b.X = 9
	m.Observe(st)

	assert.InDelta(t, 3, m.Value(), 1e-12)
	assert.InDelta(t, 1, m.Last(), 1e-12)

	m.Reset()
	assert.Equal(t, 0.0, m.Value())
}

func TestContainment(t *testing.T) {
	m := NewContainment(100, 100)
	assert.Equal(t, 1.0, m.Value(), "no samples counts as contained")

	st := &dynamo.State{Points: []*dynamo.Point{dynamo.NewPoint(50, 50)}}
	m.Observe(st)
	st.Points[0].X = 101
	m.Observe(st)
	m.Observe(st)
	st.Points[0].X = 100
	m.Observe(st)

	assert.InDelta(t, 0.5, m.Value(), 1e-12)

	m.Reset()
	assert.Equal(t, 1.0, m.Value())
}
