package physics

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/linkage/internal/config"
	"github.com/san-kum/linkage/internal/dynamo"
)

// Build creates the points, engine and sticks described by scene. Stick rest
// lengths are measured before the perturbation, which only touches OldX/OldY.
// rng may be nil when scene.Perturb is zero.
func Build(scene config.SceneConfig, rng *rand.Rand) (*dynamo.State, error) {
	if err := scene.Validate(); err != nil {
		return nil, err
	}

	st := &dynamo.State{
		Points: make([]*dynamo.Point, len(scene.Points)),
		Sticks: make([]*dynamo.Stick, 0, len(scene.Sticks)),
	}
	for i, pc := range scene.Points {
		p := dynamo.NewPoint(pc.X, pc.Y)
		p.Pinned = pc.Pinned
		st.Points[i] = p
	}
	if ec := scene.Engine; ec != nil {
		st.Engine = dynamo.NewEngine(ec.BaseX, ec.BaseY, ec.Range, ec.Angle, ec.Speed)
	}

	endpoint := func(idx int) dynamo.Positionable {
		if idx == config.EngineEndpoint {
			return st.Engine
		}
		return st.Points[idx]
	}
	for _, sc := range scene.Sticks {
		s := dynamo.NewStick(endpoint(sc.P0), endpoint(sc.P1))
		s.Hidden = sc.Hidden
		s.Color = sc.Color
		s.Width = sc.Width
		st.Sticks = append(st.Sticks, s)
	}

	if scene.Perturb > 0 {
		if rng == nil {
			return nil, fmt.Errorf("%w: perturb %g needs a random source", dynamo.ErrParameterBounds, scene.Perturb)
		}
		Perturb(st.Points[scene.PerturbPoint], scene.Perturb, rng)
	}
	return st, nil
}

// Perturb shifts the previous position of p by a uniform offset in
// [-amount, amount) on each axis, giving it an initial velocity.
func Perturb(p *dynamo.Point, amount float64, rng *rand.Rand) {
	p.OldX += rng.Float64()*2*amount - amount
	p.OldY += rng.Float64()*2*amount - amount
}
