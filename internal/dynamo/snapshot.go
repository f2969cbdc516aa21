package dynamo

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Frame is an immutable copy of the positions at one tick.
type Frame struct {
	Tick   uint64 `json:"tick"`
	Points []Vec2 `json:"points"`
	Engine *Vec2  `json:"engine,omitempty"`
}

func (s *State) Snapshot() Frame {
	f := Frame{Tick: s.Tick, Points: make([]Vec2, len(s.Points))}
	for i, p := range s.Points {
		f.Points[i] = Vec2{X: p.X, Y: p.Y}
	}
	if s.Engine != nil {
		f.Engine = &Vec2{X: s.Engine.X, Y: s.Engine.Y}
	}
	return f
}

type Axis int

const (
	AxisX Axis = iota
	AxisY
)

type Trajectory struct {
	Frames []Frame
}

func (t *Trajectory) Append(f Frame) {
	t.Frames = append(t.Frames, f)
}

func (t *Trajectory) Len() int { return len(t.Frames) }

// Series extracts one coordinate of one point across all frames.
// Frames that do not contain the point are skipped.
func (t *Trajectory) Series(point int, axis Axis) []float64 {
	out := make([]float64, 0, len(t.Frames))
	for _, f := range t.Frames {
		if point < 0 || point >= len(f.Points) {
			continue
		}
		if axis == AxisX {
			out = append(out, f.Points[point].X)
		} else {
			out = append(out, f.Points[point].Y)
		}
	}
	return out
}

// Checksum fingerprints every coordinate and the tick counter. Two runs with
// the same configuration and seed produce the same checksum.
func (s *State) Checksum() uint64 {
	d := xxhash.New()
	var buf [8]byte
	write := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		d.Write(buf[:])
	}
	binary.LittleEndian.PutUint64(buf[:], s.Tick)
	d.Write(buf[:])
	for _, p := range s.Points {
		write(p.X)
		write(p.Y)
		write(p.OldX)
		write(p.OldY)
	}
	if s.Engine != nil {
		write(s.Engine.X)
		write(s.Engine.Y)
		write(s.Engine.Angle)
	}
	return d.Sum64()
}
