package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/san-kum/linkage/internal/dynamo"
	"github.com/san-kum/linkage/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrajectory() *dynamo.Trajectory {
	tr := &dynamo.Trajectory{}
	tr.Append(dynamo.Frame{Tick: 1, Points: []dynamo.Vec2{{X: 1, Y: 2}, {X: 3, Y: 4}}, Engine: &dynamo.Vec2{X: 5, Y: 6}})
	tr.Append(dynamo.Frame{Tick: 2, Points: []dynamo.Vec2{{X: 1.5, Y: 2.25}, {X: 3, Y: 4}}, Engine: &dynamo.Vec2{X: 7, Y: 8}})
	return tr
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleTrajectory()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "tick,p0_x,p0_y,p1_x,p1_y,engine_x,engine_y", lines[0])
	assert.Equal(t, "2,1.5000,2.2500,3.0000,4.0000,7.0000,8.0000", lines[2])
}

func TestWriteCSVRejectsRaggedFrames(t *testing.T) {
	tr := sampleTrajectory()
	tr.Append(dynamo.Frame{Tick: 3, Points: []dynamo.Vec2{{X: 0, Y: 0}}})

	err := WriteCSV(&bytes.Buffer{}, tr)
	assert.ErrorIs(t, err, dynamo.ErrDimensionMismatch)
}

func TestWriteJSON(t *testing.T) {
	run := NewRun(42, sampleTrajectory())
	_, err := uuid.Parse(run.ID)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, run))

	var decoded Run
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, run.ID, decoded.ID)
	assert.Equal(t, int64(42), decoded.Seed)
	require.Len(t, decoded.Frames, 2)
	assert.Equal(t, 2.25, decoded.Frames[1].Points[0].Y)
}

func TestSVGSurface(t *testing.T) {
	a, b := dynamo.NewPoint(10, 20), dynamo.NewPoint(30, 40)
	st := &dynamo.State{
		Points: []*dynamo.Point{a, b},
		Sticks: []*dynamo.Stick{dynamo.NewStick(a, b)},
		Engine: dynamo.NewEngine(100, 100, 50, 0, 0.1),
	}
	svg := NewSVG(800, 600)

	render.New(svg).Render(st)
	out := svg.String()

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0"`))
	assert.Contains(t, out, `width="800" height="600"`)
	assert.Contains(t, out, `<line x1="10.00" y1="20.00" x2="30.00" y2="40.00" stroke="#000000" stroke-width="1.00"/>`)
	assert.Contains(t, out, `<circle cx="100.00" cy="100.00" r="50.00" fill="none" stroke="black"/>`)
	assert.Equal(t, 3, strings.Count(out, `fill="black"`))

	render.New(svg).Render(&dynamo.State{})
	assert.NotContains(t, svg.String(), "<line")
}

func TestSVGRejectsHostileColors(t *testing.T) {
	svg := NewSVG(100, 100)
	svg.Line(0, 0, 1, 1, `red" onload="alert(1)`, 1)
	svg.Line(0, 0, 1, 1, "#f00", 1)
	svg.Foreground = `x"/><script/>`
	svg.FillCircle(5, 5, 1)

	var buf bytes.Buffer
	n, err := svg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	out := buf.String()
	assert.NotContains(t, out, "onload")
	assert.NotContains(t, out, "<script")
	assert.Contains(t, out, `stroke="black"`)
	assert.Contains(t, out, `stroke="#ff0000"`)
	assert.Contains(t, out, `fill="x&#34;/&gt;&lt;script/&gt;"`)
}
