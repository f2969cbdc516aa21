package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/linkage/internal/dynamo"
)

// Run is the JSON document written for a recorded trajectory.
type Run struct {
	ID        string         `json:"id"`
	Seed      int64          `json:"seed"`
	CreatedAt time.Time      `json:"created_at"`
	Frames    []dynamo.Frame `json:"frames"`
}

func NewRun(seed int64, traj *dynamo.Trajectory) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Seed:      seed,
		CreatedAt: time.Now().UTC(),
		Frames:    traj.Frames,
	}
}

func WriteJSON(w io.Writer, run *Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(run)
}

// WriteCSV writes one row per frame: tick, then x/y for every point, then
// the engine position when present.
func WriteCSV(w io.Writer, traj *dynamo.Trajectory) error {
	if traj.Len() == 0 {
		return nil
	}
	cw := csv.NewWriter(w)

	first := traj.Frames[0]
	header := []string{"tick"}
	for i := range first.Points {
		header = append(header, fmt.Sprintf("p%d_x", i), fmt.Sprintf("p%d_y", i))
	}
	if first.Engine != nil {
		header = append(header, "engine_x", "engine_y")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, 0, len(header))
	for _, f := range traj.Frames {
		if len(f.Points) != len(first.Points) {
			return fmt.Errorf("%w: frame %d has %d points, want %d", dynamo.ErrDimensionMismatch, f.Tick, len(f.Points), len(first.Points))
		}
		row = append(row[:0], strconv.FormatUint(f.Tick, 10))
		for _, p := range f.Points {
			row = append(row, formatFloat(p.X), formatFloat(p.Y))
		}
		if first.Engine != nil {
			if f.Engine == nil {
				row = append(row, "", "")
			} else {
				row = append(row, formatFloat(f.Engine.X), formatFloat(f.Engine.Y))
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
