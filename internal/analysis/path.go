package analysis

import (
	"strings"

	"github.com/san-kum/linkage/internal/dynamo"
)

// PathToASCII plots the path of one point over a width x height character
// grid covering the surface. Screen y grows downward, as on the surface.
func PathToASCII(traj *dynamo.Trajectory, point int, surfaceW, surfaceH float64, width, height int) string {
	if traj == nil || traj.Len() == 0 || width < 1 || height < 1 {
		return ""
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	xs := traj.Series(point, dynamo.AxisX)
	ys := traj.Series(point, dynamo.AxisY)
	for i := range xs {
		col := int(xs[i] / surfaceW * float64(width-1))
		row := int(ys[i] / surfaceH * float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	border := "+" + strings.Repeat("-", width) + "+\n"
	sb.WriteString(border)
	for _, row := range canvas {
		sb.WriteRune('|')
		sb.WriteString(string(row))
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	return sb.String()
}
