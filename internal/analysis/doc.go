// Package analysis characterises recorded trajectories.
//
//   - [Spectrum] and [DominantFrequency]: frequency content of one point
//     coordinate over time
//   - [Separation] and [LyapunovEstimate]: how fast two runs that differ
//     only by seed drift apart
//   - [PathToASCII]: the path a point traced across the surface
//
// # Frequencies
//
// Sample rate is in frames per second, so a point that follows the engine
// shows a peak near fps * speed / 2π:
//
//	f, err := analysis.DominantFrequency(traj.Series(4, dynamo.AxisX), 60)
package analysis
