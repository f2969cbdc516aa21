// Package physics drives the engine anchor and builds simulation state
// from a scene description.
//
//   - [Advance]: moves an engine one step along its circular orbit
//   - [Build]: turns a [config.SceneConfig] into a [dynamo.State]
//
// # Perturbation
//
// Build nudges the previous position of one point by a random offset so
// that two runs with different seeds diverge from the first tick:
//
//	rng := rand.New(rand.NewSource(seed))
//	st, err := physics.Build(cfg.Scene, rng)
package physics
