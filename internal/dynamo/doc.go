// Package dynamo provides the core state types for stick-and-point simulation.
//
// The package defines the entities every other package mutates or reads:
//
//   - [Point]: a Verlet point mass; velocity is implicit in (X-OldX, Y-OldY)
//   - [Engine]: a pinned anchor whose position is driven by an oscillator
//   - [Stick]: a distance constraint between two [Positionable] endpoints
//   - [State]: the full set of points, sticks and the engine for one run
//
// Points and the engine share the [Positionable] capability, so constraint
// code never needs to know which kind of endpoint it is moving.
//
// # Example
//
//	p0 := dynamo.NewPoint(100, 100)
//	p1 := dynamo.NewPoint(200, 100)
//	st := &dynamo.State{
//	    Points: []*dynamo.Point{p0, p1},
//	    Sticks: []*dynamo.Stick{dynamo.NewStick(p0, p1)},
//	}
//
// # Thread Safety
//
// State is NOT thread-safe. A State must have exactly one mutator; renderers
// read it on the same goroutine after each tick, or read a [Frame] snapshot.
package dynamo
