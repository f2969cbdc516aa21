// Package viz provides the terminal view of a running linkage.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: steps a simulator on every bubbletea tick
//   - [Canvas]: Braille-based pixel canvas
//   - [Viewport]: a render.Surface that scales the world onto a Canvas
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	N     - Single step while paused
//	R     - Reset to the seeded initial state
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help
//	Q     - Quit
package viz
