// Package viz renders a running simulation in the terminal with Bubble Tea.
//
//   - [Model]: live view of one body collection with pause, reset,
//     regeneration and parameter tuning
//   - [App]: preset picker that launches a [Model]
//   - [Canvas]: braille pixel canvas with per-cell colour
//   - [Camera]: orthographic projection with rotation and zoom
//
// # Key Bindings
//
//	Space   - Pause/Resume simulation
//	R       - Reset to the bodies the run started with
//	n/N     - Change the satellite count, Enter regenerates
//	Tab/↑↓  - Select and tune G, time scale, restitution
//	x/y +/- - Rotate and zoom the camera
//	?       - Show help overlay
//
// The view owns the bodies between ticks. A paused model does not call
// the stepper at all.
package viz
