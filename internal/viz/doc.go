// Package viz hosts the fern renderer in a terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: drives a render.Controller from frame ticks, keys and
//     window-size messages
//   - [Canvas]: Braille-based render.Surface with per-cell color
//   - [SparklineChart] and [GradientText]: small styled widgets
//
// # Key Bindings
//
//	Space - Start/Stop drawing
//	S / X - Start / Stop
//	R     - Reset the fern
//	T     - Cycle color themes
//	+ / - - Double / halve points per frame
//	?     - Show help overlay
//	Q     - Quit
//
// # Resizing
//
// Window-size messages pass through a render.ResizeFilter. The first size
// is applied at once; later ones wait out the debounce period and are
// dropped when the change is below the policy thresholds, which are given
// in host pixels and scaled to terminal cells.
package viz
