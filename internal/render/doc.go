// Package render drives an IFS generator onto a pixel surface.
//
// The package owns everything between fern-space points and pixels:
//
//   - [Controller]: Idle/Running state machine, throughput and paint policy
//   - [Theme]: named color policies, fixed or procedural (rainbow)
//   - [Viewport]: fern-space to pixel mapping and the default [FitViewport] sizing
//   - [ResizeFilter]: debounce policy for host resize events
//
// The controller never blocks. Each tick generates a bounded batch of
// points, paints the visible ones and asks the [Scheduler] for the next
// frame. Stopping cancels the pending frame.
//
// # Thread Safety
//
// Controller instances are NOT thread-safe. Hosts call every method, and
// fire the scheduler, from a single event goroutine.
package render
