package render

import "errors"

// Contract violations reported at the controller boundary.
var (
	// ErrUnknownTheme indicates a theme name outside the catalog.
	ErrUnknownTheme = errors.New("render: unknown theme")

	// ErrInvalidThroughput indicates a non-positive points-per-tick value.
	ErrInvalidThroughput = errors.New("render: throughput must be positive")
)
