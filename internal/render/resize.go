package render

import "time"

// ResizePolicy decides which host resize events reach the controller.
type ResizePolicy struct {
	// Debounce is the quiet period after the last size change.
	Debounce time.Duration
	// MinDX and MinDY are the smallest width/height changes, relative to the
	// last applied size, worth a re-layout. Smaller churn (a mobile address
	// bar sliding in, a terminal tab bar) is ignored.
	MinDX, MinDY int
}

// DefaultResizePolicy waits 300ms and ignores changes up to 50px wide or 100px tall.
func DefaultResizePolicy() ResizePolicy {
	return ResizePolicy{Debounce: 300 * time.Millisecond, MinDX: 50, MinDY: 100}
}

// ResizeFilter debounces raw size events. The first size is applied at
// once; later sizes are applied after the debounce period if they differ
// enough from the last applied size.
type ResizeFilter struct {
	policy ResizePolicy

	applied      bool
	lastW, lastH int
	rawW, rawH   int

	pending            bool
	pendingSince       time.Time
	pendingW, pendingH int
}

// NewResizeFilter returns a filter using policy.
func NewResizeFilter(policy ResizePolicy) *ResizeFilter {
	return &ResizeFilter{policy: policy}
}

// Policy returns the filter's policy.
func (f *ResizeFilter) Policy() ResizePolicy { return f.policy }

// Observe records a raw size event. It returns true when the size must be
// applied immediately, which only happens for the first event.
func (f *ResizeFilter) Observe(width, height int, now time.Time) bool {
	if !f.applied {
		f.applied = true
		f.lastW, f.lastH = width, height
		f.rawW, f.rawH = width, height
		return true
	}
	if width == f.rawW && height == f.rawH {
		return false
	}
	f.rawW, f.rawH = width, height
	f.pending = true
	f.pendingSince = now
	f.pendingW, f.pendingH = width, height
	return false
}

// Due returns the pending size once the debounce period has passed and the
// change exceeds the policy thresholds. A pending size that is too close to
// the applied one is dropped.
func (f *ResizeFilter) Due(now time.Time) (width, height int, ok bool) {
	if !f.pending || now.Sub(f.pendingSince) < f.policy.Debounce {
		return 0, 0, false
	}
	f.pending = false

	if abs(f.pendingW-f.lastW) <= f.policy.MinDX && abs(f.pendingH-f.lastH) <= f.policy.MinDY {
		return 0, 0, false
	}
	f.lastW, f.lastH = f.pendingW, f.pendingH
	return f.lastW, f.lastH, true
}

// Pending reports whether a size change is waiting out the debounce period.
func (f *ResizeFilter) Pending() bool { return f.pending }

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
