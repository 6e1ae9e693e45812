// Package ifs implements iterated function system point generation.
//
// An IFS is a small table of affine maps, each picked with a fixed
// probability per iteration. Repeatedly applying randomly chosen maps to a
// single point makes the point wander over the system's attractor:
//
//   - [Transform]: one affine map plus its selection probability
//   - [Generator]: holds the current point and produces the next one
//   - [Barnsley]: the classic four-map fern table
//
// # Example
//
//	gen := ifs.NewBarnsley(rand.New(rand.NewSource(1)))
//	for i := 0; i < 1000; i++ {
//		p := gen.Next()
//		plot(p.X, p.Y)
//	}
//
// # Thread Safety
//
// Generator instances are NOT thread-safe. A generator owns its state and
// must be driven from a single goroutine.
package ifs
