// Package analysis provides offline measurements of rendered attractors.
//
// The package works on collected fern-space points:
//
//   - [BoxDimension]: box-counting dimension estimate
//   - [DefaultBoxSizes]: geometric box sizes suited to the Barnsley fern
//   - [DensityToASCII]: shaded density plot for terminals
//
// # Fractal Dimension
//
// The box-counting dimension is the slope of log N(ε) against log 1/ε,
// where N(ε) is the number of ε-sized boxes holding at least one point:
//
//	dim, err := analysis.BoxDimension(points, analysis.DefaultBoxSizes())
//	if err != nil {
//	    return err
//	}
package analysis
