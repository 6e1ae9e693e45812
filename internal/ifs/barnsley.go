package ifs

// Barnsley is the four-map table of the Barnsley fern:
// stem, successively smaller leaflets, largest left leaflet, largest right leaflet.
var Barnsley = []Transform{
	{A: 0, B: 0, C: 0, D: 0.16, E: 0, F: 0, P: 0.01},
	{A: 0.85, B: 0.04, C: -0.04, D: 0.85, E: 0, F: 1.6, P: 0.85},
	{A: 0.2, B: -0.26, C: 0.23, D: 0.22, E: 0, F: 1.6, P: 0.07},
	{A: -0.15, B: 0.28, C: 0.26, D: 0.24, E: 0, F: 0.44, P: 0.07},
}

// NewBarnsley returns a generator over the Barnsley table.
func NewBarnsley(src Source) *Generator {
	return newGenerator(Barnsley, src)
}
