package osm2route

import (
	"github.com/paulmach/osm"
)

// DegreeBins Nodes of route graph split by degree: 0, 1, 2, 3 and more
type DegreeBins [4][]osm.NodeID

// ClassifyDegrees puts every node of the graph into bin min(degree, 3). Order inside bins follows graph order.
func ClassifyDegrees(graph *RouteGraph) DegreeBins {
	bins := DegreeBins{}
	for _, nodeID := range graph.Nodes() {
		degree := graph.Degree(nodeID)
		if degree > 3 {
			degree = 3
		}
		bins[degree] = append(bins[degree], nodeID)
	}
	return bins
}

// DeadEnds returns nodes of degree 1
func (bins DegreeBins) DeadEnds() []osm.NodeID {
	return bins[1]
}

// Junctions returns nodes of degree 3 and more
func (bins DegreeBins) Junctions() []osm.NodeID {
	return bins[3]
}

// Total returns number of classified nodes
func (bins DegreeBins) Total() int {
	total := 0
	for _, bin := range bins {
		total += len(bin)
	}
	return total
}
