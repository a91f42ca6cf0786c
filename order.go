package osm2route

import (
	"fmt"

	"github.com/paulmach/osm"
)

// OrderSegments walks the route graph and returns every segment exactly once in traversal order.
/*
	One-way route starts at the first dead end (graph order) and stops at the other one.
	Round trip starts at the first node of the graph, goes towards its first neighbour and stops when it is back.
	At every step the next node is the neighbour we did not come from; with no node of degree > 2 it is unique.
*/
func OrderSegments(route osm.FeatureID, graph *RouteGraph, bins DegreeBins) ([]SegmentRef, error) {
	shape := ClassifyShape(graph, bins)
	if shape == NOT_ROUTABLE {
		return nil, newTopologyError(route, bins)
	}
	if graph.isSingleLoop() {
		nodeID := graph.Nodes()[0]
		ref, _ := graph.Reference(nodeID, nodeID)
		return []SegmentRef{{ID: ref.ID}}, nil
	}

	var start, next osm.NodeID
	found := false
	for _, nodeID := range graph.Nodes() {
		if graph.Degree(nodeID) == 1 {
			start = nodeID
			next = graph.Neighbours(nodeID)[0]
			found = true
			break
		}
	}
	roundTrip := !found
	if roundTrip {
		start = graph.Nodes()[0]
		next = graph.Neighbours(start)[0]
	}

	edgesNum := graph.EdgesNum()
	ordered := make([]SegmentRef, 0, edgesNum)
	current := start
	for len(ordered) < edgesNum {
		ref, ok := graph.Reference(current, next)
		if !ok {
			return nil, fmt.Errorf("Graph of '%s' is not symmetric: no edge %d -> %d", route, current, next)
		}
		ordered = append(ordered, ref)
		previous := current
		current = next
		if roundTrip && current == start {
			break
		}
		next, ok = graph.otherNeighbour(current, previous)
		if !ok {
			break
		}
	}
	if len(ordered) != edgesNum {
		return nil, &TopologyError{
			Route:   route,
			Reasons: []string{fmt.Sprintf("%d unreachable segments", edgesNum-len(ordered))},
		}
	}
	return ordered, nil
}
