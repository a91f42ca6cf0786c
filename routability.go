package osm2route

import (
	"github.com/paulmach/osm"
)

type RouteShape uint16

const (
	NOT_ROUTABLE = RouteShape(iota + 1)
	ROUND_TRIP
	ONE_WAY
)

func (iotaIdx RouteShape) String() string {
	return [...]string{"not_routable", "round_trip", "one_way"}[iotaIdx-1]
}

// ClassifyShape decides whether the graph is a single simple path, a single simple cycle or neither.
// Decision is made on degree bins only; a lone closed segment counts as round trip.
func ClassifyShape(graph *RouteGraph, bins DegreeBins) RouteShape {
	if graph == nil || graph.Len() == 0 {
		return NOT_ROUTABLE
	}
	if graph.isSingleLoop() {
		return ROUND_TRIP
	}
	if len(bins[3]) != 0 {
		return NOT_ROUTABLE
	}
	switch len(bins[1]) {
	case 0:
		if len(bins[2]) == 0 {
			return NOT_ROUTABLE
		}
		return ROUND_TRIP
	case 2:
		return ONE_WAY
	default:
		return NOT_ROUTABLE
	}
}

// IsRoutable is a shortcut for ClassifyShape(...) != NOT_ROUTABLE
func IsRoutable(graph *RouteGraph, bins DegreeBins) bool {
	return ClassifyShape(graph, bins) != NOT_ROUTABLE
}

// EndNodes returns start and finish of the route.
// Those are both dead ends for one-way route and the first node of degree 2 (twice) for round trip
func EndNodes(route osm.FeatureID, graph *RouteGraph, bins DegreeBins) (osm.NodeID, osm.NodeID, error) {
	switch ClassifyShape(graph, bins) {
	case ONE_WAY:
		return bins[1][0], bins[1][1], nil
	case ROUND_TRIP:
		if graph.isSingleLoop() {
			nodeID := graph.Nodes()[0]
			return nodeID, nodeID, nil
		}
		return bins[2][0], bins[2][0], nil
	default:
		return 0, 0, newTopologyError(route, bins)
	}
}
