package osm2route

import (
	"fmt"

	"github.com/LdDl/ch"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

// ContractionGraph loads main route graph into contraction hierarchies graph.
/*
	Vertices are OSM node identifiers, every segment becomes two directed edges weighted by its length (meters).
	Hierarchies are prepared if contract is true.
*/
func (route *Route) ContractionGraph(contract bool) (*ch.Graph, error) {
	routeGraph, err := route.RouteGraph()
	if err != nil {
		return nil, err
	}
	lengths := make(map[osm.FeatureID]float64)
	for _, segment := range route.MainSegments() {
		feature, err := segment.Geometry()
		if err != nil {
			return nil, errors.Wrapf(err, "Can't get geometry of '%s'", segment.FeatureID())
		}
		lengths[segment.FeatureID()] = getSphericalLength(feature.Geometry.LineString)
	}

	graph := ch.Graph{}
	for _, nodeID := range routeGraph.Nodes() {
		err := graph.CreateVertex(int64(nodeID))
		if err != nil {
			return nil, errors.Wrapf(err, "Can not create vertex %d", nodeID)
		}
	}
	for _, source := range routeGraph.Nodes() {
		for _, target := range routeGraph.Neighbours(source) {
			ref, _ := routeGraph.Reference(source, target)
			err := graph.AddEdge(int64(source), int64(target), lengths[ref.ID])
			if err != nil {
				return nil, errors.Wrapf(err, "Can not wrap %d and %d vertices as edge", source, target)
			}
		}
	}
	if contract {
		graph.PrepareContractionHierarchies()
	}
	return &graph, nil
}

// ShortestDistance returns length (meters) of the shortest way between two nodes of the route
func (route *Route) ShortestDistance(source, target osm.NodeID) (float64, error) {
	graph, err := route.ContractionGraph(true)
	if err != nil {
		return -1, err
	}
	cost, path := graph.ShortestPath(int64(source), int64(target))
	if len(path) == 0 {
		return -1, fmt.Errorf("No path between %d and %d in route '%s'", source, target, route.FeatureID())
	}
	return cost, nil
}
