package osm2route

import (
	"github.com/paulmach/osm"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type neighbours = orderedmap.OrderedMap[osm.NodeID, SegmentRef]

// RouteGraph Symmetric adjacency structure of route
/*
	node -> neighbour node -> reference of the segment connecting them

	Both levels keep insertion order: it is used as tie-break when choosing start of the route.
*/
type RouteGraph struct {
	adjacency  *orderedmap.OrderedMap[osm.NodeID, *neighbours]
	collisions []EdgeCollision
}

// EdgeCollision Two distinct segments connecting the same pair of nodes. Only the last one stays in the graph.
type EdgeCollision struct {
	Source     osm.NodeID
	Target     osm.NodeID
	Overridden SegmentRef
	Winner     SegmentRef
}

func NewRouteGraph() *RouteGraph {
	return &RouteGraph{
		adjacency: orderedmap.New[osm.NodeID, *neighbours](),
	}
}

// BuildRouteGraph builds graph from given segments.
// Every segment is processed; when endpoints of some of them can't be found CompositeTopologyError is returned
func BuildRouteGraph(route osm.FeatureID, segments []Segment) (*RouteGraph, error) {
	graph := NewRouteGraph()
	var failures []error
	for _, segment := range segments {
		source, target, err := segment.Endpoints()
		if err != nil {
			failures = append(failures, err)
			continue
		}
		ref := SegmentRef{ID: segment.FeatureID()}
		graph.AddEdge(source, target, ref)
	}
	if len(failures) > 0 {
		return nil, &CompositeTopologyError{Route: route, Errors: failures}
	}
	return graph, nil
}

// AddEdge inserts source->target with given reference and target->source with reversed one
func (graph *RouteGraph) AddEdge(source, target osm.NodeID, ref SegmentRef) {
	if previous, ok := graph.Reference(source, target); ok && previous.ID != ref.ID {
		graph.collisions = append(graph.collisions, EdgeCollision{
			Source:     source,
			Target:     target,
			Overridden: previous,
			Winner:     ref,
		})
	}
	graph.set(source, target, ref)
	graph.set(target, source, ref.Reverse())
}

func (graph *RouteGraph) set(source, target osm.NodeID, ref SegmentRef) {
	adjacent, ok := graph.adjacency.Get(source)
	if !ok {
		adjacent = orderedmap.New[osm.NodeID, SegmentRef]()
		graph.adjacency.Set(source, adjacent)
	}
	adjacent.Set(target, ref)
}

// Nodes returns nodes in order of their first appearance
func (graph *RouteGraph) Nodes() []osm.NodeID {
	nodes := make([]osm.NodeID, 0, graph.adjacency.Len())
	for pair := graph.adjacency.Oldest(); pair != nil; pair = pair.Next() {
		nodes = append(nodes, pair.Key)
	}
	return nodes
}

// Neighbours returns adjacent nodes in order of their first appearance
func (graph *RouteGraph) Neighbours(nodeID osm.NodeID) []osm.NodeID {
	adjacent, ok := graph.adjacency.Get(nodeID)
	if !ok {
		return nil
	}
	result := make([]osm.NodeID, 0, adjacent.Len())
	for pair := adjacent.Oldest(); pair != nil; pair = pair.Next() {
		result = append(result, pair.Key)
	}
	return result
}

// Reference returns reference of the segment which goes from source to target
func (graph *RouteGraph) Reference(source, target osm.NodeID) (SegmentRef, bool) {
	adjacent, ok := graph.adjacency.Get(source)
	if !ok {
		return SegmentRef{}, false
	}
	return adjacent.Get(target)
}

// Degree returns number of distinct neighbours of the node
func (graph *RouteGraph) Degree(nodeID osm.NodeID) int {
	adjacent, ok := graph.adjacency.Get(nodeID)
	if !ok {
		return 0
	}
	return adjacent.Len()
}

// Len returns number of nodes
func (graph *RouteGraph) Len() int {
	return graph.adjacency.Len()
}

// EdgesNum returns number of distinct node pairs (each pair stored in both directions)
func (graph *RouteGraph) EdgesNum() int {
	entries := 0
	loops := 0
	for pair := graph.adjacency.Oldest(); pair != nil; pair = pair.Next() {
		entries += pair.Value.Len()
		if _, ok := pair.Value.Get(pair.Key); ok {
			loops++
		}
	}
	return (entries + loops) / 2
}

// Collisions returns segments lost because some other segment connects the same nodes
func (graph *RouteGraph) Collisions() []EdgeCollision {
	return graph.collisions
}

// otherNeighbour returns first neighbour of the node which differs from given one
func (graph *RouteGraph) otherNeighbour(nodeID, except osm.NodeID) (osm.NodeID, bool) {
	adjacent, ok := graph.adjacency.Get(nodeID)
	if !ok {
		return 0, false
	}
	for pair := adjacent.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Key != except {
			return pair.Key, true
		}
	}
	return 0, false
}

// isSingleLoop checks whether graph consists of one closed segment only
func (graph *RouteGraph) isSingleLoop() bool {
	if graph.adjacency.Len() != 1 {
		return false
	}
	pair := graph.adjacency.Oldest()
	_, ok := pair.Value.Get(pair.Key)
	return ok && pair.Value.Len() == 1
}
