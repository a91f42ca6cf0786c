package osm2route

import (
	"fmt"
	"sync"

	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

// Route Immutable route relation with lazily evaluated (once) topology and statistics.
/*
	Safe for concurrent use: every derived value is guarded by its own sync.Once.
	A route is a Segment itself, so it can be a member of another (super) route.
*/
type Route struct {
	ID   osm.RelationID
	Tags osm.Tags

	members []Member
	cfg     *RouteConfiguration

	graphOnce sync.Once
	graph     *RouteGraph
	graphErr  error

	binsOnce sync.Once
	bins     DegreeBins

	orderOnce sync.Once
	ordered   []SegmentRef
	orderErr  error

	lineOnce sync.Once
	line     [][]float64
	lineErr  error

	statsOnce sync.Once
	stats     Statistics
	statsErr  error
}

// NewRoute creates route from members. Members must not be changed afterwards
func NewRoute(id osm.RelationID, tags osm.Tags, members []Member, options ...func(*Route)) *Route {
	route := &Route{
		ID:      id,
		Tags:    tags,
		members: make([]Member, len(members)),
	}
	copy(route.members, members)
	for _, option := range options {
		option(route)
	}
	if route.cfg == nil {
		route.cfg = DefaultRouteConfiguration()
	}
	return route
}

func WithRouteConfiguration(cfg *RouteConfiguration) func(*Route) {
	return func(route *Route) {
		route.cfg = cfg
	}
}

func (route *Route) String() string {
	name := route.Tags.Find("name")
	if name == "" {
		return route.FeatureID().String()
	}
	return fmt.Sprintf("%s (%s)", route.FeatureID(), name)
}

// FeatureID returns "relation/<id>"
func (route *Route) FeatureID() osm.FeatureID {
	return route.ID.FeatureID()
}

// Members returns copy of route members
func (route *Route) Members() []Member {
	members := make([]Member, len(route.members))
	copy(members, route.members)
	return members
}

// MainSegments returns segments with main role in relation order
func (route *Route) MainSegments() []Segment {
	return route.segmentsByRole(ROLE_MAIN)
}

// Alternatives returns segments with alternative role in relation order
func (route *Route) Alternatives() []Segment {
	return route.segmentsByRole(ROLE_ALTERNATIVE)
}

func (route *Route) segmentsByRole(role Role) []Segment {
	segments := []Segment{}
	for _, member := range route.members {
		if member.Role == role {
			segments = append(segments, member.Segment)
		}
	}
	return segments
}

// RouteGraph returns adjacency graph of main segments
func (route *Route) RouteGraph() (*RouteGraph, error) {
	route.graphOnce.Do(func() {
		route.graph, route.graphErr = BuildRouteGraph(route.FeatureID(), route.MainSegments())
		if route.graphErr != nil {
			route.graph = nil
			return
		}
		if route.cfg.StrictMode && len(route.graph.Collisions()) > 0 {
			topologyErr := &TopologyError{
				Route:   route.FeatureID(),
				Reasons: []string{fmt.Sprintf("%d segments share both nodes with another segment", len(route.graph.Collisions()))},
			}
			for _, collision := range route.graph.Collisions() {
				topologyErr.Nodes = append(topologyErr.Nodes, collision.Source, collision.Target)
			}
			route.graph, route.graphErr = nil, topologyErr
		}
	})
	return route.graph, route.graphErr
}

// DegreeBins returns nodes of route graph grouped by degree
func (route *Route) DegreeBins() (DegreeBins, error) {
	graph, err := route.RouteGraph()
	if err != nil {
		return DegreeBins{}, err
	}
	route.binsOnce.Do(func() {
		route.bins = ClassifyDegrees(graph)
	})
	return route.bins, nil
}

// Shape classifies route. Any error on the way means NOT_ROUTABLE
func (route *Route) Shape() RouteShape {
	bins, err := route.DegreeBins()
	if err != nil {
		return NOT_ROUTABLE
	}
	return ClassifyShape(route.graph, bins)
}

// IsRoutable tells if route is single simple path or single simple cycle
func (route *Route) IsRoutable() bool {
	return route.Shape() != NOT_ROUTABLE
}

// EndNodes returns start and finish of the route (the same node for round trip)
func (route *Route) EndNodes() (osm.NodeID, osm.NodeID, error) {
	bins, err := route.DegreeBins()
	if err != nil {
		return 0, 0, err
	}
	return EndNodes(route.FeatureID(), route.graph, bins)
}

// OrderedSegments returns main segments in traversal order with direction marks
func (route *Route) OrderedSegments() ([]SegmentRef, error) {
	route.orderOnce.Do(func() {
		bins, err := route.DegreeBins()
		if err != nil {
			route.orderErr = err
			return
		}
		route.ordered, route.orderErr = OrderSegments(route.FeatureID(), route.graph, bins)
	})
	if route.orderErr != nil {
		return nil, route.orderErr
	}
	ordered := make([]SegmentRef, len(route.ordered))
	copy(ordered, route.ordered)
	return ordered, nil
}

// Line returns coordinates of the ordered route joined into single line
func (route *Route) Line() ([][]float64, error) {
	route.lineOnce.Do(func() {
		route.line, route.lineErr = route.assembleLine()
	})
	if route.lineErr != nil {
		return nil, route.lineErr
	}
	return copyLine(route.line), nil
}

func (route *Route) assembleLine() ([][]float64, error) {
	ordered, err := route.OrderedSegments()
	if err != nil {
		return nil, err
	}
	features, err := route.orderedFeatures(ordered)
	if err != nil {
		return nil, err
	}
	lines := make([][][]float64, len(features))
	for i := range features {
		lines[i] = features[i].Geometry.LineString
	}
	return joinLines(lines), nil
}

// orderedFeatures returns feature of every referenced segment with geometry turned into traversal direction
func (route *Route) orderedFeatures(ordered []SegmentRef) ([]*geojson.Feature, error) {
	segments := make(map[osm.FeatureID]Segment, len(route.members))
	for _, segment := range route.MainSegments() {
		segments[segment.FeatureID()] = segment
	}
	features := make([]*geojson.Feature, 0, len(ordered))
	for _, ref := range ordered {
		segment, ok := segments[ref.ID]
		if !ok {
			return nil, fmt.Errorf("No segment '%s' in route '%s'", ref.ID, route.FeatureID())
		}
		feature, err := segment.Geometry()
		if err != nil {
			return nil, errors.Wrapf(err, "Can't get geometry of '%s'", ref.ID)
		}
		if ref.Reversed {
			feature.Geometry.LineString = reverseLine(feature.Geometry.LineString)
		}
		features = append(features, feature)
	}
	return features, nil
}

// Statistics returns aggregated statistics of main segments.
// Ascent and descent are provided for routable routes with elevation data only
func (route *Route) Statistics() (Statistics, error) {
	route.statsOnce.Do(func() {
		var line [][]float64
		if route.IsRoutable() {
			// Disconnected routes pass the degree check, but can't be ordered
			line, _ = route.Line()
		}
		route.stats, route.statsErr = AggregateStatistics(route.MainSegments(), line, route.cfg)
	})
	return route.stats, route.statsErr
}

// Endpoints makes route usable as member of another route
func (route *Route) Endpoints() (osm.NodeID, osm.NodeID, error) {
	return route.EndNodes()
}

// Geometry makes route usable as member of another route
func (route *Route) Geometry() (*geojson.Feature, error) {
	line, err := route.Line()
	if err != nil {
		return nil, err
	}
	feature := geojson.NewLineStringFeature(line)
	feature.ID = route.FeatureID().String()
	for _, tag := range route.Tags {
		feature.SetProperty(tag.Key, tag.Value)
	}
	feature.SetProperty("id", route.FeatureID().String())
	return feature, nil
}
