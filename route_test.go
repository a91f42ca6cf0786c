package osm2route

import (
	"sync"
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mainMembers(segments ...Segment) []Member {
	members := make([]Member, len(segments))
	for i := range segments {
		members[i] = Member{Segment: segments[i], Role: ROLE_MAIN}
	}
	return members
}

func TestRouteLine(t *testing.T) {
	route := NewRoute(1, nil, mainMembers(
		&Way{ID: 1, Nodes: []osm.NodeID{1, 2}, Coordinates: [][]float64{{0, 0}, {1, 1}}},
		&Way{ID: 2, Nodes: []osm.NodeID{2, 3}, Coordinates: [][]float64{{1, 1}, {2, 2}}},
	))
	line, err := route.Line()
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 0}, {1, 1}, {2, 2}}, line)
}

func TestRouteLineReversed(t *testing.T) {
	route := NewRoute(1, nil, mainMembers(
		testWay(1, 1, 2),
		testWay(2, 4, 3, 2),
	))
	line, err := route.Line()
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0.001, 0}, {0.002, 0}, {0.003, 0}, {0.004, 0}}, line)
	assert.Equal(t, ONE_WAY, route.Shape())

	start, finish, err := route.EndNodes()
	require.NoError(t, err)
	assert.Equal(t, osm.NodeID(1), start)
	assert.Equal(t, osm.NodeID(4), finish)
}

func TestRouteMemoization(t *testing.T) {
	route := NewRoute(1, osm.Tags{{Key: "name", Value: "Ridge trail"}}, mainMembers(
		testWay(1, 1, 2),
		testWay(2, 2, 3),
	))
	assert.Equal(t, "relation/1 (Ridge trail)", route.String())

	first, err := route.OrderedSegments()
	require.NoError(t, err)
	first[0] = wayRef(42, true)
	second, err := route.OrderedSegments()
	require.NoError(t, err)
	assert.Equal(t, []SegmentRef{wayRef(1, false), wayRef(2, false)}, second)

	graph1, err := route.RouteGraph()
	require.NoError(t, err)
	graph2, err := route.RouteGraph()
	require.NoError(t, err)
	assert.Same(t, graph1, graph2)

	stats1, err := route.Statistics()
	require.NoError(t, err)
	stats2, err := route.Statistics()
	require.NoError(t, err)
	assert.Equal(t, stats1, stats2)
}

func TestRouteConcurrentAccess(t *testing.T) {
	route := NewRoute(1, nil, mainMembers(
		testWay(1, 1, 2),
		testWay(2, 3, 2),
		testWay(3, 3, 1),
	))
	var wg sync.WaitGroup
	lines := make([][][]float64, 8)
	for i := range lines {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = route.Statistics()
			lines[i], _ = route.Line()
		}(i)
	}
	wg.Wait()
	for i := range lines {
		assert.Equal(t, lines[0], lines[i])
	}
	assert.Len(t, lines[0], 4)
	assert.Equal(t, ROUND_TRIP, route.Shape())
}

func TestRouteRoles(t *testing.T) {
	route := NewRoute(1, nil, []Member{
		{Segment: testWay(1, 1, 2), Role: ROLE_MAIN},
		{Segment: testWay(2, 2, 5, 3), Role: ROLE_ALTERNATIVE},
		{Segment: testWay(3, 2, 3), Role: ROLE_MAIN},
		{Segment: testWay(4, 2, 9), Role: ROLE_OTHER},
	})
	assert.Len(t, route.Members(), 4)
	assert.Len(t, route.MainSegments(), 2)
	require.Len(t, route.Alternatives(), 1)
	assert.Equal(t, osm.WayID(2).FeatureID(), route.Alternatives()[0].FeatureID())
	assert.True(t, route.IsRoutable())

	stats, err := route.Statistics()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.NumSegments)
}

func TestRouteNotRoutable(t *testing.T) {
	route := NewRoute(1, nil, mainMembers(
		testWay(1, 1, 2),
		testWay(2, 2, 3),
		testWay(3, 2, 4),
	))
	assert.False(t, route.IsRoutable())
	assert.Equal(t, NOT_ROUTABLE, route.Shape())

	_, err := route.Line()
	var topologyErr *TopologyError
	require.ErrorAs(t, err, &topologyErr)

	stats, err := route.Statistics()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.NumSegments)
	assert.Nil(t, stats.Ascent)
}

func TestRouteStrictMode(t *testing.T) {
	members := mainMembers(
		testWay(1, 1, 2),
		testWay(2, 1, 2),
	)
	route := NewRoute(1, nil, members)
	graph, err := route.RouteGraph()
	require.NoError(t, err)
	assert.Len(t, graph.Collisions(), 1)

	cfg := DefaultRouteConfiguration()
	cfg.StrictMode = true
	strict := NewRoute(1, nil, members, WithRouteConfiguration(cfg))
	_, err = strict.RouteGraph()
	var topologyErr *TopologyError
	require.ErrorAs(t, err, &topologyErr)
	assert.Equal(t, []osm.NodeID{1, 2}, topologyErr.Nodes)
	assert.False(t, strict.IsRoutable())
}

func TestRouteNested(t *testing.T) {
	inner := NewRoute(10, osm.Tags{{Key: "type", Value: "route"}}, mainMembers(
		testWay(2, 3, 2),
		testWay(3, 3, 4),
	))
	outer := NewRoute(11, nil, mainMembers(
		testWay(1, 1, 2),
		inner,
	))

	ordered, err := outer.OrderedSegments()
	require.NoError(t, err)
	assert.Equal(t, []SegmentRef{wayRef(1, false), {ID: osm.RelationID(10).FeatureID()}}, ordered)

	line, err := outer.Line()
	require.NoError(t, err)
	assert.Len(t, line, 4)
	assert.Equal(t, []float64{0.004, 0}, line[3])
}

func TestRouteNestedNotRoutable(t *testing.T) {
	inner := NewRoute(10, nil, mainMembers(
		testWay(2, 2, 3),
		testWay(3, 3, 4),
		testWay(4, 3, 5),
	))
	outer := NewRoute(11, nil, mainMembers(
		testWay(1, 1, 2),
		inner,
	))
	_, err := outer.RouteGraph()
	var composite *CompositeTopologyError
	require.ErrorAs(t, err, &composite)
	assert.Equal(t, osm.RelationID(11).FeatureID(), composite.Route)

	var topologyErr *TopologyError
	require.ErrorAs(t, err, &topologyErr)
	assert.Equal(t, osm.RelationID(10).FeatureID(), topologyErr.Route)
	assert.False(t, outer.IsRoutable())
}
