package osm2route

import (
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderSegments(t *testing.T) {
	tests := []struct {
		name      string
		segments  []Segment
		expected  []SegmentRef
		roundTrip bool
	}{
		{
			name:     "single segment",
			segments: testSegments(testWay(1, 1, 2)),
			expected: []SegmentRef{wayRef(1, false)},
		},
		{
			name:     "path in relation order",
			segments: testSegments(testWay(1, 1, 2), testWay(2, 2, 3)),
			expected: []SegmentRef{wayRef(1, false), wayRef(2, false)},
		},
		{
			name:     "path with reversed segment",
			segments: testSegments(testWay(1, 1, 2), testWay(2, 3, 2), testWay(3, 3, 4)),
			expected: []SegmentRef{wayRef(1, false), wayRef(2, true), wayRef(3, false)},
		},
		{
			name:     "path shuffled",
			segments: testSegments(testWay(1, 2, 3), testWay(2, 1, 2)),
			expected: []SegmentRef{wayRef(1, true), wayRef(2, true)},
		},
		{
			name:      "cycle",
			segments:  testSegments(testWay(1, 1, 2), testWay(2, 2, 3), testWay(3, 3, 1)),
			expected:  []SegmentRef{wayRef(1, false), wayRef(2, false), wayRef(3, false)},
			roundTrip: true,
		},
		{
			name:      "cycle with reversed segment",
			segments:  testSegments(testWay(1, 1, 2), testWay(2, 3, 2), testWay(3, 3, 1)),
			expected:  []SegmentRef{wayRef(1, false), wayRef(2, true), wayRef(3, false)},
			roundTrip: true,
		},
		{
			name:      "closed way",
			segments:  testSegments(testWay(1, 1, 2, 3, 1)),
			expected:  []SegmentRef{wayRef(1, false)},
			roundTrip: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route := osm.RelationID(1).FeatureID()
			graph, err := BuildRouteGraph(route, tt.segments)
			require.NoError(t, err)
			ordered, err := OrderSegments(route, graph, ClassifyDegrees(graph))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ordered)
			assertContinuous(t, tt.segments, ordered, tt.roundTrip)
		})
	}
}

// assertContinuous checks that every segment starts where the previous one ends.
// Round trip must also end where it starts
func assertContinuous(t *testing.T, segments []Segment, ordered []SegmentRef, roundTrip bool) {
	t.Helper()
	byID := make(map[osm.FeatureID]Segment, len(segments))
	for _, segment := range segments {
		byID[segment.FeatureID()] = segment
	}
	seen := make(map[osm.FeatureID]struct{}, len(ordered))
	var firstSource, previousEnd osm.NodeID
	for i, ref := range ordered {
		_, duplicate := seen[ref.ID]
		require.False(t, duplicate, "segment '%s' is used twice", ref.ID)
		seen[ref.ID] = struct{}{}

		source, target, err := byID[ref.ID].Endpoints()
		require.NoError(t, err)
		if ref.Reversed {
			source, target = target, source
		}
		if i > 0 {
			assert.Equal(t, previousEnd, source, "gap before '%s'", ref)
		} else {
			firstSource = source
		}
		previousEnd = target
	}
	assert.Len(t, seen, len(segments))
	if roundTrip {
		assert.Equal(t, firstSource, previousEnd, "round trip is not closed")
	} else {
		assert.NotEqual(t, firstSource, previousEnd, "one-way route is closed")
	}
}

func TestOrderSegmentsNotRoutable(t *testing.T) {
	route := osm.RelationID(1).FeatureID()
	graph, err := BuildRouteGraph(route, testSegments(
		testWay(1, 1, 2),
		testWay(2, 2, 3),
		testWay(3, 2, 4),
	))
	require.NoError(t, err)
	_, err = OrderSegments(route, graph, ClassifyDegrees(graph))
	var topologyErr *TopologyError
	require.ErrorAs(t, err, &topologyErr)
	assert.Contains(t, topologyErr.Nodes, osm.NodeID(2))
}

func TestOrderSegmentsDisjointCycles(t *testing.T) {
	route := osm.RelationID(1).FeatureID()
	graph, err := BuildRouteGraph(route, testSegments(
		testWay(1, 1, 2),
		testWay(2, 2, 3),
		testWay(3, 3, 1),
		testWay(4, 4, 5),
		testWay(5, 5, 6),
		testWay(6, 6, 4),
	))
	require.NoError(t, err)
	bins := ClassifyDegrees(graph)
	// Degree check alone can't see it
	assert.True(t, IsRoutable(graph, bins))

	_, err = OrderSegments(route, graph, bins)
	var topologyErr *TopologyError
	require.ErrorAs(t, err, &topologyErr)
	assert.Equal(t, []string{"3 unreachable segments"}, topologyErr.Reasons)
}

func TestOrderSegmentsCycleAndPath(t *testing.T) {
	// Path 1-2-3 next to cycle 4-5-6 still has two dead ends
	route := osm.RelationID(1).FeatureID()
	graph, err := BuildRouteGraph(route, testSegments(
		testWay(1, 1, 2),
		testWay(2, 2, 3),
		testWay(3, 4, 5),
		testWay(4, 5, 6),
		testWay(5, 6, 4),
	))
	require.NoError(t, err)
	_, err = OrderSegments(route, graph, ClassifyDegrees(graph))
	var topologyErr *TopologyError
	require.ErrorAs(t, err, &topologyErr)
	assert.Equal(t, []string{"3 unreachable segments"}, topologyErr.Reasons)
}
