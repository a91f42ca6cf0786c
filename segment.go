package osm2route

import (
	"fmt"

	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/osm"
)

// Segment is an atomic unit of a route: an OSM way or a nested route relation
type Segment interface {
	// FeatureID returns stable identifier of the segment ("way/12", "relation/7")
	FeatureID() osm.FeatureID
	// Endpoints returns first and last node of the segment in its native orientation
	Endpoints() (osm.NodeID, osm.NodeID, error)
	// Geometry returns LineString feature of the segment in its native orientation.
	// Properties carry OSM tags of the segment.
	Geometry() (*geojson.Feature, error)
}

type Role uint16

const (
	ROLE_MAIN = Role(iota + 1)
	ROLE_ALTERNATIVE
	ROLE_OTHER
)

func (iotaIdx Role) String() string {
	return [...]string{"main", "alternative", "other"}[iotaIdx-1]
}

// Member is a segment together with its role in the parent route
type Member struct {
	Segment
	Role Role
}

// SegmentRef references a segment with the direction it should be traversed in
type SegmentRef struct {
	ID       osm.FeatureID
	Reversed bool
}

// Reverse returns reference to the same segment traversed in opposite direction
func (ref SegmentRef) Reverse() SegmentRef {
	return SegmentRef{ID: ref.ID, Reversed: !ref.Reversed}
}

func (ref SegmentRef) String() string {
	if ref.Reversed {
		return "-" + ref.ID.String()
	}
	return ref.ID.String()
}

// Way is a segment built from single OSM way
type Way struct {
	ID    osm.WayID
	Tags  osm.Tags
	Nodes []osm.NodeID
	// Coordinates are [lon, lat] or [lon, lat, ele], one per node
	Coordinates [][]float64
}

func (way *Way) FeatureID() osm.FeatureID {
	return way.ID.FeatureID()
}

func (way *Way) Endpoints() (osm.NodeID, osm.NodeID, error) {
	if len(way.Nodes) < 2 {
		return 0, 0, &TopologyError{
			Route:   way.FeatureID(),
			Reasons: []string{fmt.Sprintf("way has %d nodes", len(way.Nodes))},
		}
	}
	return way.Nodes[0], way.Nodes[len(way.Nodes)-1], nil
}

func (way *Way) Geometry() (*geojson.Feature, error) {
	if len(way.Coordinates) < 2 || len(way.Coordinates) != len(way.Nodes) {
		return nil, fmt.Errorf("Way '%s' has %d coordinates for %d nodes", way.FeatureID(), len(way.Coordinates), len(way.Nodes))
	}
	feature := geojson.NewLineStringFeature(copyLine(way.Coordinates))
	feature.ID = way.FeatureID().String()
	for _, tag := range way.Tags {
		feature.SetProperty(tag.Key, tag.Value)
	}
	feature.SetProperty("id", way.FeatureID().String())
	return feature, nil
}
