package osm2route

import (
	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

// FeatureCollection returns main segments in relation order and their native direction
func (route *Route) FeatureCollection() (*geojson.FeatureCollection, error) {
	return segmentsFeatureCollection(route.MainSegments())
}

// AlternativesFeatureCollection returns alternative segments in relation order
func (route *Route) AlternativesFeatureCollection() (*geojson.FeatureCollection, error) {
	return segmentsFeatureCollection(route.Alternatives())
}

func segmentsFeatureCollection(segments []Segment) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	for _, segment := range segments {
		feature, err := segment.Geometry()
		if err != nil {
			return nil, errors.Wrapf(err, "Can't get geometry of '%s'", segment.FeatureID())
		}
		fc.AddFeature(feature)
	}
	return fc, nil
}

// OrderedFeatureCollection returns main segments in traversal order, each one turned into traversal direction
func (route *Route) OrderedFeatureCollection() (*geojson.FeatureCollection, error) {
	ordered, err := route.OrderedSegments()
	if err != nil {
		return nil, err
	}
	features, err := route.orderedFeatures(ordered)
	if err != nil {
		return nil, err
	}
	fc := geojson.NewFeatureCollection()
	for i, ref := range ordered {
		features[i].SetProperty("reversed", ref.Reversed)
		fc.AddFeature(features[i])
	}
	return fc, nil
}

// LineStringFeature returns ordered route as single LineString
func (route *Route) LineStringFeature() (*geojson.Feature, error) {
	return route.Geometry()
}

// MultiLineStringFeature returns main segments (relation order, native direction) as single MultiLineString
func (route *Route) MultiLineStringFeature() (*geojson.Feature, error) {
	lines, err := route.unorderedLines()
	if err != nil {
		return nil, err
	}
	feature := geojson.NewMultiLineStringFeature(lines...)
	feature.ID = route.FeatureID().String()
	for _, tag := range route.Tags {
		feature.SetProperty(tag.Key, tag.Value)
	}
	feature.SetProperty("id", route.FeatureID().String())
	return feature, nil
}

func (route *Route) unorderedLines() ([][][]float64, error) {
	segments := route.MainSegments()
	lines := make([][][]float64, 0, len(segments))
	for _, segment := range segments {
		feature, err := segment.Geometry()
		if err != nil {
			return nil, errors.Wrapf(err, "Can't get geometry of '%s'", segment.FeatureID())
		}
		lines = append(lines, feature.Geometry.LineString)
	}
	return lines, nil
}
