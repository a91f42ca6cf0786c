package osm2route

import (
	"encoding/json"
	"math"

	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

// Statistics Aggregated description of route segments
type Statistics struct {
	NumSegments int
	// Sum of number of points of every segment
	NumNodes int
	// Meters
	Length float64
	// Coverage of `surface` tag: each tagged segment adds 1/(its position in the list), percents
	SurfacePct float64
	// Segments without `surface` tag
	SurfaceWays []osm.FeatureID
	// Percentage of path/track/footway segments with `sac_scale` tag. NaN when there are no such segments
	SacScalePct float64
	// Path/track/footway segments without `sac_scale` tag
	SacScaleWays []osm.FeatureID
	// Meters. Nil when geometry has no elevation or route is not routable
	Ascent  *float64
	Descent *float64
}

// AggregateStatistics evaluates statistics for given segments.
// Ascent and descent are evaluated only if line (assembled route geometry) is provided and carries elevation
func AggregateStatistics(segments []Segment, line [][]float64, cfg *RouteConfiguration) (Statistics, error) {
	if cfg == nil {
		cfg = DefaultRouteConfiguration()
	}
	stats := Statistics{
		SurfaceWays:  []osm.FeatureID{},
		SacScaleWays: []osm.FeatureID{},
	}
	surface := 0.0
	sacScaleRelevant := 0
	sacScaleTagged := 0
	for _, segment := range segments {
		feature, err := segment.Geometry()
		if err != nil {
			return Statistics{}, errors.Wrapf(err, "Can't get geometry of '%s'", segment.FeatureID())
		}
		coordinates := feature.Geometry.LineString
		stats.NumSegments++
		stats.NumNodes += len(coordinates)
		stats.Length += getSphericalLength(coordinates)

		// Incremented by 1/(segments seen so far), never decreased
		if feature.PropertyMustString("surface") != "" {
			surface += 1 / float64(stats.NumSegments)
		} else {
			stats.SurfaceWays = append(stats.SurfaceWays, segment.FeatureID())
		}

		if cfg.CheckSacScaleHighway(feature.PropertyMustString("highway")) {
			sacScaleRelevant++
			if feature.PropertyMustString("sac_scale") != "" {
				sacScaleTagged++
			} else {
				stats.SacScaleWays = append(stats.SacScaleWays, segment.FeatureID())
			}
		}
	}
	// 0/0 gives NaN on purpose
	sacScale := float64(sacScaleTagged) / float64(sacScaleRelevant)

	stats.SurfacePct = roundTo(surface, 2) * 100
	stats.SacScalePct = roundTo(sacScale, 2) * 100
	stats.Length = roundTo(stats.Length, 2)
	if hasElevation(line) {
		ascent, descent := elevationGainLoss(line)
		ascent = roundTo(ascent, 2)
		descent = roundTo(descent, 2)
		stats.Ascent = &ascent
		stats.Descent = &descent
	}
	return stats, nil
}

type statisticsJSON struct {
	NumSegments  int      `json:"numSegments"`
	NumNodes     int      `json:"numNodes"`
	Length       float64  `json:"length"`
	SurfacePct   *float64 `json:"surfacePct"`
	SurfaceWays  []string `json:"surfaceWays"`
	SacScalePct  *float64 `json:"sacScalePct"`
	SacScaleWays []string `json:"sacScaleWays"`
	Ascent       *float64 `json:"ascent,omitempty"`
	Descent      *float64 `json:"descent,omitempty"`
}

// MarshalJSON writes NaN percentages as null
func (stats Statistics) MarshalJSON() ([]byte, error) {
	return json.Marshal(statisticsJSON{
		NumSegments:  stats.NumSegments,
		NumNodes:     stats.NumNodes,
		Length:       stats.Length,
		SurfacePct:   finiteOrNil(stats.SurfacePct),
		SurfaceWays:  featureIDsStrings(stats.SurfaceWays),
		SacScalePct:  finiteOrNil(stats.SacScalePct),
		SacScaleWays: featureIDsStrings(stats.SacScaleWays),
		Ascent:       stats.Ascent,
		Descent:      stats.Descent,
	})
}

func finiteOrNil(value float64) *float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}
	return &value
}

func featureIDsStrings(ids []osm.FeatureID) []string {
	result := make([]string, len(ids))
	for i, id := range ids {
		result[i] = id.String()
	}
	return result
}
