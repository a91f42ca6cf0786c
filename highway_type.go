package osm2route

type HighwayType uint16

const (
	HIGHWAY_PATH = HighwayType(iota + 1)
	HIGHWAY_TRACK
	HIGHWAY_FOOTWAY
	HIGHWAY_BRIDLEWAY
	HIGHWAY_CYCLEWAY
	HIGHWAY_STEPS
	HIGHWAY_PEDESTRIAN
	HIGHWAY_SERVICE
	HIGHWAY_RESIDENTIAL
	HIGHWAY_UNCLASSIFIED
)

func (iotaIdx HighwayType) String() string {
	return [...]string{"path", "track", "footway", "bridleway", "cycleway", "steps", "pedestrian", "service", "residential", "unclassified"}[iotaIdx-1]
}

func getHighwayType(str string) HighwayType {
	if found, ok := highwaysTypes[str]; ok {
		return found
	}
	return 0
}

var (
	highwaysTypes = map[string]HighwayType{
		"path":         HIGHWAY_PATH,
		"track":        HIGHWAY_TRACK,
		"footway":      HIGHWAY_FOOTWAY,
		"bridleway":    HIGHWAY_BRIDLEWAY,
		"cycleway":     HIGHWAY_CYCLEWAY,
		"steps":        HIGHWAY_STEPS,
		"pedestrian":   HIGHWAY_PEDESTRIAN,
		"service":      HIGHWAY_SERVICE,
		"residential":  HIGHWAY_RESIDENTIAL,
		"unclassified": HIGHWAY_UNCLASSIFIED,
	}

	// Ways where `sac_scale` makes sense
	defaultSacScaleHighways = []HighwayType{HIGHWAY_PATH, HIGHWAY_TRACK, HIGHWAY_FOOTWAY}
)
