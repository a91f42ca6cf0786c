package osm2route

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// PrepareWKTLinestring returns WKT representation of ordered route (elevation is dropped)
func (route *Route) PrepareWKTLinestring() (string, error) {
	line, err := route.Line()
	if err != nil {
		return "", err
	}
	return wkt.MarshalString(lineToOrb(line)), nil
}

// PrepareWKTMultiLinestring returns WKT representation of main segments (relation order, native direction)
func (route *Route) PrepareWKTMultiLinestring() (string, error) {
	lines, err := route.unorderedLines()
	if err != nil {
		return "", err
	}
	multiLine := make(orb.MultiLineString, len(lines))
	for i, line := range lines {
		multiLine[i] = lineToOrb(line)
	}
	return wkt.MarshalString(multiLine), nil
}
