package osm2route

import (
	"fmt"

	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

// ReadRoute reads OSM file and prepares route for relation with given identifier.
/*
	File should have XML (.osm, .xml) or PBF (.pbf) format according to https://github.com/paulmach/osm
*/
func (parser *Parser) ReadRoute(id osm.RelationID) (*Route, error) {
	data, err := readOSM(parser.filename, parser.logger)
	if err != nil {
		return nil, errors.Wrap(err, "Can't parse OSM data")
	}
	if _, ok := data.relations[id]; !ok {
		return nil, fmt.Errorf("No route relation with id '%d' in file '%s'", id, parser.filename)
	}
	route, err := data.prepareRoute(id, parser.cfg, make(map[osm.RelationID]*Route), make(map[osm.RelationID]struct{}), parser.logger)
	if err != nil {
		return nil, errors.Wrap(err, "Can't prepare route")
	}
	parser.reportCollisions(route)
	return route, nil
}

// ReadRoutes reads OSM file and prepares every route relation in it (file order)
func (parser *Parser) ReadRoutes() ([]*Route, error) {
	data, err := readOSM(parser.filename, parser.logger)
	if err != nil {
		return nil, errors.Wrap(err, "Can't parse OSM data")
	}
	prepared := make(map[osm.RelationID]*Route, len(data.relations))
	routes := make([]*Route, 0, len(data.relationsOrder))
	for _, id := range data.relationsOrder {
		route, err := data.prepareRoute(id, parser.cfg, prepared, make(map[osm.RelationID]struct{}), parser.logger)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't prepare route '%d'", id)
		}
		parser.reportCollisions(route)
		routes = append(routes, route)
	}
	return routes, nil
}

func (parser *Parser) reportCollisions(route *Route) {
	if parser.cfg.StrictMode {
		return
	}
	graph, err := route.RouteGraph()
	if err != nil {
		return
	}
	for _, collision := range graph.Collisions() {
		parser.logger.Warn("Segments share both nodes, only the last one is kept",
			"route", route.FeatureID(),
			"source", collision.Source,
			"target", collision.Target,
			"dropped", collision.Overridden,
			"kept", collision.Winner,
		)
	}
}
