package osm2route

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
)

type OSMScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

// nodeData Coordinates of OSM node with optional elevation
type nodeData struct {
	lon    float64
	lat    float64
	ele    float64
	hasEle bool
}

// OSMDataRaw Route relations and everything they reference
type OSMDataRaw struct {
	relations      map[osm.RelationID]*osm.Relation
	relationsOrder []osm.RelationID
	ways           map[osm.WayID]*osm.Way
	nodes          map[osm.NodeID]nodeData
}

var routeRelationTypes = map[string]struct{}{
	"route":      {},
	"superroute": {},
}

func newScanner(ctx context.Context, file *os.File, filename string) (OSMScanner, error) {
	// Guess file extension and prepare correct scanner
	ext := filepath.Ext(filename)
	switch ext {
	case ".osm", ".xml":
		return osmxml.New(ctx, file), nil
	case ".pbf":
		return osmpbf.New(ctx, file, 4), nil
	default:
		return nil, fmt.Errorf("File extension '%s' for file '%s' is not handled yet", ext, filename)
	}
}

func readOSM(filename string, logger *log.Logger) (*OSMDataRaw, error) {
	logger.Debug("Opening file", "filename", filename)
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "Can't open file")
	}
	defer file.Close()

	data := &OSMDataRaw{
		relations: make(map[osm.RelationID]*osm.Relation),
		ways:      make(map[osm.WayID]*osm.Way),
		nodes:     make(map[osm.NodeID]nodeData),
	}
	ctx := context.Background()

	/* Process relations */
	st := time.Now()
	waysSeen := make(map[osm.WayID]struct{})
	{
		scannerRelations, err := newScanner(ctx, file, filename)
		if err != nil {
			return nil, err
		}
		defer scannerRelations.Close()
		for scannerRelations.Scan() {
			relation, ok := scannerRelations.Object().(*osm.Relation)
			if !ok {
				continue
			}
			if _, ok := routeRelationTypes[relation.Tags.Find("type")]; !ok {
				continue
			}
			data.relations[relation.ID] = relation
			data.relationsOrder = append(data.relationsOrder, relation.ID)
			for _, member := range relation.Members {
				if member.Type == osm.TypeWay {
					waysSeen[osm.WayID(member.Ref)] = struct{}{}
				}
			}
		}
		if err := scannerRelations.Err(); err != nil {
			return nil, errors.Wrap(err, "Scanner error on relations")
		}
	}
	logger.Debug("Relations processed", "relations", len(data.relations), "elapsed", time.Since(st))

	// Seek file to start
	if _, err = file.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "Can't repeat seeking after relations scanning")
	}

	/* Process ways */
	st = time.Now()
	nodesSeen := make(map[osm.NodeID]struct{})
	{
		scannerWays, err := newScanner(ctx, file, filename)
		if err != nil {
			return nil, err
		}
		defer scannerWays.Close()
		for scannerWays.Scan() {
			way, ok := scannerWays.Object().(*osm.Way)
			if !ok {
				continue
			}
			if _, ok := waysSeen[way.ID]; !ok {
				continue
			}
			data.ways[way.ID] = way
			// Mark way's nodes as seen to skip the rest of nodes
			for _, node := range way.Nodes {
				nodesSeen[node.ID] = struct{}{}
			}
		}
		if err := scannerWays.Err(); err != nil {
			return nil, errors.Wrap(err, "Scanner error on ways")
		}
	}
	logger.Debug("Ways processed", "ways", len(data.ways), "elapsed", time.Since(st))

	if _, err = file.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "Can't repeat seeking after ways scanning")
	}

	/* Process nodes */
	st = time.Now()
	{
		scannerNodes, err := newScanner(ctx, file, filename)
		if err != nil {
			return nil, err
		}
		defer scannerNodes.Close()
		for scannerNodes.Scan() {
			node, ok := scannerNodes.Object().(*osm.Node)
			if !ok {
				continue
			}
			if _, ok := nodesSeen[node.ID]; !ok {
				continue
			}
			prepared := nodeData{lon: node.Lon, lat: node.Lat}
			if eleText := node.Tags.Find("ele"); eleText != "" {
				ele, err := strconv.ParseFloat(eleText, 64)
				if err != nil {
					logger.Warn("Unhandled `ele` tag value", "value", eleText, "node", node.ID)
				} else {
					prepared.ele = ele
					prepared.hasEle = true
				}
			}
			data.nodes[node.ID] = prepared
		}
		if err := scannerNodes.Err(); err != nil {
			return nil, errors.Wrap(err, "Scanner error on nodes")
		}
	}
	logger.Debug("Nodes processed", "nodes", len(data.nodes), "elapsed", time.Since(st))
	return data, nil
}

// prepareWay builds segment for OSM way. Missing way (or nodes) makes segment incomplete, but not nil
func (data *OSMDataRaw) prepareWay(id osm.WayID, elevation bool, logger *log.Logger) *Way {
	way, ok := data.ways[id]
	if !ok {
		logger.Warn("Way is referenced, but not present in data", "way", id)
		return &Way{ID: id}
	}
	prepared := &Way{
		ID:          id,
		Tags:        make(osm.Tags, len(way.Tags)),
		Nodes:       make([]osm.NodeID, 0, len(way.Nodes)),
		Coordinates: make([][]float64, 0, len(way.Nodes)),
	}
	copy(prepared.Tags, way.Tags)
	withElevation := elevation
	for _, wayNode := range way.Nodes {
		prepared.Nodes = append(prepared.Nodes, wayNode.ID)
		node, ok := data.nodes[wayNode.ID]
		if !ok {
			logger.Warn("Node is referenced, but not present in data", "node", wayNode.ID, "way", id)
			continue
		}
		withElevation = withElevation && node.hasEle
		prepared.Coordinates = append(prepared.Coordinates, []float64{node.lon, node.lat, node.ele})
	}
	for i := range prepared.Coordinates {
		if !withElevation {
			prepared.Coordinates[i] = prepared.Coordinates[i][:2]
		}
	}
	return prepared
}

// prepareRoute builds route for relation with nested relations turned into segments
func (data *OSMDataRaw) prepareRoute(id osm.RelationID, cfg *RouteConfiguration, prepared map[osm.RelationID]*Route, visiting map[osm.RelationID]struct{}, logger *log.Logger) (*Route, error) {
	if route, ok := prepared[id]; ok {
		return route, nil
	}
	if _, ok := visiting[id]; ok {
		return nil, fmt.Errorf("Relation '%d' contains itself", id)
	}
	visiting[id] = struct{}{}
	defer delete(visiting, id)

	relation, ok := data.relations[id]
	if !ok {
		logger.Warn("Route relation is referenced, but not present in data", "relation", id)
		route := NewRoute(id, nil, nil, WithRouteConfiguration(cfg))
		prepared[id] = route
		return route, nil
	}
	members := make([]Member, 0, len(relation.Members))
	for _, member := range relation.Members {
		role := cfg.RoleOf(member.Role)
		switch member.Type {
		case osm.TypeWay:
			members = append(members, Member{Segment: data.prepareWay(osm.WayID(member.Ref), cfg.Elevation, logger), Role: role})
		case osm.TypeRelation:
			nested, err := data.prepareRoute(osm.RelationID(member.Ref), cfg, prepared, visiting, logger)
			if err != nil {
				return nil, errors.Wrapf(err, "Can't prepare member of relation '%d'", id)
			}
			members = append(members, Member{Segment: nested, Role: role})
		default:
			logger.Debug("Skip member", "type", member.Type, "ref", member.Ref, "relation", id)
		}
	}
	tags := make(osm.Tags, len(relation.Tags))
	copy(tags, relation.Tags)
	route := NewRoute(id, tags, members, WithRouteConfiguration(cfg))
	prepared[id] = route
	return route, nil
}
