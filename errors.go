package osm2route

import (
	"fmt"
	"strings"

	"github.com/paulmach/osm"
)

// TopologyError is returned when an operation needs routable route but the route is not
type TopologyError struct {
	// Route is the route (or segment) the error is about
	Route osm.FeatureID
	// Nodes are offending nodes: all of degree > 2 and, when there are more than two of them, all dead ends
	Nodes []osm.NodeID
	// Reasons are human-readable summaries of the failed rules
	Reasons []string
}

func (e *TopologyError) Error() string {
	msg := fmt.Sprintf("'%s' is not routable: %s", e.Route, strings.Join(e.Reasons, ", "))
	if len(e.Nodes) == 0 {
		return msg
	}
	nodes := make([]string, len(e.Nodes))
	for i, nodeID := range e.Nodes {
		nodes[i] = fmt.Sprintf("%d", nodeID)
	}
	return fmt.Sprintf("%s (nodes: %s)", msg, strings.Join(nodes, ", "))
}

// newTopologyError prepares error for graph which failed routability check
func newTopologyError(route osm.FeatureID, bins DegreeBins) *TopologyError {
	err := &TopologyError{
		Route: route,
	}
	if n := len(bins[3]); n > 0 {
		err.Nodes = append(err.Nodes, bins[3]...)
		err.Reasons = append(err.Reasons, fmt.Sprintf("%d nodes with degree>2", n))
	}
	if n := len(bins[1]); n != 0 && n != 2 {
		if n > 2 {
			err.Nodes = append(err.Nodes, bins[1]...)
		}
		err.Reasons = append(err.Reasons, fmt.Sprintf("%d dead ends", n))
	}
	if len(err.Reasons) == 0 && bins.Total() == 0 {
		err.Reasons = append(err.Reasons, "no segments")
	}
	return err
}

// CompositeTopologyError is returned when one or more members of a route can't be resolved into endpoints
type CompositeTopologyError struct {
	Route  osm.FeatureID
	Errors []error
}

func (e *CompositeTopologyError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("'%s' has %d unresolvable members: %s", e.Route, len(e.Errors), strings.Join(msgs, "; "))
}

// Unwrap exposes member errors to errors.Is / errors.As
func (e *CompositeTopologyError) Unwrap() []error {
	return e.Errors
}
