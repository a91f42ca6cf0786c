package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/LdDl/osm2route"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newContractionCmd(opts *options) *cobra.Command {
	var doContraction bool
	cmd := &cobra.Command{
		Use:   "ch",
		Short: "Export route graph for contraction hierarchies ('<out>.csv', '<out>_vertices.csv', '<out>_shortcuts.csv')",
		RunE: func(cmd *cobra.Command, args []string) error {
			route, err := opts.route(cmd.Context())
			if err != nil {
				return err
			}
			out := opts.out
			if out == "" {
				out = "my_route.csv"
			}
			prog := newProgress(loggerFromContext(cmd.Context()))
			err = exportContraction(route, out, doContraction)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Exported %s", out))
			return nil
		},
	}
	cmd.Flags().BoolVar(&doContraction, "contract", true, "Prepare contraction hierarchies?")
	return cmd
}

func exportContraction(route *osm2route.Route, out string, doContraction bool) error {
	graph, err := route.ContractionGraph(doContraction)
	if err != nil {
		return errors.Wrap(err, "Can't prepare graph")
	}
	routeGraph, err := route.RouteGraph()
	if err != nil {
		return err
	}

	fnamePart := strings.Split(out, ".csv") // to guarantee proper filename and its extension
	fnameEdges := fnamePart[0] + ".csv"
	fnameVertices := fnamePart[0] + "_vertices.csv"
	fnameShortcuts := fnamePart[0] + "_shortcuts.csv"

	/* Edges file */
	fileEdges, err := os.Create(fnameEdges)
	if err != nil {
		return errors.Wrap(err, "Can't create edges file")
	}
	defer fileEdges.Close()
	writerEdges := csv.NewWriter(fileEdges)
	defer writerEdges.Flush()
	writerEdges.Comma = ';'
	// 		from_vertex_id - int64, OSM node ID of source vertex
	// 		to_vertex_id - int64, OSM node ID of target vertex
	//      segment - string, segment reference ('-' prefix for reversed traversal)
	err = writerEdges.Write([]string{"from_vertex_id", "to_vertex_id", "segment"})
	if err != nil {
		return errors.Wrap(err, "Can't write edges header")
	}
	for _, source := range routeGraph.Nodes() {
		for _, target := range routeGraph.Neighbours(source) {
			ref, _ := routeGraph.Reference(source, target)
			err = writerEdges.Write([]string{
				fmt.Sprintf("%d", source),
				fmt.Sprintf("%d", target),
				ref.String(),
			})
			if err != nil {
				return errors.Wrap(err, "Can't write edge")
			}
		}
	}

	/* Vertices file */
	fileVertices, err := os.Create(fnameVertices)
	if err != nil {
		return errors.Wrap(err, "Can't create vertices file")
	}
	defer fileVertices.Close()
	writerVertices := csv.NewWriter(fileVertices)
	defer writerVertices.Flush()
	writerVertices.Comma = ';'
	// 		vertex_id - int64, ID of vertex
	// 		order_pos - int, Position of vertex in hierarchies (evaluted by library)
	// 		importance - int, Importance of vertex in graph (evaluted by library)
	err = writerVertices.Write([]string{"vertex_id", "order_pos", "importance"})
	if err != nil {
		return errors.Wrap(err, "Can't write vertices header")
	}
	for i := range graph.Vertices {
		err = writerVertices.Write([]string{
			fmt.Sprintf("%d", graph.Vertices[i].Label),
			fmt.Sprintf("%d", graph.Vertices[i].OrderPos()),
			fmt.Sprintf("%d", graph.Vertices[i].Importance()),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write vertex")
		}
	}

	if doContraction {
		/* Write shortcuts */
		// 	from_vertex_id - int64, ID of source vertex
		// 	to_vertex_id - int64, ID of target vertex
		// 	weight - float64, Weight of an edge
		// 	via_vertex_id - int64, ID of vertex through which the shortcut exists
		err = graph.ExportShortcutsToFile(fnameShortcuts)
		if err != nil {
			return errors.Wrap(err, "Can't export shortcuts")
		}
	}
	return nil
}
