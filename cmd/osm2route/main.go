package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/LdDl/osm2route"
	charmlog "github.com/charmbracelet/log"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// options Flags shared by every command
type options struct {
	verbose    bool
	configFile string
	osmFile    string
	relationID string
	out        string
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "osm2route",
		Short:        "Orders OSM route relations and evaluates their statistics",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if opts.verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "Filename of TOML configuration (roles, sac_scale highways, strict mode, elevation)")
	root.PersistentFlags().StringVar(&opts.osmFile, "file", "my_route.osm", "Filename of *.osm / *.osm.pbf file")
	root.PersistentFlags().StringVar(&opts.relationID, "relation", "", "ID of route relation")
	root.PersistentFlags().StringVar(&opts.out, "out", "", "Output filename (stdout if empty)")

	root.AddCommand(newCheckCmd(opts))
	root.AddCommand(newStatsCmd(opts))
	root.AddCommand(newGeoJSONCmd(opts))
	root.AddCommand(newWKTCmd(opts))
	root.AddCommand(newContractionCmd(opts))
	return root
}

func (opts *options) parser(ctx context.Context) (*osm2route.Parser, error) {
	cfg := osm2route.DefaultRouteConfiguration()
	if opts.configFile != "" {
		var err error
		cfg, err = osm2route.LoadRouteConfiguration(opts.configFile)
		if err != nil {
			return nil, err
		}
	}
	parser := osm2route.NewParser(
		opts.osmFile,
		osm2route.WithConfiguration(cfg),
		osm2route.WithLogger(loggerFromContext(ctx)),
	)
	loggerFromContext(ctx).Debug(parser.String())
	return parser, nil
}

func (opts *options) route(ctx context.Context) (*osm2route.Route, error) {
	if opts.relationID == "" {
		return nil, fmt.Errorf("Flag --relation is required")
	}
	id, err := strconv.ParseInt(opts.relationID, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "Bad relation ID '%s'", opts.relationID)
	}
	parser, err := opts.parser(ctx)
	if err != nil {
		return nil, err
	}
	prog := newProgress(loggerFromContext(ctx))
	route, err := parser.ReadRoute(osm.RelationID(id))
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Loaded %s", route))
	return route, nil
}

// output returns writer for --out flag and function to close it
func (opts *options) output() (io.Writer, func() error, error) {
	if opts.out == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	file, err := os.Create(opts.out)
	if err != nil {
		return nil, nil, errors.Wrap(err, "Can't create output file")
	}
	return file, file.Close, nil
}

func writeJSON(opts *options, value interface{}) error {
	w, closeFn, err := opts.output()
	if err != nil {
		return err
	}
	defer closeFn()
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check routability of every route relation in file (or the one given by --relation)",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			var routes []*osm2route.Route
			if opts.relationID != "" {
				route, err := opts.route(cmd.Context())
				if err != nil {
					return err
				}
				routes = append(routes, route)
			} else {
				parser, err := opts.parser(cmd.Context())
				if err != nil {
					return err
				}
				routes, err = parser.ReadRoutes()
				if err != nil {
					return err
				}
			}
			for _, route := range routes {
				if _, err := route.OrderedSegments(); err != nil {
					logger.Warn("Route is broken", "route", route, "err", err)
					continue
				}
				logger.Info("Route is fine", "route", route, "shape", route.Shape())
			}
			return nil
		},
	}
}

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print statistics of route as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			route, err := opts.route(cmd.Context())
			if err != nil {
				return err
			}
			stats, err := route.Statistics()
			if err != nil {
				return err
			}
			return writeJSON(opts, stats)
		},
	}
}

func newGeoJSONCmd(opts *options) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "geojson",
		Short: "Export route geometry as GeoJSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			route, err := opts.route(cmd.Context())
			if err != nil {
				return err
			}
			var value interface{}
			switch kind {
			case "unordered":
				value, err = route.FeatureCollection()
			case "ordered":
				value, err = route.OrderedFeatureCollection()
			case "line":
				value, err = route.LineStringFeature()
			case "multiline":
				value, err = route.MultiLineStringFeature()
			case "alternatives":
				value, err = route.AlternativesFeatureCollection()
			default:
				return fmt.Errorf("Unknown kind '%s'. Expected values: unordered / ordered / line / multiline / alternatives", kind)
			}
			if err != nil {
				return err
			}
			return writeJSON(opts, value)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "line", "Kind of output. Expected values: unordered / ordered / line / multiline / alternatives")
	return cmd
}

func newWKTCmd(opts *options) *cobra.Command {
	var multi bool
	cmd := &cobra.Command{
		Use:   "wkt",
		Short: "Export route geometry as WKT",
		RunE: func(cmd *cobra.Command, args []string) error {
			route, err := opts.route(cmd.Context())
			if err != nil {
				return err
			}
			var geom string
			if multi {
				geom, err = route.PrepareWKTMultiLinestring()
			} else {
				geom, err = route.PrepareWKTLinestring()
			}
			if err != nil {
				return err
			}
			w, closeFn, err := opts.output()
			if err != nil {
				return err
			}
			defer closeFn()
			_, err = fmt.Fprintln(w, geom)
			return err
		},
	}
	cmd.Flags().BoolVar(&multi, "multi", false, "Export unordered MULTILINESTRING instead of ordered LINESTRING")
	return cmd
}
