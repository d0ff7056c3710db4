// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Command geo-bounded-voronoi computes the Voronoi diagram of a point set
// whose cells are bound by a polygon placed on every point.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	boundedvoronoi "github.com/at-robins/geo-bounded-voronoi"
	"github.com/at-robins/geo-bounded-voronoi/internal/pointset"
	"github.com/at-robins/geo-bounded-voronoi/svgplot"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type config struct {
	outputDir      string
	anchor         string
	delaunay       bool
	dropDegenerate bool
	geoJSON        bool
	svg            bool
	verbose        bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg config
	cmd := &cobra.Command{
		Use:   "geo-bounded-voronoi POINT_SET_FILE",
		Short: "Generate the Voronoi diagram of a point set bound by an arbitrary polygon",
		Long: `Generate the Voronoi diagram of a point set bound by an arbitrary polygon.

POINT_SET_FILE is a JSON file of the form
  {"points": [[0.0, 1.0], [1.0, 1.0]], "bound": [[-0.5, -0.5], [0.0, 0.0], [1.0, 0.5], [-0.5, -0.5]]}

The cells are written to ` + pointset.CellsFileName + ` in the output directory.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cfg.verbose)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			return run(args[0], cfg, logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.outputDir, "output-directory", "o", "",
		"output directory (default: the directory of POINT_SET_FILE)")
	flags.StringVar(&cfg.anchor, "anchor", boundedvoronoi.AnchorOrigin.String(),
		"point of the bound placed on each site: origin or bounds-center")
	flags.BoolVar(&cfg.delaunay, "delaunay", false, "find cell neighbours through a Delaunay triangulation")
	flags.BoolVar(&cfg.dropDegenerate, "drop-degenerate", false, "omit sites whose cell collapsed")
	flags.BoolVar(&cfg.geoJSON, "geojson", false, "also write "+pointset.GeoJSONFileName)
	flags.BoolVar(&cfg.svg, "svg", false, "also write "+pointset.SVGFileName)
	flags.BoolVarP(&cfg.verbose, "verbose", "v", false, "log debug output")
	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func parseAnchor(s string) (boundedvoronoi.Anchor, error) {
	for _, a := range []boundedvoronoi.Anchor{boundedvoronoi.AnchorOrigin, boundedvoronoi.AnchorBoundsCenter} {
		if s == a.String() {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown anchor %q, want origin or bounds-center", s)
}

func run(input string, cfg config, logger *zap.Logger) error {
	anchor, err := parseAnchor(cfg.anchor)
	if err != nil {
		return err
	}

	ps, err := pointset.ReadFile(input)
	if err != nil {
		return err
	}
	logger.Info("read point set",
		zap.String("path", input),
		zap.Int("points", len(ps.Points)),
		zap.Int("boundVertices", len(ps.Bound)),
	)

	opts := []boundedvoronoi.Option{
		boundedvoronoi.WithAnchor(anchor),
		boundedvoronoi.WithLogger(logger),
	}
	if cfg.delaunay {
		opts = append(opts, boundedvoronoi.WithDiagramOptions(
			boundedvoronoi.WithNeighborSearch(boundedvoronoi.NeighborsDelaunay),
		))
	}
	results, err := boundedvoronoi.Build(ps.Points, ps.Bound, opts...)
	if err != nil {
		return err
	}
	if cfg.dropDegenerate {
		results = boundedvoronoi.DropDegenerate(results)
	}

	dir := pointset.OutputDir(input, cfg.outputDir)
	outputs := []struct {
		enabled bool
		name    string
		write   func(io.Writer) error
	}{
		{true, pointset.CellsFileName, func(w io.Writer) error {
			return pointset.WriteCells(w, results)
		}},
		{cfg.geoJSON, pointset.GeoJSONFileName, func(w io.Writer) error {
			return pointset.WriteFeatureCollection(w, results)
		}},
		{cfg.svg, pointset.SVGFileName, func(w io.Writer) error {
			return svgplot.WriteCells(w, results, svgplot.DefaultWidth)
		}},
	}
	for _, out := range outputs {
		if !out.enabled {
			continue
		}
		path := filepath.Join(dir, out.name)
		if err := pointset.WriteFile(path, out.write); err != nil {
			return err
		}
		logger.Info("wrote output", zap.String("path", path), zap.Int("cells", len(results)))
	}
	return nil
}
