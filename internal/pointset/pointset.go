// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package pointset reads bounded point sets and writes bounded Voronoi cells
// in the file formats of the geo-bounded-voronoi command.
package pointset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	boundedvoronoi "github.com/at-robins/geo-bounded-voronoi"
	"github.com/golang/geo/r2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const (
	CellsFileName   = "geo_bound_voronoi.json"
	GeoJSONFileName = "geo_bound_voronoi.geojson"
	SVGFileName     = "geo_bound_voronoi.svg"
)

// PointSet is a set of sites together with the polygon template that bounds
// each of their cells. Neither slice is sanitized.
type PointSet struct {
	Points []r2.Point
	Bound  []r2.Point
}

type pointSetJSON struct {
	Points [][]*float64 `json:"points"`
	Bound  [][]*float64 `json:"bound"`
}

// Read decodes a point set of the form
//
//	{"points": [[0.0, 1.0], [1.0, 1.0]], "bound": [[-0.5, -0.5], [0.0, 0.0], [1.0, 0.5]]}
//
// Pairs that do not hold exactly two numbers are dropped, including pairs
// with a null coordinate.
func Read(r io.Reader) (*PointSet, error) {
	var raw pointSetJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("pointset: decode: %w", err)
	}
	return &PointSet{
		Points: toPoints(raw.Points),
		Bound:  toPoints(raw.Bound),
	}, nil
}

// ReadFile reads the point set stored at path.
func ReadFile(path string) (*PointSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pointset: %w", err)
	}
	defer f.Close()
	return Read(f)
}

func toPoints(pairs [][]*float64) []r2.Point {
	out := make([]r2.Point, 0, len(pairs))
	for _, p := range pairs {
		if len(p) != 2 || p[0] == nil || p[1] == nil {
			continue
		}
		out = append(out, r2.Point{X: *p[0], Y: *p[1]})
	}
	return out
}

type cellJSON struct {
	Site [2]float64   `json:"site"`
	Cell [][2]float64 `json:"cell"`
}

// WriteCells encodes results as a JSON array of {"site": [x, y], "cell":
// [[x, y], ...]} objects. A degenerate cell is written as an empty array.
func WriteCells(w io.Writer, results []boundedvoronoi.CellResult) error {
	out := make([]cellJSON, len(results))
	for i, r := range results {
		cell := make([][2]float64, len(r.Cell))
		for k, v := range r.Cell {
			cell[k] = [2]float64{v.X, v.Y}
		}
		out[i] = cellJSON{
			Site: [2]float64{r.Site.X, r.Site.Y},
			Cell: cell,
		}
	}
	if err := json.NewEncoder(w).Encode(out); err != nil {
		return fmt.Errorf("pointset: encode cells: %w", err)
	}
	return nil
}

// FeatureCollection returns one Polygon feature per non-degenerate cell. The
// site is stored in the "site" property.
func FeatureCollection(results []boundedvoronoi.CellResult) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, r := range results {
		if r.Degenerate() || len(r.Cell) == 0 {
			continue
		}
		ring := make(orb.Ring, len(r.Cell))
		for k, v := range r.Cell {
			ring[k] = orb.Point{v.X, v.Y}
		}
		f := geojson.NewFeature(orb.Polygon{ring})
		f.Properties["site"] = []float64{r.Site.X, r.Site.Y}
		fc.Append(f)
	}
	return fc
}

// WriteFeatureCollection encodes FeatureCollection(results) as GeoJSON.
func WriteFeatureCollection(w io.Writer, results []boundedvoronoi.CellResult) error {
	data, err := FeatureCollection(results).MarshalJSON()
	if err != nil {
		return fmt.Errorf("pointset: encode geojson: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("pointset: write geojson: %w", err)
	}
	return nil
}

// OutputDir returns dir, or the directory containing input if dir is empty.
func OutputDir(input, dir string) string {
	if dir != "" {
		return dir
	}
	return filepath.Dir(input)
}

// WriteFile creates path and passes it to write. Errors from closing the
// file are reported as well.
func WriteFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("pointset: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("pointset: %w", cerr)
		}
	}()
	return write(f)
}
