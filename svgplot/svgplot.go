// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package svgplot draws bounded Voronoi cells and diagrams as SVG.
package svgplot

import (
	"errors"
	"fmt"
	"io"

	boundedvoronoi "github.com/at-robins/geo-bounded-voronoi"
	"github.com/at-robins/geo-bounded-voronoi/r2delaunay"
	svg "github.com/ajstarks/svgo"
	"github.com/golang/geo/r2"
)

const (
	DefaultWidth = 1000

	margin = 20

	backgroundStyle = "fill:rgb(255,255,255)"
	polygonStyle    = "fill:rgb(255,255,255);stroke:rgb(170,170,170);stroke-width:1;stroke-opacity:1.0"
	cellStyle       = "fill:rgb(230,240,255);stroke:rgb(60,90,170);stroke-width:1;stroke-opacity:1.0"
	siteStyle       = "fill:rgb(255,0,0)"
	degenerateStyle = "fill:rgb(170,170,170)"
	vertexStyle     = "fill:rgb(0,0,255)"
)

// projection maps a world rectangle onto a canvas of the given width,
// flipping the y axis.
type projection struct {
	view   r2.Rect
	scale  float64
	width  int
	height int
}

func newProjection(view r2.Rect, width int) (projection, error) {
	if width <= 2*margin {
		return projection{}, fmt.Errorf("svgplot: width must exceed %d, got %d", 2*margin, width)
	}
	if view.IsEmpty() {
		return projection{}, errors.New("svgplot: nothing to draw")
	}
	size := view.Size()
	if size.X == 0 || size.Y == 0 {
		view = view.ExpandedByMargin(max(size.X, size.Y, 1) / 2)
		size = view.Size()
	}
	inner := float64(width - 2*margin)
	scale := inner / size.X
	return projection{
		view:   view,
		scale:  scale,
		width:  width,
		height: int(size.Y*scale) + 2*margin,
	}, nil
}

func (p projection) toScreen(pt r2.Point) (int, int) {
	x := (pt.X-p.view.X.Lo)*p.scale + margin
	y := (p.view.Y.Hi-pt.Y)*p.scale + margin
	return int(x), int(y)
}

func (p projection) polygon(canvas *svg.SVG, ring []r2.Point, style string) {
	xs := make([]int, len(ring))
	ys := make([]int, len(ring))
	for i, v := range ring {
		xs[i], ys[i] = p.toScreen(v)
	}
	canvas.Polygon(xs, ys, style)
}

func (p projection) start(w io.Writer) *svg.SVG {
	canvas := svg.New(w)
	canvas.Start(p.width, p.height)
	canvas.Rect(0, 0, p.width, p.height, backgroundStyle)
	return canvas
}

// WriteCells draws every non-degenerate cell and all sites. Sites of
// degenerate cells are drawn in grey. Without results the canvas is blank.
func WriteCells(w io.Writer, results []boundedvoronoi.CellResult, width int) error {
	view := r2.EmptyRect()
	for _, r := range results {
		view = view.AddPoint(r.Site)
		for _, v := range r.Cell {
			view = view.AddPoint(v)
		}
	}
	if view.IsEmpty() {
		view = r2.RectFromPoints(r2.Point{X: -1, Y: -1}, r2.Point{X: 1, Y: 1})
	}
	proj, err := newProjection(view, width)
	if err != nil {
		return err
	}

	canvas := proj.start(w)
	for _, r := range results {
		if len(r.Cell) > 0 {
			proj.polygon(canvas, r.Cell, cellStyle)
		}
	}
	for _, r := range results {
		x, y := proj.toScreen(r.Site)
		style := siteStyle
		if r.Degenerate() {
			style = degenerateStyle
		}
		canvas.Circle(x, y, 3, style)
	}
	canvas.End()
	return nil
}

// WriteDiagram draws the cells of vd cut to its bounds.
func WriteDiagram(w io.Writer, vd *boundedvoronoi.Diagram, width int) error {
	proj, err := newProjection(vd.Bounds, width)
	if err != nil {
		return err
	}

	canvas := proj.start(w)
	for i := range vd.NumCells() {
		cell, err := vd.Cell(i)
		if err != nil {
			return err
		}
		if cell.NumVertices() >= 3 {
			proj.polygon(canvas, cell.Vertices(), polygonStyle)
		}
	}
	for _, s := range vd.Sites {
		x, y := proj.toScreen(s)
		canvas.Circle(x, y, 3, siteStyle)
	}
	canvas.End()
	return nil
}

// WriteTriangulation draws the triangles of dt and its vertices.
func WriteTriangulation(w io.Writer, dt *r2delaunay.Triangulation, width int) error {
	proj, err := newProjection(r2.RectFromPoints(dt.Vertices...), width)
	if err != nil {
		return err
	}

	canvas := proj.start(w)
	tri := make([]r2.Point, 3)
	for _, t := range dt.Triangles {
		for k, id := range t {
			tri[k] = dt.Vertices[id]
		}
		proj.polygon(canvas, tri, polygonStyle)
	}
	for _, v := range dt.Vertices {
		x, y := proj.toScreen(v)
		canvas.Circle(x, y, 3, vertexStyle)
	}
	canvas.End()
	return nil
}
