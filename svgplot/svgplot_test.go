// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package svgplot

import (
	"bytes"
	"strings"
	"testing"

	boundedvoronoi "github.com/at-robins/geo-bounded-voronoi"
	"github.com/at-robins/geo-bounded-voronoi/r2delaunay"
	"github.com/at-robins/geo-bounded-voronoi/utils"
	"github.com/golang/geo/r2"
)

var testRect = r2.RectFromPoints(r2.Point{X: -10, Y: -10}, r2.Point{X: 10, Y: 10})

func TestProjection(t *testing.T) {
	proj, err := newProjection(r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 10, Y: 5}), 2*margin+100)
	if err != nil {
		t.Fatalf("newProjection(...) error = %v, want nil", err)
	}
	if proj.height != 2*margin+50 {
		t.Errorf("height = %d, want %d", proj.height, 2*margin+50)
	}

	tests := []struct {
		p      r2.Point
		wx, wy int
	}{
		{r2.Point{X: 0, Y: 5}, margin, margin},
		{r2.Point{X: 10, Y: 0}, margin + 100, margin + 50},
		{r2.Point{X: 5, Y: 2.5}, margin + 50, margin + 25},
	}
	for _, tt := range tests {
		if x, y := proj.toScreen(tt.p); x != tt.wx || y != tt.wy {
			t.Errorf("toScreen(%v) = (%d, %d), want (%d, %d)", tt.p, x, y, tt.wx, tt.wy)
		}
	}
}

func TestProjection_Errors(t *testing.T) {
	tests := []struct {
		name  string
		view  r2.Rect
		width int
	}{
		{"empty view", r2.EmptyRect(), DefaultWidth},
		{"zero width", testRect, 0},
		{"width within margins", testRect, 2 * margin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := newProjection(tt.view, tt.width); err == nil {
				t.Errorf("newProjection(%v, %d) error = nil, want non-nil", tt.view, tt.width)
			}
		})
	}
}

func TestProjection_SinglePoint(t *testing.T) {
	p := r2.Point{X: 3, Y: 4}
	proj, err := newProjection(r2.RectFromPoints(p), DefaultWidth)
	if err != nil {
		t.Fatalf("newProjection(...) error = %v, want nil", err)
	}
	if proj.height <= 2*margin {
		t.Errorf("height = %d, want > %d", proj.height, 2*margin)
	}
}

func TestWriteCells(t *testing.T) {
	results, err := boundedvoronoi.Build(
		utils.GenerateRandomPoints(20, testRect, 0),
		utils.RegularPolygon(6, 4),
	)
	if err != nil {
		t.Fatalf("Build(...) error = %v, want nil", err)
	}
	results = append(results, boundedvoronoi.CellResult{
		Site: r2.Point{X: 0, Y: 0},
		Cell: []r2.Point{},
		Err:  boundedvoronoi.ErrDegenerateCell,
	})

	var buf bytes.Buffer
	if err := WriteCells(&buf, results, DefaultWidth); err != nil {
		t.Fatalf("WriteCells(...) error = %v, want nil", err)
	}
	out := buf.String()
	if got, want := strings.Count(out, "<polygon"), len(results)-1; got != want {
		t.Errorf("WriteCells(...) drew %d polygons, want %d", got, want)
	}
	if got, want := strings.Count(out, "<circle"), len(results); got != want {
		t.Errorf("WriteCells(...) drew %d sites, want %d", got, want)
	}
	if !strings.Contains(out, degenerateStyle) {
		t.Errorf("WriteCells(...) does not mark the degenerate site")
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "</svg>") {
		t.Errorf("WriteCells(...) output is not terminated by </svg>")
	}
}

func TestWriteCells_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCells(&buf, nil, DefaultWidth); err != nil {
		t.Fatalf("WriteCells(nil) error = %v, want nil", err)
	}
	if strings.Contains(buf.String(), "<polygon") {
		t.Errorf("WriteCells(nil) drew a polygon")
	}
}

func TestWriteDiagram(t *testing.T) {
	sites := utils.GenerateRandomPoints(30, testRect, 1)
	vd, err := boundedvoronoi.NewDiagram(sites)
	if err != nil {
		t.Fatalf("NewDiagram(...) error = %v, want nil", err)
	}

	var buf bytes.Buffer
	if err := WriteDiagram(&buf, vd, DefaultWidth); err != nil {
		t.Fatalf("WriteDiagram(...) error = %v, want nil", err)
	}
	out := buf.String()
	if got := strings.Count(out, "<polygon"); got != vd.NumCells() {
		t.Errorf("WriteDiagram(...) drew %d polygons, want %d", got, vd.NumCells())
	}
	if got := strings.Count(out, "<circle"); got != vd.NumCells() {
		t.Errorf("WriteDiagram(...) drew %d sites, want %d", got, vd.NumCells())
	}
}

func TestWriteTriangulation(t *testing.T) {
	dt, err := r2delaunay.NewTriangulation(utils.GenerateRandomPoints(30, testRect, 2))
	if err != nil {
		t.Fatalf("NewTriangulation(...) error = %v, want nil", err)
	}

	var buf bytes.Buffer
	if err := WriteTriangulation(&buf, dt, DefaultWidth); err != nil {
		t.Fatalf("WriteTriangulation(...) error = %v, want nil", err)
	}
	out := buf.String()
	if got := strings.Count(out, "<polygon"); got != len(dt.Triangles) {
		t.Errorf("WriteTriangulation(...) drew %d triangles, want %d", got, len(dt.Triangles))
	}
	if got := strings.Count(out, "<circle"); got != len(dt.Vertices) {
		t.Errorf("WriteTriangulation(...) drew %d vertices, want %d", got, len(dt.Vertices))
	}
}
