// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package boundedvoronoi

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"runtime"
	"slices"
	"sync"

	"github.com/at-robins/geo-bounded-voronoi/r2delaunay"
	"github.com/golang/geo/r2"
)

const (
	defaultEps = 1e-9
)

// NeighborSearch selects how candidate neighbours of a site are found before
// its cell is intersected.
type NeighborSearch int

const (
	// NeighborsAllPairs tests every other site. O(n) per site.
	NeighborsAllPairs NeighborSearch = iota
	// NeighborsDelaunay only tests Delaunay neighbours and falls back to
	// NeighborsAllPairs when the sites cannot be triangulated.
	NeighborsDelaunay
)

func (s NeighborSearch) String() string {
	switch s {
	case NeighborsAllPairs:
		return "all-pairs"
	case NeighborsDelaunay:
		return "delaunay"
	}
	return fmt.Sprintf("NeighborSearch(%d)", int(s))
}

// Diagram is a Voronoi diagram whose cells are cut to Bounds. Cell i belongs
// to Sites[i]; its neighbours and vertices are stored back to back and
// addressed through CellOffsets and CellVertexOffsets.
type Diagram struct {
	Sites  []r2.Point
	Bounds r2.Rect

	// NOTE: Sorted in CCW per cell by direction from the site.
	CellNeighbors []int
	CellOffsets   []int

	// NOTE: Sorted in CCW per cell.
	CellVertices      []r2.Point
	CellVertexOffsets []int
}

type DiagramOptions struct {
	Eps            float64
	Workers        int
	NeighborSearch NeighborSearch
	// An empty rectangle means the site extent padded by its diagonal.
	Bounds r2.Rect
}

type DiagramOption func(*DiagramOptions) error

func WithEps(eps float64) DiagramOption {
	return func(o *DiagramOptions) error {
		if eps <= 0 {
			return fmt.Errorf("boundedvoronoi: eps must be positive, got %v", eps)
		}
		o.Eps = eps
		return nil
	}
}

func WithWorkers(n int) DiagramOption {
	return func(o *DiagramOptions) error {
		if n <= 0 {
			return fmt.Errorf("boundedvoronoi: workers must be positive, got %d", n)
		}
		o.Workers = n
		return nil
	}
}

func WithNeighborSearch(s NeighborSearch) DiagramOption {
	return func(o *DiagramOptions) error {
		if s != NeighborsAllPairs && s != NeighborsDelaunay {
			return fmt.Errorf("boundedvoronoi: unknown neighbor search %v", s)
		}
		o.NeighborSearch = s
		return nil
	}
}

// WithBounds sets the rectangle the cells are cut to. Only half-planes
// bounding a cell inside it are kept, so it must cover every region the cells
// are later clipped to.
func WithBounds(r r2.Rect) DiagramOption {
	return func(o *DiagramOptions) error {
		if r.IsEmpty() || r.X.Length() == 0 || r.Y.Length() == 0 {
			return fmt.Errorf("boundedvoronoi: bounds %v must have a positive area", r)
		}
		o.Bounds = r
		return nil
	}
}

// NewDiagram computes the Voronoi diagram of sites, which must be non-empty,
// finite and unique (see SanitizePoints). Sites are not copied.
func NewDiagram(sites []r2.Point, setters ...DiagramOption) (*Diagram, error) {
	opts := DiagramOptions{
		Eps:     defaultEps,
		Workers: runtime.GOMAXPROCS(0),
		Bounds:  r2.EmptyRect(),
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	numSites := len(sites)
	if numSites == 0 {
		return nil, errors.New("boundedvoronoi: at least one site required")
	}
	if clean := SanitizePoints(sites); len(clean) != numSites {
		return nil, errors.New("boundedvoronoi: sites must be finite and unique")
	}

	bounds := opts.Bounds
	if bounds.IsEmpty() {
		bounds = defaultBounds(sites)
	}

	candidates := allPairsCandidates(numSites)
	if opts.NeighborSearch == NeighborsDelaunay {
		if dt, err := r2delaunay.NewTriangulation(sites); err == nil {
			candidates = dt.Neighbors
		}
	}

	box := rectRing(bounds)
	neighbors := make([][]int, numSites)
	vertices := make([][]r2.Point, numSites)
	parallelFor(numSites, opts.Workers, func(i int) {
		neighbors[i], vertices[i] = computeCell(sites, i, candidates(i), box, opts.Eps)
	})

	vd := &Diagram{
		Sites:             sites,
		Bounds:            bounds,
		CellOffsets:       make([]int, numSites+1),
		CellVertexOffsets: make([]int, numSites+1),
	}
	for i := range numSites {
		vd.CellOffsets[i+1] = vd.CellOffsets[i] + len(neighbors[i])
		vd.CellVertexOffsets[i+1] = vd.CellVertexOffsets[i] + len(vertices[i])
	}
	vd.CellNeighbors = make([]int, 0, vd.CellOffsets[numSites])
	vd.CellVertices = make([]r2.Point, 0, vd.CellVertexOffsets[numSites])
	for i := range numSites {
		vd.CellNeighbors = append(vd.CellNeighbors, neighbors[i]...)
		vd.CellVertices = append(vd.CellVertices, vertices[i]...)
	}

	return vd, nil
}

func (vd *Diagram) NumCells() int {
	return len(vd.Sites)
}

// Cell returns the view of the cell with the given index.
// It returns an error if the index is out of range.
func (vd *Diagram) Cell(i int) (Cell, error) {
	if i < 0 || i >= vd.NumCells() {
		return Cell{}, fmt.Errorf("Cell: index %d out of range [0 %d)", i, vd.NumCells())
	}
	return Cell{idx: i, d: vd}, nil
}

// computeCell intersects the box with the bisectors of site i and every
// candidate. It returns the candidates whose bisector bounds the result,
// sorted by direction, and the resulting CCW polygon.
func computeCell(sites []r2.Point, i int, candidates []int, box []r2.Point, eps float64) ([]int, []r2.Point) {
	site := sites[i]
	hps := make([]HalfPlane, len(candidates))
	for k, j := range candidates {
		hps[k] = Bisector(site, sites[j])
	}

	poly := ClipPolygon(box, hps, eps)
	tol := eps * extent(box)

	neighbors := make([]int, 0, len(candidates))
	for k, j := range candidates {
		// A collapsed cell keeps every candidate, extra constraints are
		// satisfied by the cell anyway.
		if len(poly) < 3 || isBoundedBy(poly, hps[k], tol) {
			neighbors = append(neighbors, j)
		}
	}
	slices.SortFunc(neighbors, func(a, b int) int {
		return cmp.Or(
			cmp.Compare(direction(site, sites[a]), direction(site, sites[b])),
			cmp.Compare(a, b),
		)
	})
	return neighbors, poly
}

// isBoundedBy reports whether some edge of poly lies on the boundary of h.
func isBoundedBy(poly []r2.Point, h HalfPlane, tol float64) bool {
	htol := tol * h.Normal.Norm()
	on := func(p r2.Point) bool { return math.Abs(h.Eval(p)) <= htol }
	for i, a := range poly {
		if on(a) && on(poly[(i+1)%len(poly)]) {
			return true
		}
	}
	return false
}

// direction returns the angle of q seen from p in [-π, π].
func direction(p, q r2.Point) float64 {
	d := q.Sub(p)
	return math.Atan2(d.Y, d.X)
}

func allPairsCandidates(n int) func(int) []int {
	return func(i int) []int {
		out := make([]int, 0, n-1)
		for j := range n {
			if j != i {
				out = append(out, j)
			}
		}
		return out
	}
}

// defaultBounds pads the site extent by its diagonal plus one so that even a
// single site gets a box of positive area.
func defaultBounds(sites []r2.Point) r2.Rect {
	r := r2.RectFromPoints(sites...)
	return r.ExpandedByMargin(r.Size().Norm() + 1)
}

// rectRing returns the CCW corners of r.
func rectRing(r r2.Rect) []r2.Point {
	v := r.Vertices()
	return v[:]
}

// parallelFor calls fn for every index in [0, n) on at most workers
// goroutines. Each index is handed out exactly once.
func parallelFor(n, workers int, fn func(i int)) {
	workers = max(1, min(workers, n))
	indices := make(chan int)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				fn(i)
			}
		}()
	}
	for i := range n {
		indices <- i
	}
	close(indices)
	wg.Wait()
}
