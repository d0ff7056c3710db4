// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package r2delaunay computes planar Delaunay triangulations as the lower
// convex hull of the sites lifted onto the paraboloid z = x² + y².
package r2delaunay

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/markus-wa/quickhull-go/v2"
)

const (
	defaultEps = 1e-12
)

type Triangulation struct {
	Vertices []r2.Point
	// NOTE: Sorted in CCW.
	Triangles [][3]int
	// NOTE: Sorted in CCW per vertex. Fans of hull vertices start at the hull.
	IncidentTriangleIndices []int
	IncidentTriangleOffsets []int
}

func (dt *Triangulation) IncidentTriangles(vIdx int) []int {
	if vIdx < 0 || vIdx+1 >= len(dt.IncidentTriangleOffsets) {
		panic("IncidentTriangles: vIdx out of range")
	}
	start := dt.IncidentTriangleOffsets[vIdx]
	end := dt.IncidentTriangleOffsets[vIdx+1]
	return dt.IncidentTriangleIndices[start:end]
}

func (dt *Triangulation) TriangleVertices(tIdx int) (r2.Point, r2.Point, r2.Point) {
	if tIdx < 0 || tIdx >= len(dt.Triangles) {
		panic("TriangleVertices: tIdx out of bounds")
	}
	t := dt.Triangles[tIdx]
	return dt.Vertices[t[0]], dt.Vertices[t[1]], dt.Vertices[t[2]]
}

// Neighbors returns the vertices joined to vIdx by a triangulation edge, in
// CCW order around it.
func (dt *Triangulation) Neighbors(vIdx int) []int {
	it := dt.IncidentTriangles(vIdx)
	out := make([]int, 0, len(it)+1)
	seen := make(map[int]struct{}, len(it)+1)
	add := func(v int) {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	for _, tIdx := range it {
		add(NextVertex(dt.Triangles[tIdx], vIdx))
		add(PrevVertex(dt.Triangles[tIdx], vIdx))
	}
	return out
}

type TriangulationOptions struct {
	Eps float64
}

type TriangulationOption func(*TriangulationOptions) error

func WithEps(eps float64) TriangulationOption {
	return func(o *TriangulationOptions) error {
		if eps <= 0 {
			return fmt.Errorf("r2delaunay: eps must be positive, got %v", eps)
		}
		o.Eps = eps
		return nil
	}
}

// NewTriangulation triangulates vertices, which must be unique.
// It fails when fewer than 4 vertices are given or when all of them are
// collinear or co-circular, since the lifted hull is then flat.
func NewTriangulation(vertices []r2.Point, setters ...TriangulationOption) (dt *Triangulation, err error) {
	opts := TriangulationOptions{
		Eps: defaultEps,
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	numVertices := len(vertices)
	if numVertices < 4 {
		return nil,
			errors.New("r2delaunay: insufficient vertices for triangulation (minimum 4 required)")
	}

	lifted := liftVertices(vertices)
	if isFlat(lifted, opts.Eps) {
		return nil, errors.New("r2delaunay: vertices are collinear or co-circular")
	}

	defer func() {
		if r := recover(); r != nil {
			dt = nil
			err = fmt.Errorf("r2delaunay: convex hull failed: %v", r)
		}
	}()
	qh := new(quickhull.QuickHull)
	ch := qh.ConvexHull(lifted, true, true, opts.Eps)
	if len(ch.Indices)%3 != 0 {
		return nil, errors.New("r2delaunay: inconsistent number of indices returned from QuickHull")
	}

	centroid := r3.Vector{}
	for _, v := range lifted {
		centroid = centroid.Add(v)
	}
	centroid = centroid.Mul(1 / float64(numVertices))

	dt = &Triangulation{
		Vertices:                vertices,
		IncidentTriangleOffsets: make([]int, numVertices+1),
	}
	for i := 0; i+2 < len(ch.Indices); i += 3 {
		t := [3]int{ch.Indices[i], ch.Indices[i+1], ch.Indices[i+2]}
		if !isLowerFace(t, lifted, centroid, opts.Eps) {
			continue
		}
		sortTriangleVerticesCCW(&t, vertices)
		dt.Triangles = append(dt.Triangles, t)
	}

	for _, t := range dt.Triangles {
		for _, v := range t {
			dt.IncidentTriangleOffsets[v+1]++
		}
	}
	for i := range numVertices {
		if dt.IncidentTriangleOffsets[i+1] == 0 {
			return nil, fmt.Errorf("r2delaunay: vertex %d is missing from the lower hull", i)
		}
		dt.IncidentTriangleOffsets[i+1] += dt.IncidentTriangleOffsets[i]
	}

	dt.IncidentTriangleIndices = make([]int, dt.IncidentTriangleOffsets[numVertices])
	nxt := make([]int, numVertices)
	copy(nxt, dt.IncidentTriangleOffsets[:numVertices])
	for tIdx, t := range dt.Triangles {
		for _, v := range t {
			dt.IncidentTriangleIndices[nxt[v]] = tIdx
			nxt[v]++
		}
	}

	for i := range numVertices {
		sortIncidentTriangleIndicesCCW(i, dt.IncidentTriangles(i), dt.Triangles)
	}

	return dt, nil
}

// liftVertices maps the vertices into the unit square around the origin and
// lifts them onto the paraboloid. Delaunay triangles are invariant under
// translation and uniform scaling.
func liftVertices(vertices []r2.Point) []r3.Vector {
	bounds := r2.RectFromPoints(vertices...)
	center := bounds.Center()
	size := bounds.Size()
	scale := max(size.X, size.Y) / 2
	if scale == 0 {
		scale = 1
	}

	lifted := make([]r3.Vector, len(vertices))
	for i, v := range vertices {
		p := v.Sub(center).Mul(1 / scale)
		lifted[i] = r3.Vector{X: p.X, Y: p.Y, Z: p.X*p.X + p.Y*p.Y}
	}
	return lifted
}

// isFlat reports whether all lifted points lie on one plane.
func isFlat(lifted []r3.Vector, eps float64) bool {
	a := lifted[0]
	var normal r3.Vector
	var found bool
	for i := 1; i < len(lifted) && !found; i++ {
		for j := i + 1; j < len(lifted); j++ {
			n := lifted[i].Sub(a).Cross(lifted[j].Sub(a))
			if n.Norm() > eps {
				normal, found = n.Normalize(), true
				break
			}
		}
	}
	if !found {
		return true
	}
	for _, p := range lifted {
		if d := p.Sub(a).Dot(normal); d > eps || d < -eps {
			return false
		}
	}
	return true
}

// isLowerFace reports whether the hull face t faces downwards, away from
// the hull's centroid.
func isLowerFace(t [3]int, lifted []r3.Vector, centroid r3.Vector, eps float64) bool {
	a, b, c := lifted[t[0]], lifted[t[1]], lifted[t[2]]
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Dot(a.Sub(centroid)) < 0 {
		n = n.Mul(-1)
	}
	return n.Z < -eps*n.Norm()
}

func sortTriangleVerticesCCW(t *[3]int, v []r2.Point) {
	p0, p1, p2 := v[t[0]], v[t[1]], v[t[2]]
	if p1.Sub(p0).Cross(p2.Sub(p0)) < 0 {
		t[1], t[2] = t[2], t[1]
	}
}

// sortIncidentTriangleIndicesCCW orders the fan of triangles around vIdx.
// For a hull vertex the fan is open and starts at the triangle whose
// previous vertex is not shared with any other triangle of the fan.
func sortIncidentTriangleIndicesCCW(vIdx int, incidentTris []int, tris [][3]int) {
	n := len(incidentTris)
	if n == 0 {
		return
	}

	nexts := make(map[int]struct{}, n)
	for _, tIdx := range incidentTris {
		nexts[NextVertex(tris[tIdx], vIdx)] = struct{}{}
	}
	for i, tIdx := range incidentTris {
		if _, ok := nexts[PrevVertex(tris[tIdx], vIdx)]; !ok {
			incidentTris[0], incidentTris[i] = incidentTris[i], incidentTris[0]
			break
		}
	}

	for i := 1; i < n; i++ {
		nxt := NextVertex(tris[incidentTris[i-1]], vIdx)
		for j := i; j < n; j++ {
			prv := PrevVertex(tris[incidentTris[j]], vIdx)
			if nxt == prv {
				incidentTris[i], incidentTris[j] = incidentTris[j], incidentTris[i]
				break
			}
		}
	}
}

func PrevVertex(t [3]int, vIdx int) int {
	switch vIdx {
	case t[0]:
		return t[2]
	case t[1]:
		return t[0]
	case t[2]:
		return t[1]
	}
	panic("PrevVertex: vIdx not in triangle")
}

func NextVertex(t [3]int, vIdx int) int {
	switch vIdx {
	case t[0]:
		return t[1]
	case t[1]:
		return t[2]
	case t[2]:
		return t[0]
	}
	panic("NextVertex: vIdx not in triangle")
}
