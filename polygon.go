// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package boundedvoronoi

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/golang/geo/r2"
	"github.com/peterstace/simplefeatures/rtree"
)

var (
	// ErrInvalidBoundPolygon is returned when the bound polygon has fewer than
	// 3 unique vertices or encloses no area.
	ErrInvalidBoundPolygon = errors.New("invalid bound polygon")
	// ErrSelfIntersectingPolygon is returned when the bound polygon is not
	// simple.
	ErrSelfIntersectingPolygon = errors.New("self-intersecting polygon")
)

// BoundPolygon is a simple, closed, counter-clockwise ring used as the
// template that finitizes every Voronoi cell. It is immutable.
type BoundPolygon struct {
	// NOTE: Closed (first == last) and sorted in CCW.
	ring []r2.Point
}

// NewBoundPolygon sanitizes vertices, closes the ring and checks that it is a
// simple polygon with at least 3 unique vertices. The returned polygon is
// always oriented counter-clockwise.
func NewBoundPolygon(vertices []r2.Point) (*BoundPolygon, error) {
	ring := SanitizePoints(vertices)
	if len(ring) < 3 {
		return nil, fmt.Errorf("boundedvoronoi: bound has %d unique vertices, at least 3 required: %w",
			len(ring), ErrInvalidBoundPolygon)
	}
	ring = closeRing(ring)
	scaled, _ := unitScaled(ring)

	if i, j, ok := findSelfIntersection(scaled); ok {
		return nil, fmt.Errorf("boundedvoronoi: bound edges %d and %d intersect: %w",
			i, j, ErrSelfIntersectingPolygon)
	}

	area := signedArea(scaled)
	if area == 0 {
		return nil, fmt.Errorf("boundedvoronoi: bound encloses no area: %w", ErrInvalidBoundPolygon)
	}
	if area < 0 {
		slices.Reverse(ring)
	}
	return &BoundPolygon{ring: ring}, nil
}

// Vertices returns a copy of the closed ring.
func (b *BoundPolygon) Vertices() []r2.Point {
	return slices.Clone(b.ring)
}

// NumVertices returns the number of unique vertices.
func (b *BoundPolygon) NumVertices() int {
	return len(b.ring) - 1
}

// Area returns the enclosed area. It is always positive.
func (b *BoundPolygon) Area() float64 {
	scaled, exp := unitScaled(b.ring)
	return math.Ldexp(signedArea(scaled), 2*exp)
}

// Bounds returns the bounding rectangle of the polygon.
func (b *BoundPolygon) Bounds() r2.Rect {
	return r2.RectFromPoints(b.ring...)
}

// Centroid returns the area centroid of the polygon.
func (b *BoundPolygon) Centroid() r2.Point {
	scaled, exp := unitScaled(b.ring)
	var c r2.Point
	for i := range len(scaled) - 1 {
		p, q := scaled[i], scaled[i+1]
		c = c.Add(p.Add(q).Mul(p.Cross(q)))
	}
	c = c.Mul(1 / (6 * signedArea(scaled)))
	return r2.Point{X: math.Ldexp(c.X, exp), Y: math.Ldexp(c.Y, exp)}
}

// Translated returns a copy of the closed ring moved by offset.
func (b *BoundPolygon) Translated(offset r2.Point) []r2.Point {
	out := make([]r2.Point, len(b.ring))
	for i, p := range b.ring {
		out[i] = p.Add(offset)
	}
	return out
}

// findSelfIntersection returns the indices of the first pair of edges of the
// closed ring that intersect other than at a shared endpoint.
func findSelfIntersection(ring []r2.Point) (int, int, bool) {
	numEdges := len(ring) - 1
	items := make([]rtree.BulkItem, numEdges)
	for i := range numEdges {
		items[i] = rtree.BulkItem{Box: segmentBox(ring[i], ring[i+1]), RecordID: i}
	}
	tree := rtree.BulkLoad(items)

	for i := range numEdges {
		a, b := ring[i], ring[i+1]
		found := -1
		err := tree.RangeSearch(items[i].Box, func(j int) error {
			if j <= i {
				return nil
			}
			c, d := ring[j], ring[j+1]
			var hit bool
			switch {
			case j == i+1:
				hit = overlapsAtJoint(a, b, d)
			case i == 0 && j == numEdges-1:
				hit = overlapsAtJoint(b, a, c)
			default:
				hit = segmentsIntersect(a, b, c, d)
			}
			if hit && (found < 0 || j < found) {
				found = j
			}
			return nil
		})
		if err != nil {
			// Unreachable, the callback never fails.
			panic(err)
		}
		if found >= 0 {
			return i, found, true
		}
	}
	return 0, 0, false
}

func segmentBox(a, b r2.Point) rtree.Box {
	return rtree.Box{
		MinX: min(a.X, b.X),
		MinY: min(a.Y, b.Y),
		MaxX: max(a.X, b.X),
		MaxY: max(a.Y, b.Y),
	}
}

// orientation returns the sign of the turn a -> b -> c: positive for CCW,
// negative for CW and zero for collinear points.
func orientation(a, b, c r2.Point) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// onSegment reports whether p, already known to be collinear with ab, lies
// within the segment ab.
func onSegment(a, b, p r2.Point) bool {
	return min(a.X, b.X) <= p.X && p.X <= max(a.X, b.X) &&
		min(a.Y, b.Y) <= p.Y && p.Y <= max(a.Y, b.Y)
}

// segmentsIntersect reports whether the closed segments ab and cd share at
// least one point.
func segmentsIntersect(a, b, c, d r2.Point) bool {
	o1 := orientation(a, b, c)
	o2 := orientation(a, b, d)
	o3 := orientation(c, d, a)
	o4 := orientation(c, d, b)

	if ((o1 > 0 && o2 < 0) || (o1 < 0 && o2 > 0)) &&
		((o3 > 0 && o4 < 0) || (o3 < 0 && o4 > 0)) {
		return true
	}
	return (o1 == 0 && onSegment(a, b, c)) ||
		(o2 == 0 && onSegment(a, b, d)) ||
		(o3 == 0 && onSegment(c, d, a)) ||
		(o4 == 0 && onSegment(c, d, b))
}

// overlapsAtJoint reports whether the edges (a, joint) and (joint, c) fold
// back onto each other.
func overlapsAtJoint(a, joint, c r2.Point) bool {
	if orientation(a, joint, c) != 0 {
		return false
	}
	return a.Sub(joint).Dot(c.Sub(joint)) > 0
}
