// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package boundedvoronoi

import (
	"math"

	"github.com/golang/geo/r2"
)

// HalfPlane is the closed region of points x with Normal·x <= Offset.
// Bisector returns half-planes with a unit Normal, so Eval is a signed
// distance.
type HalfPlane struct {
	Normal r2.Point
	Offset float64
}

// Bisector returns the half-plane of points at least as close to p as to q.
// Its boundary is the perpendicular bisector of pq.
func Bisector(p, q r2.Point) HalfPlane {
	// Halved coordinates keep q-p finite near the float limits.
	hp, hq := p.Mul(0.5), q.Mul(0.5)
	d := hq.Sub(hp)
	n := d.Mul(1 / math.Hypot(d.X, d.Y))
	return HalfPlane{Normal: n, Offset: n.Dot(hp.Add(hq))}
}

// Eval returns Normal·p - Offset. It is negative inside, zero on the
// boundary and positive outside.
func (h HalfPlane) Eval(p r2.Point) float64 {
	return h.Normal.Dot(p) - h.Offset
}

// Contains reports whether p lies inside h or on its boundary.
func (h HalfPlane) Contains(p r2.Point) bool {
	return h.Eval(p) <= 0
}

// side classifies a vertex against a half-plane boundary.
type side int

const (
	inside side = iota - 1
	boundary
	outside
)

func (h HalfPlane) classify(p r2.Point, tol float64) (side, float64) {
	d := h.Eval(p)
	switch {
	case d > tol:
		return outside, d
	case d < -tol:
		return inside, d
	}
	return boundary, d
}

// ClipPolygon intersects ring with every half-plane in hps, one after the
// other, Sutherland–Hodgman style. The ring may or may not repeat its first
// vertex at the end; the result never does and may hold fewer than 3
// vertices when nothing of the ring survives.
//
// A vertex within eps times the ring's extent of a boundary counts as lying on
// it, so it is kept and no extra intersection point is generated next to it.
func ClipPolygon(ring []r2.Point, hps []HalfPlane, eps float64) []r2.Point {
	cur := openRing(ring)
	tol := eps * extent(cur)

	out := make([]r2.Point, 0, len(cur)+len(hps))
	for _, h := range hps {
		if len(cur) == 0 {
			break
		}
		htol := tol * h.Normal.Norm()
		out = out[:0]
		for i, a := range cur {
			b := cur[(i+1)%len(cur)]
			sa, da := h.classify(a, htol)
			sb, db := h.classify(b, htol)
			if sa != outside {
				out = append(out, a)
			}
			if (sa == inside && sb == outside) || (sa == outside && sb == inside) {
				t := da / (da - db)
				out = append(out, a.Add(b.Sub(a).Mul(t)))
			}
		}
		cur, out = dropNearDuplicates(out, tol), cur
	}
	return cur
}

// openRing returns ring without its closing vertex.
func openRing(ring []r2.Point) []r2.Point {
	n := len(ring)
	if n > 1 && ring[0] == ring[n-1] {
		n--
	}
	out := make([]r2.Point, n)
	copy(out, ring[:n])
	return out
}

// closeRing returns a copy of ring with its first vertex appended.
func closeRing(ring []r2.Point) []r2.Point {
	if len(ring) == 0 {
		return []r2.Point{}
	}
	out := make([]r2.Point, len(ring), len(ring)+1)
	copy(out, ring)
	return append(out, ring[0])
}

// dropNearDuplicates removes, in place, every vertex within tol of its
// predecessor, including the wrap-around pair.
func dropNearDuplicates(ring []r2.Point, tol float64) []r2.Point {
	out := ring[:0]
	for _, p := range ring {
		if len(out) > 0 && p.Sub(out[len(out)-1]).Norm() <= tol {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0].Sub(out[len(out)-1]).Norm() <= tol {
		out = out[:len(out)-1]
	}
	return out
}

// extent is the larger side of the bounding box of pts, or 1 for an empty or
// single-point box.
func extent(pts []r2.Point) float64 {
	size := r2.RectFromPoints(pts...).Size()
	e := max(size.X, size.Y)
	if e <= 0 {
		return 1
	}
	return e
}

// unitScaled returns ring multiplied by 2^-exp, with exp chosen so that every
// coordinate falls into [-1, 1]. Scaling by a power of two is exact, so signs
// of orientations are unchanged while products of coordinates stay finite.
func unitScaled(ring []r2.Point) ([]r2.Point, int) {
	var m float64
	for _, p := range ring {
		m = max(m, math.Abs(p.X), math.Abs(p.Y))
	}
	_, exp := math.Frexp(m)
	out := make([]r2.Point, len(ring))
	for i, p := range ring {
		out[i] = r2.Point{X: math.Ldexp(p.X, -exp), Y: math.Ldexp(p.Y, -exp)}
	}
	return out, exp
}

// signedArea is positive for counter-clockwise rings. The closing vertex is
// optional.
func signedArea(ring []r2.Point) float64 {
	var a float64
	for i, p := range ring {
		q := ring[(i+1)%len(ring)]
		a += p.Cross(q)
	}
	return a / 2
}
