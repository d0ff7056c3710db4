// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package boundedvoronoi

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// ErrDegenerateCell marks a site whose clipped cell has fewer than 3
// vertices or no area. It is stored per result and never aborts a build.
var ErrDegenerateCell = errors.New("degenerate cell")

// Anchor selects which point of the bound template is placed on a site.
type Anchor int

const (
	// AnchorOrigin adds the site coordinates to the template vertices, so the
	// template's origin lands on the site.
	AnchorOrigin Anchor = iota
	// AnchorBoundsCenter places the centre of the template's bounding box on
	// the site.
	AnchorBoundsCenter
)

func (a Anchor) String() string {
	switch a {
	case AnchorOrigin:
		return "origin"
	case AnchorBoundsCenter:
		return "bounds-center"
	}
	return fmt.Sprintf("Anchor(%d)", int(a))
}

// offset returns the translation that moves bound onto site.
func (a Anchor) offset(bound *BoundPolygon, site r2.Point) r2.Point {
	if a == AnchorBoundsCenter {
		return site.Sub(bound.Bounds().Center())
	}
	return site
}

// CellResult is the bounded cell of one site.
type CellResult struct {
	Site r2.Point
	// NOTE: Closed (first == last) and sorted in CCW. Empty when Err is set.
	Cell []r2.Point
	Err  error
}

// Degenerate reports whether the cell collapsed during clipping.
func (r CellResult) Degenerate() bool {
	return errors.Is(r.Err, ErrDegenerateCell)
}

// ClipCell places bound on site and clips it against hps, the half-planes of
// the site's Voronoi cell. eps is relative to the extent of the placed
// template.
func ClipCell(bound *BoundPolygon, site r2.Point, hps []HalfPlane, anchor Anchor, eps float64) CellResult {
	ring := bound.Translated(anchor.offset(bound, site))
	poly := ClipPolygon(ring, hps, eps)

	if len(poly) < 3 || relativeArea(poly, extent(ring)) <= eps {
		return CellResult{
			Site: site,
			Cell: []r2.Point{},
			Err:  fmt.Errorf("boundedvoronoi: site %v: %w", site, ErrDegenerateCell),
		}
	}
	return CellResult{Site: site, Cell: closeRing(poly)}
}

// relativeArea returns the signed area of ring divided by e².
func relativeArea(ring []r2.Point, e float64) float64 {
	scaled, exp := unitScaled(ring)
	se := math.Ldexp(e, -exp)
	return signedArea(scaled) / se / se
}

// DropDegenerate returns the results whose cell did not collapse, in order.
func DropDegenerate(results []CellResult) []CellResult {
	out := make([]CellResult, 0, len(results))
	for _, r := range results {
		if !r.Degenerate() {
			out = append(out, r)
		}
	}
	return out
}
