// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package boundedvoronoi

import (
	"math"

	"github.com/golang/geo/r2"
)

// smallestNormal is the smallest positive normal float64.
const smallestNormal = 0x1p-1022

// SanitizePoints drops every point with a NaN, infinite or subnormal
// coordinate and removes exact duplicates, keeping the first occurrence.
// The relative order of the remaining points is preserved.
// The result is never nil.
func SanitizePoints(raw []r2.Point) []r2.Point {
	out := make([]r2.Point, 0, len(raw))
	seen := make(map[r2.Point]struct{}, len(raw))
	for _, p := range raw {
		if !IsValidCoordinate(p.X) || !IsValidCoordinate(p.Y) {
			continue
		}
		// -0 and +0 are the same map key, keep the positive form.
		p = r2.Point{X: p.X + 0, Y: p.Y + 0}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// IsValidCoordinate reports whether v is zero or a finite normal float64.
func IsValidCoordinate(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v == 0 || math.Abs(v) >= smallestNormal
}
