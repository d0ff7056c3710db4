// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package utils provides utility functions for generating sites and bound
// templates for bounded Voronoi diagrams.

package utils

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r2"
)

// GenerateRandomPoints generates cnt uniformly distributed points inside rect.
// The seed parameter ensures reproducibility.
func GenerateRandomPoints(cnt int, rect r2.Rect, seed int64) []r2.Point {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	sites := make([]r2.Point, cnt)

	lo, size := rect.Lo(), rect.Size()
	for i := range cnt {
		sites[i] = r2.Point{
			X: lo.X + random.Float64()*size.X,
			Y: lo.Y + random.Float64()*size.Y,
		}
	}

	return sites
}

// RegularPolygon returns the closed CCW ring of a regular polygon with n
// vertices, centred on the origin with the given circumradius. The first
// vertex lies on the positive x axis.
func RegularPolygon(n int, radius float64) []r2.Point {
	if n < 3 {
		return nil
	}
	ring := make([]r2.Point, n+1)
	for i := range n {
		angle := 2 * math.Pi * float64(i) / float64(n)
		ring[i] = r2.Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
	}
	ring[n] = ring[0]
	return ring
}
