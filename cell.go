// Package boundedvoronoi computes planar Voronoi diagrams whose cells are
// made finite by intersecting them with a polygon template placed on each
// site.

package boundedvoronoi

import (
	"fmt"

	"github.com/golang/geo/r2"
)

// Cell represents a Voronoi cell. It is a view structure for accessing a cell in a Diagram.
// The cell's index corresponds to the index of its site in the Diagram's Sites.
type Cell struct {
	idx int
	d   *Diagram
}

// SiteIndex returns the index of the site in the Diagram's Sites.
func (c Cell) SiteIndex() int {
	return c.idx
}

// Site returns the site point of the cell.
func (c Cell) Site() r2.Point {
	return c.d.Sites[c.idx]
}

// NumNeighbors returns the number of neighboring cells, which is also the
// number of half-planes bounding the cell.
func (c Cell) NumNeighbors() int {
	return c.d.CellOffsets[c.idx+1] - c.d.CellOffsets[c.idx]
}

// NeighborIndices returns the indices of the neighboring cells in the Diagram,
// sorted in counter-clockwise order around the site.
func (c Cell) NeighborIndices() []int {
	return c.d.CellNeighbors[c.d.CellOffsets[c.idx]:c.d.CellOffsets[c.idx+1]]
}

// Neighbor returns the neighboring cell at the specified index.
// It returns an error if the index is out of range.
func (c Cell) Neighbor(i int) (Cell, error) {
	start := c.d.CellOffsets[c.idx]
	end := c.d.CellOffsets[c.idx+1]
	if i < 0 || i >= end-start {
		return Cell{}, fmt.Errorf("Neighbor: index %d out of range [0 %d)", i, end-start)
	}
	nc, err := c.d.Cell(c.d.CellNeighbors[start+i])
	if err != nil {
		return Cell{}, err
	}
	return nc, nil
}

// HalfPlanes returns, in neighbor order, the half-planes whose intersection is
// the cell. A cell without neighbors is the whole plane and has none.
func (c Cell) HalfPlanes() []HalfPlane {
	site := c.Site()
	neighbors := c.NeighborIndices()
	hps := make([]HalfPlane, len(neighbors))
	for i, n := range neighbors {
		hps[i] = Bisector(site, c.d.Sites[n])
	}
	return hps
}

// NumVertices returns the number of vertices of the cell cut to the
// Diagram's Bounds.
func (c Cell) NumVertices() int {
	return c.d.CellVertexOffsets[c.idx+1] - c.d.CellVertexOffsets[c.idx]
}

// Vertices returns the vertices of the cell cut to the Diagram's Bounds,
// sorted in counter-clockwise order. The ring is not closed.
func (c Cell) Vertices() []r2.Point {
	return c.d.CellVertices[c.d.CellVertexOffsets[c.idx]:c.d.CellVertexOffsets[c.idx+1]]
}

// Vertex returns the vertex at the specified index.
// It returns an error if the index is out of range.
func (c Cell) Vertex(i int) (r2.Point, error) {
	start := c.d.CellVertexOffsets[c.idx]
	end := c.d.CellVertexOffsets[c.idx+1]
	if i < 0 || i >= end-start {
		return r2.Point{}, fmt.Errorf("Vertex: index %d out of range [0 %d)", i, end-start)
	}
	return c.d.CellVertices[start+i], nil
}
