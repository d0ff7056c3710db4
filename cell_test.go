package boundedvoronoi

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Cell

func TestCell_SiteIndex(t *testing.T) {
	vd := mustNewDiagram(t, 100)
	for i := range vd.Sites {
		c := mustCell(t, vd, i)
		if got := c.SiteIndex(); got != i {
			t.Errorf("c.SiteIndex() = %v, want %v", got, i)
		}
	}
}

func TestCell_Site(t *testing.T) {
	vd := mustNewDiagram(t, 100)
	for i, want := range vd.Sites {
		c := mustCell(t, vd, i)
		if got := c.Site(); got != want {
			t.Errorf("c.Site() = %v, want %v", got, want)
		}
	}
}

func TestCell_NumVertices(t *testing.T) {
	vd := mustNewDiagram(t, 100)
	for i := range vd.Sites {
		c := mustCell(t, vd, i)
		want := vd.CellVertexOffsets[i+1] - vd.CellVertexOffsets[i]
		if got := c.NumVertices(); got != want {
			t.Errorf("c.NumVertices() = %v, want %v", got, want)
		}
		if got := c.NumVertices(); got < 3 {
			t.Errorf("c.NumVertices() = %v, want >= 3", got)
		}
	}
}

func TestCell_Vertices(t *testing.T) {
	vd := mustNewDiagram(t, 100)
	for i := range vd.Sites {
		c := mustCell(t, vd, i)
		want := vd.CellVertices[vd.CellVertexOffsets[i]:vd.CellVertexOffsets[i+1]]
		if diff := cmp.Diff(want, c.Vertices()); diff != "" {
			t.Errorf("c.Vertices() mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestCell_Vertex(t *testing.T) {
	vd := mustNewDiagram(t, 100)
	for i := range vd.Sites {
		c := mustCell(t, vd, i)
		for j, want := range c.Vertices() {
			got, err := c.Vertex(j)
			if err != nil {
				t.Fatalf("c.Vertex(%d) error = %v, want nil", j, err)
			}
			if got != want {
				t.Errorf("c.Vertex(%d) = %v, want %v", j, got, want)
			}
		}

		if _, err := c.Vertex(-1); err == nil {
			t.Errorf("c.Vertex(-1) error = nil, want non-nil")
		}
		if _, err := c.Vertex(c.NumVertices()); err == nil {
			t.Errorf("c.Vertex(%d) error = nil, want non-nil", c.NumVertices())
		}
	}
}

func TestCell_NumNeighbors(t *testing.T) {
	vd := mustNewDiagram(t, 100)
	for i := range vd.Sites {
		c := mustCell(t, vd, i)
		want := vd.CellOffsets[i+1] - vd.CellOffsets[i]
		if got := c.NumNeighbors(); got != want {
			t.Errorf("c.NumNeighbors() = %v, want %v", got, want)
		}
	}
}

func TestCell_NeighborIndices(t *testing.T) {
	vd := mustNewDiagram(t, 100)
	for i := range vd.Sites {
		c := mustCell(t, vd, i)
		want := vd.CellNeighbors[vd.CellOffsets[i]:vd.CellOffsets[i+1]]
		got := c.NeighborIndices()
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("c.NeighborIndices() mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestCell_Neighbor(t *testing.T) {
	vd := mustNewDiagram(t, 100)
	for i := range vd.Sites {
		c := mustCell(t, vd, i)
		for j, idx := range c.NeighborIndices() {
			nc, err := c.Neighbor(j)
			if err != nil {
				t.Fatalf("c.Neighbor(%d) error = %v, want nil", j, err)
			}
			if got := nc.SiteIndex(); got != idx {
				t.Errorf("c.Neighbor(%d).SiteIndex() = %v, want %v", j, got, idx)
			}
		}

		if _, err := c.Neighbor(-1); err == nil {
			t.Errorf("c.Neighbor(-1) error = nil, want non-nil")
		}
		if _, err := c.Neighbor(c.NumNeighbors()); err == nil {
			t.Errorf("c.Neighbor(%d) error = nil, want non-nil", c.NumNeighbors())
		}
	}
}

func TestCell_HalfPlanes(t *testing.T) {
	vd := mustNewDiagram(t, 100)
	for i := range vd.Sites {
		c := mustCell(t, vd, i)
		hps := c.HalfPlanes()
		if got, want := len(hps), c.NumNeighbors(); got != want {
			t.Fatalf("len(c.HalfPlanes()) = %v, want %v", got, want)
		}
		for j, h := range hps {
			if !h.Contains(c.Site()) {
				t.Errorf("c.HalfPlanes()[%d] does not contain the cell's site", j)
			}
			n := vd.Sites[c.NeighborIndices()[j]]
			if h.Contains(n) {
				t.Errorf("c.HalfPlanes()[%d] contains the neighbor's site %v", j, n)
			}
		}
	}
}
