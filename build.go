// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package boundedvoronoi

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"go.uber.org/zap"
)

type Options struct {
	Anchor         Anchor
	ClipEps        float64
	Workers        int
	Logger         *zap.Logger
	DiagramOptions []DiagramOption
}

type Option func(*Options) error

func WithAnchor(a Anchor) Option {
	return func(o *Options) error {
		if a != AnchorOrigin && a != AnchorBoundsCenter {
			return fmt.Errorf("boundedvoronoi: unknown anchor %v", a)
		}
		o.Anchor = a
		return nil
	}
}

func WithClipEps(eps float64) Option {
	return func(o *Options) error {
		if eps <= 0 {
			return fmt.Errorf("boundedvoronoi: clip eps must be positive, got %v", eps)
		}
		o.ClipEps = eps
		return nil
	}
}

// WithParallelism bounds the number of goroutines used for the per-site
// passes. It is also passed on to the diagram.
func WithParallelism(n int) Option {
	return func(o *Options) error {
		if n <= 0 {
			return fmt.Errorf("boundedvoronoi: parallelism must be positive, got %d", n)
		}
		o.Workers = n
		return nil
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(o *Options) error {
		if l == nil {
			return errors.New("boundedvoronoi: logger must not be nil")
		}
		o.Logger = l
		return nil
	}
}

// WithDiagramOptions forwards setters to NewDiagram. They override Build's
// parallelism. Bounds set here are widened to cover every placed template.
func WithDiagramOptions(setters ...DiagramOption) Option {
	return func(o *Options) error {
		o.DiagramOptions = append(o.DiagramOptions, setters...)
		return nil
	}
}

// Build computes the bounded Voronoi cell of every site.
//
// Sites are sanitized with SanitizePoints; dropped sites are not reported.
// The bound is validated by NewBoundPolygon and any error there aborts the
// build. A site whose cell collapses gets a result with ErrDegenerateCell
// instead. Results follow the order of the sanitized sites.
func Build(sites, bound []r2.Point, setters ...Option) ([]CellResult, error) {
	opts := Options{
		Anchor:  AnchorOrigin,
		ClipEps: defaultEps,
		Workers: runtime.GOMAXPROCS(0),
		Logger:  zap.NewNop(),
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}
	log := opts.Logger

	bp, err := NewBoundPolygon(bound)
	if err != nil {
		return nil, err
	}

	clean := SanitizePoints(sites)
	log.Debug("sanitized input",
		zap.Int("sites", len(sites)),
		zap.Int("uniqueSites", len(clean)),
		zap.Int("boundVertices", bp.NumVertices()),
	)
	if len(clean) == 0 {
		return []CellResult{}, nil
	}

	dopts := append([]DiagramOption{WithWorkers(opts.Workers)}, opts.DiagramOptions...)
	dopts = append(dopts, coverBounds(diagramBounds(clean, bp, opts.Anchor)))
	vd, err := NewDiagram(clean, dopts...)
	if err != nil {
		return nil, fmt.Errorf("boundedvoronoi: build diagram: %w", err)
	}

	results := make([]CellResult, len(clean))
	parallelFor(len(clean), opts.Workers, func(i int) {
		// The index is always in range.
		cell, _ := vd.Cell(i)
		results[i] = ClipCell(bp, cell.Site(), cell.HalfPlanes(), opts.Anchor, opts.ClipEps)
	})

	degenerate := 0
	for _, r := range results {
		if r.Degenerate() {
			degenerate++
			log.Warn("degenerate cell", zap.Float64("x", r.Site.X), zap.Float64("y", r.Site.Y))
		}
	}
	log.Debug("built bounded voronoi diagram",
		zap.Int("cells", len(results)),
		zap.Int("degenerate", degenerate),
	)
	return results, nil
}

// coverBounds grows the diagram bounds, or the default empty rectangle, to
// include r.
func coverBounds(r r2.Rect) DiagramOption {
	return func(o *DiagramOptions) error {
		o.Bounds = o.Bounds.Union(r)
		return nil
	}
}

// diagramBounds covers every placed template plus the sites themselves,
// padded by a tenth of its size.
func diagramBounds(sites []r2.Point, bound *BoundPolygon, anchor Anchor) r2.Rect {
	sr := r2.RectFromPoints(sites...)
	tr := bound.Bounds()
	if anchor == AnchorBoundsCenter {
		c := tr.Center()
		tr = r2.Rect{
			X: r1.Interval{Lo: tr.X.Lo - c.X, Hi: tr.X.Hi - c.X},
			Y: r1.Interval{Lo: tr.Y.Lo - c.Y, Hi: tr.Y.Hi - c.Y},
		}
	}
	r := r2.Rect{
		X: r1.Interval{Lo: sr.X.Lo + tr.X.Lo, Hi: sr.X.Hi + tr.X.Hi},
		Y: r1.Interval{Lo: sr.Y.Lo + tr.Y.Lo, Hi: sr.Y.Hi + tr.Y.Hi},
	}.Union(sr)
	size := r.Size()
	return r.ExpandedByMargin(max(size.X, size.Y) / 10)
}
