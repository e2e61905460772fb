package app

import (
	"fmt"
	"math"

	"github.com/irfansharif/tangram/internal/board"
	"github.com/irfansharif/tangram/internal/geom"
	"github.com/irfansharif/tangram/internal/piece"
	"github.com/irfansharif/tangram/internal/solver"
)

// BuildFigure assembles the demonstration figure, rotated wholesale by tilt
// radians. Every placement after the first goes through the solver, so the
// figure exercises each placement path: single-point, pivot-and-align with
// the half-plane correction, edge-to-edge midpoint alignment, generic
// two-vertex alignment, and a mirrored piece.
func BuildFigure(tilt float64) (*board.Board, error) {
	b := board.NewBoard()

	// The anchor piece is placed directly; there's nothing to connect to yet.
	lta := b.Add(piece.LargeTriangleA, geom.Rotate(tilt))

	// Small triangle hanging off the anchor's corner: single-point alignment.
	sta, err := place(b, solver.Request{
		Kind:     piece.SmallTriangleA,
		Rotation: tilt,
		Board:    b,
		Pairs: []solver.Pair{{
			Canvas:  board.PointRef{PieceID: lta.ID, Kind: board.VertexPoint, Index: 1},
			Pending: solver.LocalRef{Kind: board.VertexPoint, Index: 0},
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("small triangle A: %w", err)
	}

	// Square sharing the anchor's base edge: pivot-and-align. The centroids
	// start on the same side, so this placement exercises the half-plane
	// correction and lands below the base.
	sq, err := place(b, solver.Request{
		Kind:  piece.Square,
		Board: b,
		Pairs: []solver.Pair{
			{
				Canvas:  board.PointRef{PieceID: lta.ID, Kind: board.VertexPoint, Index: 0},
				Pending: solver.LocalRef{Kind: board.VertexPoint, Index: 1},
			},
			{
				Canvas:  board.PointRef{PieceID: lta.ID, Kind: board.EdgePoint, Index: 0},
				Pending: solver.LocalRef{Kind: board.EdgePoint, Index: 0},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("square: %w", err)
	}

	// Medium triangle mirrored onto the anchor's hypotenuse: single edge
	// pair, base rotation π to face away from the anchor.
	mt, err := place(b, solver.Request{
		Kind:     piece.MediumTriangle,
		Rotation: tilt + math.Pi,
		Board:    b,
		Pairs: []solver.Pair{{
			Canvas:  board.PointRef{PieceID: lta.ID, Kind: board.EdgePoint, Index: 1},
			Pending: solver.LocalRef{Kind: board.EdgePoint, Index: 1},
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("medium triangle: %w", err)
	}

	// Second small triangle mirrored across the first one's hypotenuse via
	// two vertex-vertex pairs; together they form a square.
	stb, err := place(b, solver.Request{
		Kind:  piece.SmallTriangleB,
		Board: b,
		Pairs: []solver.Pair{
			{
				Canvas:  board.PointRef{PieceID: sta.ID, Kind: board.VertexPoint, Index: 1},
				Pending: solver.LocalRef{Kind: board.VertexPoint, Index: 2},
			},
			{
				Canvas:  board.PointRef{PieceID: sta.ID, Kind: board.VertexPoint, Index: 2},
				Pending: solver.LocalRef{Kind: board.VertexPoint, Index: 1},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("small triangle B: %w", err)
	}

	// Second large triangle against the anchor's left edge: another
	// pivot-and-align with correction.
	if _, err := place(b, solver.Request{
		Kind:  piece.LargeTriangleB,
		Board: b,
		Pairs: []solver.Pair{
			{
				Canvas:  board.PointRef{PieceID: lta.ID, Kind: board.VertexPoint, Index: 2},
				Pending: solver.LocalRef{Kind: board.VertexPoint, Index: 0},
			},
			{
				Canvas:  board.PointRef{PieceID: lta.ID, Kind: board.EdgePoint, Index: 2},
				Pending: solver.LocalRef{Kind: board.EdgePoint, Index: 0},
			},
		},
	}); err != nil {
		return nil, fmt.Errorf("large triangle B: %w", err)
	}

	// Mirrored parallelogram slung under the square: edge-to-edge midpoint
	// alignment on the square's bottom edge.
	if _, err := place(b, solver.Request{
		Kind:    piece.Parallelogram,
		Flipped: true,
		Board:   b,
		Pairs: []solver.Pair{
			{
				Canvas:  board.PointRef{PieceID: sq.ID, Kind: board.EdgePoint, Index: 2},
				Pending: solver.LocalRef{Kind: board.EdgePoint, Index: 0},
			},
			{
				Canvas:  board.PointRef{PieceID: sq.ID, Kind: board.EdgePoint, Index: 2},
				Pending: solver.LocalRef{Kind: board.EdgePoint, Index: 0},
			},
		},
	}); err != nil {
		return nil, fmt.Errorf("parallelogram: %w", err)
	}

	// Commit a few representative connections so the title bar's
	// satisfied-connection count has something to report.
	if _, err := b.Connect(
		board.PointRef{PieceID: lta.ID, Kind: board.VertexPoint, Index: 1},
		board.PointRef{PieceID: sta.ID, Kind: board.VertexPoint, Index: 0},
	); err != nil {
		return nil, fmt.Errorf("connect anchor/small-a: %w", err)
	}
	if _, err := b.Connect(
		board.PointRef{PieceID: lta.ID, Kind: board.EdgePoint, Index: 1},
		board.PointRef{PieceID: mt.ID, Kind: board.EdgePoint, Index: 1},
	); err != nil {
		return nil, fmt.Errorf("connect anchor/medium: %w", err)
	}
	if _, err := b.Connect(
		board.PointRef{PieceID: sta.ID, Kind: board.EdgePoint, Index: 1},
		board.PointRef{PieceID: stb.ID, Kind: board.VertexPoint, Index: 1},
	); err != nil {
		return nil, fmt.Errorf("connect small-a/small-b: %w", err)
	}

	return b, nil
}

// place runs one solve and commits the result.
func place(b *board.Board, req solver.Request) (*board.Placed, error) {
	pose, err := solver.Solve(req)
	if err != nil {
		return nil, err
	}
	return b.Add(req.Kind, pose), nil
}
