package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfansharif/tangram/internal/board"
	"github.com/irfansharif/tangram/internal/geom"
	"github.com/irfansharif/tangram/internal/piece"
)

func TestConnectionPointEnumeration(t *testing.T) {
	b := board.NewBoard()
	p := b.Add(piece.Square, geom.Identity)

	points := p.ConnectionPoints()
	require.Len(t, points, 8, "4 vertices + 4 edge midpoints")

	for i := 0; i < 4; i++ {
		assert.Equal(t, board.VertexPoint, points[i].Kind)
		assert.Equal(t, i, points[i].Index)
		assert.Equal(t, p.ID, points[i].PieceID)
	}
	for i := 0; i < 4; i++ {
		assert.Equal(t, board.EdgePoint, points[4+i].Kind)
		assert.Equal(t, i, points[4+i].Index)
	}

	// Edge 0 midpoint of the unit square scaled to visual units.
	assert.InDelta(t, 25, points[4].Position.X, 1e-9)
	assert.InDelta(t, 0, points[4].Position.Y, 1e-9)
}

// TestFlipInvariantIndices is the regression test for the index-remapping
// bug: enumerating connection points for a mirrored piece must yield
// identically-indexed points as for the unmirrored piece; only world
// positions differ.
func TestFlipInvariantIndices(t *testing.T) {
	b := board.NewBoard()
	plain := b.Add(piece.Parallelogram, geom.Identity)
	mirrored := b.Add(piece.Parallelogram, geom.Rotate(0).Mul(geom.FlipY))

	plainPoints := plain.ConnectionPoints()
	mirroredPoints := mirrored.ConnectionPoints()
	require.Equal(t, len(plainPoints), len(mirroredPoints))

	for i := range plainPoints {
		assert.Equal(t, plainPoints[i].Kind, mirroredPoints[i].Kind)
		assert.Equal(t, plainPoints[i].Index, mirroredPoints[i].Index)
	}

	// The mirror shows up in geometry, not in indexing.
	v3 := plainPoints[3].Position
	m3 := mirroredPoints[3].Position
	assert.InDelta(t, v3.X, m3.X, 1e-9)
	assert.InDelta(t, -v3.Y, m3.Y, 1e-9)
}

func TestResolve(t *testing.T) {
	b := board.NewBoard()
	p := b.Add(piece.SmallTriangleA, geom.Translate(10, 0))

	cp, err := b.Resolve(board.PointRef{PieceID: p.ID, Kind: board.VertexPoint, Index: 1})
	require.NoError(t, err)
	assert.InDelta(t, 60, cp.Position.X, 1e-9)
	assert.InDelta(t, 0, cp.Position.Y, 1e-9)

	cp, err = b.Resolve(board.PointRef{PieceID: p.ID, Kind: board.EdgePoint, Index: 1})
	require.NoError(t, err)
	// Hypotenuse midpoint: between (60,0) and (10,50).
	assert.InDelta(t, 35, cp.Position.X, 1e-9)
	assert.InDelta(t, 25, cp.Position.Y, 1e-9)

	_, err = b.Resolve(board.PointRef{PieceID: 999, Kind: board.VertexPoint, Index: 0})
	assert.ErrorIs(t, err, board.ErrUnknownPiece)
	_, err = b.Resolve(board.PointRef{PieceID: p.ID, Kind: board.VertexPoint, Index: 7})
	assert.ErrorIs(t, err, board.ErrPointIndex)
}

func TestResolveEdge(t *testing.T) {
	b := board.NewBoard()
	p := b.Add(piece.SmallTriangleA, geom.Identity)

	e0, e1, err := b.ResolveEdge(board.PointRef{PieceID: p.ID, Kind: board.EdgePoint, Index: 0})
	require.NoError(t, err)
	assert.Equal(t, geom.MakePoint(0, 0), e0)
	assert.InDelta(t, 50, e1.X, 1e-9)

	_, _, err = b.ResolveEdge(board.PointRef{PieceID: p.ID, Kind: board.VertexPoint, Index: 0})
	assert.ErrorIs(t, err, board.ErrPointIndex, "vertex refs are not edges")
}
