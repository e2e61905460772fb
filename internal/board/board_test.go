package board_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfansharif/tangram/internal/board"
	"github.com/irfansharif/tangram/internal/geom"
	"github.com/irfansharif/tangram/internal/piece"
)

func TestAddAndLookup(t *testing.T) {
	b := board.NewBoard()
	p1 := b.Add(piece.Square, geom.Identity)
	p2 := b.Add(piece.MediumTriangle, geom.Translate(100, 0))

	assert.NotEqual(t, p1.ID, p2.ID)
	assert.Equal(t, 2, b.Len())

	got, ok := b.Piece(p1.ID)
	require.True(t, ok)
	assert.Equal(t, piece.Square, got.Kind)

	_, ok = b.Piece(9999)
	assert.False(t, ok)
}

func TestPiecesOrdered(t *testing.T) {
	b := board.NewBoard()
	ids := []int{
		b.Add(piece.Square, geom.Identity).ID,
		b.Add(piece.SmallTriangleA, geom.Identity).ID,
		b.Add(piece.Parallelogram, geom.Identity).ID,
	}
	got := b.Pieces()
	require.Len(t, got, 3)
	for i, p := range got {
		assert.Equal(t, ids[i], p.ID)
	}
}

func TestWorldVertices(t *testing.T) {
	b := board.NewBoard()
	p := b.Add(piece.SmallTriangleA, geom.Rotate(math.Pi/2).WithTranslation(geom.MakePoint(10, 20)))

	vs := p.WorldVertices()
	require.Len(t, vs, 3)
	// Local (0,0), (50,0), (0,50) rotated 90° and translated.
	assert.InDelta(t, 10, vs[0].X, 1e-9)
	assert.InDelta(t, 20, vs[0].Y, 1e-9)
	assert.InDelta(t, 10, vs[1].X, 1e-9)
	assert.InDelta(t, 70, vs[1].Y, 1e-9)
	assert.InDelta(t, -40, vs[2].X, 1e-9)
	assert.InDelta(t, 20, vs[2].Y, 1e-9)
}

func TestWorldVertexEdgeRange(t *testing.T) {
	b := board.NewBoard()
	p := b.Add(piece.Square, geom.Identity)

	_, err := p.WorldVertex(4)
	assert.ErrorIs(t, err, board.ErrPointIndex)
	_, _, err = p.WorldEdge(-1)
	assert.ErrorIs(t, err, board.ErrPointIndex)

	v, err := p.WorldVertex(2)
	require.NoError(t, err)
	assert.InDelta(t, 50, v.X, 1e-9)
	assert.InDelta(t, 50, v.Y, 1e-9)
}

func TestCentroid(t *testing.T) {
	b := board.NewBoard()
	p := b.Add(piece.Square, geom.Identity)
	c := p.Centroid()
	assert.InDelta(t, 25, c.X, 1e-9)
	assert.InDelta(t, 25, c.Y, 1e-9)
}

// TestRemoveCascades verifies that removing a piece deletes every connection
// referencing it, leaving no dangling references.
func TestRemoveCascades(t *testing.T) {
	b := board.NewBoard()
	p1 := b.Add(piece.SmallTriangleA, geom.Identity)
	p2 := b.Add(piece.SmallTriangleB, geom.Translate(50, 0))
	p3 := b.Add(piece.Square, geom.Translate(200, 200))

	// p1 vertex 1 is at (50,0), coincident with p2 vertex 0.
	_, err := b.Connect(
		board.PointRef{PieceID: p1.ID, Kind: board.VertexPoint, Index: 1},
		board.PointRef{PieceID: p2.ID, Kind: board.VertexPoint, Index: 0},
	)
	require.NoError(t, err)
	require.Len(t, b.Connections(), 1)

	assert.False(t, b.Remove(12345))

	assert.True(t, b.Remove(p2.ID))
	assert.Empty(t, b.Connections(), "connection cascade-deleted with its piece")
	assert.Equal(t, 2, b.Len())

	_, ok := b.Piece(p3.ID)
	assert.True(t, ok)
}

func TestBounds(t *testing.T) {
	b := board.NewBoard()
	_, ok := b.Bounds()
	assert.False(t, ok, "empty board has no bounds")

	b.Add(piece.Square, geom.Identity)
	b.Add(piece.Square, geom.Translate(100, 0))
	box, ok := b.Bounds()
	require.True(t, ok)
	assert.InDelta(t, 0, box.X, 1e-9)
	assert.InDelta(t, 0, box.Y, 1e-9)
	assert.InDelta(t, 150, box.W, 1e-9)
	assert.InDelta(t, 50, box.H, 1e-9)
}
