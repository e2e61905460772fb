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

func vref(id, index int) board.PointRef {
	return board.PointRef{PieceID: id, Kind: board.VertexPoint, Index: index}
}

func eref(id, index int) board.PointRef {
	return board.PointRef{PieceID: id, Kind: board.EdgePoint, Index: index}
}

func TestVertexVertexConnection(t *testing.T) {
	b := board.NewBoard()
	p1 := b.Add(piece.SmallTriangleA, geom.Identity)
	p2 := b.Add(piece.SmallTriangleB, geom.Translate(50, 0))

	// p1 vertex 1 and p2 vertex 0 both sit at (50,0).
	c, err := b.Connect(vref(p1.ID, 1), vref(p2.ID, 0))
	require.NoError(t, err)

	assert.Equal(t, board.VertexVertex, c.Type)
	assert.Equal(t, board.ConstraintRotation, c.Constraint.Kind)
	assert.Equal(t, p2.ID, c.Constraint.AffectedPieceID, "the second piece keeps the freedom")
	assert.InDelta(t, 50, c.Constraint.Pivot.X, 1e-9)
	assert.InDelta(t, 0, c.Constraint.Pivot.Y, 1e-9)
	assert.InDelta(t, 0, c.Constraint.MinAngle, 1e-12)
	assert.InDelta(t, 2*math.Pi, c.Constraint.MaxAngle, 1e-12)
}

// TestVertexVertexApart: non-coincident vertices are a modeling error; the
// solver should have made them coincide before a connection is committed.
func TestVertexVertexApart(t *testing.T) {
	b := board.NewBoard()
	p1 := b.Add(piece.SmallTriangleA, geom.Identity)
	p2 := b.Add(piece.SmallTriangleB, geom.Translate(50, 0))

	_, err := b.Connect(vref(p1.ID, 0), vref(p2.ID, 2))
	assert.ErrorIs(t, err, board.ErrVerticesApart)
	assert.Empty(t, b.Connections(), "failed connections are not committed")
}

// TestEdgeEdgeConnection: the longer edge is the track; the shorter edge's
// owner slides along it.
func TestEdgeEdgeConnection(t *testing.T) {
	b := board.NewBoard()
	large := b.Add(piece.LargeTriangleA, geom.Identity) // base edge (0,0)-(100,0)
	small := b.Add(piece.SmallTriangleA, geom.Identity) // base edge (0,0)-(50,0)

	c, err := b.Connect(eref(large.ID, 0), eref(small.ID, 0))
	require.NoError(t, err)

	assert.Equal(t, board.EdgeEdge, c.Type)
	assert.Equal(t, board.ConstraintTranslation, c.Constraint.Kind)
	assert.Equal(t, small.ID, c.Constraint.AffectedPieceID)
	assert.InDelta(t, 1, c.Constraint.Direction.X, 1e-9)
	assert.InDelta(t, 0, c.Constraint.Direction.Y, 1e-9)
	assert.InDelta(t, 0, c.Constraint.MinDist, 1e-9)
	assert.InDelta(t, 50, c.Constraint.MaxDist, 1e-9, "track length minus sliding length")
}

// TestEdgeEdgeConnectionOrderIndependent: the track is picked by geometric
// length, not argument order.
func TestEdgeEdgeConnectionOrderIndependent(t *testing.T) {
	b := board.NewBoard()
	large := b.Add(piece.LargeTriangleA, geom.Identity)
	small := b.Add(piece.SmallTriangleA, geom.Identity)

	c, err := b.Connect(eref(small.ID, 0), eref(large.ID, 0))
	require.NoError(t, err)
	assert.Equal(t, small.ID, c.Constraint.AffectedPieceID)
	assert.InDelta(t, 50, c.Constraint.MaxDist, 1e-9)
}

func TestVertexEdgeConnection(t *testing.T) {
	b := board.NewBoard()
	large := b.Add(piece.LargeTriangleA, geom.Identity)
	small := b.Add(piece.SmallTriangleA, geom.Translate(25, 0))

	c, err := b.Connect(eref(large.ID, 0), vref(small.ID, 0))
	require.NoError(t, err)

	assert.Equal(t, board.VertexEdge, c.Type)
	assert.Equal(t, board.ConstraintTranslation, c.Constraint.Kind)
	assert.Equal(t, small.ID, c.Constraint.AffectedPieceID, "the vertex owner slides")
	assert.InDelta(t, 100, c.Constraint.MaxDist, 1e-9, "full edge length")
}

func TestApplyConstraintsRotation(t *testing.T) {
	b := board.NewBoard()
	p1 := b.Add(piece.SmallTriangleA, geom.Identity)
	p2 := b.Add(piece.SmallTriangleB, geom.Translate(50, 0))
	c, err := b.Connect(vref(p1.ID, 1), vref(p2.ID, 0))
	require.NoError(t, err)

	rotated := board.ApplyConstraints(p2.ID, []*board.Connection{c}, p2.Pose, math.Pi/2)
	moved := board.Placed{ID: p2.ID, Kind: p2.Kind, Pose: rotated}

	// The pivot stays fixed...
	v0, err := moved.WorldVertex(0)
	require.NoError(t, err)
	assert.InDelta(t, 50, v0.X, 1e-9)
	assert.InDelta(t, 0, v0.Y, 1e-9)

	// ...and the rest of the piece swings around it.
	v1, err := moved.WorldVertex(1)
	require.NoError(t, err)
	assert.InDelta(t, 50, v1.X, 1e-9)
	assert.InDelta(t, 50, v1.Y, 1e-9)
}

func TestApplyConstraintsTranslationClamped(t *testing.T) {
	b := board.NewBoard()
	large := b.Add(piece.LargeTriangleA, geom.Identity)
	small := b.Add(piece.SmallTriangleA, geom.Identity)
	c, err := b.Connect(eref(large.ID, 0), eref(small.ID, 0))
	require.NoError(t, err)

	conns := []*board.Connection{c}

	slid := board.ApplyConstraints(small.ID, conns, small.Pose, 30)
	assert.InDelta(t, 30, slid.C, 1e-9)
	assert.InDelta(t, 0, slid.F, 1e-9)

	beyond := board.ApplyConstraints(small.ID, conns, small.Pose, 75)
	assert.InDelta(t, 50, beyond.C, 1e-9, "slide clamps to the declared range")

	negative := board.ApplyConstraints(small.ID, conns, small.Pose, -10)
	assert.InDelta(t, 0, negative.C, 1e-9)
}

// TestApplyConstraintsIgnoresOtherPieces: constraints affecting other pieces
// leave the transform untouched.
func TestApplyConstraintsIgnoresOtherPieces(t *testing.T) {
	b := board.NewBoard()
	large := b.Add(piece.LargeTriangleA, geom.Identity)
	small := b.Add(piece.SmallTriangleA, geom.Identity)
	c, err := b.Connect(eref(large.ID, 0), eref(small.ID, 0))
	require.NoError(t, err)

	unchanged := board.ApplyConstraints(large.ID, []*board.Connection{c}, large.Pose, 30)
	assert.Equal(t, large.Pose, unchanged)
}

// TestSatisfiedRoundTrip: a just-built connection reports satisfied, and
// moving one piece beyond tolerance without updating the connection reports
// unsatisfied drift.
func TestSatisfiedRoundTrip(t *testing.T) {
	b := board.NewBoard()
	p1 := b.Add(piece.SmallTriangleA, geom.Identity)
	p2 := b.Add(piece.SmallTriangleB, geom.Translate(50, 0))
	c, err := b.Connect(vref(p1.ID, 1), vref(p2.ID, 0))
	require.NoError(t, err)

	assert.True(t, b.Satisfied(c))

	p2.Pose = geom.Translate(1, 0).Mul(p2.Pose)
	assert.False(t, b.Satisfied(c), "drift beyond tolerance breaks the connection")
}

func TestSatisfiedEdgeEdge(t *testing.T) {
	b := board.NewBoard()
	large := b.Add(piece.LargeTriangleA, geom.Identity)
	small := b.Add(piece.SmallTriangleA, geom.Translate(20, 0))
	c, err := b.Connect(eref(large.ID, 0), eref(small.ID, 0))
	require.NoError(t, err)

	// The small base (20,0)-(70,0) lies within the large base (0,0)-(100,0).
	assert.True(t, b.Satisfied(c))

	small.Pose = geom.Translate(0, 1).Mul(small.Pose)
	assert.False(t, b.Satisfied(c), "lifted off the track")

	// Sliding along the track keeps the connection satisfied.
	small.Pose = geom.Translate(10, -1).Mul(small.Pose)
	assert.True(t, b.Satisfied(c))

	// Sliding past the track's end does not.
	small.Pose = geom.Translate(60, 0).Mul(small.Pose)
	assert.False(t, b.Satisfied(c))
}

func TestSatisfiedEdgeEdgeExactOverlap(t *testing.T) {
	b := board.NewBoard()
	p1 := b.Add(piece.SmallTriangleA, geom.Identity)
	// Rotating 180° about (25,25) maps the hypotenuse (50,0)-(0,50) onto
	// itself with endpoints swapped, forming a square of two triangles.
	p2 := b.Add(piece.SmallTriangleB, geom.RotateAbout(math.Pi, geom.MakePoint(25, 25)))

	c, err := b.Connect(eref(p1.ID, 1), eref(p2.ID, 1))
	require.NoError(t, err)
	assert.True(t, b.Satisfied(c), "reversed endpoint coincidence counts")
}

func TestSatisfiedVertexEdge(t *testing.T) {
	b := board.NewBoard()
	large := b.Add(piece.LargeTriangleA, geom.Identity)
	small := b.Add(piece.SmallTriangleA, geom.Translate(25, 0))
	c, err := b.Connect(eref(large.ID, 0), vref(small.ID, 0))
	require.NoError(t, err)

	assert.True(t, b.Satisfied(c))

	small.Pose = geom.Translate(0, 2).Mul(small.Pose)
	assert.False(t, b.Satisfied(c))
}

func TestSatisfiedMissingPiece(t *testing.T) {
	b := board.NewBoard()
	p1 := b.Add(piece.SmallTriangleA, geom.Identity)
	p2 := b.Add(piece.SmallTriangleB, geom.Translate(50, 0))
	c, err := b.Connect(vref(p1.ID, 1), vref(p2.ID, 0))
	require.NoError(t, err)

	// Connections are cascade-deleted with their pieces, but a stale handle
	// must still answer queries without panicking.
	b.Remove(p2.ID)
	assert.False(t, b.Satisfied(c))
}
