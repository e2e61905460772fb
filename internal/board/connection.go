package board

import (
	"math"

	"github.com/irfansharif/tangram/internal/geom"
)

// Tolerances for connection satisfaction checks, in visual units.
const (
	// coincideTol is the tight tolerance for vertex coincidence. Placements
	// put shared vertices exactly on top of each other, so anything beyond
	// float rounding is drift.
	coincideTol = 1e-5
	// containTol bounds collinearity and on-segment containment checks for
	// edge-involved connections.
	containTol = 1e-2
)

// ConnectionType classifies a committed connection by the kinds of its two
// connection points.
type ConnectionType int

const (
	VertexVertex ConnectionType = iota
	EdgeEdge
	VertexEdge
)

func (t ConnectionType) String() string {
	switch t {
	case VertexVertex:
		return "vertex-vertex"
	case EdgeEdge:
		return "edge-edge"
	case VertexEdge:
		return "vertex-edge"
	default:
		return "unknown"
	}
}

// ConstraintKind names the remaining degree of freedom a connection leaves on
// its affected piece.
type ConstraintKind int

const (
	ConstraintFixed ConstraintKind = iota
	ConstraintRotation
	ConstraintTranslation
)

// Constraint is the reduced degree of freedom left after a connection is
// committed: either a rotation about a shared world point or a 1-D slide
// along a shared edge direction. AffectedPieceID identifies the piece that
// retains the freedom; the other piece is the reference.
type Constraint struct {
	Kind            ConstraintKind
	AffectedPieceID int

	// Rotation constraints.
	Pivot              geom.Point
	MinAngle, MaxAngle float64 // radians

	// Translation constraints.
	Direction        geom.Point // unit vector
	MinDist, MaxDist float64    // visual units
}

// Connection is a committed relationship between two placed pieces: the pair
// of connection point references (by kind/index, never by raw position) and
// the derived constraint.
type Connection struct {
	A, B       PointRef
	Type       ConnectionType
	Constraint Constraint
}

// Connect derives the constraint between two resolved connection points and
// commits the connection on the board. The A side is the reference; where the
// connection type leaves freedom on a specific piece (vertex-vertex, mixed
// vertex-edge) that piece is derived per type, not by argument order alone.
func (b *Board) Connect(a, ref2 PointRef) (*Connection, error) {
	c, err := b.deriveConnection(a, ref2)
	if err != nil {
		return nil, err
	}
	b.connections = append(b.connections, c)
	return c, nil
}

func (b *Board) deriveConnection(a, c PointRef) (*Connection, error) {
	pa, err := b.Resolve(a)
	if err != nil {
		return nil, err
	}
	pc, err := b.Resolve(c)
	if err != nil {
		return nil, err
	}

	switch {
	case pa.Kind == VertexPoint && pc.Kind == VertexPoint:
		return b.vertexVertexConnection(a, c, pa, pc)
	case pa.Kind == EdgePoint && pc.Kind == EdgePoint:
		return b.edgeEdgeConnection(a, c)
	default:
		return b.vertexEdgeConnection(a, c, pa, pc)
	}
}

// vertexVertexConnection models two coincident vertices: free rotation about
// the shared point, affecting the second piece. Non-coincident vertices are a
// modeling error; the placement solver is responsible for having made them
// coincide.
func (b *Board) vertexVertexConnection(a, c PointRef, pa, pc ConnectionPoint) (*Connection, error) {
	if geom.Dist(pa.Position, pc.Position) > coincideTol {
		return nil, ErrVerticesApart
	}
	return &Connection{
		A:    a,
		B:    c,
		Type: VertexVertex,
		Constraint: Constraint{
			Kind:            ConstraintRotation,
			AffectedPieceID: c.PieceID,
			Pivot:           pa.Position,
			MinAngle:        0,
			MaxAngle:        2 * math.Pi,
		},
	}, nil
}

// edgeEdgeConnection models two collinear edges: the longer edge is the
// track, and the shorter edge's owner slides along it.
func (b *Board) edgeEdgeConnection(a, c PointRef) (*Connection, error) {
	a0, a1, err := b.ResolveEdge(a)
	if err != nil {
		return nil, err
	}
	c0, c1, err := b.ResolveEdge(c)
	if err != nil {
		return nil, err
	}

	lenA := geom.Dist(a0, a1)
	lenC := geom.Dist(c0, c1)
	track0, track1 := a0, a1
	trackLen, slideLen := lenA, lenC
	affected := c.PieceID
	if lenC > lenA {
		track0, track1 = c0, c1
		trackLen, slideLen = lenC, lenA
		affected = a.PieceID
	}
	if trackLen < 1e-12 {
		return nil, ErrDegenerateEdge
	}

	dir := track1.Sub(track0).Scale(1 / trackLen)
	// A sliding edge longer than its track clamps the range to zero rather
	// than going negative.
	maxDist := math.Max(0, trackLen-slideLen)
	return &Connection{
		A:    a,
		B:    c,
		Type: EdgeEdge,
		Constraint: Constraint{
			Kind:            ConstraintTranslation,
			AffectedPieceID: affected,
			Direction:       dir,
			MinDist:         0,
			MaxDist:         maxDist,
		},
	}, nil
}

// vertexEdgeConnection models a vertex resting on an edge: the vertex-owning
// piece slides along the edge's full length.
func (b *Board) vertexEdgeConnection(a, c PointRef, pa, pc ConnectionPoint) (*Connection, error) {
	vertexRef, edgeRef := a, c
	if pa.Kind == EdgePoint {
		vertexRef, edgeRef = c, a
	}
	e0, e1, err := b.ResolveEdge(edgeRef)
	if err != nil {
		return nil, err
	}
	edgeLen := geom.Dist(e0, e1)
	if edgeLen < 1e-12 {
		return nil, ErrDegenerateEdge
	}
	return &Connection{
		A:    a,
		B:    c,
		Type: VertexEdge,
		Constraint: Constraint{
			Kind:            ConstraintTranslation,
			AffectedPieceID: vertexRef.PieceID,
			Direction:       e1.Sub(e0).Scale(1 / edgeLen),
			MinDist:         0,
			MaxDist:         edgeLen,
		},
	}, nil
}

// ApplyConstraints applies every connection constraint affecting pieceID to
// the given transform, driven by a single scalar parameter: a rotation angle
// in radians for rotation constraints, or a slide distance (clamped to the
// constraint's declared range) for translation constraints.
//
// Rotation is applied by conjugation about the pivot, never by composing a
// bare rotation onto an arbitrary origin.
func ApplyConstraints(pieceID int, conns []*Connection, cur geom.Affine, param float64) geom.Affine {
	out := cur
	for _, c := range conns {
		k := c.Constraint
		if k.AffectedPieceID != pieceID {
			continue
		}
		switch k.Kind {
		case ConstraintRotation:
			out = geom.RotateAbout(param, k.Pivot).Mul(out)
		case ConstraintTranslation:
			d := math.Max(k.MinDist, math.Min(k.MaxDist, param))
			offset := k.Direction.Scale(d)
			out = geom.Translate(offset.X, offset.Y).Mul(out)
		}
	}
	return out
}

// Satisfied re-derives world geometry from the current transforms of both
// pieces and reports whether the connection still holds. It is a pure query,
// used to detect constraint drift after either piece is manipulated
// independently.
func (b *Board) Satisfied(c *Connection) bool {
	switch c.Type {
	case VertexVertex:
		pa, err := b.Resolve(c.A)
		if err != nil {
			return false
		}
		pc, err := b.Resolve(c.B)
		if err != nil {
			return false
		}
		return geom.Dist(pa.Position, pc.Position) <= coincideTol
	case EdgeEdge:
		return b.edgeEdgeSatisfied(c)
	case VertexEdge:
		return b.vertexEdgeSatisfied(c)
	default:
		return false
	}
}

func (b *Board) edgeEdgeSatisfied(c *Connection) bool {
	a0, a1, err := b.ResolveEdge(c.A)
	if err != nil {
		return false
	}
	c0, c1, err := b.ResolveEdge(c.B)
	if err != nil {
		return false
	}

	// Literal endpoint coincidence first (equal-length edges lying exactly on
	// top of each other, in either orientation).
	if geom.Dist(a0, c0) <= coincideTol && geom.Dist(a1, c1) <= coincideTol {
		return true
	}
	if geom.Dist(a0, c1) <= coincideTol && geom.Dist(a1, c0) <= coincideTol {
		return true
	}

	// Otherwise the shorter edge must lie within the longer edge's segment.
	s0, s1, l0, l1 := a0, a1, c0, c1
	if geom.Dist(a0, a1) > geom.Dist(c0, c1) {
		s0, s1, l0, l1 = c0, c1, a0, a1
	}
	return geom.OnSegment(s0, l0, l1, containTol) && geom.OnSegment(s1, l0, l1, containTol)
}

func (b *Board) vertexEdgeSatisfied(c *Connection) bool {
	vertexRef, edgeRef := c.A, c.B
	if vertexRef.Kind == EdgePoint {
		vertexRef, edgeRef = c.B, c.A
	}
	pv, err := b.Resolve(vertexRef)
	if err != nil {
		return false
	}
	e0, e1, err := b.ResolveEdge(edgeRef)
	if err != nil {
		return false
	}
	return geom.OnSegment(pv.Position, e0, e1, containTol)
}
