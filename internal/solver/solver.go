// Package solver computes placement transforms for pending tangram pieces.
//
// Given one or two declared connection pairs — each pairing a connection
// point on the existing assembly ("canvas") with a connection point on the
// pending piece — Solve produces a single rigid (plus optional mirror)
// transform satisfying all constraints simultaneously, or an error when the
// constraints cannot be met within tolerance. Solving is a pure function over
// a read-only board snapshot; it mutates nothing and allocates no persistent
// state, so concurrent solves over the same board are safe.
package solver

import (
	"math"

	"github.com/irfansharif/tangram/internal/board"
	"github.com/irfansharif/tangram/internal/geom"
	"github.com/irfansharif/tangram/internal/piece"
)

// Tolerances, in visual units (one normalized catalog unit = 50 visual
// units).
const (
	// strictTol bounds the secondary-point residual when both declared pairs
	// are vertex-vertex. Vertices either coincide or the placement is wrong.
	strictTol = 1e-2
	// looseTol bounds collinearity checks for edge constraints. Edges of
	// different lengths are expected to only approximately align, and the
	// piece remains free to slide after placement.
	looseTol = 1.0
	// snapWindow is the half-width, in radians, of the snap-to-45° window.
	// Tangram pieces are designed for a 45° grid; rotations computed within
	// one degree of a grid multiple are floating-point jitter, not intent.
	snapWindow = math.Pi / 180
	// degenerateLen is the vector length below which angles are undefined.
	degenerateLen = 1e-9
)

// LocalRef names a connection point on the pending piece by kind and natural
// catalog index. Like board.PointRef, indices are flip-invariant.
type LocalRef struct {
	Kind  board.PointKind
	Index int
}

// Pair declares one connection: a canvas point on an already-placed piece and
// the pending-piece point to join to it. The canvas points of different pairs
// may belong to different pieces (cross-piece constraints).
type Pair struct {
	Canvas  board.PointRef
	Pending LocalRef
}

// Request carries a full placement problem.
type Request struct {
	Kind     piece.Kind
	Rotation float64 // user-chosen base rotation, radians
	Flipped  bool    // user-chosen mirror intent
	Pairs    []Pair  // 1 or 2 declared connections
	Board    *board.Board
}

// Solve computes the placement transform for the pending piece. All expected
// failure modes (missing piece, bad index, infeasible constraints, non-finite
// result) are reported as errors; the board is never modified.
func Solve(req Request) (geom.Affine, error) {
	if !req.Kind.Valid() {
		return geom.Affine{}, ErrUnknownKind
	}
	if req.Board == nil {
		return geom.Affine{}, board.ErrUnknownPiece
	}

	switch len(req.Pairs) {
	case 1:
		return solveSingle(req, req.Pairs[0])
	case 2:
		first, second := req.Pairs[0], req.Pairs[1]
		switch {
		case isVertexVertex(first) && isEdgeEdge(second):
			return solvePivotEdge(req, first, second)
		case isEdgeEdge(first) && isVertexVertex(second):
			return solvePivotEdge(req, second, first)
		case isEdgeEdge(first) && isEdgeEdge(second):
			return solveEdgeEdge(req, first, second)
		default:
			return solveTwoPoints(req, first, second)
		}
	default:
		return geom.Affine{}, ErrPairCount
	}
}

func isVertexVertex(p Pair) bool {
	return p.Canvas.Kind == board.VertexPoint && p.Pending.Kind == board.VertexPoint
}

func isEdgeEdge(p Pair) bool {
	return p.Canvas.Kind == board.EdgePoint && p.Pending.Kind == board.EdgePoint
}

// effectiveFlip gates the mirror intent on chirality: mirroring a
// mirror-symmetric piece is expressible as a rotation, so only the
// parallelogram ever carries a negative determinant.
func effectiveFlip(req Request) bool {
	return req.Flipped && req.Kind.Chiral()
}

// linear builds the linear part of a placement: rotation composed onto the
// optional mirror, so the mirror applies to local geometry first.
func linear(rotation float64, flipped bool) geom.Affine {
	lin := geom.Rotate(rotation)
	if flipped {
		lin = lin.Mul(geom.FlipY)
	}
	return lin
}

// localPoint returns the pending piece's connection point in natural
// (unmirrored, unrotated) local visual space.
func localPoint(k piece.Kind, ref LocalRef) (geom.Point, error) {
	vs := board.LocalVertices(k)
	switch ref.Kind {
	case board.VertexPoint:
		if ref.Index < 0 || ref.Index >= len(vs) {
			return geom.Point{}, board.ErrPointIndex
		}
		return vs[ref.Index], nil
	case board.EdgePoint:
		a, b, err := localEdge(k, ref.Index)
		if err != nil {
			return geom.Point{}, err
		}
		return geom.Midpoint(a, b), nil
	default:
		return geom.Point{}, board.ErrPointIndex
	}
}

// localEdge returns edge i's endpoints in natural local visual space.
func localEdge(k piece.Kind, i int) (geom.Point, geom.Point, error) {
	edges := k.Edges()
	if i < 0 || i >= len(edges) {
		return geom.Point{}, geom.Point{}, board.ErrPointIndex
	}
	vs := board.LocalVertices(k)
	return vs[edges[i][0]], vs[edges[i][1]], nil
}

// maybeFlip mirrors p when flipped is set. Angle measurements always run on
// actually-mirrored geometry; negating angles algebraically on unmirrored
// geometry is not equivalent and is deliberately avoided.
func maybeFlip(p geom.Point, flipped bool) geom.Point {
	if flipped {
		return geom.FlipY.MulPoint(p)
	}
	return p
}

// snap45 rounds theta to the nearest multiple of 45° when within the snap
// window, and returns it untouched otherwise.
func snap45(theta float64) float64 {
	step := math.Pi / 4
	k := math.Round(theta / step)
	if math.Abs(theta-k*step) <= snapWindow {
		return k * step
	}
	return theta
}

// finish validates finiteness; a transform with any non-finite component is
// never returned as success.
func finish(t geom.Affine) (geom.Affine, error) {
	if !t.Finite() {
		return geom.Affine{}, ErrBadTransform
	}
	return t, nil
}

// solveSingle aligns a single connection pair: the rotation is the user's
// base rotation exactly, and the translation places the pending point on the
// canvas point with no residual by construction.
func solveSingle(req Request, p Pair) (geom.Affine, error) {
	canvas, err := req.Board.Resolve(p.Canvas)
	if err != nil {
		return geom.Affine{}, err
	}
	local, err := localPoint(req.Kind, p.Pending)
	if err != nil {
		return geom.Affine{}, err
	}

	lin := linear(req.Rotation, effectiveFlip(req))
	t := lin.WithTranslation(canvas.Position.Sub(lin.MulPoint(local)))
	return finish(t)
}

// solveTwoPoints is the generic two-pair alignment: rotation from the angle
// between the canvas-space and local-space connection point vectors, exact
// translation at the first pair, residual check at the second.
func solveTwoPoints(req Request, first, second Pair) (geom.Affine, error) {
	c1, err := req.Board.Resolve(first.Canvas)
	if err != nil {
		return geom.Affine{}, err
	}
	c2, err := req.Board.Resolve(second.Canvas)
	if err != nil {
		return geom.Affine{}, err
	}
	q1, err := localPoint(req.Kind, first.Pending)
	if err != nil {
		return geom.Affine{}, err
	}
	q2, err := localPoint(req.Kind, second.Pending)
	if err != nil {
		return geom.Affine{}, err
	}

	flip := effectiveFlip(req)
	localVec := maybeFlip(q2, flip).Sub(maybeFlip(q1, flip))
	canvasVec := c2.Position.Sub(c1.Position)
	if geom.Norm(localVec) < degenerateLen || geom.Norm(canvasVec) < degenerateLen {
		// Coincident declared points leave the rotation undefined; degrade to
		// single-point alignment on the first pair.
		return solveSingle(req, first)
	}

	rot := math.Atan2(canvasVec.Y, canvasVec.X) - math.Atan2(localVec.Y, localVec.X) + req.Rotation
	lin := linear(rot, flip)
	t := lin.WithTranslation(c1.Position.Sub(lin.MulPoint(q1)))

	residual := geom.Dist(t.MulPoint(q2), c2.Position)
	if bothVertices(first, second) {
		if residual > strictTol {
			return geom.Affine{}, ErrMisaligned
		}
	}
	// With an edge involved the residual is tolerated outright: edges of
	// different lengths are expected to misalign at their reference points,
	// and the piece can slide along the edge after placement.
	return finish(t)
}

func bothVertices(first, second Pair) bool {
	return first.Canvas.Kind == board.VertexPoint && first.Pending.Kind == board.VertexPoint &&
		second.Canvas.Kind == board.VertexPoint && second.Pending.Kind == board.VertexPoint
}

// solvePivotEdge handles the vertex-pivot plus edge-direction case: the
// vertex pair pins a point exactly, the edge pair fixes the orientation. The
// two canvas points may belong to different pieces.
func solvePivotEdge(req Request, vertexPair, edgePair Pair) (geom.Affine, error) {
	b := req.Board
	pivot, err := b.Resolve(vertexPair.Canvas)
	if err != nil {
		return geom.Affine{}, err
	}
	e0, e1, err := b.ResolveEdge(edgePair.Canvas)
	if err != nil {
		return geom.Affine{}, err
	}
	edgeOwner, ok := b.Piece(edgePair.Canvas.PieceID)
	if !ok {
		return geom.Affine{}, board.ErrUnknownPiece
	}

	flip := effectiveFlip(req)
	q0, q1, err := localEdge(req.Kind, edgePair.Pending.Index)
	if err != nil {
		return geom.Affine{}, err
	}
	pivotLocal, err := localPoint(req.Kind, vertexPair.Pending)
	if err != nil {
		return geom.Affine{}, err
	}

	canvasAngle := geom.AngleOf(e0, e1)
	actualAngle := geom.AngleOf(maybeFlip(q0, flip), maybeFlip(q1, flip))
	rot := snap45(canvasAngle - actualAngle + req.Rotation)

	lin := linear(rot, flip)
	t := lin.WithTranslation(pivot.Position.Sub(lin.MulPoint(pivotLocal)))

	if err := verifyCollinear(t, q0, q1, e0, e1); err != nil {
		return geom.Affine{}, err
	}

	// Half-plane correction: if the edge owner's centroid and the pending
	// piece's centroid land on the same side of the canvas edge line, the two
	// pieces overlap. Rotate π about the pivot (keeping it fixed), re-verify
	// collinearity, and use the corrected transform.
	if sameSide(t, req.Kind, edgeOwner, e0, e1) {
		corrected := geom.RotateAbout(math.Pi, pivot.Position).Mul(t)
		if err := verifyCollinear(corrected, q0, q1, e0, e1); err != nil {
			return geom.Affine{}, err
		}
		t = corrected
	}
	return finish(t)
}

// solveEdgeEdge aligns two edge pairs: rotation from the first pair's
// directions, translation from the first pair's midpoints (edges of unequal
// length share a line, not endpoints), collinearity verified for both pairs.
func solveEdgeEdge(req Request, first, second Pair) (geom.Affine, error) {
	b := req.Board
	c0, c1, err := b.ResolveEdge(first.Canvas)
	if err != nil {
		return geom.Affine{}, err
	}
	flip := effectiveFlip(req)
	q0, q1, err := localEdge(req.Kind, first.Pending.Index)
	if err != nil {
		return geom.Affine{}, err
	}

	canvasAngle := geom.AngleOf(c0, c1)
	actualAngle := geom.AngleOf(maybeFlip(q0, flip), maybeFlip(q1, flip))
	rot := snap45(canvasAngle - actualAngle + req.Rotation)

	lin := linear(rot, flip)
	canvasMid := geom.Midpoint(c0, c1)
	localMid := geom.Midpoint(q0, q1)
	t := lin.WithTranslation(canvasMid.Sub(lin.MulPoint(localMid)))

	if err := verifyCollinear(t, q0, q1, c0, c1); err != nil {
		return geom.Affine{}, err
	}

	d0, d1, err := b.ResolveEdge(second.Canvas)
	if err != nil {
		return geom.Affine{}, err
	}
	r0, r1, err := localEdge(req.Kind, second.Pending.Index)
	if err != nil {
		return geom.Affine{}, err
	}
	if err := verifyCollinear(t, r0, r1, d0, d1); err != nil {
		return geom.Affine{}, err
	}
	return finish(t)
}

// verifyCollinear checks that both endpoints of the pending piece's local
// edge, under transform t, lie within tolerance of the canvas edge's infinite
// line.
func verifyCollinear(t geom.Affine, local0, local1, canvas0, canvas1 geom.Point) error {
	if geom.PerpDist(t.MulPoint(local0), canvas0, canvas1) > looseTol {
		return ErrNotCollinear
	}
	if geom.PerpDist(t.MulPoint(local1), canvas0, canvas1) > looseTol {
		return ErrNotCollinear
	}
	return nil
}

// sameSide reports whether the canvas edge owner's centroid and the pending
// piece's tentative centroid lie strictly on the same side of the canvas edge
// line, using one consistent normal for both measurements.
func sameSide(t geom.Affine, k piece.Kind, edgeOwner *board.Placed, e0, e1 geom.Point) bool {
	dir := e1.Sub(e0)
	length := geom.Norm(dir)
	if length < degenerateLen {
		return false
	}
	normal := geom.MakePoint(-dir.Y/length, dir.X/length)

	ownerSide := geom.SignedDist(edgeOwner.Centroid(), e0, normal)
	pendingSide := geom.SignedDist(geom.Centroid(t.MulPoints(board.LocalVertices(k))), e0, normal)
	return ownerSide*pendingSide > 0
}
