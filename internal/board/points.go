package board

import (
	"github.com/irfansharif/tangram/internal/geom"
)

// PointKind distinguishes vertex connection points from edge-midpoint
// connection points.
type PointKind int

const (
	VertexPoint PointKind = iota
	EdgePoint
)

func (k PointKind) String() string {
	switch k {
	case VertexPoint:
		return "vertex"
	case EdgePoint:
		return "edge"
	default:
		return "unknown"
	}
}

// PointRef names a connection point by owner, kind and natural catalog index.
// Indices are flip-invariant: they always refer to the catalog's vertex/edge
// ordering, regardless of whether the owning piece is mirrored. Flip-aware
// geometry comes from the owning piece's transform, never from remapped
// indices.
type PointRef struct {
	PieceID int
	Kind    PointKind
	Index   int
}

// ConnectionPoint is a PointRef resolved to a world-space position. It is
// ephemeral: recomputed from the owning piece's transform whenever needed.
type ConnectionPoint struct {
	PieceID  int
	Kind     PointKind
	Index    int
	Position geom.Point
}

// ConnectionPoints enumerates the piece's candidate connection points: one
// per vertex, then one per edge midpoint, both in natural catalog order.
func (p *Placed) ConnectionPoints() []ConnectionPoint {
	vs := p.WorldVertices()
	edges := p.Kind.Edges()
	out := make([]ConnectionPoint, 0, len(vs)+len(edges))
	for i, v := range vs {
		out = append(out, ConnectionPoint{PieceID: p.ID, Kind: VertexPoint, Index: i, Position: v})
	}
	for i, e := range edges {
		out = append(out, ConnectionPoint{
			PieceID:  p.ID,
			Kind:     EdgePoint,
			Index:    i,
			Position: geom.Midpoint(vs[e[0]], vs[e[1]]),
		})
	}
	return out
}

// Resolve maps a PointRef to its current world-space connection point.
func (b *Board) Resolve(ref PointRef) (ConnectionPoint, error) {
	p, ok := b.Piece(ref.PieceID)
	if !ok {
		return ConnectionPoint{}, ErrUnknownPiece
	}
	switch ref.Kind {
	case VertexPoint:
		pos, err := p.WorldVertex(ref.Index)
		if err != nil {
			return ConnectionPoint{}, err
		}
		return ConnectionPoint{PieceID: ref.PieceID, Kind: ref.Kind, Index: ref.Index, Position: pos}, nil
	case EdgePoint:
		a, c, err := p.WorldEdge(ref.Index)
		if err != nil {
			return ConnectionPoint{}, err
		}
		return ConnectionPoint{PieceID: ref.PieceID, Kind: ref.Kind, Index: ref.Index, Position: geom.Midpoint(a, c)}, nil
	default:
		return ConnectionPoint{}, ErrPointIndex
	}
}

// ResolveEdge maps an edge PointRef to its current world-space endpoints.
func (b *Board) ResolveEdge(ref PointRef) (geom.Point, geom.Point, error) {
	if ref.Kind != EdgePoint {
		return geom.Point{}, geom.Point{}, ErrPointIndex
	}
	p, ok := b.Piece(ref.PieceID)
	if !ok {
		return geom.Point{}, geom.Point{}, ErrUnknownPiece
	}
	return p.WorldEdge(ref.Index)
}
