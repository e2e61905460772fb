// Package board models a tangram assembly: pieces placed on the canvas via
// affine transforms, the connection points they expose, and the committed
// connections (with their residual degrees of freedom) between them.
//
// World-space geometry is always derived from a piece's kind and transform at
// the point of use; it is never cached as independent mutable state.
package board

import (
	"sort"

	"github.com/irfansharif/tangram/internal/geom"
	"github.com/irfansharif/tangram/internal/piece"
)

// Placed is a committed piece: a catalog kind positioned by an affine
// transform in visual/world space.
type Placed struct {
	ID   int
	Kind piece.Kind
	Pose geom.Affine
}

// LocalVertices returns k's catalog vertices scaled to visual units, before
// any placement transform. This is the local space the solver measures
// pending-piece geometry in.
func LocalVertices(k piece.Kind) []geom.Point {
	vs := k.Vertices()
	out := make([]geom.Point, len(vs))
	for i, v := range vs {
		out[i] = geom.MakePoint(v[0]*piece.VisualScale, v[1]*piece.VisualScale)
	}
	return out
}

// WorldVertices returns the piece's vertices in world space.
func (p *Placed) WorldVertices() []geom.Point {
	return p.Pose.MulPoints(LocalVertices(p.Kind))
}

// WorldVertex returns vertex i in world space.
func (p *Placed) WorldVertex(i int) (geom.Point, error) {
	if i < 0 || i >= p.Kind.VertexCount() {
		return geom.Point{}, ErrPointIndex
	}
	return p.WorldVertices()[i], nil
}

// WorldEdge returns the two world-space endpoints of edge i.
func (p *Placed) WorldEdge(i int) (geom.Point, geom.Point, error) {
	edges := p.Kind.Edges()
	if i < 0 || i >= len(edges) {
		return geom.Point{}, geom.Point{}, ErrPointIndex
	}
	vs := p.WorldVertices()
	return vs[edges[i][0]], vs[edges[i][1]], nil
}

// Centroid returns the world-space centroid of the piece's vertices.
func (p *Placed) Centroid() geom.Point {
	return geom.Centroid(p.WorldVertices())
}

// Board is a flat, order-irrelevant collection of placed pieces keyed by id,
// plus the connections committed between them.
type Board struct {
	pieces      map[int]*Placed
	connections []*Connection
	nextID      int
}

func NewBoard() *Board {
	return &Board{pieces: make(map[int]*Placed), nextID: 1}
}

// Add places a new piece and returns it. The caller supplies the transform,
// typically one produced by the solver.
func (b *Board) Add(k piece.Kind, pose geom.Affine) *Placed {
	p := &Placed{ID: b.nextID, Kind: k, Pose: pose}
	b.nextID++
	b.pieces[p.ID] = p
	return p
}

// Piece looks up a placed piece by id.
func (b *Board) Piece(id int) (*Placed, bool) {
	p, ok := b.pieces[id]
	return p, ok
}

// Pieces returns a snapshot of all placed pieces, ordered by id for
// deterministic iteration.
func (b *Board) Pieces() []*Placed {
	out := make([]*Placed, 0, len(b.pieces))
	for _, p := range b.pieces {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of placed pieces.
func (b *Board) Len() int { return len(b.pieces) }

// Remove deletes a piece and cascades deletion to every connection that
// references it, so no connection ever dangles against a missing piece.
func (b *Board) Remove(id int) bool {
	if _, ok := b.pieces[id]; !ok {
		return false
	}
	delete(b.pieces, id)
	kept := b.connections[:0]
	for _, c := range b.connections {
		if c.A.PieceID == id || c.B.PieceID == id {
			continue
		}
		kept = append(kept, c)
	}
	b.connections = kept
	return true
}

// Connections returns the committed connections.
func (b *Board) Connections() []*Connection {
	out := make([]*Connection, len(b.connections))
	copy(out, b.connections)
	return out
}

// Bounds returns the bounding box of the whole assembly. The second return
// value is false for an empty board.
func (b *Board) Bounds() (geom.Box, bool) {
	var box geom.Box
	found := false
	for _, p := range b.Pieces() {
		pb, ok := geom.Bounds(p.WorldVertices())
		if !ok {
			continue
		}
		if !found {
			box = pb
			found = true
			continue
		}
		box = geom.Union(box, pb)
	}
	return box, found
}
