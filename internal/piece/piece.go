// Package piece holds the static tangram shape catalog. It's also able to:
// - Produce per-kind vertex lists in a canonical normalized space (CCW, y-up).
// - Derive edge index pairs mechanically from the vertex order.
// - Answer rotational-symmetry questions for gameplay validation.
package piece

import (
	"fmt"
	"math"
)

// VisualScale converts normalized catalog units to visual (world) units.
const VisualScale = 50.0

// Kind identifies one of the seven tangram pieces. The set is closed; all
// switches over Kind are exhaustive.
type Kind int

const (
	SmallTriangleA Kind = iota
	SmallTriangleB
	MediumTriangle
	LargeTriangleA
	LargeTriangleB
	Square
	Parallelogram

	numKinds
)

const sqrt2 = math.Sqrt2

// Catalog vertices in normalized units, counter-clockwise, with the
// small-triangle leg as the unit length. The order is canonical and is never
// permuted, in particular not for mirrored placements: mirroring lives
// entirely in a placement's transform, and vertex/edge indices always refer
// to this natural ordering.
var vertices = [numKinds][]point{
	SmallTriangleA: {{0, 0}, {1, 0}, {0, 1}},
	SmallTriangleB: {{0, 0}, {1, 0}, {0, 1}},
	MediumTriangle: {{0, 0}, {sqrt2, 0}, {0, sqrt2}},
	LargeTriangleA: {{0, 0}, {2, 0}, {0, 2}},
	LargeTriangleB: {{0, 0}, {2, 0}, {0, 2}},
	Square:         {{0, 0}, {1, 0}, {1, 1}, {0, 1}},
	Parallelogram:  {{0, 0}, {sqrt2, 0}, {3 * sqrt2 / 2, sqrt2 / 2}, {sqrt2 / 2, sqrt2 / 2}},
}

// point mirrors geom.Point structurally; the catalog keeps its own copy so the
// static table stays dependency-free and trivially comparable in tests.
type point struct {
	X, Y float64
}

var names = [numKinds]string{
	SmallTriangleA: "small-triangle-a",
	SmallTriangleB: "small-triangle-b",
	MediumTriangle: "medium-triangle",
	LargeTriangleA: "large-triangle-a",
	LargeTriangleB: "large-triangle-b",
	Square:         "square",
	Parallelogram:  "parallelogram",
}

// Kinds lists all seven piece kinds in catalog order.
func Kinds() []Kind {
	ks := make([]Kind, numKinds)
	for i := range ks {
		ks[i] = Kind(i)
	}
	return ks
}

// Valid reports whether k names a catalog entry.
func (k Kind) Valid() bool { return k >= 0 && k < numKinds }

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("piece.Kind(%d)", int(k))
	}
	return names[k]
}

// VertexCount returns the number of vertices (and edges) of k.
func (k Kind) VertexCount() int {
	if !k.Valid() {
		return 0
	}
	return len(vertices[k])
}

// Vertices returns k's normalized-space vertex list as (x, y) pairs, in
// canonical counter-clockwise order. The returned slice is a fresh copy.
func (k Kind) Vertices() [][2]float64 {
	if !k.Valid() {
		return nil
	}
	vs := vertices[k]
	out := make([][2]float64, len(vs))
	for i, v := range vs {
		out[i] = [2]float64{v.X, v.Y}
	}
	return out
}

// Edges returns k's edge list as (start, end) vertex index pairs. Edge i
// connects vertex i to vertex (i+1) mod n.
func (k Kind) Edges() [][2]int {
	n := k.VertexCount()
	if n == 0 {
		return nil
	}
	out := make([][2]int, n)
	for i := 0; i < n; i++ {
		out[i] = [2]int{i, (i + 1) % n}
	}
	return out
}

// Chiral reports whether mirroring k produces a shape not reachable by
// rotation alone. Only the parallelogram is chiral; flip requests on the
// other pieces are no-ops.
func (k Kind) Chiral() bool { return k == Parallelogram }
