package board

import "errors"

var (
	// ErrUnknownPiece indicates a referenced piece id is not on the board.
	ErrUnknownPiece = errors.New("board: piece id not found")
	// ErrPointIndex indicates a vertex or edge index outside the catalog range.
	ErrPointIndex = errors.New("board: vertex/edge index out of range")
	// ErrVerticesApart indicates a vertex-vertex connection whose endpoints do
	// not coincide; the placement solver should have made them coincide.
	ErrVerticesApart = errors.New("board: vertex-vertex connection points do not coincide")
	// ErrDegenerateEdge indicates an edge of effectively zero length.
	ErrDegenerateEdge = errors.New("board: degenerate edge")
)
