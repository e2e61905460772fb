package solver

import "errors"

// Expected failure modes. Callers treat any error from Solve as a rejected
// placement; errors.Is distinguishes the cause when needed (e.g. for
// diagnostics). Solve never panics on caller input.
var (
	// ErrPairCount indicates zero or more than two connection pairs.
	ErrPairCount = errors.New("solver: need exactly 1 or 2 connection pairs")
	// ErrUnknownKind indicates a pending piece kind outside the catalog.
	ErrUnknownKind = errors.New("solver: unknown piece kind")
	// ErrMisaligned indicates a vertex-vertex residual beyond the strict
	// tolerance: the declared points cannot be made to coincide.
	ErrMisaligned = errors.New("solver: connection points cannot be aligned")
	// ErrNotCollinear indicates an edge constraint whose endpoints do not lie
	// on the canvas edge's line after the best rotation.
	ErrNotCollinear = errors.New("solver: edge endpoints not collinear with canvas edge")
	// ErrBadTransform indicates the computed transform has non-finite
	// components. Never surfaced as success.
	ErrBadTransform = errors.New("solver: computed transform is not finite")
)
