// Package geom provides 2D geometric primitives and affine transformations:
// - 2D affine transformations (translation, rotation, mirroring)
// - Bounding box operations
// - Point arithmetic and vector operations
// - Line/segment distance and half-plane queries
package geom

import (
	"fmt"
	"log"
	"math"
)

// Point represents a 2D point or vector in Cartesian coordinates.
type Point struct {
	X float64
	Y float64
}

// Box represents an axis-aligned rectangle.
type Box struct {
	X float64
	Y float64
	W float64
	H float64
}

// Affine represents a 2D affine transform in row-major form:
// [ a b c ]
// [ d e f ]
// where (x', y') = (a*x + b*y + c, d*x + e*y + f)
type Affine struct {
	A float64
	B float64
	C float64
	D float64
	E float64
	F float64
}

func MakePoint(x, y float64) Point               { return Point{X: x, Y: y} }
func MakeBox(x, y, w, h float64) Box             { return Box{X: x, Y: y, W: w, H: h} }
func MakeAffine(a, b, c, d, e, f float64) Affine { return Affine{A: a, B: b, C: c, D: d, E: e, F: f} }

// Identity is the no-op transform.
var Identity = MakeAffine(1, 0, 0, 0, 1, 0)

// FlipY mirrors across the x-axis (negates y). It's the canonical mirror used
// for chiral pieces; any other mirror is FlipY composed with a rotation.
var FlipY = MakeAffine(1, 0, 0, 0, -1, 0)

func (p Point) Add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

func Dot(p, q Point) float64 { return p.X*q.X + p.Y*q.Y }

func Dist(p, q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Norm returns the Euclidean length of p treated as a vector.
func Norm(p Point) float64 { return math.Sqrt(p.X*p.X + p.Y*p.Y) }

// AngleOf returns the direction angle of the segment a->b, in radians.
func AngleOf(a, b Point) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// Midpoint returns the midpoint of segment ab.
func Midpoint(a, b Point) Point {
	return Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}

// Centroid returns the arithmetic mean of the given points. The zero point is
// returned for empty input.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var sum Point
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Scale(1.0 / float64(len(points)))
}

// Bounds returns the axis-aligned bounding box of the given points. The second
// return value is false for empty input; callers must not treat a zero box as
// a meaningful result.
func Bounds(points []Point) (Box, bool) {
	if len(points) == 0 {
		return Box{}, false
	}
	xmin, xmax := points[0].X, points[0].X
	ymin, ymax := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		xmin = math.Min(xmin, p.X)
		xmax = math.Max(xmax, p.X)
		ymin = math.Min(ymin, p.Y)
		ymax = math.Max(ymax, p.Y)
	}
	return MakeBox(xmin, ymin, xmax-xmin, ymax-ymin), true
}

// Union returns the smallest box containing both a and b.
func Union(a, b Box) Box {
	xmin := math.Min(a.X, b.X)
	ymin := math.Min(a.Y, b.Y)
	xmax := math.Max(a.X+a.W, b.X+b.W)
	ymax := math.Max(a.Y+a.H, b.Y+b.H)
	return MakeBox(xmin, ymin, xmax-xmin, ymax-ymin)
}

// PerpDist returns the perpendicular distance from p to the infinite line
// through a and b. Degenerate (zero-length) lines fall back to the
// point-to-point distance.
func PerpDist(p, a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	length := math.Sqrt(dx*dx + dy*dy)
	if length < 1e-12 {
		return Dist(p, a)
	}
	// Normal form: the line is dy*x - dx*y + (dx*a.Y - dy*a.X) = 0.
	return math.Abs(dy*p.X-dx*p.Y+dx*a.Y-dy*a.X) / length
}

// SignedDist returns the signed distance from p to the line through origin
// with the given unit normal. The sign classifies which half-plane p lies in.
func SignedDist(p, origin, unitNormal Point) float64 {
	return Dot(p.Sub(origin), unitNormal)
}

// OnSegment reports whether p lies on the segment ab, within tol both along
// the perpendicular and beyond the endpoints.
func OnSegment(p, a, b Point, tol float64) bool {
	d := b.Sub(a)
	length2 := Dot(d, d)
	if length2 < 1e-12 {
		return Dist(p, a) <= tol
	}
	t := Dot(p.Sub(a), d) / length2
	length := math.Sqrt(length2)
	if t*length < -tol || (t-1)*length > tol {
		return false
	}
	return PerpDist(p, a, b) <= tol
}

// Rotate returns the transform rotating by theta radians about the origin.
func Rotate(theta float64) Affine {
	c, s := math.Cos(theta), math.Sin(theta)
	return MakeAffine(c, -s, 0, s, c, 0)
}

// Translate returns the pure translation by (x, y).
func Translate(x, y float64) Affine {
	return MakeAffine(1, 0, x, 0, 1, y)
}

// RotateAbout returns the transform rotating by theta radians about pivot.
func RotateAbout(theta float64, pivot Point) Affine {
	return Translate(pivot.X, pivot.Y).Mul(Rotate(theta)).Mul(Translate(-pivot.X, -pivot.Y))
}

// MulPoint applies the affine transform to a point.
func (t Affine) MulPoint(p Point) Point {
	return Point{
		X: t.A*p.X + t.B*p.Y + t.C,
		Y: t.D*p.X + t.E*p.Y + t.F,
	}
}

// MulPoints applies the affine transform to every point in ps.
func (t Affine) MulPoints(ps []Point) []Point {
	out := make([]Point, len(ps))
	for i, p := range ps {
		out[i] = t.MulPoint(p)
	}
	return out
}

// Mul composes two affine transforms (applies u then t).
func (t Affine) Mul(u Affine) Affine {
	return MakeAffine(
		t.A*u.A+t.B*u.D,
		t.A*u.B+t.B*u.E,
		t.A*u.C+t.B*u.F+t.C,
		t.D*u.A+t.E*u.D,
		t.D*u.B+t.E*u.E,
		t.D*u.C+t.E*u.F+t.F,
	)
}

// Inv returns the inverse of the affine transform.
// Returns an error if the transform is not invertible (determinant is zero).
func (t Affine) Inv() (Affine, error) {
	det := t.Det()
	if math.Abs(det) < 1e-10 {
		return Affine{}, fmt.Errorf("affine transform is not invertible (determinant ≈ 0)")
	}
	return MakeAffine(
		t.E/det, -t.B/det, (t.B*t.F-t.C*t.E)/det,
		-t.D/det, t.A/det, (t.C*t.D-t.A*t.F)/det,
	), nil
}

// Det returns the determinant of the linear part.
func (t Affine) Det() float64 { return t.A*t.E - t.B*t.D }

// Flipped reports whether the transform includes a mirror (negative
// determinant).
func (t Affine) Flipped() bool { return t.Det() < 0 }

// Rotation extracts the rotation angle in radians. Under the rotation∘mirror
// composition order used for placements, atan2(D, A) recovers the rotation for
// both mirrored and unmirrored transforms.
func (t Affine) Rotation() float64 { return math.Atan2(t.D, t.A) }

// Finite reports whether all six components are finite. Transforms failing
// this check must never be applied to a piece.
func (t Affine) Finite() bool {
	for _, v := range [6]float64{t.A, t.B, t.C, t.D, t.E, t.F} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// WithTranslation returns t with its translation components replaced.
// Placement construction sets translation in world space directly rather than
// pre-multiplying it through the rotated frame.
func (t Affine) WithTranslation(p Point) Affine {
	t.C = p.X
	t.F = p.Y
	return t
}

// FillBox returns a transform that maps box b1 into b2, optionally allowing a
// 90-degree rotation.
func FillBox(b1, b2 Box, allowRotate bool) Affine {
	if b1.W <= 0 || b1.H <= 0 {
		log.Fatalf("source box must have positive width and height, got W=%v H=%v", b1.W, b1.H)
	}
	if b2.W <= 0 || b2.H <= 0 {
		log.Fatalf("destination box must have positive width and height, got W=%v H=%v", b2.W, b2.H)
	}

	sc := math.Min(b2.W/b1.W, b2.H/b1.H)
	rsc := math.Min(b2.W/b1.H, b2.H/b1.W)
	centerDst := MakeAffine(1, 0, b2.X+0.5*b2.W, 0, 1, b2.Y+0.5*b2.H)
	centerSrc := MakeAffine(1, 0, -(b1.X + 0.5*b1.W), 0, 1, -(b1.Y + 0.5*b1.H))
	if !allowRotate || sc > rsc {
		return centerDst.Mul(MakeAffine(sc, 0, 0, 0, sc, 0)).Mul(centerSrc)
	}
	rot := MakeAffine(0, -1, 0, 1, 0, 0)
	return centerDst.Mul(MakeAffine(rsc, 0, 0, 0, rsc, 0)).Mul(rot).Mul(centerSrc)
}
