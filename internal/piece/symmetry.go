package piece

import "math"

// SymmetryFold returns the rotational symmetry fold of k: the number of evenly
// spaced rotations that leave the outline unchanged. The square has 4-fold
// symmetry, the unflipped parallelogram 2-fold, and the triangles none (fold
// 1). Flipping the parallelogram breaks its 180° symmetry, so a flipped
// parallelogram reports fold 1.
func SymmetryFold(k Kind, flipped bool) int {
	switch k {
	case Square:
		return 4
	case Parallelogram:
		if flipped {
			return 1
		}
		return 2
	default:
		return 1
	}
}

// RotationMatches reports whether current matches target (radians) up to k's
// rotational symmetry, within tolDeg degrees. Every symmetry-equivalent target
// rotation is checked individually; reducing modulo the fold step is not
// equivalent near the wrap boundary when tolerances are asymmetric.
func RotationMatches(current, target float64, k Kind, flipped bool, tolDeg float64) bool {
	fold := SymmetryFold(k, flipped)
	step := 2 * math.Pi / float64(fold)
	tol := tolDeg * math.Pi / 180
	for i := 0; i < fold; i++ {
		if angularDiff(current, target+float64(i)*step) <= tol {
			return true
		}
	}
	return false
}

// angularDiff returns the absolute difference between two angles, wrapped to
// [0, π].
func angularDiff(a, b float64) float64 {
	d := math.Mod(a-b, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}
