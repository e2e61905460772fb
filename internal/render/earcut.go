package render

import (
	"fmt"

	"github.com/rclancey/earcut"

	"github.com/irfansharif/tangram/internal/geom"
)

// earClip triangulates a polygon using the earcut algorithm. Tangram pieces
// are convex, but earcut handles arbitrary simple polygons, which keeps this
// usable for merged assembly outlines too.
func earClip(polygon []geom.Point) ([][3]geom.Point, error) {
	if len(polygon) < 3 {
		return nil, fmt.Errorf("degenerate polygon (%d vertices < 3)", len(polygon))
	}

	// Earcut wants a flat coordinate array: [x0, y0, x1, y1, ...].
	coords := make([]float64, len(polygon)*2)
	for i, p := range polygon {
		coords[i*2] = p.X
		coords[i*2+1] = p.Y
	}

	indices, err := earcut.Earcut(coords, nil /* holeIndices */, 2 /* dim */)
	if err != nil {
		return nil, fmt.Errorf("triangulation failed for %d-vertex polygon: %v", len(polygon), err)
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("invalid triangle count (indices: %d, not divisible by 3)", len(indices))
	}

	triangles := make([][3]geom.Point, len(indices)/3)
	for t := range triangles {
		for v := 0; v < 3; v++ {
			idx := indices[t*3+v]
			triangles[t][v] = geom.MakePoint(coords[idx*2], coords[idx*2+1])
		}
	}
	return triangles, nil
}
