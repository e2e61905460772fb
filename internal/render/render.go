// Package render handles the visual presentation of a tangram assembly.
//
// It takes placed pieces from the board package and:
// 1. Fits the assembly's world-space bounds into the viewport.
// 2. Triangulates each piece and renders it filled using OpenGL.
package render

import (
	"log"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/irfansharif/tangram/internal/board"
	"github.com/irfansharif/tangram/internal/geom"
	"github.com/irfansharif/tangram/internal/palette"
)

const viewportScaleFactor = 0.7

// Interleaved layout: vec2 position + vec4 color, both float32.
const floatsPerVertex = 6
const vertexStride = floatsPerVertex * 4 // bytes

// Renderer draws a tangram assembly. Geometry is generated once per Prepare
// in screen space and transformed by the view matrix in the shader, so
// pan/zoom never requires regeneration.
type Renderer struct {
	w, h             int
	zoom, panX, panY float64

	shader      *Shader
	vao, vbo    uint32
	vertexCount int32
	bufferCap   int // capacity of the VBO, in float32s

	stats Stats
}

// Stats tracks rendering performance metrics.
type Stats struct {
	LastPrepareTimeMs float64 // time spent in last Prepare() call in milliseconds
	LastDrawTimeUs    float64 // time spent in last Draw() call in microseconds
	Triangles         int
}

// NewRenderer creates the renderer and its GL resources. Must run on the
// thread owning the GL context.
func NewRenderer() *Renderer {
	r := &Renderer{zoom: 1.0, shader: NewShader()}

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, vertexStride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, vertexStride, gl.PtrOffset(8))

	return r
}

// SetView updates viewport dimensions and pan/zoom state.
func (r *Renderer) SetView(w, h int, zoom, panX, panY float64) {
	r.w, r.h = w, h
	r.zoom = zoom
	r.panX, r.panY = panX, panY
}

// Prepare regenerates and uploads vertex data for the whole assembly. A
// tangram board holds at most a handful of pieces, so a single buffer upload
// replaces any per-piece slot bookkeeping.
func (r *Renderer) Prepare(b *board.Board, w, h int) {
	startTime := time.Now()

	if w <= 0 || h <= 0 {
		log.Fatalf("cannot prepare renderer: invalid viewport dimensions %dx%d", w, h)
	}
	r.w, r.h = w, h

	vertices := r.generateGeometry(b)
	r.vertexCount = int32(len(vertices) / floatsPerVertex)
	r.stats.Triangles = int(r.vertexCount) / 3

	if len(vertices) > 0 {
		gl.BindVertexArray(r.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
		if len(vertices) > r.bufferCap {
			gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.DYNAMIC_DRAW)
			r.bufferCap = len(vertices)
		} else {
			gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, gl.Ptr(vertices))
		}
	}

	r.stats.LastPrepareTimeMs = float64(time.Since(startTime).Microseconds()) / 1000.0
}

// generateGeometry builds interleaved vertex data for every placed piece, in
// screen space, centered and scaled to fit the viewport.
func (r *Renderer) generateGeometry(b *board.Board) []float32 {
	bounds, ok := b.Bounds()
	if !ok {
		return nil // empty board
	}

	minSide := float64(r.w)
	if float64(r.h) < minSide {
		minSide = float64(r.h)
	}
	side := viewportScaleFactor * minSide
	target := geom.MakeBox(
		(float64(r.w)-side)/2,
		(float64(r.h)-side)/2,
		side, side,
	)
	worldToScreen := geom.FillBox(bounds, target, false)

	vertices := make([]float32, 0, b.Len()*6*floatsPerVertex)
	for _, p := range b.Pieces() {
		screenPath := worldToScreen.MulPoints(p.WorldVertices())

		triangles, err := earClip(screenPath)
		if err != nil {
			log.Printf("WARNING: piece %d (%v) not triangulated: %v", p.ID, p.Kind, err)
			continue
		}

		c := palette.Jittered(palette.ForKind(p.Kind), int64(p.ID))
		for _, tri := range triangles {
			for v := 0; v < 3; v++ {
				vertices = append(vertices,
					float32(tri[v].X), float32(tri[v].Y), // position
					float32(c.R)/255.0, float32(c.G)/255.0,
					float32(c.B)/255.0, float32(c.A)/255.0, // color
				)
			}
		}
	}
	return vertices
}

// Draw renders the prepared assembly.
func (r *Renderer) Draw() {
	startTime := time.Now()

	r.shader.SetView(r.computeViewMatrix())

	if r.vertexCount > 0 {
		gl.BindVertexArray(r.vao)
		gl.DrawArrays(gl.TRIANGLES, 0, r.vertexCount)
	}

	r.stats.LastDrawTimeUs = float64(time.Since(startTime).Microseconds())
}

// Stats returns the current performance statistics.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// computeViewMatrix computes the complete transformation from screen
// coordinates to OpenGL NDC.
func (r *Renderer) computeViewMatrix() [16]float32 {
	transform := geom.Identity
	transform = r.applyZoomTransform(transform)
	transform = r.applyPanTransform(transform)
	transform = r.applyScreenToNDCTransform(transform)
	return affineToMatrix4(transform)
}

// applyZoomTransform applies zoom scaling around the viewport center.
func (r *Renderer) applyZoomTransform(baseTransform geom.Affine) geom.Affine {
	viewportCenterX := float64(r.w) / 2.0
	viewportCenterY := float64(r.h) / 2.0

	translateToOrigin := geom.Translate(-viewportCenterX, -viewportCenterY)
	uniformScale := geom.MakeAffine(r.zoom, 0, 0, 0, r.zoom, 0)
	translateBack := geom.Translate(viewportCenterX, viewportCenterY)

	return translateBack.Mul(uniformScale.Mul(translateToOrigin.Mul(baseTransform)))
}

// applyPanTransform applies pan translation in screen space.
func (r *Renderer) applyPanTransform(baseTransform geom.Affine) geom.Affine {
	return geom.Translate(r.panX, r.panY).Mul(baseTransform)
}

// applyScreenToNDCTransform converts screen coordinates to OpenGL NDC.
func (r *Renderer) applyScreenToNDCTransform(baseTransform geom.Affine) geom.Affine {
	screenToNDC := geom.MakeAffine(
		2.0/float64(r.w), 0, -1,
		0, -2.0/float64(r.h), 1,
	)
	return screenToNDC.Mul(baseTransform)
}

// affineToMatrix4 converts an affine transform to OpenGL 4x4 matrix format.
func affineToMatrix4(transform geom.Affine) [16]float32 {
	return [16]float32{
		float32(transform.A), float32(transform.B), 0, 0,
		float32(transform.D), float32(transform.E), 0, 0,
		0, 0, 1, 0,
		float32(transform.C), float32(transform.F), 0, 1,
	}
}
