// Package app encapsulates the viewer's state: the assembled board, the view
// transform, and the renderer driving it.
package app

import (
	"log"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/tangram/internal/board"
	"github.com/irfansharif/tangram/internal/render"
)

// App encapsulates the main application state and logic.
type App struct {
	Window   *glfw.Window
	Renderer *render.Renderer
	View     *View
	Board    *board.Board

	tilt  float64 // current figure tilt, radians
	dirty bool    // whether the renderer needs re-preparation
}

// NewApp creates a new application instance and assembles the initial figure.
func NewApp(window *glfw.Window, view *View, tilt float64) *App {
	a := &App{
		Window:   window,
		Renderer: render.NewRenderer(),
		View:     view,
	}
	a.Rebuild(tilt)
	return a
}

// Rebuild reassembles the demonstration figure at the given tilt, driving
// every placement through the solver. Failed solves abort the rebuild and
// keep the previous board.
func (a *App) Rebuild(tilt float64) {
	b, err := BuildFigure(tilt)
	if err != nil {
		log.Printf("Failed to assemble figure at tilt %.2f: %v", tilt, err)
		return
	}
	a.Board = b
	a.tilt = tilt
	a.dirty = true
}

// Tilt returns the current figure tilt in radians.
func (a *App) Tilt() float64 { return a.tilt }

// MarkDirty flags the renderer for re-preparation (e.g. after a resize).
func (a *App) MarkDirty() { a.dirty = true }

// PrepareIfDirty re-prepares the renderer when the board or viewport changed.
func (a *App) PrepareIfDirty() {
	if !a.dirty {
		return
	}
	a.Renderer.Prepare(a.Board, a.View.Width, a.View.Height)
	a.dirty = false
}

// SatisfiedConnections counts how many committed connections currently hold.
func (a *App) SatisfiedConnections() (satisfied, total int) {
	conns := a.Board.Connections()
	for _, c := range conns {
		if a.Board.Satisfied(c) {
			satisfied++
		}
	}
	return satisfied, len(conns)
}
