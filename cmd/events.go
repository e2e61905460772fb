package main

import (
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/tangram/internal/app"
)

const panStep = 100.0 // pixels per h/j/k/l keypress
const tiltStep = math.Pi / 4

// EventHandlers manages all event handling for the viewer.
type EventHandlers struct {
	application *app.App

	// Drag/pan state (per-gesture), captured on mouse press.
	isDragging                       bool
	dragStartMouseX, dragStartMouseY float64
	dragStartPanX, dragStartPanY     float64

	// Current mouse position in screen coordinates.
	mouseX, mouseY float64
}

// NewEventHandlers creates a new event handlers manager.
func NewEventHandlers(application *app.App) *EventHandlers {
	eh := &EventHandlers{application: application}
	eh.SetupCallbacks(application.Window)
	return eh
}

// SetupCallbacks configures all GLFW event callbacks.
func (eh *EventHandlers) SetupCallbacks(window *glfw.Window) {
	window.SetKeyCallback(func(wnd *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		eh.handleKey(key, action, mods)
	})
	window.SetMouseButtonCallback(func(wnd *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		eh.handleMouseButton(button, action) // for panning
	})
	window.SetCursorPosCallback(func(wnd *glfw.Window, xpos, ypos float64) {
		eh.handleCursorPos(xpos, ypos)
	})
	window.SetScrollCallback(func(wnd *glfw.Window, _, zoomDelta float64) {
		eh.performZoom(zoomDelta)
	})
	window.SetFramebufferSizeCallback(func(wnd *glfw.Window, newW, newH int) {
		eh.handleFramebufferSize(newW, newH)
	})
}

// updateRendererView updates the renderer with the current view state and
// framebuffer size.
func (eh *EventHandlers) updateRendererView() {
	view := eh.application.View
	cw, ch := eh.application.Window.GetFramebufferSize()
	eh.application.Renderer.SetView(cw, ch, view.Zoom, view.PanX, view.PanY)
}

// handleFramebufferSize handles window resize events.
func (eh *EventHandlers) handleFramebufferSize(newW, newH int) {
	eh.application.View.SetViewport(newW, newH)
	eh.application.MarkDirty() // screen-space geometry depends on the viewport
	eh.updateRendererView()
}

// handleKey handles keyboard input events.
func (eh *EventHandlers) handleKey(key glfw.Key, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}

	switch key {
	case glfw.KeyEscape, glfw.KeyQ:
		eh.application.Window.SetShouldClose(true)
	case glfw.KeySpace:
		// Cycle the figure tilt; shift+space goes backwards.
		step := tiltStep
		if (mods & glfw.ModShift) != 0 {
			step = -tiltStep
		}
		eh.application.Rebuild(eh.application.Tilt() + step)
	case glfw.KeyR:
		eh.application.View.Reset()
		eh.updateRendererView()
	case glfw.KeyJ:
		eh.pan(0, -panStep) // pan down
	case glfw.KeyK:
		eh.pan(0, panStep) // pan up
	case glfw.KeyH:
		eh.pan(panStep, 0) // pan right
	case glfw.KeyL:
		eh.pan(-panStep, 0) // pan left
	}
}

func (eh *EventHandlers) pan(dx, dy float64) {
	view := eh.application.View
	view.SetPan(view.PanX+dx, view.PanY+dy)
	eh.updateRendererView()
}

// performZoom adjusts zoom around the viewport center.
func (eh *EventHandlers) performZoom(delta float64) {
	view := eh.application.View
	view.SetZoom(view.Zoom * math.Pow(1.1, delta))
	eh.updateRendererView()
}

// handleMouseButton starts and ends drag-pan gestures.
func (eh *EventHandlers) handleMouseButton(button glfw.MouseButton, action glfw.Action) {
	if button != glfw.MouseButtonLeft {
		return
	}
	switch action {
	case glfw.Press:
		eh.isDragging = true
		eh.dragStartMouseX, eh.dragStartMouseY = eh.mouseX, eh.mouseY
		eh.dragStartPanX, eh.dragStartPanY = eh.application.View.PanX, eh.application.View.PanY
	case glfw.Release:
		eh.isDragging = false
	}
}

// handleCursorPos tracks the mouse and applies drag-panning.
func (eh *EventHandlers) handleCursorPos(xpos, ypos float64) {
	eh.mouseX, eh.mouseY = xpos, ypos
	if !eh.isDragging {
		return
	}
	view := eh.application.View
	view.SetPan(
		eh.dragStartPanX+(xpos-eh.dragStartMouseX),
		eh.dragStartPanY+(ypos-eh.dragStartMouseY),
	)
	eh.updateRendererView()
}
