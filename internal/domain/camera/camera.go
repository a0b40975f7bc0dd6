// Package camera maps a window of world coordinates onto a pixel viewport.
//
// A Camera owns a world-space center and width; the height follows from the
// viewport aspect ratio so the world window is never stretched. Several
// cameras can render the same objects in one frame, each into its own
// viewport with its own background.
package camera

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidState is returned when a camera would be built with a
// non-positive world width or viewport dimension.
var ErrInvalidState = errors.New("invalid camera state")

// DefaultMinWorldWidth is the smallest world width Zoom will shrink to.
const DefaultMinWorldWidth = 0.1

// Eye distance and clip planes of the orthographic projection.
const (
	eyeZ = 10.0
	near = 0.0
	far  = 1000.0
)

// View is the rendering context a camera establishes for subsequent draws.
type View struct {
	Viewport       Viewport
	Background     color.RGBA
	ViewProjection mgl64.Mat4
}

// Surface receives the view a camera activates.
type Surface interface {
	SetView(v View)
}

// Camera is a world-coordinate window mapped onto a pixel viewport.
type Camera struct {
	center     mgl64.Vec2
	width      float64
	viewport   Viewport
	background color.RGBA
	minWidth   float64
}

// New creates a camera centered at center showing width world units across
// viewport. The background defaults to opaque white.
func New(center mgl64.Vec2, width float64, viewport Viewport) (*Camera, error) {
	if width <= 0 {
		return nil, fmt.Errorf("world width %v: %w", width, ErrInvalidState)
	}
	if err := viewport.Validate(); err != nil {
		return nil, err
	}
	return &Camera{
		center:     center,
		width:      width,
		viewport:   viewport,
		background: color.RGBA{255, 255, 255, 255},
		minWidth:   DefaultMinWorldWidth,
	}, nil
}

// Center returns the world-space center of the window.
func (c *Camera) Center() mgl64.Vec2 {
	return c.center
}

// WorldWidth returns the window width in world units.
func (c *Camera) WorldWidth() float64 {
	return c.width
}

// WorldHeight returns the window height in world units, locked to the
// viewport aspect ratio.
func (c *Camera) WorldHeight() float64 {
	return c.width * c.viewport.Height / c.viewport.Width
}

// Viewport returns the pixel rectangle the camera renders into.
func (c *Camera) Viewport() Viewport {
	return c.viewport
}

// Background returns the color the viewport is cleared to.
func (c *Camera) Background() color.RGBA {
	return c.background
}

// SetBackground sets the color the viewport is cleared to.
func (c *Camera) SetBackground(bg color.RGBA) {
	c.background = bg
}

// SetMinWorldWidth sets the zoom clamp. Non-positive values are ignored.
func (c *Camera) SetMinWorldWidth(w float64) {
	if w > 0 {
		c.minWidth = w
	}
}

// SetCenter moves the window to center.
func (c *Camera) SetCenter(center mgl64.Vec2) {
	c.center = center
}

// Pan moves the window center by (dx, dy) world units.
func (c *Camera) Pan(dx, dy float64) {
	c.center = c.center.Add(mgl64.Vec2{dx, dy})
}

// Zoom shrinks the window by delta world units (negative delta widens it).
// The width never drops below the minimum world width.
func (c *Camera) Zoom(delta float64) {
	c.SetWorldWidth(c.width - delta)
}

// SetWorldWidth sets the window width, clamped to the minimum world width.
func (c *Camera) SetWorldWidth(w float64) {
	if w < c.minWidth {
		w = c.minWidth
	}
	c.width = w
}

// MoveViewport shifts the viewport origin by (dx, dy) pixels. The size is
// unchanged, so the viewport stays valid.
func (c *Camera) MoveViewport(dx, dy float64) {
	c.viewport.X += dx
	c.viewport.Y += dy
}

// ViewProjection returns the matrix that maps the world window onto normalized device
// coordinates: an orthographic projection over a look-at from +Z onto the
// window center.
func (c *Camera) ViewProjection() mgl64.Mat4 {
	halfW := c.width / 2
	halfH := c.WorldHeight() / 2
	view := mgl64.LookAt(
		c.center.X(), c.center.Y(), eyeZ,
		c.center.X(), c.center.Y(), 0,
		0, 1, 0,
	)
	proj := mgl64.Ortho(-halfW, halfW, -halfH, halfH, near, far)
	return proj.Mul4(view)
}

// SetViewAndCameraMatrix makes this camera's viewport, background and
// transform the active context for the draws that follow.
func (c *Camera) SetViewAndCameraMatrix(s Surface) {
	s.SetView(View{
		Viewport:       c.viewport,
		Background:     c.background,
		ViewProjection: c.ViewProjection(),
	})
}

// Clone returns an independent copy of the camera.
func (c *Camera) Clone() *Camera {
	cp := *c
	return &cp
}
