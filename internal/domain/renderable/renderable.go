package renderable

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/scenecam/internal/domain/camera"
)

// Surface draws a unit square centered at the origin through mvp.
type Surface interface {
	DrawQuad(mvp mgl64.Mat4, c color.RGBA)
}

// Renderable is a colored unit square placed by its transform.
type Renderable struct {
	xform Transform
	color color.RGBA
}

// New creates a renderable with an identity transform.
func New(c color.RGBA) *Renderable {
	return &Renderable{xform: NewTransform(), color: c}
}

// Xform returns the transform for mutation by update logic.
func (r *Renderable) Xform() *Transform {
	return &r.xform
}

// Transform returns a copy of the current transform.
func (r *Renderable) Transform() Transform {
	return r.xform
}

// Color returns the fill color.
func (r *Renderable) Color() color.RGBA {
	return r.color
}

// SetColor sets the fill color.
func (r *Renderable) SetColor(c color.RGBA) {
	r.color = c
}

// MVP returns the model-view-projection matrix for drawing through cam.
func (r *Renderable) MVP(cam *camera.Camera) mgl64.Mat4 {
	return cam.ViewProjection().Mul4(r.xform.Model())
}

// Draw renders the object through cam. It only reads the renderable and the
// camera, so drawing through several cameras in any order is consistent.
func (r *Renderable) Draw(s Surface, cam *camera.Camera) {
	s.DrawQuad(r.MVP(cam), r.color)
}
