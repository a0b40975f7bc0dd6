// Package renderable holds drawable world objects and their scripted motion.
package renderable

import "github.com/go-gl/mathgl/mgl64"

// Transform is the local placement of an object in world space.
type Transform struct {
	Position        mgl64.Vec2
	RotationDegrees float64
	Scale           mgl64.Vec2
}

// NewTransform returns a transform at the origin with unit scale.
func NewTransform() Transform {
	return Transform{Scale: mgl64.Vec2{1, 1}}
}

// XPos returns the x position
func (t *Transform) XPos() float64 { return t.Position.X() }

// YPos returns the y position
func (t *Transform) YPos() float64 { return t.Position.Y() }

// SetPosition moves the object to (x, y).
func (t *Transform) SetPosition(x, y float64) {
	t.Position = mgl64.Vec2{x, y}
}

// IncXPosBy moves the object along x.
func (t *Transform) IncXPosBy(dx float64) {
	t.Position[0] += dx
}

// IncYPosBy moves the object along y.
func (t *Transform) IncYPosBy(dy float64) {
	t.Position[1] += dy
}

// IncRotationByDegree adds deg to the rotation. Degrees are unbounded.
func (t *Transform) IncRotationByDegree(deg float64) {
	t.RotationDegrees += deg
}

// SetSize sets the scale, which for a unit square is its width and height.
func (t *Transform) SetSize(w, h float64) {
	t.Scale = mgl64.Vec2{w, h}
}

// Model returns the translate * rotate * scale matrix for the transform.
func (t Transform) Model() mgl64.Mat4 {
	tr := mgl64.Translate3D(t.Position.X(), t.Position.Y(), 0)
	rot := mgl64.HomogRotate3DZ(mgl64.DegToRad(t.RotationDegrees))
	sc := mgl64.Scale3D(t.Scale.X(), t.Scale.Y(), 1)
	return tr.Mul4(rot).Mul4(sc)
}
