package renderable

import "github.com/go-gl/mathgl/mgl64"

// Motion advances a transform by one frame of scripted movement.
type Motion interface {
	Step(t *Transform)
}

// Spin rotates by a fixed number of degrees per frame.
type Spin struct {
	DegreesPerFrame float64
}

// Step implements Motion
func (s Spin) Step(t *Transform) {
	t.IncRotationByDegree(s.DegreesPerFrame)
}

// Drift translates by a fixed velocity per frame and teleports to Reset once
// the x position falls below LeftBound.
type Drift struct {
	Velocity  mgl64.Vec2
	LeftBound float64
	Reset     mgl64.Vec2
}

// Step implements Motion
func (d Drift) Step(t *Transform) {
	t.IncXPosBy(d.Velocity.X())
	t.IncYPosBy(d.Velocity.Y())
	if t.XPos() < d.LeftBound {
		t.SetPosition(d.Reset.X(), d.Reset.Y())
	}
}

// Script binds a motion to the renderable at Index in a scene's sequence.
type Script struct {
	Index  int
	Motion Motion
}

// Animate applies each script to its target. Scripts whose index is out of
// range are skipped.
func Animate(objects []*Renderable, scripts []Script) {
	for _, s := range scripts {
		if s.Index < 0 || s.Index >= len(objects) {
			continue
		}
		s.Motion.Step(objects[s.Index].Xform())
	}
}
