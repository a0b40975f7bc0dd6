package system

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/scenecam/internal/domain/camera"
	"github.com/younwookim/scenecam/internal/domain/renderable"
	"github.com/younwookim/scenecam/internal/infrastructure/config"
)

// BuildCamera creates a camera from its config description
func BuildCamera(cfg config.CameraConfig) (*camera.Camera, error) {
	cam, err := camera.New(
		mgl64.Vec2{cfg.Center[0], cfg.Center[1]},
		cfg.Width,
		camera.Viewport{
			X:      cfg.Viewport[0],
			Y:      cfg.Viewport[1],
			Width:  cfg.Viewport[2],
			Height: cfg.Viewport[3],
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build camera: %w", err)
	}
	cam.SetBackground(cfg.Background.Color())
	return cam, nil
}

// BuildRenderables creates one renderable per square, in file order
func BuildRenderables(squares []config.SquareConfig) []*renderable.Renderable {
	out := make([]*renderable.Renderable, 0, len(squares))
	for _, sq := range squares {
		r := renderable.New(sq.Color.Color())
		xf := r.Xform()
		xf.SetPosition(sq.Position[0], sq.Position[1])
		xf.SetSize(sq.Width, sq.Height)
		xf.IncRotationByDegree(sq.Rotation)
		out = append(out, r)
	}
	return out
}

// BuildScripts converts motion configs into renderable scripts
func BuildScripts(motions []config.MotionConfig) ([]renderable.Script, error) {
	scripts := make([]renderable.Script, 0, len(motions))
	for i, m := range motions {
		var motion renderable.Motion
		switch m.Type {
		case "spin":
			motion = renderable.Spin{DegreesPerFrame: m.DegreesPerFrame}
		case "drift":
			motion = renderable.Drift{
				Velocity:  mgl64.Vec2{m.Velocity[0], m.Velocity[1]},
				LeftBound: m.LeftBound,
				Reset:     mgl64.Vec2{m.Reset[0], m.Reset[1]},
			}
		default:
			return nil, fmt.Errorf("motion %d: unknown type %q", i, m.Type)
		}
		scripts = append(scripts, renderable.Script{Index: m.Target, Motion: motion})
	}
	return scripts, nil
}
