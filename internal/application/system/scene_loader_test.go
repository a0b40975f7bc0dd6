package system

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/scenecam/internal/domain/camera"
	"github.com/younwookim/scenecam/internal/domain/renderable"
	"github.com/younwookim/scenecam/internal/infrastructure/config"
)

func TestBuildCamera(t *testing.T) {
	cam, err := BuildCamera(config.CameraConfig{
		Center:     [2]float64{20, 60},
		Width:      20,
		Viewport:   [4]float64{20, 40, 600, 300},
		Background: config.RGBA{0, 0, 1, 1},
	})
	require.NoError(t, err)

	assert.Equal(t, mgl64.Vec2{20, 60}, cam.Center())
	assert.Equal(t, 20.0, cam.WorldWidth())
	assert.Equal(t, camera.Viewport{X: 20, Y: 40, Width: 600, Height: 300}, cam.Viewport())
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, cam.Background())
}

func TestBuildCamera_Malformed(t *testing.T) {
	_, err := BuildCamera(config.CameraConfig{Width: 0, Viewport: [4]float64{0, 0, 10, 10}})
	assert.ErrorIs(t, err, camera.ErrInvalidState)

	_, err = BuildCamera(config.CameraConfig{Width: 10})
	assert.ErrorIs(t, err, camera.ErrInvalidState, "zero viewport")
}

func TestBuildRenderables(t *testing.T) {
	rs := BuildRenderables([]config.SquareConfig{
		{Position: [2]float64{20, 60}, Width: 5, Height: 4, Rotation: 30, Color: config.RGBA{1, 1, 1, 1}},
		{Position: [2]float64{1, 2}, Width: 1, Height: 1, Color: config.RGBA{1, 0, 0, 1}},
	})
	require.Len(t, rs, 2)

	xf := rs[0].Transform()
	assert.Equal(t, mgl64.Vec2{20, 60}, xf.Position)
	assert.Equal(t, mgl64.Vec2{5, 4}, xf.Scale)
	assert.Equal(t, 30.0, xf.RotationDegrees)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, rs[1].Color())
}

func TestBuildScripts(t *testing.T) {
	scripts, err := BuildScripts([]config.MotionConfig{
		{Target: 1, Type: "spin", DegreesPerFrame: 1.4},
		{Target: 0, Type: "drift", Velocity: [2]float64{-0.15, 0}, LeftBound: 10, Reset: [2]float64{30, 60}},
	})
	require.NoError(t, err)
	require.Len(t, scripts, 2)

	assert.Equal(t, renderable.Script{Index: 1, Motion: renderable.Spin{DegreesPerFrame: 1.4}}, scripts[0])
	assert.Equal(t, renderable.Script{Index: 0, Motion: renderable.Drift{
		Velocity:  mgl64.Vec2{-0.15, 0},
		LeftBound: 10,
		Reset:     mgl64.Vec2{30, 60},
	}}, scripts[1])

	_, err = BuildScripts([]config.MotionConfig{{Type: "orbit"}})
	assert.Error(t, err)
}
