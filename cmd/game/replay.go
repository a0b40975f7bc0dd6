package main

import (
	"errors"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/scenecam/internal/application/game"
	"github.com/younwookim/scenecam/internal/domain/camera"
)

// discard is a draw context that renders nothing.
type discard struct{}

func (discard) Clear(color.RGBA)                {}
func (discard) SetView(camera.View)             {}
func (discard) DrawQuad(mgl64.Mat4, color.RGBA) {}

// runHeadless steps g without a window until the game ends, frames frames
// have run, or done reports true. It returns the number of frames stepped.
func runHeadless(g *game.Game, frames int, done func() bool) (int, error) {
	n := 0
	for frames <= 0 || n < frames {
		if done != nil && done() {
			return n, nil
		}
		err := g.Update()
		n++
		if errors.Is(err, ebiten.Termination) {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		g.DrawTo(discard{})
	}
	return n, nil
}
