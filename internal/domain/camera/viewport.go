package camera

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Viewport is a pixel rectangle on the canvas. X and Y are the lower-left
// corner, measured from the bottom-left of the canvas.
type Viewport struct {
	X, Y          float64
	Width, Height float64
}

// Validate returns ErrInvalidState for non-positive dimensions.
func (v Viewport) Validate() error {
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("viewport %vx%v: %w", v.Width, v.Height, ErrInvalidState)
	}
	return nil
}

// ToScreen converts a point in normalized device coordinates to top-left
// screen pixels on a canvas screenHeight pixels tall.
func (v Viewport) ToScreen(ndc mgl64.Vec2, screenHeight float64) mgl64.Vec2 {
	px := v.X + (ndc.X()+1)/2*v.Width
	py := v.Y + (ndc.Y()+1)/2*v.Height
	return mgl64.Vec2{px, screenHeight - py}
}

// ScreenRect returns the viewport as top-left screen pixel bounds
// (minX, minY, maxX, maxY) on a canvas screenHeight pixels tall.
func (v Viewport) ScreenRect(screenHeight float64) (minX, minY, maxX, maxY float64) {
	return v.X, screenHeight - v.Y - v.Height, v.X + v.Width, screenHeight - v.Y
}
