package system

import "github.com/younwookim/scenecam/internal/infrastructure/config"

// Intent represents something the player asked the scene to do this frame
type Intent interface {
	isIntent()
}

// QuitIntent ends the scene and the game loop
type QuitIntent struct{}

func (QuitIntent) isIntent() {}

// NextIntent hands over to the successor scene
type NextIntent struct{}

func (NextIntent) isIntent() {}

// PanIntent moves the world window of every camera
type PanIntent struct {
	DX, DY float64 // World units
}

func (PanIntent) isIntent() {}

// ZoomIntent shrinks the world window of every camera
type ZoomIntent struct {
	Delta float64 // World units, negative widens
}

func (ZoomIntent) isIntent() {}

// ViewportIntent moves the viewport of the secondary camera
type ViewportIntent struct {
	DX, DY float64 // Pixels
}

func (ViewportIntent) isIntent() {}

// Intents turns the frame's actions into intents. Quit and Next come first
// so a scene can stop before applying camera changes.
func Intents(actions ActionSet, c config.ControlsConfig) []Intent {
	if actions.Empty() {
		return nil
	}

	var out []Intent
	if actions.Has(ActionQuit) {
		out = append(out, QuitIntent{})
	}
	if actions.Has(ActionNext) {
		out = append(out, NextIntent{})
	}

	var pan PanIntent
	if actions.Has(ActionPanUp) {
		pan.DY += c.PanStep
	}
	if actions.Has(ActionPanDown) {
		pan.DY -= c.PanStep
	}
	if actions.Has(ActionPanRight) {
		pan.DX += c.PanStep
	}
	if actions.Has(ActionPanLeft) {
		pan.DX -= c.PanStep
	}
	if pan != (PanIntent{}) {
		out = append(out, pan)
	}

	var zoom ZoomIntent
	if actions.Has(ActionZoomIn) {
		zoom.Delta += c.ZoomStep
	}
	if actions.Has(ActionZoomOut) {
		zoom.Delta -= c.ZoomStep
	}
	if zoom != (ZoomIntent{}) {
		out = append(out, zoom)
	}

	var vp ViewportIntent
	if actions.Has(ActionViewportUp) {
		vp.DY += c.ViewportStep
	}
	if actions.Has(ActionViewportDown) {
		vp.DY -= c.ViewportStep
	}
	if actions.Has(ActionViewportRight) {
		vp.DX += c.ViewportStep
	}
	if actions.Has(ActionViewportLeft) {
		vp.DX -= c.ViewportStep
	}
	if vp != (ViewportIntent{}) {
		out = append(out, vp)
	}

	return out
}
