// Package scene defines the lifecycle every game scene implements.
//
// A scene loads its resources, initializes once they are ready, runs one
// Update and one Draw per frame, and unloads when it stops or hands over to
// its successor. The host loop drives these steps through the Director.
package scene

import (
	"image/color"

	"github.com/younwookim/scenecam/internal/application/state"
	"github.com/younwookim/scenecam/internal/domain/camera"
	"github.com/younwookim/scenecam/internal/domain/renderable"
)

// Context is the drawing surface handed to Draw. It is the only way a scene
// reaches the canvas, so Update cannot draw.
type Context interface {
	Clear(c color.RGBA)
	camera.Surface
	renderable.Surface
}

// Scene is a game screen driven through its lifecycle by the host loop.
type Scene interface {
	// Load issues load requests for every resource the scene needs.
	Load()

	// Resources returns the keys Load requested. The host calls Init only
	// once all of them are ready.
	Resources() []string

	// Init builds the scene from its loaded resources. An error aborts the
	// scene and is fatal to the game.
	Init() error

	// Update advances the scene by one frame. It must never draw.
	Update() error

	// Draw renders the scene. It must never mutate scene state.
	Draw(ctx Context)

	// Unload stops the scene's audio and releases every key Load requested.
	Unload()

	// Next hands the shared camera over and starts the successor scene.
	Next() error

	// Start asks the host to make this scene the active one.
	Start()

	// Stop asks the host to tear this scene down and end the game.
	Stop()

	// State returns where the scene is in its lifecycle.
	State() state.Lifecycle

	// SetState records a lifecycle transition made by the host.
	SetState(next state.Lifecycle) error
}

// Director is the host side of the lifecycle.
type Director interface {
	// Start loads s and makes it the active scene once it initializes.
	Start(s Scene)
	// Stop unloads s and discards it. If no other scene was started, the
	// game loop ends.
	Stop(s Scene)
}

// Base carries the lifecycle state and the director for concrete scenes.
type Base struct {
	director Director
	state    state.Lifecycle
}

// NewBase creates lifecycle bookkeeping reporting to d.
func NewBase(d Director) Base {
	return Base{director: d, state: state.Unloaded}
}

// Director returns the host the scene reports to.
func (b *Base) Director() Director {
	return b.director
}

// State implements Scene
func (b *Base) State() state.Lifecycle {
	return b.state
}

// SetState implements Scene
func (b *Base) SetState(next state.Lifecycle) error {
	s, err := b.state.Transition(next)
	if err != nil {
		return err
	}
	b.state = s
	return nil
}
