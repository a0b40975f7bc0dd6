// Package game provides the main game loop that drives scenes through their
// lifecycle and handles scene transitions.
package game

import (
	"errors"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/scenecam/internal/application/scene"
	"github.com/younwookim/scenecam/internal/application/state"
	"github.com/younwookim/scenecam/internal/domain/resource"
	"github.com/younwookim/scenecam/internal/infrastructure/render"
)

// ErrLoadTimeout is returned when a scene's resources are not ready within
// the configured number of frames.
var ErrLoadTimeout = errors.New("scene load timed out")

// Poller applies finished background loads to the store.
type Poller interface {
	Poll() int
}

// Ticker advances a time-based subsystem such as the audio fade.
type Ticker interface {
	Update(dt float64)
}

// Game implements ebiten.Game and scene.Director.
type Game struct {
	store   *resource.Store
	current scene.Scene
	pending scene.Scene
	waited  int

	pollers     []Poller
	tickers     []Ticker
	loadTimeout int
	logger      *log.Logger

	screenW int
	screenH int
	dt      float64
	frames  int
}

var (
	_ ebiten.Game    = (*Game)(nil)
	_ scene.Director = (*Game)(nil)
)

// Option configures a Game
type Option func(*Game)

// WithPollers registers loaders polled at the start of every frame.
func WithPollers(p ...Poller) Option {
	return func(g *Game) { g.pollers = append(g.pollers, p...) }
}

// WithTickers registers subsystems advanced every running frame.
func WithTickers(t ...Ticker) Option {
	return func(g *Game) { g.tickers = append(g.tickers, t...) }
}

// WithLoadTimeout fails a scene whose resources are not ready after frames
// frames. Zero waits forever.
func WithLoadTimeout(frames int) Option {
	return func(g *Game) { g.loadTimeout = frames }
}

// WithLogger sets the logger for lifecycle transitions.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// New creates a Game with no scene. Start the first scene with Start.
func New(store *resource.Store, screenW, screenH int, opts ...Option) *Game {
	g := &Game{
		store:   store,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / 60.0, // Default to 60 FPS
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Start implements scene.Director. The scene's resources are requested now;
// it becomes current once they are all ready.
func (g *Game) Start(s scene.Scene) {
	if err := g.transition(s, state.Loading); err != nil {
		g.logger.Printf("game: start: %v", err)
		return
	}
	s.Load()
	if g.pending != nil && g.pending != s {
		g.logger.Printf("game: start supersedes a scene still loading")
		g.discard(g.pending)
	}
	g.pending = s
	g.waited = 0
}

// Stop implements scene.Director
func (g *Game) Stop(s scene.Scene) {
	g.discard(s)
	if g.current == s {
		g.current = nil
	}
	if g.pending == s {
		g.pending = nil
	}
}

func (g *Game) discard(s scene.Scene) {
	if s.State() == state.Terminated {
		return
	}
	if err := g.transition(s, state.Unloading); err != nil {
		g.logger.Printf("game: stop: %v", err)
		return
	}
	s.Unload()
	if err := g.transition(s, state.Terminated); err != nil {
		g.logger.Printf("game: stop: %v", err)
	}
}

// Update polls loaders, activates a loaded scene and advances the current
// one. Implements ebiten.Game interface.
func (g *Game) Update() error {
	for _, p := range g.pollers {
		p.Poll()
	}

	if g.pending != nil {
		if err := g.activate(); err != nil {
			return err
		}
	}

	if g.current != nil && g.current.State() == state.Running {
		for _, t := range g.tickers {
			t.Update(g.dt)
		}
		if err := g.current.Update(); err != nil {
			return err
		}
		g.frames++
	}

	if g.current == nil && g.pending == nil {
		return ebiten.Termination
	}
	return nil
}

// activate initializes the pending scene once its resources are ready. A
// failed resource or a failed Init is fatal.
func (g *Game) activate() error {
	s := g.pending
	ready, err := g.resourcesReady(s)
	if err != nil {
		g.Stop(s)
		return fmt.Errorf("scene load: %w", err)
	}
	if !ready {
		g.waited++
		if g.loadTimeout > 0 && g.waited > g.loadTimeout {
			g.Stop(s)
			return fmt.Errorf("after %d frames: %w", g.loadTimeout, ErrLoadTimeout)
		}
		return nil
	}

	if err := s.Init(); err != nil {
		g.Stop(s)
		return fmt.Errorf("scene init: %w", err)
	}
	if err := g.transition(s, state.Initialized); err != nil {
		return err
	}
	if err := g.transition(s, state.Running); err != nil {
		return err
	}

	if g.current != nil && g.current != s {
		g.discard(g.current)
	}
	g.current = s
	g.pending = nil
	g.logger.Printf("game: scene running after %d frames of loading", g.waited)
	return nil
}

func (g *Game) transition(s scene.Scene, next state.Lifecycle) error {
	prev := s.State()
	if err := s.SetState(next); err != nil {
		return err
	}
	g.logger.Printf("game: scene %s -> %s", prev, next)
	return nil
}

func (g *Game) resourcesReady(s scene.Scene) (bool, error) {
	ready := true
	for _, key := range s.Resources() {
		switch g.store.Status(key) {
		case resource.StatusReady:
		case resource.StatusPending:
			ready = false
		default:
			_, err := g.store.Get(key)
			return false, err
		}
	}
	return ready, nil
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.DrawTo(render.NewCanvas(screen))
}

// DrawTo renders the current scene into ctx. Nothing is drawn while no
// scene is running.
func (g *Game) DrawTo(ctx scene.Context) {
	if g.current == nil || g.current.State() != state.Running {
		return
	}
	g.current.Draw(ctx)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// SetDT sets the delta time used for updates.
// Useful for testing or custom frame rates.
func (g *Game) SetDT(dt float64) {
	g.dt = dt
}

// Current returns the running scene, or nil.
func (g *Game) Current() scene.Scene {
	return g.current
}

// Frames returns the number of frames the current scenes have run.
func (g *Game) Frames() int {
	return g.frames
}
