package game

import (
	"image/color"
	"io"
	"log"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/scenecam/internal/application/scene"
	"github.com/younwookim/scenecam/internal/application/state"
	"github.com/younwookim/scenecam/internal/domain/camera"
	"github.com/younwookim/scenecam/internal/domain/resource"
)

// mockScene is a test double for Scene interface
type mockScene struct {
	scene.Base
	store *resource.Store
	keys  []string

	loadCalled   int
	initCalled   int
	updateCalled int
	drawCalled   int
	unloadCalled int

	initErr   error
	updateErr error
	onUpdate  func()
}

func newMockScene(g *Game, keys ...string) *mockScene {
	return &mockScene{Base: scene.NewBase(g), store: g.store, keys: keys}
}

func (m *mockScene) Load() {
	m.loadCalled++
	for _, k := range m.keys {
		m.store.LoadRequested(k)
	}
}

func (m *mockScene) Resources() []string { return m.keys }

func (m *mockScene) Init() error {
	m.initCalled++
	return m.initErr
}

func (m *mockScene) Update() error {
	m.updateCalled++
	if m.onUpdate != nil {
		m.onUpdate()
	}
	return m.updateErr
}

func (m *mockScene) Draw(scene.Context) { m.drawCalled++ }

func (m *mockScene) Unload() {
	m.unloadCalled++
	for _, k := range m.keys {
		m.store.Unload(k)
	}
}

func (m *mockScene) Next() error { return nil }
func (m *mockScene) Start()      { m.Director().Start(m) }
func (m *mockScene) Stop()       { m.Director().Stop(m) }

type nopContext struct{}

func (nopContext) Clear(color.RGBA)                {}
func (nopContext) SetView(camera.View)             {}
func (nopContext) DrawQuad(mgl64.Mat4, color.RGBA) {}

type countingPoller struct{ polls int }

func (p *countingPoller) Poll() int {
	p.polls++
	return 0
}

type countingTicker struct{ elapsed float64 }

func (t *countingTicker) Update(dt float64) { t.elapsed += dt }

func newGame(opts ...Option) *Game {
	logger := log.New(io.Discard, "", 0)
	opts = append([]Option{WithLogger(logger)}, opts...)
	return New(resource.NewStoreWithLogger(logger), 320, 240, opts...)
}

func TestGame_StartWithoutResourcesRunsOnFirstUpdate(t *testing.T) {
	g := newGame()
	s := newMockScene(g)

	s.Start()
	assert.Equal(t, state.Loading, s.State())
	assert.Equal(t, 1, s.loadCalled)

	require.NoError(t, g.Update())
	assert.Equal(t, state.Running, s.State())
	assert.Equal(t, 1, s.initCalled)
	assert.Equal(t, 1, s.updateCalled)
	assert.Same(t, s, g.Current())
}

func TestGame_InitWaitsForResources(t *testing.T) {
	g := newGame()
	s := newMockScene(g, "scene.json")
	s.Start()

	for i := 0; i < 3; i++ {
		require.NoError(t, g.Update())
	}
	assert.Equal(t, 0, s.initCalled, "init must wait for pending resources")
	assert.Equal(t, 0, s.updateCalled)
	assert.Equal(t, state.Loading, s.State())

	g.store.Set("scene.json", "ready")
	require.NoError(t, g.Update())
	assert.Equal(t, 1, s.initCalled)
	assert.Equal(t, state.Running, s.State())
}

func TestGame_FailedResourceIsFatal(t *testing.T) {
	g := newGame()
	s := newMockScene(g, "scene.json")
	s.Start()
	g.store.Fail("scene.json", assert.AnError)

	err := g.Update()
	require.Error(t, err)
	assert.ErrorIs(t, err, resource.ErrLoadFailed)
	assert.Equal(t, state.Terminated, s.State())
	assert.Equal(t, 0, s.initCalled)
	assert.False(t, g.store.Has("scene.json"), "aborted scene releases its keys")
}

func TestGame_InitErrorIsFatal(t *testing.T) {
	g := newGame()
	s := newMockScene(g)
	s.initErr = assert.AnError
	s.Start()

	err := g.Update()
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, state.Terminated, s.State())
	assert.Equal(t, 0, s.updateCalled)
}

func TestGame_LoadTimeout(t *testing.T) {
	g := newGame(WithLoadTimeout(2))
	s := newMockScene(g, "slow.wav")
	s.Start()

	require.NoError(t, g.Update())
	require.NoError(t, g.Update())
	err := g.Update()
	assert.ErrorIs(t, err, ErrLoadTimeout)
	assert.Equal(t, state.Terminated, s.State())
}

func TestGame_StopEndsLoop(t *testing.T) {
	g := newGame()
	s := newMockScene(g)
	s.onUpdate = s.Stop
	s.Start()

	err := g.Update()
	assert.ErrorIs(t, err, ebiten.Termination)
	assert.Equal(t, state.Terminated, s.State())
	assert.Equal(t, 1, s.unloadCalled)
	assert.Nil(t, g.Current())
}

func TestGame_SceneTransition(t *testing.T) {
	g := newGame()
	scene1 := newMockScene(g, "a")
	scene2 := newMockScene(g, "b")
	g.store.Set("a", 1)
	g.store.Set("b", 2)

	// scene1 will hand over to scene2 on its first update
	scene1.onUpdate = func() {
		scene2.Start()
		scene1.Stop()
	}
	scene1.Start()

	require.NoError(t, g.Update())
	assert.Equal(t, state.Terminated, scene1.State())
	assert.Equal(t, state.Loading, scene2.State())
	assert.Nil(t, g.Current())

	require.NoError(t, g.Update())
	assert.Equal(t, state.Running, scene2.State())
	assert.Equal(t, 1, scene2.updateCalled)
	assert.Equal(t, 1, scene1.updateCalled, "stopped scene is never updated again")
}

func TestGame_UpdateError(t *testing.T) {
	g := newGame()
	s := newMockScene(g)
	s.updateErr = assert.AnError
	s.Start()

	err := g.Update()
	assert.Error(t, err, "Error should propagate from scene")
}

func TestGame_PollersAndTickers(t *testing.T) {
	p := &countingPoller{}
	tk := &countingTicker{}
	g := newGame(WithPollers(p), WithTickers(tk))
	g.SetDT(0.5)
	s := newMockScene(g, "a")
	s.Start()

	require.NoError(t, g.Update())
	assert.Equal(t, 1, p.polls)
	assert.Zero(t, tk.elapsed, "tickers wait for a running scene")

	g.store.Set("a", true)
	require.NoError(t, g.Update())
	require.NoError(t, g.Update())
	assert.Equal(t, 3, p.polls)
	assert.InDelta(t, 1.0, tk.elapsed, 1e-9)
	assert.Equal(t, 2, g.Frames())
}

func TestGame_DrawOnlyWhenRunning(t *testing.T) {
	g := newGame()
	s := newMockScene(g, "a")
	s.Start()

	g.DrawTo(nopContext{})
	assert.Equal(t, 0, s.drawCalled, "loading scene is not drawn")

	g.store.Set("a", true)
	require.NoError(t, g.Update())
	g.DrawTo(nopContext{})
	assert.Equal(t, 1, s.drawCalled)
}

func TestGame_Layout(t *testing.T) {
	g := newGame()

	w, h := g.Layout(640, 480)
	assert.Equal(t, 320, w)
	assert.Equal(t, 240, h)
}
