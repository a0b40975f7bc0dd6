package main

import (
	"fmt"
	"io/fs"
	"log"

	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/younwookim/scenecam/internal/application/game"
	"github.com/younwookim/scenecam/internal/application/scene/level"
	"github.com/younwookim/scenecam/internal/application/system"
	"github.com/younwookim/scenecam/internal/domain/camera"
	"github.com/younwookim/scenecam/internal/domain/resource"
	"github.com/younwookim/scenecam/internal/infrastructure/assets"
	"github.com/younwookim/scenecam/internal/infrastructure/audio"
	"github.com/younwookim/scenecam/internal/infrastructure/config"
)

type appOptions struct {
	startLevel string
	mute       bool
	headless   bool
	logger     *log.Logger
}

type app struct {
	game    *game.Game
	store   *resource.Store
	mixer   *audio.Mixer
	catalog *level.Catalog
	handoff *resource.Handoff[*camera.Camera]
}

// settled waits for every in-flight fetch before polling, so a headless run
// sees resources become ready on the same frame every time.
type settled struct {
	*assets.Loader
}

func (s settled) Poll() int {
	s.Wait()
	return s.Loader.Poll()
}

// newApp wires the store, loaders, mixer and levels, publishes the bootstrap
// camera and starts the first level.
func newApp(fsys fs.FS, cfg *config.GameConfig, input system.ActionSource, opts appOptions) (*app, error) {
	logger := opts.logger
	if logger == nil {
		logger = log.Default()
	}
	store := resource.NewStoreWithLogger(logger)

	var mixer *audio.Mixer
	if opts.mute {
		mixer = audio.NewSilentMixer(fsys, store)
	} else {
		mixer = audio.NewMixer(ebaudio.NewContext(cfg.Audio.SampleRate), fsys, store)
	}
	scenes := assets.NewLoader(fsys, store, level.DecodeScene)

	var pollers []game.Poller
	if opts.headless {
		pollers = []game.Poller{settled{scenes}, settled{mixer.Loader()}}
	} else {
		pollers = []game.Poller{scenes, mixer.Loader()}
	}

	g := game.New(store, cfg.Display.ScreenWidth, cfg.Display.ScreenHeight,
		game.WithPollers(pollers...),
		game.WithTickers(mixer),
		game.WithLogger(logger),
	)
	g.SetDT(1.0 / float64(cfg.Display.Framerate))

	bootstrap, err := system.BuildCamera(cfg.BootstrapCamera)
	if err != nil {
		return nil, fmt.Errorf("bootstrap camera: %w", err)
	}
	handoff := resource.NewHandoff[*camera.Camera](store, resource.DefaultHandoffKey)
	handoff.Publish(bootstrap)

	catalog := level.NewCatalog(cfg.Levels, level.Deps{
		Director: g,
		Scenes:   scenes,
		Audio:    mixer,
		Input:    input,
		Handoff:  handoff,
		Controls: cfg.Controls,
		Logger:   logger,
	})

	start := opts.startLevel
	if start == "" {
		start = cfg.StartLevel
	}
	first, err := catalog.New(start)
	if err != nil {
		return nil, err
	}
	first.Start()

	return &app{
		game:    g,
		store:   store,
		mixer:   mixer,
		catalog: catalog,
		handoff: handoff,
	}, nil
}
