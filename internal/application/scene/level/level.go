// Package level provides the playable scene: a set of squares viewed
// through a primary camera read from the scene file and a secondary camera
// handed over from the previous scene.
package level

import (
	"fmt"
	"image/color"
	"log"

	"github.com/younwookim/scenecam/internal/application/scene"
	"github.com/younwookim/scenecam/internal/application/system"
	"github.com/younwookim/scenecam/internal/domain/camera"
	"github.com/younwookim/scenecam/internal/domain/renderable"
	"github.com/younwookim/scenecam/internal/domain/resource"
	"github.com/younwookim/scenecam/internal/infrastructure/config"
)

// SceneFiles loads parsed scene descriptions through the resource store.
type SceneFiles interface {
	Load(path string)
	Get(path string) (any, error)
	Unload(path string)
}

// Audio plays the level's background music.
type Audio interface {
	Load(path string)
	Unload(path string)
	PlayBackground(path string, fadeSeconds float64) error
	StopBackground()
	SetBackgroundVolume(level float64)
}

// Deps are the collaborators every level shares.
type Deps struct {
	Director scene.Director
	Scenes   SceneFiles
	Audio    Audio
	Input    system.ActionSource
	Handoff  *resource.Handoff[*camera.Camera]
	Controls config.ControlsConfig
	Logger   *log.Logger
}

// Level is a scene configured entirely by its LevelConfig.
type Level struct {
	scene.Base

	name    string
	cfg     config.LevelConfig
	deps    Deps
	catalog *Catalog
	scripts []renderable.Script

	primary   *camera.Camera
	secondary *camera.Camera
	cameras   []*camera.Camera
	objects   []*renderable.Renderable
}

var _ scene.Scene = (*Level)(nil)

// Name returns the catalog name of the level.
func (l *Level) Name() string {
	return l.name
}

// Load implements scene.Scene
func (l *Level) Load() {
	l.deps.Scenes.Load(l.cfg.SceneFile)
	if l.cfg.Audio != "" {
		l.deps.Audio.Load(l.cfg.Audio)
	}
}

// Resources implements scene.Scene
func (l *Level) Resources() []string {
	keys := []string{l.cfg.SceneFile}
	if l.cfg.Audio != "" {
		keys = append(keys, l.cfg.Audio)
	}
	return keys
}

// Init implements scene.Scene
func (l *Level) Init() error {
	l.deps.Audio.SetBackgroundVolume(l.cfg.Volume)

	v, err := l.deps.Scenes.Get(l.cfg.SceneFile)
	if err != nil {
		return fmt.Errorf("level %s: %w", l.name, err)
	}
	desc, ok := v.(*config.SceneDescription)
	if !ok {
		return fmt.Errorf("level %s: %s: %w", l.name, l.cfg.SceneFile, resource.ErrTypeMismatch)
	}

	primary, err := system.BuildCamera(desc.Camera)
	if err != nil {
		return fmt.Errorf("level %s: %w", l.name, err)
	}
	if l.cfg.PrimaryBackground != nil {
		primary.SetBackground(l.cfg.PrimaryBackground.Color())
	}
	primary.SetMinWorldWidth(l.deps.Controls.MinWorldWidth)

	secondary, err := l.deps.Handoff.Take()
	if err != nil {
		return fmt.Errorf("level %s: secondary camera: %w", l.name, err)
	}
	secondary.SetMinWorldWidth(l.deps.Controls.MinWorldWidth)

	l.primary = primary
	l.secondary = secondary
	l.cameras = []*camera.Camera{primary, secondary}
	l.objects = system.BuildRenderables(desc.Squares)

	if l.cfg.Audio != "" {
		if err := l.deps.Audio.PlayBackground(l.cfg.Audio, l.cfg.FadeSeconds); err != nil {
			return fmt.Errorf("level %s: %w", l.name, err)
		}
	}
	return nil
}

// Update implements scene.Scene
func (l *Level) Update() error {
	renderable.Animate(l.objects, l.scripts)

	for _, intent := range system.Intents(l.deps.Input.Actions(), l.deps.Controls) {
		switch in := intent.(type) {
		case system.QuitIntent:
			l.Stop()
			return nil
		case system.NextIntent:
			return l.Next()
		case system.PanIntent:
			for _, c := range l.cameras {
				c.Pan(in.DX, in.DY)
			}
		case system.ZoomIntent:
			for _, c := range l.cameras {
				c.Zoom(in.Delta)
			}
		case system.ViewportIntent:
			l.secondary.MoveViewport(in.DX, in.DY)
		}
	}
	return nil
}

// Draw implements scene.Scene
func (l *Level) Draw(ctx scene.Context) {
	ctx.Clear(l.clearColor())
	for _, c := range l.cameras {
		c.SetViewAndCameraMatrix(ctx)
		for _, o := range l.objects {
			o.Draw(ctx, c)
		}
	}
}

func (l *Level) clearColor() color.RGBA {
	return l.cfg.ClearColor.Color()
}

// Unload implements scene.Scene
func (l *Level) Unload() {
	l.deps.Audio.StopBackground()
	l.deps.Scenes.Unload(l.cfg.SceneFile)
	if l.cfg.Audio != "" {
		l.deps.Audio.Unload(l.cfg.Audio)
	}
}

// Next implements scene.Scene. The secondary camera is published before the
// successor is started, so it is in place before the successor's Init.
func (l *Level) Next() error {
	successor, err := l.catalog.New(l.cfg.Next)
	if err != nil {
		return fmt.Errorf("level %s: next: %w", l.name, err)
	}
	l.deps.Handoff.Publish(l.secondary)
	l.deps.Logger.Printf("level %s: handing camera to %s", l.name, successor.Name())
	successor.Start()
	l.Director().Stop(l)
	return nil
}

// Start implements scene.Scene
func (l *Level) Start() {
	l.Director().Start(l)
}

// Stop implements scene.Scene
func (l *Level) Stop() {
	l.Director().Stop(l)
}

// Primary returns the camera read from the scene file.
func (l *Level) Primary() *camera.Camera {
	return l.primary
}

// Secondary returns the camera handed over from the previous scene.
func (l *Level) Secondary() *camera.Camera {
	return l.secondary
}

// Cameras returns the cameras in draw order.
func (l *Level) Cameras() []*camera.Camera {
	return l.cameras
}

// Renderables returns the squares in draw order.
func (l *Level) Renderables() []*renderable.Renderable {
	return l.objects
}
