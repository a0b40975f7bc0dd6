package level

import (
	"fmt"
	"log"

	"github.com/younwookim/scenecam/internal/application/scene"
	"github.com/younwookim/scenecam/internal/application/system"
	"github.com/younwookim/scenecam/internal/infrastructure/config"
)

// Catalog builds levels by name, so a level can construct its successor
// without knowing its concrete configuration.
type Catalog struct {
	levels map[string]config.LevelConfig
	deps   Deps
}

// NewCatalog creates a catalog of levels sharing deps.
func NewCatalog(levels map[string]config.LevelConfig, deps Deps) *Catalog {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	return &Catalog{levels: levels, deps: deps}
}

// New constructs the level called name in the Unloaded state.
func (c *Catalog) New(name string) (*Level, error) {
	cfg, ok := c.levels[name]
	if !ok {
		return nil, fmt.Errorf("unknown level %q", name)
	}
	scripts, err := system.BuildScripts(cfg.Motion)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", name, err)
	}
	return &Level{
		Base:    scene.NewBase(c.deps.Director),
		name:    name,
		cfg:     cfg,
		deps:    c.deps,
		catalog: c,
		scripts: scripts,
	}, nil
}

// DecodeScene decodes a scene file for an assets.Loader.
func DecodeScene(path string, data []byte) (any, error) {
	desc, err := config.DecodeScene(path, data)
	if err != nil {
		return nil, err
	}
	return desc, nil
}
