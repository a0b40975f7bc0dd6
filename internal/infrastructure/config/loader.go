package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Loader loads game configuration from JSON files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// FS returns the filesystem the loader reads from
func (l *Loader) FS() fs.FS {
	return l.fsys
}

// LoadGame loads and validates game.json
func (l *Loader) LoadGame() (*GameConfig, error) {
	data, err := fs.ReadFile(l.fsys, "game.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read game.json: %w", err)
	}

	var cfg GameConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game.json: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game.json: %w", err)
	}

	return &cfg, nil
}

// LoadScene reads and parses a scene file directly, bypassing the resource
// store. Tools and tests use it; scenes load through the asset loader.
func (l *Loader) LoadScene(name string) (*SceneDescription, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene %s: %w", name, err)
	}
	return DecodeScene(name, data)
}

// Validate checks the references between sections of the config.
func (c *GameConfig) Validate() error {
	if c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0 {
		return errors.New("display size must be positive")
	}
	if c.Display.Framerate <= 0 {
		return errors.New("framerate must be positive")
	}
	if _, ok := c.Levels[c.StartLevel]; !ok {
		return fmt.Errorf("start level %q is not defined", c.StartLevel)
	}
	for name, lvl := range c.Levels {
		if lvl.SceneFile == "" {
			return fmt.Errorf("level %q has no scene file", name)
		}
		if _, ok := c.Levels[lvl.Next]; !ok {
			return fmt.Errorf("level %q: next level %q is not defined", name, lvl.Next)
		}
		for i, m := range lvl.Motion {
			if m.Type != "spin" && m.Type != "drift" {
				return fmt.Errorf("level %q: motion %d: unknown type %q", name, i, m.Type)
			}
		}
	}
	return nil
}
