package config

import "image/color"

// GameConfig is the root config for game.json
type GameConfig struct {
	Display         DisplayConfig            `json:"display"`
	Audio           AudioConfig              `json:"audio"`
	BootstrapCamera CameraConfig             `json:"bootstrapCamera"`
	Controls        ControlsConfig           `json:"controls"`
	Bindings        map[string]BindingConfig `json:"bindings"`
	Levels          map[string]LevelConfig   `json:"levels"`
	StartLevel      string                   `json:"startLevel"`
}

type DisplayConfig struct {
	ScreenWidth  int    `json:"screenWidth"`
	ScreenHeight int    `json:"screenHeight"`
	Scale        int    `json:"scale"`
	Framerate    int    `json:"framerate"`
	Title        string `json:"title"`
}

type AudioConfig struct {
	Enabled    bool `json:"enabled"`
	SampleRate int  `json:"sampleRate"`
}

// CameraConfig describes a camera in world and pixel units
type CameraConfig struct {
	Center     [2]float64 `json:"center" yaml:"center"`
	Width      float64    `json:"width" yaml:"width"`
	Viewport   [4]float64 `json:"viewport" yaml:"viewport"` // originX, originY, width, height
	Background RGBA       `json:"background" yaml:"background"`
}

// ControlsConfig holds the per-frame step sizes of the camera controls
type ControlsConfig struct {
	PanStep       float64 `json:"panStep"`
	ZoomStep      float64 `json:"zoomStep"`
	ViewportStep  float64 `json:"viewportStep"`
	MinWorldWidth float64 `json:"minWorldWidth"`
}

// BindingConfig binds a logical action to a key and a trigger
// ("pressed", "justPressed" or "released")
type BindingConfig struct {
	Key     string `json:"key"`
	Trigger string `json:"trigger"`
}

// LevelConfig describes one scene: what it loads and how it moves
type LevelConfig struct {
	SceneFile         string         `json:"sceneFile"`
	Audio             string         `json:"audio"`
	Volume            float64        `json:"volume"`
	FadeSeconds       float64        `json:"fadeSeconds"`
	ClearColor        RGBA           `json:"clearColor"`
	PrimaryBackground *RGBA          `json:"primaryBackground,omitempty"`
	Motion            []MotionConfig `json:"motion"`
	Next              string         `json:"next"`
}

// MotionConfig scripts one renderable. Type is "spin" or "drift".
type MotionConfig struct {
	Target          int        `json:"target"`
	Type            string     `json:"type"`
	DegreesPerFrame float64    `json:"degreesPerFrame,omitempty"`
	Velocity        [2]float64 `json:"velocity,omitempty"`
	LeftBound       float64    `json:"leftBound,omitempty"`
	Reset           [2]float64 `json:"reset,omitempty"`
}

// RGBA is a color with components in [0, 1]
type RGBA [4]float64

// Color converts to an 8-bit color, clamping out-of-range components.
func (c RGBA) Color() color.RGBA {
	return color.RGBA{
		R: channel(c[0]),
		G: channel(c[1]),
		B: channel(c[2]),
		A: channel(c[3]),
	}
}

func channel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}
