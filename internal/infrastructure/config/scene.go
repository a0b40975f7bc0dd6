package config

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownSceneFormat is returned for a scene file whose extension is not
// .json, .xml, .yaml or .yml.
var ErrUnknownSceneFormat = errors.New("unknown scene file format")

// SceneDescription is a parsed scene file: one camera and a set of squares.
type SceneDescription struct {
	Camera  CameraConfig   `yaml:"camera"`
	Squares []SquareConfig `yaml:"squares"`
}

// SquareConfig places one square in world space
type SquareConfig struct {
	Position [2]float64 `yaml:"position"`
	Width    float64    `yaml:"width"`
	Height   float64    `yaml:"height"`
	Rotation float64    `yaml:"rotation"` // degrees
	Color    RGBA       `yaml:"color"`
}

// DecodeScene parses data according to the extension of name.
func DecodeScene(name string, data []byte) (*SceneDescription, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return ParseSceneJSON(data)
	case ".xml":
		return ParseSceneXML(data)
	case ".yaml", ".yml":
		return ParseSceneYAML(data)
	default:
		return nil, fmt.Errorf("%s: %w", name, ErrUnknownSceneFormat)
	}
}

type sceneJSON struct {
	Camera *struct {
		Center   [2]float64 `json:"Center"`
		Width    float64    `json:"Width"`
		Viewport [4]float64 `json:"Viewport"`
		BgColor  RGBA       `json:"BgColor"`
	} `json:"Camera"`
	Square []struct {
		Pos      [2]float64 `json:"Pos"`
		Width    float64    `json:"Width"`
		Height   float64    `json:"Height"`
		Rotation float64    `json:"Rotation"`
		Color    RGBA       `json:"Color"`
	} `json:"Square"`
}

// ParseSceneJSON parses the JSON scene format.
func ParseSceneJSON(data []byte) (*SceneDescription, error) {
	var raw sceneJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse scene json: %w", err)
	}
	if raw.Camera == nil {
		return nil, errors.New("failed to parse scene json: missing Camera")
	}

	desc := &SceneDescription{
		Camera: CameraConfig{
			Center:     raw.Camera.Center,
			Width:      raw.Camera.Width,
			Viewport:   raw.Camera.Viewport,
			Background: raw.Camera.BgColor,
		},
	}
	for _, sq := range raw.Square {
		desc.Squares = append(desc.Squares, SquareConfig{
			Position: sq.Pos,
			Width:    sq.Width,
			Height:   sq.Height,
			Rotation: sq.Rotation,
			Color:    sq.Color,
		})
	}
	return desc, nil
}

type sceneXML struct {
	Camera *struct {
		CenterX  float64 `xml:"CenterX,attr"`
		CenterY  float64 `xml:"CenterY,attr"`
		Width    float64 `xml:"Width,attr"`
		Viewport string  `xml:"Viewport,attr"`
		BgColor  string  `xml:"BgColor,attr"`
	} `xml:"Camera"`
	Square []struct {
		PosX     float64 `xml:"PosX,attr"`
		PosY     float64 `xml:"PosY,attr"`
		Width    float64 `xml:"Width,attr"`
		Height   float64 `xml:"Height,attr"`
		Rotation float64 `xml:"Rotation,attr"`
		Color    string  `xml:"Color,attr"`
	} `xml:"Square"`
}

// ParseSceneXML parses the XML scene format. Vector attributes are
// whitespace separated numbers.
func ParseSceneXML(data []byte) (*SceneDescription, error) {
	var raw sceneXML
	if err := xml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse scene xml: %w", err)
	}
	if raw.Camera == nil {
		return nil, errors.New("failed to parse scene xml: missing Camera")
	}

	desc := &SceneDescription{
		Camera: CameraConfig{
			Center: [2]float64{raw.Camera.CenterX, raw.Camera.CenterY},
			Width:  raw.Camera.Width,
		},
	}
	if err := parseFloats(raw.Camera.Viewport, desc.Camera.Viewport[:]); err != nil {
		return nil, fmt.Errorf("failed to parse scene xml: camera viewport: %w", err)
	}
	if err := parseFloats(raw.Camera.BgColor, desc.Camera.Background[:]); err != nil {
		return nil, fmt.Errorf("failed to parse scene xml: camera color: %w", err)
	}

	for i, sq := range raw.Square {
		s := SquareConfig{
			Position: [2]float64{sq.PosX, sq.PosY},
			Width:    sq.Width,
			Height:   sq.Height,
			Rotation: sq.Rotation,
		}
		if err := parseFloats(sq.Color, s.Color[:]); err != nil {
			return nil, fmt.Errorf("failed to parse scene xml: square %d color: %w", i, err)
		}
		desc.Squares = append(desc.Squares, s)
	}
	return desc, nil
}

// ParseSceneYAML parses the YAML scene format.
func ParseSceneYAML(data []byte) (*SceneDescription, error) {
	var raw struct {
		Camera  *CameraConfig  `yaml:"camera"`
		Squares []SquareConfig `yaml:"squares"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse scene yaml: %w", err)
	}
	if raw.Camera == nil {
		return nil, errors.New("failed to parse scene yaml: missing camera")
	}
	return &SceneDescription{Camera: *raw.Camera, Squares: raw.Squares}, nil
}

func parseFloats(s string, dst []float64) error {
	fields := strings.Fields(s)
	if len(fields) != len(dst) {
		return fmt.Errorf("want %d numbers, got %d in %q", len(dst), len(fields), s)
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}
