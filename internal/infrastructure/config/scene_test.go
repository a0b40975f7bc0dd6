package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSceneJSON(t *testing.T) {
	data := []byte(`{
		"Camera": {"Center": [20, 60], "Width": 20, "Viewport": [20, 40, 600, 300], "BgColor": [0, 0, 1, 1]},
		"Square": [
			{"Pos": [20, 60], "Width": 5, "Height": 5, "Rotation": 30, "Color": [1, 1, 1, 1]},
			{"Pos": [25, 61], "Width": 2, "Height": 3, "Rotation": 0, "Color": [1, 0, 0, 1]}
		]
	}`)

	desc, err := ParseSceneJSON(data)
	require.NoError(t, err)

	assert.Equal(t, 20.0, desc.Camera.Width)
	assert.Equal(t, RGBA{0, 0, 1, 1}, desc.Camera.Background)
	require.Len(t, desc.Squares, 2)
	assert.Equal(t, [2]float64{25, 61}, desc.Squares[1].Position)
	assert.Equal(t, 3.0, desc.Squares[1].Height)
	assert.Equal(t, 30.0, desc.Squares[0].Rotation)
}

func TestParseSceneXML(t *testing.T) {
	data := []byte(`<Level>
		<Camera CenterX="20" CenterY="60" Width="20" Viewport="20 40 600 300" BgColor="0 0 1 1.0"/>
		<Square PosX="20" PosY="60" Width="5" Height="5" Rotation="30" Color="1 1 1 1"/>
		<Square PosX="21" PosY="62" Width="2" Height="3" Rotation="0" Color="1 0 0 1"/>
	</Level>`)

	desc, err := ParseSceneXML(data)
	require.NoError(t, err)

	assert.Equal(t, [2]float64{20, 60}, desc.Camera.Center)
	assert.Equal(t, [4]float64{20, 40, 600, 300}, desc.Camera.Viewport)
	assert.Equal(t, RGBA{0, 0, 1, 1}, desc.Camera.Background)
	require.Len(t, desc.Squares, 2)
	assert.Equal(t, [2]float64{21, 62}, desc.Squares[1].Position)
	assert.Equal(t, RGBA{1, 0, 0, 1}, desc.Squares[1].Color)
}

func TestParseSceneXML_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not xml", `<<<`},
		{"no camera", `<Level><Square PosX="1"/></Level>`},
		{"short viewport", `<Level><Camera Width="1" Viewport="1 2 3" BgColor="0 0 0 1"/></Level>`},
		{"bad color", `<Level><Camera Width="1" Viewport="1 2 3 4" BgColor="0 0 0 x"/></Level>`},
		{"bad square color", `<Level><Camera Width="1" Viewport="1 2 3 4" BgColor="0 0 0 1"/><Square Color="1"/></Level>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSceneXML([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestParseSceneYAML(t *testing.T) {
	data := []byte(`
camera:
  center: [1, 2]
  width: 8
  viewport: [0, 0, 200, 100]
  background: [0.5, 0.5, 0.5, 1]
squares:
  - position: [3, 4]
    width: 1
    height: 2
    rotation: 45
    color: [1, 0, 0, 1]
`)

	desc, err := ParseSceneYAML(data)
	require.NoError(t, err)
	assert.Equal(t, [2]float64{1, 2}, desc.Camera.Center)
	assert.Equal(t, 8.0, desc.Camera.Width)
	require.Len(t, desc.Squares, 1)
	assert.Equal(t, 45.0, desc.Squares[0].Rotation)

	_, err = ParseSceneYAML([]byte("squares: []\n"))
	assert.Error(t, err, "camera is required")
}

func TestDecodeScene_ByExtension(t *testing.T) {
	_, err := DecodeScene("level.toml", []byte("x"))
	assert.ErrorIs(t, err, ErrUnknownSceneFormat)

	_, err = DecodeScene("LEVEL.JSON", []byte(`{"Camera": {"Width": 1}}`))
	assert.NoError(t, err)

	_, err = DecodeScene("level.json", []byte(`{"Square": []}`))
	assert.Error(t, err, "camera is required")

	_, err = DecodeScene("level.yml", []byte("camera: {width: 2}\n"))
	assert.NoError(t, err)
}
