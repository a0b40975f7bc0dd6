// Package render draws scenes onto an ebiten image.
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/scenecam/internal/domain/camera"
)

var (
	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image
)

func white() *ebiten.Image {
	if whiteSubImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

var quadIndices = []uint16{0, 1, 2, 0, 2, 3}

// Unit square centered at the origin, counter-clockwise.
var unitQuad = [4]mgl64.Vec4{
	{-0.5, -0.5, 0, 1},
	{0.5, -0.5, 0, 1},
	{0.5, 0.5, 0, 1},
	{-0.5, 0.5, 0, 1},
}

// Canvas draws through the active camera view into a screen image.
type Canvas struct {
	dst    *ebiten.Image
	height float64
	view   camera.View
	target *ebiten.Image
}

// NewCanvas wraps dst for one frame of drawing.
func NewCanvas(dst *ebiten.Image) *Canvas {
	return &Canvas{
		dst:    dst,
		height: float64(dst.Bounds().Dy()),
	}
}

// Clear fills the whole canvas and drops the active view.
func (c *Canvas) Clear(col color.RGBA) {
	c.dst.Fill(col)
	c.target = nil
}

// SetView makes v the active view: later quads are projected through its
// matrix and clipped to its viewport, which is filled with its background.
func (c *Canvas) SetView(v camera.View) {
	c.view = v
	r := ViewportRect(v.Viewport, c.height).Intersect(c.dst.Bounds())
	if r.Empty() {
		c.target = nil
		return
	}
	c.target = c.dst.SubImage(r).(*ebiten.Image)
	c.target.Fill(v.Background)
}

// DrawQuad draws a unit square through mvp. Nothing is drawn before a view
// is active or when the viewport is off screen.
func (c *Canvas) DrawQuad(mvp mgl64.Mat4, col color.RGBA) {
	if c.target == nil {
		return
	}
	pts := QuadCorners(mvp, c.view.Viewport, c.height)
	r, g, b, a := float32(col.R)/255, float32(col.G)/255, float32(col.B)/255, float32(col.A)/255
	vs := make([]ebiten.Vertex, 0, len(pts))
	for _, p := range pts {
		vs = append(vs, ebiten.Vertex{
			DstX:   float32(p.X()),
			DstY:   float32(p.Y()),
			SrcX:   1,
			SrcY:   1,
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		})
	}
	c.target.DrawTriangles(vs, quadIndices, white(), &ebiten.DrawTrianglesOptions{})
}

// QuadCorners projects the unit square through mvp into screen pixels of
// viewport vp on a canvas screenHeight pixels tall.
func QuadCorners(mvp mgl64.Mat4, vp camera.Viewport, screenHeight float64) [4]mgl64.Vec2 {
	var out [4]mgl64.Vec2
	for i, corner := range unitQuad {
		clip := mvp.Mul4x1(corner)
		ndc := mgl64.Vec2{clip.X() / clip.W(), clip.Y() / clip.W()}
		out[i] = vp.ToScreen(ndc, screenHeight)
	}
	return out
}

// ViewportRect returns the pixel rectangle covered by vp, rounded outward.
func ViewportRect(vp camera.Viewport, screenHeight float64) image.Rectangle {
	minX, minY, maxX, maxY := vp.ScreenRect(screenHeight)
	return image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	)
}
