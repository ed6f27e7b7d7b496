package main

import (
	"image"
	"image/color"
)

// Pixel is a single RGB sample. Plain value, no identity.
type Pixel struct {
	R, G, B uint8
}

// PixelGrid is a rectangular grid of pixels, row 0 is the topmost
// displayed row regardless of how the source file stored its rows.
type PixelGrid [][]Pixel

// NewPixelGrid allocates a w×h grid backed by a single pixel slice.
func NewPixelGrid(w, h int) PixelGrid {
	flat := make([]Pixel, w*h)
	g := make(PixelGrid, h)
	for y := range g {
		g[y] = flat[y*w : (y+1)*w : (y+1)*w]
	}
	return g
}

func (g PixelGrid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

func (g PixelGrid) Height() int {
	return len(g)
}

// Clone returns a deep copy. Transform stages always operate on a clone,
// the decoder's grid is never aliased.
func (g PixelGrid) Clone() PixelGrid {
	out := NewPixelGrid(g.Width(), g.Height())
	for y := range g {
		copy(out[y], g[y])
	}
	return out
}

// ToRGBA copies the grid into an *image.RGBA for the rendering boundary.
func (g PixelGrid) ToRGBA() *image.RGBA {
	w, h := g.Width(), g.Height()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := g[y][x]
			img.SetRGBA(x, y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return img
}

// GridFromImage copies any image.Image into a PixelGrid, dropping alpha.
func GridFromImage(src image.Image) PixelGrid {
	b := src.Bounds()
	g := NewPixelGrid(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.RGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
			g[y][x] = Pixel{R: c.R, G: c.G, B: c.B}
		}
	}
	return g
}
