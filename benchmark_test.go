package main

import (
	"testing"

	"github.com/anthonynsimon/bild/blur"
	"github.com/nfnt/resize"
)

// Comparative benchmarks: each stage is raced against a third-party
// implementation of the same operation on the same input, so regressions
// show up as a ratio, not just an absolute time.

const benchSize = 256

func benchGrid() PixelGrid {
	g := NewPixelGrid(benchSize, benchSize)
	for y := 0; y < benchSize; y++ {
		for x := 0; x < benchSize; x++ {
			g[y][x] = Pixel{
				R: uint8((x * 17) ^ (y * 31)),
				G: uint8((x * 43) + (y * 13)),
				B: uint8((x * 7) ^ (y * 11)),
			}
		}
	}
	return g
}

func BenchmarkGaussianBlur(b *testing.B) {
	grid := benchGrid()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		GaussianBlur(grid, 1, 0.8)
	}
}

func BenchmarkGaussianBlurBild(b *testing.B) {
	img := benchGrid().ToRGBA()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		blur.Gaussian(img, 0.8)
	}
}

func BenchmarkScaleBilinear(b *testing.B) {
	grid := benchGrid()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ScaleBilinear(grid, 0.5)
	}
}

func BenchmarkScaleBilinearNfnt(b *testing.B) {
	img := benchGrid().ToRGBA()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		resize.Resize(benchSize/2, benchSize/2, img, resize.Bilinear)
	}
}

func BenchmarkDecode24bpp(b *testing.B) {
	rows := make([][]byte, benchSize)
	for y := range rows {
		row := make([]byte, benchSize*3)
		for x := 0; x < benchSize; x++ {
			row[x*3] = uint8(x ^ y)
			row[x*3+1] = uint8(x + y)
			row[x*3+2] = uint8(x * y)
		}
		rows[y] = row
	}
	data := buildBMP(b, bmpSpec{width: benchSize, height: -benchSize, bpp: 24, rows: rows})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decode(data); err != nil {
			b.Fatalf("decode failed: %v", err)
		}
	}
}

func BenchmarkProcess(b *testing.B) {
	rows := make([][]byte, benchSize)
	for y := range rows {
		row := make([]byte, benchSize*3)
		for x := 0; x < benchSize; x++ {
			row[x*3] = uint8(x ^ y)
			row[x*3+1] = uint8(x + y)
			row[x*3+2] = uint8(x * y)
		}
		rows[y] = row
	}
	img, err := Decode(buildBMP(b, bmpSpec{width: benchSize, height: -benchSize, bpp: 24, rows: rows}))
	if err != nil {
		b.Fatalf("decode failed: %v", err)
	}
	p := DefaultParams()
	p.Scale = 0.5
	p.BrightnessDelta = 20
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Process(img, p); err != nil {
			b.Fatalf("process failed: %v", err)
		}
	}
}
