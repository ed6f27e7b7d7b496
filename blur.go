// Gaussian smoothing. The pipeline applies this before downscaling 1-bit
// images: their dithered high-contrast pixels alias badly under naive
// resampling, a low-pass first keeps the result stable.

package main

import "math"

// GaussianKernel builds a normalized square kernel of size 2*radius+1
// from exp(-(x²+y²)/(2σ²)). Weights always sum to 1; radius 0 yields the
// 1×1 identity kernel.
func GaussianKernel(radius int, sigma float64) [][]float64 {
	size := 2*radius + 1
	kernel := make([][]float64, size)
	sum := 0.0
	for y := -radius; y <= radius; y++ {
		row := make([]float64, size)
		for x := -radius; x <= radius; x++ {
			v := math.Exp(-float64(x*x+y*y) / (2 * sigma * sigma))
			row[x+radius] = v
			sum += v
		}
		kernel[y+radius] = row
	}
	for j := range kernel {
		for i := range kernel[j] {
			kernel[j][i] /= sum
		}
	}
	return kernel
}

// GaussianBlur convolves the grid with a normalized Gaussian kernel,
// per channel. Samples beyond the border clamp to the nearest valid
// coordinate. The output has the same dimensions as the input.
func GaussianBlur(src PixelGrid, radius int, sigma float64) PixelGrid {
	w, h := src.Width(), src.Height()
	if radius <= 0 || w == 0 || h == 0 {
		return src.Clone()
	}

	kernel := GaussianKernel(radius, sigma)
	out := NewPixelGrid(w, h)

	parallelRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				var accR, accG, accB float64
				for j, krow := range kernel {
					yy := clampIndex(y+j-radius, h)
					for i, k := range krow {
						xx := clampIndex(x+i-radius, w)
						p := src[yy][xx]
						accR += float64(p.R) * k
						accG += float64(p.G) * k
						accB += float64(p.B) * k
					}
				}
				out[y][x] = Pixel{
					R: clampByte(int(accR + 0.5)),
					G: clampByte(int(accG + 0.5)),
					B: clampByte(int(accB + 0.5)),
				}
			}
		}
	})
	return out
}
