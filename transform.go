// Per-pixel color transforms: channel masking and luma-only brightness.

package main

import "math"

// MaskChannels zeroes every channel whose keep flag is false, in place,
// and returns the grid. All flags true is the identity.
func MaskChannels(grid PixelGrid, keepR, keepG, keepB bool) PixelGrid {
	if keepR && keepG && keepB {
		return grid
	}
	for y := range grid {
		row := grid[y]
		for x := range row {
			if !keepR {
				row[x].R = 0
			}
			if !keepG {
				row[x].G = 0
			}
			if !keepB {
				row[x].B = 0
			}
		}
	}
	return grid
}

// AdjustBrightness shifts perceived brightness by delta without moving
// color balance: each pixel is taken to BT.601 YUV, the delta is added to
// Y only, Y is clamped to its range, and the pixel is converted back with
// channels clamped to [0,255]. In place; returns the grid. delta 0 is the
// identity within rounding.
func AdjustBrightness(grid PixelGrid, delta int) PixelGrid {
	if delta == 0 {
		return grid
	}
	d := float64(delta)
	for y := range grid {
		row := grid[y]
		for x := range row {
			r := float64(row[x].R)
			g := float64(row[x].G)
			b := float64(row[x].B)

			luma := 0.299*r + 0.587*g + 0.114*b
			u := -0.14713*r - 0.28886*g + 0.436*b
			v := 0.615*r - 0.51499*g - 0.10001*b

			luma = clampFloat(luma+d, 0, 255)

			row[x] = Pixel{
				R: clampByte(int(math.Round(luma + 1.13983*v))),
				G: clampByte(int(math.Round(luma - 0.39465*u - 0.58060*v))),
				B: clampByte(int(math.Round(luma + 2.03211*u))),
			}
		}
	}
	return grid
}
