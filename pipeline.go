// The transform pipeline: a pure function of (DecodedImage, params) with
// a fixed stage order. Every invocation recomputes from the decoded grid,
// so identical inputs always produce bitwise-identical output.

package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// ErrInvalidParameter reports a caller contract violation in
// PipelineParams (currently: scale must be > 0).
var ErrInvalidParameter = errors.New("pipeline: invalid parameter")

// Smoothing constants for 1-bit downscales.
const (
	ditherBlurRadius = 1
	ditherBlurSigma  = 0.8
)

// PipelineParams is the caller-supplied configuration, re-supplied on
// every invocation. The zero value is not useful; start from
// DefaultParams.
type PipelineParams struct {
	Scale           float64 `yaml:"scale"`
	BrightnessDelta int     `yaml:"brightnessDelta"`
	MaskR           bool    `yaml:"maskR"`
	MaskG           bool    `yaml:"maskG"`
	MaskB           bool    `yaml:"maskB"`
}

// DefaultParams returns the pass-through configuration: scale 1, no
// brightness shift, all channels kept.
func DefaultParams() PipelineParams {
	return PipelineParams{Scale: 1.0, MaskR: true, MaskG: true, MaskB: true}
}

// LoadParams reads a YAML preset file over the defaults, so presets may
// name only the fields they change.
func LoadParams(path string) (PipelineParams, error) {
	p := DefaultParams()
	data, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("pipeline: parse params %s: %w", path, err)
	}
	return p, nil
}

// Process runs the fixed transform chain on a copy of the decoded grid:
// Gaussian smoothing (only for 1-bit sources being downscaled), channel
// mask, brightness, bilinear resample (only when scale ≠ 1). The decoded
// image is never mutated and may be processed concurrently.
func Process(img *DecodedImage, p PipelineParams) (PixelGrid, error) {
	if p.Scale <= 0 {
		return nil, fmt.Errorf("%w: scale %v, must be > 0", ErrInvalidParameter, p.Scale)
	}

	grid := img.Grid.Clone()

	if img.BitsPerPixel == 1 && p.Scale < 1.0 {
		grid = GaussianBlur(grid, ditherBlurRadius, ditherBlurSigma)
	}

	grid = MaskChannels(grid, p.MaskR, p.MaskG, p.MaskB)
	grid = AdjustBrightness(grid, p.BrightnessDelta)

	if p.Scale != 1.0 {
		grid = ScaleBilinear(grid, p.Scale)
	}
	return grid, nil
}
