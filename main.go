// bmpview decodes an uncompressed BMP (optionally zstd-wrapped), prints
// its metadata, runs the transform pipeline once with the requested
// parameters, and writes the result as PNG. It is a headless stand-in
// for an interactive renderer: all presentation state arrives as flags.

package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

func main() {
	var (
		outPath    = flag.String("o", "", "output PNG path (default: input name with .png)")
		paramsPath = flag.String("params", "", "YAML preset file with pipeline parameters")
		scale      = flag.Float64("scale", 1.0, "uniform scale factor, > 0")
		brightness = flag.Int("brightness", 0, "luma shift, negative darkens")
		red        = flag.Bool("red", true, "keep the red channel")
		green      = flag.Bool("green", true, "keep the green channel")
		blue       = flag.Bool("blue", true, "keep the blue channel")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bmpview [flags] <input.bmp[.zst]>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	inputPath := flag.Arg(0)

	params := DefaultParams()
	if *paramsPath != "" {
		p, err := LoadParams(*paramsPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "params error:", err)
			os.Exit(1)
		}
		params = p
	}
	// Explicit flags win over preset values.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scale":
			params.Scale = *scale
		case "brightness":
			params.BrightnessDelta = *brightness
		case "red":
			params.MaskR = *red
		case "green":
			params.MaskG = *green
		case "blue":
			params.MaskB = *blue
		}
	})

	data, err := readInput(inputPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read error:", err)
		os.Exit(1)
	}

	img, err := Decode(data)
	if err != nil {
		fmt.Fprintln(os.Stderr, "decode error:", err)
		os.Exit(1)
	}

	h := img.Header()
	fmt.Printf("File: %s\n", filepath.Base(inputPath))
	fmt.Printf("Size: %s\n", HumanFileSize(int64(len(data))))
	fmt.Printf("Dimensions: %d×%d\n", img.Width, img.Height)
	fmt.Printf("Bits per pixel: %d\n", img.BitsPerPixel)
	fmt.Printf("Data offset: %d\n", h.DataOffset)
	fmt.Printf("Palette entries: %d\n", img.PaletteSize())

	out, err := Process(img, params)
	if err != nil {
		fmt.Fprintln(os.Stderr, "process error:", err)
		os.Exit(1)
	}

	dst := *outPath
	if dst == "" {
		base := strings.TrimSuffix(inputPath, ".zst")
		dst = strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
	}
	if err := writePNG(dst, out); err != nil {
		fmt.Fprintln(os.Stderr, "write error:", err)
		os.Exit(1)
	}
	fmt.Printf("Rendered %s → %s (%d×%d)\n", inputPath, dst, out.Width(), out.Height())
}

func writePNG(path string, grid PixelGrid) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, grid.ToRGBA()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
