// BMP container decoding: fixed-offset header fields, optional color
// table, and per-depth unpacking of uncompressed 1/4/8/24-bit pixel data
// into a PixelGrid.

package main

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Decode failure kinds. Decoding fails fast with one of these; it never
// substitutes a default image. Wrapped values carry field/row context.
var (
	ErrMalformedHeader        = errors.New("bmp: malformed header")
	ErrUnsupportedBitDepth    = errors.New("bmp: unsupported bit depth")
	ErrUnsupportedCompression = errors.New("bmp: unsupported compression")
	ErrPaletteSizeMismatch    = errors.New("bmp: palette size mismatch")
	ErrTruncatedPixelData     = errors.New("bmp: truncated pixel data")
)

const (
	bmpSignature = "BM"

	// File header (14 bytes) plus BITMAPINFOHEADER (40 bytes). Palette
	// entries, when present, follow immediately after.
	bmpHeaderSize = 54
)

// Header holds the container fields the decoder needs, read from their
// fixed offsets.
type Header struct {
	FileSize    uint32
	DataOffset  uint32
	Width       int32
	Height      int32 // negative means rows are stored top-down
	BitCount    uint16
	Compression uint32
	ColorsUsed  uint32
}

// TopDown reports whether pixel rows are stored top-to-bottom.
func (h Header) TopDown() bool {
	return h.Height < 0
}

// AbsHeight returns the display height regardless of storage orientation.
func (h Header) AbsHeight() int {
	if h.Height < 0 {
		return int(-h.Height)
	}
	return int(h.Height)
}

// RowStride returns the number of bytes one stored row occupies. Rows are
// padded to a 4-byte boundary; this is a format invariant.
func (h Header) RowStride() int {
	return (int(h.BitCount)*int(h.Width) + 31) / 32 * 4
}

// paletteEntries returns the number of color table entries the file
// declares, falling back to the depth default when colorsUsed is zero.
func (h Header) paletteEntries() int {
	if h.BitCount > 8 {
		return 0
	}
	if h.ColorsUsed > 0 {
		return int(h.ColorsUsed)
	}
	if h.BitCount == 8 {
		return 256
	}
	return 1 << h.BitCount
}

// ParseHeader reads and validates the fixed-layout container header.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < bmpHeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes, need at least %d", ErrMalformedHeader, len(data), bmpHeaderSize)
	}
	if string(data[0:2]) != bmpSignature {
		return Header{}, fmt.Errorf("%w: bad signature %q", ErrMalformedHeader, data[0:2])
	}

	h := Header{
		FileSize:    binary.LittleEndian.Uint32(data[0x02:0x06]),
		DataOffset:  binary.LittleEndian.Uint32(data[0x0A:0x0E]),
		Width:       int32(binary.LittleEndian.Uint32(data[0x12:0x16])),
		Height:      int32(binary.LittleEndian.Uint32(data[0x16:0x1A])),
		BitCount:    binary.LittleEndian.Uint16(data[0x1C:0x1E]),
		Compression: binary.LittleEndian.Uint32(data[0x1E:0x22]),
		ColorsUsed:  binary.LittleEndian.Uint32(data[0x2E:0x32]),
	}

	if h.Width <= 0 {
		return Header{}, fmt.Errorf("%w: width %d", ErrMalformedHeader, h.Width)
	}
	if h.Height == 0 {
		return Header{}, fmt.Errorf("%w: height 0", ErrMalformedHeader)
	}
	switch h.BitCount {
	case 1, 4, 8, 24:
	default:
		return Header{}, fmt.Errorf("%w: %d bpp", ErrUnsupportedBitDepth, h.BitCount)
	}
	if h.Compression != 0 {
		return Header{}, fmt.Errorf("%w: compression %d (only BI_RGB)", ErrUnsupportedCompression, h.Compression)
	}
	return h, nil
}

// parsePalette reads the color table for depths ≤ 8. Entries are stored
// (B,G,R,reserved) and exposed already reordered to RGB. The table sits
// at dataOffset − 4*entries; when that lands outside the file the fixed
// post-header offset is used instead, and the entry count is clamped to
// the bytes actually present.
func parsePalette(data []byte, h Header) ([]Pixel, error) {
	entries := h.paletteEntries()
	if entries == 0 {
		return nil, nil
	}

	palBytes := entries * 4
	offset := int(h.DataOffset) - palBytes
	if offset < 0 || offset+palBytes > len(data) {
		offset = bmpHeaderSize
	}
	end := offset + palBytes
	if end > len(data) {
		end = len(data)
	}
	if end < offset {
		end = offset
	}
	entries = (end - offset) / 4

	if entries <= 0 {
		return nil, fmt.Errorf("%w: %d bpp requires a color table, found none", ErrPaletteSizeMismatch, h.BitCount)
	}
	if h.BitCount == 1 && entries != 2 {
		return nil, fmt.Errorf("%w: 1 bpp requires exactly 2 entries, got %d", ErrPaletteSizeMismatch, entries)
	}

	pal := make([]Pixel, entries)
	for i := 0; i < entries; i++ {
		e := data[offset+i*4:]
		pal[i] = Pixel{R: e[2], G: e[1], B: e[0]}
	}
	return pal, nil
}

// paletteColor resolves a per-pixel index. Out-of-range indices in
// otherwise valid files resolve to black rather than failing the decode.
func paletteColor(pal []Pixel, idx int) Pixel {
	if idx < 0 || idx >= len(pal) {
		return Pixel{}
	}
	return pal[idx]
}

// unpackFunc extracts the pixel at column x from one stored row. Each
// supported depth supplies its own rule; the traversal loop is shared.
type unpackFunc func(row []byte, x int, pal []Pixel) Pixel

func unpack1bpp(row []byte, x int, pal []Pixel) Pixel {
	bit := (row[x/8] >> (7 - uint(x%8))) & 1
	return pal[bit]
}

func unpack4bpp(row []byte, x int, pal []Pixel) Pixel {
	b := row[x/2]
	var idx byte
	if x%2 == 0 {
		idx = b >> 4
	} else {
		idx = b & 0x0F
	}
	return paletteColor(pal, int(idx))
}

func unpack8bpp(row []byte, x int, pal []Pixel) Pixel {
	return paletteColor(pal, int(row[x]))
}

func unpack24bpp(row []byte, x int, _ []Pixel) Pixel {
	// Stored B,G,R.
	return Pixel{R: row[x*3+2], G: row[x*3+1], B: row[x*3]}
}

// rowPayloadBytes returns how many bytes of one stored row actually carry
// pixels (the stride may add padding beyond this).
func rowPayloadBytes(bpp, width int) int {
	return (bpp*width + 7) / 8
}

// DecodedImage is the immutable result of a successful decode. The grid
// is owned by the image; transform stages work on clones.
type DecodedImage struct {
	Width        int
	Height       int
	BitsPerPixel int
	Grid         PixelGrid

	header  Header
	palette []Pixel
}

// Header returns the parsed container header, for metadata reporting.
func (d *DecodedImage) Header() Header {
	return d.header
}

// PaletteSize returns the number of color table entries the file carried.
func (d *DecodedImage) PaletteSize() int {
	return len(d.palette)
}

// Decode parses an uncompressed BMP buffer into a DecodedImage. It is
// pure: the same bytes always produce the same grid.
func Decode(data []byte) (*DecodedImage, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	var unpack unpackFunc
	switch h.BitCount {
	case 1:
		unpack = unpack1bpp
	case 4:
		unpack = unpack4bpp
	case 8:
		unpack = unpack8bpp
	case 24:
		unpack = unpack24bpp
	}

	var pal []Pixel
	if h.BitCount <= 8 {
		pal, err = parsePalette(data, h)
		if err != nil {
			return nil, err
		}
	}

	width := int(h.Width)
	height := h.AbsHeight()
	stride := h.RowStride()
	payload := rowPayloadBytes(int(h.BitCount), width)
	topDown := h.TopDown()

	grid := NewPixelGrid(width, height)
	for y := 0; y < height; y++ {
		srcRow := y
		if !topDown {
			srcRow = height - 1 - y
		}
		off := int(h.DataOffset) + srcRow*stride
		if off < 0 || off+payload > len(data) {
			return nil, fmt.Errorf("%w: row %d needs bytes [%d:%d), file has %d", ErrTruncatedPixelData, srcRow, off, off+payload, len(data))
		}
		row := data[off : off+payload]
		for x := 0; x < width; x++ {
			grid[y][x] = unpack(row, x, pal)
		}
	}

	return &DecodedImage{
		Width:        width,
		Height:       height,
		BitsPerPixel: int(h.BitCount),
		Grid:         grid,
		header:       h,
		palette:      pal,
	}, nil
}
