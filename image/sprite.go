package image

import (
	"fmt"
	"slices"

	"github.com/bodgit/cpcimage/ga"
	"github.com/bodgit/cpcimage/pixels"
)

// Sprite is a grid of screen bytes encoded for a single mode.
type Sprite struct {
	mode    ga.Mode
	palette *ga.Palette
	data    [][]byte
}

// NewSprite wraps rows of bytes. The palette may be nil. Rows are not
// copied.
func NewSprite(mode ga.Mode, palette *ga.Palette, data [][]byte) *Sprite {
	for y, row := range data {
		if len(row) != len(data[0]) {
			panic(fmt.Sprintf("image: sprite row %d has %d bytes, expected %d", y, len(row), len(data[0])))
		}
	}
	return &Sprite{mode: mode, palette: palette, data: data}
}

// FromPens encodes rows of pens, padding partial bytes with pen 0.
func FromPens(mode ga.Mode, palette *ga.Palette, pens [][]ga.Pen) *Sprite {
	data := make([][]byte, len(pens))
	for y, row := range pens {
		data[y] = pixels.PensToBytesWithReplacement(mode, row, 0)
	}
	return NewSprite(mode, palette, data)
}

// FromSpriteBytes splits linear sprite data into rows of bytesWidth bytes.
func FromSpriteBytes(data []byte, bytesWidth int, mode ga.Mode, palette *ga.Palette) (*Sprite, error) {
	if bytesWidth <= 0 || len(data)%bytesWidth != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of width %d", ErrBadSize, len(data), bytesWidth)
	}
	rows := make([][]byte, 0, len(data)/bytesWidth)
	for i := 0; i < len(data); i += bytesWidth {
		rows = append(rows, slices.Clone(data[i:i+bytesWidth]))
	}
	return NewSprite(mode, palette, rows), nil
}

// Mode returns the encoding mode.
func (s *Sprite) Mode() ga.Mode {
	return s.mode
}

// Palette returns the sprite palette, if it has one.
func (s *Sprite) Palette() (ga.Palette, bool) {
	if s.palette == nil {
		return ga.Palette{}, false
	}
	return *s.palette, true
}

// SetPalette attaches a palette.
func (s *Sprite) SetPalette(p ga.Palette) {
	s.palette = &p
}

// ByteWidth returns the number of bytes per row.
func (s *Sprite) ByteWidth() int {
	if len(s.data) == 0 {
		return 0
	}
	return len(s.data[0])
}

// PixelWidth returns the number of pixels per row.
func (s *Sprite) PixelWidth() int {
	return s.ByteWidth() * s.mode.PixelsPerByte()
}

// Height returns the number of rows.
func (s *Sprite) Height() int {
	return len(s.data)
}

// Get returns the byte at column x of row y.
func (s *Sprite) Get(x, y int) byte {
	return s.data[y][x]
}

// SafeGet is Get with a bounds check.
func (s *Sprite) SafeGet(x, y int) (byte, bool) {
	if y < 0 || y >= len(s.data) || x < 0 || x >= len(s.data[y]) {
		return 0, false
	}
	return s.data[y][x], true
}

// Set changes the byte at column x of row y.
func (s *Sprite) Set(x, y int, b byte) {
	s.data[y][x] = b
}

// Row returns a copy of row y.
func (s *Sprite) Row(y int) []byte {
	return slices.Clone(s.data[y])
}

// Rows returns a copy of every row.
func (s *Sprite) Rows() [][]byte {
	rows := make([][]byte, len(s.data))
	for y := range s.data {
		rows[y] = slices.Clone(s.data[y])
	}
	return rows
}

// Bytes returns the rows concatenated top to bottom.
func (s *Sprite) Bytes() []byte {
	out := make([]byte, 0, s.ByteWidth()*s.Height())
	for _, row := range s.data {
		out = append(out, row...)
	}
	return out
}

// Pens decodes every row into pens.
func (s *Sprite) Pens() [][]ga.Pen {
	pens := make([][]ga.Pen, len(s.data))
	for y, row := range s.data {
		pens[y] = pixels.BytesToPens(s.mode, row)
	}
	return pens
}

// AsColorMatrix decodes the sprite through its palette.
func (s *Sprite) AsColorMatrix() (*ColorMatrix, error) {
	if s.palette == nil {
		return nil, ErrNoPalette
	}
	return pensToMatrix(s.Pens(), *s.palette)
}

func pensToMatrix(pens [][]ga.Pen, palette ga.Palette) (*ColorMatrix, error) {
	m := &ColorMatrix{rows: make([][]ga.Ink, len(pens))}
	for y, row := range pens {
		m.rows[y] = make([]ga.Ink, len(row))
		for x, pen := range row {
			ink, ok := palette.SafeGet(pen)
			if !ok {
				return nil, fmt.Errorf("%w: %s at (%d, %d)", ErrPenNotInPalette, pen, x, y)
			}
			m.rows[y][x] = ink
		}
	}
	return m, nil
}
