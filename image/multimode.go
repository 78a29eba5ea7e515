package image

import (
	"fmt"

	"github.com/bodgit/cpcimage/ga"
	"github.com/bodgit/cpcimage/pixels"
)

// MultiModeSprite is a sprite whose lines are displayed in different modes,
// as done by rasters that switch mode during the frame.
type MultiModeSprite struct {
	modes   []ga.Mode
	palette *ga.Palette
	data    [][]byte
}

// Mode0Mode3Layout tells which lines of a mixed sprite carry the mode 3
// image.
type Mode0Mode3Layout int

const (
	// FirstHalfSecondHalf: the top half is shown in mode 0 and the
	// bottom half in mode 3.
	FirstHalfSecondHalf Mode0Mode3Layout = iota
	// OddEven: even lines are shown in mode 0, odd lines in mode 3.
	OddEven
)

// StackSprites puts sprites one below the other, each keeping its mode.
// All sprites must have the same byte width. The palette of the first
// sprite that has one is kept.
func StackSprites(sprites ...*Sprite) (*MultiModeSprite, error) {
	m := &MultiModeSprite{}
	for i, s := range sprites {
		if i > 0 && s.ByteWidth() != sprites[0].ByteWidth() {
			return nil, fmt.Errorf("%w: sprite %d is %d bytes wide, expected %d", ErrBadSize, i, s.ByteWidth(), sprites[0].ByteWidth())
		}
		if p, ok := s.Palette(); ok && m.palette == nil {
			m.palette = &p
		}
		for _, row := range s.Rows() {
			m.modes = append(m.modes, s.Mode())
			m.data = append(m.data, row)
		}
	}
	return m, nil
}

// Mode0Mode3Mix builds a sprite that shows two images with the same bytes:
// pens 0 to 3 of the top (or even) lines in mode 0 and of the bottom (or
// odd) lines in mode 3. The source must be a mode 0 sprite using pens 0 to
// 3 only and, for FirstHalfSecondHalf, an even height.
func Mode0Mode3Mix(s *Sprite, layout Mode0Mode3Layout) (*Sprite, error) {
	if s.Mode() != ga.Mode0 {
		return nil, fmt.Errorf("image: mode 0/3 mix needs a mode 0 sprite, got %s", s.Mode())
	}

	pens := s.Pens()
	var first, second [][]ga.Pen
	switch layout {
	case FirstHalfSecondHalf:
		if len(pens)%2 != 0 {
			return nil, fmt.Errorf("%w: height %d is odd", ErrBadSize, len(pens))
		}
		first, second = pens[:len(pens)/2], pens[len(pens)/2:]
	case OddEven:
		if len(pens)%2 != 0 {
			return nil, fmt.Errorf("%w: height %d is odd", ErrBadSize, len(pens))
		}
		for y, row := range pens {
			if y%2 == 0 {
				first = append(first, row)
			} else {
				second = append(second, row)
			}
		}
	default:
		return nil, fmt.Errorf("image: unsupported mode 0/3 layout %d", layout)
	}

	mixed := make([][]ga.Pen, len(first))
	for y := range first {
		mixed[y] = make([]ga.Pen, len(first[y]))
		for x := range first[y] {
			p0, p3 := first[y][x], second[y][x]
			if p0 > 3 || p3 > 3 {
				return nil, fmt.Errorf("image: mode 0/3 mix at (%d, %d) uses %s and %s, only pens 0 to 3 mix", x, y, p0, p3)
			}
			mixed[y][x] = pixels.MixMode0Mode3(p0, p3)
		}
	}

	var palette *ga.Palette
	if p, ok := s.Palette(); ok {
		palette = &p
	}
	return FromPens(ga.Mode0, palette, mixed), nil
}

// Height returns the number of lines.
func (m *MultiModeSprite) Height() int {
	return len(m.data)
}

// ByteWidth returns the number of bytes per line.
func (m *MultiModeSprite) ByteWidth() int {
	if len(m.data) == 0 {
		return 0
	}
	return len(m.data[0])
}

// ModeOf returns the mode of line y.
func (m *MultiModeSprite) ModeOf(y int) ga.Mode {
	return m.modes[y]
}

// SafeGet returns the byte at column x of line y.
func (m *MultiModeSprite) SafeGet(x, y int) (byte, bool) {
	if y < 0 || y >= len(m.data) || x < 0 || x >= len(m.data[y]) {
		return 0, false
	}
	return m.data[y][x], true
}

// Bytes returns the lines concatenated top to bottom.
func (m *MultiModeSprite) Bytes() []byte {
	out := make([]byte, 0, m.ByteWidth()*m.Height())
	for _, row := range m.data {
		out = append(out, row...)
	}
	return out
}

// AsColorMatrix decodes each line in its own mode. Lines are as wide as the
// mode with the most pixels per byte; narrower lines are repeated
// horizontally to match.
func (m *MultiModeSprite) AsColorMatrix() (*ColorMatrix, error) {
	if m.palette == nil {
		return nil, ErrNoPalette
	}
	widest := 0
	for _, mode := range m.modes {
		widest = max(widest, mode.PixelsPerByte())
	}
	pens := make([][]ga.Pen, len(m.data))
	for y, row := range m.data {
		decoded := pixels.BytesToPens(m.modes[y], row)
		factor := widest / m.modes[y].PixelsPerByte()
		pens[y] = make([]ga.Pen, 0, len(decoded)*factor)
		for _, pen := range decoded {
			for k := 0; k < factor; k++ {
				pens[y] = append(pens[y], pen)
			}
		}
	}
	return pensToMatrix(pens, *m.palette)
}
