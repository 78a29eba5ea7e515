package image

import (
	"fmt"
	"image"
	"runtime"
	"slices"

	"github.com/bodgit/cpcimage/ga"
	"github.com/bodgit/cpcimage/pixels"
	"golang.org/x/sync/errgroup"
)

// ConversionRule selects which source pixels become matrix columns.
type ConversionRule int

const (
	// AnyModeUseAllPixels keeps every source pixel.
	AnyModeUseAllPixels ConversionRule = iota
	// Mode0SkipOddPixels keeps even columns only, for mode 0 art drawn at
	// twice the horizontal resolution.
	Mode0SkipOddPixels
)

// ZeroSkipOddPixels is another name for Mode0SkipOddPixels.
const ZeroSkipOddPixels = Mode0SkipOddPixels

// ColorConversionStrategy tells how to handle inks outside a target set.
type ColorConversionStrategy int

const (
	// ReplaceWrongColorByFirstColor uses the first allowed ink.
	ReplaceWrongColorByFirstColor ColorConversionStrategy = iota
	// ReplaceWrongColorByClosestInk uses the allowed ink nearest in RGB.
	ReplaceWrongColorByClosestInk
	// Fail stops at the first pixel with a wrong ink.
	Fail
)

func (s ColorConversionStrategy) String() string {
	switch s {
	case ReplaceWrongColorByFirstColor:
		return "first"
	case ReplaceWrongColorByClosestInk:
		return "closest"
	case Fail:
		return "fail"
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// ColorMatrix is a row-major grid of inks. All rows have the same length.
type ColorMatrix struct {
	rows [][]ga.Ink
}

// NewColorMatrix returns a width by height matrix filled with ink.
func NewColorMatrix(width, height int, ink ga.Ink) *ColorMatrix {
	rows := make([][]ga.Ink, height)
	for y := range rows {
		rows[y] = make([]ga.Ink, width)
		for x := range rows[y] {
			rows[y][x] = ink
		}
	}
	return &ColorMatrix{rows: rows}
}

// FromRows builds a matrix from rows, which are copied. It panics if the
// rows do not all have the same length.
func FromRows(rows [][]ga.Ink) *ColorMatrix {
	m := &ColorMatrix{rows: make([][]ga.Ink, len(rows))}
	for y, row := range rows {
		if len(row) != len(rows[0]) {
			panic(fmt.Sprintf("image: row %d has %d inks, expected %d", y, len(row), len(rows[0])))
		}
		m.rows[y] = slices.Clone(row)
	}
	return m
}

// FromImage converts every pixel of img to its closest ink.
func FromImage(img image.Image, rule ConversionRule) *ColorMatrix {
	b := img.Bounds()
	step := 1
	if rule == Mode0SkipOddPixels {
		step = 2
	}

	m := &ColorMatrix{rows: make([][]ga.Ink, 0, b.Dy())}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := make([]ga.Ink, 0, (b.Dx()+step-1)/step)
		for x := b.Min.X; x < b.Max.X; x += step {
			row = append(row, ga.InkFromColor(img.At(x, y)))
		}
		m.rows = append(m.rows, row)
	}
	return m
}

// Width returns the number of columns.
func (m *ColorMatrix) Width() int {
	if len(m.rows) == 0 {
		return 0
	}
	return len(m.rows[0])
}

// Height returns the number of rows.
func (m *ColorMatrix) Height() int {
	return len(m.rows)
}

// Get returns the ink at (x, y).
func (m *ColorMatrix) Get(x, y int) ga.Ink {
	return m.rows[y][x]
}

// Set changes the ink at (x, y).
func (m *ColorMatrix) Set(x, y int, ink ga.Ink) {
	m.rows[y][x] = ink
}

// Row returns a copy of row y.
func (m *ColorMatrix) Row(y int) []ga.Ink {
	return slices.Clone(m.rows[y])
}

// Rows returns a copy of all rows.
func (m *ColorMatrix) Rows() [][]ga.Ink {
	rows := make([][]ga.Ink, len(m.rows))
	for y := range m.rows {
		rows[y] = slices.Clone(m.rows[y])
	}
	return rows
}

// Clone returns a deep copy.
func (m *ColorMatrix) Clone() *ColorMatrix {
	return &ColorMatrix{rows: m.Rows()}
}

// Equal reports whether both matrices hold the same inks.
func (m *ColorMatrix) Equal(o *ColorMatrix) bool {
	if m.Height() != o.Height() {
		return false
	}
	for y := range m.rows {
		if !slices.Equal(m.rows[y], o.rows[y]) {
			return false
		}
	}
	return true
}

// Window returns a copy of the w by h rectangle at (x, y). The rectangle
// must lie within the matrix.
func (m *ColorMatrix) Window(x, y, w, h int) *ColorMatrix {
	if x < 0 || y < 0 || w < 0 || h < 0 || x+w > m.Width() || y+h > m.Height() {
		panic(fmt.Sprintf("image: window %dx%d at (%d, %d) outside %dx%d matrix", w, h, x, y, m.Width(), m.Height()))
	}
	rows := make([][]ga.Ink, h)
	for i := range rows {
		rows[i] = slices.Clone(m.rows[y+i][x : x+w])
	}
	return &ColorMatrix{rows: rows}
}

// AddLine inserts line before row y. The line length must match the width.
func (m *ColorMatrix) AddLine(y int, line []ga.Ink) {
	if m.Height() > 0 && len(line) != m.Width() {
		panic(fmt.Sprintf("image: line has %d inks, expected %d", len(line), m.Width()))
	}
	m.rows = slices.Insert(m.rows, y, slices.Clone(line))
}

// AddColumn inserts column before column x. The column length must match
// the height.
func (m *ColorMatrix) AddColumn(x int, column []ga.Ink) {
	if len(column) != m.Height() {
		panic(fmt.Sprintf("image: column has %d inks, expected %d", len(column), m.Height()))
	}
	for y := range m.rows {
		m.rows[y] = slices.Insert(m.rows[y], x, column[y])
	}
}

// RemoveOddColumns keeps the even columns only.
func (m *ColorMatrix) RemoveOddColumns() {
	for y, row := range m.rows {
		kept := make([]ga.Ink, 0, (len(row)+1)/2)
		for x := 0; x < len(row); x += 2 {
			kept = append(kept, row[x])
		}
		m.rows[y] = kept
	}
}

// DoubleWidth repeats every column.
func (m *ColorMatrix) DoubleWidth() {
	for y, row := range m.rows {
		doubled := make([]ga.Ink, 0, len(row)*2)
		for _, ink := range row {
			doubled = append(doubled, ink, ink)
		}
		m.rows[y] = doubled
	}
}

// ReplaceInk changes every from pixel into to.
func (m *ColorMatrix) ReplaceInk(from, to ga.Ink) {
	for _, row := range m.rows {
		for x := range row {
			if row[x] == from {
				row[x] = to
			}
		}
	}
}

// ConvertToMask turns background pixels into the mask background ink and
// every other pixel into the mask foreground ink.
func (m *ColorMatrix) ConvertToMask(background ga.Ink) {
	for _, row := range m.rows {
		for x := range row {
			if row[x] == background {
				row[x] = ga.InkMaskBackground
			} else {
				row[x] = ga.InkMaskForeground
			}
		}
	}
}

// ExtractMaskAndSprite returns the mask of maskInk and a copy of the matrix
// where maskInk is replaced by replacement. The receiver is unchanged.
func (m *ColorMatrix) ExtractMaskAndSprite(maskInk, replacement ga.Ink) (mask, sprite *ColorMatrix) {
	mask = m.Clone()
	mask.ConvertToMask(maskInk)

	sprite = m.Clone()
	sprite.ReplaceInk(maskInk, replacement)

	return mask, sprite
}

// Inks returns the distinct inks used, sorted by number.
func (m *ColorMatrix) Inks() []ga.Ink {
	var seen [32]bool
	for _, row := range m.rows {
		for _, ink := range row {
			seen[ink] = true
		}
	}
	var inks []ga.Ink
	for i, s := range seen {
		if s {
			inks = append(inks, ga.Ink(i))
		}
	}
	return inks
}

// ExtractPalette assigns the sorted distinct inks to pens 0, 1, 2 and so on.
func (m *ColorMatrix) ExtractPalette(mode ga.Mode) (ga.Palette, error) {
	inks := m.Inks()
	if len(inks) > mode.MaxColors() {
		return ga.Palette{}, fmt.Errorf("%w: %d inks %v, %s allows %d", ErrTooManyColors, len(inks), inks, mode, mode.MaxColors())
	}
	return ga.NewPalette(inks...), nil
}

// ReduceColorsWith rewrites every pixel whose ink is not in inks according
// to strategy.
func (m *ColorMatrix) ReduceColorsWith(inks []ga.Ink, strategy ColorConversionStrategy) error {
	if len(inks) == 0 {
		return fmt.Errorf("%w: no target inks", ErrColorNotAllowed)
	}
	for y, row := range m.rows {
		for x, ink := range row {
			if slices.Contains(inks, ink) {
				continue
			}
			switch strategy {
			case ReplaceWrongColorByFirstColor:
				row[x] = inks[0]
			case ReplaceWrongColorByClosestInk:
				row[x], _ = ink.ClosestInk(inks)
			case Fail:
				return fmt.Errorf("%w: %s at (%d, %d)", ErrColorNotAllowed, ink, x, y)
			default:
				return fmt.Errorf("image: unsupported color conversion strategy %s", strategy)
			}
		}
	}
	return nil
}

// ReduceColorsForMode restricts the matrix to the inks of the pens of
// palette usable in mode.
func (m *ColorMatrix) ReduceColorsForMode(mode ga.Mode, palette ga.Palette, strategy ColorConversionStrategy) error {
	return m.ReduceColorsWith(palette.InksForMode(mode), strategy)
}

// Diff compares two matrices of the same size. Equal pixels are marked with
// ink 26, different ones with ink 0.
func (m *ColorMatrix) Diff(o *ColorMatrix) *ColorMatrix {
	if m.Width() != o.Width() || m.Height() != o.Height() {
		panic(fmt.Sprintf("image: cannot diff %dx%d with %dx%d", m.Width(), m.Height(), o.Width(), o.Height()))
	}
	d := NewColorMatrix(m.Width(), m.Height(), ga.BrightWhite)
	for y, row := range m.rows {
		for x, ink := range row {
			if ink != o.rows[y][x] {
				d.rows[y][x] = ga.Black
			}
		}
	}
	return d
}

// DiffToPositions returns the positions marked as different in a matrix
// built by Diff.
func (m *ColorMatrix) DiffToPositions() []image.Point {
	var points []image.Point
	for y, row := range m.rows {
		for x, ink := range row {
			if ink != ga.BrightWhite {
				points = append(points, image.Pt(x, y))
			}
		}
	}
	return points
}

// InksToPens maps every pixel to its pen in palette. Rows are converted
// concurrently.
func (m *ColorMatrix) InksToPens(palette ga.Palette) ([][]ga.Pen, error) {
	pens := make([][]ga.Pen, len(m.rows))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for y, row := range m.rows {
		y, row := y, row
		g.Go(func() error {
			line := make([]ga.Pen, len(row))
			for x, ink := range row {
				pen, ok := palette.PenForInk(ink)
				if !ok {
					return fmt.Errorf("%w: %s at (%d, %d)", ErrInkNotInPalette, ink, x, y)
				}
				line[x] = pen
			}
			pens[y] = line
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pens, nil
}

// AsSprite encodes the matrix with a palette extracted from its own inks.
func (m *ColorMatrix) AsSprite(mode ga.Mode) (*Sprite, error) {
	palette, err := m.ExtractPalette(mode)
	if err != nil {
		return nil, err
	}
	return m.AsSpriteWithPalette(mode, palette)
}

// AsSpriteWithPalette encodes the matrix with the given palette. A width
// that does not fill the last byte of a row is padded with pen 0.
func (m *ColorMatrix) AsSpriteWithPalette(mode ga.Mode, palette ga.Palette) (*Sprite, error) {
	pens, err := m.InksToPens(palette)
	if err != nil {
		return nil, err
	}
	data := make([][]byte, len(pens))
	for y, row := range pens {
		data[y] = pixels.PensToBytesWithReplacement(mode, row, 0)
	}
	return NewSprite(mode, &palette, data), nil
}
