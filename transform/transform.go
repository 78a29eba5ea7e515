/*
Package transform edits color matrices before they are encoded.

Transformations run in order on a copy of the source matrix. The first
failure aborts the whole list.
*/
package transform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bodgit/cpcimage/ga"
	"github.com/bodgit/cpcimage/image"
)

// ErrOutOfRange is returned when a transformation does not fit the matrix.
var ErrOutOfRange = errors.New("transform: out of range")

// Transformation changes a matrix in place.
type Transformation interface {
	Apply(m *image.ColorMatrix) error
	String() string
}

// List is an ordered set of transformations.
type List []Transformation

// Apply runs every transformation on a clone of m and returns the result.
func (l List) Apply(m *image.ColorMatrix) (*image.ColorMatrix, error) {
	out := m.Clone()
	for _, t := range l {
		if err := t.Apply(out); err != nil {
			return nil, fmt.Errorf("%s: %w", t, err)
		}
	}
	return out, nil
}

func (l List) String() string {
	s := make([]string, len(l))
	for i, t := range l {
		s[i] = t.String()
	}
	return strings.Join(s, ",")
}

func joinInks(inks []ga.Ink) string {
	s := make([]string, len(inks))
	for i, ink := range inks {
		s[i] = ink.String()
	}
	return strings.Join(s, "/")
}

// SkipOddPixels drops every odd column.
type SkipOddPixels struct{}

// Apply implements Transformation.
func (SkipOddPixels) Apply(m *image.ColorMatrix) error {
	m.RemoveOddColumns()
	return nil
}

func (SkipOddPixels) String() string { return "skip-odd-pixels" }

// DoubleWidth repeats every column.
type DoubleWidth struct{}

// Apply implements Transformation.
func (DoubleWidth) Apply(m *image.ColorMatrix) error {
	m.DoubleWidth()
	return nil
}

func (DoubleWidth) String() string { return "double-width" }

// CropMargins removes columns and lines from the borders.
type CropMargins struct {
	Left, Right, Top, Bottom int
}

// Apply implements Transformation.
func (c CropMargins) Apply(m *image.ColorMatrix) error {
	w := m.Width() - c.Left - c.Right
	h := m.Height() - c.Top - c.Bottom
	if c.Left < 0 || c.Right < 0 || c.Top < 0 || c.Bottom < 0 || w < 0 || h < 0 {
		return fmt.Errorf("%w: %s on %dx%d", ErrOutOfRange, c, m.Width(), m.Height())
	}
	*m = *m.Window(c.Left, c.Top, w, h)
	return nil
}

func (c CropMargins) String() string {
	return fmt.Sprintf("crop(%d,%d,%d,%d)", c.Left, c.Right, c.Top, c.Bottom)
}

// Position is where blank lines or columns are inserted.
type Position int

// Insert positions.
const (
	Start Position = iota
	End
)

// BlankLines inserts Amount lines. Line i of the insertion repeats
// Pattern[i%len(Pattern)] across the whole width.
type BlankLines struct {
	Pattern  []ga.Ink
	Amount   int
	Position Position
}

// Apply implements Transformation.
func (b BlankLines) Apply(m *image.ColorMatrix) error {
	if len(b.Pattern) == 0 || b.Amount < 0 {
		return fmt.Errorf("%w: %s", ErrOutOfRange, b)
	}
	for i := 0; i < b.Amount; i++ {
		line := make([]ga.Ink, m.Width())
		for x := range line {
			line[x] = b.Pattern[i%len(b.Pattern)]
		}
		if b.Position == Start {
			m.AddLine(i, line)
		} else {
			m.AddLine(m.Height(), line)
		}
	}
	return nil
}

func (b BlankLines) String() string {
	return fmt.Sprintf("blank-lines(%s,%d,%s)", joinInks(b.Pattern), b.Amount, b.Position)
}

// BlankColumns inserts Amount columns. Column i of the insertion repeats
// Pattern[i%len(Pattern)] down the whole height.
type BlankColumns struct {
	Pattern  []ga.Ink
	Amount   int
	Position Position
}

// Apply implements Transformation.
func (b BlankColumns) Apply(m *image.ColorMatrix) error {
	if len(b.Pattern) == 0 || b.Amount < 0 {
		return fmt.Errorf("%w: %s", ErrOutOfRange, b)
	}
	for i := 0; i < b.Amount; i++ {
		column := make([]ga.Ink, m.Height())
		for y := range column {
			column[y] = b.Pattern[i%len(b.Pattern)]
		}
		if b.Position == Start {
			m.AddColumn(i, column)
		} else {
			m.AddColumn(m.Width(), column)
		}
	}
	return nil
}

func (b BlankColumns) String() string {
	return fmt.Sprintf("blank-columns(%s,%d,%s)", joinInks(b.Pattern), b.Amount, b.Position)
}

func (p Position) String() string {
	if p == Start {
		return "start"
	}
	return "end"
}

// ReplaceInk swaps one ink for another.
type ReplaceInk struct {
	From, To ga.Ink
}

// Apply implements Transformation.
func (r ReplaceInk) Apply(m *image.ColorMatrix) error {
	m.ReplaceInk(r.From, r.To)
	return nil
}

func (r ReplaceInk) String() string {
	return fmt.Sprintf("replace(%s,%s)", r.From, r.To)
}

// Mask turns the matrix into the mask of Background.
type Mask struct {
	Background ga.Ink
}

// Apply implements Transformation.
func (k Mask) Apply(m *image.ColorMatrix) error {
	m.ConvertToMask(k.Background)
	return nil
}

func (k Mask) String() string {
	return fmt.Sprintf("mask(%s)", k.Background)
}

// ReduceColors restricts the matrix to a set of inks.
type ReduceColors struct {
	Inks     []ga.Ink
	Strategy image.ColorConversionStrategy
}

// Apply implements Transformation.
func (r ReduceColors) Apply(m *image.ColorMatrix) error {
	return m.ReduceColorsWith(r.Inks, r.Strategy)
}

func (r ReduceColors) String() string {
	return fmt.Sprintf("reduce(%s,%s)", joinInks(r.Inks), r.Strategy)
}

// MaxColors merges the closest inks until at most N remain.
type MaxColors struct {
	N int
}

// Apply implements Transformation.
func (c MaxColors) Apply(m *image.ColorMatrix) error {
	if c.N < 1 {
		return fmt.Errorf("%w: %s", ErrOutOfRange, c)
	}
	m.ReduceToMaxColors(c.N)
	return nil
}

func (c MaxColors) String() string {
	return fmt.Sprintf("max-colors(%d)", c.N)
}
