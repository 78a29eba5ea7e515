/*
Package tile cuts sprites into a grid of tiles.

Tiles are read cell by cell, left to right then top to bottom. Within a
tile the bytes are walked in a configurable order so the data matches the
loop of the routine that draws it: columns may run in either direction or
alternate every line, and lines may run in either direction or follow the
gray code order of a character row.
*/
package tile

import (
	"errors"
	"fmt"
)

// Horizontal is the order bytes of a tile line are read in.
type Horizontal int

const (
	// LeftToRight reads every line from its first byte.
	LeftToRight Horizontal = iota
	// RightToLeft reads every line from its last byte.
	RightToLeft
	// LeftToRightFlip starts from the left and changes direction at the
	// end of each line.
	LeftToRightFlip
	// RightToLeftFlip starts from the right and changes direction at the
	// end of each line.
	RightToLeftFlip
)

func (h Horizontal) String() string {
	switch h {
	case LeftToRight:
		return "left-to-right"
	case RightToLeft:
		return "right-to-left"
	case LeftToRightFlip:
		return "left-to-right-flip"
	case RightToLeftFlip:
		return "right-to-left-flip"
	}
	return fmt.Sprintf("horizontal(%d)", int(h))
}

// Vertical is the order lines of a tile are read in.
type Vertical int

const (
	// TopToBottom reads lines in screen order.
	TopToBottom Vertical = iota
	// BottomToTop reads lines in reverse screen order.
	BottomToTop
	// GrayCodeFromTop reads each group of 8 lines in gray code order,
	// groups from the top.
	GrayCodeFromTop
	// GrayCodeFromBottom is GrayCodeFromTop upside down.
	GrayCodeFromBottom
)

func (v Vertical) String() string {
	switch v {
	case TopToBottom:
		return "top-to-bottom"
	case BottomToTop:
		return "bottom-to-top"
	case GrayCodeFromTop:
		return "graycode-from-top"
	case GrayCodeFromBottom:
		return "graycode-from-bottom"
	}
	return fmt.Sprintf("vertical(%d)", int(v))
}

var (
	// ErrUnsupported is returned for an unknown scan direction.
	ErrUnsupported = errors.New("tile: unsupported configuration")
	// ErrGrayCodeHeight is returned when a gray code scan is asked for a
	// tile height that is not a multiple of 8.
	ErrGrayCodeHeight = errors.New("tile: gray code needs a tile height multiple of 8")
)

// Same order as the screen package uses for gray coded sprites.
var grayCode = [8]int{0, 1, 3, 2, 6, 7, 5, 4}

// ParseHorizontal returns the direction named s, as printed by String.
func ParseHorizontal(s string) (Horizontal, error) {
	for h := LeftToRight; h <= RightToLeftFlip; h++ {
		if h.String() == s {
			return h, nil
		}
	}
	return 0, fmt.Errorf("%w: horizontal direction %q", ErrUnsupported, s)
}

// ParseVertical returns the direction named s, as printed by String.
func ParseVertical(s string) (Vertical, error) {
	for v := TopToBottom; v <= GrayCodeFromBottom; v++ {
		if v.String() == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: vertical direction %q", ErrUnsupported, s)
}

type columnCounter struct {
	width int
	x     int
	step  int
	flip  bool
}

func newColumnCounter(h Horizontal, width int) (*columnCounter, error) {
	c := &columnCounter{width: width, step: 1}
	switch h {
	case LeftToRight:
	case RightToLeft:
		c.x, c.step = width-1, -1
	case LeftToRightFlip:
		c.flip = true
	case RightToLeftFlip:
		c.x, c.step, c.flip = width-1, -1, true
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, h)
	}
	return c, nil
}

// next returns the current column and moves on.
func (c *columnCounter) next() int {
	x := c.x
	c.x += c.step
	return x
}

// endOfLine prepares the counter for the following line.
func (c *columnCounter) endOfLine() {
	if c.flip {
		c.step = -c.step
		c.x += c.step
		return
	}
	if c.step > 0 {
		c.x = 0
	} else {
		c.x = c.width - 1
	}
}

type lineCounter struct {
	v      Vertical
	height int
	i      int
}

func newLineCounter(v Vertical, height int) (*lineCounter, error) {
	switch v {
	case TopToBottom, BottomToTop:
	case GrayCodeFromTop, GrayCodeFromBottom:
		if height%8 != 0 {
			return nil, fmt.Errorf("%w: %d", ErrGrayCodeHeight, height)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, v)
	}
	return &lineCounter{v: v, height: height}, nil
}

// next returns the current line and moves on.
func (c *lineCounter) next() int {
	i := c.i
	c.i++
	switch c.v {
	case BottomToTop:
		return c.height - 1 - i
	case GrayCodeFromTop:
		return i/8*8 + grayCode[i%8]
	case GrayCodeFromBottom:
		return c.height - 1 - (i/8*8 + grayCode[i%8])
	}
	return i
}
