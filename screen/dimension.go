package screen

import (
	"fmt"

	"github.com/bodgit/cpcimage/ga"
)

// BankSize is the size of one memory page.
const BankSize = 0x4000

// LineStride separates consecutive scan lines of a character row.
const LineStride = 0x800

// Dimension holds the CRTC registers that size the display.
type Dimension struct {
	// HorizontalDisplayed is R1, in words.
	HorizontalDisplayed uint8
	// VerticalDisplayed is R6, in character rows.
	VerticalDisplayed uint8
	// MaximumRasterAddress is R9, the number of lines per character row
	// minus one.
	MaximumRasterAddress uint8
}

// Standard returns the dimensions after reset.
func Standard() Dimension {
	return Dimension{HorizontalDisplayed: 40, VerticalDisplayed: 25, MaximumRasterAddress: 7}
}

// Overscan returns the usual full screen dimensions.
func Overscan() Dimension {
	return Dimension{HorizontalDisplayed: 48, VerticalDisplayed: 39, MaximumRasterAddress: 7}
}

// ByteWidth returns the number of bytes per line.
func (d Dimension) ByteWidth() int {
	return int(d.HorizontalDisplayed) * 2
}

// Width returns the number of pixels per line in mode m.
func (d Dimension) Width(m ga.Mode) int {
	return d.ByteWidth() * m.PixelsPerByte()
}

// LinesPerChar returns the number of scan lines per character row.
func (d Dimension) LinesPerChar() int {
	return int(d.MaximumRasterAddress) + 1
}

// Height returns the number of lines.
func (d Dimension) Height() int {
	return int(d.VerticalDisplayed) * d.LinesPerChar()
}

// UseTwoBanks reports whether the display needs more than one page.
func (d Dimension) UseTwoBanks() bool {
	return d.ByteWidth()*d.Height() > BankSize
}

func (d Dimension) String() string {
	return fmt.Sprintf("%dx%d bytes (R1=%d R6=%d R9=%d)", d.ByteWidth(), d.Height(), d.HorizontalDisplayed, d.VerticalDisplayed, d.MaximumRasterAddress)
}

// DimensionError reports a sprite that does not match the screen.
type DimensionError struct {
	Dimension Dimension
	ByteWidth int
	Height    int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("screen: sprite is %dx%d bytes, screen is %s", e.ByteWidth, e.Height, e.Dimension)
}
