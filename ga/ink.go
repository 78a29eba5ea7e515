package ga

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

var (
	// ErrInvalidMode is returned when a screen mode cannot be parsed.
	ErrInvalidMode = errors.New("ga: invalid mode")
	// ErrUnknownInk is returned when an ink name is not recognised.
	ErrUnknownInk = errors.New("ga: unknown ink")
	// ErrPaletteLocked is returned when modifying a locked palette.
	ErrPaletteLocked = errors.New("ga: palette is locked")
	// ErrPaletteFull is returned when inks cannot all be given a pen.
	ErrPaletteFull = errors.New("ga: palette is full")
)

// NumInks is the number of distinct inks of the hardware.
const NumInks = 27

// Ink is a hardware colour identified by its firmware number.
type Ink uint8

// Firmware inks.
const (
	Black Ink = iota
	Blue
	BrightBlue
	Red
	Magenta
	Mauve
	BrightRed
	Purple
	BrightMagenta
	Green
	Cyan
	SkyBlue
	Yellow
	White
	PastelBlue
	Orange
	Pink
	PastelMagenta
	BrightGreen
	SeaGreen
	BrightCyan
	Lime
	PastelGreen
	PastelCyan
	BrightYellow
	PastelYellow
	BrightWhite
)

// Inks used when building masks.
const (
	InkMaskBackground = BrightWhite
	InkMaskForeground = Black
)

var inksRGB = [NumInks][3]uint8{
	{0x00, 0x00, 0x00},
	{0x00, 0x00, 0x80},
	{0x00, 0x00, 0xff},
	{0x80, 0x00, 0x00},
	{0x80, 0x00, 0x80},
	{0x80, 0x00, 0xff},
	{0xff, 0x00, 0x00},
	{0xff, 0x00, 0x80},
	{0xff, 0x00, 0xff},
	{0x00, 0x80, 0x00},
	{0x00, 0x80, 0x80},
	{0x00, 0x80, 0xff},
	{0x80, 0x80, 0x00},
	{0x80, 0x80, 0x80},
	{0x80, 0x80, 0xff},
	{0xff, 0x80, 0x00},
	{0xff, 0x80, 0x80},
	{0xff, 0x80, 0xff},
	{0x00, 0xff, 0x00},
	{0x00, 0xff, 0x80},
	{0x00, 0xff, 0xff},
	{0x80, 0xff, 0x00},
	{0x80, 0xff, 0x80},
	{0x80, 0xff, 0xff},
	{0xff, 0xff, 0x00},
	{0xff, 0xff, 0x80},
	{0xff, 0xff, 0xff},
}

// Value written to the Gate Array colour register, including the 0x40 command bits.
var inksGateArray = [NumInks]uint8{
	0x54, 0x44, 0x55, 0x5c, 0x58, 0x5d, 0x4c, 0x45, 0x4d,
	0x56, 0x46, 0x57, 0x5e, 0x40, 0x5f, 0x4e, 0x47, 0x4f,
	0x52, 0x42, 0x53, 0x5a, 0x59, 0x5b, 0x4a, 0x43, 0x4b,
}

var inkNames = [NumInks]string{
	"BLACK", "BLUE", "BRIGHTBLUE", "RED", "MAGENTA", "MAUVE", "BRIGHTRED",
	"PURPLE", "BRIGHTMAGENTA", "GREEN", "CYAN", "SKYBLUE", "YELLOW", "WHITE",
	"PASTELBLUE", "ORANGE", "PINK", "PASTELMAGENTA", "BRIGHTGREEN",
	"SEAGREEN", "BRIGHTCYAN", "LIME", "PASTELGREEN", "PASTELCYAN",
	"BRIGHTYELLOW", "PASTELYELLOW", "BRIGHTWHITE",
}

// Inks27 holds every ink in firmware order as a color.Palette, so the index
// of a colour is its ink number.
var Inks27 = func() color.Palette {
	p := make(color.Palette, NumInks)
	for i := range p {
		p[i] = Ink(i)
	}
	return p
}()

// InkFromNumber returns the ink with the given firmware number. It panics
// when n is 32 or more. Numbers 27 to 31 are accepted but do not denote a
// colour; see Valid.
func InkFromNumber(n uint8) Ink {
	if n >= 32 {
		panic(fmt.Sprintf("ga: ink number %d out of range", n))
	}
	return Ink(n)
}

// InkFromName parses a colour name such as "bright blue" or "PASTEL_CYAN".
func InkFromName(s string) (Ink, error) {
	name := strings.ToUpper(s)
	name = strings.NewReplacer(" ", "", "_", "").Replace(name)
	switch name {
	case "GRAY", "GREY":
		return White, nil
	}
	for i, n := range inkNames {
		if n == name {
			return Ink(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownInk, s)
}

// MustInkFromName is like InkFromName but panics on unknown names.
func MustInkFromName(s string) Ink {
	i, err := InkFromName(s)
	if err != nil {
		panic(err)
	}
	return i
}

// Copied from color.sqDiff, but for 8-bit channels
func sqDiff(x, y uint8) uint32 {
	d := int32(x) - int32(y)
	return uint32(d * d)
}

// InkFromRGB returns the ink closest to the given colour. Ties go to the
// lowest ink number.
func InkFromRGB(r, g, b uint8) Ink {
	best, bestSum := Black, ^uint32(0)
	for i, c := range inksRGB {
		sum := sqDiff(r, c[0]) + sqDiff(g, c[1]) + sqDiff(b, c[2])
		if sum < bestSum {
			best, bestSum = Ink(i), sum
		}
	}
	return best
}

// InkFromColor converts any colour to its closest ink, ignoring alpha.
func InkFromColor(c color.Color) Ink {
	if i, ok := c.(Ink); ok {
		return i
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return InkFromRGB(n.R, n.G, n.B)
}

// ClosestInk returns the entry of inks closest to i in RGB space.
func (i Ink) ClosestInk(inks []Ink) (Ink, bool) {
	if len(inks) == 0 {
		return 0, false
	}
	r, g, b := i.RGB()
	best, bestSum := inks[0], ^uint32(0)
	for _, c := range inks {
		cr, cg, cb := c.RGB()
		sum := sqDiff(r, cr) + sqDiff(g, cg) + sqDiff(b, cb)
		if sum < bestSum {
			best, bestSum = c, sum
		}
	}
	return best, true
}

// Valid reports whether the ink is one of the 27 hardware colours.
func (i Ink) Valid() bool {
	return i < NumInks
}

// Number returns the firmware ink number.
func (i Ink) Number() uint8 {
	return uint8(i)
}

func (i Ink) mustBeValid() {
	if !i.Valid() {
		panic(fmt.Sprintf("ga: ink %d has no hardware colour", uint8(i)))
	}
}

// GateArray returns the hardware register value selecting this ink.
func (i Ink) GateArray() uint8 {
	i.mustBeValid()
	return inksGateArray[i]
}

// RGB returns the 8-bit channels of the ink.
func (i Ink) RGB() (r, g, b uint8) {
	i.mustBeValid()
	c := inksRGB[i]
	return c[0], c[1], c[2]
}

// RGBA implements the color.Color interface.
func (i Ink) RGBA() (r, g, b, a uint32) {
	cr, cg, cb := i.RGB()
	return color.RGBA{cr, cg, cb, 0xff}.RGBA()
}

func (i Ink) String() string {
	if !i.Valid() {
		return fmt.Sprintf("INK(%d)", uint8(i))
	}
	return inkNames[i]
}

// Level is the intensity of one RGB channel of an ink.
type Level uint8

// Channel intensities.
const (
	Zero Level = iota
	Half
	Full
)

// Decrease returns the next lower intensity, stopping at Zero.
func (l Level) Decrease() Level {
	if l == Zero {
		return Zero
	}
	return l - 1
}

// Levels returns the red, green and blue intensities.
func (i Ink) Levels() (r, g, b Level) {
	i.mustBeValid()
	n := uint8(i)
	return Level(n / 3 % 3), Level(n / 9), Level(n % 3)
}

// InkFromLevels builds the ink with the given channel intensities.
func InkFromLevels(r, g, b Level) Ink {
	return Ink(uint8(g)*9 + uint8(r)*3 + uint8(b))
}
