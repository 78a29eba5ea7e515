/*
Package ga implements the Amstrad CPC Gate Array colour model.

The hardware can display 27 colours, called inks. A screen mode shows a
subset of them through pens; the mapping from pen to ink is the palette. The
border has its own pen which is stored alongside the 16 colour pens.
*/
package ga

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode is one of the four CPC screen modes.
type Mode uint8

const (
	// Mode0 is 160x200 with 16 colours, 2 pixels per byte.
	Mode0 Mode = iota
	// Mode1 is 320x200 with 4 colours, 4 pixels per byte.
	Mode1
	// Mode2 is 640x200 with 2 colours, 8 pixels per byte.
	Mode2
	// Mode3 is the undocumented mode; mode 0 byte layout but only 4 colours.
	Mode3
)

// MaxColors returns the number of pens usable in the mode.
func (m Mode) MaxColors() int {
	switch m {
	case Mode0:
		return 16
	case Mode1, Mode3:
		return 4
	case Mode2:
		return 2
	}
	panic(fmt.Sprintf("ga: invalid mode %d", m))
}

// PixelsPerByte returns how many pixels are packed in a screen byte.
func (m Mode) PixelsPerByte() int {
	switch m {
	case Mode0, Mode3:
		return 2
	case Mode1:
		return 4
	case Mode2:
		return 8
	}
	panic(fmt.Sprintf("ga: invalid mode %d", m))
}

// BitsPerPixel returns the number of bits a pixel occupies in a byte.
func (m Mode) BitsPerPixel() int {
	return 8 / m.PixelsPerByte()
}

func (m Mode) String() string {
	return "mode " + strconv.Itoa(int(m))
}

// ParseMode accepts "0".."3", optionally prefixed with "mode".
func ParseMode(s string) (Mode, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimSpace(strings.TrimPrefix(s, "mode"))
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
	return Mode(n), nil
}
