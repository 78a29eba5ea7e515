/*
Package image converts between Go images and Amstrad CPC graphics.

A ColorMatrix is a grid of inks and is the pivot between RGB images and
device bytes. A Sprite holds rows of screen bytes for one mode, as produced
by ColorMatrix.AsSprite or read back from memory.

A standard screen is 16384 bytes. Each character row is 8 scan lines, and
consecutive scan lines of a character row are 0x800 bytes apart.
*/
package image

import "errors"

const (
	screenSize   = 0x4000
	lineStride   = 0x800
	linesPerChar = 8
)

var (
	// ErrTooManyColors is returned when a matrix uses more inks than the
	// mode can display.
	ErrTooManyColors = errors.New("image: too many colors for mode")
	// ErrInkNotInPalette is returned when a pixel ink has no pen.
	ErrInkNotInPalette = errors.New("image: ink not in palette")
	// ErrPenNotInPalette is returned when decoding a pen with no ink.
	ErrPenNotInPalette = errors.New("image: pen not in palette")
	// ErrColorNotAllowed is returned by the Fail reduction strategy.
	ErrColorNotAllowed = errors.New("image: color not allowed")
	// ErrNoPalette is returned when a sprite without palette must be decoded.
	ErrNoPalette = errors.New("image: sprite has no palette")
	// ErrBadSize is returned for inconsistent dimensions.
	ErrBadSize = errors.New("image: invalid dimensions")

	errNotEnough = errors.New("image: not enough screen data")
	errTooMuch   = errors.New("image: too much screen data")
)
