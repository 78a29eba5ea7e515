package image

import (
	"fmt"
	"image"
	"io"

	"github.com/bodgit/cpcimage/ga"
)

// StandardByteWidth is the byte width of a standard 80 column screen.
const StandardByteWidth = 80

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// screenLineOffset returns where line y starts in a 16KB screen that is
// bytesWidth bytes wide.
func screenLineOffset(y, bytesWidth int) int {
	return (y/linesPerChar)*bytesWidth + (y%linesPerChar)*lineStride
}

// screenHeight returns how many lines of bytesWidth bytes fit in one 16KB
// screen.
func screenHeight(bytesWidth int) int {
	return lineStride / bytesWidth * linesPerChar
}

// FromScreen decodes a 16KB memory dump laid out the way the CRTC scans
// it. Line y starts at (y/8)*bytesWidth + (y%8)*0x800.
func FromScreen(data []byte, bytesWidth int, mode ga.Mode, palette ga.Palette) (*ColorMatrix, error) {
	if bytesWidth <= 0 || bytesWidth > lineStride {
		return nil, fmt.Errorf("%w: byte width %d", ErrBadSize, bytesWidth)
	}
	if len(data) < screenSize {
		return nil, fmt.Errorf("%w: %d bytes, a screen is %d", errNotEnough, len(data), screenSize)
	}

	height := screenHeight(bytesWidth)
	rows := make([][]byte, height)
	for y := range rows {
		offset := screenLineOffset(y, bytesWidth)
		rows[y] = data[offset : offset+bytesWidth]
	}
	return NewSprite(mode, &palette, rows).AsColorMatrix()
}

type decoder struct {
	r io.Reader

	mode       ga.Mode
	palette    ga.Palette
	bytesWidth int

	matrix *ColorMatrix

	tmp [screenSize]byte
}

func (d *decoder) decode(r io.Reader) error {
	d.r = r

	if err := readFull(d.r, d.tmp[:]); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return errNotEnough
	}

	if n, err := r.Read(d.tmp[:1]); n != 0 || (err != io.EOF && err != io.ErrUnexpectedEOF) {
		if err != nil {
			return err
		}
		return errTooMuch
	}

	m, err := FromScreen(d.tmp[:], d.bytesWidth, d.mode, d.palette)
	if err != nil {
		return err
	}
	d.matrix = m

	return nil
}

// DecodeScreen reads exactly one 16KB standard screen from r.
func DecodeScreen(r io.Reader, mode ga.Mode, palette ga.Palette) (*ColorMatrix, error) {
	d := decoder{mode: mode, palette: palette, bytesWidth: StandardByteWidth}
	if err := d.decode(r); err != nil {
		return nil, err
	}
	return d.matrix, nil
}

// Decode reads a standard screen from r and returns it as a paletted image
// with one pixel per CPC pixel.
func Decode(r io.Reader, mode ga.Mode, palette ga.Palette) (image.Image, error) {
	m, err := DecodeScreen(r, mode, palette)
	if err != nil {
		return nil, err
	}
	return m.Paletted(), nil
}
