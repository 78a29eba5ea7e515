package image

import (
	"fmt"
	"io"
)

type encoder struct {
	w io.Writer
}

func (e *encoder) encode(s *Sprite) error {
	var screen [screenSize]byte
	for y := 0; y < s.Height(); y++ {
		copy(screen[screenLineOffset(y, s.ByteWidth()):], s.data[y])
	}
	_, err := e.w.Write(screen[:])
	return err
}

// EncodeScreen writes s to w as a 16KB memory dump, each line at the
// address the CRTC displays it from. The sprite must fit in one screen.
func EncodeScreen(w io.Writer, s *Sprite) error {
	bw := s.ByteWidth()
	if bw == 0 || bw > lineStride || s.Height() > screenHeight(bw) {
		return fmt.Errorf("%w: %dx%d bytes does not fit a screen", ErrBadSize, bw, s.Height())
	}

	e := encoder{w: w}

	return e.encode(s)
}
