/*
Package pixels packs pens into CPC screen bytes and back.

The bits of the pixels sharing a byte are interleaved: in mode 0 the four
bits of the left pixel occupy byte bits 7, 3, 5 and 1 (pen bits 0 to 3) and
the right pixel bits 6, 2, 4 and 0. Mode 1 splits each two-bit pen between
the high and low nibbles. Mode 2 is one bit per pixel, leftmost pixel in
bit 7. Mode 3 uses the mode 0 layout with only two bits per pen.
*/
package pixels

import (
	"fmt"
	"io"
	"log"
	"sync/atomic"

	"github.com/bodgit/cpcimage/ga"
)

var logger atomic.Pointer[log.Logger]

func init() {
	logger.Store(log.New(io.Discard, "", 0))
}

// SetLogger sets where warnings about out of range pens are written.
func SetLogger(l *log.Logger) {
	logger.Store(l)
}

func warnf(format string, v ...interface{}) {
	logger.Load().Printf(format, v...)
}

// ByteToPens decodes a screen byte into PixelsPerByte pens, leftmost first.
func ByteToPens(m ga.Mode, b byte) []ga.Pen {
	switch m {
	case ga.Mode0:
		p := Mode0ByteToPens(b)
		return p[:]
	case ga.Mode3:
		p := Mode0ByteToPens(b)
		return []ga.Pen{p[0].Limit(ga.Mode3), p[1].Limit(ga.Mode3)}
	case ga.Mode1:
		p := Mode1ByteToPens(b)
		return p[:]
	case ga.Mode2:
		p := Mode2ByteToPens(b)
		return p[:]
	}
	panic(fmt.Sprintf("pixels: invalid mode %d", m))
}

// PensToByte encodes exactly PixelsPerByte pens.
func PensToByte(m ga.Mode, pens []ga.Pen) byte {
	if len(pens) != m.PixelsPerByte() {
		panic(fmt.Sprintf("pixels: %s needs %d pens per byte, got %d", m, m.PixelsPerByte(), len(pens)))
	}
	switch m {
	case ga.Mode0:
		return Mode0PensToByte(pens[0], pens[1])
	case ga.Mode3:
		return Mode0PensToByte(pens[0].Limit(ga.Mode3), pens[1].Limit(ga.Mode3))
	case ga.Mode1:
		return Mode1PensToByte([4]ga.Pen(pens))
	case ga.Mode2:
		return Mode2PensToByte([8]ga.Pen(pens))
	}
	panic(fmt.Sprintf("pixels: invalid mode %d", m))
}

// PensToBytesWithCrop encodes a row of pens, dropping trailing pens that do
// not fill a whole byte.
func PensToBytesWithCrop(m ga.Mode, pens []ga.Pen) []byte {
	n := m.PixelsPerByte()
	out := make([]byte, 0, len(pens)/n)
	for i := 0; i+n <= len(pens); i += n {
		out = append(out, PensToByte(m, pens[i:i+n]))
	}
	return out
}

// PensToBytesWithReplacement encodes a row of pens, completing a trailing
// partial byte with replacement.
func PensToBytesWithReplacement(m ga.Mode, pens []ga.Pen, replacement ga.Pen) []byte {
	n := m.PixelsPerByte()
	out := PensToBytesWithCrop(m, pens)
	if rest := len(pens) % n; rest != 0 {
		last := make([]ga.Pen, n)
		copy(last, pens[len(pens)-rest:])
		for i := rest; i < n; i++ {
			last[i] = replacement
		}
		out = append(out, PensToByte(m, last))
	}
	return out
}

// BytesToPens decodes a row of bytes.
func BytesToPens(m ga.Mode, b []byte) []ga.Pen {
	pens := make([]ga.Pen, 0, len(b)*m.PixelsPerByte())
	for _, v := range b {
		pens = append(pens, ByteToPens(m, v)...)
	}
	return pens
}
