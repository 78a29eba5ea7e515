package pixels

import "github.com/bodgit/cpcimage/ga"

// Byte bits holding pen bit 1 and pen bit 0 of each of the four pixels.
var mode1Bits = [4][2]uint{
	{3, 7},
	{2, 6},
	{1, 5},
	{0, 4},
}

// Mode1ByteToPens decodes the four mode 1 pixels of b.
func Mode1ByteToPens(b byte) [4]ga.Pen {
	var pens [4]ga.Pen
	for pixel, bits := range mode1Bits {
		if b&(1<<bits[0]) != 0 {
			pens[pixel] |= 2
		}
		if b&(1<<bits[1]) != 0 {
			pens[pixel] |= 1
		}
	}
	return pens
}

// Mode1PensToByte encodes four mode 1 pixels. Pens above 3 are replaced by
// pen 0 and a warning is logged.
func Mode1PensToByte(pens [4]ga.Pen) byte {
	var b byte
	for pixel, pen := range pens {
		if pen > 3 {
			warnf("pixels: %s is invalid in mode 1, using pen 0", pen)
			pen = 0
		}
		bits := mode1Bits[pixel]
		if pen&2 != 0 {
			b |= 1 << bits[0]
		}
		if pen&1 != 0 {
			b |= 1 << bits[1]
		}
	}
	return b
}
