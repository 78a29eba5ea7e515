package pixels

import "github.com/bodgit/cpcimage/ga"

// Mode2ByteToPens decodes the eight mode 2 pixels of b.
func Mode2ByteToPens(b byte) [8]ga.Pen {
	var pens [8]ga.Pen
	for i := range pens {
		pens[i] = ga.Pen(b >> (7 - i) & 1)
	}
	return pens
}

// Mode2PensToByte encodes eight mode 2 pixels; any nonzero pen sets its
// bit. Pens above 3 are treated as pen 0 and a warning is logged.
func Mode2PensToByte(pens [8]ga.Pen) byte {
	var b byte
	for i, pen := range pens {
		if pen > 3 {
			warnf("pixels: %s is invalid in mode 2, using pen 0", pen)
			pen = 0
		}
		if pen != 0 {
			b |= 1 << (7 - i)
		}
	}
	return b
}
