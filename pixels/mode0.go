package pixels

import "github.com/bodgit/cpcimage/ga"

// Byte bit holding pen bit 0, 1, 2 and 3 of each pixel.
var mode0Bits = [2][4]uint{
	{7, 3, 5, 1},
	{6, 2, 4, 0},
}

// Mode0ByteToPens decodes the two mode 0 pixels of b.
func Mode0ByteToPens(b byte) [2]ga.Pen {
	var pens [2]ga.Pen
	for pixel, bits := range mode0Bits {
		for penBit, pos := range bits {
			if b&(1<<pos) != 0 {
				pens[pixel] |= 1 << penBit
			}
		}
	}
	return pens
}

func checkMode0(p ga.Pen) ga.Pen {
	if p > 15 {
		warnf("pixels: %s is invalid in mode 0, using pen 0", p)
		return 0
	}
	return p
}

// Mode0PensToByte encodes two mode 0 pixels. Pens above 15 are replaced by
// pen 0 and a warning is logged.
func Mode0PensToByte(p0, p1 ga.Pen) byte {
	var b byte
	for pixel, pen := range [2]ga.Pen{checkMode0(p0), checkMode0(p1)} {
		for penBit, pos := range mode0Bits[pixel] {
			if pen&(1<<penBit) != 0 {
				b |= 1 << pos
			}
		}
	}
	return b
}

// mode0Mode3[p0][p3]
var mode0Mode3 = [4][4]ga.Pen{
	{0, 5, 6, 7},
	{8, 1, 10, 11},
	{12, 13, 2, 15},
	{4, 9, 14, 3},
}

// MixMode0Mode3 returns the mode 0 pen which shows as p0 when the byte is
// displayed in mode 0 and as p3 when displayed in mode 3. Both pens must be
// in the range 0 to 3.
func MixMode0Mode3(p0, p3 ga.Pen) ga.Pen {
	return mode0Mode3[p0&3][p3&3]
}

// SplitMode0Mode3 is the inverse of MixMode0Mode3.
func SplitMode0Mode3(p ga.Pen) (p0, p3 ga.Pen) {
	for i := range mode0Mode3 {
		for j, v := range mode0Mode3[i] {
			if v == p&15 {
				return ga.Pen(i), ga.Pen(j)
			}
		}
	}
	panic("pixels: mode 0/3 table is not a permutation")
}
