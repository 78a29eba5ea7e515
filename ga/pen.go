package ga

import (
	"fmt"
	"strconv"
)

const (
	// NumPens counts the 16 colour pens plus the border.
	NumPens = 17
	// NumColorPens is the number of pens usable inside the screen area.
	NumColorPens = 16
)

// Pen is a logical colour slot. Values 0 to 15 are colour pens, Border is 16.
type Pen uint8

// Border is the pen of the screen border.
const Border Pen = 16

// PenFromNumber returns pen n, panicking when n is above Border.
func PenFromNumber(n uint8) Pen {
	if n > uint8(Border) {
		panic(fmt.Sprintf("ga: pen %d out of range", n))
	}
	return Pen(n)
}

// Number returns the pen index.
func (p Pen) Number() uint8 {
	return uint8(p)
}

// IsBorder reports whether p is the border pen.
func (p Pen) IsBorder() bool {
	return p == Border
}

// Limit truncates a colour pen to the range legal for mode. The border pen
// is returned as is; masking it would alias it to pen 0 in mode 0.
func (p Pen) Limit(m Mode) Pen {
	if p.IsBorder() {
		return p
	}
	switch m {
	case Mode0:
		return p & 15
	case Mode1, Mode3:
		return p & 3
	case Mode2:
		return p & 1
	}
	panic(fmt.Sprintf("ga: invalid mode %d", m))
}

func wrap(v, n int) Pen {
	v %= n
	if v < 0 {
		v += n
	}
	return Pen(v)
}

// Add moves the pen by delta, wrapping over the colour pens 0 to 15.
func (p Pen) Add(delta int) Pen {
	return wrap(int(p)+delta, NumColorPens)
}

// Sub is Add with a negated delta.
func (p Pen) Sub(delta int) Pen {
	return p.Add(-delta)
}

// AddWithBorder moves the pen by delta, wrapping over 0 to 16.
func (p Pen) AddWithBorder(delta int) Pen {
	return wrap(int(p)+delta, NumPens)
}

// SubWithBorder is AddWithBorder with a negated delta.
func (p Pen) SubWithBorder(delta int) Pen {
	return p.AddWithBorder(-delta)
}

func (p Pen) String() string {
	if p.IsBorder() {
		return "BORDER"
	}
	return "PEN" + strconv.Itoa(int(p))
}
