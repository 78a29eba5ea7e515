package pixels

import (
	"bytes"
	"io"
	"log"
	"testing"

	"github.com/bodgit/cpcimage/ga"
	"github.com/stretchr/testify/assert"
)

func TestMode0RoundTrip(t *testing.T) {
	for p0 := ga.Pen(0); p0 < 16; p0++ {
		for p1 := ga.Pen(0); p1 < 16; p1++ {
			assert.Equal(t, [2]ga.Pen{p0, p1}, Mode0ByteToPens(Mode0PensToByte(p0, p1)))
		}
	}
	for b := 0; b < 256; b++ {
		p := Mode0ByteToPens(byte(b))
		assert.Equal(t, byte(b), Mode0PensToByte(p[0], p[1]))
	}
}

func TestMode0BitLayout(t *testing.T) {
	tests := []struct {
		p0, p1 ga.Pen
		want   byte
	}{
		{1, 0, 0x80},
		{0, 1, 0x40},
		{2, 0, 0x08},
		{4, 0, 0x20},
		{8, 0, 0x02},
		{0, 8, 0x01},
		{15, 15, 0xff},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Mode0PensToByte(tt.p0, tt.p1), "pens %d,%d", tt.p0, tt.p1)
	}
}

func TestMode1RoundTrip(t *testing.T) {
	for b := 0; b < 256; b++ {
		assert.Equal(t, byte(b), Mode1PensToByte(Mode1ByteToPens(byte(b))))
	}
	for v := 0; v < 256; v++ {
		pens := [4]ga.Pen{ga.Pen(v >> 6 & 3), ga.Pen(v >> 4 & 3), ga.Pen(v >> 2 & 3), ga.Pen(v & 3)}
		assert.Equal(t, pens, Mode1ByteToPens(Mode1PensToByte(pens)))
	}

	assert.Equal(t, byte(0x80), Mode1PensToByte([4]ga.Pen{1, 0, 0, 0}))
	assert.Equal(t, byte(0x08), Mode1PensToByte([4]ga.Pen{2, 0, 0, 0}))
	assert.Equal(t, byte(0x11), Mode1PensToByte([4]ga.Pen{0, 0, 0, 3}))
}

func TestMode2RoundTrip(t *testing.T) {
	for b := 0; b < 256; b++ {
		assert.Equal(t, byte(b), Mode2PensToByte(Mode2ByteToPens(byte(b))))
	}
	assert.Equal(t, byte(0x81), Mode2PensToByte([8]ga.Pen{1, 0, 0, 0, 0, 0, 0, 1}))
	assert.Equal(t, byte(0x40), Mode2PensToByte([8]ga.Pen{0, 3, 0, 0, 0, 0, 0, 0}))
}

func TestOutOfRangePensWarn(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(log.New(&buf, "", 0))
	defer SetLogger(log.New(io.Discard, "", 0))

	assert.Equal(t, byte(0), Mode1PensToByte([4]ga.Pen{4, 0, 0, 0}))
	assert.Contains(t, buf.String(), "PEN4 is invalid in mode 1")

	buf.Reset()
	assert.Equal(t, byte(0), Mode2PensToByte([8]ga.Pen{5}))
	assert.Contains(t, buf.String(), "mode 2")

	buf.Reset()
	assert.Equal(t, byte(0), Mode0PensToByte(ga.Border, 0))
	assert.Contains(t, buf.String(), "BORDER")
}

func TestMixMode0Mode3(t *testing.T) {
	assert.Equal(t, ga.Pen(0), MixMode0Mode3(0, 0))
	assert.Equal(t, ga.Pen(3), MixMode0Mode3(3, 3))
	assert.Equal(t, ga.Pen(5), MixMode0Mode3(0, 1))
	assert.Equal(t, ga.Pen(4), MixMode0Mode3(3, 0))

	seen := make(map[ga.Pen]bool)
	for p0 := ga.Pen(0); p0 < 4; p0++ {
		for p3 := ga.Pen(0); p3 < 4; p3++ {
			mixed := MixMode0Mode3(p0, p3)
			assert.Less(t, mixed, ga.Pen(16))
			assert.False(t, seen[mixed])
			seen[mixed] = true

			// The same byte read in mode 3 shows p3
			b := Mode0PensToByte(mixed, mixed)
			assert.Equal(t, []ga.Pen{p3, p3}, ByteToPens(ga.Mode3, b))

			s0, s3 := SplitMode0Mode3(mixed)
			assert.Equal(t, p0, s0)
			assert.Equal(t, p3, s3)
		}
	}
}

func TestPensToBytes(t *testing.T) {
	pens := []ga.Pen{1, 2, 3, 0, 1}

	assert.Equal(t, []byte{Mode1PensToByte([4]ga.Pen{1, 2, 3, 0})}, PensToBytesWithCrop(ga.Mode1, pens))
	assert.Equal(t, []byte{
		Mode1PensToByte([4]ga.Pen{1, 2, 3, 0}),
		Mode1PensToByte([4]ga.Pen{1, 3, 3, 3}),
	}, PensToBytesWithReplacement(ga.Mode1, pens, 3))

	assert.Equal(t, pens[:4], BytesToPens(ga.Mode1, PensToBytesWithCrop(ga.Mode1, pens)))
	assert.Len(t, PensToBytesWithCrop(ga.Mode2, pens), 0)
	assert.Panics(t, func() { PensToByte(ga.Mode0, pens) })
}
