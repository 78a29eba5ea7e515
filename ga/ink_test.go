package ga

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInkFromRGBIsIdempotent(t *testing.T) {
	for i := 0; i < NumInks; i++ {
		ink := Ink(i)
		r, g, b := ink.RGB()
		first := InkFromRGB(r, g, b)
		assert.Equal(t, ink, first)

		r, g, b = first.RGB()
		assert.Equal(t, first, InkFromRGB(r, g, b))
	}
}

func TestInkFromRGBNearest(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    Ink
	}{
		{"near black", 0x10, 0x08, 0x00, Black},
		{"near orange", 0xf0, 0x70, 0x10, Orange},
		{"near white", 0x70, 0x90, 0x88, White},
		// 0x40 is equidistant from 0x00 and 0x80, the lower ink wins
		{"tie", 0x00, 0x00, 0x40, Black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InkFromRGB(tt.r, tt.g, tt.b))
		})
	}
}

func TestInkFromColor(t *testing.T) {
	assert.Equal(t, BrightRed, InkFromColor(color.RGBA{0xff, 0, 0, 0xff}))
	assert.Equal(t, PastelCyan, InkFromColor(PastelCyan))
}

func TestInkFromName(t *testing.T) {
	tests := []struct {
		name string
		want Ink
	}{
		{"black", Black},
		{"Bright Blue", BrightBlue},
		{"PASTEL_CYAN", PastelCyan},
		{"grey", White},
		{"GRAY", White},
		{"bright white", BrightWhite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ink, err := InkFromName(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ink)
		})
	}

	_, err := InkFromName("teal")
	assert.ErrorIs(t, err, ErrUnknownInk)
	assert.Contains(t, err.Error(), "teal")

	assert.PanicsWithError(t, `ga: unknown ink: "teal"`, func() { MustInkFromName("teal") })
}

func TestInkFromNumber(t *testing.T) {
	assert.Equal(t, Orange, InkFromNumber(15))
	assert.NotPanics(t, func() { InkFromNumber(31) })
	assert.Panics(t, func() { InkFromNumber(32) })

	assert.False(t, InkFromNumber(27).Valid())
	assert.Panics(t, func() { InkFromNumber(27).GateArray() })
}

func TestInkGateArray(t *testing.T) {
	assert.Equal(t, uint8(0x54), Black.GateArray())
	assert.Equal(t, uint8(0x40), White.GateArray())
	assert.Equal(t, uint8(0x4b), BrightWhite.GateArray())

	seen := make(map[uint8]bool)
	for i := 0; i < NumInks; i++ {
		v := Ink(i).GateArray()
		assert.False(t, seen[v], "duplicate hardware value 0x%02x", v)
		seen[v] = true
	}
}

func TestInkLevels(t *testing.T) {
	for i := 0; i < NumInks; i++ {
		r, g, b := Ink(i).Levels()
		assert.Equal(t, Ink(i), InkFromLevels(r, g, b))

		cr, cg, cb := Ink(i).RGB()
		assert.Equal(t, []uint8{cr, cg, cb}, []uint8{levelValue(r), levelValue(g), levelValue(b)})
	}
}

func levelValue(l Level) uint8 {
	return [...]uint8{0x00, 0x80, 0xff}[l]
}

func TestClosestInk(t *testing.T) {
	ink, ok := Orange.ClosestInk([]Ink{Blue, BrightRed, BrightYellow})
	require.True(t, ok)
	assert.Equal(t, BrightYellow, ink)

	_, ok = Orange.ClosestInk(nil)
	assert.False(t, ok)
}
