package ga

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPalette(t *testing.T) {
	p := DefaultPalette()
	assert.Equal(t, 15, p.Len())
	for i := 0; i < 15; i++ {
		assert.Equal(t, Ink(i), p.Get(Pen(i)))
	}
	assert.False(t, p.ContainsPen(15))
	assert.False(t, p.ContainsPen(Border))
}

func TestPaletteGetUnsetPanics(t *testing.T) {
	p := EmptyPalette()
	assert.PanicsWithValue(t, "ga: PEN3 is not set in palette", func() { p.Get(3) })

	_, ok := p.SafeGet(3)
	assert.False(t, ok)
}

func TestPenForInk(t *testing.T) {
	p := NewPalette(Red, Blue, Red)
	p.Set(Border, Orange)

	pen, ok := p.PenForInk(Red)
	require.True(t, ok)
	assert.Equal(t, Pen(0), pen, "smallest pen wins")

	_, ok = p.PenForInk(Orange)
	assert.False(t, ok, "border is never searched")
	assert.False(t, p.ContainsInk(Orange))
	assert.True(t, p.ContainsInk(Blue))
}

func TestNextUnusedPenForMode(t *testing.T) {
	p := NewPalette(Black, Blue)

	pen, ok := p.NextUnusedPenForMode(Mode1)
	require.True(t, ok)
	assert.Equal(t, Pen(2), pen)

	_, ok = p.NextUnusedPenForMode(Mode2)
	assert.False(t, ok)
}

func TestAddNovelInksExceptInBorder(t *testing.T) {
	p := NewPalette(Black, Blue)
	p.Set(Border, Red)

	added, notAdded := p.AddNovelInksExceptInBorder([]Ink{Blue, Red, Green, Red})
	assert.Equal(t, 0, added)
	assert.Equal(t, 0, notAdded)
	assert.Equal(t, []Ink{Black, Blue, Red, Green}, p.Inks())

	full := EmptyPalette()
	inks := make([]Ink, 18)
	for i := range inks {
		inks[i] = Ink(i)
	}
	_, notAdded = full.AddNovelInksExceptInBorder(inks)
	assert.Equal(t, 2, notAdded)
	assert.False(t, full.ContainsPen(Border))
}

func TestPaletteJSON(t *testing.T) {
	p := NewPalette(Black, BrightWhite, Orange)
	p.Set(Border, Blue)

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `[0,26,15,0,0,0,0,0,0,0,0,0,0,0,0,0,1]`, string(b))

	var q Palette
	require.NoError(t, json.Unmarshal(b, &q))
	assert.Equal(t, NumPens, q.Len())
	assert.Equal(t, Orange, q.Get(2))
	assert.Equal(t, Blue, q.Get(Border))

	assert.Error(t, json.Unmarshal([]byte(`[27]`), &q))
}

func TestPaletteBinary(t *testing.T) {
	p := DefaultPalette()
	b, err := p.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, b, NumPens)

	var q Palette
	require.NoError(t, q.UnmarshalBinary(b[:4]))
	assert.Equal(t, []Ink{Black, Blue, BrightBlue, Red}, q.Inks())

	assert.Equal(t, []byte{0x54, 0x44}, NewPalette(Black, Blue).GateArrayBytes()[:2])
}

func TestLockablePalette(t *testing.T) {
	l := NewLockablePalette(EmptyPalette())
	require.NoError(t, l.Set(0, Red))
	require.NoError(t, l.AddNovelInks([]Ink{Blue}))

	l.Lock()
	assert.True(t, l.Locked())
	assert.ErrorIs(t, l.Set(1, Green), ErrPaletteLocked)
	assert.ErrorIs(t, l.Replace(DefaultPalette()), ErrPaletteLocked)
	assert.ErrorIs(t, l.AddNovelInks([]Ink{Green}), ErrPaletteLocked)
	assert.Equal(t, []Ink{Red, Blue}, l.Palette().Inks())

	l.Unlock()
	assert.NoError(t, l.Set(2, Green))
}

func TestRGBFadeOut(t *testing.T) {
	p := NewPalette(BrightWhite)
	var got []Ink
	for _, f := range p.RGBFadeOut() {
		got = append(got, f.Get(0))
	}
	assert.Equal(t, []Ink{PastelMagenta, BrightMagenta, Mauve, BrightBlue, Blue, Black}, got)

	p = NewPalette(Orange, Blue)
	fades := p.RGBFadeOut()
	require.Len(t, fades, 4)
	assert.Equal(t, []Ink{BrightRed, Blue}, fades[0].Inks())
	assert.Equal(t, []Ink{Red, Blue}, fades[1].Inks())
	assert.Equal(t, []Ink{Black, Blue}, fades[2].Inks())
	assert.Equal(t, []Ink{Black, Black}, fades[3].Inks())

	assert.Empty(t, NewPalette(Black).RGBFadeOut())
}

func TestPaletteClone(t *testing.T) {
	p := NewPalette(Red, Blue)
	q := p.Clone()
	q.Set(0, Green)
	assert.Equal(t, Red, p.Get(0))
	assert.False(t, p.Equal(q))
}

func TestColorPalette(t *testing.T) {
	p := NewPalette(Red, Blue)
	p.Set(Border, Green)

	cp := p.ColorPalette(Mode1)
	require.Len(t, cp, 4)
	assert.Equal(t, Red, cp[0])
	assert.Equal(t, Blue, cp[1])
	assert.Equal(t, Black, cp[2], "unset pens are black")
	assert.Equal(t, 1, cp.Index(Blue))

	assert.Len(t, p.ColorPalette(Mode0), 16)
	assert.Len(t, p.ColorPalette(Mode2), 2)
}
