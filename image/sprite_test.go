package image

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/bodgit/cpcimage/ga"
	"github.com/bodgit/cpcimage/pixels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSpriteBytes(t *testing.T) {
	p := ga.NewPalette(ga.Black, ga.BrightYellow)
	s, err := FromSpriteBytes([]byte{0x80, 0x01, 0xff, 0x00}, 2, ga.Mode2, &p)
	require.NoError(t, err)
	assert.Equal(t, 2, s.ByteWidth())
	assert.Equal(t, 16, s.PixelWidth())
	assert.Equal(t, 2, s.Height())
	assert.Equal(t, byte(0x01), s.Get(1, 0))

	_, ok := s.SafeGet(2, 0)
	assert.False(t, ok)

	m, err := s.AsColorMatrix()
	require.NoError(t, err)
	assert.Equal(t, ga.BrightYellow, m.Get(0, 0))
	assert.Equal(t, ga.Black, m.Get(1, 0))
	assert.Equal(t, ga.BrightYellow, m.Get(15, 0))

	_, err = FromSpriteBytes([]byte{1, 2, 3}, 2, ga.Mode2, nil)
	assert.ErrorIs(t, err, ErrBadSize)

	s, err = FromSpriteBytes([]byte{1, 2}, 2, ga.Mode2, nil)
	require.NoError(t, err)
	_, err = s.AsColorMatrix()
	assert.ErrorIs(t, err, ErrNoPalette)
}

func TestUnsetPenFailsDecode(t *testing.T) {
	p := ga.NewPalette(ga.Black)
	s, err := FromSpriteBytes([]byte{0xff}, 1, ga.Mode2, &p)
	require.NoError(t, err)
	_, err = s.AsColorMatrix()
	assert.ErrorIs(t, err, ErrPenNotInPalette)
}

func TestScreenRoundTrip(t *testing.T) {
	rows := make([][]byte, 200)
	for y := range rows {
		rows[y] = make([]byte, StandardByteWidth)
		for x := range rows[y] {
			rows[y][x] = byte(x + y)
		}
	}
	p := ga.DefaultPalette()
	p.Set(15, ga.BrightWhite)
	s := NewSprite(ga.Mode0, &p, rows)

	var buf bytes.Buffer
	require.NoError(t, EncodeScreen(&buf, s))
	require.Equal(t, screenSize, buf.Len())

	// Line 9 is the second line of the second character row
	assert.Equal(t, byte(9), buf.Bytes()[0x800+80])

	m, err := DecodeScreen(bytes.NewReader(buf.Bytes()), ga.Mode0, p)
	require.NoError(t, err)
	assert.Equal(t, 160, m.Width())
	assert.Equal(t, 200, m.Height())

	want, err := s.AsColorMatrix()
	require.NoError(t, err)
	assert.True(t, want.Equal(m))

	img, err := Decode(bytes.NewReader(buf.Bytes()), ga.Mode0, p)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 160, 200), img.Bounds())
}

func TestDecodeScreenSize(t *testing.T) {
	p := ga.DefaultPalette()

	_, err := DecodeScreen(bytes.NewReader(make([]byte, 100)), ga.Mode1, p)
	assert.Equal(t, errNotEnough, err)

	_, err = DecodeScreen(bytes.NewReader(make([]byte, screenSize+1)), ga.Mode1, p)
	assert.Equal(t, errTooMuch, err)

	err = EncodeScreen(&bytes.Buffer{}, NewSprite(ga.Mode1, &p, make([][]byte, 201)))
	assert.ErrorIs(t, err, ErrBadSize)
}

func TestMode0Mode3Mix(t *testing.T) {
	p := ga.NewPalette(ga.Black, ga.Red, ga.Green, ga.Blue)
	top := []ga.Pen{0, 1, 2, 3}
	bottom := []ga.Pen{3, 2, 1, 0}
	s := FromPens(ga.Mode0, &p, [][]ga.Pen{top, bottom})

	mixed, err := Mode0Mode3Mix(s, FirstHalfSecondHalf)
	require.NoError(t, err)
	require.Equal(t, 1, mixed.Height())

	pens := mixed.Pens()[0]
	for x := range pens {
		p0, p3 := pixels.SplitMode0Mode3(pens[x])
		assert.Equal(t, top[x], p0)
		assert.Equal(t, bottom[x], p3)
	}
	assert.Equal(t, bottom, pixels.BytesToPens(ga.Mode3, mixed.Row(0)))

	odd := FromPens(ga.Mode0, &p, [][]ga.Pen{top, bottom, bottom, top})
	mixed, err = Mode0Mode3Mix(odd, OddEven)
	require.NoError(t, err)
	assert.Equal(t, 2, mixed.Height())

	_, err = Mode0Mode3Mix(FromPens(ga.Mode0, &p, [][]ga.Pen{{4, 0}, {0, 0}}), OddEven)
	assert.Error(t, err)
	_, err = Mode0Mode3Mix(FromPens(ga.Mode0, &p, [][]ga.Pen{{0, 0}}), FirstHalfSecondHalf)
	assert.ErrorIs(t, err, ErrBadSize)
}

func TestStackSprites(t *testing.T) {
	p := ga.NewPalette(ga.Black, ga.Red, ga.Green, ga.Blue)
	s0 := FromPens(ga.Mode0, &p, [][]ga.Pen{{1, 2}})
	s1 := FromPens(ga.Mode1, nil, [][]ga.Pen{{3, 2, 1, 0}})

	m, err := StackSprites(s0, s1)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Height())
	assert.Equal(t, ga.Mode0, m.ModeOf(0))
	assert.Equal(t, ga.Mode1, m.ModeOf(1))
	assert.Len(t, m.Bytes(), 2)

	cm, err := m.AsColorMatrix()
	require.NoError(t, err)
	assert.Equal(t, []ga.Ink{ga.Red, ga.Red, ga.Green, ga.Green}, cm.Row(0))
	assert.Equal(t, []ga.Ink{ga.Blue, ga.Green, ga.Red, ga.Black}, cm.Row(1))

	_, err = StackSprites(s0, FromPens(ga.Mode1, nil, [][]ga.Pen{{0, 0, 0, 0, 0}}))
	assert.ErrorIs(t, err, ErrBadSize)
}

func TestPrepare(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			m.Set(x, y, color.NRGBA{uint8(x * 32), uint8(y * 32), 0x40, 0xff})
		}
	}

	q := Quantize(m, 4)
	assert.LessOrEqual(t, uniqueColors(q, 64), 4)
	assert.Same(t, m, Quantize(m, 64))

	d := Dither(m)
	assert.Equal(t, m.Bounds(), d.Bounds())
	for _, c := range d.Pix {
		assert.Less(t, c, uint8(ga.NumInks))
	}

	r := Resize(m, 16, 0)
	assert.Equal(t, image.Rect(0, 0, 16, 16), r.Bounds())
	assert.Equal(t, m.At(3, 3), r.At(6, 6))
}

func TestPreview(t *testing.T) {
	m := testMatrix()

	assert.Equal(t, image.Rect(0, 0, 16, 4), m.Image(ga.Mode0).Bounds())
	assert.Equal(t, image.Rect(0, 0, 8, 4), m.Image(ga.Mode1).Bounds())
	assert.Equal(t, image.Rect(0, 0, 4, 4), m.Image(ga.Mode2).Bounds())

	r, g, b, _ := m.Image(ga.Mode1).At(3, 3).RGBA()
	assert.Equal(t, [3]uint32{0, 0, 0}, [3]uint32{r >> 8, g >> 8, b >> 8}, "black at (1, 1)")

	mask := m.MaskImage(ga.Black)
	assert.Equal(t, uint8(0), mask.ColorIndexAt(0, 0))
	assert.Equal(t, uint8(1), mask.ColorIndexAt(1, 0))
	assert.Equal(t, []byte{0x70, 0xb0}, mask.Pix)
}
