package tile

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Byte value is 16*y + x
type source [][]byte

func newSource(width, height int) source {
	s := make(source, height)
	for y := range s {
		s[y] = make([]byte, width)
		for x := range s[y] {
			s[y][x] = byte(y*16 + x)
		}
	}
	return s
}

func (s source) ByteWidth() int    { return len(s[0]) }
func (s source) Height() int       { return len(s) }
func (s source) Get(x, y int) byte { return s[y][x] }

func TestExtractGrid(t *testing.T) {
	s := newSource(4, 4)

	tiles, err := Extract(s, Options{TileWidth: 2, TileHeight: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, tiles.GridWidth)
	assert.Equal(t, 2, tiles.GridHeight)
	assert.Equal(t, [][]byte{
		{0x00, 0x01, 0x10, 0x11},
		{0x02, 0x03, 0x12, 0x13},
		{0x20, 0x21, 0x30, 0x31},
		{0x22, 0x23, 0x32, 0x33},
	}, tiles.Data)

	whole, err := Extract(s, Options{})
	require.NoError(t, err)
	require.Len(t, whole.Data, 1)
	assert.Len(t, whole.Data[0], 16)
}

func TestHorizontalDirections(t *testing.T) {
	s := newSource(3, 2)

	tests := []struct {
		h    Horizontal
		want []byte
	}{
		{LeftToRight, []byte{0x00, 0x01, 0x02, 0x10, 0x11, 0x12}},
		{RightToLeft, []byte{0x02, 0x01, 0x00, 0x12, 0x11, 0x10}},
		{LeftToRightFlip, []byte{0x00, 0x01, 0x02, 0x12, 0x11, 0x10}},
		{RightToLeftFlip, []byte{0x02, 0x01, 0x00, 0x10, 0x11, 0x12}},
	}

	for _, tt := range tests {
		t.Run(tt.h.String(), func(t *testing.T) {
			tiles, err := Extract(s, Options{Horizontal: tt.h})
			require.NoError(t, err)
			assert.Equal(t, tt.want, tiles.Data[0])
		})
	}
}

func TestVerticalDirections(t *testing.T) {
	s := newSource(1, 8)

	tests := []struct {
		v    Vertical
		want []byte
	}{
		{TopToBottom, []byte{0x00, 0x10, 0x20, 0x30, 0x40, 0x50, 0x60, 0x70}},
		{BottomToTop, []byte{0x70, 0x60, 0x50, 0x40, 0x30, 0x20, 0x10, 0x00}},
		{GrayCodeFromTop, []byte{0x00, 0x10, 0x30, 0x20, 0x60, 0x70, 0x50, 0x40}},
		{GrayCodeFromBottom, []byte{0x70, 0x60, 0x40, 0x50, 0x10, 0x00, 0x20, 0x30}},
	}

	for _, tt := range tests {
		t.Run(tt.v.String(), func(t *testing.T) {
			tiles, err := Extract(s, Options{Vertical: tt.v})
			require.NoError(t, err)
			assert.Equal(t, tt.want, tiles.Data[0])
		})
	}

	_, err := Extract(newSource(1, 6), Options{Vertical: GrayCodeFromTop})
	assert.ErrorIs(t, err, ErrGrayCodeHeight)
}

func TestCountersAreFreshPerTile(t *testing.T) {
	s := newSource(4, 3)

	tiles, err := Extract(s, Options{TileWidth: 2, Horizontal: LeftToRightFlip})
	require.NoError(t, err)
	require.Len(t, tiles.Data, 2)
	assert.Equal(t, []byte{0x00, 0x01, 0x11, 0x10, 0x20, 0x21}, tiles.Data[0])
	assert.Equal(t, []byte{0x02, 0x03, 0x13, 0x12, 0x22, 0x23}, tiles.Data[1])
}

func TestGridError(t *testing.T) {
	s := newSource(4, 4)

	_, err := Extract(s, Options{TileWidth: 2, TileHeight: 2, GridWidth: 3})
	var ge *GridError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, 6, ge.Bytes)
	assert.Equal(t, 4, ge.HaveBytes)
	assert.Contains(t, err.Error(), "6 bytes by 4 lines")

	_, err = Extract(s, Options{TileWidth: 5})
	assert.ErrorAs(t, err, &ge)

	_, err = Extract(s, Options{Horizontal: Horizontal(9)})
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestParseDirections(t *testing.T) {
	h, err := ParseHorizontal("right-to-left-flip")
	require.NoError(t, err)
	assert.Equal(t, RightToLeftFlip, h)

	v, err := ParseVertical("graycode-from-bottom")
	require.NoError(t, err)
	assert.Equal(t, GrayCodeFromBottom, v)

	_, err = ParseVertical("sideways")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestEncode(t *testing.T) {
	s := newSource(4, 2)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, s, Options{TileWidth: 2}))
	assert.Equal(t, []byte{0x00, 0x01, 0x10, 0x11, 0x02, 0x03, 0x12, 0x13}, buf.Bytes())

	buf.Reset()
	require.NoError(t, EncodeWithHeader(&buf, s, Options{TileWidth: 2}))
	assert.Equal(t, []byte{2, 2, 2, 1}, buf.Bytes()[:4])
	assert.Equal(t, 12, buf.Len())
}

func TestEncodeHeaderOverflow(t *testing.T) {
	tiles, err := Extract(newSource(256, 1), Options{})
	require.NoError(t, err)
	assert.Equal(t, 256, tiles.TileWidth)

	var buf bytes.Buffer
	assert.ErrorIs(t, tiles.Encode(&buf, true), ErrHeaderOverflow)
	assert.Equal(t, 0, buf.Len())

	require.NoError(t, tiles.Encode(&buf, false))
	assert.Equal(t, 256, buf.Len())
}
