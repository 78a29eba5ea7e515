package transform

import (
	"testing"

	"github.com/bodgit/cpcimage/ga"
	"github.com/bodgit/cpcimage/image"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matrix() *image.ColorMatrix {
	return image.FromRows([][]ga.Ink{
		{ga.Red, ga.Blue, ga.Red, ga.Blue},
		{ga.Black, ga.Black, ga.Green, ga.Green},
		{ga.White, ga.Red, ga.White, ga.Red},
	})
}

func TestList(t *testing.T) {
	src := matrix()
	l := List{
		CropMargins{Left: 1, Top: 1},
		ReplaceInk{From: ga.Green, To: ga.Yellow},
		BlankLines{Pattern: []ga.Ink{ga.Pink}, Amount: 1, Position: Start},
	}

	out, err := l.Apply(src)
	require.NoError(t, err)
	assert.True(t, matrix().Equal(src), "source untouched")
	assert.Equal(t, [][]ga.Ink{
		{ga.Pink, ga.Pink, ga.Pink},
		{ga.Black, ga.Yellow, ga.Yellow},
		{ga.Red, ga.White, ga.Red},
	}, out.Rows())
	assert.Equal(t, "crop(1,0,1,0),replace(GREEN,YELLOW),blank-lines(PINK,1,start)", l.String())
}

func TestListStopsAtFirstError(t *testing.T) {
	l := List{
		CropMargins{Left: 3, Right: 3},
		DoubleWidth{},
	}
	_, err := l.Apply(matrix())
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Contains(t, err.Error(), "crop(3,3,0,0)")
}

func TestBlankInsertion(t *testing.T) {
	m := matrix()
	require.NoError(t, BlankLines{Pattern: []ga.Ink{ga.Cyan, ga.Lime}, Amount: 3, Position: End}.Apply(m))
	assert.Equal(t, 6, m.Height())
	assert.Equal(t, ga.Cyan, m.Get(0, 3))
	assert.Equal(t, ga.Lime, m.Get(3, 4))
	assert.Equal(t, ga.Cyan, m.Get(2, 5))

	m = matrix()
	require.NoError(t, BlankColumns{Pattern: []ga.Ink{ga.Cyan, ga.Lime}, Amount: 2, Position: Start}.Apply(m))
	assert.Equal(t, []ga.Ink{ga.Cyan, ga.Lime, ga.Red, ga.Blue, ga.Red, ga.Blue}, m.Row(0))

	assert.ErrorIs(t, BlankColumns{Amount: 1}.Apply(m), ErrOutOfRange)
}

func TestSimpleTransformations(t *testing.T) {
	m := matrix()
	require.NoError(t, SkipOddPixels{}.Apply(m))
	assert.Equal(t, []ga.Ink{ga.Red, ga.Red}, m.Row(0))

	require.NoError(t, DoubleWidth{}.Apply(m))
	assert.Equal(t, []ga.Ink{ga.Red, ga.Red, ga.Red, ga.Red}, m.Row(0))

	m = matrix()
	require.NoError(t, Mask{Background: ga.Red}.Apply(m))
	assert.Equal(t, []ga.Ink{ga.BrightWhite, ga.Black, ga.BrightWhite, ga.Black}, m.Row(0))

	m = matrix()
	assert.ErrorIs(t, ReduceColors{Inks: []ga.Ink{ga.Red}, Strategy: image.Fail}.Apply(m), image.ErrColorNotAllowed)
	require.NoError(t, ReduceColors{Inks: []ga.Ink{ga.Red, ga.Black}, Strategy: image.ReplaceWrongColorByClosestInk}.Apply(m))
	assert.Equal(t, []ga.Ink{ga.Black, ga.Red}, m.Inks())

	m = matrix()
	require.NoError(t, MaxColors{N: 3}.Apply(m))
	assert.Len(t, m.Inks(), 3)
	assert.ErrorIs(t, MaxColors{}.Apply(m), ErrOutOfRange)
}

func TestParse(t *testing.T) {
	for _, s := range []string{
		"skip-odd-pixels",
		"double-width",
		"crop(2,2,0,8)",
		"blank-lines(BLACK/WHITE,4,end)",
		"blank-columns(PINK,1,start)",
		"replace(RED,BLACK)",
		"mask(BRIGHTWHITE)",
		"reduce(RED/BLUE,closest)",
		"max-colors(4)",
	} {
		tr, err := Parse(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, tr.String())
	}

	tr, err := Parse(" replace( red , bright white ) ")
	require.NoError(t, err)
	assert.Equal(t, ReplaceInk{From: ga.Red, To: ga.BrightWhite}, tr)

	for _, s := range []string{
		"rotate",
		"crop(1,2)",
		"crop(a,b,c,d)",
		"blank-lines(BLACK,1,middle)",
		"reduce(RED,nearest)",
		"double-width(1)",
		"mask(BLACK",
	} {
		_, err := Parse(s)
		assert.ErrorIs(t, err, ErrSyntax, s)
	}

	_, err = Parse("mask(TEAL)")
	assert.ErrorIs(t, err, ga.ErrUnknownInk)

	l, err := ParseList([]string{"double-width", "max-colors(2)"})
	require.NoError(t, err)
	assert.Len(t, l, 2)
}
