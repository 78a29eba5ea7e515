package image

import (
	"image"
	"image/color"

	"github.com/bodgit/cpcimage/ga"
	"github.com/disintegration/gift"
	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/draw"
)

func uniqueColors(m image.Image, limit int) int {
	seen := make(map[color.RGBA]struct{})
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			seen[color.RGBAModel.Convert(m.At(x, y)).(color.RGBA)] = struct{}{}
			if len(seen) > limit {
				return len(seen)
			}
		}
	}
	return len(seen)
}

// Quantize reduces m to at most n colors with a median cut. Images that
// already have few enough colors are returned unchanged.
func Quantize(m image.Image, n int) image.Image {
	if uniqueColors(m, n) <= n {
		return m
	}

	b := m.Bounds()
	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, n), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)

	return pm
}

// Dither maps m onto the 27 hardware inks with Floyd-Steinberg error
// diffusion.
func Dither(m image.Image) *image.Paletted {
	b := m.Bounds()
	pm := image.NewPaletted(b, ga.Inks27)
	draw.FloydSteinberg.Draw(pm, b, m, b.Min)
	return pm
}

// Resize scales m to width by height pixels without blending pixels, so no
// new colors appear. A zero dimension keeps the aspect ratio.
func Resize(m image.Image, width, height int) image.Image {
	g := gift.New(gift.Resize(width, height, gift.NearestNeighborResampling))
	dst := image.NewNRGBA(g.Bounds(m.Bounds()))
	g.Draw(dst, m)
	return dst
}
