package image

import (
	"image"
	"image/color"

	"github.com/bodgit/cpcimage/ga"
	"github.com/mi-v/img1b"
	"golang.org/x/image/draw"
)

// Paletted returns the matrix as an image with one pixel per matrix cell,
// indexed into the 27 hardware inks.
func (m *ColorMatrix) Paletted() *image.Paletted {
	pm := image.NewPaletted(image.Rect(0, 0, m.Width(), m.Height()), ga.Inks27)
	for y, row := range m.rows {
		for x, ink := range row {
			pm.SetColorIndex(x, y, ink.Number())
		}
	}
	return pm
}

// Image renders the matrix with the pixel aspect ratio of mode. Every
// mode is scaled to a 640 pixel wide, line doubled, equivalent.
func (m *ColorMatrix) Image(mode ga.Mode) *image.RGBA {
	src := m.Paletted()
	sx := 8 / mode.PixelsPerByte()
	dst := image.NewRGBA(image.Rect(0, 0, m.Width()*sx, m.Height()*2))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// MaskImage returns a 1 bit image where background pixels are index 0 and
// every other pixel is index 1. Rows are packed most significant bit
// first, the mode 2 byte layout.
func (m *ColorMatrix) MaskImage(background ga.Ink) *img1b.Image {
	mask := img1b.New(image.Rect(0, 0, m.Width(), m.Height()), color.Palette{color.Black, color.White})
	for y, row := range m.rows {
		for x, ink := range row {
			if ink != background {
				mask.SetColorIndex(x, y, 1)
			}
		}
	}
	return mask
}
