package cpcimage

import (
	"fmt"
	"image"
	"image/gif"
	"io"

	"github.com/bodgit/cpcimage/ga"
	cimage "github.com/bodgit/cpcimage/image"
	"golang.org/x/image/draw"
)

// AnimationOptions select which edges of the frames may be cropped to the
// area that changes.
type AnimationOptions struct {
	Horizontal cimage.HorizontalCrop
	Vertical   cimage.VerticalCrop
}

// Frames composites the frames of an animated GIF, honouring the disposal
// method of each frame.
func Frames(g *gif.GIF) []image.Image {
	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	canvas := image.NewRGBA(bounds)

	frames := make([]image.Image, 0, len(g.Image))
	for i, frame := range g.Image {
		var previous *image.RGBA
		disposal := byte(gif.DisposalNone)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			previous = image.NewRGBA(bounds)
			draw.Draw(previous, bounds, canvas, image.Point{}, draw.Src)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)

		snapshot := image.NewRGBA(bounds)
		draw.Draw(snapshot, bounds, canvas, image.Point{}, draw.Src)
		frames = append(frames, snapshot)

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = previous
		}
	}
	return frames
}

// ConvertAnimation encodes every frame of the GIF in r with one palette
// shared by all frames. Frames are cropped to the area that changes.
func (c *Converter) ConvertAnimation(r io.Reader, f Format, o AnimationOptions) ([]Output, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, err
	}

	var frames cimage.ColorMatrixList
	for _, img := range Frames(g) {
		m, err := c.Matrix(img)
		if err != nil {
			return nil, err
		}
		frames = append(frames, m)
	}

	constraint := cimage.CompleteByteForMode(c.mode)
	frames, err = frames.Crop(o.Horizontal, o.Vertical, constraint, constraint)
	if err != nil {
		return nil, err
	}

	palette, err := c.sharedPalette(frames)
	if err != nil {
		return nil, err
	}

	shared := *c
	shared.palette = &palette

	outputs := make([]Output, 0, len(frames))
	for i, m := range frames {
		out, err := shared.ConvertMatrix(m, f)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

// sharedPalette collects the inks of every frame, in frame order, into one
// palette that is then locked.
func (c *Converter) sharedPalette(frames cimage.ColorMatrixList) (ga.Palette, error) {
	if c.palette != nil {
		return *c.palette, nil
	}

	lp := ga.NewLockablePalette(ga.EmptyPalette())
	for _, m := range frames {
		if err := lp.AddNovelInks(m.Inks()); err != nil {
			return ga.Palette{}, err
		}
	}
	lp.Lock()

	p := lp.Palette()
	if n := len(p.Inks()); n > c.mode.MaxColors() {
		return ga.Palette{}, fmt.Errorf("%w: animation uses %d inks, %s allows %d", cimage.ErrTooManyColors, n, c.mode, c.mode.MaxColors())
	}
	return p, nil
}
