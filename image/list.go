package image

import (
	"fmt"
	"image"

	"github.com/bodgit/cpcimage/ga"
)

// HorizontalCrop selects which vertical edges may move when cropping.
type HorizontalCrop int

// Horizontal crop edges.
const (
	HorizontalCropNone HorizontalCrop = iota
	HorizontalCropLeft
	HorizontalCropRight
	HorizontalCropBoth
)

// VerticalCrop selects which horizontal edges may move when cropping.
type VerticalCrop int

// Vertical crop edges.
const (
	VerticalCropNone VerticalCrop = iota
	VerticalCropTop
	VerticalCropBottom
	VerticalCropBoth
)

// HorizontalCropConstraint widens a crop edge so that it falls on a byte
// boundary. The zero value applies no constraint.
type HorizontalCropConstraint struct {
	pixelsPerByte int
}

// CompleteByteForMode aligns an edge on whole bytes of the given mode.
func CompleteByteForMode(m ga.Mode) HorizontalCropConstraint {
	return HorizontalCropConstraint{pixelsPerByte: m.PixelsPerByte()}
}

func (c HorizontalCropConstraint) left(x int) int {
	if c.pixelsPerByte <= 1 {
		return x
	}
	return x - x%c.pixelsPerByte
}

func (c HorizontalCropConstraint) right(x, width int) int {
	if c.pixelsPerByte <= 1 {
		return x
	}
	return min((x/c.pixelsPerByte+1)*c.pixelsPerByte-1, width-1)
}

// ColorMatrixList is a sequence of same sized matrices, such as the frames
// of an animation.
type ColorMatrixList []*ColorMatrix

// Changes returns the bounding rectangle of every pixel that differs
// between two consecutive frames, and false if nothing changes.
func (l ColorMatrixList) Changes() (image.Rectangle, bool) {
	var r image.Rectangle
	found := false
	for i := 1; i < len(l); i++ {
		for _, p := range l[i-1].Diff(l[i]).DiffToPositions() {
			pr := image.Rect(p.X, p.Y, p.X+1, p.Y+1)
			if !found {
				r, found = pr, true
				continue
			}
			r = r.Union(pr)
		}
	}
	return r, found
}

// Crop cuts every frame to the area that changes during the sequence. Only
// the edges selected by h and v move; the others stay at the matrix
// border. The left and right constraints then widen the horizontal range
// outward. When no pixel changes the frames are returned as they are.
func (l ColorMatrixList) Crop(h HorizontalCrop, v VerticalCrop, left, right HorizontalCropConstraint) (ColorMatrixList, error) {
	if len(l) == 0 {
		return l, nil
	}
	width, height := l[0].Width(), l[0].Height()
	for i, m := range l {
		if m.Width() != width || m.Height() != height {
			return nil, fmt.Errorf("%w: frame %d is %dx%d, expected %dx%d", ErrBadSize, i, m.Width(), m.Height(), width, height)
		}
	}

	changes, ok := l.Changes()
	if !ok {
		return l, nil
	}

	startX, stopX := 0, width-1
	if h == HorizontalCropLeft || h == HorizontalCropBoth {
		startX = changes.Min.X
	}
	if h == HorizontalCropRight || h == HorizontalCropBoth {
		stopX = changes.Max.X - 1
	}
	startX = left.left(startX)
	stopX = right.right(stopX, width)

	startY, stopY := 0, height-1
	if v == VerticalCropTop || v == VerticalCropBoth {
		startY = changes.Min.Y
	}
	if v == VerticalCropBottom || v == VerticalCropBoth {
		stopY = changes.Max.Y - 1
	}

	cropped := make(ColorMatrixList, len(l))
	for i, m := range l {
		cropped[i] = m.Window(startX, startY, stopX-startX+1, stopY-startY+1)
	}
	return cropped, nil
}
