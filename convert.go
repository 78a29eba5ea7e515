package cpcimage

import (
	"crypto/sha1"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/bodgit/cpcimage/ga"
	cimage "github.com/bodgit/cpcimage/image"
)

// Matrix prepares img and returns its transformed color matrix.
func (c *Converter) Matrix(img image.Image) (*cimage.ColorMatrix, error) {
	if c.width > 0 || c.height > 0 {
		img = cimage.Resize(img, c.width, c.height)
	}
	if c.colors > 0 {
		img = cimage.Quantize(img, c.colors)
	}
	if c.dither {
		img = cimage.Dither(img)
	}
	return c.transformations.Apply(cimage.FromImage(img, c.rule))
}

// Palette fixes the palette of m for the converter mode, changing the
// inks of m that do not fit.
func (c *Converter) Palette(m *cimage.ColorMatrix) (ga.Palette, error) {
	if c.palette != nil {
		if err := m.ReduceColorsForMode(c.mode, *c.palette, c.strategy); err != nil {
			return ga.Palette{}, err
		}
		return *c.palette, nil
	}

	p, err := m.ExtractPalette(c.mode)
	if err == nil || !errors.Is(err, cimage.ErrTooManyColors) || c.strategy == cimage.Fail {
		return p, err
	}

	merged := m.ReduceToMaxColors(c.mode.MaxColors())
	c.logger.Printf("merged %d inks to fit %s", merged, c.mode)

	return m.ExtractPalette(c.mode)
}

// ConvertMatrix encodes an already prepared matrix. m is not modified.
func (c *Converter) ConvertMatrix(m *cimage.ColorMatrix, f Format) (Output, error) {
	return f.convert(c, m.Clone())
}

// Convert encodes img in format f.
func (c *Converter) Convert(img image.Image, f Format) (Output, error) {
	m, err := c.Matrix(img)
	if err != nil {
		return nil, err
	}
	return c.ConvertMatrix(m, f)
}

// ConvertReader decodes an image from r and encodes it in format f.
func (c *Converter) ConvertReader(r io.Reader, f Format) (Output, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return c.Convert(img, f)
}

// ConvertFile encodes the image in file. With a store, results are cached
// by the SHA-1 of the file and the conversion settings.
func (c *Converter) ConvertFile(file string, f Format) (Output, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	h := sha1.New()
	img, _, err := image.Decode(io.TeeReader(r, h))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	if _, err := io.Copy(h, r); err != nil {
		return nil, err
	}
	sha := fmt.Sprintf("%X", h.Sum(nil))
	key := c.key(f)

	if c.store != nil {
		o, err := c.store.Find(sha, key)
		if err != nil {
			return nil, err
		}
		if o != nil {
			c.logger.Printf("using cached conversion of \"%s\"", file)
			return o, nil
		}
	}

	o, err := c.Convert(img, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	if c.store != nil {
		if err := c.store.Add(sha, key, o); err != nil {
			return nil, err
		}
	}

	return o, nil
}

func (c *Converter) key(f Format) string {
	return c.String() + " format=" + f.String()
}
