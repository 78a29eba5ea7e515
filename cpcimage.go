/*
Package cpcimage converts images into Amstrad CPC sprites, tiles and screen
memory.

A Converter turns an image into a color matrix, runs the configured
transformations, fixes the palette for the screen mode and hands the result
to an output Format.
*/
package cpcimage

import (
	"fmt"
	"io"
	"log"
	"runtime"

	"github.com/bodgit/cpcimage/ga"
	cimage "github.com/bodgit/cpcimage/image"
	"github.com/bodgit/cpcimage/pixels"
	"github.com/bodgit/cpcimage/transform"
)

// Converter holds the settings shared by every conversion.
type Converter struct {
	mode            ga.Mode
	palette         *ga.Palette
	rule            cimage.ConversionRule
	strategy        cimage.ColorConversionStrategy
	transformations transform.List
	colors          int
	dither          bool
	width, height   int
	workers         int
	store           *Store
	logger          *log.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithPalette fixes the palette. Inks outside it are replaced according to
// the conversion strategy. Without it the palette is built from the inks
// of the image.
func WithPalette(p ga.Palette) Option {
	return func(c *Converter) {
		c.palette = &p
	}
}

// WithStrategy sets how inks that do not fit the palette are handled.
func WithStrategy(s cimage.ColorConversionStrategy) Option {
	return func(c *Converter) {
		c.strategy = s
	}
}

// WithRule sets how source pixels map to matrix columns.
func WithRule(r cimage.ConversionRule) Option {
	return func(c *Converter) {
		c.rule = r
	}
}

// WithTransformations sets the edits applied before encoding.
func WithTransformations(l transform.List) Option {
	return func(c *Converter) {
		c.transformations = l
	}
}

// WithQuantize reduces the source to n colors before inks are matched.
func WithQuantize(n int) Option {
	return func(c *Converter) {
		c.colors = n
	}
}

// WithDither diffuses the error of matching the source to the 27 inks.
func WithDither() Option {
	return func(c *Converter) {
		c.dither = true
	}
}

// WithResize scales the source first. A zero dimension keeps the aspect
// ratio.
func WithResize(width, height int) Option {
	return func(c *Converter) {
		c.width, c.height = width, height
	}
}

// WithStore caches conversions of files.
func WithStore(s *Store) Option {
	return func(c *Converter) {
		c.store = s
	}
}

// WithWorkers sets the number of files converted at once by
// ConvertDirectory.
func WithWorkers(n int) Option {
	return func(c *Converter) {
		c.workers = n
	}
}

// WithLogger sets where progress and warnings are written. Warnings about
// pens that do not fit the screen mode go there too.
func WithLogger(l *log.Logger) Option {
	return func(c *Converter) {
		c.logger = l
	}
}

// New returns a Converter for screen mode m.
func New(m ga.Mode, options ...Option) *Converter {
	c := &Converter{
		mode:     m,
		strategy: cimage.ReplaceWrongColorByClosestInk,
		workers:  runtime.NumCPU(),
		logger:   log.New(io.Discard, "", 0),
	}
	for _, o := range options {
		o(c)
	}
	pixels.SetLogger(c.logger)
	return c
}

// Mode returns the screen mode.
func (c *Converter) Mode() ga.Mode {
	return c.mode
}

// String describes every setting that changes the converted bytes.
func (c *Converter) String() string {
	palette := "auto"
	if c.palette != nil {
		palette = c.palette.String()
	}
	return fmt.Sprintf("%s rule=%d strategy=%s palette=%s transform=%s colors=%d dither=%t resize=%dx%d",
		c.mode, c.rule, c.strategy, palette, c.transformations, c.colors, c.dither, c.width, c.height)
}
