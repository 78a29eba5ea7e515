package main

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bodgit/cpcimage"
	"github.com/bodgit/cpcimage/ga"
	cimage "github.com/bodgit/cpcimage/image"
	"github.com/bodgit/cpcimage/screen"
	"github.com/bodgit/cpcimage/tile"
	"github.com/bodgit/cpcimage/transform"
	"github.com/urfave/cli/v2"
	_ "golang.org/x/image/bmp"
)

const defaultDB = "cpcimage.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

// parsePalette accepts a comma separated list of ink names or numbers,
// assigned to pens in order.
func parsePalette(s string) (ga.Palette, error) {
	var inks []ga.Ink
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if n, err := strconv.ParseUint(field, 10, 8); err == nil {
			if n >= ga.NumInks {
				return ga.Palette{}, fmt.Errorf("%w: %q", ga.ErrUnknownInk, field)
			}
			inks = append(inks, ga.InkFromNumber(uint8(n)))
			continue
		}
		ink, err := ga.InkFromName(field)
		if err != nil {
			return ga.Palette{}, err
		}
		inks = append(inks, ink)
	}
	if len(inks) > ga.NumPens {
		return ga.Palette{}, fmt.Errorf("palette has %d inks, at most %d allowed", len(inks), ga.NumPens)
	}
	return ga.NewPalette(inks...), nil
}

func parseStrategy(s string) (cimage.ColorConversionStrategy, error) {
	for _, strategy := range []cimage.ColorConversionStrategy{
		cimage.ReplaceWrongColorByFirstColor,
		cimage.ReplaceWrongColorByClosestInk,
		cimage.Fail,
	} {
		if strategy.String() == s {
			return strategy, nil
		}
	}
	return 0, fmt.Errorf("unknown strategy %q", s)
}

func parseHorizontalCrop(s string) (cimage.HorizontalCrop, error) {
	switch s {
	case "none":
		return cimage.HorizontalCropNone, nil
	case "left":
		return cimage.HorizontalCropLeft, nil
	case "right":
		return cimage.HorizontalCropRight, nil
	case "both":
		return cimage.HorizontalCropBoth, nil
	}
	return 0, fmt.Errorf("unknown horizontal crop %q", s)
}

func parseVerticalCrop(s string) (cimage.VerticalCrop, error) {
	switch s {
	case "none":
		return cimage.VerticalCropNone, nil
	case "top":
		return cimage.VerticalCropTop, nil
	case "bottom":
		return cimage.VerticalCropBottom, nil
	case "both":
		return cimage.VerticalCropBoth, nil
	}
	return 0, fmt.Errorf("unknown vertical crop %q", s)
}

func mode(c *cli.Context) (ga.Mode, error) {
	return ga.ParseMode(c.String("mode"))
}

func palette(c *cli.Context) (ga.Palette, bool, error) {
	if !c.IsSet("palette") {
		return ga.Palette{}, false, nil
	}
	p, err := parsePalette(c.String("palette"))
	if err != nil {
		return ga.Palette{}, false, err
	}
	return p, true, nil
}

// newConverter builds a converter from the global flags. The returned
// function closes the store, if any.
func newConverter(c *cli.Context) (*cpcimage.Converter, func(), error) {
	m, err := mode(c)
	if err != nil {
		return nil, nil, err
	}

	logger := newLogger(c)
	options := []cpcimage.Option{cpcimage.WithLogger(logger)}

	p, ok, err := palette(c)
	if err != nil {
		return nil, nil, err
	}
	if ok {
		options = append(options, cpcimage.WithPalette(p))
	}

	strategy, err := parseStrategy(c.String("strategy"))
	if err != nil {
		return nil, nil, err
	}
	options = append(options, cpcimage.WithStrategy(strategy))

	if c.Bool("skip-odd-pixels") {
		options = append(options, cpcimage.WithRule(cimage.Mode0SkipOddPixels))
	}

	l, err := transform.ParseList(c.StringSlice("transform"))
	if err != nil {
		return nil, nil, err
	}
	options = append(options, cpcimage.WithTransformations(l))

	if n := c.Int("colors"); n > 0 {
		options = append(options, cpcimage.WithQuantize(n))
	}
	if c.Bool("dither") {
		options = append(options, cpcimage.WithDither())
	}
	if c.Int("width") > 0 || c.Int("height") > 0 {
		options = append(options, cpcimage.WithResize(c.Int("width"), c.Int("height")))
	}
	if n := c.Int("workers"); n > 0 {
		options = append(options, cpcimage.WithWorkers(n))
	}

	closer := func() {}
	if c.Bool("cache") {
		s, err := cpcimage.NewStore(c.String("db"))
		if err != nil {
			return nil, nil, err
		}
		options = append(options, cpcimage.WithStore(s))
		closer = func() {
			s.Close()
		}
	}

	return cpcimage.New(m, options...), closer, nil
}

func writeOutput(file string, o cpcimage.Output) error {
	if err := os.WriteFile(file, o.Data(), 0o644); err != nil {
		return err
	}
	b, err := o.Palette().MarshalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(file+".json", b, 0o644)
}

func writePNG(file string, m image.Image) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, m); err != nil {
		return err
	}
	return f.Close()
}

// convertAction returns an action converting SOURCE into OUTPUT using the
// format built by f from the command flags.
func convertAction(f func(*cli.Context) (cpcimage.Format, error)) cli.ActionFunc {
	return func(c *cli.Context) error {
		if c.NArg() < 2 {
			cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
		}

		format, err := f(c)
		if err != nil {
			return cli.NewExitError(err, 1)
		}

		conv, closer, err := newConverter(c)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		defer closer()

		o, err := conv.ConvertFile(c.Args().Get(0), format)
		if err != nil {
			return cli.NewExitError(err, 1)
		}

		if err := writeOutput(c.Args().Get(1), o); err != nil {
			return cli.NewExitError(err, 1)
		}

		return nil
	}
}

func encodingFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "encoding",
		Value: cpcimage.Linear.String(),
		Usage: "line order: linear, graycode, zigzag or left-to-right-to-left",
	}
}

func spriteFormat(c *cli.Context) (cpcimage.Format, error) {
	e, err := cpcimage.ParseEncoding(c.String("encoding"))
	if err != nil {
		return nil, err
	}
	return cpcimage.SpriteFormat{Encoding: e}, nil
}

func maskFormat(c *cli.Context) (cpcimage.Format, error) {
	e, err := cpcimage.ParseEncoding(c.String("encoding"))
	if err != nil {
		return nil, err
	}
	maskInk, err := ga.InkFromName(c.String("mask-ink"))
	if err != nil {
		return nil, err
	}
	replacement, err := ga.InkFromName(c.String("replacement"))
	if err != nil {
		return nil, err
	}
	return cpcimage.MaskedSpriteFormat{Encoding: e, MaskInk: maskInk, Replacement: replacement}, nil
}

func tileFormat(c *cli.Context) (cpcimage.Format, error) {
	h, err := tile.ParseHorizontal(c.String("horizontal"))
	if err != nil {
		return nil, err
	}
	v, err := tile.ParseVertical(c.String("vertical"))
	if err != nil {
		return nil, err
	}
	return cpcimage.TileFormat{
		Options: tile.Options{
			TileWidth:  c.Int("tile-width"),
			TileHeight: c.Int("tile-height"),
			GridWidth:  c.Int("grid-width"),
			GridHeight: c.Int("grid-height"),
			Horizontal: h,
			Vertical:   v,
		},
		Header: c.Bool("header"),
	}, nil
}

func screenFormat(c *cli.Context) (cpcimage.Format, error) {
	f := cpcimage.StandardScreen()
	if c.Bool("overscan") {
		f = cpcimage.OverscanScreen()
	}
	if c.IsSet("address") {
		a, err := strconv.ParseUint(c.String("address"), 0, 16)
		if err != nil {
			return nil, err
		}
		if a >= 0xc000 {
			return nil, fmt.Errorf("display address %#x out of range", a)
		}
		f.Address = screen.NewDisplayAddress(uint16(a))
	}
	f.CropIfTooLarge = c.Bool("crop")
	return f, nil
}

func main() {
	app := cli.NewApp()

	app.Name = "cpcimage"
	app.Usage = "Amstrad CPC image conversion utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"CPCIMAGE_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to conversion cache database",
		},
		&cli.BoolFlag{
			Name:  "cache",
			Usage: "cache conversions in the database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
		&cli.StringFlag{
			Name:    "mode",
			Aliases: []string{"m"},
			Value:   "0",
			Usage:   "screen mode, 0 to 3",
		},
		&cli.StringFlag{
			Name:  "palette",
			Usage: "comma separated inks, by name or number, for pens 0 onwards",
		},
		&cli.StringFlag{
			Name:  "strategy",
			Value: cimage.ReplaceWrongColorByClosestInk.String(),
			Usage: "how to handle inks outside the palette: first, closest or fail",
		},
		&cli.BoolFlag{
			Name:  "skip-odd-pixels",
			Usage: "read every other source pixel, for double width mode 0 art",
		},
		&cli.StringSliceFlag{
			Name:    "transform",
			Aliases: []string{"t"},
			Usage:   "transformation to apply, may be repeated",
		},
		&cli.IntFlag{
			Name:  "colors",
			Usage: "quantize the source to this many colors first",
		},
		&cli.BoolFlag{
			Name:  "dither",
			Usage: "dither the source to the hardware inks",
		},
		&cli.IntFlag{
			Name:  "width",
			Usage: "resize the source to this width",
		},
		&cli.IntFlag{
			Name:  "height",
			Usage: "resize the source to this height",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "number of images converted at once",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "sprite",
			Usage:     "Convert an image to a sprite",
			ArgsUsage: "SOURCE OUTPUT",
			Flags:     []cli.Flag{encodingFlag()},
			Action:    convertAction(spriteFormat),
		},
		{
			Name:      "mask",
			Usage:     "Convert an image to a sprite interleaved with its mask",
			ArgsUsage: "SOURCE OUTPUT",
			Flags: []cli.Flag{
				encodingFlag(),
				&cli.StringFlag{
					Name:  "mask-ink",
					Value: "BLACK",
					Usage: "ink of the transparent pixels",
				},
				&cli.StringFlag{
					Name:  "replacement",
					Value: "BLACK",
					Usage: "ink drawn in the sprite under the mask",
				},
			},
			Action: convertAction(maskFormat),
		},
		{
			Name:      "tiles",
			Usage:     "Convert an image to tiles",
			ArgsUsage: "SOURCE OUTPUT",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "tile-width", Usage: "tile width in bytes"},
				&cli.IntFlag{Name: "tile-height", Usage: "tile height in lines"},
				&cli.IntFlag{Name: "grid-width", Usage: "tiles per row"},
				&cli.IntFlag{Name: "grid-height", Usage: "tiles per column"},
				&cli.StringFlag{Name: "horizontal", Value: tile.LeftToRight.String(), Usage: "byte order within a tile line"},
				&cli.StringFlag{Name: "vertical", Value: tile.TopToBottom.String(), Usage: "line order within a tile"},
				&cli.BoolFlag{Name: "header", Usage: "prefix the tile and grid sizes"},
			},
			Action: convertAction(tileFormat),
		},
		{
			Name:      "screen",
			Usage:     "Convert an image to screen memory",
			ArgsUsage: "SOURCE OUTPUT",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "overscan", Usage: "use a full overscan screen"},
				&cli.StringFlag{Name: "address", Usage: "display address, as set in R12 and R13"},
				&cli.BoolFlag{Name: "crop", Usage: "crop images larger than the screen"},
			},
			Action: convertAction(screenFormat),
		},
		{
			Name:      "chunky",
			Usage:     "Convert an image to one pen per byte",
			ArgsUsage: "SOURCE OUTPUT",
			Action: convertAction(func(*cli.Context) (cpcimage.Format, error) {
				return cpcimage.ChunkyFormat{}, nil
			}),
		},
		{
			Name:      "animation",
			Usage:     "Convert an animated GIF to sprites sharing one palette",
			ArgsUsage: "SOURCE OUTPUT",
			Flags: []cli.Flag{
				encodingFlag(),
				&cli.StringFlag{Name: "crop-horizontal", Value: "both", Usage: "edges to crop to the moving area: none, left, right or both"},
				&cli.StringFlag{Name: "crop-vertical", Value: "both", Usage: "edges to crop to the moving area: none, top, bottom or both"},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				format, err := spriteFormat(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				var o cpcimage.AnimationOptions
				if o.Horizontal, err = parseHorizontalCrop(c.String("crop-horizontal")); err != nil {
					return cli.NewExitError(err, 1)
				}
				if o.Vertical, err = parseVerticalCrop(c.String("crop-vertical")); err != nil {
					return cli.NewExitError(err, 1)
				}

				conv, closer, err := newConverter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closer()

				f, err := os.Open(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer f.Close()

				frames, err := conv.ConvertAnimation(f, format, o)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				base := c.Args().Get(1)
				ext := filepath.Ext(base)
				for i, frame := range frames {
					file := fmt.Sprintf("%s-%03d%s", strings.TrimSuffix(base, ext), i, ext)
					if err := writeOutput(file, frame); err != nil {
						return cli.NewExitError(err, 1)
					}
				}

				return nil
			},
		},
		{
			Name:      "batch",
			Usage:     "Convert every image in a directory to sprites",
			ArgsUsage: "DIRECTORY OUTPUT",
			Flags:     []cli.Flag{encodingFlag()},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				format, err := spriteFormat(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				conv, closer, err := newConverter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closer()

				if err := conv.ConvertDirectory(c.Args().Get(0), c.Args().Get(1), format); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "decode",
			Usage:     "Render a 16KB screen memory dump as a PNG",
			ArgsUsage: "DUMP OUTPUT",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "bank", Usage: "bank of the dump holding the screen"},
				&cli.IntFlag{Name: "byte-width", Value: cimage.StandardByteWidth, Usage: "bytes per screen line"},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, err := mode(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				p, ok, err := palette(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				if !ok {
					p = ga.DefaultPalette()
				}

				banks, err := screen.Load(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				bank := c.Int("bank")
				if bank < 0 || bank >= len(banks) {
					return cli.NewExitError(fmt.Errorf("dump has %d banks", len(banks)), 1)
				}

				cm, err := cimage.FromScreen(banks[bank][:], c.Int("byte-width"), m, p)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := writePNG(c.Args().Get(1), cm.Image(m)); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "preview",
			Usage:     "Render an image as it will look on screen",
			ArgsUsage: "SOURCE OUTPUT",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "mask-ink", Usage: "render the 1 bit mask of everything but this ink instead"},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				conv, closer, err := newConverter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closer()

				f, err := os.Open(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer f.Close()

				src, _, err := image.Decode(f)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				m, err := conv.Matrix(src)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				if _, err := conv.Palette(m); err != nil {
					return cli.NewExitError(err, 1)
				}

				var out image.Image = m.Image(conv.Mode())
				if c.IsSet("mask-ink") {
					ink, err := ga.InkFromName(c.String("mask-ink"))
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					out = m.MaskImage(ink)
				}

				if err := writePNG(c.Args().Get(1), out); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "fade",
			Usage:     "Print the hardware palettes fading the palette to black",
			ArgsUsage: " ",
			Action: func(c *cli.Context) error {
				p, ok, err := palette(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				if !ok {
					return cli.NewExitError(errors.New("fade needs --palette"), 1)
				}

				for _, step := range p.RGBFadeOut() {
					var sb strings.Builder
					for i, b := range step.GateArrayBytes() {
						if i > 0 {
							sb.WriteByte(',')
						}
						fmt.Fprintf(&sb, "#%02X", b)
					}
					fmt.Println(sb.String())
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
