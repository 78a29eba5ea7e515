package cpcimage

import (
	"bytes"
	"fmt"

	"github.com/bodgit/cpcimage/ga"
	cimage "github.com/bodgit/cpcimage/image"
	"github.com/bodgit/cpcimage/screen"
	"github.com/bodgit/cpcimage/tile"
)

// Format turns a color matrix into an Output. The format fixes the palette
// of the matrix it encodes with Converter.Palette.
type Format interface {
	fmt.Stringer
	convert(c *Converter, m *cimage.ColorMatrix) (Output, error)
}

// Output is the result of a conversion.
type Output interface {
	Palette() ga.Palette
	// Data returns the bytes to be loaded on the machine.
	Data() []byte
}

// Encoding is the order the lines of a sprite are stored in.
type Encoding int

const (
	// Linear stores lines top to bottom.
	Linear Encoding = iota
	// GrayCoded stores the lines of each character row in gray code
	// order.
	GrayCoded
	// ZigZagGrayCoded is GrayCoded with every odd line reversed.
	ZigZagGrayCoded
	// LeftToRightToLeft is Linear with every odd line reversed.
	LeftToRightToLeft
)

var encodingNames = map[Encoding]string{
	Linear:            "linear",
	GrayCoded:         "graycode",
	ZigZagGrayCoded:   "zigzag",
	LeftToRightToLeft: "left-to-right-to-left",
}

func (e Encoding) String() string {
	if s, ok := encodingNames[e]; ok {
		return s
	}
	return fmt.Sprintf("encoding(%d)", int(e))
}

// ParseEncoding returns the encoding named s.
func ParseEncoding(s string) (Encoding, error) {
	for e, name := range encodingNames {
		if name == s {
			return e, nil
		}
	}
	return 0, fmt.Errorf("cpcimage: unknown encoding %q", s)
}

func (e Encoding) apply(rows [][]byte) ([][]byte, error) {
	switch e {
	case Linear:
		return rows, nil
	case GrayCoded:
		return screen.GrayCode(rows)
	case ZigZagGrayCoded:
		return screen.ZigZag(rows)
	case LeftToRightToLeft:
		return screen.LeftToRightToLeft(rows), nil
	}
	return nil, fmt.Errorf("cpcimage: unsupported encoding %s", e)
}

func join(rows [][]byte) []byte {
	var b []byte
	for _, row := range rows {
		b = append(b, row...)
	}
	return b
}

// SpriteFormat encodes the matrix as a sprite.
type SpriteFormat struct {
	Encoding Encoding
}

func (f SpriteFormat) String() string {
	return "sprite/" + f.Encoding.String()
}

func (f SpriteFormat) convert(c *Converter, m *cimage.ColorMatrix) (Output, error) {
	p, err := c.Palette(m)
	if err != nil {
		return nil, err
	}
	s, err := m.AsSpriteWithPalette(c.mode, p)
	if err != nil {
		return nil, err
	}
	return newSpriteOutput(s, f.Encoding, p)
}

// SpriteOutput is an encoded sprite.
type SpriteOutput struct {
	Encoding  Encoding
	Bytes     []byte
	ByteWidth int
	Height    int
	palette   ga.Palette
}

func newSpriteOutput(s *cimage.Sprite, e Encoding, p ga.Palette) (*SpriteOutput, error) {
	rows, err := e.apply(s.Rows())
	if err != nil {
		return nil, err
	}
	return &SpriteOutput{
		Encoding:  e,
		Bytes:     join(rows),
		ByteWidth: s.ByteWidth(),
		Height:    s.Height(),
		palette:   p,
	}, nil
}

// Palette implements Output.
func (o *SpriteOutput) Palette() ga.Palette { return o.palette }

// Data implements Output.
func (o *SpriteOutput) Data() []byte { return o.Bytes }

// ChunkyFormat stores one pen per byte, each pixel written twice.
type ChunkyFormat struct{}

func (ChunkyFormat) String() string { return "chunky" }

func (ChunkyFormat) convert(c *Converter, m *cimage.ColorMatrix) (Output, error) {
	p, err := c.Palette(m)
	if err != nil {
		return nil, err
	}
	pens, err := m.InksToPens(p)
	if err != nil {
		return nil, err
	}
	o := &ChunkyOutput{Width: m.Width() * 2, Height: m.Height(), palette: p}
	o.Bytes = make([]byte, 0, o.Width*o.Height)
	for _, row := range pens {
		for _, pen := range row {
			o.Bytes = append(o.Bytes, pen.Number(), pen.Number())
		}
	}
	return o, nil
}

// ChunkyOutput holds one pen number per byte.
type ChunkyOutput struct {
	Bytes         []byte
	Width, Height int
	palette       ga.Palette
}

// Palette implements Output.
func (o *ChunkyOutput) Palette() ga.Palette { return o.palette }

// Data implements Output.
func (o *ChunkyOutput) Data() []byte { return o.Bytes }

// MemoryFormat lays the sprite out in screen memory.
type MemoryFormat struct {
	Dimension      screen.Dimension
	Address        screen.DisplayAddress
	CropIfTooLarge bool
}

// StandardScreen is a MemoryFormat for the screen at 0xC000 after reset.
func StandardScreen() MemoryFormat {
	return MemoryFormat{Dimension: screen.Standard(), Address: screen.StandardAddress}
}

// OverscanScreen is a MemoryFormat for a full screen in pages 2 and 3.
func OverscanScreen() MemoryFormat {
	return MemoryFormat{Dimension: screen.Overscan(), Address: screen.NewDisplayAddress(0x2c00)}
}

func (f MemoryFormat) String() string {
	return fmt.Sprintf("memory/%s/%s/%t", f.Dimension, f.Address, f.CropIfTooLarge)
}

func (f MemoryFormat) convert(c *Converter, m *cimage.ColorMatrix) (Output, error) {
	p, err := c.Palette(m)
	if err != nil {
		return nil, err
	}
	s, err := m.AsSpriteWithPalette(c.mode, p)
	if err != nil {
		return nil, err
	}
	mem, err := screen.BuildMemoryBlocks(s, f.Dimension, f.Address, f.CropIfTooLarge, c.logger)
	if err != nil {
		return nil, err
	}
	if mem.Overscan() {
		o := &MemoryOverscan{Address: f.Address, Dimension: f.Dimension, palette: p}
		for _, b := range mem.Blocks {
			o.Pages = append(o.Pages, b.Page)
			o.Banks = append(o.Banks, b.Data)
		}
		return o, nil
	}
	return &MemoryStandard{
		Bank:      mem.Blocks[0].Data,
		Page:      mem.Blocks[0].Page,
		Address:   f.Address,
		Dimension: f.Dimension,
		palette:   p,
	}, nil
}

// MemoryStandard is a screen held in one page.
type MemoryStandard struct {
	Bank      [screen.BankSize]byte
	Page      uint8
	Address   screen.DisplayAddress
	Dimension screen.Dimension
	palette   ga.Palette
}

// Palette implements Output.
func (o *MemoryStandard) Palette() ga.Palette { return o.palette }

// Data implements Output.
func (o *MemoryStandard) Data() []byte { return o.Bank[:] }

// MemoryOverscan is a screen spread over several pages, in page order.
type MemoryOverscan struct {
	Banks     [][screen.BankSize]byte
	Pages     []uint8
	Address   screen.DisplayAddress
	Dimension screen.Dimension
	palette   ga.Palette
}

// Palette implements Output.
func (o *MemoryOverscan) Palette() ga.Palette { return o.palette }

// Data implements Output.
func (o *MemoryOverscan) Data() []byte {
	b := make([]byte, 0, len(o.Banks)*screen.BankSize)
	for i := range o.Banks {
		b = append(b, o.Banks[i][:]...)
	}
	return b
}

// TileFormat cuts the sprite into tiles.
type TileFormat struct {
	Options tile.Options
	// Header prefixes the data with the tile and grid sizes.
	Header bool
}

func (f TileFormat) String() string {
	o := f.Options
	return fmt.Sprintf("tiles/%dx%d/%dx%d/%s/%s/%t", o.TileWidth, o.TileHeight, o.GridWidth, o.GridHeight, o.Horizontal, o.Vertical, f.Header)
}

func (f TileFormat) convert(c *Converter, m *cimage.ColorMatrix) (Output, error) {
	p, err := c.Palette(m)
	if err != nil {
		return nil, err
	}
	s, err := m.AsSpriteWithPalette(c.mode, p)
	if err != nil {
		return nil, err
	}
	t, err := tile.Extract(s, f.Options)
	if err != nil {
		return nil, err
	}

	b := new(bytes.Buffer)
	if err := t.Encode(b, f.Header); err != nil {
		return nil, err
	}

	return &TilesOutput{Tiles: t, Bytes: b.Bytes(), palette: p}, nil
}

// TilesOutput is a list of tiles.
type TilesOutput struct {
	Tiles   *tile.Tiles
	Bytes   []byte
	palette ga.Palette
}

// Palette implements Output.
func (o *TilesOutput) Palette() ga.Palette { return o.palette }

// Data implements Output.
func (o *TilesOutput) Data() []byte { return o.Bytes }

// MaskedSpriteFormat builds a sprite and the mask of its transparent ink.
type MaskedSpriteFormat struct {
	Encoding Encoding
	// MaskInk marks transparent pixels.
	MaskInk ga.Ink
	// Replacement is drawn in the sprite where MaskInk was. The sprite
	// palette is fixed after the replacement, so MaskInk only takes a pen
	// when it is also the replacement.
	Replacement ga.Ink
}

func (f MaskedSpriteFormat) String() string {
	return fmt.Sprintf("masked/%s/%s/%s", f.Encoding, f.MaskInk, f.Replacement)
}

// maskPalette puts the foreground on pen 0 and the background on the pen
// with every bit set, so the mask can be ANDed with the screen.
func maskPalette(m ga.Mode) ga.Palette {
	p := ga.EmptyPalette()
	p.Set(0, ga.InkMaskForeground)
	p.Set(ga.Pen(m.MaxColors()-1), ga.InkMaskBackground)
	return p
}

func (f MaskedSpriteFormat) convert(c *Converter, m *cimage.ColorMatrix) (Output, error) {
	mask, sprite := m.ExtractMaskAndSprite(f.MaskInk, f.Replacement)

	p, err := c.Palette(sprite)
	if err != nil {
		return nil, err
	}
	s, err := sprite.AsSpriteWithPalette(c.mode, p)
	if err != nil {
		return nil, err
	}
	so, err := newSpriteOutput(s, f.Encoding, p)
	if err != nil {
		return nil, err
	}

	mp := maskPalette(c.mode)
	ms, err := mask.AsSpriteWithPalette(c.mode, mp)
	if err != nil {
		return nil, err
	}
	mo, err := newSpriteOutput(ms, f.Encoding, mp)
	if err != nil {
		return nil, err
	}

	return &MaskedSpriteOutput{Sprite: so, Mask: mo}, nil
}

// MaskedSpriteOutput pairs a sprite with its mask. Both have the same
// dimensions.
type MaskedSpriteOutput struct {
	Sprite *SpriteOutput
	Mask   *SpriteOutput
}

// Palette implements Output and returns the sprite palette.
func (o *MaskedSpriteOutput) Palette() ga.Palette { return o.Sprite.Palette() }

// Data implements Output. Each mask byte is followed by the matching
// sprite byte.
func (o *MaskedSpriteOutput) Data() []byte {
	b := make([]byte, 0, len(o.Sprite.Bytes)*2)
	for i := range o.Sprite.Bytes {
		b = append(b, o.Mask.Bytes[i], o.Sprite.Bytes[i])
	}
	return b
}
