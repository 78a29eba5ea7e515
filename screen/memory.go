package screen

import (
	"errors"
	"fmt"
	"io"
	"log"
	"slices"

	"codeberg.org/go-mmap/mmap"
)

// ByteGrid is a source of screen bytes, such as a sprite.
type ByteGrid interface {
	ByteWidth() int
	Height() int
	SafeGet(x, y int) (byte, bool)
}

// Block is the content of one 16KB page.
type Block struct {
	Page uint8
	Data [BankSize]byte
}

// Memory is the set of pages written by BuildMemoryBlocks, in page order.
type Memory struct {
	Blocks []Block
}

// Overscan reports whether more than one page is used.
func (m *Memory) Overscan() bool {
	return len(m.Blocks) > 1
}

// ErrEmptyScreen is returned when a dimension displays no bytes at all.
var ErrEmptyScreen = errors.New("screen: dimension displays nothing")

// BuildMemoryBlocks writes g to memory the way the CRTC with dimension dim
// and start address would display it. The grid must match the screen size
// unless cropIfTooLarge is set, in which case larger grids are truncated
// and smaller grids are padded with zero bytes.
func BuildMemoryBlocks(g ByteGrid, dim Dimension, address DisplayAddress, cropIfTooLarge bool, logger *log.Logger) (*Memory, error) {
	bw, h := g.ByteWidth(), g.Height()
	if bw != dim.ByteWidth() || h != dim.Height() {
		if !cropIfTooLarge {
			return nil, &DimensionError{Dimension: dim, ByteWidth: bw, Height: h}
		}
		if bw < dim.ByteWidth() || h < dim.Height() {
			logger.Printf("screen: sprite of %dx%d bytes is smaller than screen %s, padding with zeroes", bw, h, dim)
		}
	}

	linesPerChar := dim.LinesPerChar()
	if linesPerChar > 8 {
		return nil, fmt.Errorf("screen: %d lines per character row do not fit a page", linesPerChar)
	}

	var pages [4]*Block
	for char := 0; char < int(dim.VerticalDisplayed); char++ {
		for word := 0; word < int(dim.HorizontalDisplayed); word++ {
			page := address.Page()
			if pages[page] == nil {
				pages[page] = &Block{Page: page}
			}
			base := int(address.Offset()) * 2
			for line := 0; line < linesPerChar; line++ {
				for b := 0; b < 2; b++ {
					v, _ := g.SafeGet(word*2+b, char*linesPerChar+line)
					pages[page].Data[base+b+line*LineStride] = v
				}
			}
			address.MoveToNextWord()
		}
	}

	m := &Memory{}
	for _, p := range pages {
		if p != nil {
			m.Blocks = append(m.Blocks, *p)
		}
	}
	if len(m.Blocks) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyScreen, dim)
	}

	switch {
	case len(m.Blocks) == 1 && dim.UseTwoBanks():
		logger.Printf("screen: %s needs two pages but only page %d was used", dim, m.Blocks[0].Page)
	case len(m.Blocks) == 2 && !dim.UseTwoBanks():
		logger.Printf("screen: %s fits one page but two were used", dim)
	case len(m.Blocks) > 2:
		logger.Printf("screen: %d pages used for %s", len(m.Blocks), dim)
	}

	return m, nil
}

// Pages returns the page numbers used.
func (m *Memory) Pages() []uint8 {
	pages := make([]uint8, 0, len(m.Blocks))
	for _, b := range m.Blocks {
		pages = append(pages, b.Page)
	}
	return pages
}

// Block returns the content of a page.
func (m *Memory) Block(page uint8) (*Block, bool) {
	i := slices.IndexFunc(m.Blocks, func(b Block) bool { return b.Page == page })
	if i < 0 {
		return nil, false
	}
	return &m.Blocks[i], true
}

// ErrShortDump is returned when a memory dump is smaller than one page.
var ErrShortDump = errors.New("screen: memory dump is smaller than a page")

// Load reads a memory dump of one or more 16KB pages. Trailing bytes that
// do not fill a page are ignored.
func Load(path string) ([][BankSize]byte, error) {
	f, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if f.Len() < BankSize {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrShortDump, path, f.Len())
	}

	banks := make([][BankSize]byte, f.Len()/BankSize)
	for i := range banks {
		if _, err := io.ReadFull(f, banks[i][:]); err != nil {
			return nil, err
		}
	}
	return banks, nil
}
