package tile

import "fmt"

// Source is a grid of screen bytes.
type Source interface {
	ByteWidth() int
	Height() int
	Get(x, y int) byte
}

// Options describe the tile grid. A zero tile size spans the whole source
// and a zero grid size uses as many whole tiles as fit.
type Options struct {
	TileWidth  int // bytes
	TileHeight int // lines
	GridWidth  int
	GridHeight int
	Horizontal Horizontal
	Vertical   Vertical
}

// GridError reports a grid that does not fit in the source.
type GridError struct {
	Bytes, Lines         int
	HaveBytes, HaveLines int
}

func (e *GridError) Error() string {
	return fmt.Sprintf("tile: grid needs %d bytes by %d lines but the sprite is %d bytes by %d lines", e.Bytes, e.Lines, e.HaveBytes, e.HaveLines)
}

// Tiles holds extracted tiles, one entry per grid cell in row-major order.
type Tiles struct {
	Options
	Data [][]byte
}

// Resolve replaces the zero sizes of o with the values used for s.
func (o Options) Resolve(s Source) Options {
	if o.TileWidth == 0 {
		o.TileWidth = s.ByteWidth()
	}
	if o.TileHeight == 0 {
		o.TileHeight = s.Height()
	}
	if o.GridWidth == 0 && o.TileWidth > 0 {
		o.GridWidth = s.ByteWidth() / o.TileWidth
	}
	if o.GridHeight == 0 && o.TileHeight > 0 {
		o.GridHeight = s.Height() / o.TileHeight
	}
	return o
}

// Extract cuts s into tiles.
func Extract(s Source, o Options) (*Tiles, error) {
	o = o.Resolve(s)

	if o.TileWidth <= 0 || o.TileHeight <= 0 || o.GridWidth <= 0 || o.GridHeight <= 0 {
		return nil, &GridError{Bytes: o.TileWidth * o.GridWidth, Lines: o.TileHeight * o.GridHeight, HaveBytes: s.ByteWidth(), HaveLines: s.Height()}
	}
	if bytes, lines := o.TileWidth*o.GridWidth, o.TileHeight*o.GridHeight; bytes > s.ByteWidth() || lines > s.Height() {
		return nil, &GridError{Bytes: bytes, Lines: lines, HaveBytes: s.ByteWidth(), HaveLines: s.Height()}
	}

	t := &Tiles{Options: o, Data: make([][]byte, 0, o.GridWidth*o.GridHeight)}
	for ty := 0; ty < o.GridHeight; ty++ {
		for tx := 0; tx < o.GridWidth; tx++ {
			// Fresh counters so no scan state leaks between tiles
			columns, err := newColumnCounter(o.Horizontal, o.TileWidth)
			if err != nil {
				return nil, err
			}
			lines, err := newLineCounter(o.Vertical, o.TileHeight)
			if err != nil {
				return nil, err
			}

			data := make([]byte, 0, o.TileWidth*o.TileHeight)
			for y := 0; y < o.TileHeight; y++ {
				dy := ty*o.TileHeight + lines.next()
				for x := 0; x < o.TileWidth; x++ {
					data = append(data, s.Get(tx*o.TileWidth+columns.next(), dy))
				}
				columns.endOfLine()
			}
			t.Data = append(t.Data, data)
		}
	}
	return t, nil
}
