package tile

import (
	"errors"
	"fmt"
	"io"
)

// ErrHeaderOverflow is returned when a size does not fit in its header byte.
var ErrHeaderOverflow = errors.New("tile: size does not fit in header")

type encoder struct {
	w io.Writer
}

func (e *encoder) encode(t *Tiles, header bool) error {
	if header {
		var tmp [4]byte
		for i, v := range [4]int{t.TileWidth, t.TileHeight, t.GridWidth, t.GridHeight} {
			if v < 0 || v > 0xff {
				return fmt.Errorf("%w: %d", ErrHeaderOverflow, v)
			}
			tmp[i] = byte(v)
		}
		if _, err := e.w.Write(tmp[:]); err != nil {
			return err
		}
	}

	for _, data := range t.Data {
		if _, err := e.w.Write(data); err != nil {
			return err
		}
	}

	return nil
}

// Encode writes the tiles one after the other. With header they are
// preceded by four bytes: the tile width in bytes, the tile height in lines
// and the grid width and height.
func (t *Tiles) Encode(w io.Writer, header bool) error {
	e := encoder{w: w}

	return e.encode(t, header)
}

// Encode cuts s into tiles and writes them one after the other.
func Encode(w io.Writer, s Source, o Options) error {
	t, err := Extract(s, o)
	if err != nil {
		return err
	}

	return t.Encode(w, false)
}

// EncodeWithHeader is Encode preceded by the four byte header written by
// Tiles.Encode.
func EncodeWithHeader(w io.Writer, s Source, o Options) error {
	t, err := Extract(s, o)
	if err != nil {
		return err
	}

	return t.Encode(w, true)
}
