package screen

import (
	"errors"
	"fmt"
	"slices"
)

// ErrNotCharAligned is returned when a row count is not a whole number of
// character rows.
var ErrNotCharAligned = errors.New("screen: height is not a multiple of 8")

// GrayCodeIndexToScreenIndex gives, for the i-th line of a gray coded
// character row, the screen line it is taken from. Consecutive entries
// differ by a single bit.
var GrayCodeIndexToScreenIndex = [8]int{0, 1, 3, 2, 6, 7, 5, 4}

// ScreenIndexToGrayCodeIndex is the inverse of GrayCodeIndexToScreenIndex.
var ScreenIndexToGrayCodeIndex = [8]int{0, 1, 3, 2, 7, 6, 4, 5}

func checkAligned(rows [][]byte) error {
	if len(rows)%8 != 0 {
		return fmt.Errorf("%w: %d", ErrNotCharAligned, len(rows))
	}
	return nil
}

func permute(rows [][]byte, table [8]int) [][]byte {
	out := make([][]byte, len(rows))
	for base := 0; base < len(rows); base += 8 {
		for i, src := range table {
			out[base+i] = slices.Clone(rows[base+src])
		}
	}
	return out
}

// GrayCode reorders the lines of every character row in gray code order.
func GrayCode(rows [][]byte) ([][]byte, error) {
	if err := checkAligned(rows); err != nil {
		return nil, err
	}
	return permute(rows, GrayCodeIndexToScreenIndex), nil
}

// UngrayCode restores the screen order of rows built by GrayCode.
func UngrayCode(rows [][]byte) ([][]byte, error) {
	if err := checkAligned(rows); err != nil {
		return nil, err
	}
	return permute(rows, ScreenIndexToGrayCodeIndex), nil
}

func reverseOddRows(rows [][]byte) {
	for y := 1; y < len(rows); y += 2 {
		slices.Reverse(rows[y])
	}
}

// ZigZag gray codes rows then reverses every odd row, so a blit routine can
// alternate left to right and right to left lines.
func ZigZag(rows [][]byte) ([][]byte, error) {
	out, err := GrayCode(rows)
	if err != nil {
		return nil, err
	}
	reverseOddRows(out)
	return out, nil
}

// LeftToRightToLeft reverses every odd row, keeping the line order.
func LeftToRightToLeft(rows [][]byte) [][]byte {
	out := make([][]byte, len(rows))
	for y := range rows {
		out[y] = slices.Clone(rows[y])
	}
	reverseOddRows(out)
	return out
}
