package transform

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bodgit/cpcimage/ga"
	"github.com/bodgit/cpcimage/image"
)

// ErrSyntax is returned for a transformation that cannot be parsed.
var ErrSyntax = errors.New("transform: invalid syntax")

func splitCall(s string) (name string, args []string, err error) {
	s = strings.TrimSpace(s)
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return s, nil, nil
	}
	if !strings.HasSuffix(s, ")") {
		return "", nil, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	name = s[:open]
	if inner := s[open+1 : len(s)-1]; inner != "" {
		args = strings.Split(inner, ",")
	}
	for i := range args {
		args[i] = strings.TrimSpace(args[i])
	}
	return name, args, nil
}

func atoi(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	return n, nil
}

func inks(s string) ([]ga.Ink, error) {
	var out []ga.Ink
	for _, name := range strings.Split(s, "/") {
		ink, err := ga.InkFromName(name)
		if err != nil {
			return nil, err
		}
		out = append(out, ink)
	}
	return out, nil
}

func position(s string) (Position, error) {
	switch s {
	case "start":
		return Start, nil
	case "end":
		return End, nil
	}
	return 0, fmt.Errorf("%w: position %q", ErrSyntax, s)
}

func strategy(s string) (image.ColorConversionStrategy, error) {
	for _, st := range []image.ColorConversionStrategy{image.ReplaceWrongColorByFirstColor, image.ReplaceWrongColorByClosestInk, image.Fail} {
		if st.String() == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("%w: strategy %q", ErrSyntax, s)
}

func wantArgs(name string, args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("%w: %s takes %d arguments, got %d", ErrSyntax, name, n, len(args))
	}
	return nil
}

// Parse reads a transformation written the way its String method prints
// it, for example "crop(2,2,0,8)", "replace(RED,BLACK)" or
// "blank-lines(BLACK/WHITE,4,end)". Several inks are separated by slashes.
func Parse(s string) (Transformation, error) {
	name, args, err := splitCall(s)
	if err != nil {
		return nil, err
	}

	switch name {
	case "skip-odd-pixels", "double-width":
		if err := wantArgs(name, args, 0); err != nil {
			return nil, err
		}
		if name == "skip-odd-pixels" {
			return SkipOddPixels{}, nil
		}
		return DoubleWidth{}, nil
	case "crop":
		if err := wantArgs(name, args, 4); err != nil {
			return nil, err
		}
		var v [4]int
		for i := range v {
			if v[i], err = atoi(args[i]); err != nil {
				return nil, err
			}
		}
		return CropMargins{Left: v[0], Right: v[1], Top: v[2], Bottom: v[3]}, nil
	case "blank-lines", "blank-columns":
		if err := wantArgs(name, args, 3); err != nil {
			return nil, err
		}
		pattern, err := inks(args[0])
		if err != nil {
			return nil, err
		}
		amount, err := atoi(args[1])
		if err != nil {
			return nil, err
		}
		pos, err := position(args[2])
		if err != nil {
			return nil, err
		}
		if name == "blank-lines" {
			return BlankLines{Pattern: pattern, Amount: amount, Position: pos}, nil
		}
		return BlankColumns{Pattern: pattern, Amount: amount, Position: pos}, nil
	case "replace":
		if err := wantArgs(name, args, 2); err != nil {
			return nil, err
		}
		from, err := ga.InkFromName(args[0])
		if err != nil {
			return nil, err
		}
		to, err := ga.InkFromName(args[1])
		if err != nil {
			return nil, err
		}
		return ReplaceInk{From: from, To: to}, nil
	case "mask":
		if err := wantArgs(name, args, 1); err != nil {
			return nil, err
		}
		ink, err := ga.InkFromName(args[0])
		if err != nil {
			return nil, err
		}
		return Mask{Background: ink}, nil
	case "reduce":
		if err := wantArgs(name, args, 2); err != nil {
			return nil, err
		}
		set, err := inks(args[0])
		if err != nil {
			return nil, err
		}
		st, err := strategy(args[1])
		if err != nil {
			return nil, err
		}
		return ReduceColors{Inks: set, Strategy: st}, nil
	case "max-colors":
		if err := wantArgs(name, args, 1); err != nil {
			return nil, err
		}
		n, err := atoi(args[0])
		if err != nil {
			return nil, err
		}
		return MaxColors{N: n}, nil
	}

	return nil, fmt.Errorf("%w: unknown transformation %q", ErrSyntax, name)
}

// ParseList parses each string in turn.
func ParseList(s []string) (List, error) {
	l := make(List, 0, len(s))
	for _, v := range s {
		t, err := Parse(v)
		if err != nil {
			return nil, err
		}
		l = append(l, t)
	}
	return l, nil
}
