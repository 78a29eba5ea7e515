package ga

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strings"
)

// Palette maps pens, including the border, to inks. A pen may be unset.
type Palette struct {
	inks [NumPens]Ink
	set  [NumPens]bool
}

// EmptyPalette returns a palette with no pen set.
func EmptyPalette() Palette {
	return Palette{}
}

// DefaultPalette returns a palette with pens 0 to 14 set to inks 0 to 14.
// Pen 15 and the border are left unset.
func DefaultPalette() Palette {
	var p Palette
	for i := 0; i < 15; i++ {
		p.Set(Pen(i), Ink(i))
	}
	return p
}

// NewPalette assigns inks to pens in order, the 17th one going to the border.
func NewPalette(inks ...Ink) Palette {
	if len(inks) > NumPens {
		panic(fmt.Sprintf("ga: %d inks do not fit in a palette", len(inks)))
	}
	var p Palette
	for i, ink := range inks {
		p.Set(Pen(i), ink)
	}
	return p
}

// Set assigns ink to pen.
func (p *Palette) Set(pen Pen, ink Ink) {
	p.inks[pen] = ink
	p.set[pen] = true
}

// Remove unsets pen.
func (p *Palette) Remove(pen Pen) {
	p.inks[pen] = 0
	p.set[pen] = false
}

// Get returns the ink of pen. Asking for an unset pen is a programming
// error and panics; use SafeGet or ContainsPen first.
func (p Palette) Get(pen Pen) Ink {
	if !p.set[pen] {
		panic(fmt.Sprintf("ga: %s is not set in palette", pen))
	}
	return p.inks[pen]
}

// SafeGet returns the ink of pen and whether it is set.
func (p Palette) SafeGet(pen Pen) (Ink, bool) {
	return p.inks[pen], p.set[pen]
}

// ContainsPen reports whether pen is set.
func (p Palette) ContainsPen(pen Pen) bool {
	return p.set[pen]
}

// PenForInk returns the lowest colour pen using ink. The border is never
// considered.
func (p Palette) PenForInk(ink Ink) (Pen, bool) {
	for i := 0; i < NumColorPens; i++ {
		if p.set[i] && p.inks[i] == ink {
			return Pen(i), true
		}
	}
	return 0, false
}

// ContainsInk reports whether a colour pen uses ink.
func (p Palette) ContainsInk(ink Ink) bool {
	_, ok := p.PenForInk(ink)
	return ok
}

// NextUnusedPenForMode returns the first unset pen usable in mode.
func (p Palette) NextUnusedPenForMode(m Mode) (Pen, bool) {
	for i := 0; i < m.MaxColors(); i++ {
		if !p.set[i] {
			return Pen(i), true
		}
	}
	return 0, false
}

// AddNovelInksExceptInBorder places every ink not yet in the palette on the
// next unset colour pen. notAdded counts the inks that found no free pen.
// The added count is never incremented and is always zero.
func (p *Palette) AddNovelInksExceptInBorder(inks []Ink) (added, notAdded int) {
	for _, ink := range inks {
		if p.ContainsInk(ink) {
			continue
		}
		pen, ok := p.NextUnusedPenForMode(Mode0)
		if !ok {
			notAdded++
			continue
		}
		p.Set(pen, ink)
	}
	return added, notAdded
}

// Len returns the number of set pens, border included.
func (p Palette) Len() int {
	n := 0
	for _, s := range p.set {
		if s {
			n++
		}
	}
	return n
}

// Pens returns the set pens in increasing order.
func (p Palette) Pens() []Pen {
	var pens []Pen
	for i, s := range p.set {
		if s {
			pens = append(pens, Pen(i))
		}
	}
	return pens
}

// Inks returns the inks of the set colour pens, in pen order.
func (p Palette) Inks() []Ink {
	var inks []Ink
	for i := 0; i < NumColorPens; i++ {
		if p.set[i] {
			inks = append(inks, p.inks[i])
		}
	}
	return inks
}

// InksForMode returns the inks of the first pens usable in mode, skipping
// unset ones.
func (p Palette) InksForMode(m Mode) []Ink {
	var inks []Ink
	for i := 0; i < m.MaxColors(); i++ {
		if p.set[i] {
			inks = append(inks, p.inks[i])
		}
	}
	return inks
}

// Equal reports whether both palettes set the same pens to the same inks.
func (p Palette) Equal(o Palette) bool {
	return p == o
}

// Clone returns an independent copy of p.
func (p Palette) Clone() Palette {
	return p
}

// ColorPalette returns the colour pens as a color.Palette, unset pens being
// black. The index of a colour is its pen number.
func (p Palette) ColorPalette(m Mode) color.Palette {
	cp := make(color.Palette, m.MaxColors())
	for i := range cp {
		cp[i] = p.inks[i]
	}
	return cp
}

// GateArrayBytes returns the hardware value of each of the 17 pens. Unset
// pens use black.
func (p Palette) GateArrayBytes() []byte {
	b := make([]byte, NumPens)
	for i := range b {
		b[i] = p.inks[i].GateArray()
	}
	return b
}

func (p Palette) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < NumPens; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if p.set[i] {
			fmt.Fprintf(&sb, "%d", p.inks[i])
		} else {
			sb.WriteByte('-')
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

// MarshalJSON writes the palette as 17 ink numbers, border last. Unset pens
// are written as 0.
func (p Palette) MarshalJSON() ([]byte, error) {
	values := make([]int, NumPens)
	for i := range values {
		values[i] = int(p.inks[i])
	}
	return json.Marshal(values)
}

// UnmarshalJSON reads a sequence of ink numbers, assigning index to pen.
func (p *Palette) UnmarshalJSON(b []byte) error {
	var values []int
	if err := json.Unmarshal(b, &values); err != nil {
		return err
	}
	numbers := make([]uint8, len(values))
	for i, v := range values {
		if v < 0 || v >= NumInks {
			return fmt.Errorf("ga: invalid ink %d for %s", v, Pen(i))
		}
		numbers[i] = uint8(v)
	}
	return p.fromNumbers(numbers)
}

// MarshalBinary encodes the palette as 17 ink numbers.
func (p Palette) MarshalBinary() ([]byte, error) {
	b := make([]byte, NumPens)
	for i := range b {
		b[i] = p.inks[i].Number()
	}
	return b, nil
}

// UnmarshalBinary decodes the palette from ink numbers.
func (p *Palette) UnmarshalBinary(b []byte) error {
	return p.fromNumbers(b)
}

func (p *Palette) fromNumbers(values []uint8) error {
	if len(values) > NumPens {
		return fmt.Errorf("ga: palette has %d entries, expected at most %d", len(values), NumPens)
	}
	*p = Palette{}
	for i, v := range values {
		if v >= NumInks {
			return fmt.Errorf("ga: invalid ink %d for %s", v, Pen(i))
		}
		p.Set(Pen(i), Ink(v))
	}
	return nil
}

// LockablePalette guards a palette against changes once it has been
// established, for example from the first frame of an animation.
type LockablePalette struct {
	palette Palette
	locked  bool
}

// NewLockablePalette wraps p, unlocked.
func NewLockablePalette(p Palette) *LockablePalette {
	return &LockablePalette{palette: p}
}

// Lock prevents further changes.
func (l *LockablePalette) Lock() {
	l.locked = true
}

// Unlock allows changes again.
func (l *LockablePalette) Unlock() {
	l.locked = false
}

// Locked reports the lock state.
func (l *LockablePalette) Locked() bool {
	return l.locked
}

// Palette returns a copy of the wrapped palette.
func (l *LockablePalette) Palette() Palette {
	return l.palette
}

// Set assigns ink to pen unless the palette is locked.
func (l *LockablePalette) Set(pen Pen, ink Ink) error {
	if l.locked {
		return ErrPaletteLocked
	}
	l.palette.Set(pen, ink)
	return nil
}

// Replace swaps the whole palette unless locked.
func (l *LockablePalette) Replace(p Palette) error {
	if l.locked {
		return ErrPaletteLocked
	}
	l.palette = p
	return nil
}

// AddNovelInks adds inks to the free pens unless locked. It fails when some
// inks could not be placed.
func (l *LockablePalette) AddNovelInks(inks []Ink) error {
	if l.locked {
		return ErrPaletteLocked
	}
	if _, notAdded := l.palette.AddNovelInksExceptInBorder(inks); notAdded > 0 {
		return fmt.Errorf("%w: %d inks left without a pen", ErrPaletteFull, notAdded)
	}
	return nil
}
