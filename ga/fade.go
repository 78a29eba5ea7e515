package ga

type channel int

const (
	red channel = iota
	green
	blue
)

func (p Palette) allZero(c channel) bool {
	for _, pen := range p.Pens() {
		r, g, b := p.inks[pen].Levels()
		if [...]Level{r, g, b}[c] != Zero {
			return false
		}
	}
	return true
}

func (p Palette) decreased(c channel) Palette {
	for _, pen := range p.Pens() {
		r, g, b := p.inks[pen].Levels()
		switch c {
		case red:
			r = r.Decrease()
		case green:
			g = g.Decrease()
		case blue:
			b = b.Decrease()
		}
		p.inks[pen] = InkFromLevels(r, g, b)
	}
	return p
}

// RGBFadeOut returns the palettes of a fade to black. Green is removed
// first, then red, then blue; each palette lowers the current channel of
// every ink by half a step. The starting palette is not included.
func (p Palette) RGBFadeOut() []Palette {
	var palettes []Palette
	current := p
	for _, c := range []channel{green, red, blue} {
		for !current.allZero(c) {
			current = current.decreased(c)
			palettes = append(palettes, current)
		}
	}
	return palettes
}
