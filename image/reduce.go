package image

import (
	"slices"

	"github.com/bodgit/cpcimage/ga"
)

func (m *ColorMatrix) countInks() map[ga.Ink]int {
	inks := make(map[ga.Ink]int)
	for _, row := range m.rows {
		for _, ink := range row {
			inks[ink]++
		}
	}
	return inks
}

func sqDiff(x, y uint8) uint32 {
	d := int32(x) - int32(y)
	return uint32(d * d)
}

// Return the two closest inks of the set
func closestInks(inks []ga.Ink) (ga.Ink, ga.Ink) {
	var rc1, rc2 ga.Ink
	bestSum := uint32(1<<32 - 1)
	for i, c1 := range inks {
		r1, g1, b1 := c1.RGB()
		for j, c2 := range inks {
			if i == j {
				continue
			}
			r2, g2, b2 := c2.RGB()
			if sum := sqDiff(r1, r2) + sqDiff(g1, g2) + sqDiff(b1, b2); sum < bestSum {
				bestSum, rc1, rc2 = sum, c1, c2
			}
		}
	}
	return rc1, rc2
}

// ReduceToMaxColors merges inks until at most n remain. The two closest
// inks are merged first and the one used by more pixels survives. It
// returns the number of inks that were merged away.
func (m *ColorMatrix) ReduceToMaxColors(n int) int {
	if n < 1 {
		n = 1
	}

	frequency := m.countInks()
	inks := m.Inks()
	merged := 0
	for len(inks) > n {
		c1, c2 := closestInks(inks)

		// Keep whichever ink appears more frequently
		keep, drop := c2, c1
		if frequency[c1] > frequency[c2] {
			keep, drop = c1, c2
		}
		m.ReplaceInk(drop, keep)
		frequency[keep] += frequency[drop]
		delete(frequency, drop)

		i := slices.Index(inks, drop)
		inks = slices.Delete(inks, i, i+1)
		merged++
	}
	return merged
}
