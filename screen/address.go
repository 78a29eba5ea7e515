/*
Package screen lays sprites out in CPC video memory.

The CRTC scans memory in words. The 16 bit start address held in CRTC
registers 12 and 13 carries a word offset in bits 0 to 9, a buffer size
in bits 10 and 11 (both set selects a 32KB overscan buffer) and the 16KB
page in bits 12 and 13.
*/
package screen

import "fmt"

const (
	offsetMask = 0x3ff
	bufferMask = 0x3
	pageMask   = 0x3

	bufferShift = 10
	pageShift   = 12

	overscanBuffer = 0x3
)

// DisplayAddress is a CRTC display start address.
type DisplayAddress uint16

// NewDisplayAddress validates raw. It panics if raw is 0xC000 or more as
// those bits are not wired on the CRTC.
func NewDisplayAddress(raw uint16) DisplayAddress {
	if raw >= 0xc000 {
		panic(fmt.Sprintf("screen: display address %#04x out of range", raw))
	}
	return DisplayAddress(raw)
}

// StandardAddress is the address of the screen at 0xC000 after reset.
var StandardAddress = NewDisplayAddress(0x3000)

// Offset returns the word offset within the page.
func (a DisplayAddress) Offset() uint16 {
	return uint16(a) & offsetMask
}

// Buffer returns the buffer size bits.
func (a DisplayAddress) Buffer() uint8 {
	return uint8(uint16(a) >> bufferShift & bufferMask)
}

// Page returns the 16KB page number.
func (a DisplayAddress) Page() uint8 {
	return uint8(uint16(a) >> pageShift & pageMask)
}

// IsOverscan reports whether the 32KB buffer is selected.
func (a DisplayAddress) IsOverscan() bool {
	return a.Buffer() == overscanBuffer
}

// SetOffset changes the word offset.
func (a *DisplayAddress) SetOffset(offset uint16) {
	*a = DisplayAddress(uint16(*a)&^offsetMask | offset&offsetMask)
}

// SetPage changes the page.
func (a *DisplayAddress) SetPage(page uint8) {
	*a = DisplayAddress(uint16(*a)&^(pageMask<<pageShift) | uint16(page&pageMask)<<pageShift)
}

// Address returns the Z80 address of the byte the CRTC starts from.
func (a DisplayAddress) Address() uint16 {
	return uint16(a.Page())<<14 | a.Offset()<<1
}

// R12 returns the value of CRTC register 12.
func (a DisplayAddress) R12() uint8 {
	return uint8(uint16(a) >> 8)
}

// R13 returns the value of CRTC register 13.
func (a DisplayAddress) R13() uint8 {
	return uint8(uint16(a))
}

func (a DisplayAddress) String() string {
	return fmt.Sprintf("&%04X (R12=&%02X R13=&%02X)", a.Address(), a.R12(), a.R13())
}

// MoveToNextWord advances one word. Past the last word of a page the
// offset wraps to zero and, in overscan, the next page follows.
func (a *DisplayAddress) MoveToNextWord() {
	offset := a.Offset() + 1
	if offset > offsetMask {
		offset = 0
		if a.IsOverscan() {
			a.SetPage((a.Page() + 1) & pageMask)
		}
	}
	a.SetOffset(offset)
}

// MoveToPreviousWord steps one word back, the reverse of MoveToNextWord.
func (a *DisplayAddress) MoveToPreviousWord() {
	offset := a.Offset()
	if offset == 0 {
		offset = offsetMask
		if a.IsOverscan() {
			a.SetPage((a.Page() + pageMask) & pageMask)
		}
	} else {
		offset--
	}
	a.SetOffset(offset)
}
