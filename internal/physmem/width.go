package physmem

import (
	"errors"
	"fmt"
)

// Width is the size of a single memory access in bits
type Width uint

const (
	Width8  Width = 8
	Width16 Width = 16
	Width32 Width = 32
	Width64 Width = 64

	// DefaultWidth matches the size of a C int on every Linux target
	DefaultWidth = Width32
)

// ErrBadWidth is returned for access widths other than 8, 16, 32 and 64 bits
var ErrBadWidth = errors.New("bad width")

// widthCodes maps the single letter width codes to widths
var widthCodes = map[byte]Width{
	'b': Width8,
	'h': Width16,
	'w': Width32,
	'l': Width64,
}

// WidthFromCode resolves a width letter (b, h, w or l, any case)
func WidthFromCode(c byte) (Width, error) {
	w, ok := widthCodes[c|0x20]
	if !ok {
		return 0, fmt.Errorf("%w: unknown width code %q", ErrBadWidth, c)
	}
	return w, nil
}

// Valid reports whether w is a supported access width
func (w Width) Valid() bool {
	switch w {
	case Width8, Width16, Width32, Width64:
		return true
	}
	return false
}

// Bytes returns the number of bytes covered by one access
func (w Width) Bytes() int {
	return int(w) / 8
}

// Digits returns the number of hex digits needed to print a full value
func (w Width) Digits() int {
	return int(w) / 4
}

func (w Width) String() string {
	return fmt.Sprintf("%d-bit", uint(w))
}
