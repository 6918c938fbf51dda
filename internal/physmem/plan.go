package physmem

import "fmt"

// Layout describes the page aligned window that has to be mapped to reach
// an access
type Layout struct {
	PageSize int
	// Base is the page aligned device offset of the mapping
	Base uint64
	// Offset is the position of the target address inside the mapping
	Offset int
	// Size is one page, or two when the access straddles a page boundary
	Size int
}

// Plan computes the mapping needed for an access of width w at addr.
// pageSize must be a power of two.
func Plan(addr uint64, w Width, pageSize int) Layout {
	ps := uint64(pageSize)
	offset := addr & (ps - 1)

	size := pageSize
	if int(offset)+w.Bytes() > pageSize {
		size *= 2
	}

	return Layout{
		PageSize: pageSize,
		Base:     addr &^ (ps - 1),
		Offset:   int(offset),
		Size:     size,
	}
}

// Covers reports whether an access of width w at the planned address lies
// entirely inside the mapping
func (l Layout) Covers(w Width) bool {
	return l.Offset >= 0 && l.Offset+w.Bytes() <= l.Size
}

func (l Layout) String() string {
	return fmt.Sprintf("map %#x bytes at %#x, offset %#x", l.Size, l.Base, l.Offset)
}
