package physmem

import (
	"errors"
	"fmt"

	"github.com/fkcurrie/devmem-golang/pkg/mmap"
)

// DefaultDevice is the physical memory character device
const DefaultDevice = "/dev/mem"

// ErrUnaligned is returned for 64-bit accesses this platform cannot make in
// a single instruction
var ErrUnaligned = errors.New("unaligned 64-bit access")

// Accessor performs sized accesses at one physical address
type Accessor struct {
	mem    *mmap.MemoryMap
	layout Layout
}

// Open maps the window described by l from device. A read-only accessor is
// opened unless writable is set.
func Open(device string, l Layout, writable bool) (*Accessor, error) {
	mem, err := mmap.NewMemoryMap(device, int64(l.Base), l.Size, writable)
	if err != nil {
		return nil, err
	}
	return &Accessor{mem: mem, layout: l}, nil
}

// Write stores the low w bits of v at the target address in a single access
func (a *Accessor) Write(w Width, v uint64) error {
	if err := a.check(w); err != nil {
		return err
	}
	off := uintptr(a.layout.Offset)
	switch w {
	case Width8:
		a.mem.Write8(off, uint8(v))
	case Width16:
		a.mem.Write16(off, uint16(v))
	case Width32:
		a.mem.Write32(off, uint32(v))
	case Width64:
		a.mem.Write64(off, v)
	}
	return nil
}

// Read loads w bits from the target address in a single access
func (a *Accessor) Read(w Width) (uint64, error) {
	if err := a.check(w); err != nil {
		return 0, err
	}
	off := uintptr(a.layout.Offset)
	switch w {
	case Width8:
		return uint64(a.mem.Read8(off)), nil
	case Width16:
		return uint64(a.mem.Read16(off)), nil
	case Width32:
		return uint64(a.mem.Read32(off)), nil
	default:
		return a.mem.Read64(off), nil
	}
}

func (a *Accessor) check(w Width) error {
	if !w.Valid() {
		return fmt.Errorf("%w: %d", ErrBadWidth, uint(w))
	}
	if !a.layout.Covers(w) {
		return fmt.Errorf("%v access at offset %#x does not fit a %#x byte mapping", w, a.layout.Offset, a.layout.Size)
	}
	if w == Width64 && !mmap.Aligned64(uintptr(a.layout.Offset)) {
		return fmt.Errorf("%w at %#x", ErrUnaligned, a.layout.Base+uint64(a.layout.Offset))
	}
	return nil
}

// Close unmaps the window and closes the device
func (a *Accessor) Close() error {
	return a.mem.Close()
}
