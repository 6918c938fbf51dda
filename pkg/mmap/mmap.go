package mmap

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// MemoryMap represents a shared mapping of a window of a device file
type MemoryMap struct {
	file   *os.File
	region []byte
}

// Error records a failed system call on a device mapping
type Error struct {
	Op     string
	Device string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Device, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewMemoryMap maps size bytes of device starting at base. The device is
// opened with O_SYNC so accesses through the mapping are uncached.
func NewMemoryMap(device string, base int64, size int, writable bool) (*MemoryMap, error) {
	flags := os.O_RDONLY
	prot := unix.PROT_READ
	if writable {
		flags = os.O_RDWR
		prot |= unix.PROT_WRITE
	}

	f, err := os.OpenFile(device, flags|unix.O_SYNC, 0)
	if err != nil {
		return nil, &Error{Op: "open", Device: device, Err: unwrapPathError(err)}
	}

	region, err := unix.Mmap(int(f.Fd()), base, size, prot, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, &Error{Op: "mmap", Device: device, Err: err}
	}

	return &MemoryMap{
		file:   f,
		region: region,
	}, nil
}

// Close unmaps the region and closes the device. The device is closed even
// when the unmap fails.
func (m *MemoryMap) Close() error {
	var err error
	if m.region != nil {
		if uerr := unix.Munmap(m.region); uerr != nil {
			err = &Error{Op: "munmap", Device: m.file.Name(), Err: uerr}
		}
		m.region = nil
	}
	if m.file != nil {
		if cerr := m.file.Close(); cerr != nil && err == nil {
			err = &Error{Op: "close", Device: m.file.Name(), Err: cerr}
		}
		m.file = nil
	}
	return err
}

func (m *MemoryMap) ptr(offset uintptr, n uintptr) unsafe.Pointer {
	if offset+n > uintptr(len(m.region)) {
		panic(fmt.Sprintf("mmap: access [%#x, %#x) outside %#x byte mapping", offset, offset+n, len(m.region)))
	}
	return unsafe.Pointer(&m.region[offset])
}

// Read8 reads an 8-bit value from the memory region
func (m *MemoryMap) Read8(offset uintptr) uint8 {
	return load8((*uint8)(m.ptr(offset, 1)))
}

// Write8 writes an 8-bit value to the memory region
func (m *MemoryMap) Write8(offset uintptr, value uint8) {
	store8((*uint8)(m.ptr(offset, 1)), value)
}

// Read16 reads a 16-bit value from the memory region
func (m *MemoryMap) Read16(offset uintptr) uint16 {
	return load16((*uint16)(m.ptr(offset, 2)))
}

// Write16 writes a 16-bit value to the memory region
func (m *MemoryMap) Write16(offset uintptr, value uint16) {
	store16((*uint16)(m.ptr(offset, 2)), value)
}

// Read32 reads a 32-bit value from the memory region
func (m *MemoryMap) Read32(offset uintptr) uint32 {
	return load32((*uint32)(m.ptr(offset, 4)))
}

// Write32 writes a 32-bit value to the memory region
func (m *MemoryMap) Write32(offset uintptr, value uint32) {
	store32((*uint32)(m.ptr(offset, 4)), value)
}

// Read64 reads a 64-bit value from the memory region. The offset must
// satisfy Aligned64.
func (m *MemoryMap) Read64(offset uintptr) uint64 {
	return load64((*uint64)(m.ptr(offset, 8)))
}

// Write64 writes a 64-bit value to the memory region
func (m *MemoryMap) Write64(offset uintptr, value uint64) {
	store64((*uint64)(m.ptr(offset, 8)), value)
}

// The compiler may not merge, split or drop a load or store hidden behind a
// call it cannot inline.

//go:noinline
func load8(p *uint8) uint8 { return *p }

//go:noinline
func store8(p *uint8, v uint8) { *p = v }

//go:noinline
func load16(p *uint16) uint16 { return *p }

//go:noinline
func store16(p *uint16, v uint16) { *p = v }

//go:noinline
func load32(p *uint32) uint32 { return *p }

//go:noinline
func store32(p *uint32, v uint32) { *p = v }

func unwrapPathError(err error) error {
	if pe, ok := err.(*os.PathError); ok {
		return pe.Err
	}
	return err
}
