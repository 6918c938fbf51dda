//go:build !(amd64 || arm64 || loong64 || mips64 || mips64le || ppc64 || ppc64le || riscv64 || s390x)

package mmap

import "sync/atomic"

// A plain 64-bit load compiles to two 32-bit loads here

func load64(p *uint64) uint64 { return atomic.LoadUint64(p) }

func store64(p *uint64, v uint64) { atomic.StoreUint64(p, v) }

// Aligned64 reports whether a 64-bit access at offset can be made in one
// instruction. The atomic operations need 8-byte alignment; mappings are
// page aligned so the offset decides.
func Aligned64(offset uintptr) bool { return offset%8 == 0 }
