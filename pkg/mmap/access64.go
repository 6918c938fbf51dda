//go:build amd64 || arm64 || loong64 || mips64 || mips64le || ppc64 || ppc64le || riscv64 || s390x

package mmap

//go:noinline
func load64(p *uint64) uint64 { return *p }

//go:noinline
func store64(p *uint64, v uint64) { *p = v }

// Aligned64 reports whether a 64-bit access at offset can be made in one
// instruction
func Aligned64(offset uintptr) bool { return true }
