package physmem

import "testing"

func TestPlan(t *testing.T) {
	tests := []struct {
		name     string
		addr     uint64
		width    Width
		pageSize int
		want     Layout
	}{
		{
			name:     "page aligned",
			addr:     0x1000,
			width:    Width32,
			pageSize: 4096,
			want:     Layout{PageSize: 4096, Base: 0x1000, Offset: 0, Size: 4096},
		},
		{
			name:     "inside page",
			addr:     0x3f200034,
			width:    Width32,
			pageSize: 4096,
			want:     Layout{PageSize: 4096, Base: 0x3f200000, Offset: 0x34, Size: 4096},
		},
		{
			name:     "last word of page",
			addr:     0x1ffc,
			width:    Width32,
			pageSize: 4096,
			want:     Layout{PageSize: 4096, Base: 0x1000, Offset: 0xffc, Size: 4096},
		},
		{
			name:     "straddles page boundary",
			addr:     0x1ffe,
			width:    Width32,
			pageSize: 4096,
			want:     Layout{PageSize: 4096, Base: 0x1000, Offset: 0xffe, Size: 8192},
		},
		{
			name:     "64-bit straddle",
			addr:     0x2ffc,
			width:    Width64,
			pageSize: 4096,
			want:     Layout{PageSize: 4096, Base: 0x2000, Offset: 0xffc, Size: 8192},
		},
		{
			name:     "last byte of page",
			addr:     0xfff,
			width:    Width8,
			pageSize: 4096,
			want:     Layout{PageSize: 4096, Base: 0, Offset: 0xfff, Size: 4096},
		},
		{
			name:     "64k pages",
			addr:     0x12345,
			width:    Width16,
			pageSize: 65536,
			want:     Layout{PageSize: 65536, Base: 0x10000, Offset: 0x2345, Size: 65536},
		},
		{
			name:     "top of address space",
			addr:     0xfffffffffffffff8,
			width:    Width64,
			pageSize: 4096,
			want:     Layout{PageSize: 4096, Base: 0xfffffffffffff000, Offset: 0xff8, Size: 4096},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Plan(tt.addr, tt.width, tt.pageSize)
			if got != tt.want {
				t.Errorf("Plan(%#x, %v, %d) = %+v, want %+v", tt.addr, tt.width, tt.pageSize, got, tt.want)
			}
			if got.Base+uint64(got.Offset) != tt.addr {
				t.Errorf("Base+Offset = %#x, want %#x", got.Base+uint64(got.Offset), tt.addr)
			}
		})
	}
}

// TestPlanCovers checks that the mapping always contains the whole access
func TestPlanCovers(t *testing.T) {
	widths := []Width{Width8, Width16, Width32, Width64}
	for _, pageSize := range []int{4096, 16384, 65536} {
		for _, w := range widths {
			for base := uint64(0); base < 3*uint64(pageSize); base += uint64(pageSize) {
				for off := 0; off < pageSize; off++ {
					addr := base + uint64(off)
					l := Plan(addr, w, pageSize)
					if !l.Covers(w) {
						t.Fatalf("Plan(%#x, %v, %d) = %v does not cover the access", addr, w, pageSize, l)
					}
					if l.Base%uint64(pageSize) != 0 {
						t.Fatalf("Plan(%#x, %v, %d) base %#x not page aligned", addr, w, pageSize, l.Base)
					}
					if l.Size != pageSize && l.Size != 2*pageSize {
						t.Fatalf("Plan(%#x, %v, %d) size %#x", addr, w, pageSize, l.Size)
					}
					if end := l.Base + uint64(l.Size); addr+uint64(w.Bytes()) > end {
						t.Fatalf("Plan(%#x, %v, %d) ends at %#x", addr, w, pageSize, end)
					}
				}
			}
		}
	}
}
