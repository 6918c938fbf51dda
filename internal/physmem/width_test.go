package physmem

import (
	"errors"
	"testing"
)

func TestWidthFromCode(t *testing.T) {
	tests := []struct {
		code    byte
		want    Width
		wantErr bool
	}{
		{code: 'b', want: Width8},
		{code: 'h', want: Width16},
		{code: 'w', want: Width32},
		{code: 'l', want: Width64},
		{code: 'B', want: Width8},
		{code: 'H', want: Width16},
		{code: 'W', want: Width32},
		{code: 'L', want: Width64},
		{code: 'q', wantErr: true},
		{code: 'x', wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			got, err := WidthFromCode(tt.code)
			if (err != nil) != tt.wantErr {
				t.Fatalf("WidthFromCode(%q) error = %v, wantErr %v", tt.code, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrBadWidth) {
					t.Errorf("WidthFromCode(%q) error = %v, want ErrBadWidth", tt.code, err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("WidthFromCode(%q) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestWidthProperties(t *testing.T) {
	tests := []struct {
		width  Width
		bytes  int
		digits int
	}{
		{Width8, 1, 2},
		{Width16, 2, 4},
		{Width32, 4, 8},
		{Width64, 8, 16},
	}

	for _, tt := range tests {
		t.Run(tt.width.String(), func(t *testing.T) {
			if !tt.width.Valid() {
				t.Errorf("Valid() = false")
			}
			if got := tt.width.Bytes(); got != tt.bytes {
				t.Errorf("Bytes() = %d, want %d", got, tt.bytes)
			}
			if got := tt.width.Digits(); got != tt.digits {
				t.Errorf("Digits() = %d, want %d", got, tt.digits)
			}
		})
	}

	for _, w := range []Width{0, 1, 12, 24, 48, 128} {
		if w.Valid() {
			t.Errorf("Width(%d).Valid() = true", w)
		}
	}
}
