package cli

import (
	"fmt"

	"github.com/fkcurrie/devmem-golang/internal/physmem"
)

// Format renders the result of an access. It returns an empty string when
// nothing is to be printed.
func Format(opts *Options, w physmem.Width, read uint64) string {
	switch {
	case opts.WriteOnly:
		return ""
	case opts.HasValue:
		return fmt.Sprintf("Written 0x%X; readback 0x%X", opts.Value, read)
	case opts.ReadFormatted:
		return fmt.Sprintf("0x%0*X", w.Digits(), read)
	default:
		// Zero padding shows the width of the access just done
		return fmt.Sprintf("%0*X", w.Digits(), read)
	}
}
