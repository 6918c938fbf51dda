package cli

import (
	"fmt"
	"io"
)

const progName = "devmem"

const usageText = `Read/write from physical address

  ADDRESS Address to act upon
  WIDTH   Width (8/16/32/64 or b/h/w/l)
  VALUE   Data to be written
  -r      Read and output only the value in hex, with 0x prefix
  -w      Write only, no read before or after and no output
  -c FILE Read settings from a JSON config file
`

// Usage writes the usage message
func Usage(out io.Writer) {
	fmt.Fprintf(out, "usage: %s [-rw] [-c FILE] ADDRESS [WIDTH [VALUE]]\n\n%s", progName, usageText)
}
