package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/fkcurrie/devmem-golang/internal/physmem"
)

// ErrUsage is returned when the command line cannot be acted upon
var ErrUsage = errors.New("usage error")

// ParseError describes a malformed positional argument
type ParseError struct {
	Arg   string
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Arg, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is makes every ParseError match ErrUsage
func (e *ParseError) Is(target error) bool {
	return target == ErrUsage
}

// Options holds one parsed invocation
type Options struct {
	// ReadFormatted prints the value read with a 0x prefix
	ReadFormatted bool
	// WriteOnly suppresses the read-back and all output. It wins over
	// ReadFormatted when both are given.
	WriteOnly bool
	// ConfigPath names an optional JSON config file
	ConfigPath string

	Address uint64
	// Width is zero when no WIDTH argument was given
	Width    physmem.Width
	Value    uint64
	HasValue bool
}

// Parse parses the arguments following the program name
func Parse(args []string) (*Options, error) {
	var opts Options

	fs := flag.NewFlagSet(progName, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&opts.ReadFormatted, "r", false, "read and output only the value in hex, with 0x prefix")
	fs.BoolVar(&opts.WriteOnly, "w", false, "write only, no read before or after and no output")
	fs.StringVar(&opts.ConfigPath, "c", "", "JSON config file")

	if err := fs.Parse(splitClusters(args)); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	pos := fs.Args()
	if len(pos) == 0 {
		return nil, fmt.Errorf("%w: missing ADDRESS", ErrUsage)
	}
	if len(pos) > 3 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, pos[3])
	}

	addr, err := parseNumber("ADDRESS", pos[0])
	if err != nil {
		return nil, err
	}
	opts.Address = addr

	if len(pos) > 1 {
		w, err := ParseWidth(pos[1])
		if err != nil {
			return nil, err
		}
		opts.Width = w
	}

	if len(pos) > 2 {
		v, err := parseNumber("VALUE", pos[2])
		if err != nil {
			return nil, err
		}
		opts.Value = v
		opts.HasValue = true
	}

	return &opts, nil
}

// ParseWidth parses a WIDTH argument. A token that starts with a digit or
// has more than one character is a decimal bit count; a single letter is a
// width code.
func ParseWidth(tok string) (physmem.Width, error) {
	if tok == "" {
		return 0, &ParseError{Arg: "WIDTH", Token: tok, Err: physmem.ErrBadWidth}
	}

	if isDigit(tok[0]) || len(tok) > 1 {
		n, err := strconv.ParseUint(tok, 10, 8)
		if err != nil {
			return 0, &ParseError{Arg: "WIDTH", Token: tok, Err: numError(err)}
		}
		w := physmem.Width(n)
		if !w.Valid() {
			return 0, &ParseError{Arg: "WIDTH", Token: tok, Err: physmem.ErrBadWidth}
		}
		return w, nil
	}

	w, err := physmem.WidthFromCode(tok[0])
	if err != nil {
		return 0, &ParseError{Arg: "WIDTH", Token: tok, Err: physmem.ErrBadWidth}
	}
	return w, nil
}

// parseNumber accepts decimal, 0x hex and leading-zero octal
func parseNumber(arg, tok string) (uint64, error) {
	v, err := strconv.ParseUint(tok, 0, 64)
	if err != nil {
		return 0, &ParseError{Arg: arg, Token: tok, Err: numError(err)}
	}
	return v, nil
}

func numError(err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return ne.Err
	}
	return err
}

// splitClusters rewrites getopt style arguments for the flag package:
// clusters such as -rw become -r -w, and -cFILE becomes -c FILE.
func splitClusters(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" || len(arg) < 2 || arg[0] != '-' {
			return append(out, args[i:]...)
		}
		opts, needArg, ok := splitCluster(arg[1:])
		if !ok {
			out = append(out, arg)
			continue
		}
		out = append(out, opts...)
		if needArg && i+1 < len(args) {
			i++
			out = append(out, args[i])
		}
	}
	return out
}

// splitCluster expands the letters of one flag argument. A c takes the rest
// of the argument as its value, or the next argument when nothing follows.
func splitCluster(s string) (opts []string, needArg, ok bool) {
	for j := 0; j < len(s); j++ {
		switch s[j] {
		case 'r', 'w':
			opts = append(opts, "-"+s[j:j+1])
		case 'c':
			opts = append(opts, "-c")
			if j+1 == len(s) {
				return opts, true, true
			}
			if s[j+1] == '=' {
				// -c=FILE is understood by the flag package as is
				return nil, false, false
			}
			return append(opts, s[j+1:]), false, true
		default:
			return nil, false, false
		}
	}
	return opts, false, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
