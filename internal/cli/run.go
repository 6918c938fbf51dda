package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"golang.org/x/sys/unix"

	"github.com/fkcurrie/devmem-golang/internal/config"
	"github.com/fkcurrie/devmem-golang/internal/physmem"
	"github.com/fkcurrie/devmem-golang/pkg/mmap"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// Run executes one invocation and returns the process exit code. Results
// go to stdout, diagnostics to stderr.
func Run(args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, progName+": ", 0)

	opts, err := Parse(args)
	if err != nil {
		Usage(stdout)
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		if len(args) > 0 {
			logger.Print(err)
		}
		return ExitFailure
	}

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		logger.Printf("Failed to load configuration: %v", err)
		return ExitFailure
	}

	width := opts.Width
	if width == 0 {
		width = cfg.DefaultWidth
	}

	layout := physmem.Plan(opts.Address, width, os.Getpagesize())

	acc, err := physmem.Open(cfg.Device, layout, opts.HasValue)
	if err != nil {
		logger.Print(describe(err))
		return ExitFailure
	}

	out, err := access(acc, opts, width)
	if err != nil {
		logger.Print(err)
		acc.Close()
		return ExitFailure
	}

	if out != "" {
		fmt.Fprintln(stdout, out)
	}

	return release(logger, acc)
}

// release closes the accessor after a successful access. A failure is only
// a warning: the result has been produced already.
func release(logger *log.Logger, c io.Closer) int {
	if err := c.Close(); err != nil {
		logger.Print(describe(err))
	}
	return ExitSuccess
}

// access performs the write, if any, then the read-back unless write-only
func access(acc *physmem.Accessor, opts *Options, width physmem.Width) (string, error) {
	if opts.HasValue {
		if err := acc.Write(width, opts.Value); err != nil {
			return "", err
		}
	}

	if opts.WriteOnly {
		return "", nil
	}

	v, err := acc.Read(width)
	if err != nil {
		return "", err
	}
	return Format(opts, width, v), nil
}

func loadConfig(path string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = config.LoadConfig(path); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// describe formats device errors as "<op> failed: <message> (<errno>)"
func describe(err error) string {
	var me *mmap.Error
	if !errors.As(err, &me) {
		return err.Error()
	}
	var errno unix.Errno
	if errors.As(me.Err, &errno) {
		return fmt.Sprintf("%s %s failed: %v (%d)", me.Op, me.Device, errno, int(errno))
	}
	return fmt.Sprintf("%s %s failed: %v", me.Op, me.Device, me.Err)
}
