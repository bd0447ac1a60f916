// Package main is the entry point for the hexview cartridge viewer.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/dshills/hexview/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, code, ok := parseFlags(os.Args[1:])
	if !ok {
		return code
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil && !errors.Is(err, app.ErrQuit) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// parseFlags parses the command line. When ok is false the program exits
// with code.
func parseFlags(args []string) (opts app.Options, code int, ok bool) {
	fs := flag.NewFlagSet("hexview", flag.ContinueOnError)

	var showVersion bool
	var offset string
	fs.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	fs.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.BackendName, "backend", "", "Display backend (window, terminal)")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&opts.ScriptPath, "script", "", "Startup script to run instead of init.lua")
	fs.StringVar(&offset, "offset", "", "Byte offset to show first (decimal or 0x hex)")
	fs.BoolVar(&opts.Watch, "watch", true, "Reload the configuration file when it changes")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "hexview - NES cartridge hex and tile viewer\n\n")
		fmt.Fprintf(out, "Usage: hexview [options] file\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nExamples:\n")
		fmt.Fprintf(out, "  hexview game.nes                     Open in a window\n")
		fmt.Fprintf(out, "  hexview -backend terminal game.nes   Draw in the terminal\n")
		fmt.Fprintf(out, "  hexview -offset 0x4010 game.nes      Start at the second bank\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, 0, false
		}
		return opts, 2, false
	}

	if showVersion {
		fmt.Printf("hexview %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return opts, 0, false
	}

	if opts.LogLevel != "" {
		if _, valid := app.ParseLogLevel(opts.LogLevel); !valid {
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
			return opts, 2, false
		}
	}
	switch opts.BackendName {
	case "", app.BackendWindow, app.BackendTerminal:
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid backend %q (must be window or terminal)\n", opts.BackendName)
		return opts, 2, false
	}
	if offset != "" {
		n, err := strconv.ParseInt(offset, 0, 64)
		if err != nil || n < 0 {
			fmt.Fprintf(os.Stderr, "Error: invalid offset %q\n", offset)
			return opts, 2, false
		}
		opts.Offset = int(n)
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return opts, 2, false
	}
	opts.ImagePath = fs.Arg(0)
	return opts, 0, true
}
