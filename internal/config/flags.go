package config

// This file implements CLI flag parsing and help text. Flags are grouped into
// batch, converter, and display/utility concerns. Flags override whatever
// [Load] resolved from file and environment.

import (
	"flag"
	"fmt"
	"os"
)

// ParseFlags parses args (normally os.Args[1:]) into cfg. On --help or
// --version it prints and exits. On error it returns non-nil (e.g. unknown
// flag or a malformed numeric value).
func ParseFlags(cfg *Config, version string, args []string) error {
	fs := flag.NewFlagSet("convmux", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	var showHelp, showVersion bool

	defineBatchFlags(fs, cfg)
	defineConverterFlags(fs, cfg)
	defineDisplayFlags(fs, cfg)
	fs.BoolVar(&showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&showHelp, "h", false, "Same as --help")
	fs.BoolVar(&showVersion, "version", false, "Show version and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp {
		printUsage(fs)
		os.Exit(0)
	}
	if showVersion {
		fmt.Fprintln(os.Stdout, "convmux v"+version)
		os.Exit(0)
	}

	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q (use --dir to set the search directory)", fs.Arg(0))
	}
	return nil
}

// defineBatchFlags registers --dir, --procs, --size, --log, --nodelete.
func defineBatchFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.SearchDir, "dir", cfg.SearchDir, "Directory to scan recursively for source files")
	fs.StringVar(&cfg.SearchDir, "d", cfg.SearchDir, "Same as --dir")
	fs.IntVar(&cfg.Procs, "procs", cfg.Procs, "Maximum simultaneous conversions")
	fs.IntVar(&cfg.Procs, "p", cfg.Procs, "Same as --procs")
	fs.Int64Var(&cfg.MinSizeKB, "size", cfg.MinSizeKB, "Minimum valid output size in KB")
	fs.Int64Var(&cfg.MinSizeKB, "s", cfg.MinSizeKB, "Same as --size")
	fs.StringVar(&cfg.Journal, "log", cfg.Journal, "Outcome log path")
	fs.StringVar(&cfg.Journal, "l", cfg.Journal, "Same as --log")
	fs.BoolVar(&cfg.NoDelete, "nodelete", cfg.NoDelete, "Keep source files after successful conversion")
}

// defineConverterFlags registers --converter, --from, --to and the
// pass-through encoding settings.
func defineConverterFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Converter, "converter", cfg.Converter, "Converter executable (name on PATH or full path)")
	fs.StringVar(&cfg.FromExt, "from", cfg.FromExt, "Source file extension")
	fs.StringVar(&cfg.ToExt, "to", cfg.ToExt, "Target file extension")
	fs.Var(&audioModeValue{&cfg.AudioMode}, "audio", "Audio handling: copy | reencode | none")
	fs.StringVar(&cfg.AudioBitrate, "audio-bitrate", cfg.AudioBitrate, "Audio bitrate when re-encoding (e.g. 192k)")
	fs.Var(&gpuValue{&cfg.GPU}, "gpu", "Encoder backend: auto | nvidia | amd | intel | software")
	fs.StringVar(&cfg.VideoQuality, "quality", cfg.VideoQuality, "Converter quality preset (converter default when empty)")
}

// defineDisplayFlags registers logging, color, and --check.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug | info | warn | error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: text | json")
	fs.Var(&colorModeValue{&cfg.ColorMode}, "color", "Color output: auto | always | never")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprint(os.Stderr, `convmux - batch media conversion orchestrator

Scans a directory tree for source media files and converts each one with an
external converter, running up to --procs conversions at a time. Every
finished job is appended to the outcome log; sources are removed only after
a successful, size-validated conversion.

Usage:
  convmux --dir /media/incoming [options]

Exit codes:
  0    batch completed (individual job failures included) or no files found
  1    configuration, discovery, or converter resolution error
  130  run cancelled before completion

Options:
`)
	fs.PrintDefaults()
}

// --- flag.Value wrappers for enum fields ---

type audioModeValue struct{ v *AudioMode }

func (a *audioModeValue) String() string {
	if a.v == nil {
		return ""
	}
	return string(*a.v)
}

func (a *audioModeValue) Set(s string) error {
	m := AudioMode(s)
	switch m {
	case AudioCopy, AudioReencode, AudioNone:
		*a.v = m
		return nil
	}
	return fmt.Errorf("invalid audio mode %q", s)
}

type gpuValue struct{ v *GPUSelection }

func (g *gpuValue) String() string {
	if g.v == nil {
		return ""
	}
	return string(*g.v)
}

func (g *gpuValue) Set(s string) error {
	sel := GPUSelection(s)
	switch sel {
	case GPUAuto, GPUNvidia, GPUAmd, GPUIntel, GPUSoftware:
		*g.v = sel
		return nil
	}
	return fmt.Errorf("invalid gpu %q", s)
}

type colorModeValue struct{ v *ColorMode }

func (c *colorModeValue) String() string {
	if c.v == nil {
		return ""
	}
	return string(*c.v)
}

func (c *colorModeValue) Set(s string) error {
	m := ColorMode(s)
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		*c.v = m
		return nil
	}
	return fmt.Errorf("invalid color mode %q", s)
}
