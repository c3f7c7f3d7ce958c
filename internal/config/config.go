// Package config holds runtime configuration: defaults, viper-based env and
// file resolution, CLI flag parsing, and validation. Defaults match the
// legacy mkv-mp4-all shell script for parity.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// --- Enum types for validated string fields ---

// AudioMode controls how the converter handles audio streams.
type AudioMode string

const (
	AudioCopy     AudioMode = "copy"     // Pass audio through untouched (default).
	AudioReencode AudioMode = "reencode" // Re-encode audio at AudioBitrate.
	AudioNone     AudioMode = "none"     // Drop audio streams.
)

// GPUSelection picks the converter's encoding backend.
type GPUSelection string

const (
	GPUAuto     GPUSelection = "auto"     // Converter auto-detects (default).
	GPUNvidia   GPUSelection = "nvidia"   // NVENC.
	GPUAmd      GPUSelection = "amd"      // VAAPI/AMF.
	GPUIntel    GPUSelection = "intel"    // QSV/VAAPI.
	GPUSoftware GPUSelection = "software" // CPU encoding.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// layered by [Load] (config file and CONVMUX_* env), and finally mutated by
// [ParseFlags] before being passed (by pointer) to packages that need it.
type Config struct {
	// Batch settings.
	SearchDir string // Root directory to scan (--dir).
	Procs     int    // Concurrency limit, >= 1. Default: 2.
	MinSizeKB int64  // Minimum valid output size in KB, >= 0. Default: 1024.
	Journal   string // Outcome log path. Default: "mkv-mp4-convert.log".
	NoDelete  bool   // Keep source files even after a successful conversion.

	// Converter process.
	Converter    string        // Converter executable (name or path). Default: "convert-big".
	FromExt      string        // Source extension without dot. Default: "mkv".
	ToExt        string        // Target extension without dot. Default: "mp4".
	Stagger      time.Duration // Delay between job admissions. Default: 500ms.
	GraceTimeout time.Duration // SIGTERM-to-SIGKILL grace on cancellation. Default: 10s.

	// Converter environment pass-through.
	AudioMode    AudioMode    // Default: "copy".
	AudioBitrate string       // Default: "192k". Used when AudioMode is "reencode".
	GPU          GPUSelection // Default: "auto".
	VideoQuality string       // Converter quality preset; empty means converter default.

	// Display and logging.
	LogLevel  string    // slog level: debug|info|warn|error. Default: "info".
	LogFormat string    // slog format: text|json. Default: "text".
	ColorMode ColorMode // Default: "auto".
	CheckOnly bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults matching the legacy
// mkv-mp4-all behavior. Used as the base before [Load] and [ParseFlags]
// apply overrides.
func DefaultConfig() Config {
	return Config{
		Procs:        2,
		MinSizeKB:    1024,
		Journal:      "mkv-mp4-convert.log",
		Converter:    "convert-big",
		FromExt:      "mkv",
		ToExt:        "mp4",
		Stagger:      500 * time.Millisecond,
		GraceTimeout: 10 * time.Second,
		AudioMode:    AudioCopy,
		AudioBitrate: "192k",
		GPU:          GPUAuto,
		LogLevel:     "info",
		LogFormat:    "text",
		ColorMode:    ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// NormalizeExt lowercases an extension and strips a leading dot, so both
// "MKV" and ".mkv" are accepted.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Validate checks numeric ranges and enum fields. When not in CheckOnly mode
// it also requires a search directory. Any failure here is a startup-time
// fatal error: no jobs are dispatched.
func (c *Config) Validate() error {
	if c.Procs < 1 {
		return fmt.Errorf("invalid --procs %d (must be >= 1)", c.Procs)
	}
	if c.MinSizeKB < 0 {
		return fmt.Errorf("invalid --size %d (must be >= 0)", c.MinSizeKB)
	}

	c.FromExt = NormalizeExt(c.FromExt)
	c.ToExt = NormalizeExt(c.ToExt)
	if c.FromExt == "" || c.ToExt == "" {
		return errors.New("source and target extensions must be non-empty")
	}
	if c.FromExt == c.ToExt {
		return fmt.Errorf("source and target extensions are both %q (output would overwrite input)", c.FromExt)
	}

	switch c.AudioMode {
	case AudioCopy, AudioReencode, AudioNone:
		// valid
	default:
		return errors.New("invalid audio mode (use 'copy', 'reencode' or 'none')")
	}

	switch c.GPU {
	case GPUAuto, GPUNvidia, GPUAmd, GPUIntel, GPUSoftware:
		// valid
	default:
		return errors.New("invalid gpu (use 'auto', 'nvidia', 'amd', 'intel' or 'software')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.Converter == "" {
		return errors.New("converter executable must not be empty")
	}
	if c.Journal == "" {
		return errors.New("journal path must not be empty")
	}

	if c.CheckOnly {
		return nil
	}
	if c.SearchDir == "" {
		return errors.New("need a search directory (--dir)")
	}
	c.SearchDir = NormalizeDirArg(c.SearchDir)
	return nil
}

// ConverterEnv returns the environment entries passed to each converter
// invocation. These are the lowercase keys the legacy convert-big script
// reads; validation and source cleanup stay on our side, so min-size and
// delete flags are deliberately not forwarded.
func (c *Config) ConverterEnv() []string {
	env := []string{
		"audio_mode=" + string(c.AudioMode),
		"gpu=" + string(c.GPU),
		"output_format=" + c.ToExt,
	}
	if c.AudioMode == AudioReencode {
		env = append(env, "audio_bitrate="+c.AudioBitrate)
	}
	if c.VideoQuality != "" {
		env = append(env, "video_quality="+c.VideoQuality)
	}
	return env
}
