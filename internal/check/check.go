// Package check provides system diagnostics (--check mode) and startup
// converter resolution. The GPU vendor scan is informational only; it never
// influences scheduling.
package check

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/rbatista/convmux/internal/config"
)

// ErrConverterNotFound is returned when the converter executable cannot be
// resolved. Fatal at startup: no jobs are dispatched.
var ErrConverterNotFound = errors.New("converter executable not found")

// ResolveConverter resolves the configured converter to an absolute path.
// A bare name is looked up on PATH; a path is checked directly.
func ResolveConverter(name string) (string, error) {
	if !strings.ContainsRune(name, os.PathSeparator) {
		path, err := exec.LookPath(name)
		if err != nil {
			return "", fmt.Errorf("%w: %s not on PATH", ErrConverterNotFound, name)
		}
		return path, nil
	}

	abs, err := filepath.Abs(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrConverterNotFound, name)
	}
	info, err := os.Stat(abs)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrConverterNotFound, abs)
	}
	if info.Mode()&0o111 == 0 {
		return "", fmt.Errorf("%w: %s is not executable", ErrConverterNotFound, abs)
	}
	return abs, nil
}

// RunCheck runs the --check flow: converter and ffmpeg availability, GPU
// vendor hint, and host resources. Informational; returns false only when
// the converter itself is unusable.
func RunCheck(cfg *config.Config, log *slog.Logger) bool {
	ok := true

	path, err := ResolveConverter(cfg.Converter)
	if err != nil {
		log.Error("converter not usable", "converter", cfg.Converter, "error", err)
		ok = false
	} else {
		log.Info("converter found", "path", path)
	}

	checkFfmpeg(log)
	log.Info("gpu vendor", "vendor", GPUVendor())
	checkHost(log)
	return ok
}

// checkFfmpeg reports whether ffmpeg (the converter's own dependency) is on
// PATH, with its version line when available.
func checkFfmpeg(log *slog.Logger) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		log.Warn("ffmpeg not found on PATH (the converter may provide its own)")
		return
	}
	out, err := exec.Command("ffmpeg", "-version").Output()
	if err != nil {
		log.Warn("ffmpeg found but -version failed", "error", err)
		return
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Info("ffmpeg available", "version", firstLine)
}

// checkHost logs logical CPU count and memory via gopsutil.
func checkHost(log *slog.Logger) {
	if n, err := cpu.Counts(true); err == nil {
		log.Info("host cpu", "logical_cores", n)
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		log.Info("host memory",
			"total_mb", vm.Total/(1024*1024),
			"available_mb", vm.Available/(1024*1024),
		)
	}
}

// PCI vendor IDs as exposed by /sys/class/drm/card*/device/vendor.
var pciVendors = map[string]string{
	"0x10de": "nvidia",
	"0x1002": "amd",
	"0x8086": "intel",
}

// GPUVendor scans the DRM device tree for a known GPU vendor. Returns
// "none" when no render device is present and "unknown" for an unrecognized
// vendor ID.
func GPUVendor() string {
	return gpuVendorFrom("/sys/class/drm")
}

func gpuVendorFrom(drmRoot string) string {
	cards, err := filepath.Glob(filepath.Join(drmRoot, "card*", "device", "vendor"))
	if err != nil || len(cards) == 0 {
		return "none"
	}
	for _, vendorFile := range cards {
		data, err := os.ReadFile(vendorFile)
		if err != nil {
			continue
		}
		id := strings.TrimSpace(string(data))
		if name, found := pciVendors[id]; found {
			return name
		}
	}
	return "unknown"
}
