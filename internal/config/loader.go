package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Load resolves configuration from an optional config file and CONVMUX_*
// environment variables, layered over [DefaultConfig]. CLI flags are applied
// afterwards by [ParseFlags] and take precedence.
func Load(configPath string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("CONVMUX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath == "" {
		configPath = os.Getenv("CONVMUX_CONFIG")
	}
	if configPath == "" {
		for _, p := range []string{"convmux.yaml", "convmux.yml"} {
			if _, err := os.Stat(p); err == nil {
				configPath = p
				break
			}
		}
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	cfg := DefaultConfig()
	cfg.SearchDir = v.GetString("dir")
	cfg.Procs = v.GetInt("procs")
	cfg.MinSizeKB = v.GetInt64("size")
	cfg.Journal = v.GetString("log")
	cfg.NoDelete = v.GetBool("nodelete")
	cfg.Converter = v.GetString("converter")
	cfg.FromExt = v.GetString("from")
	cfg.ToExt = v.GetString("to")
	cfg.Stagger = v.GetDuration("stagger")
	cfg.GraceTimeout = v.GetDuration("grace_timeout")
	cfg.AudioMode = AudioMode(v.GetString("audio.mode"))
	cfg.AudioBitrate = v.GetString("audio.bitrate")
	cfg.GPU = GPUSelection(v.GetString("gpu"))
	cfg.VideoQuality = v.GetString("video.quality")
	cfg.LogLevel = v.GetString("log_level")
	cfg.LogFormat = v.GetString("log_format")
	cfg.ColorMode = ColorMode(v.GetString("color"))
	return cfg, nil
}

// setDefaults mirrors DefaultConfig so viper reports complete values even
// for keys never set by file or environment.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("dir", "")
	v.SetDefault("procs", d.Procs)
	v.SetDefault("size", d.MinSizeKB)
	v.SetDefault("log", d.Journal)
	v.SetDefault("nodelete", false)
	v.SetDefault("converter", d.Converter)
	v.SetDefault("from", d.FromExt)
	v.SetDefault("to", d.ToExt)
	v.SetDefault("stagger", 500*time.Millisecond)
	v.SetDefault("grace_timeout", 10*time.Second)
	v.SetDefault("audio.mode", string(d.AudioMode))
	v.SetDefault("audio.bitrate", d.AudioBitrate)
	v.SetDefault("gpu", string(d.GPU))
	v.SetDefault("video.quality", "")
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("color", string(d.ColorMode))
}
