package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 2, cfg.Procs)
	assert.Equal(t, int64(1024), cfg.MinSizeKB)
	assert.Equal(t, "convert-big", cfg.Converter)
	assert.Equal(t, "mkv", cfg.FromExt)
	assert.Equal(t, "mp4", cfg.ToExt)
	assert.Equal(t, AudioCopy, cfg.AudioMode)
	assert.Equal(t, GPUAuto, cfg.GPU)
	assert.Equal(t, 500*time.Millisecond, cfg.Stagger)
	assert.False(t, cfg.NoDelete)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg := DefaultConfig()
		cfg.SearchDir = "/media/in"
		return cfg
	}

	t.Run("accepts defaults with dir", func(t *testing.T) {
		cfg := valid()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("rejects zero procs", func(t *testing.T) {
		cfg := valid()
		cfg.Procs = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects negative size", func(t *testing.T) {
		cfg := valid()
		cfg.MinSizeKB = -1
		assert.Error(t, cfg.Validate())
	})

	t.Run("accepts zero size", func(t *testing.T) {
		cfg := valid()
		cfg.MinSizeKB = 0
		assert.NoError(t, cfg.Validate())
	})

	t.Run("rejects missing dir", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.Error(t, cfg.Validate())
	})

	t.Run("check mode needs no dir", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.CheckOnly = true
		assert.NoError(t, cfg.Validate())
	})

	t.Run("rejects same source and target extension", func(t *testing.T) {
		cfg := valid()
		cfg.ToExt = "mkv"
		assert.Error(t, cfg.Validate())
	})

	t.Run("normalizes extensions", func(t *testing.T) {
		cfg := valid()
		cfg.FromExt = ".MKV"
		cfg.ToExt = "MP4"
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "mkv", cfg.FromExt)
		assert.Equal(t, "mp4", cfg.ToExt)
	})

	t.Run("rejects bad audio mode", func(t *testing.T) {
		cfg := valid()
		cfg.AudioMode = "loud"
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects bad gpu", func(t *testing.T) {
		cfg := valid()
		cfg.GPU = "voodoo2"
		assert.Error(t, cfg.Validate())
	})

	t.Run("strips trailing slash from dir", func(t *testing.T) {
		cfg := valid()
		cfg.SearchDir = "/media/in/"
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "/media/in", cfg.SearchDir)
	})
}

func TestConverterEnv(t *testing.T) {
	cfg := DefaultConfig()
	env := cfg.ConverterEnv()
	assert.Contains(t, env, "audio_mode=copy")
	assert.Contains(t, env, "gpu=auto")
	assert.Contains(t, env, "output_format=mp4")
	assert.NotContains(t, env, "audio_bitrate=192k", "bitrate only set when re-encoding")

	cfg.AudioMode = AudioReencode
	cfg.VideoQuality = "high"
	env = cfg.ConverterEnv()
	assert.Contains(t, env, "audio_bitrate=192k")
	assert.Contains(t, env, "video_quality=high")
}

func TestParseFlags(t *testing.T) {
	t.Run("overrides defaults", func(t *testing.T) {
		cfg := DefaultConfig()
		err := ParseFlags(&cfg, "test", []string{
			"--dir", "/media/in",
			"--procs", "4",
			"--size", "2048",
			"--log", "/tmp/out.log",
			"--nodelete",
			"--audio", "reencode",
			"--gpu", "nvidia",
		})
		require.NoError(t, err)
		assert.Equal(t, "/media/in", cfg.SearchDir)
		assert.Equal(t, 4, cfg.Procs)
		assert.Equal(t, int64(2048), cfg.MinSizeKB)
		assert.Equal(t, "/tmp/out.log", cfg.Journal)
		assert.True(t, cfg.NoDelete)
		assert.Equal(t, AudioReencode, cfg.AudioMode)
		assert.Equal(t, GPUNvidia, cfg.GPU)
	})

	t.Run("short aliases", func(t *testing.T) {
		cfg := DefaultConfig()
		err := ParseFlags(&cfg, "test", []string{"-d", "/in", "-p", "8", "-s", "0"})
		require.NoError(t, err)
		assert.Equal(t, "/in", cfg.SearchDir)
		assert.Equal(t, 8, cfg.Procs)
		assert.Equal(t, int64(0), cfg.MinSizeKB)
	})

	t.Run("malformed numeric is an error", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.Error(t, ParseFlags(&cfg, "test", []string{"--procs", "many"}))
	})

	t.Run("invalid enum is an error", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.Error(t, ParseFlags(&cfg, "test", []string{"--audio", "loud"}))
	})

	t.Run("positional args rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.Error(t, ParseFlags(&cfg, "test", []string{"/media/in"}))
	})
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONVMUX_PROCS", "7")
	t.Setenv("CONVMUX_SIZE", "4096")
	t.Setenv("CONVMUX_AUDIO_MODE", "none")
	t.Setenv("CONVMUX_GPU", "intel")
	t.Setenv("CONVMUX_NODELETE", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Procs)
	assert.Equal(t, int64(4096), cfg.MinSizeKB)
	assert.Equal(t, AudioNone, cfg.AudioMode)
	assert.Equal(t, GPUIntel, cfg.GPU)
	assert.True(t, cfg.NoDelete)
}

func TestLoad_DefaultsWithoutEnv(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Procs, cfg.Procs)
	assert.Equal(t, DefaultConfig().Journal, cfg.Journal)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("CONVMUX_PROCS", "7")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 7, cfg.Procs)

	require.NoError(t, ParseFlags(&cfg, "test", []string{"--procs", "3", "--dir", "/in"}))
	assert.Equal(t, 3, cfg.Procs)
}

func TestNormalizeExt(t *testing.T) {
	assert.Equal(t, "mkv", NormalizeExt(".MKV"))
	assert.Equal(t, "mp4", NormalizeExt("mp4"))
	assert.Equal(t, "", NormalizeExt("."))
}
