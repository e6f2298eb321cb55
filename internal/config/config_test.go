package config

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-transform-mcp/internal/codec"
)

func validTestConfig() *Config {
	return &Config{
		Log: LogConfig{Level: "info", Format: "json"},
		Codec: CodecConfig{
			JPEGQuality:    75,
			PNGCompression: "default",
			WebPLossless:   true,
			WebPQuality:    80,
			GIFColors:      256,
		},
		Server: ServerConfig{MaxRequestBytes: defaultMaxRequestBytes},
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, codec.DefaultJPEGQuality, cfg.Codec.JPEGQuality)
	assert.Equal(t, "default", cfg.Codec.PNGCompression)
	assert.True(t, cfg.Codec.WebPLossless)
	assert.Equal(t, 256, cfg.Codec.GIFColors)
	assert.Equal(t, defaultMaxRequestBytes, cfg.Server.MaxRequestBytes)
	assert.Empty(t, cfg.Metrics.Addr)
}

func TestLoad_FromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	configContent := `
log:
  level: debug
  format: text
codec:
  jpeg_quality: 92
  png_compression: best
metrics:
  addr: ":9464"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o600))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 92, cfg.Codec.JPEGQuality)
	assert.Equal(t, "best", cfg.Codec.PNGCompression)
	assert.Equal(t, ":9464", cfg.Metrics.Addr)
	assert.Equal(t, 256, cfg.Codec.GIFColors)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("log:\n  level: warn\n"), 0o600))

	t.Setenv("IMAGE_MCP_LOG_LEVEL", "DEBUG")
	t.Setenv("IMAGE_MCP_CODEC_GIF_COLORS", "16")

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 16, cfg.Codec.GIFColors)
}

func TestLoad_WarningLevelAlias(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("log:\n  level: warning\n"), 0o600))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)

	t.Setenv("IMAGE_MCP_LOG_LEVEL", "Warning")
	cfg, err = Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestNormalizeLevel(t *testing.T) {
	tests := map[string]string{
		"DEBUG":   "debug",
		"warning": "warn",
		"warn":    "warn",
		"Error":   "error",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeLevel(in), in)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("log: [unclosed"), 0o600))

	_, err := Load(configPath)
	assert.Error(t, err)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("IMAGE_MCP_CODEC_JPEG_QUALITY", "0")

	_, err := Load("")
	assert.ErrorContains(t, err, "codec.jpeg_quality")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"jpeg quality high", func(c *Config) { c.Codec.JPEGQuality = 101 }, "codec.jpeg_quality"},
		{"png level", func(c *Config) { c.Codec.PNGCompression = "max" }, "codec.png_compression"},
		{"webp quality", func(c *Config) { c.Codec.WebPQuality = 0 }, "codec.webp_quality"},
		{"gif colours", func(c *Config) { c.Codec.GIFColors = 1 }, "codec.gif_colors"},
		{"request limit", func(c *Config) { c.Server.MaxRequestBytes = 10 }, "server.max_request_bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestCodecConfig_Options(t *testing.T) {
	cfg := validTestConfig()
	cfg.Codec.PNGCompression = "speed"
	cfg.Codec.JPEGQuality = 60

	opts := cfg.Codec.Options()
	assert.Equal(t, png.BestSpeed, opts.PNGCompression)
	assert.Equal(t, 60, opts.JPEGQuality)
	assert.Equal(t, float32(80), opts.WebPQuality)
}
